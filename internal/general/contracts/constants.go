package contracts

// Exchanges
const (
	ExchangeRouteTopic = "route_topic"
)

// Queues
const (
	QueueRouteRequests = "route_requests"
)

// Routing patterns
const (
	RouteRequestPrefix = "route.request." // {source}
	RouteKeyEstimate   = RouteRequestPrefix + "estimate"
)
