package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"ride-estimates/internal/domain/route"
	"ride-estimates/internal/ports"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ArchiveSink persists outcome records to the route_results table instead of
// a local file. Rows are append-only; the uuid is indexed for correlation
// but not unique, since at-least-once delivery can replay a request.
//
// Expected schema:
//
//	CREATE TABLE route_results (
//	    id         BIGSERIAL PRIMARY KEY,
//	    uuid       TEXT        NOT NULL,
//	    status     TEXT        NOT NULL,
//	    payload    JSONB       NOT NULL,
//	    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
type ArchiveSink struct {
	pool *pgxpool.Pool
}

// NewArchiveSink constructs an ArchiveSink bound to the given pool.
func NewArchiveSink(pool *pgxpool.Pool) *ArchiveSink {
	return &ArchiveSink{pool: pool}
}

// Append inserts one route_results row for the outcome.
func (s *ArchiveSink) Append(ctx context.Context, res *route.Result) error {
	payload, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("%w: marshal result %s: %v", route.ErrSinkWrite, res.UUID, err)
	}

	status := "success"
	if res.Failed() {
		status = "failed"
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO route_results (uuid, status, payload)
		VALUES ($1, $2, $3::jsonb)
	`,
		res.UUID,
		status,
		string(payload),
	)
	if err != nil {
		return fmt.Errorf("%w: insert result %s: %v", route.ErrSinkWrite, res.UUID, err)
	}

	return nil
}

var _ ports.Sink = (*ArchiveSink)(nil)
