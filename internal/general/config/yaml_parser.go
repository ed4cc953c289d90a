package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// parseYAML parses the specific two-level mapping used by config.yaml
func parseYAML(r io.Reader, cfg *Config) error {
	type section int
	const (
		none section = iota
		rm
		rd
		db
		gc
		es
		sk
	)

	scanner := bufio.NewScanner(r)
	var cur section

	lineNo := 0
	seenTop := map[section]bool{}

	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()

		// strip comments
		if i := strings.IndexByte(raw, '#'); i >= 0 {
			raw = raw[:i]
		}

		line := strings.TrimRight(raw, " \t\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}

		// top-level section? (no leading spaces)
		if len(line) > 0 && (line[0] != ' ' && line[0] != '\t') {
			var next section
			switch strings.TrimSpace(line) {
			case "rabbitmq:":
				next = rm
			case "redis:":
				next = rd
			case "database:":
				next = db
			case "geocoding:":
				next = gc
			case "estimates:":
				next = es
			case "sink:":
				next = sk
			default:
				return fmt.Errorf("line %d: unknown top-level key %q", lineNo, strings.TrimSuffix(strings.TrimSpace(line), ":"))
			}
			if seenTop[next] {
				return fmt.Errorf("line %d: duplicate %q section", lineNo, strings.TrimSuffix(strings.TrimSpace(line), ":"))
			}
			seenTop[next] = true
			cur = next
			continue
		}

		// expect indented "key: value"
		if cur == none {
			return fmt.Errorf("line %d: key without a section", lineNo)
		}
		trim := strings.TrimSpace(line)
		colon := strings.IndexByte(trim, ':')
		if colon <= 0 {
			return fmt.Errorf("line %d: expected 'key: value'", lineNo)
		}
		key := strings.TrimSpace(trim[:colon])
		val := strings.TrimLeft(strings.TrimSpace(trim[colon+1:]), " \t")

		switch cur {
		case rm:
			switch key {
			case "host":
				cfg.RabbitMQ.Host = resolveScalar(val)
			case "port":
				p, err := parseIntValue(val, lineNo, "rabbitmq.port")
				if err != nil {
					return err
				}
				cfg.RabbitMQ.Port = p
			case "user":
				cfg.RabbitMQ.User = resolveScalar(val)
			case "password":
				cfg.RabbitMQ.Password = resolveScalar(val)
			default:
				return fmt.Errorf("line %d: unknown key in rabbitmq: %q", lineNo, key)
			}
		case rd:
			switch key {
			case "enabled":
				b, err := parseBoolValue(val, lineNo, "redis.enabled")
				if err != nil {
					return err
				}
				cfg.Redis.Enabled = b
			case "host":
				cfg.Redis.Host = resolveScalar(val)
			case "port":
				p, err := parseIntValue(val, lineNo, "redis.port")
				if err != nil {
					return err
				}
				cfg.Redis.Port = p
			case "password":
				cfg.Redis.Password = resolveScalar(val)
			case "db":
				p, err := parseIntValue(val, lineNo, "redis.db")
				if err != nil {
					return err
				}
				cfg.Redis.DB = p
			case "cache_ttl_hours":
				p, err := parseIntValue(val, lineNo, "redis.cache_ttl_hours")
				if err != nil {
					return err
				}
				cfg.Redis.TTLHours = p
			default:
				return fmt.Errorf("line %d: unknown key in redis: %q", lineNo, key)
			}
		case db:
			switch key {
			case "host":
				cfg.Database.Host = resolveScalar(val)
			case "port":
				p, err := parseIntValue(val, lineNo, "database.port")
				if err != nil {
					return err
				}
				cfg.Database.Port = p
			case "user":
				cfg.Database.User = resolveScalar(val)
			case "password":
				cfg.Database.Password = resolveScalar(val)
			case "database":
				cfg.Database.Name = resolveScalar(val)
			default:
				return fmt.Errorf("line %d: unknown key in database: %q", lineNo, key)
			}
		case gc:
			switch key {
			case "base_url":
				cfg.Geocoding.BaseURL = resolveScalar(val)
			case "api_key":
				cfg.Geocoding.APIKey = resolveScalar(val)
			case "reject_types":
				cfg.Geocoding.RejectTypes = splitList(val)
			case "timeout_seconds":
				p, err := parseIntValue(val, lineNo, "geocoding.timeout_seconds")
				if err != nil {
					return err
				}
				cfg.Geocoding.TimeoutSeconds = p
			default:
				return fmt.Errorf("line %d: unknown key in geocoding: %q", lineNo, key)
			}
		case es:
			switch key {
			case "base_url":
				cfg.Estimates.BaseURL = resolveScalar(val)
			case "server_token":
				cfg.Estimates.ServerToken = resolveScalar(val)
			case "timeout_seconds":
				p, err := parseIntValue(val, lineNo, "estimates.timeout_seconds")
				if err != nil {
					return err
				}
				cfg.Estimates.TimeoutSeconds = p
			default:
				return fmt.Errorf("line %d: unknown key in estimates: %q", lineNo, key)
			}
		case sk:
			switch key {
			case "driver":
				cfg.Sink.Driver = resolveScalar(val)
			case "path":
				cfg.Sink.Path = resolveScalar(val)
			default:
				return fmt.Errorf("line %d: unknown key in sink: %q", lineNo, key)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return err
	}

	return nil
}

func parseIntValue(val string, lineNo int, field string) (int, error) {
	p, err := strconv.Atoi(resolveScalar(val))
	if err != nil {
		return 0, fmt.Errorf("line %d: %s must be int: %v", lineNo, field, err)
	}
	return p, nil
}

func parseBoolValue(val string, lineNo int, field string) (bool, error) {
	b, err := strconv.ParseBool(resolveScalar(val))
	if err != nil {
		return false, fmt.Errorf("line %d: %s must be bool: %v", lineNo, field, err)
	}
	return b, nil
}

// splitList parses a comma-separated scalar into a list of trimmed strings.
func splitList(val string) []string {
	var out []string
	for _, piece := range strings.Split(resolveScalar(val), ",") {
		if piece = strings.TrimSpace(piece); piece != "" {
			out = append(out, piece)
		}
	}
	return out
}

// resolveScalar trims whitespace and removes surrounding quotes from YAML-like scalars.
// For example:
//
//	"localhost"  -> localhost
//	'password123' -> password123
//	localhost     -> localhost
//
// This ensures values like estimates.server_token are not stored with extra quotes.
func resolveScalar(s string) string {
	s = strings.TrimSpace(s)

	// if value is quoted with "..." or '...', remove quotes safely
	n := len(s)
	if n >= 2 {
		if (s[0] == '"' && s[n-1] == '"') || (s[0] == '\'' && s[n-1] == '\'') {
			if unq, err := strconv.Unquote(s); err == nil {
				return unq
			}
			// fallback if strconv.Unquote fails (e.g., mismatched quotes)
			return s[1 : n-1]
		}
	}

	return s
}
