package validators

import (
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/avelara/dispatchly-backend/pkg/errors"
)

func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").WithDetails(map[string]any{"field": key})
	}
	if value < min || value > max {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter out of range").WithDetails(map[string]any{"field": key, "min": min, "max": max})
	}
	return value, nil
}

// ParseQueryID parses an optional int64 query parameter; 0 means absent.
func ParseQueryID(r *http.Request, key string) (int64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be a positive id").WithDetails(map[string]any{"field": key})
	}
	return value, nil
}

// ParseQuerySort reads the sort and order query parameters. An empty sort key
// leaves the endpoint default in place; order accepts asc or desc.
func ParseQuerySort(r *http.Request) (string, bool, error) {
	key := strings.TrimSpace(r.URL.Query().Get("sort"))
	switch strings.ToLower(strings.TrimSpace(r.URL.Query().Get("order"))) {
	case "", "asc":
		return key, false, nil
	case "desc":
		return key, true, nil
	default:
		return "", false, pkgerrors.New(pkgerrors.CodeValidation, "order must be asc or desc").WithDetails(map[string]any{"field": "order"})
	}
}

// ParsePathID parses a required positive int64 path segment.
func ParsePathID(raw, field string) (int64, error) {
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || value <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "path parameter must be a positive id").WithDetails(map[string]any{"field": field})
	}
	return value, nil
}
