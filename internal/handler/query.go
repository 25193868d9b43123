package handler

import (
	"net/http"
	"strconv"
)

// pagination parses limit and skip query parameters. Limit defaults to 20
// and is capped at 100; skip is never negative. Malformed values fall back
// to the defaults.
func pagination(r *http.Request) (limit, skip int64) {
	limit = 20
	if s := r.URL.Query().Get("limit"); s != "" {
		if v, err := strconv.ParseInt(s, 10, 64); err == nil && v > 0 {
			limit = v
		}
	}
	if limit > 100 {
		limit = 100
	}
	if s := r.URL.Query().Get("skip"); s != "" {
		if v, err := strconv.ParseInt(s, 10, 64); err == nil && v > 0 {
			skip = v
		}
	}
	return limit, skip
}

// queryBool parses an optional boolean query parameter, nil when absent or
// malformed.
func queryBool(r *http.Request, name string) *bool {
	s := r.URL.Query().Get(name)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return nil
	}
	return &v
}

// queryFloat parses an optional float query parameter, nil when absent or
// malformed.
func queryFloat(r *http.Request, name string) *float64 {
	s := r.URL.Query().Get(name)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
