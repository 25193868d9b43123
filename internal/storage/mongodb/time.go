package mongodb

import (
	"time"

	"github.com/go-faster/errors"
)

// Timestamps are stored as RFC3339Nano strings in UTC. String comparison on
// these values is chronologically correct, which the range filters and sorts
// rely on.

func encodeTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// decodeTime parses a stored timestamp. A malformed value is a data error
// and is reported, not masked with a zero time.
func decodeTime(field, s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "decode %s", field)
	}
	return t, nil
}

func encodeTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := encodeTime(*t)
	return &s
}

func decodeTimePtr(field string, s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := decodeTime(field, *s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
