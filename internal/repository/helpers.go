package repository

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// parseTimestamp parses an RFC3339 column value.
func parseTimestamp(column, s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s: %w", column, err)
	}
	return t, nil
}

// formatTimestamp formats t for storage, substituting now for the zero time.
func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return nowUTC()
	}
	return t.UTC().Format(time.RFC3339)
}

// parseSalary reads a stored decimal. Unparsable values read as zero, the
// same way a junk salary is treated on import.
func parseSalary(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// encodeList serializes a slice column as a JSON array.
func encodeList[T any](vals []T) (string, error) {
	if vals == nil {
		return "[]", nil
	}
	b, err := json.Marshal(vals)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// decodeList parses a JSON array column.
func decodeList[T any](column, s string) ([]T, error) {
	var out []T
	if s == "" {
		return out, nil
	}
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", column, err)
	}
	return out, nil
}

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}
