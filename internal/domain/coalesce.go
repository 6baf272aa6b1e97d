package domain

import "github.com/shopspring/decimal"

// CoalesceStr returns the first non-empty string from vals.
func CoalesceStr(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// IntFromPtrWithDefault returns the first non-nil *int value, or the fallback.
func IntFromPtrWithDefault(fallback int, ptrs ...*int) int {
	for _, p := range ptrs {
		if p != nil {
			return *p
		}
	}
	return fallback
}

// DecimalFromPtrWithDefault returns the first non-nil *decimal.Decimal
// value, or the fallback.
func DecimalFromPtrWithDefault(fallback decimal.Decimal, ptrs ...*decimal.Decimal) decimal.Decimal {
	for _, p := range ptrs {
		if p != nil {
			return *p
		}
	}
	return fallback
}

// ClampLevel pins level into [MinLevel, MaxLevel].
func ClampLevel(level int) int {
	if level < MinLevel {
		return MinLevel
	}
	if level > MaxLevel {
		return MaxLevel
	}
	return level
}
