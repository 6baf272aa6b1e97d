package importer

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// ErrEmptyRoster is returned when a roster file holds no employee records.
var ErrEmptyRoster = errors.New("roster contains no employees")

// RosterFile is the top-level JSON structure for a roster import. The file
// may also be a bare array, in which case only Employees is set.
type RosterFile struct {
	Employees []EmployeeImport `json:"employees"`
}

// EmployeeImport is one roster record as it appears on disk. Ids may be
// written as numbers or strings; managerId may be null.
type EmployeeImport struct {
	ID         FlexString  `json:"id"`
	ManagerID  FlexString  `json:"managerId"`
	Name       string      `json:"name"`
	Level      *FlexInt    `json:"level,omitempty"`
	Salary     FlexDecimal `json:"salary"`
	Department string      `json:"department,omitempty"`
	JobTitle   string      `json:"jobTitle,omitempty"`
	Location   string      `json:"location,omitempty"`
	Email      string      `json:"email,omitempty"`
}

// FlexString accepts a JSON string, number or null.
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*f = ""
	case len(b) > 0 && b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexString(strings.TrimSpace(s))
	default:
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return fmt.Errorf("expected string or number, got %s", b)
		}
		*f = FlexString(n.String())
	}
	return nil
}

// FlexInt accepts a JSON number or a numeric string. Anything else leaves
// Valid false and keeps the raw text for warnings.
type FlexInt struct {
	Value int
	Valid bool
	Raw   string
}

func (f *FlexInt) UnmarshalJSON(b []byte) error {
	raw := strings.Trim(string(bytes.TrimSpace(b)), `"`)
	f.Raw = raw
	if raw == "null" || raw == "" {
		return nil
	}
	if v, err := strconv.Atoi(raw); err == nil {
		f.Value, f.Valid = v, true
		return nil
	}
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		f.Value, f.Valid = int(v), true
	}
	return nil
}

// FlexDecimal accepts a JSON number, numeric string or null. Present means
// the key was given with a non-null value; Valid means it parsed.
type FlexDecimal struct {
	Value   decimal.Decimal
	Present bool
	Valid   bool
	Raw     string
}

func (f *FlexDecimal) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(bytes.TrimSpace(b)))
	if raw == "null" {
		return nil
	}
	f.Present = true
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal([]byte(raw), &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
	}
	f.Raw = raw
	if d, err := decimal.NewFromString(raw); err == nil {
		f.Value, f.Valid = d, true
	}
	return nil
}

// ParseRoster decodes roster JSON in either the bare-array or the
// {"employees": [...]} form.
func ParseRoster(data []byte) (*RosterFile, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, ErrEmptyRoster
	}

	var roster RosterFile
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &roster.Employees); err != nil {
			return nil, fmt.Errorf("parsing roster array: %w", err)
		}
	} else if err := json.Unmarshal(trimmed, &roster); err != nil {
		return nil, fmt.Errorf("parsing roster file: %w", err)
	}

	if len(roster.Employees) == 0 {
		return nil, ErrEmptyRoster
	}
	return &roster, nil
}

// LoadRoster reads and parses a roster JSON file.
func LoadRoster(path string) (*RosterFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseRoster(data)
}
