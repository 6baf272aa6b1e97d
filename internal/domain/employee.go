package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Level bounds for the colour/filter classification. Level 0 is reserved
// for the synthesized organization root.
const (
	MinLevel = 0
	MaxLevel = 10
)

// Employee is a single roster record as supplied by the data source.
// ManagerID is empty when the record has no manager.
type Employee struct {
	ID         string
	ManagerID  string
	Name       string
	Level      int
	Salary     decimal.Decimal
	Department string
	JobTitle   string
	Location   string
	Email      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// HasManager reports whether the record names a manager other than itself.
func (e *Employee) HasManager() bool {
	return e.ManagerID != "" && e.ManagerID != e.ID
}

// Validate checks the fields required for storage. Roster imports do not
// call this: malformed records there degrade to defaults instead.
func (e *Employee) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return fmt.Errorf("employee id is required")
	}
	if strings.TrimSpace(e.Name) == "" {
		return fmt.Errorf("employee name is required")
	}
	if e.Level < MinLevel || e.Level > MaxLevel {
		return fmt.Errorf("employee level %d must be between %d and %d", e.Level, MinLevel, MaxLevel)
	}
	if e.Salary.IsNegative() {
		return fmt.Errorf("employee salary %s must not be negative", e.Salary.String())
	}
	return nil
}

// DisplayID returns the id truncated to 8 characters for generated UUIDs.
func (e *Employee) DisplayID() string {
	if len(e.ID) > 8 {
		return e.ID[:8]
	}
	return e.ID
}
