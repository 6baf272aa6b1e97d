package importer

import (
	"time"

	"github.com/alexanderramin/orgscope/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Convert transforms a parsed roster into domain employees in file order.
// Missing ids get a fresh UUID, unparsable or absent salaries become 0 and
// levels are clamped into range. Run ValidateRoster first to report what
// was degraded.
func Convert(roster *RosterFile) []domain.Employee {
	now := time.Now().UTC()
	out := make([]domain.Employee, 0, len(roster.Employees))

	for _, e := range roster.Employees {
		var level *int
		if e.Level != nil && e.Level.Valid {
			level = &e.Level.Value
		}
		var salary *decimal.Decimal
		if e.Salary.Valid {
			salary = &e.Salary.Value
		}

		out = append(out, domain.Employee{
			ID:         domain.CoalesceStr(string(e.ID), uuid.New().String()),
			ManagerID:  string(e.ManagerID),
			Name:       e.Name,
			Level:      domain.ClampLevel(domain.IntFromPtrWithDefault(domain.MinLevel, level)),
			Salary:     domain.DecimalFromPtrWithDefault(decimal.Zero, salary),
			Department: e.Department,
			JobTitle:   e.JobTitle,
			Location:   e.Location,
			Email:      e.Email,
			CreatedAt:  now,
			UpdatedAt:  now,
		})
	}
	return out
}
