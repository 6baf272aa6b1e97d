package importer

import (
	"fmt"

	"github.com/alexanderramin/orgscope/internal/domain"
)

// ValidateRoster checks the roster for problems that Convert will paper
// over. Nothing here is fatal: each returned error is a warning describing
// how a record will be degraded on import.
func ValidateRoster(roster *RosterFile) []error {
	var errs []error

	seen := make(map[string]int, len(roster.Employees))
	for i := range roster.Employees {
		if id := string(roster.Employees[i].ID); id != "" {
			seen[id]++
		}
	}

	for i, e := range roster.Employees {
		prefix := fmt.Sprintf("employees[%d]", i)
		id := string(e.ID)
		if id != "" {
			prefix = fmt.Sprintf("employees[%d] (%s)", i, id)
		}

		if id == "" {
			errs = append(errs, fmt.Errorf("%s: id is missing, a new id will be generated", prefix))
		} else if seen[id] > 1 {
			errs = append(errs, fmt.Errorf("%s: duplicate id, the last record wins", prefix))
			seen[id] = 1
		}
		if e.Name == "" {
			errs = append(errs, fmt.Errorf("%s: name is empty", prefix))
		}

		if e.Level != nil && e.Level.Raw != "" && e.Level.Raw != "null" {
			if !e.Level.Valid {
				errs = append(errs, fmt.Errorf("%s: level %q is not a number, using %d", prefix, e.Level.Raw, domain.MinLevel))
			} else if domain.ClampLevel(e.Level.Value) != e.Level.Value {
				errs = append(errs, fmt.Errorf("%s: level %d out of range, clamped to %d", prefix, e.Level.Value, domain.ClampLevel(e.Level.Value)))
			}
		}

		if e.Salary.Present && !e.Salary.Valid {
			errs = append(errs, fmt.Errorf("%s: salary %q is not numeric, counted as 0", prefix, e.Salary.Raw))
		}
		if e.Salary.Valid && e.Salary.Value.IsNegative() {
			errs = append(errs, fmt.Errorf("%s: salary %s is negative", prefix, e.Salary.Value.String()))
		}

		mgr := string(e.ManagerID)
		switch {
		case mgr == "":
		case mgr == id:
			errs = append(errs, fmt.Errorf("%s: reports to itself, treated as a root", prefix))
		case seen[mgr] == 0:
			errs = append(errs, fmt.Errorf("%s: manager %q not found, treated as a root", prefix, mgr))
		}
	}

	return errs
}
