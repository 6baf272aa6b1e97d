package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/orgscope/internal/domain"
)

// resolveEmployeeID maps user input to a stored employee id. It tries an
// exact id, then a case-insensitive full name, then a unique id prefix.
func resolveEmployeeID(ctx context.Context, app *App, input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("employee ID is required")
	}

	employees, err := app.Employees.List(ctx)
	if err != nil {
		return "", err
	}
	return matchEmployee(employees, input)
}

func matchEmployee(employees []domain.Employee, input string) (string, error) {
	// 1. Exact id
	for _, e := range employees {
		if e.ID == input {
			return e.ID, nil
		}
	}

	// 2. Full name
	var byName []string
	for _, e := range employees {
		if strings.EqualFold(e.Name, input) {
			byName = append(byName, e.ID)
		}
	}
	if len(byName) == 1 {
		return byName[0], nil
	}
	if len(byName) > 1 {
		return "", fmt.Errorf("name %q is ambiguous (%d employees), use the ID", input, len(byName))
	}

	// 3. Id prefix
	var matches []string
	for _, e := range employees {
		if strings.HasPrefix(e.ID, input) {
			matches = append(matches, e.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("employee not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("employee ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}
