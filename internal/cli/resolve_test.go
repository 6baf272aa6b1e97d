package cli

import (
	"testing"

	"github.com/alexanderramin/orgscope/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchEmployee(t *testing.T) {
	employees := []domain.Employee{
		{ID: "3f2a9c10-0000-4000-8000-000000000001", Name: "Ana Silva"},
		{ID: "3f2b0000-0000-4000-8000-000000000002", Name: "Ben Ode"},
		{ID: "ben", Name: "Benjamin"},
		{ID: "x1", Name: "Sam Lee"},
		{ID: "x2", Name: "sam lee"},
	}

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr string
	}{
		{"exact id", "ben", "ben", ""},
		{"name ignores case", "ana silva", "3f2a9c10-0000-4000-8000-000000000001", ""},
		{"unique prefix", "3f2b", "3f2b0000-0000-4000-8000-000000000002", ""},
		{"ambiguous prefix", "3f2", "", "ambiguous (2 matches)"},
		{"ambiguous name", "Sam Lee", "", "ambiguous (2 employees)"},
		{"not found", "zed", "", "employee not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := matchEmployee(employees, tt.input)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
