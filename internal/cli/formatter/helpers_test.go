package formatter

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0"},
		{"600", "$600"},
		{"1200", "$1,200"},
		{"1234567.5", "$1,234,567.50"},
		{"99.999", "$100"},
		{"-2500.25", "-$2,500.25"},
		{"-0.001", "$0"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Money(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestCount(t *testing.T) {
	assert.Equal(t, "7", Count(7))
	assert.Equal(t, "12,345", Count(12345))
}

func TestHumanTimestamp(t *testing.T) {
	assert.Equal(t, "now", HumanTimestamp(time.Now()))
	assert.Equal(t, "2 hours ago", HumanTimestamp(time.Now().Add(-2*time.Hour-time.Minute)))
}

func TestTruncID(t *testing.T) {
	assert.Equal(t, "abcdef12", stripANSI(TruncID("abcdef12-3456-7890")))
	assert.Equal(t, "ceo", stripANSI(TruncID("ceo")))
}

func TestEllipsize(t *testing.T) {
	assert.Equal(t, "short", Ellipsize("short", 10))
	assert.Equal(t, "Senior E…", Ellipsize("Senior Engineer", 9))
	assert.Equal(t, "…", Ellipsize("abc", 1))
	assert.Equal(t, "abc", Ellipsize("abc", 0))
}

func TestRenderBox_UppercasesTitle(t *testing.T) {
	out := stripANSI(RenderBox("employees", "body"))
	assert.Contains(t, out, "EMPLOYEES")
	assert.Contains(t, out, "body")
	assert.Contains(t, out, "╭")
}

func TestRenderShare(t *testing.T) {
	style := lipgloss.NewStyle()

	out := stripANSI(RenderShare(1, 4, 8, style))
	assert.Equal(t, "██░░░░░░ 1", out)

	out = stripANSI(RenderShare(1, 1000, 8, style))
	assert.True(t, strings.HasPrefix(out, "█░"), "non-zero share shows one cell: %q", out)

	out = stripANSI(RenderShare(0, 0, 4, style))
	assert.Equal(t, "░░░░ 0", out)
}
