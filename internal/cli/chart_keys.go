package cli

import (
	"strings"

	"github.com/alexanderramin/orgscope/internal/cli/formatter"
	"github.com/charmbracelet/bubbles/key"
)

// chartKeyMap holds the browser's bindings. Pan and zoom keys are not
// listed here: they go to interaction.State.HandleKey.
type chartKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Toggle      key.Binding
	Search      key.Binding
	ExpandAll   key.Binding
	CollapseAll key.Binding
	Reset       key.Binding
	Metrics     key.Binding
	Clear       key.Binding
	Layers      key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func defaultChartKeyMap() chartKeyMap {
	return chartKeyMap{
		Up:          key.NewBinding(key.WithKeys("k", "ctrl+p"), key.WithHelp("k", "up")),
		Down:        key.NewBinding(key.WithKeys("j", "ctrl+n"), key.WithHelp("j", "down")),
		Toggle:      key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "expand/collapse")),
		Search:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		ExpandAll:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "expand all")),
		CollapseAll: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "collapse all")),
		Reset:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset view")),
		Metrics:     key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "metrics")),
		Clear:       key.NewBinding(key.WithKeys("esc", "x"), key.WithHelp("x", "clear highlight")),
		Layers:      key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9", "0"), key.WithHelp("1-0", "layers")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp is the one-line hint under the chart.
func (k chartKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Search, k.ExpandAll, k.Layers, k.Help, k.Quit}
}

// FullHelp adds the pan and zoom keys handled by the interaction state.
func (k chartKeyMap) FullHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Toggle, k.Search, k.ExpandAll, k.CollapseAll, k.Layers, k.Metrics, k.Clear, k.Reset,
		key.NewBinding(key.WithKeys("w", "a", "s", "d"), key.WithHelp("wasd/arrows", "pan")),
		key.NewBinding(key.WithKeys("+", "-"), key.WithHelp("+/-", "zoom")),
		k.Help, k.Quit,
	}
}

func renderHelp(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, formatter.StyleHeader.Render(h.Key)+" "+formatter.Dim(h.Desc))
	}
	return strings.Join(parts, formatter.Dim(" · "))
}
