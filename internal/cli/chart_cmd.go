package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/alexanderramin/orgscope/internal/cli/formatter"
	"github.com/alexanderramin/orgscope/internal/config"
	"github.com/alexanderramin/orgscope/internal/domain"
	"github.com/alexanderramin/orgscope/internal/hierarchy"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// baseIndent is the tree indent, in columns, at zoom 1.
const baseIndent = 3

// indentForZoom scales the tree indent with zoom, never below one column.
func indentForZoom(zoom float64) int {
	return int(math.Max(1, math.Round(baseIndent*zoom)))
}

// layersFlag parses a level list such as "1-3,6" when the flag is set, so
// a bad value fails during flag parsing.
type layersFlag struct {
	levels []int
	set    bool
}

var _ pflag.Value = (*layersFlag)(nil)

func (f *layersFlag) String() string {
	if !f.set {
		return ""
	}
	return config.FormatLayers(f.levels)
}

func (f *layersFlag) Set(s string) error {
	levels, err := config.ParseLayers(s)
	if err != nil {
		return err
	}
	f.levels, f.set = levels, true
	return nil
}

func (f *layersFlag) Type() string { return "levels" }

func newChartCmd(app *App) *cobra.Command {
	var (
		expandAll bool
		saved     bool
		noMetrics bool
		layers    layersFlag
		expand    []string
		focus     string
	)

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Print the organization chart",
		Long: `Print the organization chart. Only the root is shown until nodes are
expanded with --expand or --expand-all. --layers limits the chart to the
given levels; reports of a hidden level move up to the nearest shown
ancestor. --saved starts from the view state saved by "orgscope view".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			snap, err := app.snapshot(ctx)
			if err != nil {
				return err
			}
			tree := snap.Tree
			st := app.newState()

			if saved {
				v, found, err := app.Chart.LoadViewState(ctx)
				if err != nil {
					return err
				}
				if found {
					st.RestoreExpanded(v.ExpandedIDs)
					st.SetVisibleLayers(v.VisibleLayers)
					st.SetZoom(v.Zoom)
					st.ApplyHighlight(v.HighlightedID)
				}
			}
			if layers.set {
				st.SetVisibleLayers(layers.levels)
			}

			out := cmd.OutOrStdout()
			if expandAll && !st.ExpandAll(tree) {
				fmt.Fprintln(out, formatter.StyleYellow.Render(fmt.Sprintf(
					"Expand all is disabled while more than %d layers are shown; narrow them with --layers.",
					st.Options().ExpandAllLayerLimit)))
			}
			for _, in := range expand {
				n, err := lookupNode(tree, in)
				if err != nil {
					return err
				}
				st.ExpandPath(tree, n)
				st.Expand(n.ID)
			}
			if focus != "" {
				n, err := lookupNode(tree, focus)
				if err != nil {
					return err
				}
				st.ApplyHighlight(st.SelectEmployee(tree, n.ID))
			}

			fmt.Fprint(out, formatter.FormatChart(formatter.ChartView{
				Rows:          st.VisibleNodes(tree),
				IsExpanded:    st.IsExpanded,
				HighlightedID: st.HighlightedID(),
				Cursor:        -1,
				Indent:        indentForZoom(st.Zoom()),
				ShowMetrics:   !noMetrics,
			}))
			printTreeNotes(cmd, snap.Shadowed, tree)
			return nil
		},
	}

	cmd.Flags().BoolVar(&expandAll, "expand-all", false, "Expand every manager")
	cmd.Flags().BoolVar(&saved, "saved", false, "Start from the saved view state")
	cmd.Flags().BoolVar(&noMetrics, "no-metrics", false, "Hide the roll-up badges")
	cmd.Flags().Var(&layers, "layers", "Comma-separated levels or ranges to show, e.g. 1-3,6")
	cmd.Flags().StringSliceVar(&expand, "expand", nil, "Expand these employees (ID or name) and their ancestors")
	cmd.Flags().StringVar(&focus, "focus", "", "Reveal and highlight one employee (ID or name)")

	return cmd
}

// lookupNode finds a node by id, full name or unique id prefix.
func lookupNode(tree *hierarchy.Tree, input string) (*hierarchy.Node, error) {
	if n, ok := tree.ByID(input); ok {
		return n, nil
	}
	nodes := tree.Nodes()
	employees := make([]domain.Employee, 0, len(nodes))
	for _, n := range nodes {
		if cur, ok := tree.ByID(n.ID); !ok || cur != n || tree.IsOrphan(n) {
			continue
		}
		employees = append(employees, n.Employee)
	}
	id, err := matchEmployee(employees, input)
	if err != nil {
		return nil, err
	}
	n, _ := tree.ByID(id)
	return n, nil
}

func printTreeNotes(cmd *cobra.Command, shadowed int, tree *hierarchy.Tree) {
	out := cmd.OutOrStdout()
	if shadowed > 0 {
		noun := "records reuse"
		if shadowed == 1 {
			noun = "record reuses"
		}
		fmt.Fprintln(out, formatter.Dim(fmt.Sprintf("%d %s an earlier id; lookups by id find the last record.", shadowed, noun)))
	}
	if orphans := tree.Orphans(); len(orphans) > 0 {
		names := make([]string, 0, len(orphans))
		for _, o := range orphans {
			names = append(names, o.Name)
		}
		fmt.Fprintln(out, formatter.StyleRed.Render("Not shown, manager chain loops: ")+strings.Join(names, ", "))
	}
}

func newSearchCmd(app *App) *cobra.Command {
	var fuzzy, show bool

	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Find employees by name",
		Long: `Find employees whose name contains QUERY, ignoring case. --fuzzy ranks
names that contain the query's letters in order. --show prints the chart
with the first match revealed and highlighted.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			snap, err := app.snapshot(ctx)
			if err != nil {
				return err
			}
			tree := snap.Tree
			st := app.newState()
			query := strings.Join(args, " ")

			var hits []*hierarchy.Node
			if fuzzy {
				hits = st.SearchFuzzy(tree, query)
			} else {
				hits = st.Search(tree, query)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.FormatSearchResults(query, tree, hits))
			if show && len(hits) > 0 {
				st.ApplyHighlight(st.SearchAndHighlight(tree))
				fmt.Fprint(out, formatter.FormatChart(formatter.ChartView{
					Rows:          st.VisibleNodes(tree),
					IsExpanded:    st.IsExpanded,
					HighlightedID: st.HighlightedID(),
					Cursor:        -1,
					Indent:        baseIndent,
				}))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fuzzy, "fuzzy", false, "Use fuzzy matching")
	cmd.Flags().BoolVar(&show, "show", false, "Print the chart with the first match highlighted")

	return cmd
}

func newStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize headcount, cost and span of control",
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := app.Chart.Stats(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatStats(summary, app.Chart.Current()))
			return nil
		},
	}
}
