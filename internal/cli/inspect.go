package cli

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rivo/uniseg"
	"github.com/spf13/cobra"

	"github.com/matzehuels/instantview/pkg/view"
)

// List styles
var (
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	listHeaderStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// Item type colors in the inspector table.
var typeColors = map[string]lipgloss.Color{
	view.TypeText:      colorWhite,
	view.TypeMedia:     colorGreen,
	view.TypeSlideshow: colorGreen,
	view.TypeShape:     colorGray,
	view.TypeWebEmbed:  colorYellow,
	view.TypeAnchor:    colorDim,
	view.TypeChannel:   colorBlue,
	view.TypeDetails:   colorYellow,
}

// inspectCommand creates the inspect command for browsing layout items.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		plain bool
		flags layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "inspect [page.json|page.toml|page.layout.json]",
		Short: "Browse the laid out items of a page",
		Long: `Browse the laid out items of a page in an interactive table.

Use --plain to print the table once, e.g. when piping the output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInspect(cmd.Context(), args[0], plain, flags)
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print the table without interaction")
	flags.register(cmd)

	return cmd
}

func (c *CLI) runInspect(ctx context.Context, input string, plain bool, flags layoutFlags) error {
	l, err := c.loadLayout(ctx, input, flags)
	if err != nil {
		return err
	}
	if plain {
		fmt.Fprintln(stdout, itemTable(l, 0, len(l.Items), -1).Render())
		if len(l.Items) == 0 {
			printWarning("Layout has no items")
		}
		return nil
	}
	_, err = tea.NewProgram(NewItemListModel(l), tea.WithContext(ctx), tea.WithAltScreen()).Run()
	return err
}

// loadLayout reads a saved layout or computes one from a page document.
func (c *CLI) loadLayout(ctx context.Context, input string, flags layoutFlags) (view.Layout, error) {
	if isLayoutFile(input) {
		return view.ReadLayoutFile(input)
	}
	opts := flags.opts
	if err := readDocument(input, &opts); err != nil {
		return view.Layout{}, err
	}
	opts.Logger = c.Logger

	runner, err := c.newRunner(flags.noCache)
	if err != nil {
		return view.Layout{}, fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Loading "+input+"...")
	spinner.Start()
	defer spinner.Stop()

	pg, docHash, _, err := runner.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		return view.Layout{}, err
	}
	c.Logger.Debug("loaded page", "blocks", len(pg.Blocks), "hash", docHash)
	spinner.Update(fmt.Sprintf("Laying out %d blocks...", len(pg.Blocks)))
	return runner.GenerateLayout(ctx, pg, opts)
}

// =============================================================================
// ItemListModel - Interactive item browser
// =============================================================================

// ItemListModel is the bubbletea model for browsing layout items.
type ItemListModel struct {
	Layout view.Layout
	Cursor int
	Height int
	Offset int
}

// NewItemListModel creates a new item list model.
func NewItemListModel(l view.Layout) ItemListModel {
	return ItemListModel{Layout: l, Height: 15}
}

func (m ItemListModel) Init() tea.Cmd {
	return nil
}

func (m ItemListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	n := len(m.Layout.Items)
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "pgup":
			m.move(-m.Height)
		case "pgdown", " ":
			m.move(m.Height)
		case "home", "g":
			m.move(-n)
		case "end", "G":
			m.move(n)
		}
	case tea.WindowSizeMsg:
		// Title, help, borders, footer and the detail pane.
		m.Height = max(msg.Height-12, 5)
		m.move(0)
	}
	return m, nil
}

// move shifts the cursor by delta, keeping it inside the visible window.
func (m *ItemListModel) move(delta int) {
	n := len(m.Layout.Items)
	if n == 0 {
		return
	}
	m.Cursor = min(max(m.Cursor+delta, 0), n-1)
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
}

func (m ItemListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("Layout %gx%g", m.Layout.Width, m.Layout.Height)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  pgup/pgdn page  q quit"))
	b.WriteString("\n\n")

	if len(m.Layout.Items) == 0 {
		b.WriteString(listDimStyle.Render("  (no items)"))
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Layout.Items))
	b.WriteString(itemTable(m.Layout, m.Offset, end, m.Cursor).Render())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Layout.Items))))
	b.WriteString("\n\n")
	b.WriteString(itemDetail(m.Layout.Items[m.Cursor]))

	return b.String()
}

// itemTable renders items[start:end]. cursor is an absolute index, or -1.
func itemTable(l view.Layout, start, end, cursor int) *table.Table {
	rows := make([][]string, 0, end-start)
	for i := start; i < end; i++ {
		it := l.Items[i]
		mark := "  "
		if i == cursor {
			mark = "▸ "
		}
		rows = append(rows, []string{
			mark,
			fmt.Sprint(i),
			itemLabel(it),
			fmt.Sprintf("%.1f", it.X),
			fmt.Sprintf("%.1f", it.Y),
			fmt.Sprintf("%.1f", it.Width),
			fmt.Sprintf("%.1f", it.Height),
			truncate(itemSummary(it), 36),
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "#", "Type", "X", "Y", "W", "H", "Content").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return listHeaderStyle
			}
			idx := start + row
			if idx >= end {
				return lipgloss.NewStyle()
			}
			base := lipgloss.NewStyle()
			switch col {
			case 2:
				base = base.Foreground(typeColors[l.Items[idx].Type])
			case 3, 4, 5, 6:
				base = base.Foreground(colorGray)
			case 7:
				base = base.Foreground(colorDim)
			}
			if idx == cursor {
				base = base.Bold(true)
				if col == 0 || col == 1 {
					base = base.Foreground(colorCyan)
				}
			}
			return base
		})
}

func itemLabel(it view.Item) string {
	if it.Overlay {
		return it.Type + "*"
	}
	return it.Type
}

// itemSummary is a one-line description of an item's content.
func itemSummary(it view.Item) string {
	switch it.Type {
	case view.TypeText:
		var parts []string
		for _, ln := range it.Lines {
			parts = append(parts, ln.Text)
		}
		return strings.Join(parts, " ")
	case view.TypeMedia:
		if it.Index != nil && *it.Index >= 0 {
			return fmt.Sprintf("%s %s #%d", it.Kind, it.Media, *it.Index)
		}
		return it.Kind + " " + it.Media
	case view.TypeSlideshow:
		return fmt.Sprintf("%d medias", len(it.Medias))
	case view.TypeShape:
		return it.Shape + " " + it.Color
	case view.TypeWebEmbed:
		return it.URL
	case view.TypeAnchor:
		return "#" + it.Name
	case view.TypeChannel:
		if it.Channel != nil {
			return it.Channel.Title
		}
	case view.TypeDetails:
		state := "collapsed"
		if it.Expanded {
			state = "expanded"
		}
		title := ""
		if it.Title != nil {
			title = itemSummary(*it.Title) + " "
		}
		return fmt.Sprintf("%s(%s, %d items)", title, state, len(it.Items))
	}
	return ""
}

// itemDetail lists the lines of a text item, or its summary otherwise.
func itemDetail(it view.Item) string {
	if it.Type != view.TypeText {
		return "  " + StyleValue.Render(itemSummary(it))
	}
	var b strings.Builder
	for i, ln := range it.Lines {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "  %s %s", StyleDim.Render(fmt.Sprintf("%6.1f", ln.Y)), StyleValue.Render(ln.Text))
	}
	return b.String()
}

// truncate shortens s to at most width terminal cells, ending in "…".
func truncate(s string, width int) string {
	if uniseg.StringWidth(s) <= width {
		return s
	}
	var (
		b     strings.Builder
		used  int
		state = -1
	)
	for s != "" {
		var cluster string
		var cells int
		cluster, s, cells, state = uniseg.FirstGraphemeClusterInString(s, state)
		if used+cells > width-1 {
			break
		}
		b.WriteString(cluster)
		used += cells
	}
	return b.String() + "…"
}
