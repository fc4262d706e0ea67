package cli

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/planwright/planwright/pkg/pipeline"
	"github.com/planwright/planwright/pkg/plan"
	"github.com/planwright/planwright/pkg/topology"
)

// Character cell aspect ratio is roughly 1:2, so a grid cell maps to 8x4
// characters to keep rooms visually square.
const (
	cellCols = 8
	cellRows = 4
)

// previewCommand creates the preview command for viewing a plan in the
// terminal.
func (c *CLI) previewCommand() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "preview [plan file]",
		Short: "Preview a floor plan in the terminal",
		Long: `Preview a floor plan in the terminal.

The preview command derives the wall topology and draws it as ASCII art:
walls as box-drawing lines, door openings as gaps, room names at their
label anchors. Use --plain to print the drawing without the interactive
viewer.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPreview(cmd, args[0], plain)
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print the drawing to stdout and exit")

	return cmd
}

func (c *CLI) runPreview(cmd *cobra.Command, input string, plain bool) error {
	p, err := plan.Load(input)
	if err != nil {
		return err
	}

	opts := pipeline.Options{Plan: p, Logger: c.Logger}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	segments, err := pipeline.ComputeTopology(cmd.Context(), opts)
	if err != nil {
		return err
	}

	rooms := p.TopologyRooms()
	bounds, err := topology.BuildOccupancy(rooms).Bounds()
	if err != nil {
		return err
	}

	canvas := asciiFloorPlan(segments, rooms, bounds)
	if plain {
		fmt.Fprint(cmd.OutOrStdout(), canvas)
		return nil
	}

	name := p.Name
	if name == "" {
		name = input
	}
	model := previewModel{
		title:  name,
		canvas: canvas,
		stats:  fmt.Sprintf("%d rooms · %d doors · %d walls", len(p.Rooms), len(p.Doors), len(segments)),
	}
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}

// =============================================================================
// PreviewModel - Interactive plan viewer
// =============================================================================

var (
	previewBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(0, 1)
	previewHelpStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// previewModel is the bubbletea model for the plan preview.
type previewModel struct {
	title  string
	canvas string
	stats  string
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m previewModel) View() string {
	var b strings.Builder
	b.WriteString(StyleTitle.Render(m.title))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(m.stats))
	b.WriteString("\n")
	b.WriteString(previewBorderStyle.Render(strings.TrimRight(m.canvas, "\n")))
	b.WriteString("\n")
	b.WriteString(previewHelpStyle.Render("q quit"))
	b.WriteString("\n")
	return b.String()
}

// =============================================================================
// ASCII Rendering
// =============================================================================

// asciiFloorPlan draws grid-space wall segments as box-drawing characters.
// Door openings show up as gaps in the lines; each room's name is placed at
// its label anchor, truncated to what fits.
func asciiFloorPlan(segments []topology.Segment, rooms []topology.Room, b topology.Bounds) string {
	width := b.Width()*cellCols + 1
	height := b.Height()*cellRows + 1

	horiz := make([][]bool, height)
	vert := make([][]bool, height)
	for y := range height {
		horiz[y] = make([]bool, width)
		vert[y] = make([]bool, width)
	}

	toPx := func(p topology.Point) (int, int) {
		x := int(math.Round((p.X - float64(b.MinCol)) * cellCols))
		y := int(math.Round((p.Y - float64(b.MinRow)) * cellRows))
		return clamp(x, 0, width-1), clamp(y, 0, height-1)
	}

	for _, seg := range segments {
		x1, y1 := toPx(seg.Start)
		x2, y2 := toPx(seg.End)
		if y1 == y2 {
			for x := min(x1, x2); x <= max(x1, x2); x++ {
				horiz[y1][x] = true
			}
		} else {
			for y := min(y1, y2); y <= max(y1, y2); y++ {
				vert[y][x1] = true
			}
		}
	}

	grid := make([][]rune, height)
	for y := range height {
		grid[y] = make([]rune, width)
		for x := range width {
			switch {
			case horiz[y][x] && vert[y][x]:
				grid[y][x] = '┼'
			case horiz[y][x]:
				grid[y][x] = '─'
			case vert[y][x]:
				grid[y][x] = '│'
			default:
				grid[y][x] = ' '
			}
		}
	}

	placeLabels(grid, rooms, b)

	var sb strings.Builder
	for _, row := range grid {
		sb.WriteString(strings.TrimRight(string(row), " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// placeLabels writes each room's name at its label anchor, skipping rooms
// without cells and truncating names that do not fit the canvas.
func placeLabels(grid [][]rune, rooms []topology.Room, b topology.Bounds) {
	for _, room := range rooms {
		if len(room.Cells) == 0 {
			continue
		}
		var cx, cy float64
		for _, cell := range room.Cells {
			cx += float64(cell.Col) + 0.5
			cy += float64(cell.Row) + 0.5
		}
		n := float64(len(room.Cells))
		cx, cy = cx/n, cy/n

		y := clamp(int(math.Round((cy-float64(b.MinRow))*cellRows)), 0, len(grid)-1)
		x := int(math.Round((cx-float64(b.MinCol))*cellCols)) - len(room.Name)/2

		for i, r := range room.Name {
			px := x + i
			if px < 1 || px >= len(grid[y])-1 {
				continue
			}
			if grid[y][px] == ' ' {
				grid[y][px] = r
			}
		}
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
