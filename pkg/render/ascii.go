package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go-hex-lanes/pkg/hexmap"
)

// Glyphs used by ASCII.
const (
	GlyphEnvironment = '.'
	GlyphDefender    = ':'
	GlyphPathway     = '#'
	GlyphJunction    = '+'
	GlyphHub         = 'H'
	GlyphSpawn       = 'S'
)

var asciiStyles = map[hexmap.TileKind]lipgloss.Style{
	hexmap.Environment:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	hexmap.DefenderSpot: lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	hexmap.Pathway:      lipgloss.NewStyle().Foreground(lipgloss.Color("180")),
	hexmap.CenterHub:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	hexmap.EdgeSpawn:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
}

var junctionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)

// ASCIIOptions tunes the terminal rendering.
type ASCIIOptions struct {
	// Plain disables colors.
	Plain bool
	// LaneDigits prints the owning lane id on pathway tiles (ids 0-9).
	LaneDigits bool
}

// Glyph returns the character for a tile.
func Glyph(t *hexmap.Tile, laneDigits bool) rune {
	switch t.Kind {
	case hexmap.DefenderSpot:
		return GlyphDefender
	case hexmap.CenterHub:
		return GlyphHub
	case hexmap.EdgeSpawn:
		return GlyphSpawn
	case hexmap.Pathway:
		if t.IsJunction {
			return GlyphJunction
		}
		if laneDigits && t.LaneID >= 0 && t.LaneID < 10 {
			return rune('0' + t.LaneID)
		}
		return GlyphPathway
	}
	return GlyphEnvironment
}

// ASCII draws the grid as offset rows of glyphs, one row per R. Spawn markers
// outside the disk are included.
func ASCII(grid *hexmap.Grid, opts ASCIIOptions) string {
	extent := grid.Radius
	for _, h := range grid.Coords() {
		if d := h.Distance(hexmap.Origin); d > extent {
			extent = d
		}
	}

	var b strings.Builder
	for r := -extent; r <= extent; r++ {
		indent := r
		if indent < 0 {
			indent = -indent
		}
		var row strings.Builder
		row.WriteString(strings.Repeat(" ", indent))
		for q := -extent; q <= extent; q++ {
			h := hexmap.Hex{Q: q, R: r}
			if h.Distance(hexmap.Origin) > extent {
				continue
			}
			t, ok := grid.Tile(h)
			if !ok {
				row.WriteString("  ")
				continue
			}
			g := string(Glyph(t, opts.LaneDigits))
			if !opts.Plain {
				style := asciiStyles[t.Kind]
				if t.Kind == hexmap.Pathway && t.IsJunction {
					style = junctionStyle
				}
				g = style.Render(g)
			}
			row.WriteString(g)
			row.WriteByte(' ')
		}
		b.WriteString(strings.TrimRight(row.String(), " "))
		b.WriteByte('\n')
	}
	return b.String()
}

// Legend returns a one-line key for the glyphs.
func Legend() string {
	return "H hub  # lane  + junction  : defender spot  . open  S spawn"
}
