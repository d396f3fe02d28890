package teaui

import (
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"

	"tableflip.dev/agenda/pkg/schedule"
)

// Theme centralizes Lip Gloss styles for the day planner UI.
type Theme struct {
	Header   lipgloss.Style
	Clock    lipgloss.Style
	Status   lipgloss.Style
	Help     lipgloss.Style
	Selected lipgloss.Style
	Dragged  lipgloss.Style
	Invalid  lipgloss.Style

	blocks map[schedule.BlockType]lipgloss.Style
}

// blockHex anchors each background block type to a base color.
var blockHex = map[schedule.BlockType]string{
	schedule.BlockWork:     "#5f87d7",
	schedule.BlockPersonal: "#5faf5f",
	schedule.BlockBreak:    "#af87d7",
}

// Default builds the theme, dimming block colors toward the terminal
// background so task bars stay readable on top of them.
func Default() Theme {
	dark := termenv.HasDarkBackground()

	blocks := make(map[schedule.BlockType]lipgloss.Style, len(blockHex))
	for bt, hex := range blockHex {
		blocks[bt] = lipgloss.NewStyle().Foreground(lipgloss.Color(dimmed(hex, dark)))
	}

	return Theme{
		Header:   lipgloss.NewStyle().Bold(true).Underline(true),
		Clock:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Status:   lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		Help:     lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("245")),
		Selected: lipgloss.NewStyle().Bold(true).Reverse(true),
		Dragged:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		Invalid:  lipgloss.NewStyle().Faint(true).Strikethrough(false),
		blocks:   blocks,
	}
}

// Block returns the style for a block type, falling back to the work style
// for unknown types.
func (t Theme) Block(bt schedule.BlockType) lipgloss.Style {
	if s, ok := t.blocks[bt]; ok {
		return s
	}
	return t.blocks[schedule.BlockWork]
}

// dimmed blends the base hex toward black or white depending on the
// terminal background, keeping blocks visually behind the task bars.
func dimmed(hex string, dark bool) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	target := colorful.Color{R: 1, G: 1, B: 1}
	if dark {
		target = colorful.Color{}
	}
	return c.BlendLab(target, 0.35).Clamped().Hex()
}
