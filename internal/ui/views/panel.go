package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"paintpick/internal/domain"
)

// ColorPanelRenderer handles rendering of the extracted color details
type ColorPanelRenderer struct {
	styles *Styles
}

// NewColorPanelRenderer creates a new color panel renderer
func NewColorPanelRenderer(styles *Styles) *ColorPanelRenderer {
	return &ColorPanelRenderer{
		styles: styles,
	}
}

// RenderColor renders the swatch next to the HEX and RGB values
func (p *ColorPanelRenderer) RenderColor(color *domain.ExtractedColor, hexText string) string {
	swatch := p.renderSwatch(color)

	var details strings.Builder
	details.WriteString(fmt.Sprintf("%s %s\n", p.styles.Label.Render("HEX:"), hexText))
	rgb := domain.PlaceholderHex
	if color != nil {
		rgb = color.RGBText()
	}
	details.WriteString(fmt.Sprintf("%s %s", p.styles.Label.Render("RGB:"), rgb))

	return lipgloss.JoinHorizontal(lipgloss.Top, swatch, "  ", details.String())
}

// renderSwatch paints a block in the extracted color
func (p *ColorPanelRenderer) renderSwatch(color *domain.ExtractedColor) string {
	block := strings.Repeat(" ", 10)
	fill := lipgloss.NewStyle()
	if color != nil {
		fill = fill.Background(lipgloss.Color(color.Hex))
	}
	return p.styles.Swatch.Render(fill.Render(block) + "\n" + fill.Render(block))
}
