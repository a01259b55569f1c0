package views

import (
	"strings"

	"paintpick/internal/widget"
)

// GridColumns is the number of cards per grid row
const GridColumns = 4

// cardLines is the rendered height of a card including its border
const cardLines = 5

// chromeLines covers the title, inputs, status, preview, color panel and help
const chromeLines = 20

// GridRowsFor returns how many card rows fit in a terminal of the given height
func GridRowsFor(height int) int {
	rows := (height - chromeLines) / cardLines
	if rows < 1 {
		return 1
	}
	return rows
}

// CardRenderer handles rendering of result cards
type CardRenderer struct {
	styles *Styles
}

// NewCardRenderer creates a new card renderer
func NewCardRenderer(styles *Styles) *CardRenderer {
	return &CardRenderer{
		styles: styles,
	}
}

// RenderCard renders a single result card
func (c *CardRenderer) RenderCard(card widget.Card, isCursor bool) string {
	style := c.styles.Card
	if card.Selected {
		style = c.styles.CardSelected
	} else if isCursor {
		style = c.styles.CardHover
	}

	label := card.Label
	if card.Selected {
		label = "● " + label
	}

	body := c.styles.Dim.Render(c.formatURL(card.URL, style.GetWidth()-2))
	if card.Broken {
		body = c.styles.Broken.Render(card.DisplayURL())
	}

	return style.Render(label + "\n" + body)
}

// formatURL shortens a URL to fit inside a card
func (c *CardRenderer) formatURL(url string, width int) string {
	url = strings.TrimPrefix(url, "https://")
	url = strings.TrimPrefix(url, "http://")
	return truncate(url, width)
}

// truncate cuts s to at most n runes, marking the cut with an ellipsis
func truncate(s string, n int) string {
	runes := []rune(s)
	if n <= 0 || len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}
