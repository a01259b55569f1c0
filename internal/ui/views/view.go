package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"paintpick/internal/domain"
	"paintpick/internal/widget"
)

// Focus identifies the control receiving key input
type Focus int

const (
	FocusBrand Focus = iota
	FocusCode
	FocusGrid
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width          int
	Height         int
	Focus          Focus
	BrandInput     string
	CodeInput      string
	SearchEnabled  bool
	Loading        bool
	Spinner        string
	Status         domain.Status
	GridVisible    bool
	Cards          []widget.Card
	Cursor         int
	FirstRow       int // first grid row on screen
	RowCount       int // grid rows on screen, 0 shows all
	PreviewVisible bool
	SelectedURL    string
	ColorVisible   bool
	Color          *domain.ExtractedColor
	HexText        string
	ExcludedCount  int
	HelpView       string
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	cardRender  *CardRenderer
	colorRender *ColorPanelRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		cardRender:  NewCardRenderer(styles),
		colorRender: NewColorPanelRenderer(styles),
	}
}

// Styles exposes the renderer's styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	logo := r.styles.Title.Render("Buscar imagen de pintura")

	// Right-aligned loader and session counter
	indicators := []string{}
	if state.Loading {
		indicators = append(indicators, r.styles.Loader.Render(state.Spinner+" Cargando"))
	}
	if state.ExcludedCount > 0 {
		indicators = append(indicators, r.styles.Dim.Render(fmt.Sprintf("%d vistas", state.ExcludedCount)))
	}

	titleLine := logo
	if len(indicators) > 0 {
		rightContent := strings.Join(indicators, r.styles.Dim.Render(" | "))
		termWidth := state.Width
		if termWidth <= 0 {
			termWidth = 80
		}
		paddingWidth := termWidth - 4 - lipgloss.Width(logo) - lipgloss.Width(rightContent)
		if paddingWidth > 0 {
			titleLine = logo + strings.Repeat(" ", paddingWidth) + rightContent
		} else {
			titleLine = fmt.Sprintf("%s  %s", logo, rightContent)
		}
	}
	content.WriteString(titleLine)
	content.WriteString("\n")

	content.WriteString(r.renderInputs(state))
	content.WriteString("\n")

	if state.Status.Text != "" {
		content.WriteString(r.styles.StatusStyle(state.Status.Level).Render(state.Status.Text))
		content.WriteString("\n")
	}

	if state.GridVisible {
		content.WriteString(r.renderGrid(state))
		content.WriteString("\n")
	}

	if state.PreviewVisible {
		content.WriteString(r.styles.Section.Render("Imagen seleccionada"))
		content.WriteString("\n")
		content.WriteString(fmt.Sprintf("URL: %s", state.SelectedURL))
		content.WriteString("\n")
	}

	if state.ColorVisible {
		content.WriteString(r.styles.Section.Render("Color extraído"))
		content.WriteString("\n")
		content.WriteString(r.colorRender.RenderColor(state.Color, state.HexText))
		content.WriteString("\n")
	}

	// Push help to the bottom
	if state.HelpView != "" {
		currentLines := strings.Count(content.String(), "\n") + 1
		availableLines := state.Height - 2
		if availableLines <= 0 {
			availableLines = 22
		}
		if paddingNeeded := availableLines - currentLines - 1; paddingNeeded > 0 {
			content.WriteString(strings.Repeat("\n", paddingNeeded))
		}
		content.WriteString("\n")
		content.WriteString(r.styles.Help.Render(state.HelpView))
	}

	mainStyle := r.styles.Main
	if state.Height > 0 {
		mainStyle = mainStyle.MaxHeight(state.Height)
	}
	return mainStyle.Render(content.String())
}

// renderInputs renders the brand and color code fields with the search trigger
func (r *Renderer) renderInputs(state ViewState) string {
	brandStyle, codeStyle := r.styles.Input, r.styles.Input
	switch state.Focus {
	case FocusBrand:
		brandStyle = r.styles.InputFocused
	case FocusCode:
		codeStyle = r.styles.InputFocused
	}

	brand := lipgloss.JoinVertical(lipgloss.Left,
		r.styles.Label.Render("Marca"),
		brandStyle.Render(state.BrandInput),
	)
	code := lipgloss.JoinVertical(lipgloss.Left,
		r.styles.Label.Render("Código de color"),
		codeStyle.Render(state.CodeInput),
	)

	button := r.styles.Button.Render("Buscar")
	if !state.SearchEnabled {
		button = r.styles.ButtonOff.Render("Buscando...")
	}
	// Align the trigger with the input boxes
	button = lipgloss.JoinVertical(lipgloss.Left, "", "", button)

	return lipgloss.JoinHorizontal(lipgloss.Top, brand, "  ", code, "  ", button)
}

// renderGrid lays the result cards out in rows of GridColumns
func (r *Renderer) renderGrid(state ViewState) string {
	if len(state.Cards) == 0 {
		return ""
	}

	totalRows := (len(state.Cards) + GridColumns - 1) / GridColumns
	first, last := 0, totalRows
	if state.RowCount > 0 {
		first = state.FirstRow
		last = min(first+state.RowCount, totalRows)
	}

	var rows []string
	if first > 0 {
		rows = append(rows, r.styles.Dim.Render(fmt.Sprintf("↑ %d more above ↑", first)))
	}
	for row := first; row < last; row++ {
		start := row * GridColumns
		end := start + GridColumns
		if end > len(state.Cards) {
			end = len(state.Cards)
		}

		var cells []string
		for _, card := range state.Cards[start:end] {
			isCursor := state.Focus == FocusGrid && card.Index == state.Cursor
			cells = append(cells, r.cardRender.RenderCard(card, isCursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	if below := totalRows - last; below > 0 {
		rows = append(rows, r.styles.Dim.Render(fmt.Sprintf("↓ %d more below ↓", below)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
