package views

import (
	"fmt"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"paintpick/internal/domain"
	"paintpick/internal/widget"
)

func cards(n int) []widget.Card {
	out := make([]widget.Card, n)
	for i := range out {
		out[i] = widget.Card{Index: i, URL: fmt.Sprintf("https://img.example/%d.jpg", i), Label: fmt.Sprintf("Imagen %d", i+1)}
	}
	return out
}

func TestRenderGridShowsScrollIndicators(t *testing.T) {
	r := NewRenderer()
	state := ViewState{
		Width:       120,
		GridVisible: true,
		Focus:       FocusGrid,
		Cards:       cards(13), // four rows
		Cursor:      8,
		FirstRow:    1,
		RowCount:    2,
	}

	out := ansi.Strip(r.renderGrid(state))
	assert.Contains(t, out, "↑ 1 more above")
	assert.Contains(t, out, "↓ 1 more below")
	assert.Contains(t, out, "Imagen 5")
	assert.Contains(t, out, "Imagen 12")
	assert.NotContains(t, out, "Imagen 13")
}

func TestRenderGridAllRowsWithoutViewport(t *testing.T) {
	r := NewRenderer()
	out := ansi.Strip(r.renderGrid(ViewState{GridVisible: true, Cards: cards(5)}))
	assert.Contains(t, out, "Imagen 1")
	assert.Contains(t, out, "Imagen 5")
	assert.NotContains(t, out, "more above")
	assert.NotContains(t, out, "more below")
}

func TestRenderShowsSections(t *testing.T) {
	r := NewRenderer()
	out := ansi.Strip(r.Render(ViewState{
		Width:          120,
		Height:         40,
		SearchEnabled:  false,
		Loading:        true,
		Spinner:        "*",
		Status:         domain.Status{Text: "Buscando imágenes...", Level: domain.LevelInfo},
		PreviewVisible: true,
		SelectedURL:    "https://img.example/a.jpg",
		ColorVisible:   true,
		Color:          &domain.ExtractedColor{Hex: "#3c5ab4", RGB: [3]int{60, 90, 180}},
		HexText:        "#3c5ab4",
		ExcludedCount:  3,
	}))

	assert.Contains(t, out, "Buscar imagen de pintura")
	assert.Contains(t, out, "Buscando...")
	assert.Contains(t, out, "Cargando")
	assert.Contains(t, out, "3 vistas")
	assert.Contains(t, out, "URL: https://img.example/a.jpg")
	assert.Contains(t, out, "HEX: #3c5ab4")
	assert.Contains(t, out, "RGB(60, 90, 180)")
}

func TestGridRowsFor(t *testing.T) {
	assert.Equal(t, 1, GridRowsFor(10))
	assert.Equal(t, 4, GridRowsFor(40))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab...", truncate("abcdefgh", 5))
	assert.Equal(t, "añ", truncate("añbc", 2))
}
