// Package widget holds the paint image search controller. It owns the session state and
// turns user intents into requests; rendering is left to the ui package.
package widget

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"paintpick/internal/api"
	"paintpick/internal/domain"
	"paintpick/internal/eventbus"
	"paintpick/internal/opener"
)

// Status texts
const (
	msgMissingInputs   = "Por favor, ingresa la marca y el código del color."
	msgSearching       = "Buscando imágenes para: %s %s..."
	msgFound           = "Se encontraron %d imágenes. Haz clic en una para seleccionarla."
	msgNoImages        = "No se encontraron imágenes para esta búsqueda."
	msgSearchError     = "Error en la búsqueda: %v"
	msgExtracting      = "Extrayendo color de la imagen..."
	msgExtracted       = "Color extraído: %s"
	msgExtractError    = "Error al extraer color: %s"
	msgBadResponse     = "respuesta inesperada del servidor"
	msgNothingToApply  = "No hay color o imagen seleccionada para aplicar."
	msgApplied         = "¡Color y URL aplicados al formulario con éxito!"
	msgOpenerLost      = "No se pudo comunicar con la ventana principal. Pulse \"Volver\" para regresar al formulario."
	msgApplyError      = "Error al aplicar color: %v"
	brokenImageLabel   = "[imagen no disponible]"
	resultLabelPattern = "Resultado %d"
)

// Card is one rendered search result
type Card struct {
	Index    int
	URL      string
	Label    string
	Selected bool
	Broken   bool // the URL cannot be fetched, the placeholder is shown instead
}

// DisplayURL is what the card shows in place of the image
func (c Card) DisplayURL() string {
	if c.Broken {
		return brokenImageLabel
	}
	return c.URL
}

// Options configures a Widget
type Options struct {
	Client          api.Client
	Opener          opener.Opener
	Bus             eventbus.EventBus
	AutoSearchDelay time.Duration
	CloseDelay      time.Duration
}

// Widget is the search controller. It is driven from a single Bubble Tea update loop
// and is not safe for concurrent use.
type Widget struct {
	ctx             context.Context
	client          api.Client
	opener          opener.Opener
	bus             eventbus.EventBus
	autoSearchDelay time.Duration
	closeDelay      time.Duration

	open      bool
	brand     string
	colorCode string

	excluded *urlSet
	results  []domain.ImageResult

	selected    int // index into results, -1 when nothing is selected
	selectedURL string
	color       *domain.ExtractedColor
	hexText     string
	extractSeq  uint64

	status    domain.Status
	searching bool
	loading   bool
	closing   bool

	gridVisible    bool
	previewVisible bool
	colorVisible   bool
}

// New creates a widget. ctx bounds every request the widget issues.
func New(ctx context.Context, opts Options) *Widget {
	op := opts.Opener
	if op == nil {
		op = opener.None()
	}
	return &Widget{
		ctx:             ctx,
		client:          opts.Client,
		opener:          op,
		bus:             opts.Bus,
		autoSearchDelay: opts.AutoSearchDelay,
		closeDelay:      opts.CloseDelay,
		excluded:        newURLSet(),
		selected:        -1,
		hexText:         domain.PlaceholderHex,
	}
}

// OpenWith fills the inputs and opens the widget. When both values are present a
// search is scheduled after the open delay.
func (w *Widget) OpenWith(brand, colorCode string) tea.Cmd {
	w.brand = brand
	w.colorCode = colorCode
	w.open = true

	auto := brand != "" && colorCode != ""
	w.publish(eventbus.WidgetOpenedEvent{Brand: brand, ColorCode: colorCode, AutoSearch: auto})
	if !auto {
		return nil
	}
	return tea.Tick(w.autoSearchDelay, func(time.Time) tea.Msg {
		return AutoSearchMsg{}
	})
}

// SetInputs records the current values of the brand and color code fields
func (w *Widget) SetInputs(brand, colorCode string) {
	w.brand = brand
	w.colorCode = colorCode
}

// Search validates the inputs and issues a search request. It is a no-op while a
// search is already in flight.
func (w *Widget) Search() tea.Cmd {
	if w.searching {
		return nil
	}

	brand := strings.TrimSpace(w.brand)
	colorCode := strings.TrimSpace(w.colorCode)
	if brand == "" || colorCode == "" {
		w.setStatus(msgMissingInputs, domain.LevelWarning)
		return nil
	}

	w.searching = true
	w.clearResults()
	w.setStatus(fmt.Sprintf(msgSearching, brand, colorCode), domain.LevelInfo)
	w.loading = true

	query := domain.SearchQuery{
		Brand:        brand,
		ColorCode:    colorCode,
		ExcludedURLs: w.excluded.Slice(),
	}
	w.publish(eventbus.SearchStartedEvent{Query: query})

	client, ctx := w.client, w.ctx
	return func() tea.Msg {
		outcome, err := client.Search(ctx, query)
		return SearchResultMsg{Query: query, Outcome: outcome, Err: err}
	}
}

// SelectImage marks the result at index as selected and starts extracting its color
func (w *Widget) SelectImage(index int) tea.Cmd {
	if index < 0 || index >= len(w.results) {
		return nil
	}

	imageURL := w.results[index].URL
	w.selected = index
	w.selectedURL = imageURL
	w.previewVisible = true
	w.publish(eventbus.ImageSelectedEvent{URL: imageURL})

	return w.ExtractColor(imageURL)
}

// ExtractColor clears the current color and requests the dominant color of imageURL.
// Only the response to the most recent request is applied.
func (w *Widget) ExtractColor(imageURL string) tea.Cmd {
	w.colorVisible = false
	w.color = nil
	w.hexText = domain.PlaceholderHex
	w.setStatus(msgExtracting, domain.LevelInfo)
	w.loading = true

	w.extractSeq++
	seq := w.extractSeq
	client, ctx := w.client, w.ctx
	return func() tea.Msg {
		outcome, err := client.ExtractColor(ctx, imageURL)
		return ExtractResultMsg{Seq: seq, URL: imageURL, Outcome: outcome, Err: err}
	}
}

// Apply relays the selected color and image URL to the opener
func (w *Widget) Apply() tea.Cmd {
	if w.selectedURL == "" || w.hexText == "" || w.hexText == domain.PlaceholderHex {
		w.setStatus(msgNothingToApply, domain.LevelDanger)
		return nil
	}

	msg := domain.NewColorMessage(w.hexText, w.selectedURL)
	log.Printf("Sending color to opener: %+v", msg)

	op, ctx := w.opener, w.ctx
	return func() tea.Msg {
		if !op.Live(ctx) {
			return ApplyResultMsg{Message: msg}
		}
		if err := op.Post(ctx, msg); err != nil {
			return ApplyResultMsg{Message: msg, Err: err}
		}
		return ApplyResultMsg{Message: msg, Delivered: true}
	}
}

// Reset clears results, selection and color. URLs already shown stay excluded.
func (w *Widget) Reset() {
	if w.searching {
		return
	}
	w.clearResults()
	w.loading = false
	w.status = domain.Status{}
}

// clearResults drops the grid, the selection and the color panel
func (w *Widget) clearResults() {
	w.results = nil
	w.selected = -1
	w.selectedURL = ""
	w.color = nil
	w.hexText = domain.PlaceholderHex
	// A pending extraction belongs to the results being dropped
	w.extractSeq++
	w.gridVisible = false
	w.previewVisible = false
	w.colorVisible = false
}

// Update applies the result messages produced by the widget's own commands
func (w *Widget) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case AutoSearchMsg:
		return w.Search()
	case SearchResultMsg:
		w.handleSearchResult(msg)
	case ExtractResultMsg:
		w.handleExtractResult(msg)
	case ApplyResultMsg:
		return w.handleApplyResult(msg)
	case CloseMsg:
		w.closing = true
		w.open = false
	}
	return nil
}

func (w *Widget) handleSearchResult(msg SearchResultMsg) {
	// Whatever happened, the trigger is usable again
	defer func() {
		w.searching = false
		w.loading = false
	}()

	if msg.Err != nil {
		log.Printf("Search failed: %v", msg.Err)
		w.setStatus(fmt.Sprintf(msgSearchError, msg.Err), domain.LevelDanger)
		w.publish(eventbus.ErrorEvent{Op: "search", Message: msg.Err.Error(), Err: msg.Err})
		return
	}

	switch outcome := msg.Outcome.(type) {
	case api.SearchFailed:
		w.setStatus(outcome.Message, domain.LevelDanger)
		w.publish(eventbus.ErrorEvent{Op: "search", Message: outcome.Message})
	case api.SearchFound:
		w.results = outcome.Images
		for _, img := range outcome.Images {
			w.excluded.Add(img.URL)
		}
		w.gridVisible = true
		w.setStatus(fmt.Sprintf(msgFound, len(outcome.Images)), domain.LevelSuccess)
		w.publish(eventbus.SearchCompletedEvent{
			Brand:     msg.Query.Brand,
			ColorCode: msg.Query.ColorCode,
			Found:     len(outcome.Images),
			Excluded:  w.excluded.Len(),
		})
	default:
		w.setStatus(msgNoImages, domain.LevelWarning)
		w.publish(eventbus.SearchCompletedEvent{
			Brand:     msg.Query.Brand,
			ColorCode: msg.Query.ColorCode,
			Excluded:  w.excluded.Len(),
		})
	}
}

func (w *Widget) handleExtractResult(msg ExtractResultMsg) {
	if msg.Seq != w.extractSeq {
		log.Printf("Discarding stale color for %s", msg.URL)
		return
	}
	w.loading = false

	if msg.Err != nil {
		log.Printf("Color extraction failed: %v", msg.Err)
		w.setStatus(fmt.Sprintf(msgExtractError, msg.Err.Error()), domain.LevelDanger)
		w.publish(eventbus.ErrorEvent{Op: "extract-color", Message: msg.Err.Error(), Err: msg.Err})
		return
	}

	switch outcome := msg.Outcome.(type) {
	case api.ExtractSucceeded:
		c := outcome.Color
		w.color = &c
		w.hexText = c.Hex
		w.colorVisible = true
		w.setStatus(fmt.Sprintf(msgExtracted, c.Hex), domain.LevelSuccess)
		w.publish(eventbus.ColorExtractedEvent{ImageURL: msg.URL, Color: c})
	case api.ExtractFailed:
		w.setStatus(fmt.Sprintf(msgExtractError, outcome.Message), domain.LevelDanger)
		w.publish(eventbus.ErrorEvent{Op: "extract-color", Message: outcome.Message})
	default:
		log.Printf("Unexpected extraction outcome for %s: %T", msg.URL, msg.Outcome)
		w.setStatus(fmt.Sprintf(msgExtractError, msgBadResponse), domain.LevelDanger)
		w.publish(eventbus.ErrorEvent{Op: "extract-color", Message: msgBadResponse})
	}
}

func (w *Widget) handleApplyResult(msg ApplyResultMsg) tea.Cmd {
	if msg.Err != nil {
		log.Printf("Apply failed: %v", msg.Err)
		w.setStatus(fmt.Sprintf(msgApplyError, msg.Err), domain.LevelDanger)
		w.publish(eventbus.ErrorEvent{Op: "apply", Message: msg.Err.Error(), Err: msg.Err})
		return nil
	}
	if !msg.Delivered {
		w.setStatus(msgOpenerLost, domain.LevelWarning)
		return nil
	}

	w.setStatus(msgApplied, domain.LevelSuccess)
	w.publish(eventbus.ColorAppliedEvent{Message: msg.Message})
	return tea.Tick(w.closeDelay, func(time.Time) tea.Msg {
		return CloseMsg{}
	})
}

func (w *Widget) setStatus(text string, level domain.StatusLevel) {
	w.status = domain.Status{Text: text, Level: level}
}

func (w *Widget) publish(event eventbus.DomainEvent) {
	if w.bus != nil {
		w.bus.Publish(event)
	}
}

// Cards returns the current results as renderable cards
func (w *Widget) Cards() []Card {
	cards := make([]Card, len(w.results))
	for i, img := range w.results {
		cards[i] = Card{
			Index:    i,
			URL:      img.URL,
			Label:    fmt.Sprintf(resultLabelPattern, i+1),
			Selected: i == w.selected,
			Broken:   !fetchable(img.URL),
		}
	}
	return cards
}

// fetchable reports whether u is an absolute http(s) URL
func fetchable(u string) bool {
	parsed, err := url.Parse(u)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

// IsOpen reports whether the widget is showing
func (w *Widget) IsOpen() bool { return w.open }

// Closing reports whether the widget asked to close
func (w *Widget) Closing() bool { return w.closing }

// Brand returns the brand input value
func (w *Widget) Brand() string { return w.brand }

// ColorCode returns the color code input value
func (w *Widget) ColorCode() string { return w.colorCode }

// Status returns the current status message
func (w *Widget) Status() domain.Status { return w.status }

// Searching reports whether a search is in flight
func (w *Widget) Searching() bool { return w.searching }

// SearchEnabled reports whether the search trigger accepts input
func (w *Widget) SearchEnabled() bool { return !w.searching }

// Loading reports whether the loading indicator is visible
func (w *Widget) Loading() bool { return w.loading }

// GridVisible reports whether the result grid is visible
func (w *Widget) GridVisible() bool { return w.gridVisible }

// PreviewVisible reports whether the selected image pane is visible
func (w *Widget) PreviewVisible() bool { return w.previewVisible }

// ColorVisible reports whether the color panel is visible
func (w *Widget) ColorVisible() bool { return w.colorVisible }

// SelectedURL returns the selected image URL, or ""
func (w *Widget) SelectedURL() string { return w.selectedURL }

// SelectedIndex returns the selected result index, or -1
func (w *Widget) SelectedIndex() int { return w.selected }

// Color returns the extracted color for the current selection, or nil
func (w *Widget) Color() *domain.ExtractedColor { return w.color }

// HexText returns the hex field text, the placeholder when no color is known
func (w *Widget) HexText() string { return w.hexText }

// ExcludedURLs returns every URL shown this session, in the order first shown
func (w *Widget) ExcludedURLs() []string { return w.excluded.Slice() }

// Results returns the last search results
func (w *Widget) Results() []domain.ImageResult { return w.results }
