package ui

import (
	"log"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"paintpick/internal/ui/logic"
	"paintpick/internal/ui/views"
	"paintpick/internal/widget"
)

// Model represents the UI state
type Model struct {
	widget *widget.Widget

	initialBrand string
	initialCode  string

	brandInput textinput.Model
	codeInput  textinput.Model
	focus      views.Focus
	nav        *logic.GridNavigator

	width   int
	height  int
	spinner spinner.Model
	help    help.Model
	keys    keyMap

	renderer     *views.Renderer
	helpRenderer *HelpRenderer
	pager        *PagerOps
	inPagerMode  bool // tracks if we're currently in pager mode

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a UI bound to w. brand and code prefill the inputs.
func NewModel(w *widget.Widget, brand, code string) *Model {
	brandInput := textinput.New()
	brandInput.Placeholder = "p. ej. Sherwin-Williams"
	brandInput.CharLimit = 80
	brandInput.Width = 30
	brandInput.SetValue(brand)
	brandInput.Focus()

	codeInput := textinput.New()
	codeInput.Placeholder = "p. ej. SW 7005"
	codeInput.CharLimit = 40
	codeInput.Width = 30
	codeInput.SetValue(code)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Model{
		widget:       w,
		initialBrand: brand,
		initialCode:  code,
		brandInput:   brandInput,
		codeInput:    codeInput,
		focus:        views.FocusBrand,
		nav:          logic.NewGridNavigator(views.GridColumns),
		spinner:      sp,
		help:         help.New(),
		keys:         newKeyMap(),
		renderer:     views.NewRenderer(),
		helpRenderer: NewHelpRenderer(),
		pager:        NewPagerOps(),
	}
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager.SetProgram(p)
}

// Init opens the widget with the prefilled values
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
		m.widget.OpenWith(m.initialBrand, m.initialCode),
	)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.nav.SetVisibleRows(views.GridRowsFor(msg.Height))
		return m, nil

	case tea.KeyMsg:
		if m.inPagerMode {
			return m, nil
		}
		return m, m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, tea.ClearScreen

	case pagerMsg:
		if msg.err != nil {
			log.Printf("Pager failed: %v", msg.err)
		}
		return m, nil

	case widget.CloseMsg:
		m.widget.Update(msg)
		return m, tea.Quit

	case widget.AutoSearchMsg, widget.ExtractResultMsg, widget.ApplyResultMsg:
		return m, m.widget.Update(msg)

	case widget.SearchResultMsg:
		cmd := m.widget.Update(msg)
		m.nav.Reset(len(m.widget.Results()))
		if m.widget.GridVisible() {
			m.setFocus(views.FocusGrid)
		}
		return m, cmd
	}

	// Cursor blink and anything else the focused input wants
	return m, m.updateFocusedInput(msg)
}

// handleKey routes a key press according to the focused control
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.NextField):
		m.cycleFocus(1)
		return nil
	case key.Matches(msg, m.keys.PrevField):
		m.cycleFocus(-1)
		return nil
	case msg.String() == "ctrl+r":
		m.reset()
		return nil
	}

	if m.focus == views.FocusGrid {
		return m.handleGridKey(msg)
	}

	if key.Matches(msg, m.keys.Search) {
		return m.search()
	}
	cmd := m.updateFocusedInput(msg)
	m.widget.SetInputs(m.brandInput.Value(), m.codeInput.Value())
	return cmd
}

func (m *Model) handleGridKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Left):
		m.nav.Left()
	case key.Matches(msg, m.keys.Right):
		m.nav.Right()
	case key.Matches(msg, m.keys.Up):
		m.nav.Up()
	case key.Matches(msg, m.keys.Down):
		m.nav.Down()
	case key.Matches(msg, m.keys.Select):
		return m.widget.SelectImage(m.nav.Cursor())
	case key.Matches(msg, m.keys.Apply):
		return m.widget.Apply()
	case key.Matches(msg, m.keys.Reset):
		m.reset()
	case key.Matches(msg, m.keys.Seen):
		return m.showInPager(m.helpRenderer.RenderSeenContent(m.widget.ExcludedURLs()))
	case key.Matches(msg, m.keys.Help):
		return m.showInPager(m.helpRenderer.RenderHelpContent())
	case msg.String() == "q":
		return tea.Quit
	}
	return nil
}

func (m *Model) search() tea.Cmd {
	m.widget.SetInputs(m.brandInput.Value(), m.codeInput.Value())
	return m.widget.Search()
}

func (m *Model) reset() {
	m.widget.Reset()
	m.nav.Reset(len(m.widget.Results()))
	if !m.widget.GridVisible() && m.focus == views.FocusGrid {
		m.setFocus(views.FocusBrand)
	}
}

// cycleFocus moves focus by delta, skipping the grid while it is hidden
func (m *Model) cycleFocus(delta int) {
	stops := []views.Focus{views.FocusBrand, views.FocusCode}
	if m.widget.GridVisible() {
		stops = append(stops, views.FocusGrid)
	}

	current := 0
	for i, f := range stops {
		if f == m.focus {
			current = i
		}
	}
	next := (current + delta + len(stops)) % len(stops)
	m.setFocus(stops[next])
}

func (m *Model) setFocus(f views.Focus) {
	m.focus = f
	m.brandInput.Blur()
	m.codeInput.Blur()
	switch f {
	case views.FocusBrand:
		m.brandInput.Focus()
	case views.FocusCode:
		m.codeInput.Focus()
	}
}

func (m *Model) updateFocusedInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.focus {
	case views.FocusBrand:
		m.brandInput, cmd = m.brandInput.Update(msg)
	case views.FocusCode:
		m.codeInput, cmd = m.codeInput.Update(msg)
	}
	return cmd
}

// showInPager returns a command that pages content with ov, pausing rendering meanwhile
func (m *Model) showInPager(content string) tea.Cmd {
	if m.program == nil {
		return func() tea.Msg { return pagerMsg{err: errNoProgram} }
	}
	return func() tea.Msg {
		m.program.Send(pauseRenderingMsg{})
		err := m.pager.ShowInPager(content)
		m.program.Send(resumeRenderingMsg{})
		return pagerMsg{err: err}
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}

	firstRow, rowCount := m.nav.VisibleRows()
	state := views.ViewState{
		Width:          m.width,
		Height:         m.height,
		Focus:          m.focus,
		BrandInput:     m.brandInput.View(),
		CodeInput:      m.codeInput.View(),
		SearchEnabled:  m.widget.SearchEnabled(),
		Loading:        m.widget.Loading(),
		Spinner:        m.spinner.View(),
		Status:         m.widget.Status(),
		GridVisible:    m.widget.GridVisible(),
		Cards:          m.widget.Cards(),
		Cursor:         m.nav.Cursor(),
		FirstRow:       firstRow,
		RowCount:       rowCount,
		PreviewVisible: m.widget.PreviewVisible(),
		SelectedURL:    m.widget.SelectedURL(),
		ColorVisible:   m.widget.ColorVisible(),
		Color:          m.widget.Color(),
		HexText:        m.widget.HexText(),
		ExcludedCount:  len(m.widget.ExcludedURLs()),
		HelpView:       m.help.View(m.keys),
	}
	return m.renderer.Render(state)
}

// Focus returns the focused control
func (m *Model) Focus() views.Focus { return m.focus }

// Cursor returns the index of the card under the cursor
func (m *Model) Cursor() int { return m.nav.Cursor() }
