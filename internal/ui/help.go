package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"
)

var errNoProgram = errors.New("program not set")

// HelpRenderer renders the long-form help and the list of images already shown
type HelpRenderer struct {
	title   lipgloss.Style
	section lipgloss.Style
	key     lipgloss.Style
	desc    lipgloss.Style
	note    lipgloss.Style
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")).MarginBottom(1),
		section: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).MarginTop(1),
		key:     lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		desc:    lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		note:    lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")),
	}
}

func (r *HelpRenderer) line(b *strings.Builder, keys, desc string) {
	b.WriteString(fmt.Sprintf("  %s %s\n", r.key.Width(14).Render(keys), r.desc.Render(desc)))
}

// RenderHelpContent generates help content with colors for the pager
func (r *HelpRenderer) RenderHelpContent() string {
	var help strings.Builder

	help.WriteString(r.title.Render("paintpick Help"))
	help.WriteString("\n")

	help.WriteString(r.section.Render("Search"))
	help.WriteString("\n")
	r.line(&help, "Tab", "Move between brand, color code and results")
	r.line(&help, "Shift+Tab", "Move back")
	r.line(&help, "Enter", "Search images for the brand and color code")
	help.WriteString(r.note.Render("  Images already shown are never offered again in this session"))
	help.WriteString("\n\n")

	help.WriteString(r.section.Render("Results"))
	help.WriteString("\n")
	r.line(&help, "↑/↓/←/→", "Move the cursor (also h/j/k/l)")
	r.line(&help, "Enter/Space", "Select the image and extract its color")
	r.line(&help, "a", "Apply the color to the form")
	r.line(&help, "r, Ctrl+R", "Reset the results")
	r.line(&help, "v", "List images already shown")
	help.WriteString("\n")

	help.WriteString(r.section.Render("Other"))
	help.WriteString("\n")
	r.line(&help, "?", "Show this help")
	r.line(&help, "Esc", "Close")

	return help.String()
}

// RenderSeenContent lists the URLs already shown this session
func (r *HelpRenderer) RenderSeenContent(urls []string) string {
	var b strings.Builder
	b.WriteString(r.title.Render(fmt.Sprintf("Imágenes ya mostradas (%d)", len(urls))))
	b.WriteString("\n")
	if len(urls) == 0 {
		b.WriteString(r.note.Render("Aún no se ha mostrado ninguna imagen."))
		b.WriteString("\n")
		return b.String()
	}
	for i, u := range urls {
		b.WriteString(fmt.Sprintf("%s %s\n", r.key.Render(fmt.Sprintf("%3d", i+1)), u))
	}
	return b.String()
}

// PagerOps runs long content through the ov pager
type PagerOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewPagerOps creates a new pager operations instance
func NewPagerOps() *PagerOps {
	return &PagerOps{}
}

// SetProgram sets the program reference for terminal management
func (p *PagerOps) SetProgram(program *tea.Program) {
	p.program = program
}

// ShowInPager shows content using ov pager
func (p *PagerOps) ShowInPager(content string) error {
	if p.program == nil {
		return errNoProgram
	}

	// Release terminal control to run ov
	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}

	defer func() {
		// Give ov time to leave the alternate screen
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
