package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"

	"prodview/internal/ui/input/types"
)

// HelpRenderer handles help content rendering
type HelpRenderer struct {
	keys types.KeyMap
}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer(keys types.KeyMap) *HelpRenderer {
	return &HelpRenderer{keys: keys}
}

type helpSection struct {
	title    string
	bindings []key.Binding
}

func (r *HelpRenderer) sections() []helpSection {
	k := r.keys
	return []helpSection{
		{"Images", []key.Binding{k.NextImage, k.PrevImage, k.FirstImage, k.LastImage, k.Thumbnail}},
		{"Catalog", []key.Binding{k.NextProduct, k.PrevProduct, k.Description, k.Rescan}},
		{"Other", []key.Binding{k.Help, k.Quit}},
	}
}

// RenderHelpContent renders the help popup, scrolled by scrollOffset lines
// and clipped to fit a screen of the given height
func (r *HelpRenderer) RenderHelpContent(height int, scrollOffset int) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39"))

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220")).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder
	help.WriteString(titleStyle.Render("prodview Help"))
	help.WriteString("\n")

	for i, section := range r.sections() {
		if i > 0 {
			help.WriteString("\n")
		}
		help.WriteString(sectionStyle.Render(section.title))
		help.WriteString("\n")
		for _, b := range section.bindings {
			h := b.Help()
			help.WriteString(fmt.Sprintf("  %s%s\n", keyStyle.Render(h.Key), descStyle.Render(h.Desc)))
		}
	}
	help.WriteString("\n")
	help.WriteString(lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")).Render("esc or ? closes this help"))

	content := help.String()
	lines := strings.Split(content, "\n")
	totalLines := len(lines)

	// Account for popup border and padding
	visibleHeight := height - 6
	if visibleHeight < 5 {
		visibleHeight = 5
	}
	if totalLines <= visibleHeight {
		return content
	}

	maxOffset := totalLines - visibleHeight
	scrollOffset = min(max(scrollOffset, 0), maxOffset)

	endLine := scrollOffset + visibleHeight
	visibleLines := append([]string(nil), lines[scrollOffset:endLine]...)

	hint := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	if scrollOffset > 0 {
		visibleLines[0] = hint.Render("↑ (more above)")
	}
	if endLine < totalLines {
		visibleLines[len(visibleLines)-1] = hint.Render("↓ (more below)")
	}
	return strings.Join(visibleLines, "\n")
}

// Pager shows long content outside the bubbletea renderer
type Pager interface {
	Show(content string) error
}

// PagerOps shows content in the ov pager, handing the terminal over while it runs
type PagerOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewPagerOps creates a new pager instance
func NewPagerOps(program *tea.Program) *PagerOps {
	return &PagerOps{
		program: program,
	}
}

// SetProgram sets the program whose terminal is released while paging
func (p *PagerOps) SetProgram(program *tea.Program) {
	p.program = program
}

// Show displays content in ov and blocks until the user quits it
func (p *PagerOps) Show(content string) error {
	if p.program == nil {
		return errors.New("program not set")
	}

	if err := p.program.ReleaseTerminal(); err != nil {
		return fmt.Errorf("release terminal: %w", err)
	}

	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return fmt.Errorf("create pager: %w", err)
	}

	// Don't write the content back to the screen on exit
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
