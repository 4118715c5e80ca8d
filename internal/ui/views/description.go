package views

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// DefaultDescriptionStyle picks a dark or light theme from the terminal
const DefaultDescriptionStyle = "auto"

// DescriptionRenderer renders product descriptions as markdown. Renderers
// are cached per wrap width; a glamour renderer is not safe for concurrent
// use, so rendering is serialized.
type DescriptionRenderer struct {
	style string

	mu        sync.Mutex
	renderers map[int]*glamour.TermRenderer
}

// NewDescriptionRenderer creates a renderer for a glamour style name
// ("auto", "dark", "light", "notty", ...) or a style file path
func NewDescriptionRenderer(style string) *DescriptionRenderer {
	if strings.TrimSpace(style) == "" {
		style = DefaultDescriptionStyle
	}
	return &DescriptionRenderer{
		style:     style,
		renderers: make(map[int]*glamour.TermRenderer),
	}
}

// Style returns the configured style name
func (dr *DescriptionRenderer) Style() string {
	return dr.style
}

// Render renders markdown wrapped at width cells
func (dr *DescriptionRenderer) Render(markdown string, width int) (string, error) {
	if strings.TrimSpace(markdown) == "" {
		return "", nil
	}

	dr.mu.Lock()
	defer dr.mu.Unlock()

	r, err := dr.renderer(width)
	if err != nil {
		return "", err
	}
	out, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("render description: %w", err)
	}
	return strings.Trim(out, "\n"), nil
}

// Preview renders the description and keeps at most maxLines lines.
// truncated reports whether lines were dropped.
func (dr *DescriptionRenderer) Preview(markdown string, width, maxLines int) (preview string, truncated bool, err error) {
	out, err := dr.Render(markdown, width)
	if err != nil {
		return "", false, err
	}
	lines := strings.Split(out, "\n")
	if len(lines) <= maxLines {
		return out, false, nil
	}
	return strings.Join(lines[:maxLines], "\n"), true, nil
}

// renderer must be called with mu held
func (dr *DescriptionRenderer) renderer(width int) (*glamour.TermRenderer, error) {
	if width < 20 {
		width = 20
	}

	if r, ok := dr.renderers[width]; ok {
		return r, nil
	}

	styleOpt := glamour.WithStylePath(dr.style)
	if dr.style == DefaultDescriptionStyle {
		styleOpt = glamour.WithAutoStyle()
	}

	r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		return nil, fmt.Errorf("create markdown renderer: %w", err)
	}
	dr.renderers[width] = r
	return r, nil
}
