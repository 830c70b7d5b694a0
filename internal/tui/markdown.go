package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog/log"
)

// markdown renders dialog bodies. Renderers are cached per wrap width since
// building one parses the whole style sheet.
type markdown struct {
	style     string
	renderers map[int]*glamour.TermRenderer
}

func newMarkdown(style string) *markdown {
	if style == "" {
		style = "tokyo-night"
	}
	return &markdown{style: style, renderers: make(map[int]*glamour.TermRenderer)}
}

// Render returns body rendered for width columns. Rendering failures fall
// back to the raw text.
func (m *markdown) Render(body string, width int) string {
	r, ok := m.renderers[width]
	if !ok {
		var err error
		r, err = glamour.NewTermRenderer(
			glamour.WithStandardStyle(m.style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			log.Debug().Err(err).Str("style", m.style).Msg("markdown renderer unavailable")
			return body
		}
		m.renderers[width] = r
	}

	out, err := r.Render(body)
	if err != nil {
		return body
	}
	return strings.Trim(out, "\n")
}
