// Package tmpl renders the markdown text shown in dialogs and status messages.
package tmpl

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"
)

// code wraps s in an inline markdown code span. A span containing backticks
// is fenced with a longer run so the content stays literal.
func code(s string) string {
	fence := "`"
	for strings.Contains(s, fence) {
		fence += "`"
	}
	if strings.HasPrefix(s, "`") || strings.HasSuffix(s, "`") {
		return fence + " " + s + " " + fence
	}
	return fence + s + fence
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
	"#", `\#`,
)

// escape backslash-escapes markdown control characters.
func escape(s string) string {
	return markdownEscaper.Replace(s)
}

var funcs = template.FuncMap{
	"code":   code,
	"escape": escape,
	"base":   filepath.Base,
	"dir":    filepath.Dir,
}

// Render executes a Go template string with the given data.
// Returns an error if the template is invalid or references undefined keys.
//
// Available template functions:
//   - code: wrap a string in an inline code span
//   - escape: escape markdown control characters
//   - base, dir: path helpers from path/filepath
func Render(tmpl string, data any) (string, error) {
	t, err := template.New("").Funcs(funcs).Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}

	return buf.String(), nil
}
