package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/scribe/internal/core/config"
	"github.com/hay-kot/scribe/internal/dialog"
	"github.com/hay-kot/scribe/internal/printer"
)

func runDialogs(t *testing.T, cfg config.Config, args ...string) (stdout, stderr string) {
	t.Helper()

	var out, errOut bytes.Buffer
	flags := &Flags{Config: &cfg}
	root := &cli.Command{Name: "scribe", Writer: &out, ErrWriter: &errOut}
	root = NewDialogsCmd(flags).Register(root)

	ctx := printer.NewContext(context.Background(), printer.New(&errOut))
	require.NoError(t, root.Run(ctx, append([]string{"scribe", "dialogs"}, args...)))
	return out.String(), errOut.String()
}

func TestDialogsCmd_JSON(t *testing.T) {
	stdout, _ := runDialogs(t, config.DefaultConfig(), "--format", "json")

	var templates []dialog.Template
	require.NoError(t, json.Unmarshal([]byte(stdout), &templates))

	classes := make([]string, len(templates))
	for i, tpl := range templates {
		classes[i] = tpl.Class
	}
	assert.ElementsMatch(t, dialog.ReservedClasses, classes)
}

func TestDialogsCmd_TextWithOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dialogs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`templates:
  - class: error-dialog
    buttons:
      - id: ok
        label: Understood
        primary: true
`), 0o644))

	cfg := config.DefaultConfig()
	cfg.Dialogs.TemplatesFile = path

	_, stderr := runDialogs(t, cfg)
	assert.Contains(t, stderr, "error-dialog")
	assert.Contains(t, stderr, "Understood")
	assert.Contains(t, stderr, "primary")
}
