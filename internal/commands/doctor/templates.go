package doctor

import (
	"context"
	"fmt"
	"strings"

	"github.com/hay-kot/scribe/internal/dialog"
)

// TemplatesCheck verifies that every dialog class the editor shows has a
// usable template once user overrides are applied.
type TemplatesCheck struct {
	templatesFile string
}

// NewTemplatesCheck creates a check for the built-in templates plus the
// optional user templates file.
func NewTemplatesCheck(templatesFile string) *TemplatesCheck {
	return &TemplatesCheck{templatesFile: templatesFile}
}

func (c *TemplatesCheck) Name() string {
	return "Dialog Templates"
}

func (c *TemplatesCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	registry, err := dialog.DefaultRegistry()
	if err != nil {
		result.Items = append(result.Items, CheckItem{
			Label:  "Built-in templates",
			Status: StatusFail,
			Detail: err.Error(),
		})
		return result
	}

	if c.templatesFile != "" {
		templates, err := dialog.LoadTemplatesFile(c.templatesFile)
		if err != nil {
			result.Items = append(result.Items, failures(err)...)
			return result
		}
		for _, t := range templates {
			if err := registry.Override(t); err != nil {
				result.Items = append(result.Items, failures(err)...)
				return result
			}
		}
		result.Items = append(result.Items, CheckItem{
			Label:  "Templates file",
			Status: StatusPass,
			Detail: fmt.Sprintf("%d override(s) from %s", len(templates), c.templatesFile),
		})
	}

	if missing := registry.Missing(dialog.ReservedClasses...); len(missing) > 0 {
		result.Items = append(result.Items, CheckItem{
			Label:  "Reserved classes",
			Status: StatusFail,
			Detail: "missing " + strings.Join(missing, ", "),
		})
		return result
	}

	for _, class := range dialog.ReservedClasses {
		tpl, _ := registry.Instantiate(class)
		item := CheckItem{Label: class, Status: StatusPass, Detail: buttonList(tpl)}
		if _, ok := tpl.Primary(); !ok {
			item.Status = StatusWarn
			item.Detail += " (no primary button, enter does nothing)"
		}
		result.Items = append(result.Items, item)
	}

	return result
}

func buttonList(t dialog.Template) string {
	ids := make([]string, len(t.Buttons))
	for i, b := range t.Buttons {
		ids[i] = b.ID
		if b.Primary {
			ids[i] += "*"
		}
	}
	return strings.Join(ids, " ")
}
