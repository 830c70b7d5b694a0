// Package dialog implements the modal dialog facility: a registry of dialog
// templates, the lifecycle of live dialog instances, the input capture stack
// that keeps keyboard and pointer input inside the active dialog, and the
// completion handles returned to callers.
package dialog

import (
	"fmt"
	"slices"

	"github.com/hay-kot/criterio"
)

// Reserved button identifiers.
const (
	ButtonCancel   = "cancel"
	ButtonOK       = "ok"
	ButtonDontSave = "dontsave"

	// ButtonCanceled is reported when an instance is closed by CancelAll.
	// Templates cannot declare a button with this id.
	ButtonCanceled = "_canceled"
)

// Dialog classes used by the editor.
const (
	ClassError      = "error-dialog"
	ClassSaveClose  = "save-close-dialog"
	ClassExtChanged = "ext-changed-dialog"
	ClassExtDeleted = "ext-deleted-dialog"
)

// ReservedClasses lists the classes the editor expects to find registered.
var ReservedClasses = []string{ClassError, ClassSaveClose, ClassExtChanged, ClassExtDeleted}

// Button is an element of a dialog tagged with a button identifier.
type Button struct {
	ID      string `yaml:"id"      json:"id"`
	Label   string `yaml:"label"   json:"label"`
	Primary bool   `yaml:"primary" json:"primary,omitempty"`
}

// Template is the static description of a dialog class. Every instance of
// the class gets a title region, a body region and a copy of the buttons.
type Template struct {
	Class   string   `yaml:"class"   json:"class"`
	Width   int      `yaml:"width"   json:"width,omitempty"`
	Buttons []Button `yaml:"buttons" json:"buttons"`
}

// Primary returns the button nominated for Enter-key confirmation.
func (t Template) Primary() (Button, bool) {
	for _, b := range t.Buttons {
		if b.Primary {
			return b, true
		}
	}
	return Button{}, false
}

// Button looks up a button by id.
func (t Template) Button(id string) (Button, bool) {
	for _, b := range t.Buttons {
		if b.ID == id {
			return b, true
		}
	}
	return Button{}, false
}

// clone returns a copy that shares no memory with t.
func (t Template) clone() Template {
	t.Buttons = slices.Clone(t.Buttons)
	return t
}

// Validate checks the template markup contract.
func (t Template) Validate() error {
	var errs criterio.FieldErrorsBuilder

	if t.Class == "" {
		errs = errs.Append("class", fmt.Errorf("class is required"))
	}
	if t.Width < 0 {
		errs = errs.Append("width", fmt.Errorf("width cannot be negative"))
	}

	seen := make(map[string]bool, len(t.Buttons))
	primaries := 0
	for i, b := range t.Buttons {
		field := fmt.Sprintf("buttons[%d]", i)
		switch {
		case b.ID == "":
			errs = errs.Append(field+".id", fmt.Errorf("button id is required"))
		case b.ID == ButtonCanceled:
			errs = errs.Append(field+".id", fmt.Errorf("button id %q is reserved", ButtonCanceled))
		case seen[b.ID]:
			errs = errs.Append(field+".id", fmt.Errorf("duplicate button id %q", b.ID))
		}
		seen[b.ID] = true

		if b.Primary {
			primaries++
		}
	}

	if primaries > 1 {
		errs = errs.Append("buttons", fmt.Errorf("at most one primary button allowed, found %d", primaries))
	}

	return errs.ToError()
}
