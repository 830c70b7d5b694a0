package dialog

import (
	"strings"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	r, err := DefaultRegistry()
	require.NoError(t, err)

	assert.Empty(t, r.Missing(ReservedClasses...))

	tpl, err := r.Instantiate(ClassSaveClose)
	require.NoError(t, err)
	primary, ok := tpl.Primary()
	require.True(t, ok)
	assert.Equal(t, ButtonOK, primary.ID)
	assert.Len(t, tpl.Buttons, 3)
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()
	tpl := Template{Class: "custom", Buttons: []Button{{ID: "ok", Label: "OK"}}}

	require.NoError(t, r.Register(tpl))
	assert.ErrorIs(t, r.Register(tpl), ErrDuplicateClass)
	assert.Equal(t, []string{"custom"}, r.Classes())
}

func TestRegistry_Override(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(Template{Class: "custom", Buttons: []Button{{ID: "ok"}}}))
	require.NoError(t, r.Override(Template{Class: "custom", Buttons: []Button{{ID: "yes"}, {ID: "no"}}}))

	tpl, err := r.Instantiate("custom")
	require.NoError(t, err)
	assert.Len(t, tpl.Buttons, 2)
}

func TestRegistry_InstantiateUnknown(t *testing.T) {
	r := NewRegistry()
	_, err := r.Instantiate("nope")
	assert.ErrorIs(t, err, ErrUnknownClass)
}

func TestRegistry_InstantiateReturnsCopy(t *testing.T) {
	r, err := DefaultRegistry()
	require.NoError(t, err)

	tpl, err := r.Instantiate(ClassError)
	require.NoError(t, err)
	tpl.Buttons[0].Label = "mutated"

	again, err := r.Instantiate(ClassError)
	require.NoError(t, err)
	assert.Equal(t, "OK", again.Buttons[0].Label)
}

func TestTemplate_Validate(t *testing.T) {
	tests := []struct {
		name    string
		tpl     Template
		wantErr string
	}{
		{
			name: "valid",
			tpl:  Template{Class: "x", Buttons: []Button{{ID: "ok", Primary: true}, {ID: "cancel"}}},
		},
		{
			name:    "missing class",
			tpl:     Template{},
			wantErr: "class is required",
		},
		{
			name:    "reserved button id",
			tpl:     Template{Class: "x", Buttons: []Button{{ID: ButtonCanceled}}},
			wantErr: "reserved",
		},
		{
			name:    "duplicate button",
			tpl:     Template{Class: "x", Buttons: []Button{{ID: "ok"}, {ID: "ok"}}},
			wantErr: "duplicate button id",
		},
		{
			name:    "two primaries",
			tpl:     Template{Class: "x", Buttons: []Button{{ID: "a", Primary: true}, {ID: "b", Primary: true}}},
			wantErr: "at most one primary",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tpl.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}

			var fieldErrs criterio.FieldErrors
			require.ErrorAs(t, err, &fieldErrs)
			require.Len(t, fieldErrs, 1)
			assert.Contains(t, fieldErrs[0].Err.Error(), tt.wantErr)
		})
	}
}

func TestLoadTemplates_PrefixesFieldErrors(t *testing.T) {
	input := `
templates:
  - class: good
    buttons:
      - id: ok
  - class: bad
    buttons:
      - id: ""
`
	_, err := LoadTemplates(strings.NewReader(input))

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "templates[1].buttons[0].id", fieldErrs[0].Field)
}

func TestLoadTemplates_DuplicateClass(t *testing.T) {
	input := `
templates:
  - class: same
  - class: same
`
	_, err := LoadTemplates(strings.NewReader(input))

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 1)
	assert.Equal(t, "templates[1].class", fieldErrs[0].Field)
	assert.Contains(t, fieldErrs[0].Err.Error(), "duplicate class")
}

func TestLoadTemplates_Empty(t *testing.T) {
	templates, err := LoadTemplates(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, templates)
}
