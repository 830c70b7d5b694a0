package dialog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"sort"

	"github.com/hay-kot/criterio"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownClass is returned when no template is registered for a class.
	ErrUnknownClass = errors.New("unknown dialog class")
	// ErrDuplicateClass is returned when a class is registered twice.
	ErrDuplicateClass = errors.New("dialog class already registered")
)

//go:embed templates.yaml
var defaultTemplates []byte

// TemplateFile is the root YAML structure of a templates file.
type TemplateFile struct {
	Templates []Template `yaml:"templates"`
}

// Registry holds exactly one template per dialog class.
type Registry struct {
	templates map[string]Template
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{templates: make(map[string]Template)}
}

// DefaultRegistry returns a registry populated with the built-in templates.
func DefaultRegistry() (*Registry, error) {
	templates, err := LoadTemplates(bytes.NewReader(defaultTemplates))
	if err != nil {
		return nil, fmt.Errorf("load default templates: %w", err)
	}

	r := NewRegistry()
	for _, t := range templates {
		if err := r.Register(t); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// LoadTemplates parses and validates a templates file.
func LoadTemplates(r io.Reader) ([]Template, error) {
	var file TemplateFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	var errs criterio.FieldErrorsBuilder
	seen := make(map[string]bool, len(file.Templates))
	for i, t := range file.Templates {
		prefix := fmt.Sprintf("templates[%d]", i)

		if err := t.Validate(); err != nil {
			var fieldErrs criterio.FieldErrors
			if errors.As(err, &fieldErrs) {
				for _, fe := range fieldErrs {
					errs = errs.Append(prefix+"."+fe.Field, fe.Err)
				}
			} else {
				errs = errs.Append(prefix, err)
			}
			continue
		}

		if seen[t.Class] {
			errs = errs.Append(prefix+".class", fmt.Errorf("duplicate class %q", t.Class))
			continue
		}
		seen[t.Class] = true
	}

	if err := errs.ToError(); err != nil {
		return nil, err
	}
	return file.Templates, nil
}

// LoadTemplatesFile reads a templates file from disk.
func LoadTemplatesFile(path string) ([]Template, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open templates file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return LoadTemplates(f)
}

// Register adds a template. A class can only be registered once.
func (r *Registry) Register(t Template) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("register %q: %w", t.Class, err)
	}
	if _, exists := r.templates[t.Class]; exists {
		return fmt.Errorf("register %q: %w", t.Class, ErrDuplicateClass)
	}
	r.templates[t.Class] = t.clone()
	return nil
}

// Override registers t, replacing any template already registered for its class.
func (r *Registry) Override(t Template) error {
	if err := t.Validate(); err != nil {
		return fmt.Errorf("override %q: %w", t.Class, err)
	}
	r.templates[t.Class] = t.clone()
	return nil
}

// Instantiate returns a deep copy of the template for class. Callers may
// modify the copy freely.
func (r *Registry) Instantiate(class string) (Template, error) {
	t, ok := r.templates[class]
	if !ok {
		return Template{}, fmt.Errorf("%w: %q", ErrUnknownClass, class)
	}
	return t.clone(), nil
}

// Has reports whether a template exists for class.
func (r *Registry) Has(class string) bool {
	_, ok := r.templates[class]
	return ok
}

// Classes returns the registered classes in sorted order.
func (r *Registry) Classes() []string {
	classes := make([]string, 0, len(r.templates))
	for c := range r.templates {
		classes = append(classes, c)
	}
	sort.Strings(classes)
	return classes
}

// Missing returns the classes from want that are not registered.
func (r *Registry) Missing(want ...string) []string {
	var missing []string
	for _, c := range want {
		if !r.Has(c) && !slices.Contains(missing, c) {
			missing = append(missing, c)
		}
	}
	return missing
}
