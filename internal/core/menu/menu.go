// Package menu builds the application menus from registered commands.
package menu

// Item is a menu entry that runs a command.
type Item struct {
	Command string
	Label   string
	Key     string // key hint, empty when unbound
}

// Menu is a named group of items.
type Menu struct {
	ID    string
	Label string
	Items []Item
}

// CommandSource resolves command ids to display names.
type CommandSource interface {
	Name(id string) (string, bool)
}

// KeySource resolves command ids to key hints.
type KeySource interface {
	KeyFor(command string) (string, bool)
}

// Spec describes a menu before commands and keys are resolved.
type Spec struct {
	ID       string
	Label    string
	Commands []string
}

// Build resolves specs against the registered commands and installed keys.
// Commands that are not registered are left out, and menus that end up empty
// are dropped.
func Build(specs []Spec, commands CommandSource, keys KeySource) []Menu {
	menus := make([]Menu, 0, len(specs))

	for _, spec := range specs {
		m := Menu{ID: spec.ID, Label: spec.Label}
		for _, id := range spec.Commands {
			name, ok := commands.Name(id)
			if !ok {
				continue
			}
			item := Item{Command: id, Label: name}
			if key, ok := keys.KeyFor(id); ok {
				item.Key = key
			}
			m.Items = append(m.Items, item)
		}
		if len(m.Items) > 0 {
			menus = append(menus, m)
		}
	}

	return menus
}
