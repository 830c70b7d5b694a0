// Package keymap maps normalized key descriptors such as "Ctrl-S" to command
// ids and dispatches matching key presses.
package keymap

import (
	"fmt"
	"runtime"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Platforms recognized by bindings.
const (
	PlatformMac   = "mac"
	PlatformWin   = "win"
	PlatformLinux = "linux"
)

// CurrentPlatform returns the platform name for the running OS.
func CurrentPlatform() string {
	switch runtime.GOOS {
	case "darwin":
		return PlatformMac
	case "windows":
		return PlatformWin
	default:
		return PlatformLinux
	}
}

// IsPlatform reports whether p is a recognized platform name.
func IsPlatform(p string) bool {
	switch p {
	case PlatformMac, PlatformWin, PlatformLinux:
		return true
	default:
		return false
	}
}

// Binding ties a key descriptor to a command. An empty Platform applies to
// every platform.
type Binding struct {
	Key      string
	Command  string
	Platform string
}

// KeyMap is an immutable set of bindings for one platform.
type KeyMap struct {
	platform string
	bindings map[string]string
}

// Create builds a keymap from bindings that apply to platform. Later bindings
// for the same key win. Descriptors that cannot be normalized are reported.
func Create(bindings []Binding, platform string) (KeyMap, error) {
	km := KeyMap{
		platform: platform,
		bindings: make(map[string]string, len(bindings)),
	}

	for _, b := range bindings {
		if b.Platform != "" && b.Platform != platform {
			continue
		}

		key, err := Normalize(b.Key)
		if err != nil {
			return KeyMap{}, fmt.Errorf("binding for %q: %w", b.Command, err)
		}
		km.bindings[key] = b.Command
	}

	return km, nil
}

// Platform returns the platform the keymap was built for.
func (k KeyMap) Platform() string {
	return k.platform
}

// Lookup returns the command bound to a normalized descriptor.
func (k KeyMap) Lookup(key string) (string, bool) {
	cmd, ok := k.bindings[key]
	return cmd, ok
}

// KeyFor returns the descriptor bound to command. When several keys are bound
// the alphabetically first is returned.
func (k KeyMap) KeyFor(command string) (string, bool) {
	var keys []string
	for key, cmd := range k.bindings {
		if cmd == command {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return "", false
	}
	sort.Strings(keys)
	return keys[0], true
}

// Len returns the number of bindings.
func (k KeyMap) Len() int {
	return len(k.bindings)
}

var modifierOrder = []string{"Ctrl", "Alt", "Shift"}

// Normalize converts a descriptor like "ctrl-shift-s" into canonical form
// "Ctrl-Shift-S": modifiers in Ctrl, Alt, Shift order, then the key.
func Normalize(desc string) (string, error) {
	desc = strings.TrimSpace(desc)
	if desc == "" {
		return "", fmt.Errorf("empty key descriptor")
	}

	parts := strings.Split(desc, "-")
	// "Ctrl--" binds the minus key.
	if strings.HasSuffix(desc, "--") {
		parts = append(parts[:len(parts)-2], "-")
	}

	key := parts[len(parts)-1]
	if key == "" {
		return "", fmt.Errorf("descriptor %q has no key", desc)
	}

	mods := make(map[string]bool, len(parts)-1)
	for _, p := range parts[:len(parts)-1] {
		mod, ok := canonicalModifier(p)
		if !ok {
			return "", fmt.Errorf("descriptor %q has unknown modifier %q", desc, p)
		}
		mods[mod] = true
	}

	var b strings.Builder
	for _, mod := range modifierOrder {
		if mods[mod] {
			b.WriteString(mod)
			b.WriteByte('-')
		}
	}
	b.WriteString(canonicalKey(key))
	return b.String(), nil
}

func canonicalModifier(m string) (string, bool) {
	switch strings.ToLower(m) {
	case "ctrl", "control", "cmd":
		return "Ctrl", true
	case "alt", "option", "opt":
		return "Alt", true
	case "shift":
		return "Shift", true
	default:
		return "", false
	}
}

func canonicalKey(k string) string {
	if utf8.RuneCountInString(k) == 1 {
		return strings.ToUpper(k)
	}
	r, size := utf8.DecodeRuneInString(k)
	return string(unicode.ToUpper(r)) + strings.ToLower(k[size:])
}

// Translate converts a Bubble Tea key string ("ctrl+s", "f5", "shift+tab",
// "A") into a normalized descriptor. It returns "" for input that cannot be
// bound, such as pasted text.
func Translate(teaKey string) string {
	if teaKey == "" {
		return ""
	}
	if teaKey == "+" {
		return "+"
	}
	if teaKey == " " {
		return "Space"
	}

	parts := strings.Split(teaKey, "+")
	key := parts[len(parts)-1]
	mods := parts[:len(parts)-1]

	if utf8.RuneCountInString(key) == 1 {
		r, _ := utf8.DecodeRuneInString(key)
		if unicode.IsUpper(r) {
			mods = append(mods, "shift")
		}
	} else if strings.HasPrefix(key, "[") {
		return ""
	}

	desc := strings.Join(append(mods, key), "-")
	norm, err := Normalize(desc)
	if err != nil {
		return ""
	}
	return norm
}
