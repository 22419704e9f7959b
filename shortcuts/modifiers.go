package shortcuts

import (
	"sort"
	"strings"
)

// Platform selects the modifier layout; Apple keyboards map "primary" to cmd.
type Platform int

const (
	PlatformOther Platform = iota
	PlatformApple
)

// Modifier names accepted in a KeyCombination.
const (
	ModPrimary      = "primary"
	ModPrimaryShift = "primaryShift"
	ModPrimaryAlt   = "primaryAlt"
	ModSecondary    = "secondary"
	ModAccess       = "access"
	ModCtrl         = "ctrl"
	ModAlt          = "alt"
	ModCtrlShift    = "ctrlShift"
	ModShift        = "shift"
	ModShiftAlt     = "shiftAlt"
)

// Physical keys, in canonical chord order.
const (
	keyCtrl  = "ctrl"
	keyAlt   = "alt"
	keyShift = "shift"
	keyCmd   = "cmd"
)

var keyOrder = map[string]int{keyCtrl: 0, keyAlt: 1, keyShift: 2, keyCmd: 3}

var keyAliases = map[string]string{
	"control": keyCtrl,
	"option":  keyAlt,
	"opt":     keyAlt,
	"meta":    keyCmd,
	"command": keyCmd,
	"super":   keyCmd,
}

type modifierKeys struct {
	apple []string
	other []string
}

var modifiers = map[string]modifierKeys{
	ModPrimary:      {apple: []string{keyCmd}, other: []string{keyCtrl}},
	ModPrimaryShift: {apple: []string{keyShift, keyCmd}, other: []string{keyCtrl, keyShift}},
	ModPrimaryAlt:   {apple: []string{keyAlt, keyCmd}, other: []string{keyCtrl, keyAlt}},
	ModSecondary:    {apple: []string{keyShift, keyAlt, keyCmd}, other: []string{keyCtrl, keyShift, keyAlt}},
	ModAccess:       {apple: []string{keyCtrl, keyAlt}, other: []string{keyShift, keyAlt}},
	ModCtrl:         {apple: []string{keyCtrl}, other: []string{keyCtrl}},
	ModAlt:          {apple: []string{keyAlt}, other: []string{keyAlt}},
	ModCtrlShift:    {apple: []string{keyCtrl, keyShift}, other: []string{keyCtrl, keyShift}},
	ModShift:        {apple: []string{keyShift}, other: []string{keyShift}},
	ModShiftAlt:     {apple: []string{keyShift, keyAlt}, other: []string{keyShift, keyAlt}},
}

// KnownModifier reports whether name is a recognized modifier.
func KnownModifier(name string) bool {
	_, ok := modifiers[name]
	return ok
}

// Keys returns the physical keys a modifier stands for on a platform.
func Keys(modifier string, p Platform) []string {
	m, ok := modifiers[modifier]
	if !ok {
		return nil
	}
	if p == PlatformApple {
		return append([]string(nil), m.apple...)
	}
	return append([]string(nil), m.other...)
}

// Chord renders a combination as a canonical keystroke such as
// "ctrl+alt+shift+m".
func Chord(kc KeyCombination, p Platform) string {
	return canonical(Keys(kc.Modifier, p), kc.Character)
}

// NormalizeKeystroke parses a user keystroke like "Shift+Alt+H" or
// "option+ctrl+h" into canonical chord form.
func NormalizeKeystroke(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	// A trailing "+" is the plus key itself.
	char := ""
	if strings.HasSuffix(s, "++") || s == "+" {
		char = "+"
		s = strings.TrimSuffix(strings.TrimSuffix(s, "+"), "+")
	}
	parts := strings.Split(s, "+")
	if char == "" {
		char = parts[len(parts)-1]
		parts = parts[:len(parts)-1]
	}
	mods := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if alias, ok := keyAliases[p]; ok {
			p = alias
		}
		if p != "" {
			mods = append(mods, p)
		}
	}
	return canonical(mods, char)
}

func canonical(mods []string, char string) string {
	sorted := append([]string(nil), mods...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return rank(sorted[i]) < rank(sorted[j])
	})
	return strings.Join(append(sorted, strings.ToLower(char)), "+")
}

func rank(k string) int {
	if r, ok := keyOrder[k]; ok {
		return r
	}
	return len(keyOrder)
}

// Display renders a combination for help text, e.g. "Ctrl+Shift+Alt+M".
func Display(kc KeyCombination, p Platform) string {
	keys := Keys(kc.Modifier, p)
	sort.SliceStable(keys, func(i, j int) bool { return rank(keys[i]) < rank(keys[j]) })
	parts := make([]string, 0, len(keys)+1)
	for _, k := range keys {
		parts = append(parts, displayKey(k, p))
	}
	parts = append(parts, strings.ToUpper(kc.Character))
	return strings.Join(parts, "+")
}

func displayKey(k string, p Platform) string {
	switch k {
	case keyCtrl:
		return "Ctrl"
	case keyAlt:
		if p == PlatformApple {
			return "Option"
		}
		return "Alt"
	case keyShift:
		return "Shift"
	case keyCmd:
		return "Cmd"
	default:
		return k
	}
}
