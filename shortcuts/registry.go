// Package shortcuts registers named keyboard shortcuts, binds handlers to
// them and dispatches keystrokes. Shortcut metadata is kept separate from the
// handlers so that help screens can list shortcuts nobody is listening to.
package shortcuts

import (
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/bubbles/key"
)

var (
	ErrInvalidShortcut = errors.New("invalid shortcut")
	ErrUnknownModifier = errors.New("unknown modifier")
)

// KeyCombination is a modifier name plus a character.
type KeyCombination struct {
	Modifier  string `json:"modifier,omitempty"`
	Character string `json:"character"`
}

// Shortcut describes a named shortcut.
type Shortcut struct {
	Name           string           `json:"name"`
	Category       string           `json:"category"`
	Description    string           `json:"description"`
	KeyCombination KeyCombination   `json:"keyCombination"`
	Aliases        []KeyCombination `json:"aliases,omitempty"`
}

// Event is passed to handlers for one dispatched keystroke.
type Event struct {
	Keystroke        string
	defaultPrevented bool
}

// PreventDefault marks the keystroke as consumed.
func (e *Event) PreventDefault() { e.defaultPrevented = true }

// DefaultPrevented reports whether a handler consumed the keystroke.
func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

// Handler reacts to a shortcut.
type Handler func(*Event)

// UseOption configures a handler subscription.
type UseOption func(*subscription)

// WithDisabled skips the handler whenever disabled returns true.
func WithDisabled(disabled func() bool) UseOption {
	return func(s *subscription) { s.isDisabled = disabled }
}

type subscription struct {
	id         int
	handler    Handler
	isDisabled func() bool
}

// keystroke adapts a canonical chord to fmt.Stringer for key.Matches.
type keystroke string

func (k keystroke) String() string { return string(k) }

// Registry holds shortcuts and their handlers.
type Registry struct {
	mu       sync.RWMutex
	platform Platform
	order    []string
	byName   map[string]Shortcut
	bindings map[string]key.Binding
	handlers map[string][]subscription
	nextID   int
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithPlatform selects the modifier layout.
func WithPlatform(p Platform) RegistryOption {
	return func(r *Registry) { r.platform = p }
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		byName:   make(map[string]Shortcut),
		bindings: make(map[string]key.Binding),
		handlers: make(map[string][]subscription),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Platform returns the registry's modifier layout.
func (r *Registry) Platform() Platform {
	return r.platform
}

// Register adds a shortcut. Registering an existing name replaces its
// metadata and keeps its position and handlers.
func (r *Registry) Register(s Shortcut) error {
	if err := validateShortcut(s); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[s.Name]; !exists {
		r.order = append(r.order, s.Name)
	}
	r.byName[s.Name] = s
	r.bindings[s.Name] = r.bindingFor(s)
	return nil
}

func validateShortcut(s Shortcut) error {
	if s.Name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidShortcut)
	}
	if s.Category == "" {
		return fmt.Errorf("%w: %s: empty category", ErrInvalidShortcut, s.Name)
	}
	combos := append([]KeyCombination{s.KeyCombination}, s.Aliases...)
	for _, kc := range combos {
		if kc.Character == "" {
			return fmt.Errorf("%w: %s: empty character", ErrInvalidShortcut, s.Name)
		}
		if kc.Modifier != "" && !KnownModifier(kc.Modifier) {
			return fmt.Errorf("%w %q in %s", ErrUnknownModifier, kc.Modifier, s.Name)
		}
	}
	return nil
}

func (r *Registry) bindingFor(s Shortcut) key.Binding {
	keys := []string{Chord(s.KeyCombination, r.platform)}
	for _, alias := range s.Aliases {
		keys = append(keys, Chord(alias, r.platform))
	}
	return key.NewBinding(
		key.WithKeys(keys...),
		key.WithHelp(Display(s.KeyCombination, r.platform), s.Description),
	)
}

// Unregister removes a shortcut and its handlers.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byName[name]; !ok {
		return
	}
	delete(r.byName, name)
	delete(r.bindings, name)
	delete(r.handlers, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Get returns a shortcut by name.
func (r *Registry) Get(name string) (Shortcut, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byName[name]
	return s, ok
}

// Shortcuts returns all shortcuts in registration order.
func (r *Registry) Shortcuts() []Shortcut {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Shortcut, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}

// ByCategory returns the shortcuts of one category in registration order.
func (r *Registry) ByCategory(category string) []Shortcut {
	var out []Shortcut
	for _, s := range r.Shortcuts() {
		if s.Category == category {
			out = append(out, s)
		}
	}
	return out
}

// Binding returns the key binding of a shortcut for help rendering.
func (r *Registry) Binding(name string) (key.Binding, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.bindings[name]
	return b, ok
}

// Bindings returns the key bindings of all shortcuts in registration order.
func (r *Registry) Bindings() []key.Binding {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]key.Binding, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.bindings[name])
	}
	return out
}

// Use subscribes a handler to a named shortcut. The shortcut does not need to
// be registered yet. The returned function removes the subscription.
func (r *Registry) Use(name string, h Handler, opts ...UseOption) func() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	sub := subscription{id: r.nextID, handler: h}
	for _, opt := range opts {
		opt(&sub)
	}
	r.handlers[name] = append(r.handlers[name], sub)

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		subs := r.handlers[name]
		for i, s := range subs {
			if s.id == sub.id {
				r.handlers[name] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Dispatch runs the enabled handlers of every shortcut matching the
// keystroke. It returns the event and whether any handler ran.
func (r *Registry) Dispatch(stroke string) (*Event, bool) {
	ks := keystroke(NormalizeKeystroke(stroke))
	ev := &Event{Keystroke: string(ks)}

	r.mu.RLock()
	var run []subscription
	for _, name := range r.order {
		if !key.Matches(ks, r.bindings[name]) {
			continue
		}
		run = append(run, r.handlers[name]...)
	}
	r.mu.RUnlock()

	handled := false
	for _, sub := range run {
		if sub.isDisabled != nil && sub.isDisabled() {
			continue
		}
		sub.handler(ev)
		handled = true
	}
	return ev, handled
}
