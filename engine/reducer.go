package engine

// ============================================================================
// VIEW REDUCER — onChangeView
// ============================================================================
// A view update either replaces the config outright or derives the next one
// from the previous. When the display type changes, the layout is reset to the
// type's default so options of one type never leak into another. Search,
// filters, paging and hidden fields survive a type switch.
// ============================================================================

// Update is a tagged union: exactly one of Replace or Derive constructs it.
type Update struct {
	next   *ViewConfig
	derive func(ViewConfig) ViewConfig
}

// Replace builds an update that swaps in view as the next config.
func Replace(view ViewConfig) Update {
	v := view
	return Update{next: &v}
}

// Derive builds an update that computes the next config from the previous.
// fn receives a deep copy, so it may modify its argument freely.
func Derive(fn func(prev ViewConfig) ViewConfig) Update {
	return Update{derive: fn}
}

func (u Update) apply(prev ViewConfig) ViewConfig {
	switch {
	case u.derive != nil:
		return u.derive(prev.Clone())
	case u.next != nil:
		return u.next.Clone()
	default:
		return prev
	}
}

// LayoutDefaults maps each display type to its default layout.
type LayoutDefaults map[ViewType]Layout

// Reducer produces the next ViewConfig from the previous one and an update.
type Reducer struct {
	defaults LayoutDefaults
}

// NewReducer creates a reducer with a static defaults table.
func NewReducer(defaults LayoutDefaults) *Reducer {
	table := make(LayoutDefaults, len(defaults))
	for t, l := range defaults {
		table[t] = l.Clone()
	}
	return &Reducer{defaults: table}
}

// Reduce is total and pure. An unrecognized type passes through without a
// layout reset.
func (r *Reducer) Reduce(prev ViewConfig, u Update) ViewConfig {
	next := u.apply(prev)
	if next.Type == prev.Type {
		return next
	}
	if layout, ok := r.defaults[next.Type]; ok {
		next.Layout = layout.Clone()
	}
	return next
}
