package entity

// Category represents the product category a notification template belongs to
type Category string

const (
	CategoryMatching     Category = "matching"
	CategoryWalks        Category = "walks"
	CategoryGamification Category = "gamification"
	CategoryReactivation Category = "reactivation"
	CategoryPartners     Category = "partners"
	CategoryAffective    Category = "affective"
)

// Categories lists every known category, in declaration order
func Categories() []Category {
	return []Category{
		CategoryMatching,
		CategoryWalks,
		CategoryGamification,
		CategoryReactivation,
		CategoryPartners,
		CategoryAffective,
	}
}

// IsValid reports whether the category is one of the known values
func (c Category) IsValid() bool {
	switch c {
	case CategoryMatching, CategoryWalks, CategoryGamification,
		CategoryReactivation, CategoryPartners, CategoryAffective:
		return true
	}
	return false
}

// Priority represents how important a template is relative to others
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Rank returns a sortable weight for the priority (higher = more important)
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// IsValid reports whether the priority is one of the known values
func (p Priority) IsValid() bool {
	return p.Rank() > 0
}

// TimeWindow restricts the local hours during which a template may be sent.
// Both bounds are inclusive; a nil bound means unbounded on that side.
type TimeWindow struct {
	MinHour *int
	MaxHour *int
}

// Contains reports whether the given hour (0-23) falls inside the window
func (w *TimeWindow) Contains(hour int) bool {
	if w == nil {
		return true
	}
	if w.MinHour != nil && hour < *w.MinHour {
		return false
	}
	if w.MaxHour != nil && hour > *w.MaxHour {
		return false
	}
	return true
}

// Template represents a reusable notification definition. Templates are
// immutable, loaded once at startup, never mutated at runtime.
type Template struct {
	ID       string
	Category Category
	Title    string
	Message  string // may contain {placeholder} tokens
	Priority Priority
	Timing   *TimeWindow
}
