package catalog

import (
	"fmt"
	"time"

	"whoof-notifications/internal/domain/entity"
)

// Catalog is the immutable template registry. It is constructed once at
// process start and injected into the components that need it.
type Catalog struct {
	templates []entity.Template
	byID      map[string]int
}

// NewCatalog validates the template set and builds the lookup indexes.
// Declaration order is preserved and meaningful: category listings and
// priority ties follow it.
func NewCatalog(templates []entity.Template) (*Catalog, error) {
	c := &Catalog{
		templates: make([]entity.Template, len(templates)),
		byID:      make(map[string]int, len(templates)),
	}
	copy(c.templates, templates)

	for i, tpl := range c.templates {
		if tpl.ID == "" {
			return nil, fmt.Errorf("template at index %d has empty id", i)
		}
		if _, exists := c.byID[tpl.ID]; exists {
			return nil, fmt.Errorf("duplicate template id: %s", tpl.ID)
		}
		if !tpl.Category.IsValid() {
			return nil, fmt.Errorf("template %s has unknown category: %s", tpl.ID, tpl.Category)
		}
		if !tpl.Priority.IsValid() {
			return nil, fmt.Errorf("template %s has unknown priority: %s", tpl.ID, tpl.Priority)
		}
		if tpl.Timing != nil {
			if err := validateWindow(tpl.Timing); err != nil {
				return nil, fmt.Errorf("template %s: %w", tpl.ID, err)
			}
		}
		c.byID[tpl.ID] = i
	}

	return c, nil
}

// Default builds the catalog from the built-in Whoof template set
func Default() *Catalog {
	c, err := NewCatalog(defaultTemplates)
	if err != nil {
		// The built-in set is validated by tests; reaching this is a bug.
		panic(fmt.Sprintf("invalid built-in template catalog: %v", err))
	}
	return c
}

func validateWindow(w *entity.TimeWindow) error {
	if w.MinHour != nil && (*w.MinHour < 0 || *w.MinHour > 23) {
		return fmt.Errorf("minHour out of range: %d", *w.MinHour)
	}
	if w.MaxHour != nil && (*w.MaxHour < 0 || *w.MaxHour > 23) {
		return fmt.Errorf("maxHour out of range: %d", *w.MaxHour)
	}
	if w.MinHour != nil && w.MaxHour != nil && *w.MinHour > *w.MaxHour {
		return fmt.Errorf("minHour %d exceeds maxHour %d", *w.MinHour, *w.MaxHour)
	}
	return nil
}

// TemplateByID looks up a template by its id
func (c *Catalog) TemplateByID(id string) (entity.Template, bool) {
	i, ok := c.byID[id]
	if !ok {
		return entity.Template{}, false
	}
	return c.templates[i], true
}

// TemplatesByCategory returns the templates of a category in declaration
// order
func (c *Catalog) TemplatesByCategory(category entity.Category) []entity.Template {
	var out []entity.Template
	for _, tpl := range c.templates {
		if tpl.Category == category {
			out = append(out, tpl)
		}
	}
	return out
}

// Templates returns all templates in declaration order
func (c *Catalog) Templates() []entity.Template {
	out := make([]entity.Template, len(c.templates))
	copy(out, c.templates)
	return out
}

// Len returns the number of registered templates
func (c *Catalog) Len() int {
	return len(c.templates)
}

// CanSendAt reports whether the template's time window is open at the
// given instant. The caller supplies now already converted to the
// deliberate timezone; no normalization happens here.
func (c *Catalog) CanSendAt(tpl entity.Template, now time.Time) bool {
	return tpl.Timing.Contains(now.Hour())
}

func hours(min, max int) *entity.TimeWindow {
	return &entity.TimeWindow{MinHour: &min, MaxHour: &max}
}
