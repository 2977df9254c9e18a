package styling

import (
	"sync"
)

// Registry collects generated utilities per source so that a rebuild of one
// file replaces only that file's contribution.
type Registry struct {
	mu         sync.RWMutex
	preflights []string
	sources    map[string][]Utility
}

// NewRegistry creates an empty registry. preflights lead the stylesheet
// whether or not any source contributes utilities.
func NewRegistry(preflights ...string) *Registry {
	return &Registry{
		preflights: append([]string(nil), preflights...),
		sources:    make(map[string][]Utility),
	}
}

// Set replaces the utilities contributed by source
func (r *Registry) Set(source string, sheet *Sheet) {
	if sheet == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources[source] = append([]Utility(nil), sheet.Utilities...)
}

// Remove drops everything contributed by source
func (r *Registry) Remove(source string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sources, source)
}

// Len returns the number of distinct utilities
func (r *Registry) Len() int {
	return len(r.Utilities())
}

// Utilities returns the distinct utilities across all sources in output order
func (r *Registry) Utilities() []Utility {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	var all []Utility
	for _, us := range r.sources {
		for _, u := range us {
			if _, ok := seen[u.Token]; ok {
				continue
			}
			seen[u.Token] = struct{}{}
			all = append(all, u)
		}
	}
	sortUtilities(all)
	return all
}

// CSS returns the combined stylesheet
func (r *Registry) CSS() string {
	utilities := r.Utilities()

	r.mu.RLock()
	sheet := &Sheet{Preflights: r.preflights, Utilities: utilities}
	r.mu.RUnlock()

	return sheet.CSS()
}

// Reset clears all registered utilities. Preflights are kept.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources = make(map[string][]Utility)
}
