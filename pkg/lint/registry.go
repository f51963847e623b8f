package lint

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrDuplicateRule is matched by errors reporting a repeated rule name.
var ErrDuplicateRule = errors.New("duplicate rule")

// DuplicateRuleError reports a second registration under the same name.
type DuplicateRuleError struct {
	Name string
}

func (e *DuplicateRuleError) Error() string {
	return fmt.Sprintf("duplicate rule: %q is already registered", e.Name)
}

// Is makes errors.Is(err, ErrDuplicateRule) hold.
func (e *DuplicateRuleError) Is(target error) bool {
	return target == ErrDuplicateRule
}

// Registry stores rule definitions by name.
type Registry struct {
	mu    sync.RWMutex
	rules map[string]RuleDef
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{rules: make(map[string]RuleDef)}
}

// Register adds a rule. Registering a name twice is an error.
func (r *Registry) Register(def RuleDef) error {
	if def.Name == "" {
		return errors.New("rule has no name")
	}
	if def.New == nil {
		return fmt.Errorf("rule %q has no factory", def.Name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.rules[def.Name]; exists {
		return &DuplicateRuleError{Name: def.Name}
	}
	r.rules[def.Name] = def
	return nil
}

// MustRegister is like Register but panics on error. Use it only while
// wiring a registry at startup.
func (r *Registry) MustRegister(def RuleDef) {
	if err := r.Register(def); err != nil {
		panic(err)
	}
}

// Lookup returns the rule registered under name.
func (r *Registry) Lookup(name string) (RuleDef, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.rules[name]
	return def, ok
}

// All returns every rule sorted by name.
func (r *Registry) All() []RuleDef {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]RuleDef, 0, len(r.rules))
	for _, def := range r.rules {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool {
		return defs[i].Name < defs[j].Name
	})
	return defs
}

// Names returns the sorted rule names.
func (r *Registry) Names() []string {
	defs := r.All()
	names := make([]string, len(defs))
	for i, def := range defs {
		names[i] = def.Name
	}
	return names
}

// Len returns the number of registered rules.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rules)
}
