package format

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/yaklabco/phpfmt/pkg/config"
)

// Factory builds a rule for one document.
type Factory func(ctx *Context) Rule

// Registration describes a rule known to a Registry.
type Registration struct {
	// Name is the unique rule name.
	Name string

	// Description is a one-line description of the rule.
	Description string

	// Default reports whether the rule runs unless disabled.
	Default bool

	// New builds a fresh instance of the rule for each document.
	New Factory
}

// Registry holds rule registrations.
type Registry struct {
	mu      sync.RWMutex
	byName  map[string]Registration
	aliases map[string]string // alias -> canonical name
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:  make(map[string]Registration),
		aliases: make(map[string]string),
	}
}

// Register adds a rule. A registration with the same name is replaced.
func (r *Registry) Register(reg Registration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byName[reg.Name] = reg
}

// RegisterAlias maps an alternative name to a registered rule name.
func (r *Registry) RegisterAlias(alias, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases[alias] = name
}

// Get retrieves a registration by its canonical name.
func (r *Registry) Get(name string) (Registration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.byName[name]
	return reg, ok
}

// Resolve returns the canonical name and registration for a name or alias.
func (r *Registry) Resolve(key string) (string, Registration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if reg, ok := r.byName[key]; ok {
		return reg.Name, reg, true
	}
	if name, ok := r.aliases[key]; ok {
		if reg, ok := r.byName[name]; ok {
			return reg.Name, reg, true
		}
	}
	return "", Registration{}, false
}

// Registrations returns every registration sorted by name.
func (r *Registry) Registrations() []Registration {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Registration, 0, len(r.byName))
	for _, reg := range r.byName {
		out = append(out, reg)
	}
	slices.SortFunc(out, func(a, b Registration) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return out
}

// Names returns every registered rule name, sorted.
func (r *Registry) Names() []string {
	regs := r.Registrations()
	names := make([]string, len(regs))
	for i, reg := range regs {
		names[i] = reg.Name
	}
	return names
}

// Enabled returns the registrations selected by cfg: rules enabled by
// default, plus EnableRules, minus DisableRules. Unknown names are an error
// wrapping ErrConfig.
func (r *Registry) Enabled(cfg *config.Config) ([]Registration, error) {
	enabled := make(map[string]bool)
	for _, reg := range r.Registrations() {
		enabled[reg.Name] = reg.Default
	}

	if cfg != nil {
		for _, key := range cfg.EnableRules {
			name, _, ok := r.Resolve(key)
			if !ok {
				return nil, fmt.Errorf("%w: unknown rule %q", ErrConfig, key)
			}
			enabled[name] = true
		}
		for _, key := range cfg.DisableRules {
			name, _, ok := r.Resolve(key)
			if !ok {
				return nil, fmt.Errorf("%w: unknown rule %q", ErrConfig, key)
			}
			enabled[name] = false
		}
	}

	var out []Registration
	for _, reg := range r.Registrations() {
		if enabled[reg.Name] {
			out = append(out, reg)
		}
	}
	return out, nil
}

// DefaultRegistry is the registry of built-in rules. Rules register
// themselves from package rules during init.
//
//nolint:gochecknoglobals // Global registry is intentional for rule registration
var DefaultRegistry = NewRegistry()
