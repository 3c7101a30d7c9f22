package registry

import (
	"fmt"
	"sync"

	"github.com/DevSymphony/pepcheck/internal/engine/core"
)

// ErrUnknownRule is returned when a rule code is not registered.
var ErrUnknownRule = core.Misuse("unknown rule code")

// Registry manages the available rules in declared order.
// Thread-safe for concurrent access.
type Registry struct {
	mu    sync.RWMutex
	rules []*core.Rule
	byID  map[string]*core.Rule
}

var globalRegistry = New()

// New creates an empty registry.
func New() *Registry {
	return &Registry{byID: make(map[string]*core.Rule)}
}

// Global returns the global rule registry.
func Global() *Registry {
	return globalRegistry
}

// Register adds a rule. Registration order is the declared evaluation
// order within the rule's kind.
func (r *Registry) Register(rule *core.Rule) error {
	if err := rule.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, exists := r.byID[rule.Code]; exists {
		return fmt.Errorf("%w: %s already registered by %s", core.ErrDuplicateCode, rule.Code, prev.Name)
	}

	r.rules = append(r.rules, rule)
	r.byID[rule.Code] = rule
	return nil
}

// Get retrieves a rule by code.
func (r *Registry) Get(code string) (*core.Rule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rule, ok := r.byID[code]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRule, code)
	}
	return rule, nil
}

// List returns all rules in evaluation order: line rules, then file
// rules, then syntax rules, each group in registration order.
func (r *Registry) List() []*core.Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*core.Rule, 0, len(r.rules))
	for _, kind := range []core.Kind{core.KindLine, core.KindFile, core.KindSyntax} {
		for _, rule := range r.rules {
			if rule.Kind == kind {
				out = append(out, rule)
			}
		}
	}
	return out
}

// Codes returns all registered codes in evaluation order.
func (r *Registry) Codes() []string {
	rules := r.List()
	codes := make([]string, 0, len(rules))
	for _, rule := range rules {
		codes = append(codes, rule.Code)
	}
	return codes
}

// NewEngine builds an engine over every registered rule.
func (r *Registry) NewEngine(provider core.SyntaxProvider) (*core.Engine, error) {
	return core.NewEngine(provider, r.List()...)
}

// MustRegister registers a rule in the global registry and panics on error.
// Useful for init() functions.
func MustRegister(rules ...*core.Rule) {
	for _, rule := range rules {
		if err := Global().Register(rule); err != nil {
			panic(err)
		}
	}
}
