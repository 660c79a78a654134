package rules

import (
	"errors"
	"fmt"
	"sort"

	m "github.com/mouse-blink/gorald/internal/model"
)

// ErrUnknownRule is returned when a rule key is not registered.
var ErrUnknownRule = errors.New("unknown rule")

// Factory creates a fresh rule instance.
type Factory func() Rule

// Registry maps rule keys to factories.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Default returns a registry holding every built-in rule.
func Default() *Registry {
	r := NewRegistry()
	r.Register(func() Rule { return &BoolLiteralCompare{} })
	r.Register(func() Rule { return &ErrorfWithoutFormat{} })
	r.Register(func() Rule { return &DeprecatedIoutil{} })
	r.Register(func() Rule { return &SelfAssignment{} })
	r.Register(func() Rule { return &RedundantNilLenCheck{} })

	return r
}

// Register adds a rule under the key reported by the rule itself. A later
// registration replaces an earlier one with the same key.
func (r *Registry) Register(factory Factory) {
	r.factories[factory().Key()] = factory
}

// Lookup returns a new instance of the rule registered under key.
func (r *Registry) Lookup(key string) (Rule, error) {
	factory, ok := r.factories[key]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRule, key)
	}

	return factory(), nil
}

// Resolve looks up every key, failing on the first unknown one.
func (r *Registry) Resolve(keys []string) ([]Rule, error) {
	out := make([]Rule, 0, len(keys))

	for _, key := range keys {
		rule, err := r.Lookup(key)
		if err != nil {
			return nil, err
		}

		out = append(out, rule)
	}

	return out, nil
}

// Keys returns the registered keys sorted.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.factories))
	for k := range r.factories {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// Infos describes every registered rule, sorted by key.
func (r *Registry) Infos() []m.RuleInfo {
	keys := r.Keys()
	infos := make([]m.RuleInfo, 0, len(keys))

	for _, k := range keys {
		rule := r.factories[k]()
		infos = append(infos, m.RuleInfo{Key: k, Name: rule.Name(), Description: rule.Description()})
	}

	return infos
}
