// Package registry maps command names to factories so commands can be
// described in configuration and built at runtime.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/ludus/pkg/command"
	"github.com/aretw0/ludus/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// Factory builds a command from its configured arguments.
type Factory func(args map[string]any) (command.Command, error)

// Registry manages the available command factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register adds a factory to the registry.
// If a factory with the same name exists, it is overwritten.
func (r *Registry) Register(name string, fn Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = fn
}

// Build looks up a factory by name and builds the command.
// Returns domain.ErrUnknownCommand if the name is not registered.
func (r *Registry) Build(name string, args map[string]any) (command.Command, error) {
	r.mu.RLock()
	fn, ok := r.factories[name]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownCommand, name)
	}

	cmd, err := fn(args)
	if err != nil {
		return nil, fmt.Errorf("build command %s: %w", name, err)
	}
	if cmd == nil {
		return nil, fmt.Errorf("build command %s: %w", name, domain.ErrNilCommand)
	}
	return cmd, nil
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	r.mu.RUnlock()

	sort.Strings(names)
	return names
}

// Decode copies args into out, a pointer to a struct.
// Input is weakly typed ("3" decodes into an int) and durations may be
// given as strings such as "1s". Unknown keys are rejected.
func Decode(args map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return err
	}
	return dec.Decode(args)
}

// Typed wraps a constructor taking a struct of arguments into a Factory.
// The zero value of A supplies the defaults; args override them.
func Typed[A any](build func(A) (command.Command, error)) Factory {
	return func(args map[string]any) (command.Command, error) {
		var a A
		if d, ok := any(&a).(interface{ Defaults() }); ok {
			d.Defaults()
		}
		if err := Decode(args, &a); err != nil {
			return nil, fmt.Errorf("decode args: %w", err)
		}
		return build(a)
	}
}
