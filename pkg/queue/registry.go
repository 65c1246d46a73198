package queue

import (
	"fmt"
	"strings"
	"sync"
)

// DefaultNamespace is the namespace jobs are dispatched from unless the
// allow-list is extended through configuration.
const DefaultNamespace = `App\Jobs`

// Verdict is the outcome of validating a class/method pair.
type Verdict struct {
	OK     bool
	Reason string
}

var (
	mu sync.RWMutex
	// registry maps class name -> method name -> factory
	registry   = make(map[string]map[string]Factory)
	namespaces = map[string]struct{}{DefaultNamespace: {}}
)

// Register adds a factory for a class/method pair. Call it at startup; a
// pair that is not registered will never be dispatched or enqueued.
func Register(class, method string, factory Factory) {
	mu.Lock()
	defer mu.Unlock()
	methods, ok := registry[class]
	if !ok {
		methods = make(map[string]Factory)
		registry[class] = methods
	}
	methods[method] = factory
}

// AllowNamespace adds a namespace to the allow-list.
func AllowNamespace(ns string) {
	mu.Lock()
	defer mu.Unlock()
	namespaces[ns] = struct{}{}
}

// SetAllowedNamespaces replaces the allow-list, typically from configuration.
// An empty list restores the default namespace.
func SetAllowedNamespaces(ns []string) {
	mu.Lock()
	defer mu.Unlock()
	namespaces = make(map[string]struct{}, len(ns))
	for _, n := range ns {
		if n != "" {
			namespaces[n] = struct{}{}
		}
	}
	if len(namespaces) == 0 {
		namespaces[DefaultNamespace] = struct{}{}
	}
}

// Namespace returns the namespace portion of a fully qualified class name.
func Namespace(class string) string {
	idx := strings.LastIndex(class, `\`)
	if idx < 0 {
		return ""
	}
	return class[:idx]
}

// Validate decides whether a class/method pair is permitted to execute. The
// namespace allow-list is checked first so unregistered classes outside it
// are reported as unauthorized rather than merely unknown.
func Validate(class, method string) Verdict {
	mu.RLock()
	defer mu.RUnlock()

	if _, ok := namespaces[Namespace(class)]; !ok {
		return Verdict{Reason: fmt.Sprintf("Unauthorized class %q: namespace %q is not allowed", class, Namespace(class))}
	}
	methods, ok := registry[class]
	if !ok {
		return Verdict{Reason: fmt.Sprintf("unknown job class %q", class)}
	}
	if _, ok := methods[method]; !ok {
		return Verdict{Reason: fmt.Sprintf("class %q has no registered method %q", class, method)}
	}
	return Verdict{OK: true}
}

// Resolve returns the factory registered for a class/method pair.
func Resolve(class, method string) (Factory, error) {
	mu.RLock()
	defer mu.RUnlock()
	if methods, ok := registry[class]; ok {
		if factory, ok := methods[method]; ok {
			return factory, nil
		}
	}
	return nil, fmt.Errorf("queue: no factory registered for %s@%s", class, method)
}
