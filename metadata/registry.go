package metadata

import (
	"fmt"
	"sync"
)

// Registry provides indexed, read-mostly access to a set of extracted
// function records. It is safe for concurrent use; query methods return
// record copies rather than pointers into the registry.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]*FunctionMetadata
	order  []string // Registration order for deterministic listings
	graph  *CallGraph
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]*FunctionMetadata),
		order:  []string{},
	}
}

// Register adds records to the registry. A record with a name already
// registered replaces the previous one and keeps its original position.
// The call graph is rebuilt on the next Graph call.
func (r *Registry) Register(funcs ...FunctionMetadata) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, fn := range funcs {
		fn := fn
		if _, exists := r.byName[fn.Name]; !exists {
			r.order = append(r.order, fn.Name)
		}
		r.byName[fn.Name] = &fn
	}
	r.graph = nil
}

// Functions returns all registered records in registration order
func (r *Registry) Functions() []FunctionMetadata {
	r.mu.RLock()
	defer r.mu.RUnlock()

	funcs := make([]FunctionMetadata, 0, len(r.order))
	for _, name := range r.order {
		funcs = append(funcs, *r.byName[name])
	}
	return funcs
}

// Function returns the record for a single function by name
func (r *Registry) Function(name string) (FunctionMetadata, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fn, ok := r.byName[name]
	if !ok {
		return FunctionMetadata{}, fmt.Errorf("function not found: %s", name)
	}
	return *fn, nil
}

// Len returns the number of registered records
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byName)
}

// Graph returns the call graph over the registered records, building and
// caching it on first use. Callers receive a copy, so mutating the returned
// graph never corrupts the cache.
func (r *Registry) Graph() *CallGraph {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.graph == nil {
		funcs := make([]FunctionMetadata, 0, len(r.order))
		for _, name := range r.order {
			funcs = append(funcs, *r.byName[name])
		}
		r.graph = BuildCallGraph(funcs)
	}
	return copyCallGraph(r.graph)
}

func copyCallGraph(g *CallGraph) *CallGraph {
	nodes := make(map[string]*CallNode, len(g.Nodes))
	for name, node := range g.Nodes {
		n := *node
		nodes[name] = &n
	}
	edges := make([]CallEdge, len(g.Edges))
	copy(edges, g.Edges)
	return &CallGraph{Nodes: nodes, Edges: edges}
}

// Callers returns the registered functions that call name directly
func (r *Registry) Callers(name string) []string {
	return r.Graph().Callers(name)
}

// Callees returns the functions that name calls directly
func (r *Registry) Callees(name string) []string {
	return r.Graph().Callees(name)
}
