package metadata

import "sort"

// CallGraph captures which functions call which across a batch of records
type CallGraph struct {
	Nodes map[string]*CallNode `json:"nodes"` // All nodes indexed by function name
	Edges []CallEdge           `json:"edges"` // All call edges
}

// CallNode represents one function in the call graph
type CallNode struct {
	Name    string `json:"name"`    // Function name
	Defined bool   `json:"defined"` // Whether the function is part of the batch or only referenced
}

// CallEdge represents one caller -> callee relationship
type CallEdge struct {
	From string `json:"from"` // Caller function name
	To   string `json:"to"`   // Callee function name
}

// BuildCallGraph constructs a call graph from extracted records. Functions
// referenced but not present in the batch appear as undefined nodes, so the
// graph stays closed over every edge.
func BuildCallGraph(funcs []FunctionMetadata) *CallGraph {
	graph := &CallGraph{
		Nodes: make(map[string]*CallNode),
		Edges: make([]CallEdge, 0),
	}

	for _, fn := range funcs {
		graph.Nodes[fn.Name] = &CallNode{Name: fn.Name, Defined: true}
	}

	for _, fn := range funcs {
		for _, callee := range fn.ReferencedFunctions {
			graph.Edges = append(graph.Edges, CallEdge{From: fn.Name, To: callee})
			if _, exists := graph.Nodes[callee]; !exists {
				graph.Nodes[callee] = &CallNode{Name: callee, Defined: false}
			}
		}
	}

	return graph
}

// Callees returns the functions that name calls directly, in edge order
func (g *CallGraph) Callees(name string) []string {
	callees := []string{}
	for _, edge := range g.Edges {
		if edge.From == name {
			callees = append(callees, edge.To)
		}
	}
	return callees
}

// Callers returns the functions that call name directly, in edge order
func (g *CallGraph) Callers(name string) []string {
	callers := []string{}
	for _, edge := range g.Edges {
		if edge.To == name {
			callers = append(callers, edge.From)
		}
	}
	return callers
}

// FindCycles reports call cycles found by depth-first traversal: each back
// edge contributes the cycle along the current path, rotated to start at its
// smallest name and deduplicated. Call collection itself records recursion
// flatly; downstream consumers that care about recursive definitions query
// the graph instead.
func FindCycles(g *CallGraph) [][]string {
	names := make([]string, 0, len(g.Nodes))
	for name := range g.Nodes {
		names = append(names, name)
	}
	sort.Strings(names)

	adjacency := make(map[string][]string, len(g.Nodes))
	for _, edge := range g.Edges {
		adjacency[edge.From] = append(adjacency[edge.From], edge.To)
	}
	for from := range adjacency {
		sort.Strings(adjacency[from])
	}

	const (
		unvisited = 0
		inStack   = 1
		done      = 2
	)

	state := make(map[string]int, len(g.Nodes))
	stack := []string{}
	cycles := [][]string{}
	seen := make(map[string]bool) // canonical cycle keys, to dedup rotations

	var visit func(name string)
	visit = func(name string) {
		state[name] = inStack
		stack = append(stack, name)

		for _, next := range adjacency[name] {
			switch state[next] {
			case unvisited:
				visit(next)
			case inStack:
				// Slice the current stack from the first occurrence of next
				start := len(stack) - 1
				for start >= 0 && stack[start] != next {
					start--
				}
				if start >= 0 {
					cycle := canonicalCycle(stack[start:])
					key := cycleKey(cycle)
					if !seen[key] {
						seen[key] = true
						cycles = append(cycles, cycle)
					}
				}
			}
		}

		stack = stack[:len(stack)-1]
		state[name] = done
	}

	for _, name := range names {
		if state[name] == unvisited {
			visit(name)
		}
	}

	return cycles
}

// canonicalCycle rotates a cycle so it starts at its smallest name
func canonicalCycle(cycle []string) []string {
	smallest := 0
	for i, name := range cycle {
		if name < cycle[smallest] {
			smallest = i
		}
	}
	rotated := make([]string, 0, len(cycle))
	rotated = append(rotated, cycle[smallest:]...)
	rotated = append(rotated, cycle[:smallest]...)
	return rotated
}

func cycleKey(cycle []string) string {
	key := ""
	for _, name := range cycle {
		key += name + "\x00"
	}
	return key
}
