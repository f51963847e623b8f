// Package dag provides the directed include graph between units of a batch.
// It supports cycle reporting and transitive dependency queries.
package dag

import (
	"fmt"
	"sort"
)

// Node represents a node in the graph.
type Node struct {
	// ID is the unique identifier (unit name)
	ID string
	// Data holds arbitrary node data
	Data any
}

// Graph is a directed graph where an edge parent -> child means the child
// includes the parent. Unlike a DAG it may hold cycles; Cycles reports them.
type Graph struct {
	nodes   map[string]*Node
	edges   map[string][]string // parent -> children (includers)
	parents map[string][]string // child -> parents (included units)
}

// NewGraph creates a new empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes:   make(map[string]*Node),
		edges:   make(map[string][]string),
		parents: make(map[string][]string),
	}
}

// AddNode adds a node to the graph, or updates its data.
func (g *Graph) AddNode(id string, data any) {
	if node, exists := g.nodes[id]; exists {
		node.Data = data
		return
	}
	g.nodes[id] = &Node{ID: id, Data: data}
}

// AddEdge adds a directed edge from parent to child (child includes parent).
func (g *Graph) AddEdge(parentID, childID string) error {
	if _, exists := g.nodes[parentID]; !exists {
		return fmt.Errorf("parent node %q does not exist", parentID)
	}
	if _, exists := g.nodes[childID]; !exists {
		return fmt.Errorf("child node %q does not exist", childID)
	}
	if parentID == childID {
		return fmt.Errorf("self-loop detected: %s", parentID)
	}

	if !contains(g.edges[parentID], childID) {
		g.edges[parentID] = append(g.edges[parentID], childID)
	}
	if !contains(g.parents[childID], parentID) {
		g.parents[childID] = append(g.parents[childID], parentID)
	}
	return nil
}

// GetNode returns a node by ID.
func (g *Graph) GetNode(id string) (*Node, bool) {
	node, exists := g.nodes[id]
	return node, exists
}

// GetParents returns the units directly included by a node, in the order
// the edges were added.
func (g *Graph) GetParents(id string) []string {
	return g.parents[id]
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int {
	count := 0
	for _, children := range g.edges {
		count += len(children)
	}
	return count
}

func (g *Graph) sortedIDs() []string {
	ids := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Cycles returns every strongly connected component with more than one
// node, each sorted, ordered by first member. An acyclic graph yields nil.
func (g *Graph) Cycles() [][]string {
	index := make(map[string]int)
	low := make(map[string]int)
	onStack := make(map[string]bool)
	var stack []string
	var cycles [][]string
	next := 0

	var connect func(id string)
	connect = func(id string) {
		index[id] = next
		low[id] = next
		next++
		stack = append(stack, id)
		onStack[id] = true

		for _, childID := range g.edges[id] {
			if _, seen := index[childID]; !seen {
				connect(childID)
				low[id] = min(low[id], low[childID])
			} else if onStack[childID] {
				low[id] = min(low[id], index[childID])
			}
		}

		if low[id] != index[id] {
			return
		}
		var component []string
		for {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			onStack[top] = false
			component = append(component, top)
			if top == id {
				break
			}
		}
		if len(component) > 1 {
			sort.Strings(component)
			cycles = append(cycles, component)
		}
	}

	for _, id := range g.sortedIDs() {
		if _, seen := index[id]; !seen {
			connect(id)
		}
	}
	sort.Slice(cycles, func(i, j int) bool {
		return cycles[i][0] < cycles[j][0]
	})
	return cycles
}

// GetAffectedNodes returns the given nodes plus every node that includes
// them, directly or transitively.
func (g *Graph) GetAffectedNodes(changedIDs []string) []string {
	affected := make(map[string]bool)

	var markAffected func(id string)
	markAffected = func(id string) {
		if affected[id] {
			return
		}
		affected[id] = true
		for _, childID := range g.edges[id] {
			markAffected(childID)
		}
	}

	for _, id := range changedIDs {
		if _, exists := g.nodes[id]; exists {
			markAffected(id)
		}
	}
	return sortedKeys(affected)
}

// GetUpstreamNodes returns every node included by id, directly or
// transitively. id itself is only listed when it sits on a cycle.
func (g *Graph) GetUpstreamNodes(id string) []string {
	upstream := make(map[string]bool)

	var markUpstream func(nodeID string)
	markUpstream = func(nodeID string) {
		for _, parentID := range g.parents[nodeID] {
			if !upstream[parentID] {
				upstream[parentID] = true
				markUpstream(parentID)
			}
		}
	}

	markUpstream(id)
	return sortedKeys(upstream)
}

func sortedKeys(set map[string]bool) []string {
	result := make([]string, 0, len(set))
	for id := range set {
		result = append(result, id)
	}
	sort.Strings(result)
	return result
}

func contains(slice []string, str string) bool {
	for _, s := range slice {
		if s == str {
			return true
		}
	}
	return false
}
