package syntax

import (
	"fmt"
	"sync"
)

var (
	namesMu   sync.RWMutex
	nodeNames = map[NodeTag]string{}
)

// RegisterNodeNames records display names for node tags. Grammar packages call
// it from init.
func RegisterNodeNames(names map[NodeTag]string) {
	namesMu.Lock()
	defer namesMu.Unlock()
	for t, name := range names {
		nodeNames[t] = name
	}
}

func (t NodeTag) String() string {
	namesMu.RLock()
	name, ok := nodeNames[t]
	namesMu.RUnlock()
	if ok {
		return name
	}
	return fmt.Sprintf("Node(%d)", int32(t))
}

// Describe returns a short description of sym for diagnostics.
func Describe(sym Symbol) string {
	if IsNil(sym) {
		return "<nil>"
	}
	switch s := sym.(type) {
	case *Node:
		return "node " + s.tag.String()
	case *Link:
		return "link " + s.Token.Kind.String()
	case *Leaf:
		return "leaf " + s.Token.Kind.String()
	}
	return fmt.Sprintf("%T", sym)
}
