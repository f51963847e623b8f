package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes an indented dump of sym to w, one symbol per line.
func Fprint(w io.Writer, sym Symbol) error {
	p := &printer{w: w}
	p.print(sym, 0)
	return p.err
}

// Sprint returns the dump produced by Fprint.
func Sprint(sym Symbol) string {
	var b strings.Builder
	_ = Fprint(&b, sym)
	return b.String()
}

type printer struct {
	w   io.Writer
	err error
}

func (p *printer) line(depth int, format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, "%s%s\n", strings.Repeat("  ", depth), fmt.Sprintf(format, args...))
}

func (p *printer) print(sym Symbol, depth int) {
	if IsNil(sym) {
		p.line(depth, "<nil>")
		return
	}
	switch s := sym.(type) {
	case *Leaf:
		p.line(depth, "Leaf %s", s.Token)
	case *Link:
		p.line(depth, "Link %s -> unit %d", s.Token, s.Target)
	case *Node:
		p.line(depth, "Node @%s (%d children)", s.tag, len(s.children))
		for _, child := range s.children {
			p.print(child, depth+1)
		}
	}
}
