package gesture

import (
	"fmt"
	"io"
	"strings"
)

// Snapshot is a point-in-time copy of a recognizer tree for diagnostics.
type Snapshot struct {
	Kind     Kind
	Tag      string
	Handle   Handle
	Node     string
	State    RefereeState
	Mode     string // groups only
	Parallel bool
	History  []StateRecord
	Children []Snapshot
}

// Dump returns a snapshot of the recognizer and its descendants.
func (b *recognizerBase) Dump() Snapshot {
	s := Snapshot{
		Kind:     b.kind,
		Tag:      b.tag,
		Handle:   b.handle,
		Node:     nodeLabel(b.node),
		State:    b.state,
		Parallel: b.parallel,
		History:  append([]StateRecord(nil), b.history...),
	}
	for _, c := range b.self.children() {
		s.Children = append(s.Children, c.Dump())
	}
	return s
}

func (g *groupRecognizer) Dump() Snapshot {
	s := g.recognizerBase.Dump()
	s.Mode = g.mode.String()
	return s
}

// String renders the snapshot as an indented tree, one recognizer per line.
func (s Snapshot) String() string {
	var sb strings.Builder
	s.write(&sb, 0)
	return sb.String()
}

func (s Snapshot) write(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(s.Kind.String())
	if s.Mode != "" {
		fmt.Fprintf(sb, "[%s]", s.Mode)
	}
	if s.Tag != "" {
		fmt.Fprintf(sb, "(%s)", s.Tag)
	}
	fmt.Fprintf(sb, " %v %s", s.Handle, s.State)
	if s.Parallel {
		sb.WriteString(" parallel")
	}
	if n := len(s.History); n > 0 {
		last := s.History[n-1]
		fmt.Fprintf(sb, " @%v %s", last.At, last.Reason)
	}
	sb.WriteByte('\n')
	for _, c := range s.Children {
		c.write(sb, depth+1)
	}
}

// DumpTree writes every node that owns recognizers, its recognizer trees and
// the open scopes.
func (e *Engine) DumpTree(w io.Writer) error {
	var sb strings.Builder
	var visit func(n *Node, depth int)
	visit = func(n *Node, depth int) {
		roots := e.Recognizers(n)
		if len(roots) > 0 {
			fmt.Fprintf(&sb, "%s%s\n", strings.Repeat("  ", depth), nodeLabel(n))
			for _, r := range roots {
				r.Dump().write(&sb, depth+1)
			}
		}
		for _, c := range n.children {
			visit(c, depth+1)
		}
	}
	visit(e.root, 0)
	for _, s := range e.referee.scopes {
		fmt.Fprintf(&sb, "scope %v delayed=%v:", s.key, s.delayedClose)
		for _, m := range e.referee.members(s) {
			fmt.Fprintf(&sb, " %s=%s", describe(m), m.State())
		}
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
