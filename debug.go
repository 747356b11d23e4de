package gesture

import (
	"fmt"
	"io"
	"os"
)

// SetDebugMode enables or disables debug mode. When enabled, every
// recognizer state transition, scope close and gesture callback is traced
// to the log output, disposed-node access panics and tree depth and child
// count warnings are printed to stderr.
func (e *Engine) SetDebugMode(enabled bool) {
	e.debug = enabled
	globalDebug = enabled
}

// SetLogOutput sets where debug traces are written. nil restores stderr.
func (e *Engine) SetLogOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	e.logOut = w
}

// globalDebug mirrors the most recently set Engine debug flag so that node
// operations (which lack an Engine pointer) can check it cheaply. Only valid
// with a single Engine; multiple Engines with differing debug modes will
// reflect whichever called SetDebugMode last.
var globalDebug bool

// debugf writes one trace line when debug mode is on.
func (e *Engine) debugf(format string, args ...any) {
	if !e.debug {
		return
	}
	_, _ = fmt.Fprintf(e.logOut, "[gesture] %8.3fs "+format+"\n",
		append([]any{e.now.Seconds()}, args...)...)
}

func (e *Engine) traceTransition(r Recognizer, rec StateRecord) {
	if !e.debug {
		return
	}
	e.debugf("%s on %s: %s -> %s (%s)", describe(r), nodeLabel(r.Node()), rec.From, rec.To, rec.Reason)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("gesture debug: %s on disposed node %q (ID was %d)", op, n.Name, n.ID))
	}
}

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[gesture] warning: tree depth %d exceeds %d (node %q)\n",
			depth, debugMaxTreeDepth, n.Name)
	}
}

// debugCheckChildCount warns on stderr if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		_, _ = fmt.Fprintf(os.Stderr, "[gesture] warning: node %q has %d children (threshold %d)\n",
			n.Name, len(n.children), debugMaxChildCount)
	}
}
