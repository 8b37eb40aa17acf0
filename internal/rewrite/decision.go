package rewrite

import (
	"fmt"
	"go/token"
	"sync"
)

// Action is the outcome of processing one logging label.
type Action int

const (
	actionInvalid Action = iota
	ActionRewritten
	ActionStripped
)

func (a Action) String() string {
	switch a {
	case ActionRewritten:
		return "rewritten"
	case ActionStripped:
		return "stripped"
	default:
		return fmt.Sprintf("action-invalid(%d)", a)
	}
}

// Decision records what happened to a single label instance.
type Decision struct {
	Action  Action
	Label   string
	Context string

	// Messages is the number of emission calls produced, zero for
	// stripped labels.
	Messages int

	Pos token.Position
}

// DecisionLog collects decisions across files. It is shared by the
// per-file rewriters the driver runs in parallel.
type DecisionLog struct {
	mu        sync.Mutex
	decisions []Decision
}

// Add appends a new record to the log.
func (l *DecisionLog) Add(d Decision) {
	l.mu.Lock()
	l.decisions = append(l.decisions, d)
	l.mu.Unlock()
}

// Decisions returns a snapshot of all collected records.
func (l *DecisionLog) Decisions() []Decision {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Decision, len(l.decisions))
	copy(out, l.decisions)
	return out
}
