package executor

import (
	"context"
	"time"

	"github.com/specialistvlad/modelgrid/internal/nodeid"
	"github.com/specialistvlad/modelgrid/internal/typedesc"
	"github.com/specialistvlad/modelgrid/internal/view"
)

// Action is the body of a rule.
type Action func(ctx context.Context, v *view.CollectionView) error

// Rule binds an action to the collection it operates on.
type Rule struct {
	// Descriptor names the rule in logs, errors, and reports.
	Descriptor string
	// Target is the collection host the rule receives a view of.
	Target nodeid.Address
	// ElementType is the type the rule sees elements as.
	ElementType typedesc.TypeRef
	// Writable selects a mutable view.
	Writable bool
	Action   Action
}

// Status is the result of a single rule.
type Status int

const (
	Success Status = iota
	Failed
	Skipped
)

func (s Status) String() string {
	switch s {
	case Success:
		return "SUCCESS"
	case Failed:
		return "FAILED"
	case Skipped:
		return "SKIPPED"
	default:
		return "UNKNOWN"
	}
}

// Outcome records how one rule ended.
type Outcome struct {
	Rule     string
	Status   Status
	Err      error
	Duration time.Duration
}
