package executor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/specialistvlad/modelgrid/internal/ctxlog"
	"github.com/specialistvlad/modelgrid/internal/nodeid"
	"github.com/specialistvlad/modelgrid/internal/typedesc"
	"github.com/specialistvlad/modelgrid/internal/view"
)

// ViewBuilder builds and releases the views handed to rules.
type ViewBuilder interface {
	BuildView(ctx context.Context, host nodeid.Address, elementType typedesc.TypeRef, rule string, writable bool) (*view.CollectionView, error)
	Close(ctx context.Context, v *view.CollectionView)
}

// Executor runs rules on a pool of workers.
type Executor struct {
	views   ViewBuilder
	workers int
}

// New creates an executor. A worker count below one means one worker.
func New(views ViewBuilder, workers int) *Executor {
	if workers < 1 {
		workers = 1
	}
	return &Executor{views: views, workers: workers}
}

// group is the queue of rules, by index, that share a top-level subtree.
type group struct {
	key   string
	rules []int
}

// Run executes rules and returns one outcome per rule, in the order the
// rules were given.
func (e *Executor) Run(ctx context.Context, rules []Rule) []Outcome {
	logger := ctxlog.FromContext(ctx)
	outcomes := make([]Outcome, len(rules))

	groups := groupBySubtree(rules)
	logger.Debug("Executing rules.", "rules", len(rules), "subtrees", len(groups), "workers", e.workers)

	queue := make(chan group)
	var wg sync.WaitGroup
	for workerID := range min(e.workers, max(len(groups), 1)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.worker(ctx, workerID, queue, rules, outcomes)
		}()
	}
	for _, g := range groups {
		queue <- g
	}
	close(queue)
	wg.Wait()

	return outcomes
}

func (e *Executor) worker(ctx context.Context, workerID int, queue <-chan group, rules []Rule, outcomes []Outcome) {
	logger := ctxlog.FromContext(ctx).With("workerID", workerID)
	logger.Debug("Worker started.")

	for g := range queue {
		var failure error
		for _, idx := range g.rules {
			r := rules[idx]
			switch {
			case failure != nil:
				outcomes[idx] = Outcome{Rule: r.Descriptor, Status: Skipped, Err: fmt.Errorf("skipped after failure in subtree '%s': %w", g.key, failure)}
			case ctx.Err() != nil:
				outcomes[idx] = Outcome{Rule: r.Descriptor, Status: Skipped, Err: ctx.Err()}
			default:
				outcomes[idx] = e.runRule(ctxlog.With(ctx, "workerID", workerID), r)
				if outcomes[idx].Status == Failed {
					failure = outcomes[idx].Err
				}
			}
		}
	}
	logger.Debug("Worker finished.")
}

func (e *Executor) runRule(ctx context.Context, r Rule) Outcome {
	ctx = ctxlog.With(ctx, "rule", r.Descriptor)
	logger := ctxlog.FromContext(ctx)
	start := time.Now()
	out := Outcome{Rule: r.Descriptor, Status: Success}

	v, err := e.views.BuildView(ctx, r.Target, r.ElementType, r.Descriptor, r.Writable)
	if err != nil {
		out.Status, out.Err = Failed, fmt.Errorf("rule %s: %w", r.Descriptor, err)
		out.Duration = time.Since(start)
		logger.Error("Rule could not obtain its view.", "target", r.Target.Key(), "error", err)
		return out
	}

	logger.Debug("Rule started.", "view", v.String())
	err = e.runAction(ctx, r, v)
	out.Duration = time.Since(start)

	if err != nil {
		out.Status, out.Err = Failed, fmt.Errorf("rule %s: %w", r.Descriptor, err)
		logger.Error("Rule failed.", "error", err)
		return out
	}
	logger.Debug("Rule succeeded.", "duration", out.Duration)
	return out
}

// runAction runs the rule's action on v and always closes v afterwards. A
// panic in the action becomes an error.
func (e *Executor) runAction(ctx context.Context, r Rule, v *view.CollectionView) (err error) {
	defer e.views.Close(ctx, v)
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("action panicked: %v", p)
		}
	}()
	return r.Action(ctx, v)
}

func groupBySubtree(rules []Rule) []group {
	var groups []group
	index := make(map[string]int)
	for i, r := range rules {
		key := r.Target.Top().Key()
		gi, ok := index[key]
		if !ok {
			gi = len(groups)
			index[key] = gi
			groups = append(groups, group{key: key})
		}
		groups[gi].rules = append(groups[gi].rules, i)
	}
	return groups
}
