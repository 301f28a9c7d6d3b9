package engine

import (
	"context"
	"fmt"

	"github.com/loreweaver-bot/loreweaver/loreweaver/database/models"
	"github.com/uptrace/bun"
)

// Goal evaluation method names. The registry is an extension point: callers
// may register additional methods (an external judge, a scripted check) as
// long as they stay read-only and deterministic for a given event.
const (
	GoalMethodRuleBased = "rule_based"
)

// GoalFunc decides whether a step's abstract goal holds for an event. It
// must not mutate state; re-evaluating the same event against the same step
// must yield the same answer.
type GoalFunc func(ctx context.Context, db bun.IDB, guildID string, playerID string, partyID *int64, quest *models.Quest, step *models.QuestStep, event *models.GameEvent) (bool, error)

// GoalRegistry maps evaluation method names to their implementations.
type GoalRegistry struct {
	methods map[string]GoalFunc
}

// NewGoalRegistry returns a registry with the built-in rule_based method.
func NewGoalRegistry() *GoalRegistry {
	r := &GoalRegistry{methods: make(map[string]GoalFunc)}
	r.Register(GoalMethodRuleBased, evaluateRuleBased)
	return r
}

// Register adds or replaces a goal evaluation method.
func (r *GoalRegistry) Register(method string, fn GoalFunc) {
	r.methods[method] = fn
}

// Evaluate checks a step's abstract goal against an event. A nil or disabled
// goal is trivially satisfied: the mechanic match alone completes the step.
func (r *GoalRegistry) Evaluate(ctx context.Context, db bun.IDB, guildID string, playerID string, partyID *int64, quest *models.Quest, step *models.QuestStep, event *models.GameEvent) (bool, error) {
	goal := step.AbstractGoal
	if goal == nil || !goal.Enabled {
		return true, nil
	}
	fn, ok := r.methods[goal.EvaluationMethod]
	if !ok {
		return false, fmt.Errorf("unknown goal evaluation method %q on step %d", goal.EvaluationMethod, step.ID)
	}
	return fn(ctx, db, guildID, playerID, partyID, quest, step, event)
}

// evaluateRuleBased treats the goal's criteria as a declarative subset match
// over the event details, the same rule the mechanic matcher uses. A goal
// with no criteria is a purely narrative marker and passes.
func evaluateRuleBased(_ context.Context, _ bun.IDB, _ string, _ string, _ *int64, _ *models.Quest, step *models.QuestStep, event *models.GameEvent) (bool, error) {
	criteria := step.AbstractGoal.Criteria
	if len(criteria) == 0 {
		return true, nil
	}
	return detailsSubset(criteria, event.Details), nil
}
