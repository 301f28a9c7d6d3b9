package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/loreweaver-bot/loreweaver/loreweaver/database/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func goalStep(goal *models.AbstractGoal) *models.QuestStep {
	return &models.QuestStep{ID: 42, AbstractGoal: goal}
}

func TestGoalRegistry_NilAndDisabledGoalsPass(t *testing.T) {
	r := NewGoalRegistry()
	quest := &models.Quest{ID: 1}
	event := &models.GameEvent{EventType: "COMBAT_END"}

	ok, err := r.Evaluate(context.Background(), nil, "guild-1", "alice", nil, quest, goalStep(nil), event)
	require.NoError(t, err)
	assert.True(t, ok)

	disabled := &models.AbstractGoal{Enabled: false, EvaluationMethod: GoalMethodRuleBased}
	ok, err = r.Evaluate(context.Background(), nil, "guild-1", "alice", nil, quest, goalStep(disabled), event)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestGoalRegistry_RuleBased(t *testing.T) {
	r := NewGoalRegistry()
	quest := &models.Quest{ID: 1}
	event := &models.GameEvent{
		EventType: "COMBAT_END",
		Details:   map[string]any{"enemy": "goblin", "outcome": "victory"},
	}

	t.Run("empty criteria passes", func(t *testing.T) {
		step := goalStep(&models.AbstractGoal{Enabled: true, EvaluationMethod: GoalMethodRuleBased})
		ok, err := r.Evaluate(context.Background(), nil, "guild-1", "alice", nil, quest, step, event)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("criteria subset satisfied", func(t *testing.T) {
		step := goalStep(&models.AbstractGoal{
			Enabled:          true,
			EvaluationMethod: GoalMethodRuleBased,
			Criteria:         map[string]any{"outcome": "victory"},
		})
		ok, err := r.Evaluate(context.Background(), nil, "guild-1", "alice", nil, quest, step, event)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("criteria subset unsatisfied", func(t *testing.T) {
		step := goalStep(&models.AbstractGoal{
			Enabled:          true,
			EvaluationMethod: GoalMethodRuleBased,
			Criteria:         map[string]any{"outcome": "defeat"},
		})
		ok, err := r.Evaluate(context.Background(), nil, "guild-1", "alice", nil, quest, step, event)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestGoalRegistry_UnknownMethodErrors(t *testing.T) {
	r := NewGoalRegistry()
	step := goalStep(&models.AbstractGoal{Enabled: true, EvaluationMethod: "oracle_consultation"})
	event := &models.GameEvent{EventType: "COMBAT_END"}

	_, err := r.Evaluate(context.Background(), nil, "guild-1", "alice", nil, &models.Quest{ID: 1}, step, event)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oracle_consultation")
}

func TestGoalRegistry_RegisterExtraMethod(t *testing.T) {
	r := NewGoalRegistry()
	calls := 0
	r.Register("always_no", func(_ context.Context, _ bun.IDB, _ string, _ string, _ *int64, _ *models.Quest, _ *models.QuestStep, _ *models.GameEvent) (bool, error) {
		calls++
		return false, nil
	})

	step := goalStep(&models.AbstractGoal{Enabled: true, EvaluationMethod: "always_no"})
	event := &models.GameEvent{EventType: "COMBAT_END"}
	ok, err := r.Evaluate(context.Background(), nil, "guild-1", "alice", nil, &models.Quest{ID: 1}, step, event)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, calls)
}

func TestGoalRegistry_EvaluationIsDeterministic(t *testing.T) {
	r := NewGoalRegistry()
	step := goalStep(&models.AbstractGoal{
		Enabled:          true,
		EvaluationMethod: GoalMethodRuleBased,
		Criteria:         map[string]any{"enemy": "goblin"},
	})
	event := &models.GameEvent{EventType: "COMBAT_END", Details: map[string]any{"enemy": "goblin"}}

	for i := 0; i < 3; i++ {
		ok, err := r.Evaluate(context.Background(), nil, "guild-1", "alice", nil, &models.Quest{ID: 1}, step, event)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestGoalRegistry_RegisteredErrorPropagates(t *testing.T) {
	r := NewGoalRegistry()
	boom := errors.New("judge offline")
	r.Register("external_judge", func(_ context.Context, _ bun.IDB, _ string, _ string, _ *int64, _ *models.Quest, _ *models.QuestStep, _ *models.GameEvent) (bool, error) {
		return false, boom
	})

	step := goalStep(&models.AbstractGoal{Enabled: true, EvaluationMethod: "external_judge"})
	_, err := r.Evaluate(context.Background(), nil, "guild-1", "alice", nil, &models.Quest{ID: 1}, step, &models.GameEvent{})
	assert.ErrorIs(t, err, boom)
}
