package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequiredMechanicsDecode(t *testing.T) {
	raw := `{
		"event_type": "COMBAT_END",
		"details_subset": {"enemy": "goblin", "outcome": "victory"}
	}`

	var rm RequiredMechanics
	require.NoError(t, json.Unmarshal([]byte(raw), &rm))
	assert.Equal(t, "COMBAT_END", rm.EventType)
	assert.Equal(t, "goblin", rm.DetailsSubset["enemy"])
}

func TestRequiredMechanicsRejectsUnknownKeys(t *testing.T) {
	raw := `{"event_type": "COMBAT_END", "detail_subset": {}}`

	var rm RequiredMechanics
	err := json.Unmarshal([]byte(raw), &rm)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "detail_subset")
}

func TestAbstractGoalDecode(t *testing.T) {
	raw := `{
		"enabled": true,
		"evaluation_method": "rule_based",
		"description": "Convince the elder without bloodshed",
		"criteria": {"approach": "diplomacy"}
	}`

	var g AbstractGoal
	require.NoError(t, json.Unmarshal([]byte(raw), &g))
	assert.True(t, g.Enabled)
	assert.Equal(t, "rule_based", g.EvaluationMethod)
	assert.Equal(t, "diplomacy", g.Criteria["approach"])
}

func TestAbstractGoalRejectsUnknownKeys(t *testing.T) {
	var g AbstractGoal
	err := json.Unmarshal([]byte(`{"enabled": true, "eval_method": "rule_based"}`), &g)
	require.Error(t, err)
}

func TestConsequenceSetDecode(t *testing.T) {
	raw := `{
		"xp_award": {"amount": 100},
		"relationship_changes": [
			{"target_id": "elder", "target_type": "npc", "delta": 5}
		],
		"item_rewards": [
			{"item_id": "iron_sword", "quantity": 2}
		],
		"world_state_changes": [
			{"flag": "bridge_repaired", "value": true}
		]
	}`

	var cs ConsequenceSet
	require.NoError(t, json.Unmarshal([]byte(raw), &cs))
	require.NotNil(t, cs.XPAward)
	assert.Equal(t, 100, cs.XPAward.Amount)
	require.Len(t, cs.RelationshipChanges, 1)
	assert.Equal(t, RelationshipChange{TargetID: "elder", TargetType: "npc", Delta: 5}, cs.RelationshipChanges[0])
	require.Len(t, cs.ItemRewards, 1)
	assert.Equal(t, ItemReward{ItemID: "iron_sword", Quantity: 2}, cs.ItemRewards[0])
	require.Len(t, cs.WorldStateChanges, 1)
	assert.Equal(t, "bridge_repaired", cs.WorldStateChanges[0].Flag)
	assert.Equal(t, true, cs.WorldStateChanges[0].Value)
	assert.False(t, cs.IsZero())
}

func TestConsequenceSetSparseSections(t *testing.T) {
	var cs ConsequenceSet
	require.NoError(t, json.Unmarshal([]byte(`{"xp_award": {"amount": 25}}`), &cs))
	require.NotNil(t, cs.XPAward)
	assert.Empty(t, cs.RelationshipChanges)
	assert.Empty(t, cs.ItemRewards)
	assert.Empty(t, cs.WorldStateChanges)

	var empty ConsequenceSet
	require.NoError(t, json.Unmarshal([]byte(`{}`), &empty))
	assert.True(t, empty.IsZero())
}

func TestConsequenceSetRejectsUnknownKeys(t *testing.T) {
	cases := map[string]string{
		"top level":    `{"xp": {"amount": 10}}`,
		"xp entry":     `{"xp_award": {"amount": 10, "multiplier": 2}}`,
		"relationship": `{"relationship_changes": [{"target_id": "elder", "target_type": "npc", "delta": 1, "reason": "help"}]}`,
		"item":         `{"item_rewards": [{"item_id": "sword", "qty": 1}]}`,
		"world state":  `{"world_state_changes": [{"flag": "x", "value": 1, "scope": "global"}]}`,
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			var cs ConsequenceSet
			assert.Error(t, json.Unmarshal([]byte(raw), &cs))
		})
	}
}

func TestQuestStepNavigation(t *testing.T) {
	quest := &Quest{
		Steps: []*QuestStep{
			{ID: 1, StepOrder: 1},
			{ID: 2, StepOrder: 2},
			{ID: 3, StepOrder: 5},
		},
	}

	first := quest.FirstStep()
	require.NotNil(t, first)
	assert.Equal(t, int64(1), first.ID)

	next := quest.StepAfter(2)
	require.NotNil(t, next)
	assert.Equal(t, int64(3), next.ID)

	assert.Nil(t, quest.StepAfter(5))
	assert.Nil(t, (&Quest{}).FirstStep())
}
