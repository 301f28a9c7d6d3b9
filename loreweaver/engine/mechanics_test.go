package engine

import (
	"testing"

	"github.com/loreweaver-bot/loreweaver/loreweaver/database/models"
	"github.com/stretchr/testify/assert"
)

func TestMatchMechanics(t *testing.T) {
	tests := []struct {
		name     string
		event    *models.GameEvent
		required models.RequiredMechanics
		want     bool
	}{
		{
			name:     "event type must match exactly",
			event:    &models.GameEvent{EventType: "COMBAT_END"},
			required: models.RequiredMechanics{EventType: "combat_end"},
			want:     false,
		},
		{
			name:     "type match with no subset passes",
			event:    &models.GameEvent{EventType: "COMBAT_END", Details: map[string]any{"enemy": "goblin"}},
			required: models.RequiredMechanics{EventType: "COMBAT_END"},
			want:     true,
		},
		{
			name: "subset ignores extra event keys",
			event: &models.GameEvent{EventType: "COMBAT_END", Details: map[string]any{
				"enemy":   "goblin",
				"outcome": "victory",
				"rounds":  float64(3),
			}},
			required: models.RequiredMechanics{
				EventType:     "COMBAT_END",
				DetailsSubset: map[string]any{"enemy": "goblin"},
			},
			want: true,
		},
		{
			name:  "missing required key fails",
			event: &models.GameEvent{EventType: "COMBAT_END", Details: map[string]any{"outcome": "victory"}},
			required: models.RequiredMechanics{
				EventType:     "COMBAT_END",
				DetailsSubset: map[string]any{"enemy": "goblin"},
			},
			want: false,
		},
		{
			name:  "unequal value fails",
			event: &models.GameEvent{EventType: "COMBAT_END", Details: map[string]any{"enemy": "wolf"}},
			required: models.RequiredMechanics{
				EventType:     "COMBAT_END",
				DetailsSubset: map[string]any{"enemy": "goblin"},
			},
			want: false,
		},
		{
			name:  "no coercion between string and number",
			event: &models.GameEvent{EventType: "SKILL_CHECK", Details: map[string]any{"roll": float64(10)}},
			required: models.RequiredMechanics{
				EventType:     "SKILL_CHECK",
				DetailsSubset: map[string]any{"roll": "10"},
			},
			want: false,
		},
		{
			name: "nested objects match by subset",
			event: &models.GameEvent{EventType: "DIALOGUE_END", Details: map[string]any{
				"npc": map[string]any{"id": "elder", "disposition": "friendly"},
			}},
			required: models.RequiredMechanics{
				EventType: "DIALOGUE_END",
				DetailsSubset: map[string]any{
					"npc": map[string]any{"id": "elder"},
				},
			},
			want: true,
		},
		{
			name: "nested subset still checks values",
			event: &models.GameEvent{EventType: "DIALOGUE_END", Details: map[string]any{
				"npc": map[string]any{"id": "blacksmith"},
			}},
			required: models.RequiredMechanics{
				EventType: "DIALOGUE_END",
				DetailsSubset: map[string]any{
					"npc": map[string]any{"id": "elder"},
				},
			},
			want: false,
		},
		{
			name:  "object against scalar fails",
			event: &models.GameEvent{EventType: "DIALOGUE_END", Details: map[string]any{"npc": "elder"}},
			required: models.RequiredMechanics{
				EventType: "DIALOGUE_END",
				DetailsSubset: map[string]any{
					"npc": map[string]any{"id": "elder"},
				},
			},
			want: false,
		},
		{
			name:  "subset against missing event details fails",
			event: &models.GameEvent{EventType: "COMBAT_END"},
			required: models.RequiredMechanics{
				EventType:     "COMBAT_END",
				DetailsSubset: map[string]any{"enemy": "goblin"},
			},
			want: false,
		},
		{
			name: "array values compare by deep equality",
			event: &models.GameEvent{EventType: "LOOT", Details: map[string]any{
				"items": []any{"sword", "shield"},
			}},
			required: models.RequiredMechanics{
				EventType:     "LOOT",
				DetailsSubset: map[string]any{"items": []any{"sword"}},
			},
			want: false,
		},
		{
			name:     "nil event never matches",
			event:    nil,
			required: models.RequiredMechanics{EventType: "COMBAT_END"},
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchMechanics(tt.event, tt.required))
		})
	}
}

func TestMatchMechanicsIsPure(t *testing.T) {
	event := &models.GameEvent{EventType: "COMBAT_END", Details: map[string]any{"enemy": "goblin"}}
	required := models.RequiredMechanics{
		EventType:     "COMBAT_END",
		DetailsSubset: map[string]any{"enemy": "goblin"},
	}

	first := MatchMechanics(event, required)
	second := MatchMechanics(event, required)
	assert.Equal(t, first, second)
	assert.Equal(t, map[string]any{"enemy": "goblin"}, event.Details)
}
