package models

import (
	"time"

	"github.com/uptrace/bun"
)

// GameEvent is an immutable, already-persisted record of something that
// happened in the simulation. The row id doubles as the audit log id that
// consequences are tagged with.
type GameEvent struct {
	bun.BaseModel `bun:"table:game_events,alias:ge"`

	ID         int64          `bun:"id,pk,autoincrement"`
	GuildID    string         `bun:"guild_id,notnull"`
	EventType  string         `bun:"event_type,notnull"`
	Details    map[string]any `bun:"details,type:jsonb"`
	PlayerID   *string        `bun:"player_id"`
	PartyID    *int64         `bun:"party_id"`
	LocationID *int64         `bun:"location_id"`
	CreatedAt  time.Time      `bun:"created_at,notnull"`
}

// Event types emitted by the quest engine itself. Gameplay event types
// (combat, dialogue, item use...) are defined by the systems that record
// them; the engine only pattern-matches on those.
const (
	EventTypeSystemEvent        = "SYSTEM_EVENT"
	EventTypeQuestStepCompleted = "QUEST_STEP_COMPLETED"
	EventTypeQuestCompleted     = "QUEST_COMPLETED"
	EventTypeItemAcquired       = "ITEM_ACQUIRED"
	EventTypeWorldStateChange   = "WORLD_STATE_CHANGE"
)

// SYSTEM_EVENT subtypes, carried in the details under "event".
const (
	SystemEventQuestStepStarted = "QUEST_STEP_STARTED"
)

// Consequence source tags recorded in narrative log details.
const (
	SourceQuestReward      = "quest_reward"
	SourceQuestConsequence = "quest_consequence"
)
