package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Relationship tracks the running score between an acting entity (usually a
// player) and a target entity (NPC, faction, another player). Deltas are
// accumulated by upsert; the last event columns link back to the cause.
type Relationship struct {
	bun.BaseModel `bun:"table:relationships,alias:r"`

	ID               int64     `bun:"id,pk,autoincrement"`
	GuildID          string    `bun:"guild_id,notnull"`
	ActingEntityID   string    `bun:"acting_entity_id,notnull"`
	ActingEntityType string    `bun:"acting_entity_type,notnull"`
	TargetEntityID   string    `bun:"target_entity_id,notnull"`
	TargetEntityType string    `bun:"target_entity_type,notnull"`
	Score            int       `bun:"score,notnull,default:0"`
	LastEventType    string    `bun:"last_event_type"`
	LastEventLogID   int64     `bun:"last_event_log_id"`
	UpdatedAt        time.Time `bun:"updated_at,notnull"`
}
