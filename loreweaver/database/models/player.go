package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Player holds per-guild player state owned by the experience subsystem.
type Player struct {
	bun.BaseModel `bun:"table:players,alias:pl"`

	ID         int64     `bun:"id,pk,autoincrement"`
	GuildID    string    `bun:"guild_id,notnull"`
	PlayerID   string    `bun:"player_id,notnull"`
	Experience int64     `bun:"experience,notnull,default:0"`
	CreatedAt  time.Time `bun:"created_at,notnull"`
	UpdatedAt  time.Time `bun:"updated_at,notnull"`
}

// Entity type tags used by the experience and relationship subsystems.
const (
	EntityTypePlayer  = "player"
	EntityTypeNPC     = "npc"
	EntityTypeFaction = "faction"
)

// ExperienceAward is the audit record for a single XP grant, linking it back
// to the game event that caused it.
type ExperienceAward struct {
	bun.BaseModel `bun:"table:experience_awards,alias:xa"`

	ID              int64     `bun:"id,pk,autoincrement"`
	GuildID         string    `bun:"guild_id,notnull"`
	PlayerID        string    `bun:"player_id,notnull"`
	EntityType      string    `bun:"entity_type,notnull"`
	Amount          int       `bun:"amount,notnull"`
	SourceEventType string    `bun:"source_event_type,notnull"`
	SourceLogID     int64     `bun:"source_log_id,notnull"`
	CreatedAt       time.Time `bun:"created_at,notnull"`
}
