package models

import (
	"time"

	"github.com/uptrace/bun"
)

// WorldState is a per-guild named flag. Quest consequences overwrite the
// value; the narrative record of the change lives in game_events.
type WorldState struct {
	bun.BaseModel `bun:"table:world_state,alias:ws"`

	ID        int64     `bun:"id,pk,autoincrement"`
	GuildID   string    `bun:"guild_id,notnull"`
	Flag      string    `bun:"flag,notnull"`
	Value     any       `bun:"value,type:jsonb"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}

// PlayerItem is one stack of an item in a player's inventory.
type PlayerItem struct {
	bun.BaseModel `bun:"table:player_items,alias:pi"`

	ID         int64     `bun:"id,pk,autoincrement"`
	GuildID    string    `bun:"guild_id,notnull"`
	PlayerID   string    `bun:"player_id,notnull"`
	ItemID     string    `bun:"item_id,notnull"`
	Quantity   int       `bun:"quantity,notnull"`
	ObtainedAt time.Time `bun:"obtained_at,notnull"`
	UpdatedAt  time.Time `bun:"updated_at,notnull"`
}
