package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Party is a group of players acting together. When an event originates from
// a party, the engine processes every member's quest progress independently.
type Party struct {
	bun.BaseModel `bun:"table:parties,alias:p"`

	ID        int64     `bun:"id,pk,autoincrement"`
	GuildID   string    `bun:"guild_id,notnull"`
	Name      string    `bun:"name,notnull"`
	MemberIDs []string  `bun:"member_ids,type:jsonb"`
	CreatedAt time.Time `bun:"created_at,notnull"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}
