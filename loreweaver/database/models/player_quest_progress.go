package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Quest progress status constants
const (
	QuestStatusNotStarted = "NOT_STARTED"
	QuestStatusInProgress = "IN_PROGRESS"
	QuestStatusCompleted  = "COMPLETED"
	QuestStatusFailed     = "FAILED"
)

// PlayerQuestProgress is the per-player cursor through a quest's steps. One
// row per (guild, player, quest). An IN_PROGRESS row always points at a step
// of its quest; completion nulls the pointer and sets COMPLETED exactly once.
// Rows are never deleted, only transitioned to a terminal status.
type PlayerQuestProgress struct {
	bun.BaseModel `bun:"table:player_quest_progress,alias:pqp"`

	ID            int64      `bun:"id,pk,autoincrement"`
	GuildID       string     `bun:"guild_id,notnull"`
	PlayerID      string     `bun:"player_id,notnull"`
	QuestID       int64      `bun:"quest_id,notnull"`
	Status        string     `bun:"status,notnull,default:'NOT_STARTED'"`
	CurrentStepID *int64     `bun:"current_step_id"`
	StartedAt     time.Time  `bun:"started_at,notnull"`
	CompletedAt   *time.Time `bun:"completed_at"`
	CreatedAt     time.Time  `bun:"created_at,notnull"`
	UpdatedAt     time.Time  `bun:"updated_at,notnull"`

	// Relations
	Quest       *Quest     `bun:"rel:belongs-to,join:quest_id=id"`
	CurrentStep *QuestStep `bun:"rel:belongs-to,join:current_step_id=id"`
}
