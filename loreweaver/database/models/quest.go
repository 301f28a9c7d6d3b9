package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Quest is an immutable content template: an ordered list of steps plus a
// one-time completion reward bundle. State lives in PlayerQuestProgress.
type Quest struct {
	bun.BaseModel `bun:"table:quests,alias:q"`

	ID          int64          `bun:"id,pk,autoincrement"`
	GuildID     string         `bun:"guild_id,notnull"`
	QuestID     string         `bun:"quest_id,notnull"`
	Title       string         `bun:"title,notnull"`
	Rewards     ConsequenceSet `bun:"rewards,type:jsonb"`
	QuestlineID *int64         `bun:"questline_id"`
	CreatedAt   time.Time      `bun:"created_at,notnull"`
	UpdatedAt   time.Time      `bun:"updated_at,notnull"`

	// Relations
	Steps []*QuestStep `bun:"rel:has-many,join:id=quest_id"`
}

// FirstStep returns the step with the lowest order, or nil for an empty quest.
func (q *Quest) FirstStep() *QuestStep {
	var first *QuestStep
	for _, s := range q.Steps {
		if first == nil || s.StepOrder < first.StepOrder {
			first = s
		}
	}
	return first
}

// StepAfter returns the step that follows the given order index, or nil if
// the given step is the last one.
func (q *Quest) StepAfter(order int) *QuestStep {
	var next *QuestStep
	for _, s := range q.Steps {
		if s.StepOrder <= order {
			continue
		}
		if next == nil || s.StepOrder < next.StepOrder {
			next = s
		}
	}
	return next
}

type QuestStep struct {
	bun.BaseModel `bun:"table:quest_steps,alias:qs"`

	ID                int64             `bun:"id,pk,autoincrement"`
	QuestID           int64             `bun:"quest_id,notnull"`
	StepOrder         int               `bun:"step_order,notnull"`
	Title             string            `bun:"title,notnull"`
	RequiredMechanics RequiredMechanics `bun:"required_mechanics,type:jsonb"`
	AbstractGoal      *AbstractGoal     `bun:"abstract_goal,type:jsonb"`
	Consequences      ConsequenceSet    `bun:"consequences,type:jsonb"`
	CreatedAt         time.Time         `bun:"created_at,notnull"`
	UpdatedAt         time.Time         `bun:"updated_at,notnull"`
}

// Questline groups related quests into a larger arc. Grouping only, no state.
type Questline struct {
	bun.BaseModel `bun:"table:questlines,alias:ql"`

	ID        int64     `bun:"id,pk,autoincrement"`
	GuildID   string    `bun:"guild_id,notnull"`
	Title     string    `bun:"title,notnull"`
	CreatedAt time.Time `bun:"created_at,notnull"`
}
