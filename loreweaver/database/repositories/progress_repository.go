package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/loreweaver-bot/loreweaver/loreweaver/database/models"
	"github.com/uptrace/bun"
)

type ProgressRepository interface {
	// ActiveForPlayer loads all IN_PROGRESS rows for one player with the
	// owning quest (and its steps) and the current step eagerly attached.
	ActiveForPlayer(ctx context.Context, db bun.IDB, guildID, playerID string) ([]*models.PlayerQuestProgress, error)
	// Create seeds an IN_PROGRESS row at the quest's first step. Called by
	// the acceptance flow; the engine itself never creates rows.
	Create(ctx context.Context, db bun.IDB, guildID, playerID string, quest *models.Quest) (*models.PlayerQuestProgress, error)
	Update(ctx context.Context, db bun.IDB, progress *models.PlayerQuestProgress) error
}

type progressRepository struct{}

func NewProgressRepository() ProgressRepository {
	return &progressRepository{}
}

func (r *progressRepository) ActiveForPlayer(ctx context.Context, db bun.IDB, guildID, playerID string) ([]*models.PlayerQuestProgress, error) {
	var rows []*models.PlayerQuestProgress
	err := db.NewSelect().
		Model(&rows).
		Relation("Quest").
		Relation("Quest.Steps", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("step_order ASC")
		}).
		Relation("CurrentStep").
		Where("pqp.guild_id = ?", guildID).
		Where("pqp.player_id = ?", playerID).
		Where("pqp.status = ?", models.QuestStatusInProgress).
		Order("pqp.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *progressRepository) Create(ctx context.Context, db bun.IDB, guildID, playerID string, quest *models.Quest) (*models.PlayerQuestProgress, error) {
	first := quest.FirstStep()
	if first == nil {
		return nil, fmt.Errorf("quest %s has no steps", quest.QuestID)
	}

	now := time.Now()
	progress := &models.PlayerQuestProgress{
		GuildID:       guildID,
		PlayerID:      playerID,
		QuestID:       quest.ID,
		Status:        models.QuestStatusInProgress,
		CurrentStepID: &first.ID,
		StartedAt:     now,
		CreatedAt:     now,
		UpdatedAt:     now,
		Quest:         quest,
		CurrentStep:   first,
	}
	if _, err := db.NewInsert().Model(progress).Exec(ctx); err != nil {
		return nil, err
	}
	return progress, nil
}

func (r *progressRepository) Update(ctx context.Context, db bun.IDB, progress *models.PlayerQuestProgress) error {
	progress.UpdatedAt = time.Now()
	_, err := db.NewUpdate().
		Model(progress).
		Column("status", "current_step_id", "completed_at", "updated_at").
		WherePK().
		Exec(ctx)
	return err
}
