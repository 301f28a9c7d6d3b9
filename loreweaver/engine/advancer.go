package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/loreweaver-bot/loreweaver/loreweaver/database/models"
	"github.com/uptrace/bun"
)

// advance moves a progress row past its just-satisfied current step: either
// on to the next step in order, or to COMPLETED when the quest has no step
// left. Completion also applies the quest-level rewards descriptor, once,
// with a nil step id.
func (e *Engine) advance(ctx context.Context, db bun.IDB, guildID, playerID string, partyID *int64, row *models.PlayerQuestProgress, event *models.GameEvent) error {
	quest := row.Quest
	next := quest.StepAfter(row.CurrentStep.StepOrder)

	if next != nil {
		row.CurrentStepID = &next.ID
		row.CurrentStep = next
		if err := e.progress.Update(ctx, db, row); err != nil {
			return fmt.Errorf("failed to advance quest progress: %w", err)
		}

		if _, err := e.log.LogEvent(ctx, db, guildID, models.EventTypeSystemEvent, map[string]any{
			"event":           models.SystemEventQuestStepStarted,
			"quest_id":        quest.ID,
			"quest_static_id": quest.QuestID,
			"step_id":         next.ID,
			"step_order":      next.StepOrder,
			"step_title":      next.Title,
		}, &playerID, partyID, event.LocationID); err != nil {
			return fmt.Errorf("failed to log step start: %w", err)
		}

		slog.Info("Quest step advanced",
			slog.String("player_id", playerID),
			slog.String("quest_id", quest.QuestID),
			slog.Int("step_order", next.StepOrder))
		return nil
	}

	now := time.Now()
	row.CurrentStepID = nil
	row.CurrentStep = nil
	row.Status = models.QuestStatusCompleted
	row.CompletedAt = &now
	if err := e.progress.Update(ctx, db, row); err != nil {
		return fmt.Errorf("failed to complete quest progress: %w", err)
	}

	if _, err := e.log.LogEvent(ctx, db, guildID, models.EventTypeQuestCompleted, map[string]any{
		"quest_id":        quest.ID,
		"quest_static_id": quest.QuestID,
		"quest_title":     quest.Title,
	}, &playerID, partyID, event.LocationID); err != nil {
		return fmt.Errorf("failed to log quest completion: %w", err)
	}

	// Quest-level completion bonuses, distinct from the per-step
	// consequences already applied.
	if err := e.ApplyConsequences(ctx, db, guildID, quest.Rewards, playerID, partyID, quest, nil, event); err != nil {
		return err
	}

	slog.Info("Quest completed",
		slog.String("player_id", playerID),
		slog.String("quest_id", quest.QuestID))
	return nil
}
