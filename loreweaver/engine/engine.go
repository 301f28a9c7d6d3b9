package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/loreweaver-bot/loreweaver/loreweaver/database/models"
	"github.com/uptrace/bun"
)

// Collaborator contracts. The engine never commits: every call receives the
// caller's bun.IDB (a live bun.Tx on the event-logging path) and any error
// from a collaborator aborts the whole event's transaction.

type ProgressStore interface {
	ActiveForPlayer(ctx context.Context, db bun.IDB, guildID, playerID string) ([]*models.PlayerQuestProgress, error)
	Update(ctx context.Context, db bun.IDB, progress *models.PlayerQuestProgress) error
}

type PartyLoader interface {
	Get(ctx context.Context, db bun.IDB, guildID string, partyID int64) (*models.Party, error)
}

type ExperienceAwarder interface {
	AwardExperience(ctx context.Context, db bun.IDB, guildID, playerID, entityType string, amount int, sourceEventType string, sourceLogID int64) error
}

type RelationshipUpdater interface {
	UpdateRelationship(ctx context.Context, db bun.IDB, guildID, actingEntityID, actingEntityType, targetEntityID, targetEntityType string, delta int, eventType string, sourceLogID int64) error
}

type ItemGranter interface {
	GrantItem(ctx context.Context, db bun.IDB, guildID, playerID, itemID string, quantity int) error
}

type WorldStateSetter interface {
	SetFlag(ctx context.Context, db bun.IDB, guildID, flag string, value any) error
}

// EventLogger is the only way the engine produces durable narrative records.
type EventLogger interface {
	LogEvent(ctx context.Context, db bun.IDB, guildID, eventType string, details map[string]any, playerID *string, partyID, locationID *int64) (*models.GameEvent, error)
}

// Engine is the quest progression engine: it decides, for every recorded
// game event, which players' active quest steps are satisfied, applies the
// step's consequences, and advances or completes per-player quest state.
type Engine struct {
	progress      ProgressStore
	parties       PartyLoader
	experience    ExperienceAwarder
	relationships RelationshipUpdater
	items         ItemGranter
	world         WorldStateSetter
	log           EventLogger
	goals         *GoalRegistry
}

func New(progress ProgressStore, parties PartyLoader, experience ExperienceAwarder, relationships RelationshipUpdater, items ItemGranter, world WorldStateSetter, log EventLogger) *Engine {
	return &Engine{
		progress:      progress,
		parties:       parties,
		experience:    experience,
		relationships: relationships,
		items:         items,
		world:         world,
		log:           log,
		goals:         NewGoalRegistry(),
	}
}

// Goals exposes the goal registry so callers can register extra evaluation
// methods before the engine starts receiving events.
func (e *Engine) Goals() *GoalRegistry {
	return e.goals
}

// HandlePlayerEvent reacts to one recorded game event. If partyID is set,
// every member of the party is processed independently against their own
// progress rows; otherwise only the single player. Events with no acting
// player or party are not quest-relevant and are a no-op.
//
// A failed mechanic or goal check is normal control flow. An evaluation
// error for one progress row is logged and does not stop the other rows or
// players. Collaborator and persistence errors propagate so the caller's
// transaction rolls back the whole event atomically.
func (e *Engine) HandlePlayerEvent(ctx context.Context, db bun.IDB, guildID string, event *models.GameEvent, playerID *string, partyID *int64) error {
	playerIDs, err := e.resolveTargets(ctx, db, guildID, playerID, partyID)
	if err != nil {
		return err
	}

	for _, pid := range playerIDs {
		rows, err := e.progress.ActiveForPlayer(ctx, db, guildID, pid)
		if err != nil {
			return fmt.Errorf("failed to load active quest progress for %s: %w", pid, err)
		}

		for _, row := range rows {
			if err := e.processRow(ctx, db, guildID, pid, partyID, row, event); err != nil {
				return err
			}
		}
	}

	return nil
}

// resolveTargets flattens party vs. solo into a single player id list.
func (e *Engine) resolveTargets(ctx context.Context, db bun.IDB, guildID string, playerID *string, partyID *int64) ([]string, error) {
	if partyID != nil {
		party, err := e.parties.Get(ctx, db, guildID, *partyID)
		if err != nil {
			return nil, fmt.Errorf("failed to load party %d: %w", *partyID, err)
		}
		return party.MemberIDs, nil
	}
	if playerID != nil {
		return []string{*playerID}, nil
	}
	return nil, nil
}

func (e *Engine) processRow(ctx context.Context, db bun.IDB, guildID, playerID string, partyID *int64, row *models.PlayerQuestProgress, event *models.GameEvent) error {
	quest := row.Quest
	step := row.CurrentStep
	if quest == nil || step == nil {
		slog.Warn("Skipping quest progress row with missing relations",
			slog.Int64("progress_id", row.ID),
			slog.String("player_id", playerID))
		return nil
	}

	if !MatchMechanics(event, step.RequiredMechanics) {
		return nil
	}

	satisfied, err := e.goals.Evaluate(ctx, db, guildID, playerID, partyID, quest, step, event)
	if err != nil {
		// Evaluation is isolated per progress row: a broken goal on one
		// quest must not block the rest of the dispatch.
		slog.Error("Goal evaluation failed",
			slog.String("player_id", playerID),
			slog.String("quest_id", quest.QuestID),
			slog.Int64("step_id", step.ID),
			slog.Any("error", err))
		return nil
	}
	if !satisfied {
		return nil
	}

	if err := e.ApplyConsequences(ctx, db, guildID, step.Consequences, playerID, partyID, quest, &step.ID, event); err != nil {
		return err
	}

	if _, err := e.log.LogEvent(ctx, db, guildID, models.EventTypeQuestStepCompleted, map[string]any{
		"quest_id":        quest.ID,
		"quest_static_id": quest.QuestID,
		"step_id":         step.ID,
		"step_order":      step.StepOrder,
		"step_title":      step.Title,
	}, &playerID, partyID, event.LocationID); err != nil {
		return fmt.Errorf("failed to log step completion: %w", err)
	}

	return e.advance(ctx, db, guildID, playerID, partyID, row, event)
}
