package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/loreweaver-bot/loreweaver/loreweaver/database/models"
	"github.com/uptrace/bun"
)

// ApplyConsequences interprets a sparse consequences descriptor: experience,
// relationship deltas, item grants, and world-state flags, in that order.
// stepID is nil for quest-level completion rewards. Applying the same
// descriptor twice fires every side effect twice; firing exactly once per
// step satisfaction is the advancer's responsibility, not this function's.
func (e *Engine) ApplyConsequences(ctx context.Context, db bun.IDB, guildID string, cs models.ConsequenceSet, playerID string, partyID *int64, quest *models.Quest, stepID *int64, sourceEvent *models.GameEvent) error {
	if cs.IsZero() {
		return nil
	}

	if cs.XPAward != nil && cs.XPAward.Amount > 0 {
		if err := e.experience.AwardExperience(ctx, db, guildID, playerID, models.EntityTypePlayer, cs.XPAward.Amount, sourceEvent.EventType, sourceEvent.ID); err != nil {
			return fmt.Errorf("failed to award experience: %w", err)
		}
	}

	for _, rc := range cs.RelationshipChanges {
		if err := e.relationships.UpdateRelationship(ctx, db, guildID, playerID, models.EntityTypePlayer, rc.TargetID, rc.TargetType, rc.Delta, sourceEvent.EventType, sourceEvent.ID); err != nil {
			return fmt.Errorf("failed to update relationship with %s/%s: %w", rc.TargetType, rc.TargetID, err)
		}
	}

	for _, ir := range cs.ItemRewards {
		if err := e.items.GrantItem(ctx, db, guildID, playerID, ir.ItemID, ir.Quantity); err != nil {
			return fmt.Errorf("failed to grant item %s: %w", ir.ItemID, err)
		}
		// The inventory mutation is delegated; this log entry is the
		// durable record of the grant.
		if _, err := e.log.LogEvent(ctx, db, guildID, models.EventTypeItemAcquired, map[string]any{
			"item_id":  ir.ItemID,
			"quantity": ir.Quantity,
			"source":   models.SourceQuestReward,
			"quest_id": quest.ID,
			"step_id":  optionalID(stepID),
		}, &playerID, partyID, sourceEvent.LocationID); err != nil {
			return fmt.Errorf("failed to log item reward: %w", err)
		}
	}

	for _, wc := range cs.WorldStateChanges {
		if err := e.world.SetFlag(ctx, db, guildID, wc.Flag, wc.Value); err != nil {
			return fmt.Errorf("failed to set world flag %s: %w", wc.Flag, err)
		}
		if _, err := e.log.LogEvent(ctx, db, guildID, models.EventTypeWorldStateChange, map[string]any{
			"flag":     wc.Flag,
			"value":    wc.Value,
			"source":   models.SourceQuestConsequence,
			"quest_id": quest.ID,
			"step_id":  optionalID(stepID),
		}, &playerID, partyID, sourceEvent.LocationID); err != nil {
			return fmt.Errorf("failed to log world state change: %w", err)
		}
	}

	slog.Debug("Applied quest consequences",
		slog.String("player_id", playerID),
		slog.String("quest_id", quest.QuestID),
		slog.Any("step_id", stepID))
	return nil
}

// optionalID keeps a nullable id explicit in log details: step rewards carry
// the step id, quest-level completion rewards carry null.
func optionalID(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}
