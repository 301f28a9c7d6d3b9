package services

import (
	"context"
	"log/slog"

	"github.com/loreweaver-bot/loreweaver/loreweaver/database/models"
	"github.com/loreweaver-bot/loreweaver/loreweaver/database/repositories"
	"github.com/loreweaver-bot/loreweaver/loreweaver/engine"
	"github.com/uptrace/bun"
)

// EventService is the event-logging path: every gameplay system records what
// happened through Record, which persists the event and runs the quest
// engine against it in one transaction. If any consequence or progress write
// fails, the event and everything it caused roll back together.
type EventService struct {
	db     *bun.DB
	log    repositories.EventLogRepository
	engine *engine.Engine
}

func NewEventService(db *bun.DB, log repositories.EventLogRepository, eng *engine.Engine) *EventService {
	return &EventService{
		db:     db,
		log:    log,
		engine: eng,
	}
}

// Record persists a game event and dispatches it to the quest engine.
func (s *EventService) Record(ctx context.Context, guildID, eventType string, details map[string]any, playerID *string, partyID, locationID *int64) (*models.GameEvent, error) {
	var event *models.GameEvent
	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var err error
		event, err = s.log.LogEvent(ctx, tx, guildID, eventType, details, playerID, partyID, locationID)
		if err != nil {
			return err
		}
		return s.engine.HandlePlayerEvent(ctx, tx, guildID, event, playerID, partyID)
	})
	if err != nil {
		slog.Error("Failed to record game event",
			slog.String("guild_id", guildID),
			slog.String("event_type", eventType),
			slog.Any("error", err))
		return nil, err
	}

	slog.Debug("Game event recorded",
		slog.String("guild_id", guildID),
		slog.String("event_type", eventType),
		slog.Int64("log_id", event.ID))
	return event, nil
}
