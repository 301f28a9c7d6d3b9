package repositories

import (
	"context"
	"log/slog"
	"time"

	"github.com/loreweaver-bot/loreweaver/loreweaver/database/models"
	"github.com/uptrace/bun"
)

type EventLogRepository interface {
	// LogEvent appends one narrative record to the game log and returns it
	// with its log id assigned.
	LogEvent(ctx context.Context, db bun.IDB, guildID, eventType string, details map[string]any, playerID *string, partyID, locationID *int64) (*models.GameEvent, error)
	RecentForGuild(ctx context.Context, db bun.IDB, guildID string, limit int) ([]*models.GameEvent, error)
}

type eventLogRepository struct{}

func NewEventLogRepository() EventLogRepository {
	return &eventLogRepository{}
}

func (r *eventLogRepository) LogEvent(ctx context.Context, db bun.IDB, guildID, eventType string, details map[string]any, playerID *string, partyID, locationID *int64) (*models.GameEvent, error) {
	event := &models.GameEvent{
		GuildID:    guildID,
		EventType:  eventType,
		Details:    details,
		PlayerID:   playerID,
		PartyID:    partyID,
		LocationID: locationID,
		CreatedAt:  time.Now(),
	}
	if _, err := db.NewInsert().Model(event).Returning("id").Exec(ctx); err != nil {
		slog.Error("Failed to log game event",
			slog.String("guild_id", guildID),
			slog.String("event_type", eventType),
			slog.Any("error", err))
		return nil, err
	}
	return event, nil
}

func (r *eventLogRepository) RecentForGuild(ctx context.Context, db bun.IDB, guildID string, limit int) ([]*models.GameEvent, error) {
	var events []*models.GameEvent
	err := db.NewSelect().
		Model(&events).
		Where("guild_id = ?", guildID).
		Order("id DESC").
		Limit(limit).
		Scan(ctx)
	return events, err
}
