package loreweaver

import (
	"context"
	"log/slog"
	"time"

	"github.com/disgoorg/disgo"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/cache"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/gateway"
	"github.com/loreweaver-bot/loreweaver/loreweaver/database"
	"github.com/loreweaver-bot/loreweaver/loreweaver/database/repositories"
	"github.com/loreweaver-bot/loreweaver/loreweaver/engine"
	"github.com/loreweaver-bot/loreweaver/loreweaver/services"
)

func New(cfg Config, version string, commit string) *Bot {
	return &Bot{
		Cfg:     cfg,
		Version: version,
		Commit:  commit,
	}
}

// Bot is the dependency container for the game-master process: the Discord
// gateway client, the database, the repositories, and the quest engine.
type Bot struct {
	Cfg     Config
	Client  bot.Client
	Version string
	Commit  string

	DB                     *database.DB
	QuestRepository        repositories.QuestRepository
	ProgressRepository     repositories.ProgressRepository
	PartyRepository        repositories.PartyRepository
	EventLogRepository     repositories.EventLogRepository
	PlayerRepository       repositories.PlayerRepository
	RelationshipRepository repositories.RelationshipRepository
	WorldStateRepository   repositories.WorldStateRepository
	InventoryRepository    repositories.InventoryRepository

	Engine       *engine.Engine
	EventService *services.EventService
	Catalog      *services.CatalogService
}

// SetupRepositories wires the repositories and the quest engine on top of an
// established database connection.
func (b *Bot) SetupRepositories() {
	b.QuestRepository = repositories.NewQuestRepository()
	b.ProgressRepository = repositories.NewProgressRepository()
	b.PartyRepository = repositories.NewPartyRepository()
	b.EventLogRepository = repositories.NewEventLogRepository()
	b.PlayerRepository = repositories.NewPlayerRepository()
	b.RelationshipRepository = repositories.NewRelationshipRepository()
	b.WorldStateRepository = repositories.NewWorldStateRepository()
	b.InventoryRepository = repositories.NewInventoryRepository()

	b.Engine = engine.New(
		b.ProgressRepository,
		b.PartyRepository,
		b.PlayerRepository,
		b.RelationshipRepository,
		b.InventoryRepository,
		b.WorldStateRepository,
		b.EventLogRepository,
	)
	b.EventService = services.NewEventService(b.DB.BunDB(), b.EventLogRepository, b.Engine)
	b.Catalog = services.NewCatalogService(b.DB.BunDB(), b.QuestRepository)
}

func (b *Bot) SetupBot(listeners ...bot.EventListener) error {
	client, err := disgo.New(b.Cfg.Bot.Token,
		bot.WithGatewayConfigOpts(gateway.WithIntents(gateway.IntentGuilds, gateway.IntentGuildMessages, gateway.IntentMessageContent)),
		bot.WithCacheConfigOpts(cache.WithCaches(cache.FlagGuilds)),
		bot.WithEventListeners(listeners...),
	)
	if err != nil {
		return err
	}

	b.Client = client
	return nil
}

func (b *Bot) OnReady(_ *events.Ready) {
	slog.Info("Loreweaver is now ready",
		slog.String("version", b.Version),
		slog.String("commit", b.Commit))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := b.Client.SetPresence(ctx,
		gateway.WithWatchingActivity("the threads of fate"),
		gateway.WithOnlineStatus(discord.OnlineStatusOnline)); err != nil {
		slog.Error("Failed to set presence", slog.Any("error", err))
	}

	// Quest content is immutable during play; warm the cache for the guilds
	// we develop against so the first events do not pay the load cost.
	guildIDs := make([]string, 0, len(b.Cfg.Bot.DevGuilds))
	for _, id := range b.Cfg.Bot.DevGuilds {
		guildIDs = append(guildIDs, id.String())
	}
	if len(guildIDs) > 0 {
		if err := b.Catalog.WarmCache(ctx, guildIDs); err != nil {
			slog.Error("Failed to warm quest catalog cache", slog.Any("error", err))
		}
	}
}
