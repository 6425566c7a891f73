package bootstrap

import (
	"context"
	"errors"
	"time"

	"fantasy-hoops-be/internal/config"
	"fantasy-hoops-be/internal/controller"
	"fantasy-hoops-be/internal/pkg/logger"
	"fantasy-hoops-be/internal/pkg/serverutils"
	"fantasy-hoops-be/internal/repository/memory"
	"fantasy-hoops-be/internal/repository/unitofwork"
	"fantasy-hoops-be/internal/service"
	"fantasy-hoops-be/pkg/directory"
	"fantasy-hoops-be/pkg/directory/nbastats"
	"fantasy-hoops-be/pkg/llm"
	"fantasy-hoops-be/pkg/llm/factory"
	"fantasy-hoops-be/pkg/roster"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ScheduleController controller.IScheduleController
	PlayerController   controller.IPlayerController
	RosterController   controller.IRosterController
	ChatbotController  controller.IChatbotController
	AuthController     controller.IAuthController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger

	stopStreams context.CancelFunc
	closers     []func() error
}

// StopStreams ends every open chat reply and its upstream request.
func (c *Container) StopStreams() {
	c.stopStreams()
}

// Close ends open chat replies and releases the event bus and the redis
// client.
func (c *Container) Close() error {
	c.stopStreams()
	var errs []error
	for _, closeFn := range c.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func NewContainer(db *gorm.DB, cfg *config.Config, sysLogger logger.ILogger) *Container {
	streams, stopStreams := context.WithCancel(context.Background())
	c := &Container{Logger: sysLogger, stopStreams: stopStreams}

	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)

	// 2. Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{
			OutputChannelBuffer:            64,
			BlockPublishUntilSubscriberAck: true,
		},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, pubSub.Close)

	// 3. Player directory, with redis as a second-level store when reachable
	dirOpts := []directory.Option{
		directory.WithTTL(cfg.Directory.TTL),
		directory.WithLogger(sysLogger),
	}
	if rdb := connectRedis(cfg.App.RedisURL, sysLogger); rdb != nil {
		dirOpts = append(dirOpts, directory.WithStore(directory.NewRedisStore(rdb, cfg.Directory.RedisKey)))
		c.closers = append(c.closers, rdb.Close)
	}
	playerDirectory := directory.New(
		nbastats.NewClient(cfg.Directory.NBAStatsURL, cfg.Directory.Season),
		dirOpts...,
	)
	rosterValidator := roster.NewValidator(playerDirectory)

	// 4. LLM Provider. A missing key leaves chat unavailable, not the server.
	llmProvider, err := factory.NewLLMProvider(factory.Config{
		Provider:     cfg.Ai.LLMProvider,
		Model:        cfg.Ai.LLMModel,
		GeminiAPIKey: cfg.Ai.GeminiAPIKey,
		GeminiURL:    cfg.Ai.GeminiBaseURL,
		OllamaURL:    cfg.Ai.OllamaBaseURL,
	})
	if err != nil {
		level := sysLogger.Error
		if errors.Is(err, llm.ErrNotConfigured) {
			level = sysLogger.Warn
		}
		level("BOOTSTRAP", "Chat disabled: LLM provider unavailable", map[string]interface{}{
			"provider": cfg.Ai.LLMProvider,
			"error":    err.Error(),
		})
		llmProvider = nil
	} else {
		sysLogger.Info("BOOTSTRAP", "Using LLM provider", map[string]interface{}{
			"provider": llmProvider.Name(),
			"model":    cfg.Ai.LLMModel,
		})
	}

	// 5. In-memory stores
	denylist := memory.NewTokenDenylist()
	rosterCache := memory.NewRosterContextCache()
	jwtGuard := serverutils.NewJwtGuard(cfg.Auth.JWTSecret, denylist)

	// 6. Services
	publisherService := service.NewPublisherService(pubSub)
	c.ConsumerService = service.NewConsumerService(pubSub, rosterCache, sysLogger)

	scheduleService := service.NewScheduleService(uowFactory, sysLogger)
	playerService := service.NewPlayerService(playerDirectory, sysLogger)
	rosterService := service.NewRosterService(uowFactory, rosterValidator, publisherService, sysLogger)
	chatbotService := service.NewChatbotService(uowFactory, llmProvider, rosterCache, sysLogger,
		llm.WithTemperature(cfg.Ai.Temperature),
		llm.WithMaxTokens(cfg.Ai.MaxTokens),
	)
	authService := service.NewAuthService(uowFactory, jwtGuard, denylist, cfg.Auth.AccessTokenTTL, sysLogger)

	// 7. Controllers
	c.ScheduleController = controller.NewScheduleController(scheduleService)
	c.PlayerController = controller.NewPlayerController(playerService)
	c.RosterController = controller.NewRosterController(rosterService, jwtGuard)
	c.ChatbotController = controller.NewChatbotController(chatbotService, jwtGuard, sysLogger, controller.StreamConfig{
		Lifetime:    streams,
		IdleTimeout: cfg.Ai.StreamIdleTimeout,
	})
	c.AuthController = controller.NewAuthController(authService, jwtGuard)

	return c
}

// connectRedis returns nil when no URL is configured or the server does not
// answer, in which case the directory runs memory-only.
func connectRedis(url string, log logger.ILogger) *redis.Client {
	if url == "" {
		return nil
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Warn("BOOTSTRAP", "Failed to parse Redis URL, using it as an address", map[string]interface{}{"error": err.Error()})
		opt = &redis.Options{Addr: url}
	}
	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("BOOTSTRAP", "Redis unreachable, directory snapshot kept in memory only", map[string]interface{}{"error": err.Error()})
		_ = rdb.Close()
		return nil
	}
	return rdb
}
