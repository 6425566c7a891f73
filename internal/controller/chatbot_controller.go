package controller

import (
	"bufio"
	"context"
	"errors"
	"io"
	"time"

	"fantasy-hoops-be/internal/dto"
	"fantasy-hoops-be/internal/pkg/logger"
	"fantasy-hoops-be/internal/pkg/serverutils"
	"fantasy-hoops-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatbotController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
}

var (
	errStreamIdle     = errors.New("provider sent nothing within the idle timeout")
	errClientGone     = errors.New("client disconnected")
	errServerStopping = errors.New("server shutting down")
)

const defaultStreamIdleTimeout = 30 * time.Second

// StreamConfig bounds every relayed chat reply.
type StreamConfig struct {
	// Lifetime is cancelled on server shutdown and ends all open replies.
	Lifetime context.Context
	// IdleTimeout ends a reply when the provider sends nothing for this
	// long. It is also what releases a stalled provider after the client
	// left, since a disconnect only surfaces on the next write.
	IdleTimeout time.Duration
}

type chatbotController struct {
	service service.IChatbotService
	guard   *serverutils.JwtGuard
	logger  logger.ILogger
	streams StreamConfig
}

func NewChatbotController(service service.IChatbotService, guard *serverutils.JwtGuard, logger logger.ILogger, streams StreamConfig) IChatbotController {
	if streams.Lifetime == nil {
		streams.Lifetime = context.Background()
	}
	if streams.IdleTimeout <= 0 {
		streams.IdleTimeout = defaultStreamIdleTimeout
	}
	return &chatbotController{service: service, guard: guard, logger: logger, streams: streams}
}

func (c *chatbotController) RegisterRoutes(r fiber.Router) {
	r.Post("/chat", c.guard.Optional(), c.Chat)
}

// Chat relays the provider reply as plain text, flushing every fragment.
// Errors before the first byte get a JSON status; once streaming has begun
// a provider failure just ends the body.
func (c *chatbotController) Chat(ctx *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadRequest("request body must be JSON with a messages list").OnField("messages")
	}

	var userId *uuid.UUID
	if id, ok := serverutils.UserID(ctx); ok {
		userId = &id
	}

	// The upstream call outlives this handler. It ends on EOF, client
	// disconnect, idle timeout or server shutdown, whichever comes first.
	streamCtx, cancel := context.WithCancelCause(context.WithoutCancel(ctx.UserContext()))
	stopOnShutdown := context.AfterFunc(c.streams.Lifetime, func() { cancel(errServerStopping) })

	stream, err := c.service.OpenStream(streamCtx, userId, &req)
	if err != nil {
		stopOnShutdown()
		cancel(nil)
		return err
	}

	ctx.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	ctx.Set(fiber.HeaderCacheControl, "no-cache")
	ctx.Set("X-Accel-Buffering", "no")

	ctx.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer cancel(nil)
		defer stopOnShutdown()
		defer stream.Close()

		idle := time.AfterFunc(c.streams.IdleTimeout, func() { cancel(errStreamIdle) })
		defer idle.Stop()

		for {
			// only time spent waiting on the provider counts as idle
			idle.Reset(c.streams.IdleTimeout)
			fragment, err := stream.Next()
			idle.Stop()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				c.streamEnded(streamCtx, err)
				return
			}
			if fragment == "" {
				continue
			}
			if _, err := w.WriteString(fragment); err != nil {
				cancel(errClientGone)
				c.streamEnded(streamCtx, err)
				return
			}
			// A flush error means the client went away.
			if err := w.Flush(); err != nil {
				cancel(errClientGone)
				c.streamEnded(streamCtx, err)
				return
			}
		}
	})

	return nil
}

func (c *chatbotController) streamEnded(streamCtx context.Context, err error) {
	if cause := context.Cause(streamCtx); cause != nil {
		c.logger.Info("CHATBOT", "Chat stream cancelled", map[string]interface{}{
			"reason": cause.Error(),
		})
		return
	}
	c.logger.Error("CHATBOT", "Provider stream failed", map[string]interface{}{
		"error": err.Error(),
	})
}
