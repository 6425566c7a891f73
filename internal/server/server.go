package server

import (
	"net"

	"fantasy-hoops-be/internal/bootstrap"
	"fantasy-hoops-be/internal/config"
	"fantasy-hoops-be/internal/pkg/serverutils"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type Server struct {
	app       *fiber.App
	cfg       *config.Config
	container *bootstrap.Container
}

func New(cfg *config.Config, container *bootstrap.Container) *Server {
	app := fiber.New(fiber.Config{
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: serverutils.ErrorHandler(container.Logger),
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CorsAllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Length, Content-Type",
	}))

	// OpenTelemetry tracing middleware (no-op provider unless OTEL_ENABLED)
	app.Use(otelfiber.Middleware())

	app.Use(serverutils.ErrorHandlerMiddleware(container.Logger))

	registerRoutes(app, container)

	return &Server{
		app:       app,
		cfg:       cfg,
		container: container,
	}
}

func (s *Server) GetApp() *fiber.App {
	return s.app
}

func (s *Server) Run() error {
	ln, err := net.Listen("tcp", ":"+s.cfg.App.Port)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

func (s *Server) Serve(ln net.Listener) error {
	s.container.Logger.Info("SERVER", "Server is running", map[string]interface{}{"addr": ln.Addr().String()})
	return s.app.Listener(ln)
}

// Shutdown ends open chat replies first, since a reply holds its connection
// until the provider finishes, then waits up to ShutdownTimeout for the
// remaining requests.
func (s *Server) Shutdown() error {
	s.container.StopStreams()
	return s.app.ShutdownWithTimeout(s.cfg.App.ShutdownTimeout)
}

func registerRoutes(app *fiber.App, c *bootstrap.Container) {
	api := app.Group("/api")

	c.AuthController.RegisterRoutes(api)
	c.ScheduleController.RegisterRoutes(api)
	c.PlayerController.RegisterRoutes(api)
	c.RosterController.RegisterRoutes(api)
	c.ChatbotController.RegisterRoutes(api)
}
