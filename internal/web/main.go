package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoACL-Admin/GoACL-Admin/internal/auth"
	"github.com/GoACL-Admin/GoACL-Admin/internal/config"
	"github.com/GoACL-Admin/GoACL-Admin/internal/db/controller/binding"
	"github.com/GoACL-Admin/GoACL-Admin/internal/db/controller/namespace"
	"github.com/GoACL-Admin/GoACL-Admin/internal/db/controller/resource"
	"github.com/GoACL-Admin/GoACL-Admin/internal/db/controller/role"
	usercontroller "github.com/GoACL-Admin/GoACL-Admin/internal/db/controller/user"
	"github.com/GoACL-Admin/GoACL-Admin/internal/db/models"
	accesslog "github.com/GoACL-Admin/GoACL-Admin/internal/logger/adapter/fiber"
	"github.com/GoACL-Admin/GoACL-Admin/internal/web/handler"
	"github.com/GoACL-Admin/GoACL-Admin/internal/web/handler/crud"
	"github.com/GoACL-Admin/GoACL-Admin/internal/web/handler/login"
	userhandler "github.com/GoACL-Admin/GoACL-Admin/internal/web/handler/user"
	"github.com/GoACL-Admin/GoACL-Admin/internal/web/response"
)

const (
	// CheckAlivePath answers load balancer probes.
	CheckAlivePath = "/checkalive"
	// MetricsPath exposes prometheus metrics.
	MetricsPath = "/metrics"

	defaultAPIPrefix = "/v1"
)

// Resource route groups below the api prefix.
const (
	NamespacePath  = "/namespace"
	UserPath       = "/user"
	RolePath       = "/role"
	ResourcePath   = "/resource"
	PermissionPath = "/permission"
	UserRolePath   = "/user-role"
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	db           *gorm.DB
	authService  *auth.Service
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for SIGINT or SIGTERM and stops the web service gracefully.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	// stop fiber http server
	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		err := s.App.Shutdown()
		if err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// Alive reports whether checkalive answers 200.
func (s *Service) Alive() bool {
	return s.alive.Load()
}

// New creates a new web service with the given configuration.
func New(cfg *config.Config, db *gorm.DB) (*Service, error) {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if db == nil {
		panic("db cannot be nil")
	}

	signer, err := auth.NewSigner(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiry)
	if err != nil {
		return nil, err
	}

	users := usercontroller.New(db)

	// create fiber app
	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        cfg.Title,
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			ErrorHandler:   ErrorHandler,
		},
	)

	service := &Service{
		cfg:         cfg,
		App:         app,
		db:          db,
		authService: auth.NewService(namespace.New(db), users, signer),
		fastShutDown: cfg.DevMode,
	}
	service.alive.Store(true)

	if !cfg.Webserver.DisableRecover {
		app.Use(fiberrecover.New(fiberrecover.Config{EnableStackTrace: cfg.DevMode}))
	}

	if cfg.Webserver.CleanPath {
		app.Use(cleanPath)
	}

	app.Use(
		requestid.New(),
		cors.New(cors.Config{AllowOrigins: allowOrigins(cfg.Webserver.AllowOrigins)}),
		accesslog.New(accesslog.Config{Config: cfg.Log, CheckAliveURI: CheckAlivePath}),
	)

	app.Get(handler.RootPath, health)
	app.Get(CheckAlivePath, service.checkAlive)
	app.Get(MetricsPath, adaptor.HTTPHandler(promhttp.Handler()))

	if err := service.routes(apiPrefix(cfg.Webserver.APIPrefix), users); err != nil {
		return nil, err
	}

	app.Use(notFound)

	return service, nil
}

// routes registers the api below prefix.
func (s *Service) routes(prefix string, users *usercontroller.Store) error {
	api := s.App.Group(prefix)

	if err := login.New(s.authService).Init(api.Group(login.Path)); err != nil {
		return err
	}

	protected := auth.RequireToken(s.authService)

	services := []struct {
		path    string
		service handler.Service
	}{
		{NamespacePath, crud.New[models.Namespace, namespace.Input, namespace.Patch](namespace.New(s.db))},
		{UserPath, userhandler.New(users)},
		{RolePath, crud.New[models.Role, role.Input, role.Patch](role.New(s.db))},
		{ResourcePath, crud.New[models.Resource, resource.Input, resource.Patch](resource.New(s.db))},
		{PermissionPath, crud.New[models.RolePermission, binding.RolePermissionInput, binding.RolePermissionPatch](
			binding.NewRolePermissions(s.db))},
		{UserRolePath, crud.New[models.UserRole, binding.UserRoleInput, binding.UserRolePatch](
			binding.NewUserRoles(s.db))},
	}

	for _, svc := range services {
		if err := svc.service.Init(api.Group(svc.path, protected)); err != nil {
			return err
		}
	}

	return nil
}

func (s *Service) checkAlive(c *fiber.Ctx) error {
	if !s.alive.Load() {
		return c.SendStatus(fiber.StatusServiceUnavailable)
	}

	return c.SendString("OK")
}

func health(c *fiber.Ctx) error {
	return response.OK(c, fiber.Map{"message": "GoACL-Admin is running"})
}

// cleanPath collapses duplicate slashes before routing.
func cleanPath(c *fiber.Ctx) error {
	p := c.Path()
	if strings.Contains(p, "//") {
		c.Path(path.Clean(p))
	}

	return c.Next()
}

func apiPrefix(prefix string) string {
	if prefix == "" {
		return defaultAPIPrefix
	}

	return "/" + strings.Trim(prefix, "/")
}

func allowOrigins(origins string) string {
	if origins == "" {
		return "*"
	}

	return origins
}
