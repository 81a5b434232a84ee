package echoapi

import (
	"context"
	"net/http"
	"os"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/DustinMarino133/cyberskill/core"
	"github.com/DustinMarino133/cyberskill/core/course"
	"github.com/DustinMarino133/cyberskill/core/progress"
	"github.com/DustinMarino133/cyberskill/core/session"
	"github.com/DustinMarino133/cyberskill/core/shop"
	"github.com/DustinMarino133/cyberskill/core/user"
)

type (
	Options struct {
		Addr           string
		DisableReqLogs bool

		Logger      core.Logger
		UserSvc     *user.Service
		SessionSvc  *session.Service
		ShopSvc     *shop.Service
		CourseSvc   *course.Service
		ProgressSvc *progress.Service
	}

	Server interface {
		http.Handler
		Start() error
		Stop(context.Context) error
	}

	server struct {
		opts     *Options
		app      *echo.Echo
		shutdown chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options, shutdown chan os.Signal) Server {
	s := &server{
		opts:     opts,
		app:      echo.New(),
		shutdown: shutdown,
	}
	s.setup()
	return s
}

// signalShutdown sends a SIGTERM down the shutdown channel to gracefully
// bring the API down when an unrecoverable error is caught.
func (s *server) signalShutdown() {
	s.shutdown <- syscall.SIGTERM
}

func (s *server) setup() {
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(core.Conf.Debug || core.Conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	appJWTConfig.SigningKey = []byte(core.Conf.SecretKey)
	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.signalShutdown)
	s.app.Debug = core.Conf.Debug
	s.app.HideBanner = true

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(appJWTConfig)

	registerAuthAPI(v1, jwt, s.opts.UserSvc, s.opts.SessionSvc)
	registerUserAPI(v1, jwt, s.opts.UserSvc)
	registerDashboardAPI(v1, jwt, s.opts.SessionSvc, s.opts.ProgressSvc)
	registerShopAPI(v1, jwt, s.opts.ShopSvc)
	registerCourseAPI(v1, jwt, s.opts.CourseSvc)
}

func (s *server) Start() error {
	return s.app.Start(s.opts.Addr)
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to CyberSkill API!")
}
