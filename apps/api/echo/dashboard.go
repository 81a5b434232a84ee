package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/DustinMarino133/cyberskill/core/progress"
	"github.com/DustinMarino133/cyberskill/core/session"
	"github.com/DustinMarino133/cyberskill/core/user"
)

type dashboardApi struct {
	sessSvc *session.Service
	progSvc *progress.Service
}

func registerDashboardAPI(g *echo.Group, jwt echo.MiddlewareFunc, sessSvc *session.Service, progSvc *progress.Service) {
	api := dashboardApi{sessSvc: sessSvc, progSvc: progSvc}

	dg := g.Group("/dashboard", jwt)
	dg.GET("/student", api.student)
	dg.GET("/teacher", api.teacher)
	dg.GET("/corporate", api.corporate)

	g.GET("/progress", api.progress, jwt)
}

// Handlers

// Each portal page authorizes against its own required role. A missing
// session redirects to login (401) and a mismatched one is rejected (403);
// there is no cross-portal redirection.

func (api *dashboardApi) student(ctx echo.Context) error {
	return api.portal(ctx, user.RoleStudent)
}

func (api *dashboardApi) teacher(ctx echo.Context) error {
	return api.portal(ctx, user.RoleTeacher)
}

func (api *dashboardApi) corporate(ctx echo.Context) error {
	return api.portal(ctx, user.RoleCorporate)
}

func (api *dashboardApi) portal(ctx echo.Context, requiredRole string) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	profile, err := api.sessSvc.Authorize(ctx.Request().Context(), claims.SessionID, requiredRole)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, profile)
}

func (api *dashboardApi) progress(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	prog, err := api.progSvc.Summary(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "loading progress")
	}
	return ctx.JSON(http.StatusOK, prog)
}
