package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/DustinMarino133/cyberskill/core"
	"github.com/DustinMarino133/cyberskill/core/shop"
)

type shopApi struct {
	svc *shop.Service
}

func registerShopAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *shop.Service) {
	api := shopApi{svc: svc}

	sg := g.Group("/shop", jwt)
	sg.GET("/items", api.items)
	sg.GET("/wallet", api.wallet)
	sg.POST("/purchase", api.purchase)
	sg.POST("/equip", api.equip)
	sg.POST("/reset", api.reset)
}

// Handlers

func (api *shopApi) items(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.svc.Items())
}

func (api *shopApi) wallet(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	wallet, err := api.svc.Wallet(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "loading wallet")
	}
	return ctx.JSON(http.StatusOK, wallet)
}

func (api *shopApi) purchase(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	var data ItemRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ItemRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	wallet, err := api.svc.Purchase(ctx.Request().Context(), claims.Subject, data.ItemID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, wallet)
}

func (api *shopApi) equip(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	var data ItemRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ItemRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	wallet, err := api.svc.Equip(ctx.Request().Context(), claims.Subject, data.ItemID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, wallet)
}

func (api *shopApi) reset(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	wallet, err := api.svc.ResetToDefaults(ctx.Request().Context(), claims.Subject)
	if err != nil {
		return errors.Wrap(err, "resetting wallet")
	}
	return ctx.JSON(http.StatusOK, wallet)
}

type ItemRequest struct {
	ItemID string `json:"item_id" validate:"required"`
}

func (ir *ItemRequest) Validate() error {
	ir.ItemID = core.CleanString(ir.ItemID, true /* lower */)
	return core.Validate.Struct(ir)
}
