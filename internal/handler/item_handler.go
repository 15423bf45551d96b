package handler

import (
	"net/http"
	"time"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

type ItemHandler struct {
	uc *usecase.ItemUsecase
}

func NewItemHandler(uc *usecase.ItemUsecase) *ItemHandler {
	return &ItemHandler{uc: uc}
}

type CreateItemRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
}

type UpdateDiscountRequest struct {
	Active    bool            `json:"active"`
	Price     decimal.Decimal `json:"price"`
	ExpiresAt *time.Time      `json:"expires_at"`
}

type UpdatePriceRequest struct {
	Price decimal.Decimal `json:"price"`
}

func (h *ItemHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	//商品詳細は認証なしで見られる
	e.GET("/items/:id", h.detail)

	g := e.Group("/seller/items")
	g.Use(middleware.AuthJWT(cfg))
	g.Use(middleware.SellerRoleGuard())

	g.POST("", h.create)
	g.PATCH("/:id/discount", h.updateDiscount)
	g.PATCH("/:id/price", h.updatePrice)
}

func (h *ItemHandler) detail(c echo.Context) error {
	out, err := h.uc.GetItem(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ItemHandler) create(c echo.Context) error {
	websiteID, ok := getWebsiteIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req CreateItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.CreateItem(c.Request().Context(), websiteID, usecase.CreateItemInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *ItemHandler) updateDiscount(c echo.Context) error {
	sellerID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}
	websiteID, ok := getWebsiteIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req UpdateDiscountRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.UpdateDiscount(c.Request().Context(), sellerID, websiteID, c.Param("id"), usecase.UpdateDiscountInput{
		Active:    req.Active,
		Price:     req.Price,
		ExpiresAt: req.ExpiresAt,
	}); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "updated"})
}

func (h *ItemHandler) updatePrice(c echo.Context) error {
	websiteID, ok := getWebsiteIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req UpdatePriceRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.UpdatePrice(c.Request().Context(), websiteID, c.Param("id"), usecase.UpdatePriceInput{
		Price: req.Price,
	}); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "updated"})
}
