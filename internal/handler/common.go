package handler

import (
	"errors"
	"net/http"

	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

// usecaseのHTTPErrorをそのままレスポンスに変換する。
// それ以外は詳細を漏らさず500にする。
func writeError(c echo.Context, err error) error {
	var httpErr *usecase.HTTPError
	if errors.As(err, &httpErr) {
		return c.JSON(httpErr.Status, ErrorResponse{Error: httpErr.Message})
	}
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

func getUserIDFromContext(c echo.Context) (string, bool) {
	raw := c.Get(middleware.CtxUserIDKey)
	id, ok := raw.(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

func getWebsiteIDFromContext(c echo.Context) (string, bool) {
	raw := c.Get(middleware.CtxWebsiteIDKey)
	id, ok := raw.(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
