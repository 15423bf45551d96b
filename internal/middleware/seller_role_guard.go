package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

//contextに入っているroleがSELLERかどうかを確認します。

func SellerRoleGuard() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawRole := c.Get(CtxUserRoleKey)
			role, ok := rawRole.(string)
			if !ok || role == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//BUYERは拒否、SELLERだけ許可
			if role != "SELLER" {
				return c.JSON(http.StatusForbidden, errorJSON("seller only"))
			}

			//SELLERはwebsite_id必須（テナントに紐付かないトークンは拒否）
			rawWebsite := c.Get(CtxWebsiteIDKey)
			websiteID, ok := rawWebsite.(string)
			if !ok || websiteID == "" {
				return c.JSON(http.StatusForbidden, errorJSON("seller only"))
			}

			return next(c)
		}
	}
}
