package handler

import (
	"net/http"

	"github.com/gimhantharuke456/sachi-itpm/internal/config"
	"github.com/gimhantharuke456/sachi-itpm/internal/middleware"
	"github.com/gimhantharuke456/sachi-itpm/internal/repository"
	"github.com/gimhantharuke456/sachi-itpm/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// Bind + Validate。失敗したら400を書き込んでfalse
func bindAndValidate(c echo.Context, req interface{}) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}
	return true, nil
}

func getUserIDFromContext(c echo.Context) (string, bool) {
	return middleware.UserID(c)
}

// JWT必須 + token_version一致
func authed(cfg config.Config, userRepo repository.UserRepository) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{
		middleware.AuthJWT(cfg),
		middleware.TokenVersionGuard(userRepo),
	}
}

// authed + ADMIN限定
func adminOnly(cfg config.Config, userRepo repository.UserRepository) []echo.MiddlewareFunc {
	return append(authed(cfg, userRepo), middleware.AdminRoleGuard())
}
