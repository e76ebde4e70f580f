package handler

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"blogtab/internal/auth"
	apperrors "blogtab/internal/errors"
)

// currentClaims extracts the verified claims placed in the context by the
// JWT middleware.
func currentClaims(c echo.Context) (*auth.Claims, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
			Error: apperrors.ErrUnauthorized.Error(),
			Code:  "UNAUTHORIZED",
		})
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
			Error: apperrors.ErrUnauthorized.Error(),
			Code:  "UNAUTHORIZED",
		})
	}
	return claims, nil
}

// respondError converts a domain error into an echo HTTP error with the
// standard {error, code} body.
func respondError(err error) *echo.HTTPError {
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// StatusMessage is the confirmation body returned by update operations.
type StatusMessage struct {
	Message string `json:"message"`
}
