package server

import (
	"context"
	"os"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/dwellify/dwellify/internal/config"
)

var (
	AppEnv  = os.Getenv(config.ENV_KEY_APP_ENV)
	isLocal = AppEnv == "local"
)

func (s *Server) getUserID(c echo.Context) (uuid.UUID, bool) {

	var (
		reqClientID = c.Request().Header.Get(config.HEADER_KEY_X_CLIENT_ID)
		reqUserID   = c.Request().Header.Get(config.HEADER_KEY_X_USER_ID)
		clientID    = os.Getenv(config.ENV_KEY_CLIENT_ID)
	)

	if reqUserID == "" {
		return uuid.Nil, false
	}

	// Local runs skip the client check so curl works without the
	// gateway in front.
	if !isLocal && reqClientID != clientID {
		return uuid.Nil, false
	}

	id, err := uuid.Parse(reqUserID)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// AuthMiddleware resolves the acting user from the trusted gateway
// headers and places their id and role in the downstream context.
func (s *Server) AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {

		var (
			ctx = c.Request().Context()
		)

		id, ok := s.getUserID(c)
		if !ok {
			return c.JSON(401, map[string]string{
				"error":   "unauthorized",
				"message": "Invalid credentials",
			})
		}

		u, err := s.server.GetUserByID(ctx, id)
		if err != nil {
			return c.JSON(401, map[string]string{
				"error":   err.Error(),
				"message": "User not found",
			})
		}

		ctx = context.WithValue(ctx, config.CTX_KEY_USER_ID, u.ID)
		ctx = context.WithValue(ctx, config.CTX_KEY_USER_ROLE, u.Role)

		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}
