package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/go-bankist/bankist/internal/domain"
	"github.com/go-bankist/bankist/pkg/tokenpkg"
	"github.com/go-bankist/bankist/pkg/web"
)

// AddAuthorization stamps a freshly minted bearer token onto the request.
func AddAuthorization(
	t *testing.T,
	request *http.Request,
	tokenMaker tokenpkg.Maker,
	authType string,
	username string,
	duration time.Duration,
) {
	token, _, err := tokenMaker.CreateToken(username, duration)
	require.NoError(t, err)

	authHeader := fmt.Sprintf("%s %s", authType, token)
	request.Header.Set(AuthHeaderKey, authHeader)
}

// Keys used by the auth middleware in the gin context.
const (
	AuthHeaderKey   = "authorization"
	AuthTypeBearer  = "bearer"
	AuthPayloadKey  = "authorization_payload"
	SessionTicksKey = "session_ticks_remaining"
)

// SessionToucher registers qualifying activity for the authenticated user
// and reports the countdown ticks remaining.
type SessionToucher interface {
	Touch(ctx context.Context, username string) (int, error)
}

// AuthMiddleware verifies the bearer token and the live session behind it.
// Every authenticated request counts as qualifying activity and resets the
// session's inactivity countdown.
func AuthMiddleware(tokenMaker tokenpkg.Maker, sessions SessionToucher) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader(AuthHeaderKey)
		if len(authHeader) == 0 {
			err := errors.New("authorization header is not provided")
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(err))

			return
		}

		fields := strings.Fields(authHeader)
		if len(fields) < 2 {
			err := errors.New("invalid authorization header format")
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(err))

			return
		}

		authType := strings.ToLower(fields[0])
		if authType != AuthTypeBearer {
			err := fmt.Errorf("unsupported authorization type %s", authType)
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(err))

			return
		}

		payload, err := tokenMaker.VerifyToken(fields[1])
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(err))

			return
		}

		ticks, err := sessions.Touch(ctx.Request.Context(), payload.Username)
		if err != nil {
			// The token outlived its session: the countdown fired, the
			// user logged out, or the account was closed.
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(domain.ErrSessionExpired))

			return
		}

		ctx.Set(AuthPayloadKey, payload)
		ctx.Set(SessionTicksKey, ticks)
		ctx.Next()
	}
}
