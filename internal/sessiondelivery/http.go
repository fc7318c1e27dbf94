// Package sessiondelivery manages delivery layer of sessions.
package sessiondelivery

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-bankist/bankist/internal/domain"
	"github.com/go-bankist/bankist/internal/middleware"
	"github.com/go-bankist/bankist/pkg/errorspkg"
	"github.com/go-bankist/bankist/pkg/tokenpkg"
	"github.com/go-bankist/bankist/pkg/web"
)

// Service provides service layer interface needed by session delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package sessiondelivery
type Service interface {
	Login(ctx context.Context, username string, pin int32) (string, time.Time, domain.Account, error)
	Logout(ctx context.Context, username string) error
}

// Handler facilitates session delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns session handler.
func NewHandler(ss Service) *Handler {
	return &Handler{service: ss}
}

type loginRequest struct {
	Username string `json:"username" binding:"required,alphanum"`
	Pin      int32  `json:"pin" binding:"required,min=1"`
}

type loginData struct {
	Account domain.Account `json:"account"`
}

// Login handles http request to open a session.
func (h *Handler) Login(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req loginRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	accessToken, expiresAt, acc, err := h.service.Login(ctx, req.Username, req.Pin)
	if err != nil {
		l.Info().Err(err).Send()

		if err == domain.ErrAuthenticationFailure {
			gctx.JSON(http.StatusUnauthorized, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := web.Response{
		AccessToken:          accessToken,
		AccessTokenExpiresAt: expiresAt.Format(time.RFC3339),
		Data:                 loginData{Account: acc},
	}

	gctx.JSON(http.StatusOK, res)
}

// Logout handles http request to end the session.
func (h *Handler) Logout(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	if err := h.service.Logout(ctx, authPayload.Username); err != nil {
		l.Info().Err(err).Send()

		if err == domain.ErrSessionNotFound {
			gctx.JSON(http.StatusUnauthorized, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.Status(http.StatusNoContent)
}
