// Package accountdelivery manages delivery layer of accounts.
package accountdelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-bankist/bankist/internal/domain"
	"github.com/go-bankist/bankist/internal/middleware"
	"github.com/go-bankist/bankist/pkg/errorspkg"
	"github.com/go-bankist/bankist/pkg/formatpkg"
	"github.com/go-bankist/bankist/pkg/tokenpkg"
	"github.com/go-bankist/bankist/pkg/web"
)

// StatementService provides the statement rendering interface needed by the
// account delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package accountdelivery
type StatementService interface {
	Statement(ctx context.Context, username string, sortByAmount bool) (domain.Statement, error)
}

// SessionService provides the session-aware close operation.
type SessionService interface {
	CloseAccount(ctx context.Context, username string, pin int32) error
}

// Handler facilitates account delivery layer logic.
type Handler struct {
	statements StatementService
	sessions   SessionService
}

// NewHandler returns account handler.
func NewHandler(st StatementService, ss SessionService) *Handler {
	return &Handler{
		statements: st,
		sessions:   ss,
	}
}

type statementRequest struct {
	Sort string `form:"sort" binding:"omitempty,oneof=amount"`
}

type statementData struct {
	Statement domain.Statement `json:"statement"`
	Timer     string           `json:"timer"`
}

// Statement handles http request to render the movements and summary of the
// logged in account. `?sort=amount` orders rows ascending by amount without
// changing the stored order.
func (h *Handler) Statement(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req statementRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	statement, err := h.statements.Statement(ctx, authPayload.Username, req.Sort == "amount")
	if err != nil {
		l.Error().Err(err).Send()

		if err == domain.ErrAccountNotFound {
			gctx.JSON(http.StatusNotFound, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	ticks := gctx.GetInt(middleware.SessionTicksKey)

	res := web.Response{
		Data: statementData{
			Statement: statement,
			Timer:     formatpkg.CountdownClock(ticks),
		},
	}

	gctx.JSON(http.StatusOK, res)
}

type closeRequest struct {
	Username string `json:"username" binding:"required,alphanum"`
	Pin      int32  `json:"pin" binding:"required,min=1"`
}

// Close handles http request to permanently delete the logged in account.
// The credentials must be re-typed and must belong to the session owner.
func (h *Handler) Close(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req closeRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	if req.Username != authPayload.Username {
		l.Info().Str("username", req.Username).Msg("close rejected: not the session owner")
		gctx.JSON(http.StatusUnauthorized, web.Error(domain.ErrAuthenticationFailure))

		return
	}

	if err := h.sessions.CloseAccount(ctx, req.Username, req.Pin); err != nil {
		l.Info().Err(err).Send()

		if err == domain.ErrAuthenticationFailure {
			gctx.JSON(http.StatusUnauthorized, web.Error(err))
			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	gctx.Status(http.StatusNoContent)
}
