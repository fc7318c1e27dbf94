// Package transferdelivery manages delivery layer of transfers.
package transferdelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-bankist/bankist/internal/domain"
	"github.com/go-bankist/bankist/internal/middleware"
	"github.com/go-bankist/bankist/pkg/errorspkg"
	"github.com/go-bankist/bankist/pkg/tokenpkg"
	"github.com/go-bankist/bankist/pkg/web"
)

// Service provides service layer interface needed by transfer delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transferdelivery
type Service interface {
	Transfer(ctx context.Context, fromUsername, toOwner, amount string) (domain.TransferResult, error)
}

// Handler facilitates transfer delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns transfer handler.
func NewHandler(ts Service) *Handler {
	return &Handler{service: ts}
}

type request struct {
	// Recipients are addressed by owner full name, as on the paper slips.
	ToOwner string `json:"to_owner" binding:"required"`
	Amount  string `json:"amount" binding:"required,amount"`
}

type data struct {
	Transfer domain.TransferResult `json:"transfer"`
}

// Create handles http request to transfer funds to another account.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req request
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return
	}

	authPayload := gctx.MustGet(middleware.AuthPayloadKey).(*tokenpkg.Payload)

	result, err := h.service.Transfer(ctx, authPayload.Username, req.ToOwner, req.Amount)
	if err != nil {
		l.Info().Err(err).Send()

		switch err {
		case
			domain.ErrUnknownRecipient,
			domain.ErrInvalidAmount,
			domain.ErrInsufficientFunds:
			gctx.JSON(http.StatusBadRequest, web.Error(err))

			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := web.Response{
		Data: data{Transfer: result},
	}

	gctx.JSON(http.StatusOK, res)
}
