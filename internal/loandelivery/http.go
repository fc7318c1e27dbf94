// Package loandelivery manages delivery layer of loans.
package loandelivery

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

// Service provides service layer interface needed by loan delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package loandelivery
type Service interface {
	Request(ctx context.Context, username, amount string) (domain.LoanRequest, error)
}

// Handler facilitates loan delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns loan handler.
func NewHandler(ls Service) *Handler {
	return &Handler{service: ls}
}

type request struct {
	Amount string `json:"amount" binding:"required"`
}

type data struct {
	Loan domain.LoanRequest `json:"loan"`
}

// Create handles http request to ask for a loan. An approved loan lands on
// the account only after the processing delay, so the response is 202.
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

	loan, err := h.service.Request(ctx, authPayload.Username, req.Amount)
	if err != nil {
		l.Info().Err(err).Send()

		switch err {
		case domain.ErrLoanRefused, domain.ErrInvalidAmount:
			gctx.JSON(http.StatusBadRequest, web.Error(err))

			return
		}

		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))

		return
	}

	res := web.Response{
		Data: data{Loan: loan},
	}

	gctx.JSON(http.StatusAccepted, res)
}
