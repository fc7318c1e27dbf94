// Package httpserver manages server creation and api routing.
package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-bankist/bankist/internal/accountdelivery"
	"github.com/go-bankist/bankist/internal/accountservice"
	"github.com/go-bankist/bankist/internal/domain"
	"github.com/go-bankist/bankist/internal/ledgerrepo"
	"github.com/go-bankist/bankist/internal/loandelivery"
	"github.com/go-bankist/bankist/internal/loanservice"
	"github.com/go-bankist/bankist/internal/middleware"
	"github.com/go-bankist/bankist/internal/sessiondelivery"
	"github.com/go-bankist/bankist/internal/sessionservice"
	"github.com/go-bankist/bankist/internal/statementservice"
	"github.com/go-bankist/bankist/internal/transferdelivery"
	"github.com/go-bankist/bankist/internal/transferservice"
	"github.com/go-bankist/bankist/pkg/configpkg"
	"github.com/go-bankist/bankist/pkg/tokenpkg"
)

// Server holds the seeded ledger, the handlers router and configuration.
type Server struct {
	Ledger *ledgerrepo.RepoMem
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes. The ledger
// starts from the seed data set on every run; nothing survives a restart.
func New(accounts []domain.Account, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	ledger, err := ledgerrepo.NewRepoMem(accounts)
	if err != nil {
		return nil, err
	}

	tokenMaker, err := tokenpkg.NewPasetoMaker(config.TokenSymmetricKey)
	if err != nil {
		return nil, errors.New("cannot create token maker")
	}

	accountService := accountservice.New(ledger)
	transferService := transferservice.New(ledger, accountService)
	loanService := loanservice.New(ledger, config.LoanGrantDelay)
	sessionService := sessionservice.New(accountService, loanService, config, tokenMaker, logger)
	statementService := statementservice.New(accountService)

	sessionHandler := sessiondelivery.NewHandler(sessionService)
	accountHandler := accountdelivery.NewHandler(statementService, sessionService)
	transferHandler := transferdelivery.NewHandler(transferService)
	loanHandler := loandelivery.NewHandler(loanService)

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.POST("/sessions", sessionHandler.Login)

	authRoutes := engine.Group("/").Use(middleware.AuthMiddleware(tokenMaker, sessionService))

	authRoutes.DELETE("/sessions", sessionHandler.Logout)
	authRoutes.GET("/accounts/statement", accountHandler.Statement)
	authRoutes.DELETE("/accounts", accountHandler.Close)
	authRoutes.POST("/transfers", transferHandler.Create)
	authRoutes.POST("/loans", loanHandler.Create)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		err := v.RegisterValidation("amount", transferdelivery.ValidAmount)
		if err != nil {
			return nil, errors.New("cannot register amount validator")
		}
	}

	return &Server{
		Ledger: ledger,
		Engine: engine,
		Config: config,
	}, nil
}
