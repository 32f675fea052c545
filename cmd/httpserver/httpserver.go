// Package httpserver manages server creation and api routing.
package httpserver

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-ledger/internal/accountdelivery"
	"github.com/go-petr/pet-ledger/internal/accountrepo"
	"github.com/go-petr/pet-ledger/internal/accountservice"
	"github.com/go-petr/pet-ledger/internal/middleware"
	"github.com/go-petr/pet-ledger/internal/transferdelivery"
	"github.com/go-petr/pet-ledger/internal/transferlog"
	"github.com/go-petr/pet-ledger/internal/transferrepo"
	"github.com/go-petr/pet-ledger/internal/transferservice"
	"github.com/go-petr/pet-ledger/pkg/configpkg"
	"github.com/go-petr/pet-ledger/pkg/moneypkg"
)

// Server holds db connection, handlers router and configuration.
type Server struct {
	DB     *sql.DB
	Engine *gin.Engine
	Config configpkg.Config
}

// ServeHTTP implements the http.Handler interface for the Server type.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Engine.ServeHTTP(w, r)
}

// New creates Server type with instantiated domains and routes.
//
// conn is only used, and must be non-nil, when config.DBDriver is postgres.
func New(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*Server, error) {
	var (
		accountRepo  accountservice.Repo
		transferRepo transferlog.Repo
	)

	switch config.DBDriver {
	case configpkg.DriverPostgres:
		if conn == nil {
			return nil, errors.New("postgres driver requires a db connection")
		}

		accountRepo = accountrepo.NewRepoPGS(conn)
		transferRepo = transferrepo.NewRepoPGS(conn)
	case configpkg.DriverMemory:
		accountRepo = accountrepo.NewRepoMem()
		transferRepo = transferrepo.NewRepoMem()
	default:
		return nil, fmt.Errorf("unsupported db driver %q", config.DBDriver)
	}

	accountService := accountservice.New(accountRepo)
	transferLog := transferlog.New(transferRepo)
	transferService := transferservice.New(accountService, transferLog)

	accountHandler := accountdelivery.NewHandler(accountService)
	transferHandler := transferdelivery.NewHandler(transferService, config.TransferTimeout)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("amount", moneypkg.ValidAmount); err != nil {
			return nil, errors.New("cannot register amount validator")
		}

		if err := v.RegisterValidation("balance", moneypkg.ValidBalance); err != nil {
			return nil, errors.New("cannot register balance validator")
		}
	}

	engine := gin.New()

	engine.Use(middleware.RequestLogger(logger))
	engine.Use(gin.Recovery())

	engine.POST("/accounts", accountHandler.Create)
	engine.GET("/accounts/:number", accountHandler.Get)
	engine.GET("/accounts/id/:id", accountHandler.GetByID)
	engine.GET("/accounts", accountHandler.List)

	engine.POST("/transfers", transferHandler.Create)
	engine.GET("/transfers", transferHandler.History)
	engine.GET("/transfers/:id", transferHandler.Get)

	server := &Server{
		DB:     conn,
		Engine: engine,
		Config: config,
	}

	return server, nil
}
