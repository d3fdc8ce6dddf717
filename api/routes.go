package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-ledger/internal/handlers/v1/account"
	"github.com/carson-networks/finance-ledger/internal/handlers/v1/analytics"
	"github.com/carson-networks/finance-ledger/internal/handlers/v1/autopost"
	"github.com/carson-networks/finance-ledger/internal/handlers/v1/budget"
	"github.com/carson-networks/finance-ledger/internal/handlers/v1/category"
	"github.com/carson-networks/finance-ledger/internal/handlers/v1/rule"
	"github.com/carson-networks/finance-ledger/internal/handlers/v1/status"
	"github.com/carson-networks/finance-ledger/internal/handlers/v1/transaction"
	"github.com/carson-networks/finance-ledger/internal/logging"
	"github.com/carson-networks/finance-ledger/internal/service"
	"github.com/carson-networks/finance-ledger/internal/storage"
)

const shutdownTimeout = 10 * time.Second

type Rest struct {
	Logger  *logrus.Logger
	Port    string
	Storage *storage.Storage
	Service *service.Service
}

// Router builds the chi router with /status and every huma operation mounted.
func (r *Rest) Router() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)

	statusHandler := status.NewHandler(r.Storage)
	router.Get("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	api := humachi.New(router, huma.DefaultConfig("Finance Ledger", "1.0.0"))
	api.UseMiddleware(logging.HumaMiddleware(r.Logger))
	r.register(api)

	return router
}

func (r *Rest) register(api huma.API) {
	svc := r.Service

	account.NewCreateAccountHandler(svc.Account).Register(api)
	account.NewListAccountsHandler(svc.Account).Register(api)

	transaction.NewCreateTransactionHandler(svc.Transaction).Register(api)
	transaction.NewListTransactionsHandler(svc.Transaction).Register(api)

	category.NewHandler(svc.Category).Register(api)
	budget.NewHandler(svc.Budget).Register(api)

	rule.NewCreateRuleHandler(svc.Rule).Register(api)
	rule.NewRuleHandler(svc.Rule).Register(api)
	rule.NewUpdateRuleHandler(svc.Rule).Register(api)
	rule.NewGenerateNextHandler(svc.Rule).Register(api)

	autopost.NewHandler(svc.AutoPost).Register(api)
	analytics.NewHandler(svc.Analytics).Register(api)
}

// Serve listens until ctx is cancelled, then drains in-flight requests.
func (r *Rest) Serve(ctx context.Context) {
	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           r.Router(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			r.Logger.WithError(err).Error("HttpServer.Serve.shutdown error")
		}
	}()

	r.Logger.WithField("port", r.Port).Info("HttpServer.Serve.listening")
	err := server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
	}
	r.Logger.Info("HttpServer.Serve.shutting down")
}
