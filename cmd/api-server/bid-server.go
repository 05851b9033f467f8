package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/k3lly003/Construct-KVV-sub003/db"
	"github.com/k3lly003/Construct-KVV-sub003/db/migrations"
	"github.com/k3lly003/Construct-KVV-sub003/internal/config"
	"github.com/k3lly003/Construct-KVV-sub003/internal/handlers"
	"github.com/k3lly003/Construct-KVV-sub003/internal/logger"
	"github.com/k3lly003/Construct-KVV-sub003/internal/split"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config: %v", err)
	}
	if err := logger.Init(logger.Settings{
		Level:  cfg.Log.Level,
		Output: cfg.Log.Output,
		File:   cfg.Log.File,
	}); err != nil {
		logger.Fatal("init logger: %v", err)
	}
	defer logger.Sync()

	dbConn, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		logger.Fatal("cannot connect to database: %v", err)
	}
	defer dbConn.Close()

	if err := migrations.Run(dbConn.DB); err != nil {
		logger.Fatal("migrations: %v", err)
	}

	store := db.NewStorage(dbConn)
	h := handlers.NewHandler(store, cfg.Split.DefaultRatio, split.ParseRounding(cfg.Split.Rounding))

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/ping", h.PingHandler)

		r.Post("/users/new", h.CreateUserHandler)

		r.Post("/projects/new", h.CreateProjectHandler)
		r.Get("/projects/{projectId}", h.GetProjectHandler)

		r.Get("/bids", h.ListBidsHandler)
		r.Post("/bids/new", h.CreateBidHandler)
		r.Put("/bids/{bidId}/withdraw", h.WithdrawBidHandler)
		r.Post("/bids/{bidId}/accept", h.AcceptBidHandler)

		r.Get("/negotiation/{bidId}/messages", h.GetNegotiationThreadHandler)
		r.Post("/negotiation/{bidId}/messages", h.CreateNegotiationMessageHandler)

		r.Get("/milestones/project/{projectId}", h.GetMilestoneHandler)
		r.Put("/milestones/project/{projectId}", h.UpsertMilestoneHandler)
		r.Post("/milestones", h.CreateMilestoneHandler)

		r.Get("/timelines/project/{projectId}", h.GetTimelineHandler)
		r.Put("/timelines/project/{projectId}", h.UpsertTimelineHandler)
		r.Post("/timelines", h.CreateTimelineHandler)

		r.Get("/budget/{projectId}", h.GetBudgetSummaryHandler)
		r.Post("/budget/{projectId}", h.CreateBudgetExpenseHandler)

		r.Get("/revenue-split/calculations", h.ListSplitCalculationsHandler)
		r.Post("/revenue-split/new", h.CreateSplitHandler)
		r.Post("/revenue-split/{splitId}/check", h.CheckSplitHandler)
		r.Get("/revenue-split/summary", h.SplitSummaryHandler)
	})

	logger.Info("starting server on %s", cfg.Server.Address)
	if err := http.ListenAndServe(cfg.Server.Address, r); err != nil {
		logger.Fatal("server: %v", err)
	}
}
