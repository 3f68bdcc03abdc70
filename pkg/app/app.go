package app

import (
	"log/slog"

	"github.com/amirasaad/spendwise/pkg/config"
	"github.com/amirasaad/spendwise/pkg/provider"
	"github.com/amirasaad/spendwise/pkg/ratelimit"
	"github.com/amirasaad/spendwise/pkg/repository"
	"github.com/amirasaad/spendwise/pkg/scheduler"
	accountsvc "github.com/amirasaad/spendwise/pkg/service/account"
	budgetsvc "github.com/amirasaad/spendwise/pkg/service/budget"
	insightsvc "github.com/amirasaad/spendwise/pkg/service/insight"
	txsvc "github.com/amirasaad/spendwise/pkg/service/transaction"
)

// Deps contains the infrastructure the services are built from.
type Deps struct {
	Uow       repository.UnitOfWork
	Generator provider.InsightGenerator
	Bank      provider.BankingProvider
	Limiter   ratelimit.Limiter
	Logger    *slog.Logger
}

type App struct {
	Deps               *Deps
	Config             *config.App
	InsightService     *insightsvc.Service
	BudgetService      *budgetsvc.Service
	TransactionService *txsvc.Service
	AccountService     *accountsvc.Service
	Reconciler         *txsvc.Reconciler
	Scheduler          *scheduler.Scheduler
}

func New(deps *Deps, cfg *config.App) *App {
	app := &App{
		Deps:   deps,
		Config: cfg,
	}
	ic := cfg.Insights
	synth := insightsvc.NewSynthesizer(deps.Generator, insightsvc.SynthesizerConfig{
		MaxRetries:     ic.MaxRetries,
		BaseDelay:      ic.BaseDelay,
		AttemptTimeout: ic.AttemptTimeout,
	}, deps.Logger)
	ranker := insightsvc.NewRanker(insightsvc.Quotas{
		PerType:    ic.PerTypeCap,
		Total:      ic.TotalCap,
		MinPerType: ic.MinPerType,
	})
	app.InsightService = insightsvc.New(deps.Uow, synth, ranker, deps.Limiter, deps.Logger)
	app.BudgetService = budgetsvc.New(deps.Uow, deps.Logger)
	app.TransactionService = txsvc.New(deps.Uow, deps.Logger)
	app.AccountService = accountsvc.New(deps.Uow, deps.Logger)
	app.Reconciler = txsvc.NewReconciler(
		deps.Uow,
		deps.Bank,
		cfg.Sync.LookbackDays,
		cfg.Sync.Workers,
		deps.Logger,
	)
	app.Scheduler = scheduler.New(
		deps.Uow,
		app.InsightService,
		cfg.Scheduler.HourUTC,
		cfg.Scheduler.PageSize,
		deps.Logger,
	)
	return app
}
