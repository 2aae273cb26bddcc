package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"TradeCoach/internal/coach"
	"TradeCoach/internal/config"
	"TradeCoach/internal/logging"
	"TradeCoach/internal/marketdata"
	"TradeCoach/internal/model"
	"TradeCoach/internal/report"
	"TradeCoach/internal/store"
	"TradeCoach/internal/watch"
)

// Exit codes (spec §6): one error class per code.
const (
	exitOK         = 0
	exitOther      = 1
	exitValidation = 2
	exitMarketData = 3
	exitStore      = 4
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) > 0 && args[0] == "watch" {
		return runWatch(args[1:])
	}
	return runAnalyze(args)
}

type cliFlags struct {
	positionSize float64
	stockBeta    float64
	sector       string
	horizon      int
	mock         bool
	noSave       bool
	initDB       bool
	source       string
	every        string
	verbose      bool
}

func parseFlags(fs *flag.FlagSet, args []string) (*cliFlags, []string, error) {
	f := &cliFlags{}
	fs.Float64Var(&f.positionSize, "position-size", 0, "position size in account currency")
	fs.Float64Var(&f.positionSize, "p", 0, "alias for --position-size")
	fs.Float64Var(&f.stockBeta, "stock-beta", 0, "stock beta")
	fs.Float64Var(&f.stockBeta, "b", 0, "alias for --stock-beta")
	fs.StringVar(&f.sector, "sector", "", "sector name")
	fs.StringVar(&f.sector, "s", "", "alias for --sector")
	fs.IntVar(&f.horizon, "horizon", 30, "holding horizon in days (7, 30, or 90 recognized)")
	fs.IntVar(&f.horizon, "H", 30, "alias for --horizon")
	fs.BoolVar(&f.mock, "mock", false, "shorthand for --source mock")
	fs.BoolVar(&f.noSave, "no-save", false, "analyze without persisting the trade")
	fs.BoolVar(&f.initDB, "init-db", false, "initialize the database schema and exit")
	fs.StringVar(&f.source, "source", "mock", "market data source: live or mock")
	fs.StringVar(&f.every, "every", "", "cron expression for watch mode (default: config's watch_cron)")
	fs.BoolVar(&f.verbose, "verbose", false, "enable debug logging")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

func runAnalyze(args []string) int {
	fs := flag.NewFlagSet("coach", flag.ContinueOnError)
	f, rest, err := parseFlags(fs, args)
	if err != nil {
		return exitValidation
	}
	logging.Init(f.verbose)

	cfg, st, err := bootstrap(f)
	if err != nil {
		return reportErr(err)
	}
	defer st.Close()

	if f.initDB {
		fmt.Println("database initialized:", cfg.Database.Path)
		return exitOK
	}

	req, err := parseRequest(rest, f)
	if err != nil {
		return reportErr(err)
	}

	ctx := rootContext()
	orchestrator := buildOrchestrator(cfg, st)

	coachingReport, err := orchestrator.Analyze(ctx, req)
	if err != nil {
		return reportErr(err)
	}

	fmt.Println(report.Render(coachingReport))
	return exitOK
}

func runWatch(args []string) int {
	fs := flag.NewFlagSet("coach watch", flag.ContinueOnError)
	f, rest, err := parseFlags(fs, args)
	if err != nil {
		return exitValidation
	}
	logging.Init(f.verbose)

	cfg, st, err := bootstrap(f)
	if err != nil {
		return reportErr(err)
	}
	defer st.Close()

	req, err := parseRequest(rest, f)
	if err != nil {
		return reportErr(err)
	}
	req.Save = true

	cronExpr := f.every
	if cronExpr == "" {
		cronExpr = cfg.WatchCron
	}

	orchestrator := buildOrchestrator(cfg, st)
	runner, err := watch.NewRunner(orchestrator, req, cronExpr, func(r *model.CoachingReport) {
		fmt.Println(report.Render(r))
	})
	if err != nil {
		return reportErr(err)
	}

	log.Info().Str("cron", cronExpr).Str("symbol", req.Symbol).Msg("watch mode running; press Ctrl+C to stop")
	runner.Run(rootContext())
	return exitOK
}

func bootstrap(f *cliFlags) (*config.Config, store.Store, error) {
	cfgPath := os.Getenv("COACH_CONFIG_PATH")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, model.Internal("load config", err)
	}

	var st store.Store
	if f.noSave {
		st = store.NewMemoryStore()
	} else {
		st, err = store.NewSQLiteStore(context.Background(), cfg.Database.Path)
		if err != nil {
			return nil, nil, err
		}
	}
	return cfg, st, nil
}

func buildOrchestrator(cfg *config.Config, st store.Store) *coach.Orchestrator {
	mock := &marketdata.MockFetcher{}

	var live marketdata.Fetcher = mock
	if creds, err := config.LoadCredentials(); err == nil {
		live = marketdata.NewLiveFetcher(marketdata.LiveFetcherOptions{
			BaseURL:           cfg.Quote.BaseURL,
			TigerID:           creds.TigerID,
			PrivateKey:        creds.PrivateKey,
			Account:           creds.Account,
			Timeout:           cfg.Quote.Timeout,
			RequestsPerSecond: cfg.Quote.RequestsPerSecond,
			MaxRetries:        cfg.Quote.MaxRetries,
		})
	}

	return coach.NewOrchestrator(live, mock, st)
}

func parseRequest(positional []string, f *cliFlags) (*coach.Request, error) {
	if len(positional) < 3 {
		return nil, model.InvalidInput("usage: coach <symbol> <entry_price> <entry_date> [flags]")
	}

	symbol := positional[0]
	var entryPrice float64
	if _, err := fmt.Sscanf(positional[1], "%f", &entryPrice); err != nil {
		return nil, model.InvalidInputf("invalid entry_price %q", positional[1])
	}
	entryDate, err := time.Parse("2006-01-02", positional[2])
	if err != nil {
		return nil, model.InvalidInputf("invalid entry_date %q, want YYYY-MM-DD", positional[2])
	}

	source := coach.Source(f.source)
	if f.mock {
		source = coach.SourceMock
	}

	req := &coach.Request{
		Symbol:     symbol,
		EntryPrice: entryPrice,
		EntryDate:  entryDate,
		Horizon:    f.horizon,
		Source:     source,
		Save:       !f.noSave,
	}
	if f.positionSize > 0 || f.stockBeta > 0 || f.sector != "" {
		req.PositionSize = &f.positionSize
		req.StockBeta = &f.stockBeta
		req.Sector = &f.sector
	}
	return req, nil
}

func rootContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info().Msg("shutdown signal received")
		cancel()
	}()
	return ctx
}

func reportErr(err error) int {
	var coachErr *model.CoachError
	if errors.As(err, &coachErr) {
		switch coachErr.Kind {
		case model.KindInvalidInput:
			fmt.Fprintln(os.Stderr, "error:", coachErr.Error())
			return exitValidation
		case model.KindMarketData:
			fmt.Fprintln(os.Stderr, "error:", coachErr.Error())
			fmt.Fprintln(os.Stderr, "hint: try --mock to analyze against synthetic data")
			return exitMarketData
		case model.KindStore:
			fmt.Fprintln(os.Stderr, "error:", coachErr.Error())
			return exitStore
		case model.KindCancelled:
			fmt.Fprintln(os.Stderr, "cancelled:", coachErr.Error())
			return exitOther
		}
	}
	fmt.Fprintln(os.Stderr, "error:", err)
	return exitOther
}
