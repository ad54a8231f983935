package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/mnq-invest/futures-sim/internal/monitoring"
	"github.com/mnq-invest/futures-sim/internal/simulation"
	"github.com/mnq-invest/futures-sim/internal/sweep"
	"github.com/mnq-invest/futures-sim/pkg/data"
	"github.com/mnq-invest/futures-sim/pkg/reporting"
	"github.com/mnq-invest/futures-sim/pkg/types"
)

const (
	AppName    = "MNQ Sweep"
	AppVersion = "1.0.0"
)

func main() {
	flags := NewSweepFlags()
	flag.Parse()

	if *flags.ShowVersion {
		fmt.Printf("%s v%s\n", AppName, AppVersion)
		return
	}

	log := newLogger(*flags.Verbose)

	if err := ValidateSweepFlags(flags); err != nil {
		log.Fatal().Err(err).Msg("flag validation failed")
	}

	if err := godotenv.Load(*flags.EnvFile); err != nil {
		log.Debug().Str("file", *flags.EnvFile).Msg("no environment file loaded")
	}
	applyReportDir(flags.JSONOut, flags.ExcelOut)

	sortKey, err := types.ParseSortKey(*flags.SortKey)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid sort key")
	}

	series, err := loadSeries(flags)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load price series")
	}
	log.Info().Int("points", len(series)).Str("symbol", *flags.Symbol).Msg("price series loaded")

	cfg := simulation.Config{
		ContractMultiplier:           *flags.Multiplier,
		InitialMarginPerContract:     *flags.InitialMargin,
		MaintenanceMarginPerContract: *flags.MaintenanceMargin,
		CommissionPerContract:        *flags.Commission,
		SlippagePerContract:          *flags.Slippage,
		MaxContracts:                 *flags.MaxContracts,
		MinEquityToNotionalRatio:     *flags.MinEquityRatio,
		MaxContractAddsPerWeek:       *flags.MaxAddsPerWeek,
	}

	params := sweep.Params{
		AmountMin:  *flags.AmountMin,
		AmountMax:  *flags.AmountMax,
		StepSize:   *flags.StepSize,
		TopN:       *flags.TopN,
		SortKey:    sortKey,
		Descending: !*flags.Ascending,
	}

	ctx := context.Background()
	if *flags.Timeout != "" {
		timeout, err := time.ParseDuration(*flags.Timeout)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid timeout")
		}
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if *flags.MetricsAddr != "" {
		go func() {
			log.Info().Str("addr", *flags.MetricsAddr).Msg("serving Prometheus metrics")
			if err := http.ListenAndServe(*flags.MetricsAddr, monitoring.Handler()); err != nil {
				log.Error().Err(err).Msg("metrics listener stopped")
			}
		}()
	}

	optimizer := sweep.NewOptimizer(cfg, *flags.Workers, log)
	report, err := optimizer.Optimize(ctx, series, params)
	if err != nil {
		log.Fatal().Err(err).Msg("sweep failed")
	}

	reporter := reporting.NewConsoleReporter(os.Stdout)
	reporter.RenderReport(report)

	if *flags.JSONOut != "" {
		if err := reporting.WriteReportJSON(report, *flags.JSONOut); err != nil {
			log.Fatal().Err(err).Msg("failed to write JSON report")
		}
		log.Info().Str("path", *flags.JSONOut).Msg("JSON report written")
	}

	if *flags.ExcelOut != "" {
		if err := reporting.NewExcelReporter().WriteReportXLSX(report, *flags.ExcelOut); err != nil {
			log.Fatal().Err(err).Msg("failed to write Excel report")
		}
		log.Info().Str("path", *flags.ExcelOut).Msg("Excel report written")
	}
}

// applyReportDir prefixes relative output paths with FUTURES_SIM_REPORT_DIR
// when the environment sets one.
func applyReportDir(paths ...*string) {
	dir := os.Getenv("FUTURES_SIM_REPORT_DIR")
	if dir == "" {
		return
	}
	for _, p := range paths {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
}

func loadSeries(flags *SweepFlags) ([]types.PricePoint, error) {
	provider := data.NewCSVProvider(*flags.DataFile)
	if *flags.OHLCV {
		provider.SetColumnMapping(data.OHLCVCSVMapping)
	}

	start, err := parseDate(*flags.Start)
	if err != nil {
		return nil, fmt.Errorf("invalid -start: %w", err)
	}
	end, err := parseDate(*flags.End)
	if err != nil {
		return nil, fmt.Errorf("invalid -end: %w", err)
	}

	return provider.Series(*flags.Symbol, start, end)
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", s)
}
