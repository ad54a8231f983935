package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/mnq-invest/futures-sim/internal/analytics"
	"github.com/mnq-invest/futures-sim/internal/diagnostics"
	"github.com/mnq-invest/futures-sim/internal/simulation"
	"github.com/mnq-invest/futures-sim/pkg/data"
	"github.com/mnq-invest/futures-sim/pkg/reporting"
	"github.com/mnq-invest/futures-sim/pkg/types"
)

const (
	AppName    = "MNQ Simulate"
	AppVersion = "1.0.0"
)

func main() {
	flags := NewSimulateFlags()
	flag.Parse()

	if *flags.ShowVersion {
		fmt.Printf("%s v%s\n", AppName, AppVersion)
		return
	}

	log := newLogger(*flags.Verbose)

	if err := ValidateSimulateFlags(flags); err != nil {
		log.Fatal().Err(err).Msg("flag validation failed")
	}

	if err := godotenv.Load(*flags.EnvFile); err != nil {
		log.Debug().Str("file", *flags.EnvFile).Msg("no environment file loaded")
	}
	applyReportDir(flags.JSONOut)

	series, err := loadSeries(flags)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load price series")
	}

	weekly := data.ResampleWeekly(series)
	log.Info().
		Int("points", len(series)).
		Int("weeks", len(weekly)).
		Str("symbol", *flags.Symbol).
		Msg("price series loaded")

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

	result, err := simulation.Simulate(weekly, *flags.WeeklyAmount, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("simulation failed")
	}

	reporter := reporting.NewConsoleReporter(os.Stdout)
	reporter.RenderLedger(result)
	reporter.RenderMetrics(analytics.Analyze(result))

	worst := diagnostics.Summarize(diagnostics.FindWorstWeek(result))
	fmt.Printf("\n📉 Worst week: %s (%.2f%%)\n", worst.Date.Format("2006-01-02"), worst.ReturnPct)

	if *flags.JSONOut != "" {
		if err := reporting.WriteResultJSON(result, *flags.JSONOut); err != nil {
			log.Fatal().Err(err).Msg("failed to write JSON result")
		}
		log.Info().Str("path", *flags.JSONOut).Msg("JSON result written")
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

func loadSeries(flags *SimulateFlags) ([]types.PricePoint, error) {
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
