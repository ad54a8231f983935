package main

import (
	"flag"
	"fmt"
)

// SweepFlags holds all command line flags for the sweep command.
type SweepFlags struct {
	// Input
	DataFile *string
	Symbol   *string
	OHLCV    *bool
	Start    *string
	End      *string

	// Sweep parameters
	AmountMin *float64
	AmountMax *float64
	StepSize  *float64
	TopN      *int
	SortKey   *string
	Ascending *bool

	// Contract configuration
	Multiplier        *float64
	InitialMargin     *float64
	MaintenanceMargin *float64
	Commission        *float64
	Slippage          *float64
	MaxContracts      *int
	MinEquityRatio    *float64
	MaxAddsPerWeek    *int

	// Execution
	Workers     *int
	Timeout     *string
	MetricsAddr *string

	// Output
	JSONOut  *string
	ExcelOut *string
	EnvFile  *string
	Verbose  *bool

	ShowVersion *bool
}

// NewSweepFlags registers all sweep command line flags.
func NewSweepFlags() *SweepFlags {
	return &SweepFlags{
		DataFile: flag.String("data", "", "Path to close-price CSV file (required)"),
		Symbol:   flag.String("symbol", "MNQ", "Symbol label for reports"),
		OHLCV:    flag.Bool("ohlcv", false, "Input CSV is date,open,high,low,close,volume"),
		Start:    flag.String("start", "", "Series start date (YYYY-MM-DD, optional)"),
		End:      flag.String("end", "", "Series end date (YYYY-MM-DD, optional)"),

		AmountMin: flag.Float64("min", 250, "Smallest weekly contribution to test"),
		AmountMax: flag.Float64("max", 2500, "Largest weekly contribution to test"),
		StepSize:  flag.Float64("step", 50, "Grid step between candidate amounts"),
		TopN:      flag.Int("top", 10, "Number of candidates in the objective ranking"),
		SortKey:   flag.String("sort", "total_return", "Ranking objective (total_return, sharpe_ratio, profit_factor, return_per_invested_dollar)"),
		Ascending: flag.Bool("asc", false, "Rank the objective ascending instead of descending"),

		Multiplier:        flag.Float64("multiplier", 2.0, "Contract multiplier (dollars per index point)"),
		InitialMargin:     flag.Float64("initial-margin", 1800, "Initial margin per contract"),
		MaintenanceMargin: flag.Float64("maintenance-margin", 1600, "Maintenance margin per contract"),
		Commission:        flag.Float64("commission", 0.62, "Commission per contract"),
		Slippage:          flag.Float64("slippage", 0.50, "Slippage per contract"),
		MaxContracts:      flag.Int("max-contracts", 100, "Hard cap on open contracts"),
		MinEquityRatio:    flag.Float64("min-equity-ratio", 0.05, "Minimum equity to notional ratio"),
		MaxAddsPerWeek:    flag.Int("max-adds", 1, "Maximum contract adds per week"),

		Workers:     flag.Int("workers", 0, "Worker pool size (0 = number of cores)"),
		Timeout:     flag.String("timeout", "", "Sweep deadline, e.g. 30s (optional)"),
		MetricsAddr: flag.String("metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9090 (optional)"),

		JSONOut:  flag.String("json", "", "Write the report as JSON to this path"),
		ExcelOut: flag.String("excel", "", "Write the report as an Excel workbook to this path"),
		EnvFile:  flag.String("env", ".env", "Environment file to load"),
		Verbose:  flag.Bool("verbose", false, "Verbose logging"),

		ShowVersion: flag.Bool("version", false, "Show version and exit"),
	}
}

// Validate checks flag combinations before the sweep starts.
func ValidateSweepFlags(flags *SweepFlags) error {
	if *flags.ShowVersion {
		return nil
	}
	if *flags.DataFile == "" {
		return fmt.Errorf("-data is required")
	}
	return nil
}
