package main

import (
	"flag"
	"fmt"
)

// SimulateFlags holds all command line flags for the single-simulation
// command.
type SimulateFlags struct {
	DataFile *string
	Symbol   *string
	OHLCV    *bool
	Start    *string
	End      *string

	WeeklyAmount *float64

	Multiplier        *float64
	InitialMargin     *float64
	MaintenanceMargin *float64
	Commission        *float64
	Slippage          *float64
	MaxContracts      *int
	MinEquityRatio    *float64
	MaxAddsPerWeek    *int

	JSONOut *string
	EnvFile *string
	Verbose *bool

	ShowVersion *bool
}

// NewSimulateFlags registers all command line flags.
func NewSimulateFlags() *SimulateFlags {
	return &SimulateFlags{
		DataFile: flag.String("data", "", "Path to close-price CSV file (required)"),
		Symbol:   flag.String("symbol", "MNQ", "Symbol label for reports"),
		OHLCV:    flag.Bool("ohlcv", false, "Input CSV is date,open,high,low,close,volume"),
		Start:    flag.String("start", "", "Series start date (YYYY-MM-DD, optional)"),
		End:      flag.String("end", "", "Series end date (YYYY-MM-DD, optional)"),

		WeeklyAmount: flag.Float64("amount", 1000, "Weekly contribution amount"),

		Multiplier:        flag.Float64("multiplier", 2.0, "Contract multiplier (dollars per index point)"),
		InitialMargin:     flag.Float64("initial-margin", 1800, "Initial margin per contract"),
		MaintenanceMargin: flag.Float64("maintenance-margin", 1600, "Maintenance margin per contract"),
		Commission:        flag.Float64("commission", 0.62, "Commission per contract"),
		Slippage:          flag.Float64("slippage", 0.50, "Slippage per contract"),
		MaxContracts:      flag.Int("max-contracts", 100, "Hard cap on open contracts"),
		MinEquityRatio:    flag.Float64("min-equity-ratio", 0.05, "Minimum equity to notional ratio"),
		MaxAddsPerWeek:    flag.Int("max-adds", 1, "Maximum contract adds per week"),

		JSONOut: flag.String("json", "", "Write the simulation result as JSON to this path"),
		EnvFile: flag.String("env", ".env", "Environment file to load"),
		Verbose: flag.Bool("verbose", false, "Verbose logging"),

		ShowVersion: flag.Bool("version", false, "Show version and exit"),
	}
}

// ValidateSimulateFlags checks flag combinations before the run starts.
func ValidateSimulateFlags(flags *SimulateFlags) error {
	if *flags.ShowVersion {
		return nil
	}
	if *flags.DataFile == "" {
		return fmt.Errorf("-data is required")
	}
	return nil
}
