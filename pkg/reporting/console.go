package reporting

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/mnq-invest/futures-sim/pkg/types"
)

// ConsoleReporter renders simulation ledgers and sweep reports as terminal
// tables.
type ConsoleReporter struct {
	out io.Writer
}

// NewConsoleReporter creates a reporter writing to out.
func NewConsoleReporter(out io.Writer) *ConsoleReporter {
	return &ConsoleReporter{out: out}
}

// RenderLedger prints the full per-week ledger of one simulation.
func (r *ConsoleReporter) RenderLedger(result *types.SimulationResult) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetTitle("WEEKLY LEDGER")
	t.SetStyle(table.StyleRounded)

	t.AppendHeader(table.Row{"Week", "Date", "Price", "Adds", "Contracts", "Invested", "Equity", "Notional", "Maint. Req", "PnL", "Return %", "TWR"})
	for _, rec := range result.WeeklyRecords {
		t.AppendRow(table.Row{
			rec.WeekIndex,
			rec.Date.Format("2006-01-02"),
			fmt.Sprintf("%.2f", rec.Price),
			rec.ContractsAdded,
			rec.TotalContracts,
			fmt.Sprintf("$%.2f", rec.TotalInvested),
			fmt.Sprintf("$%.2f", rec.Equity),
			fmt.Sprintf("$%.2f", rec.PositionNotional),
			fmt.Sprintf("$%.2f", rec.RequiredMaintenanceMargin),
			fmt.Sprintf("$%.2f", rec.PnL),
			fmt.Sprintf("%.2f%%", rec.ReturnPct),
			fmt.Sprintf("%.4f", rec.TimeWeightedReturn),
		})
	}
	t.AppendFooter(table.Row{"", "", "", "", result.TotalContracts, fmt.Sprintf("$%.2f", result.TotalInvested), fmt.Sprintf("$%.2f", result.FinalEquity)})
	t.Render()
}

// RenderMetrics prints one candidate's performance metrics.
func (r *ConsoleReporter) RenderMetrics(metrics types.PerformanceMetrics) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetTitle("PERFORMANCE")
	t.SetStyle(table.StyleRounded)

	t.AppendRows([]table.Row{
		{"📈 Total Return", fmt.Sprintf("%.2f%%", metrics.TotalReturnPct)},
		{"📈 CAGR", fmt.Sprintf("%.2f%%", metrics.CAGR)},
		{"📊 Volatility (ann.)", fmt.Sprintf("%.2f%%", metrics.VolatilityAnnualized)},
		{"📊 Sharpe Ratio", fmt.Sprintf("%.2f", metrics.SharpeRatio)},
		{"📉 Max Drawdown", fmt.Sprintf("%.2f%%", metrics.MaxDrawdownPct)},
		{"💹 Profit Factor", fmt.Sprintf("%.2f", metrics.ProfitFactor)},
		{"✅ Win Rate", fmt.Sprintf("%.2f%%", metrics.WinRatePct)},
	})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: 20, Align: text.AlignLeft},
		{Number: 2, WidthMin: 12, Align: text.AlignRight},
	})
	t.Render()
}

// RenderReport prints the sweep summary and both rankings.
func (r *ConsoleReporter) RenderReport(report *types.OptimizationReport) {
	r.renderSummary(report.Summary)
	r.renderRanking("TOP BY "+string(report.Summary.SortKey), report.TopByObjective)
	r.renderRanking("TOP BY DOLLAR PROFIT", report.TopByDollarProfit)
}

func (r *ConsoleReporter) renderSummary(summary types.SweepSummary) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetTitle("SWEEP SUMMARY")
	t.SetStyle(table.StyleRounded)

	direction := "ascending"
	if summary.Descending {
		direction = "descending"
	}

	t.AppendRows([]table.Row{
		{"🧮 Grid Points", summary.GridSize},
		{"✅ Evaluated", summary.Evaluated},
		{"❌ Failed", summary.Failed},
		{"📅 Weeks", summary.Weeks},
		{"🔑 Sort Key", fmt.Sprintf("%s (%s)", summary.SortKey, direction)},
		{"⏱  Duration", summary.Duration.Round(time.Millisecond)},
	})
	t.Render()
}

func (r *ConsoleReporter) renderRanking(title string, candidates []types.SweepCandidate) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetTitle(title)
	t.SetStyle(table.StyleRounded)

	t.AppendHeader(table.Row{"#", "Weekly $", "Profit $", "Return %", "Sharpe", "Vol %", "PF", "Win %", "Max DD %", "Contracts"})
	for i, c := range candidates {
		t.AppendRow(table.Row{
			i + 1,
			fmt.Sprintf("%.2f", c.WeeklyAmount),
			fmt.Sprintf("%.2f", c.DollarProfit),
			fmt.Sprintf("%.2f", c.Metrics.TotalReturnPct),
			fmt.Sprintf("%.2f", c.Metrics.SharpeRatio),
			fmt.Sprintf("%.2f", c.Metrics.VolatilityAnnualized),
			fmt.Sprintf("%.2f", c.Metrics.ProfitFactor),
			fmt.Sprintf("%.2f", c.Metrics.WinRatePct),
			fmt.Sprintf("%.2f", c.Metrics.MaxDrawdownPct),
			c.Result.TotalContracts,
		})
	}
	t.Render()
}
