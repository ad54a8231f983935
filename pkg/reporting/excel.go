package reporting

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/mnq-invest/futures-sim/internal/diagnostics"
	"github.com/mnq-invest/futures-sim/pkg/types"
)

// ExcelReporter writes an optimization report as a multi-sheet workbook.
type ExcelReporter struct{}

// NewExcelReporter creates a new Excel reporter.
func NewExcelReporter() *ExcelReporter {
	return &ExcelReporter{}
}

type excelStyles struct {
	header int
	money  int
	pct    int
}

// WriteReportXLSX writes the sweep summary, tested grid and both rankings.
func (r *ExcelReporter) WriteReportXLSX(report *types.OptimizationReport, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	fx := excelize.NewFile()
	defer fx.Close()

	const (
		summarySheet   = "Summary"
		objectiveSheet = "Top By Objective"
		profitSheet    = "Top By Profit"
		gridSheet      = "Grid"
		worstSheet     = "Worst Weeks"
	)

	fx.SetSheetName(fx.GetSheetName(0), summarySheet)
	for _, sheet := range []string{objectiveSheet, profitSheet, gridSheet, worstSheet} {
		if _, err := fx.NewSheet(sheet); err != nil {
			return err
		}
	}

	styles, err := r.createStyles(fx)
	if err != nil {
		return err
	}

	if err := r.writeSummarySheet(fx, summarySheet, report, styles); err != nil {
		return err
	}
	if err := r.writeRankingSheet(fx, objectiveSheet, report.TopByObjective, styles); err != nil {
		return err
	}
	if err := r.writeRankingSheet(fx, profitSheet, report.TopByDollarProfit, styles); err != nil {
		return err
	}
	if err := r.writeGridSheet(fx, gridSheet, report.TestedGrid, styles); err != nil {
		return err
	}
	if err := r.writeWorstWeekSheet(fx, worstSheet, report.TopByObjective, styles); err != nil {
		return err
	}

	return fx.SaveAs(path)
}

func (r *ExcelReporter) createStyles(fx *excelize.File) (excelStyles, error) {
	var styles excelStyles
	var err error

	styles.header, err = fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11, Color: "FFFFFF", Family: "Calibri"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"2F4F4F"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return styles, err
	}

	styles.money, err = fx.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return styles, err
	}

	styles.pct, err = fx.NewStyle(&excelize.Style{NumFmt: 2}) // 0.00
	return styles, err
}

func (r *ExcelReporter) writeSummarySheet(fx *excelize.File, sheet string, report *types.OptimizationReport, styles excelStyles) error {
	rows := [][]interface{}{
		{"Grid Points", report.Summary.GridSize},
		{"Evaluated", report.Summary.Evaluated},
		{"Failed", report.Summary.Failed},
		{"Weeks", report.Summary.Weeks},
		{"Sort Key", string(report.Summary.SortKey)},
		{"Descending", report.Summary.Descending},
		{"Duration", report.Summary.Duration.String()},
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := fx.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	fx.SetColWidth(sheet, "A", "A", 16)
	fx.SetColWidth(sheet, "B", "B", 24)
	return nil
}

func (r *ExcelReporter) writeRankingSheet(fx *excelize.File, sheet string, candidates []types.SweepCandidate, styles excelStyles) error {
	header := []interface{}{"Rank", "Weekly Amount", "Dollar Profit", "Total Return %", "CAGR %", "Sharpe", "Volatility %", "Profit Factor", "Win Rate %", "Max Drawdown %", "Final Equity", "Total Invested", "Contracts"}
	if err := fx.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	if err := fx.SetCellStyle(sheet, "A1", "M1", styles.header); err != nil {
		return err
	}

	for i, c := range candidates {
		row := []interface{}{
			i + 1,
			c.WeeklyAmount,
			c.DollarProfit,
			c.Metrics.TotalReturnPct,
			c.Metrics.CAGR,
			c.Metrics.SharpeRatio,
			c.Metrics.VolatilityAnnualized,
			c.Metrics.ProfitFactor,
			c.Metrics.WinRatePct,
			c.Metrics.MaxDrawdownPct,
			c.Result.FinalEquity,
			c.Result.TotalInvested,
			c.Result.TotalContracts,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := fx.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	if len(candidates) > 0 {
		last := len(candidates) + 1
		fx.SetCellStyle(sheet, "B2", fmt.Sprintf("C%d", last), styles.money)
		fx.SetCellStyle(sheet, "D2", fmt.Sprintf("J%d", last), styles.pct)
		fx.SetCellStyle(sheet, "K2", fmt.Sprintf("L%d", last), styles.money)
	}

	fx.SetColWidth(sheet, "A", "M", 15)
	return nil
}

func (r *ExcelReporter) writeGridSheet(fx *excelize.File, sheet string, grid []float64, styles excelStyles) error {
	header := []interface{}{"Index", "Weekly Amount"}
	if err := fx.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	if err := fx.SetCellStyle(sheet, "A1", "B1", styles.header); err != nil {
		return err
	}

	for i, amount := range grid {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{i + 1, amount}
		if err := fx.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	if len(grid) > 0 {
		fx.SetCellStyle(sheet, "B2", fmt.Sprintf("B%d", len(grid)+1), styles.money)
	}
	fx.SetColWidth(sheet, "A", "B", 15)
	return nil
}

// writeWorstWeekSheet lists the worst ledger week of each top candidate.
func (r *ExcelReporter) writeWorstWeekSheet(fx *excelize.File, sheet string, candidates []types.SweepCandidate, styles excelStyles) error {
	header := []interface{}{"Rank", "Weekly Amount", "Worst Week", "Return %", "Equity", "Contracts"}
	if err := fx.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	if err := fx.SetCellStyle(sheet, "A1", "F1", styles.header); err != nil {
		return err
	}

	for i, c := range candidates {
		worst := diagnostics.FindWorstWeek(&c.Result)
		row := []interface{}{
			i + 1,
			c.WeeklyAmount,
			worst.Date.Format("2006-01-02"),
			worst.ReturnPct,
			worst.Equity,
			worst.TotalContracts,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := fx.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	if len(candidates) > 0 {
		last := len(candidates) + 1
		fx.SetCellStyle(sheet, "B2", fmt.Sprintf("B%d", last), styles.money)
		fx.SetCellStyle(sheet, "D2", fmt.Sprintf("D%d", last), styles.pct)
		fx.SetCellStyle(sheet, "E2", fmt.Sprintf("E%d", last), styles.money)
	}
	fx.SetColWidth(sheet, "A", "F", 15)
	return nil
}
