package services

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// ExportFilename is the download name of the analytics workbook
const ExportFilename = "sales_dashboard.xlsx"

const nullCategoryLabel = "(uncategorized)"

// BuildAnalyticsWorkbook renders every derived table into one XLSX
// workbook: the range summary, the daily table, the category ranking,
// the top-states cross-tab and the full category × state matrix, one
// sheet each.
func BuildAnalyticsWorkbook(report DailyReport, ranking CategoryRanking, crossTab CrossTab) ([]byte, error) {
	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	// Rename the default sheet, then append the rest
	xl.SetSheetName(xl.GetSheetName(0), "Summary")
	for _, name := range []string{"Daily", "Categories", "Top States", "Matrix"} {
		if _, err := xl.NewSheet(name); err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	writeSummarySheet(xl, report, ranking)
	writeDailySheet(xl, report)
	writeCategorySheet(xl, ranking)
	writeTopStatesSheet(xl, crossTab)
	writeMatrixSheet(xl, crossTab)

	buf, err := xl.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSummarySheet(xl *excelize.File, report DailyReport, ranking CategoryRanking) {
	header := []string{"metric", "value"}
	_ = xl.SetSheetRow("Summary", "A1", &header)

	rows := [][]string{}
	if report.Summary == nil {
		rows = append(rows, []string{"no_data", "true"})
	} else {
		s := report.Summary
		rows = append(rows,
			[]string{"total_transactions", strconv.FormatInt(s.TotalTransactions, 10)},
			[]string{"total_amount", formatAmount(s.TotalAmount)},
			[]string{"mean_amount", formatAmount(s.MeanAmount)},
			[]string{"min_amount", formatAmount(s.MinAmount)},
			[]string{"max_amount", formatAmount(s.MaxAmount)},
			[]string{"mean_amount_delta", formatDelta(s.MeanAmountDelta)},
			[]string{"mean_transaction_count_delta", formatDelta(s.MeanTransactionCountDelta)},
		)
	}
	if ranking.MostBought != nil {
		rows = append(rows,
			[]string{"most_bought_category", categoryLabel(ranking.MostBought.Category)},
			[]string{"most_bought_count", strconv.FormatInt(ranking.MostBought.Count, 10)},
			[]string{"least_bought_category", categoryLabel(ranking.LeastBought.Category)},
			[]string{"least_bought_count", strconv.FormatInt(ranking.LeastBought.Count, 10)},
		)
	}

	for i, row := range rows {
		cellRef, _ := excelize.CoordinatesToCellName(1, i+2)
		_ = xl.SetSheetRow("Summary", cellRef, &row)
	}
}

func writeDailySheet(xl *excelize.File, report DailyReport) {
	header := []string{"date", "total_amount", "amount_delta", "transaction_count", "transaction_count_delta"}
	_ = xl.SetSheetRow("Daily", "A1", &header)

	for i, day := range report.Days {
		record := []string{
			day.Date,
			formatAmount(day.TotalAmount),
			formatDelta(day.AmountDelta),
			strconv.FormatInt(day.TransactionCount, 10),
			formatDelta(day.TransactionCountDelta),
		}
		cellRef, _ := excelize.CoordinatesToCellName(1, i+2)
		_ = xl.SetSheetRow("Daily", cellRef, &record)
	}
}

func writeCategorySheet(xl *excelize.File, ranking CategoryRanking) {
	header := []string{"category", "count"}
	_ = xl.SetSheetRow("Categories", "A1", &header)

	for i, c := range ranking.Categories {
		record := []string{categoryLabel(c.Category), strconv.FormatInt(c.Count, 10)}
		cellRef, _ := excelize.CoordinatesToCellName(1, i+2)
		_ = xl.SetSheetRow("Categories", cellRef, &record)
	}
}

func writeTopStatesSheet(xl *excelize.File, crossTab CrossTab) {
	header := []string{"category", "state", "order_count", "percentage"}
	_ = xl.SetSheetRow("Top States", "A1", &header)

	for i, share := range crossTab.TopStates {
		record := []string{
			categoryLabel(share.Category),
			share.State,
			strconv.FormatInt(share.OrderCount, 10),
			formatAmount(share.Percentage),
		}
		cellRef, _ := excelize.CoordinatesToCellName(1, i+2)
		_ = xl.SetSheetRow("Top States", cellRef, &record)
	}
}

func writeMatrixSheet(xl *excelize.File, crossTab CrossTab) {
	matrix := crossTab.Matrix

	header := make([]string, 0, len(matrix.Categories)+1)
	header = append(header, "state")
	for _, category := range matrix.Categories {
		header = append(header, categoryLabel(category))
	}
	_ = xl.SetSheetRow("Matrix", "A1", &header)

	for i, state := range matrix.States {
		record := make([]string, 0, len(matrix.Categories)+1)
		record = append(record, state)
		for _, count := range matrix.Counts[i] {
			record = append(record, strconv.FormatInt(count, 10))
		}
		cellRef, _ := excelize.CoordinatesToCellName(1, i+2)
		_ = xl.SetSheetRow("Matrix", cellRef, &record)
	}
}

func categoryLabel(category *string) string {
	if category == nil {
		return nullCategoryLabel
	}
	return *category
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatDelta(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}
