package services

import (
	"sort"

	"github.com/larissa-mendes/sales-dashboard-api/models"
)

// DailyRow is one calendar day of the daily transactions table.
// AmountDelta and TransactionCountDelta are day-over-day percentage
// changes; nil marks an undefined delta (the first day, or a prior
// value of zero — never ±Inf).
type DailyRow struct {
	Date                  string   `json:"date"`
	TotalAmount           float64  `json:"total_amount"`
	AmountDelta           *float64 `json:"amount_delta"`
	TransactionCount      int64    `json:"transaction_count"`
	TransactionCountDelta *float64 `json:"transaction_count_delta"`
}

// RangeSummary aggregates the daily table over the whole active range.
// The mean deltas ignore undefined entries and are nil themselves when
// no delta is defined.
type RangeSummary struct {
	TotalTransactions         int64    `json:"total_transactions"`
	TotalAmount               float64  `json:"total_amount"`
	MeanAmount                float64  `json:"mean_amount"`
	MinAmount                 float64  `json:"min_amount"`
	MaxAmount                 float64  `json:"max_amount"`
	MeanAmountDelta           *float64 `json:"mean_amount_delta"`
	MeanTransactionCountDelta *float64 `json:"mean_transaction_count_delta"`
}

// DailyReport is the daily aggregator output. Summary is nil when the
// filtered order set is empty — the caller reports "no data" instead
// of dividing by an empty day count.
type DailyReport struct {
	Days    []DailyRow    `json:"days"`
	Summary *RangeSummary `json:"summary"`
}

// AggregateDaily groups the filtered orders by the calendar date of
// their purchase timestamp (stored timezone, no conversion) and sums
// payment values per day. An order with several payment rows
// contributes every row to its day's total; that multiplicity is a
// property of the source data and is preserved.
func AggregateDaily(ds *models.Dataset, orders []*models.Order) DailyReport {
	type bucket struct {
		amount float64
		count  int64
	}
	buckets := map[string]*bucket{}

	for _, order := range orders {
		if order.PurchaseTimestamp == nil {
			continue
		}
		date := order.PurchaseTimestamp.Format("2006-01-02")
		b, ok := buckets[date]
		if !ok {
			b = &bucket{}
			buckets[date] = b
		}
		b.count++
		for _, payment := range ds.PaymentsByOrder[order.OrderID] {
			b.amount += payment.Value
		}
	}

	if len(buckets) == 0 {
		return DailyReport{Days: []DailyRow{}}
	}

	dates := make([]string, 0, len(buckets))
	for date := range buckets {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	days := make([]DailyRow, 0, len(dates))
	for i, date := range dates {
		b := buckets[date]
		row := DailyRow{
			Date:             date,
			TotalAmount:      b.amount,
			TransactionCount: b.count,
		}
		if i > 0 {
			prev := buckets[dates[i-1]]
			row.AmountDelta = pctChange(prev.amount, b.amount)
			row.TransactionCountDelta = pctChange(float64(prev.count), float64(b.count))
		}
		days = append(days, row)
	}

	summary := &RangeSummary{
		MinAmount: days[0].TotalAmount,
		MaxAmount: days[0].TotalAmount,
	}
	var amountDeltaSum, countDeltaSum float64
	var amountDeltaN, countDeltaN int
	for _, row := range days {
		summary.TotalTransactions += row.TransactionCount
		summary.TotalAmount += row.TotalAmount
		if row.TotalAmount < summary.MinAmount {
			summary.MinAmount = row.TotalAmount
		}
		if row.TotalAmount > summary.MaxAmount {
			summary.MaxAmount = row.TotalAmount
		}
		if row.AmountDelta != nil {
			amountDeltaSum += *row.AmountDelta
			amountDeltaN++
		}
		if row.TransactionCountDelta != nil {
			countDeltaSum += *row.TransactionCountDelta
			countDeltaN++
		}
	}
	summary.MeanAmount = summary.TotalAmount / float64(len(days))
	if amountDeltaN > 0 {
		mean := amountDeltaSum / float64(amountDeltaN)
		summary.MeanAmountDelta = &mean
	}
	if countDeltaN > 0 {
		mean := countDeltaSum / float64(countDeltaN)
		summary.MeanTransactionCountDelta = &mean
	}

	return DailyReport{Days: days, Summary: summary}
}

// pctChange returns the percentage change from prev to cur, or nil
// when prev is zero and the change would be infinite
func pctChange(prev, cur float64) *float64 {
	if prev == 0 {
		return nil
	}
	delta := (cur - prev) / prev * 100
	return &delta
}
