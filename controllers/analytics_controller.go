package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/larissa-mendes/sales-dashboard-api/models"
	"github.com/larissa-mendes/sales-dashboard-api/services"
	"github.com/larissa-mendes/sales-dashboard-api/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// parseFilterSpec builds the filter specification from the request's
// query parameters. start_date/end_date must be given together; when
// absent the snapshot's full purchase range is used. An absent list
// parameter leaves that predicate out of scope; a present-but-empty
// one rejects every row. On a validation error it writes the 400
// response and returns ok=false.
func parseFilterSpec(c *gin.Context, ds *models.Dataset) (services.FilterSpec, bool) {
	spec := services.FilterSpec{}

	startRaw, hasStart := c.GetQuery("start_date")
	endRaw, hasEnd := c.GetQuery("end_date")

	switch {
	case hasStart != hasEnd:
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "start_date and end_date must be provided together",
			},
		})
		return spec, false
	case hasStart:
		start, err := utils.ParseDate(startRaw)
		if err != nil {
			respondBadDate(c, "start_date", startRaw)
			return spec, false
		}
		end, err := utils.ParseDate(endRaw)
		if err != nil {
			respondBadDate(c, "end_date", endRaw)
			return spec, false
		}
		spec.StartDate = start
		spec.EndDate = end
	default:
		// No explicit range: cover the whole snapshot
		if min, max, ok := ds.PurchaseRange(); ok {
			spec.StartDate = min
			spec.EndDate = max
		}
	}

	if raw, ok := c.GetQuery("status"); ok {
		spec.Statuses = utils.SplitList(raw)
	}
	if raw, ok := c.GetQuery("category"); ok {
		spec.Categories = utils.SplitList(raw)
	}
	if raw, ok := c.GetQuery("city"); ok {
		spec.Cities = utils.SplitList(raw)
	}
	if raw, ok := c.GetQuery("state"); ok {
		spec.States = utils.SplitList(raw)
	}

	return spec, true
}

func respondBadDate(c *gin.Context, param, value string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "VALIDATION_ERROR",
			"message": fmt.Sprintf("%s must be a YYYY-MM-DD date, got %q", param, value),
		},
	})
}

// GetAnalyticsSummary handles GET /api/v1/analytics/summary - the
// scalar dashboard metrics for the active filters
func GetAnalyticsSummary(c *gin.Context) {
	ds := services.GetDataset()
	spec, ok := parseFilterSpec(c, ds)
	if !ok {
		return
	}

	orders := services.FilterOrders(ds, spec)
	report := services.AggregateDaily(ds, orders)
	items := services.FilterOrderItems(ds, orders, spec)
	ranking := services.RankCategories(items)

	if report.Summary == nil {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    gin.H{"no_data": true},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"no_data":                      false,
			"total_transactions":           report.Summary.TotalTransactions,
			"total_amount":                 report.Summary.TotalAmount,
			"mean_amount":                  report.Summary.MeanAmount,
			"min_amount":                   report.Summary.MinAmount,
			"max_amount":                   report.Summary.MaxAmount,
			"mean_amount_delta":            report.Summary.MeanAmountDelta,
			"mean_transaction_count_delta": report.Summary.MeanTransactionCountDelta,
			"most_bought_category":         ranking.MostBought,
			"least_bought_category":        ranking.LeastBought,
		},
	})
}

// GetDailyReport handles GET /api/v1/analytics/daily - the per-day
// transactions table with day-over-day deltas and the range summary
func GetDailyReport(c *gin.Context) {
	ds := services.GetDataset()
	spec, ok := parseFilterSpec(c, ds)
	if !ok {
		return
	}

	orders := services.FilterOrders(ds, spec)
	report := services.AggregateDaily(ds, orders)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"no_data": len(report.Days) == 0,
			"days":    report.Days,
			"summary": report.Summary,
		},
	})
}

// GetCategoryRanking handles GET /api/v1/analytics/categories - the
// category popularity ranking
func GetCategoryRanking(c *gin.Context) {
	ds := services.GetDataset()
	spec, ok := parseFilterSpec(c, ds)
	if !ok {
		return
	}

	orders := services.FilterOrders(ds, spec)
	items := services.FilterOrderItems(ds, orders, spec)
	ranking := services.RankCategories(items)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"no_data":      len(ranking.Categories) == 0,
			"categories":   ranking.Categories,
			"most_bought":  ranking.MostBought,
			"least_bought": ranking.LeastBought,
		},
	})
}

// GetTopStates handles GET /api/v1/analytics/states - the top 5
// states per category with their share of the category total
func GetTopStates(c *gin.Context) {
	ds := services.GetDataset()
	spec, ok := parseFilterSpec(c, ds)
	if !ok {
		return
	}

	orders := services.FilterOrders(ds, spec)
	items := services.FilterOrderItems(ds, orders, spec)
	crossTab := services.CrossTabulate(ds, items)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"no_data":    len(crossTab.TopStates) == 0,
			"top_states": crossTab.TopStates,
		},
	})
}

// GetCategoryStateMatrix handles GET /api/v1/analytics/matrix - the
// full category × state count matrix with zero fill
func GetCategoryStateMatrix(c *gin.Context) {
	ds := services.GetDataset()
	spec, ok := parseFilterSpec(c, ds)
	if !ok {
		return
	}

	orders := services.FilterOrders(ds, spec)
	items := services.FilterOrderItems(ds, orders, spec)
	crossTab := services.CrossTabulate(ds, items)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"no_data": len(crossTab.Matrix.States) == 0,
			"matrix":  crossTab.Matrix,
		},
	})
}

// ExportAnalytics handles GET /api/v1/analytics/export - every
// derived table rendered into one XLSX workbook
func ExportAnalytics(c *gin.Context) {
	ds := services.GetDataset()
	spec, ok := parseFilterSpec(c, ds)
	if !ok {
		return
	}

	orders := services.FilterOrders(ds, spec)
	report := services.AggregateDaily(ds, orders)
	items := services.FilterOrderItems(ds, orders, spec)
	ranking := services.RankCategories(items)
	crossTab := services.CrossTabulate(ds, items)

	workbook, err := services.BuildAnalyticsWorkbook(report, ranking, crossTab)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "EXPORT_ERROR",
				"message": "Failed to build analytics workbook",
			},
		})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", services.ExportFilename))
	c.Data(http.StatusOK, xlsxContentType, workbook)
}
