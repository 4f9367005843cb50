package controllers

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/larissa-mendes/sales-dashboard-api/config"
	"github.com/larissa-mendes/sales-dashboard-api/models"
	"github.com/larissa-mendes/sales-dashboard-api/services"
	"github.com/larissa-mendes/sales-dashboard-api/utils"
)

// DatabaseStatus checks database connectivity and returns table information
func DatabaseStatus(c *gin.Context) {
	db := config.GetDB()

	// Get the underlying SQL database to check connection
	sqlDB, err := db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to get database instance",
			},
		})
		return
	}

	// Ping the database to verify connection
	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_CONNECTION_ERROR",
				"message": "Database connection failed",
			},
		})
		return
	}

	// List tables through the migrator so this works on both SQLite
	// and PostgreSQL
	tables, err := db.Migrator().GetTables()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_QUERY_ERROR",
				"message": "Failed to query tables",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"tables":  tables,
	})
}

// DatasetStatus handles GET /api/v1/dataset/status - per-table row
// counts from the store plus the snapshot's purchase timestamp range
func DatasetStatus(c *gin.Context) {
	db := config.GetDB()
	ds := services.GetDataset()

	counts := gin.H{}
	for _, table := range []struct {
		name  string
		model interface{}
	}{
		{"orders", &models.Order{}},
		{"customers", &models.Customer{}},
		{"products", &models.Product{}},
		{"category_translations", &models.CategoryTranslation{}},
		{"order_items", &models.OrderItem{}},
		{"payments", &models.Payment{}},
	} {
		var count int64
		if err := db.Model(table.model).Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_QUERY_ERROR",
					"message": "Failed to count rows in " + table.name,
				},
			})
			return
		}
		counts[table.name] = count
	}

	data := gin.H{"row_counts": counts}
	if min, max, ok := ds.PurchaseRange(); ok {
		data["purchase_range"] = gin.H{
			"start": min.Format(utils.TimestampLayout),
			"end":   max.Format(utils.TimestampLayout),
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    data,
	})
}

// GetFilterOptions handles GET /api/v1/filters/options - the distinct
// values a dashboard frontend offers in its filter widgets
func GetFilterOptions(c *gin.Context) {
	ds := services.GetDataset()

	statuses := map[string]bool{}
	for i := range ds.Orders {
		statuses[ds.Orders[i].OrderStatus] = true
	}

	cities := map[string]bool{}
	states := map[string]bool{}
	for i := range ds.Customers {
		cities[ds.Customers[i].City] = true
		states[ds.Customers[i].State] = true
	}

	categories := map[string]bool{}
	for i := range ds.Translations {
		categories[ds.Translations[i].CategoryNameEnglish] = true
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"statuses":   sortedKeys(statuses),
			"categories": sortedKeys(categories),
			"cities":     sortedKeys(cities),
			"states":     sortedKeys(states),
		},
	})
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
