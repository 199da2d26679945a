package handlers

import (
	"net/http"
	"time"

	"go-ferreteria-pos/internal/apperr"
	"go-ferreteria-pos/internal/database"
	"go-ferreteria-pos/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ReportData is the admin analytics response.
type ReportData struct {
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalSales   int64           `json:"total_sales"`
	TopSelling   []struct {
		ProductName string          `json:"product_name"`
		Sold        int             `json:"sold"`
		Revenue     decimal.Decimal `json:"revenue"`
	} `json:"top_selling"`
	RecentSales []models.Sale `json:"recent_sales"`
}

// GetSalesReport aggregates revenue and sale count (optionally windowed
// by ?start=YYYY-MM-DD&end=YYYY-MM-DD), the five best sellers and the
// ten most recent transactions.
func GetSalesReport(c *gin.Context) {
	start, end, err := reportRange(c)
	if err != nil {
		respondError(c, err)
		return
	}

	summary, err := database.GetSalesSummary(start, end)
	if err != nil {
		respondError(c, err)
		return
	}

	data := ReportData{
		TotalRevenue: summary.TotalRevenue,
		TotalSales:   summary.TotalCount,
	}

	err = database.DB.Table("sale_lines").
		Select("products.name as product_name, SUM(sale_lines.quantity) as sold, SUM(sale_lines.subtotal) as revenue").
		Joins("JOIN products ON sale_lines.product_id = products.id").
		Group("products.name").
		Order("sold desc").
		Limit(5).
		Scan(&data.TopSelling).Error
	if err != nil {
		respondError(c, err)
		return
	}

	err = database.DB.
		Preload("Lines").
		Preload("Client").
		Preload("Seller").
		Order("date desc").
		Limit(10).
		Find(&data.RecentSales).Error
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, data)
}

func reportRange(c *gin.Context) (time.Time, time.Time, error) {
	start := time.Time{}
	end := time.Now()

	if raw := c.Query("start"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return start, end, apperr.Validationf("invalid start date %q", raw)
		}
		start = parsed
	}
	if raw := c.Query("end"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return start, end, apperr.Validationf("invalid end date %q", raw)
		}
		// Include the whole end day
		end = parsed.Add(24*time.Hour - time.Nanosecond)
	}
	return start, end, nil
}
