package database

import (
	"time"

	"go-ferreteria-pos/internal/models"

	"github.com/shopspring/decimal"
)

// SalesSummary aggregates sales over a date range.
type SalesSummary struct {
	TotalRevenue decimal.Decimal
	TotalCount   int64
}

// GetSalesSummary sums revenue and counts sales between start and end.
func GetSalesSummary(start, end time.Time) (*SalesSummary, error) {
	var summary SalesSummary

	// COALESCE ensures we get 0 instead of NULL when there are no sales
	var revenue decimal.NullDecimal
	err := DB.Model(&models.Sale{}).
		Where("date BETWEEN ? AND ?", start, end).
		Select("COALESCE(SUM(total), 0)").
		Scan(&revenue).Error
	if err != nil {
		return nil, err
	}
	if revenue.Valid {
		summary.TotalRevenue = revenue.Decimal
	}

	err = DB.Model(&models.Sale{}).
		Where("date BETWEEN ? AND ?", start, end).
		Count(&summary.TotalCount).Error
	if err != nil {
		return nil, err
	}

	return &summary, nil
}
