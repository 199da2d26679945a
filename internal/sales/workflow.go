// Package sales implements the sale-creation workflow: price each
// requested line from the catalog, persist the header plus its lines as
// one transaction, and store the computed total.
package sales

import (
	"errors"

	"go-ferreteria-pos/internal/apperr"
	"go-ferreteria-pos/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LineInput is one requested (product, quantity) pair.
type LineInput struct {
	ProductID uint
	Quantity  int
}

// Create builds and persists a sale atomically.
//
// Each line's unit price is read from the product row inside the
// transaction and stored as a snapshot; the line subtotal and the sale
// total are computed in exact decimal arithmetic. Any failure (unknown
// product, write error) rolls back the header, every line, and the
// total update together - a partial sale is never visible.
func Create(db *gorm.DB, clientID, sellerID *uint, lines []LineInput) (*models.Sale, error) {
	// Input checks happen before anything is written.
	if len(lines) == 0 {
		return nil, apperr.Validationf("a sale needs at least one line")
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, apperr.Validationf("quantity must be a positive integer, got %d", line.Quantity)
		}
	}

	sale := &models.Sale{
		Total:    decimal.Zero,
		ClientID: clientID,
		SellerID: sellerID,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(sale).Error; err != nil {
			return err
		}

		total := decimal.Zero
		for _, line := range lines {
			// Live read: the price at the moment this transaction
			// looks is the price of record for the line.
			var product models.Product
			if err := tx.First(&product, line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.NotFoundf("product %d does not exist", line.ProductID)
				}
				return err
			}

			unitPrice := product.Price
			subtotal := unitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))

			saleLine := models.SaleLine{
				SaleID:    sale.ID,
				ProductID: product.ID,
				Quantity:  line.Quantity,
				UnitPrice: unitPrice,
				Subtotal:  subtotal,
			}
			if err := tx.Create(&saleLine).Error; err != nil {
				return err
			}

			total = total.Add(subtotal)
		}

		sale.Total = total
		return tx.Model(sale).Update("total", total).Error
	})
	if err != nil {
		return nil, err
	}

	// Return the sale as stored, lines and product refs included.
	if err := db.Preload("Lines").Preload("Lines.Product").First(sale, sale.ID).Error; err != nil {
		return nil, err
	}
	return sale, nil
}
