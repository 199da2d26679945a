package handlers

import (
	"errors"
	"net/http"

	"go-ferreteria-pos/internal/apperr"
	"go-ferreteria-pos/internal/database"
	"go-ferreteria-pos/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductPayload struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
	Barcode     *string          `json:"barcode"`
	CategoryID  *uint            `json:"category_id"`
	SupplierID  *uint            `json:"supplier_id"`
}

func GetProducts(c *gin.Context) {
	var products []models.Product
	if err := database.DB.Preload("Category").Preload("Supplier").Find(&products).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func GetProduct(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var product models.Product
	if err := database.DB.Preload("Category").Preload("Supplier").First(&product, id).Error; err != nil {
		respondError(c, storeError(err, "product"))
		return
	}
	c.JSON(http.StatusOK, product)
}

// ScanProduct resolves a product by barcode - the counter-side lookup.
func ScanProduct(c *gin.Context) {
	var product models.Product
	err := database.DB.Preload("Category").Where("barcode = ?", c.Param("barcode")).First(&product).Error
	if err != nil {
		respondError(c, storeError(err, "product"))
		return
	}
	c.JSON(http.StatusOK, product)
}

func CreateProduct(c *gin.Context) {
	var payload ProductPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, apperr.Validationf("invalid input"))
		return
	}
	if payload.Name == nil || *payload.Name == "" {
		respondError(c, apperr.Validationf("name is required"))
		return
	}
	if payload.Barcode == nil || *payload.Barcode == "" {
		respondError(c, apperr.Validationf("barcode is required"))
		return
	}
	if payload.Price == nil {
		respondError(c, apperr.Validationf("price is required"))
		return
	}
	if payload.CategoryID == nil {
		respondError(c, apperr.Validationf("category_id is required"))
		return
	}

	product := models.Product{
		Name:       *payload.Name,
		Barcode:    *payload.Barcode,
		Price:      *payload.Price,
		CategoryID: *payload.CategoryID,
	}
	if err := applyProductPayload(&product, &payload); err != nil {
		respondError(c, err)
		return
	}

	if err := database.DB.Create(&product).Error; err != nil {
		respondError(c, storeError(err, "product"))
		return
	}
	c.JSON(http.StatusCreated, product)
}

func UpdateProduct(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var product models.Product
	if err := database.DB.First(&product, id).Error; err != nil {
		respondError(c, storeError(err, "product"))
		return
	}

	var payload ProductPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, apperr.Validationf("invalid input"))
		return
	}
	if payload.Name != nil {
		product.Name = *payload.Name
	}
	if payload.Barcode != nil {
		product.Barcode = *payload.Barcode
	}
	if payload.Price != nil {
		product.Price = *payload.Price
	}
	if payload.CategoryID != nil {
		product.CategoryID = *payload.CategoryID
	}
	if err := applyProductPayload(&product, &payload); err != nil {
		respondError(c, err)
		return
	}

	if err := database.DB.Save(&product).Error; err != nil {
		respondError(c, storeError(err, "product"))
		return
	}
	c.JSON(http.StatusOK, product)
}

// DeleteProduct refuses to remove a product any sale line still points
// at; that snapshot is the sales history.
func DeleteProduct(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var product models.Product
	if err := database.DB.First(&product, id).Error; err != nil {
		respondError(c, storeError(err, "product"))
		return
	}

	var referenced int64
	if err := database.DB.Model(&models.SaleLine{}).Where("product_id = ?", product.ID).Count(&referenced).Error; err != nil {
		respondError(c, err)
		return
	}
	if referenced > 0 {
		respondError(c, apperr.Conflictf("product %d is referenced by %d sale line(s)", product.ID, referenced))
		return
	}

	if err := database.DB.Delete(&product).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// applyProductPayload handles the shared optional fields plus the
// invariants: price >= 0, stock >= 0, category and supplier must exist.
func applyProductPayload(product *models.Product, payload *ProductPayload) error {
	if payload.Description != nil {
		product.Description = *payload.Description
	}
	if payload.Stock != nil {
		if *payload.Stock < 0 {
			return apperr.Validationf("stock must not be negative, got %d", *payload.Stock)
		}
		product.Stock = *payload.Stock
	}
	if payload.SupplierID != nil {
		var supplier models.Supplier
		if err := database.DB.First(&supplier, *payload.SupplierID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.Validationf("supplier %d does not exist", *payload.SupplierID)
			}
			return err
		}
		product.SupplierID = payload.SupplierID
	}

	if product.Price.IsNegative() {
		return apperr.Validationf("price must not be negative")
	}

	var category models.Category
	if err := database.DB.First(&category, product.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Validationf("category %d does not exist", product.CategoryID)
		}
		return err
	}
	return nil
}
