package handlers

import (
	"errors"
	"net/http"

	"go-ferreteria-pos/internal/apperr"
	"go-ferreteria-pos/internal/database"
	"go-ferreteria-pos/internal/models"
	"go-ferreteria-pos/internal/sales"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SaleRequest is what the register sends. Totals, unit prices and
// subtotals are never taken from the client; anything sent is ignored.
type SaleRequest struct {
	Client *uint `json:"client"`
	Seller *uint `json:"seller"`
	Lines  []struct {
		Product  uint `json:"product"`
		Quantity int  `json:"quantity"`
	} `json:"lines"`
}

func GetSales(c *gin.Context) {
	var list []models.Sale
	err := database.DB.
		Preload("Lines").
		Preload("Lines.Product").
		Preload("Client").
		Preload("Seller").
		Order("date desc").
		Find(&list).Error
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func GetSale(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var sale models.Sale
	err = database.DB.
		Preload("Lines").
		Preload("Lines.Product").
		Preload("Client").
		Preload("Seller").
		First(&sale, id).Error
	if err != nil {
		respondError(c, storeError(err, "sale"))
		return
	}
	c.JSON(http.StatusOK, sale)
}

// CreateSale runs the pricing workflow. The seller defaults to the
// authenticated user when the body names none.
func CreateSale(c *gin.Context) {
	var req SaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validationf("invalid request body"))
		return
	}

	if req.Client != nil {
		var client models.Client
		if err := database.DB.First(&client, *req.Client).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respondError(c, apperr.Validationf("client %d does not exist", *req.Client))
				return
			}
			respondError(c, err)
			return
		}
	}

	if req.Seller != nil {
		var user models.User
		if err := database.DB.First(&user, *req.Seller).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				respondError(c, apperr.Validationf("seller %d does not exist", *req.Seller))
				return
			}
			respondError(c, err)
			return
		}
	}

	seller := req.Seller
	if seller == nil {
		seller = currentUserID(c)
	}

	lines := make([]sales.LineInput, 0, len(req.Lines))
	for _, line := range req.Lines {
		lines = append(lines, sales.LineInput{ProductID: line.Product, Quantity: line.Quantity})
	}

	sale, err := sales.Create(database.DB, req.Client, seller, lines)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sale)
}

// DeleteSale removes the sale and all of its lines together.
func DeleteSale(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var sale models.Sale
	if err := database.DB.First(&sale, id).Error; err != nil {
		respondError(c, storeError(err, "sale"))
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sale_id = ?", sale.ID).Delete(&models.SaleLine{}).Error; err != nil {
			return err
		}
		return tx.Delete(&sale).Error
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sale deleted successfully"})
}

// Sale lines are read-only: they exist from the moment their sale is
// created and disappear with it.

func GetSaleLines(c *gin.Context) {
	var lines []models.SaleLine
	if err := database.DB.Preload("Product").Find(&lines).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lines)
}

func GetSaleLine(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var line models.SaleLine
	if err := database.DB.Preload("Product").First(&line, id).Error; err != nil {
		respondError(c, storeError(err, "sale line"))
		return
	}
	c.JSON(http.StatusOK, line)
}
