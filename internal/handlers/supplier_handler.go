package handlers

import (
	"net/http"

	"go-ferreteria-pos/internal/apperr"
	"go-ferreteria-pos/internal/database"
	"go-ferreteria-pos/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SupplierPayload struct {
	CompanyName *string `json:"company_name"`
	ContactName *string `json:"contact_name"`
	Phone       *string `json:"phone"`
	Email       *string `json:"email"`
	Address     *string `json:"address"`
}

func GetSuppliers(c *gin.Context) {
	var suppliers []models.Supplier
	if err := database.DB.Find(&suppliers).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, suppliers)
}

func GetSupplier(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var supplier models.Supplier
	if err := database.DB.First(&supplier, id).Error; err != nil {
		respondError(c, storeError(err, "supplier"))
		return
	}
	c.JSON(http.StatusOK, supplier)
}

func CreateSupplier(c *gin.Context) {
	var payload SupplierPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, apperr.Validationf("invalid input"))
		return
	}
	if payload.CompanyName == nil || *payload.CompanyName == "" {
		respondError(c, apperr.Validationf("company_name is required"))
		return
	}
	if payload.Email == nil || *payload.Email == "" {
		respondError(c, apperr.Validationf("email is required"))
		return
	}

	supplier := models.Supplier{
		CompanyName: *payload.CompanyName,
		Email:       *payload.Email,
	}
	applySupplierPayload(&supplier, &payload)

	if err := database.DB.Create(&supplier).Error; err != nil {
		respondError(c, storeError(err, "supplier"))
		return
	}
	c.JSON(http.StatusCreated, supplier)
}

func UpdateSupplier(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var supplier models.Supplier
	if err := database.DB.First(&supplier, id).Error; err != nil {
		respondError(c, storeError(err, "supplier"))
		return
	}

	var payload SupplierPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, apperr.Validationf("invalid input"))
		return
	}
	if payload.CompanyName != nil {
		supplier.CompanyName = *payload.CompanyName
	}
	if payload.Email != nil {
		supplier.Email = *payload.Email
	}
	applySupplierPayload(&supplier, &payload)

	if err := database.DB.Save(&supplier).Error; err != nil {
		respondError(c, storeError(err, "supplier"))
		return
	}
	c.JSON(http.StatusOK, supplier)
}

// DeleteSupplier leaves the supplier's products in place, unsourced.
func DeleteSupplier(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var supplier models.Supplier
	if err := database.DB.First(&supplier, id).Error; err != nil {
		respondError(c, storeError(err, "supplier"))
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Product{}).Where("supplier_id = ?", supplier.ID).Update("supplier_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&supplier).Error
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Supplier deleted successfully"})
}

func applySupplierPayload(supplier *models.Supplier, payload *SupplierPayload) {
	if payload.ContactName != nil {
		supplier.ContactName = *payload.ContactName
	}
	if payload.Phone != nil {
		supplier.Phone = *payload.Phone
	}
	if payload.Address != nil {
		supplier.Address = *payload.Address
	}
}
