package handlers

import (
	"net/http"

	"go-ferreteria-pos/internal/apperr"
	"go-ferreteria-pos/internal/database"
	"go-ferreteria-pos/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CategoryPayload struct {
	Name          *string `json:"name"`
	Description   *string `json:"description"`
	AisleLocation *string `json:"aisle_location"`
	Active        *bool   `json:"active"`
}

func GetCategories(c *gin.Context) {
	var categories []models.Category
	if err := database.DB.Find(&categories).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func GetCategory(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var category models.Category
	if err := database.DB.First(&category, id).Error; err != nil {
		respondError(c, storeError(err, "category"))
		return
	}
	c.JSON(http.StatusOK, category)
}

func CreateCategory(c *gin.Context) {
	var payload CategoryPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, apperr.Validationf("invalid input"))
		return
	}
	if payload.Name == nil || *payload.Name == "" {
		respondError(c, apperr.Validationf("name is required"))
		return
	}

	category := models.Category{Name: *payload.Name, Active: true}
	applyCategoryPayload(&category, &payload)

	if err := database.DB.Create(&category).Error; err != nil {
		respondError(c, storeError(err, "category"))
		return
	}
	c.JSON(http.StatusCreated, category)
}

func UpdateCategory(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var category models.Category
	if err := database.DB.First(&category, id).Error; err != nil {
		respondError(c, storeError(err, "category"))
		return
	}

	var payload CategoryPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, apperr.Validationf("invalid input"))
		return
	}
	if payload.Name != nil {
		category.Name = *payload.Name
	}
	applyCategoryPayload(&category, &payload)

	if err := database.DB.Save(&category).Error; err != nil {
		respondError(c, storeError(err, "category"))
		return
	}
	c.JSON(http.StatusOK, category)
}

// DeleteCategory cascades to the category's products. If any of those
// products already appears on a sale line the whole delete is refused -
// removing it would punch a hole in sales history.
func DeleteCategory(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var category models.Category
	if err := database.DB.First(&category, id).Error; err != nil {
		respondError(c, storeError(err, "category"))
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var referenced int64
		err := tx.Model(&models.SaleLine{}).
			Joins("JOIN products ON products.id = sale_lines.product_id").
			Where("products.category_id = ?", category.ID).
			Count(&referenced).Error
		if err != nil {
			return err
		}
		if referenced > 0 {
			return apperr.Conflictf("category %d has products referenced by sale lines", category.ID)
		}

		if err := tx.Where("category_id = ?", category.ID).Delete(&models.Product{}).Error; err != nil {
			return err
		}
		return tx.Delete(&category).Error
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}

func applyCategoryPayload(category *models.Category, payload *CategoryPayload) {
	if payload.Description != nil {
		category.Description = *payload.Description
	}
	if payload.AisleLocation != nil {
		category.AisleLocation = *payload.AisleLocation
	}
	if payload.Active != nil {
		category.Active = *payload.Active
	}
}
