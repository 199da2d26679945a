package handlers

import (
	"net/http"

	"go-ferreteria-pos/internal/apperr"
	"go-ferreteria-pos/internal/database"
	"go-ferreteria-pos/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RolePayload struct {
	Name *string `json:"name"`
}

func GetRoles(c *gin.Context) {
	var roles []models.Role
	if err := database.DB.Find(&roles).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, roles)
}

func GetRole(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var role models.Role
	if err := database.DB.First(&role, id).Error; err != nil {
		respondError(c, storeError(err, "role"))
		return
	}
	c.JSON(http.StatusOK, role)
}

func CreateRole(c *gin.Context) {
	var payload RolePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, apperr.Validationf("invalid input"))
		return
	}
	if payload.Name == nil || *payload.Name == "" {
		respondError(c, apperr.Validationf("name is required"))
		return
	}

	role := models.Role{Name: *payload.Name}
	if err := database.DB.Create(&role).Error; err != nil {
		respondError(c, storeError(err, "role"))
		return
	}
	c.JSON(http.StatusCreated, role)
}

func UpdateRole(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var role models.Role
	if err := database.DB.First(&role, id).Error; err != nil {
		respondError(c, storeError(err, "role"))
		return
	}

	var payload RolePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, apperr.Validationf("invalid input"))
		return
	}
	if payload.Name != nil {
		role.Name = *payload.Name
	}

	if err := database.DB.Save(&role).Error; err != nil {
		respondError(c, storeError(err, "role"))
		return
	}
	c.JSON(http.StatusOK, role)
}

// DeleteRole detaches the role from its users before removing it, so
// those users simply fall back to "no elevated permissions".
func DeleteRole(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var role models.Role
	if err := database.DB.First(&role, id).Error; err != nil {
		respondError(c, storeError(err, "role"))
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("role_id = ?", role.ID).Update("role_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&role).Error
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Role deleted successfully"})
}
