package handlers

import (
	"errors"
	"net/http"

	"go-ferreteria-pos/internal/apperr"
	"go-ferreteria-pos/internal/database"
	"go-ferreteria-pos/internal/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserPayload struct {
	Username  *string `json:"username"`
	Password  *string `json:"password"`
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	RoleID    *uint   `json:"role_id"`
}

func GetUsers(c *gin.Context) {
	var users []models.User
	if err := database.DB.Preload("Role").Find(&users).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func GetUser(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var user models.User
	if err := database.DB.Preload("Role").First(&user, id).Error; err != nil {
		respondError(c, storeError(err, "user"))
		return
	}
	c.JSON(http.StatusOK, user)
}

func CreateUser(c *gin.Context) {
	var payload UserPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, apperr.Validationf("invalid input"))
		return
	}
	if payload.Username == nil || *payload.Username == "" {
		respondError(c, apperr.Validationf("username is required"))
		return
	}
	if payload.Password == nil || *payload.Password == "" {
		respondError(c, apperr.Validationf("password is required"))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*payload.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, err)
		return
	}

	user := models.User{
		Username:     *payload.Username,
		PasswordHash: string(hash),
	}
	if payload.Email != nil {
		user.Email = *payload.Email
	}
	if payload.FirstName != nil {
		user.FirstName = *payload.FirstName
	}
	if payload.LastName != nil {
		user.LastName = *payload.LastName
	}
	if payload.RoleID != nil {
		if err := requireRoleExists(*payload.RoleID); err != nil {
			respondError(c, err)
			return
		}
		user.RoleID = payload.RoleID
	}

	if err := database.DB.Create(&user).Error; err != nil {
		respondError(c, storeError(err, "user"))
		return
	}
	database.DB.Preload("Role").First(&user, user.ID)
	c.JSON(http.StatusCreated, user)
}

func UpdateUser(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var user models.User
	if err := database.DB.First(&user, id).Error; err != nil {
		respondError(c, storeError(err, "user"))
		return
	}

	var payload UserPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, apperr.Validationf("invalid input"))
		return
	}

	if payload.Username != nil {
		user.Username = *payload.Username
	}
	if payload.Password != nil && *payload.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*payload.Password), bcrypt.DefaultCost)
		if err != nil {
			respondError(c, err)
			return
		}
		user.PasswordHash = string(hash)
	}
	if payload.Email != nil {
		user.Email = *payload.Email
	}
	if payload.FirstName != nil {
		user.FirstName = *payload.FirstName
	}
	if payload.LastName != nil {
		user.LastName = *payload.LastName
	}
	if payload.RoleID != nil {
		if err := requireRoleExists(*payload.RoleID); err != nil {
			respondError(c, err)
			return
		}
		user.RoleID = payload.RoleID
	}

	if err := database.DB.Save(&user).Error; err != nil {
		respondError(c, storeError(err, "user"))
		return
	}
	database.DB.Preload("Role").First(&user, user.ID)
	c.JSON(http.StatusOK, user)
}

// DeleteUser keeps the user's past sales, detached from the seller.
func DeleteUser(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var user models.User
	if err := database.DB.First(&user, id).Error; err != nil {
		respondError(c, storeError(err, "user"))
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Sale{}).Where("seller_id = ?", user.ID).Update("seller_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

func requireRoleExists(roleID uint) error {
	var role models.Role
	if err := database.DB.First(&role, roleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Validationf("role %d does not exist", roleID)
		}
		return err
	}
	return nil
}
