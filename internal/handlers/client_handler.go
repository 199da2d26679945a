package handlers

import (
	"net/http"

	"go-ferreteria-pos/internal/apperr"
	"go-ferreteria-pos/internal/database"
	"go-ferreteria-pos/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ClientPayload struct {
	FirstName  *string `json:"first_name"`
	LastName   *string `json:"last_name"`
	NationalID *string `json:"national_id"`
	Phone      *string `json:"phone"`
	Email      *string `json:"email"`
}

func GetClients(c *gin.Context) {
	var clients []models.Client
	if err := database.DB.Find(&clients).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, clients)
}

func GetClient(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var client models.Client
	if err := database.DB.First(&client, id).Error; err != nil {
		respondError(c, storeError(err, "client"))
		return
	}
	c.JSON(http.StatusOK, client)
}

func CreateClient(c *gin.Context) {
	var payload ClientPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, apperr.Validationf("invalid input"))
		return
	}
	if payload.FirstName == nil || *payload.FirstName == "" {
		respondError(c, apperr.Validationf("first_name is required"))
		return
	}
	if payload.LastName == nil || *payload.LastName == "" {
		respondError(c, apperr.Validationf("last_name is required"))
		return
	}
	if payload.NationalID == nil || *payload.NationalID == "" {
		respondError(c, apperr.Validationf("national_id is required"))
		return
	}

	client := models.Client{
		FirstName:  *payload.FirstName,
		LastName:   *payload.LastName,
		NationalID: *payload.NationalID,
	}
	if payload.Phone != nil {
		client.Phone = *payload.Phone
	}
	if payload.Email != nil && *payload.Email != "" {
		client.Email = payload.Email
	}

	if err := database.DB.Create(&client).Error; err != nil {
		respondError(c, storeError(err, "client"))
		return
	}
	c.JSON(http.StatusCreated, client)
}

func UpdateClient(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var client models.Client
	if err := database.DB.First(&client, id).Error; err != nil {
		respondError(c, storeError(err, "client"))
		return
	}

	var payload ClientPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, apperr.Validationf("invalid input"))
		return
	}
	if payload.FirstName != nil {
		client.FirstName = *payload.FirstName
	}
	if payload.LastName != nil {
		client.LastName = *payload.LastName
	}
	if payload.NationalID != nil {
		client.NationalID = *payload.NationalID
	}
	if payload.Phone != nil {
		client.Phone = *payload.Phone
	}
	if payload.Email != nil {
		if *payload.Email == "" {
			client.Email = nil
		} else {
			client.Email = payload.Email
		}
	}

	if err := database.DB.Save(&client).Error; err != nil {
		respondError(c, storeError(err, "client"))
		return
	}
	c.JSON(http.StatusOK, client)
}

// DeleteClient keeps the client's sales as anonymous history.
func DeleteClient(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var client models.Client
	if err := database.DB.First(&client, id).Error; err != nil {
		respondError(c, storeError(err, "client"))
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Sale{}).Where("client_id = ?", client.ID).Update("client_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&client).Error
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Client deleted successfully"})
}
