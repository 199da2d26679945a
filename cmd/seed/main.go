// Seeds the two roles and a demo user per role so a fresh install can
// log in. Safe to run more than once.
package main

import (
	"log"

	"go-ferreteria-pos/internal/database"
	"go-ferreteria-pos/internal/models"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found")
	}

	database.Connect()

	adminRole := ensureRole(models.RoleAdministrator)
	cashierRole := ensureRole(models.RoleCashier)
	log.Println("Roles created.")

	ensureUser("admin", "admin123", "admin@ferreteria.com", "Admin", "User", adminRole)
	ensureUser("cajero1", "caja123", "caja1@ferreteria.com", "Caja", "User", cashierRole)
}

func ensureRole(name string) *models.Role {
	role := models.Role{Name: name}
	if err := database.DB.Where("name = ?", name).FirstOrCreate(&role).Error; err != nil {
		log.Fatalf("Failed to create role %s: %v", name, err)
	}
	return &role
}

func ensureUser(username, password, email, firstName, lastName string, role *models.Role) {
	var existing models.User
	if err := database.DB.Where("username = ?", username).First(&existing).Error; err == nil {
		log.Printf("User %s already exists.", username)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	user := models.User{
		Username:     username,
		PasswordHash: string(hash),
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		RoleID:       &role.ID,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		log.Fatalf("Failed to create user %s: %v", username, err)
	}
	log.Printf("User %s created (%s / %s)", role.Name, username, password)
}
