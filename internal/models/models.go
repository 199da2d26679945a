package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// The two role names the access rules are written against.
// Roles live in the database, but the policy only knows these two.
const (
	RoleAdministrator = "Administrador"
	RoleCashier       = "Caja"
)

// Role - what a user is allowed to do is derived from this
type Role struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;size:50;not null" json:"name"`
}

// User - the person operating the terminal
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:50;not null" json:"username"`
	PasswordHash string    `json:"-"` // Never return this in JSON
	Email        string    `gorm:"size:254" json:"email"`
	FirstName    string    `gorm:"size:100" json:"first_name"`
	LastName     string    `gorm:"size:100" json:"last_name"`
	RoleID       *uint     `gorm:"index" json:"role_id"` // nulled when the role is deleted
	Role         *Role     `gorm:"constraint:OnDelete:SET NULL" json:"role,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Category - an aisle/section of the store
type Category struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Name          string `gorm:"size:100;not null" json:"name"`
	Description   string `gorm:"type:text" json:"description"`
	AisleLocation string `gorm:"size:50" json:"aisle_location"`
	Active        bool   `gorm:"default:true" json:"active"`
}

// Product - the inventory. Prices are exact decimals, never floats.
type Product struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"size:200;not null" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Stock       int             `gorm:"not null;default:0" json:"stock"`
	Barcode     string          `gorm:"uniqueIndex;size:100;not null" json:"barcode"`
	CategoryID  uint            `gorm:"index;not null" json:"category_id"` // deleting the category deletes its products
	Category    *Category       `gorm:"constraint:OnDelete:CASCADE" json:"category,omitempty"`
	SupplierID  *uint           `gorm:"index" json:"supplier_id"` // nulled when the supplier is deleted
	Supplier    *Supplier       `gorm:"constraint:OnDelete:SET NULL" json:"supplier,omitempty"`
}

// Client - a registered customer (sales can also be anonymous)
type Client struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	FirstName  string  `gorm:"size:100;not null" json:"first_name"`
	LastName   string  `gorm:"size:100;not null" json:"last_name"`
	NationalID string  `gorm:"uniqueIndex;size:20;not null" json:"national_id"`
	Phone      string  `gorm:"size:15" json:"phone"`
	Email      *string `gorm:"uniqueIndex;size:254" json:"email"` // unique when present, nullable
}

// Supplier - where the stock comes from
type Supplier struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	CompanyName string `gorm:"size:200;not null" json:"company_name"`
	ContactName string `gorm:"size:100" json:"contact_name"`
	Phone       string `gorm:"size:15" json:"phone"`
	Email       string `gorm:"uniqueIndex;size:254;not null" json:"email"`
	Address     string `gorm:"type:text" json:"address"`
}

// Sale - the transaction header. Total is always computed server-side.
type Sale struct {
	ID       uint            `gorm:"primaryKey" json:"id"`
	Date     time.Time       `gorm:"autoCreateTime" json:"date"`
	Total    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	ClientID *uint           `gorm:"index" json:"client_id"`
	Client   *Client         `gorm:"constraint:OnDelete:SET NULL" json:"client,omitempty"`
	SellerID *uint           `gorm:"index" json:"seller_id"` // who rang it up; nulled if the user goes away
	Seller   *User           `gorm:"constraint:OnDelete:SET NULL" json:"seller,omitempty"`
	Lines    []SaleLine      `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE" json:"lines"`
}

// SaleLine - one priced row of a sale. UnitPrice is a snapshot taken at
// sale time; later catalog price changes must never touch it.
type SaleLine struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	SaleID    uint            `gorm:"index;not null" json:"sale_id"`
	ProductID uint            `gorm:"index;not null" json:"product_id"` // product deletion is blocked while lines reference it
	Product   *Product        `json:"product,omitempty"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"subtotal"`
}
