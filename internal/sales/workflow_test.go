package sales

import (
	"fmt"
	"sync/atomic"
	"testing"

	"go-ferreteria-pos/internal/apperr"
	"go-ferreteria-pos/internal/database"
	"go-ferreteria-pos/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testDBCounter int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:workflow_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedCatalog(t *testing.T, db *gorm.DB) (hammer, screws models.Product) {
	t.Helper()
	category := models.Category{Name: "Tools", Active: true}
	require.NoError(t, db.Create(&category).Error)

	hammer = models.Product{
		Name:       "Hammer",
		Price:      decimal.RequireFromString("10.00"),
		Stock:      50,
		Barcode:    "HAM-001",
		CategoryID: category.ID,
	}
	screws = models.Product{
		Name:       "Screw box",
		Price:      decimal.RequireFromString("5.00"),
		Stock:      200,
		Barcode:    "SCR-001",
		CategoryID: category.ID,
	}
	require.NoError(t, db.Create(&hammer).Error)
	require.NoError(t, db.Create(&screws).Error)
	return hammer, screws
}

func TestCreateComputesLineSubtotalsAndTotal(t *testing.T) {
	db := newTestDB(t)
	hammer, screws := seedCatalog(t, db)

	sale, err := Create(db, nil, nil, []LineInput{
		{ProductID: hammer.ID, Quantity: 2},
		{ProductID: screws.ID, Quantity: 1},
	})
	require.NoError(t, err)

	require.Len(t, sale.Lines, 2)
	assert.True(t, sale.Lines[0].UnitPrice.Equal(decimal.RequireFromString("10.00")),
		"unit_price = %s", sale.Lines[0].UnitPrice)
	assert.True(t, sale.Lines[0].Subtotal.Equal(decimal.RequireFromString("20.00")),
		"subtotal = %s", sale.Lines[0].Subtotal)
	assert.True(t, sale.Lines[1].UnitPrice.Equal(decimal.RequireFromString("5.00")))
	assert.True(t, sale.Lines[1].Subtotal.Equal(decimal.RequireFromString("5.00")))
	assert.True(t, sale.Total.Equal(decimal.RequireFromString("25.00")),
		"total = %s", sale.Total)

	// Total is exactly the sum of the stored subtotals
	sum := decimal.Zero
	for _, line := range sale.Lines {
		assert.True(t, line.Subtotal.Equal(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))))
		sum = sum.Add(line.Subtotal)
	}
	assert.True(t, sale.Total.Equal(sum))
}

func TestCreateSnapshotsPriceAtSaleTime(t *testing.T) {
	db := newTestDB(t)
	hammer, _ := seedCatalog(t, db)

	sale, err := Create(db, nil, nil, []LineInput{{ProductID: hammer.ID, Quantity: 3}})
	require.NoError(t, err)

	// Reprice the product afterwards
	require.NoError(t, db.Model(&models.Product{}).
		Where("id = ?", hammer.ID).
		Update("price", decimal.RequireFromString("99.99")).Error)

	var stored models.Sale
	require.NoError(t, db.Preload("Lines").First(&stored, sale.ID).Error)
	require.Len(t, stored.Lines, 1)
	assert.True(t, stored.Lines[0].UnitPrice.Equal(decimal.RequireFromString("10.00")),
		"snapshot changed to %s", stored.Lines[0].UnitPrice)
	assert.True(t, stored.Lines[0].Subtotal.Equal(decimal.RequireFromString("30.00")))
	assert.True(t, stored.Total.Equal(decimal.RequireFromString("30.00")))
}

func TestCreateRejectsNonPositiveQuantity(t *testing.T) {
	db := newTestDB(t)
	hammer, screws := seedCatalog(t, db)

	for _, quantity := range []int{0, -4} {
		_, err := Create(db, nil, nil, []LineInput{
			{ProductID: hammer.ID, Quantity: 1},
			{ProductID: screws.ID, Quantity: quantity},
		})
		assert.ErrorIs(t, err, apperr.ErrValidation)
	}

	assertNothingPersisted(t, db)
}

func TestCreateRejectsEmptyLines(t *testing.T) {
	db := newTestDB(t)
	seedCatalog(t, db)

	_, err := Create(db, nil, nil, nil)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	assertNothingPersisted(t, db)
}

func TestCreateRollsBackOnUnknownProduct(t *testing.T) {
	db := newTestDB(t)
	hammer, _ := seedCatalog(t, db)

	// First line is valid; the failure on the second must undo it too.
	_, err := Create(db, nil, nil, []LineInput{
		{ProductID: hammer.ID, Quantity: 2},
		{ProductID: 9999, Quantity: 1},
	})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	assertNothingPersisted(t, db)
}

func TestCreateRecordsClientAndSeller(t *testing.T) {
	db := newTestDB(t)
	hammer, _ := seedCatalog(t, db)

	client := models.Client{FirstName: "Ana", LastName: "Gomez", NationalID: "12345"}
	require.NoError(t, db.Create(&client).Error)
	user := models.User{Username: "cajero1", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)

	sale, err := Create(db, &client.ID, &user.ID, []LineInput{{ProductID: hammer.ID, Quantity: 1}})
	require.NoError(t, err)
	require.NotNil(t, sale.ClientID)
	require.NotNil(t, sale.SellerID)
	assert.Equal(t, client.ID, *sale.ClientID)
	assert.Equal(t, user.ID, *sale.SellerID)
}

func TestCreateDoesNotTouchStock(t *testing.T) {
	db := newTestDB(t)
	hammer, _ := seedCatalog(t, db)

	_, err := Create(db, nil, nil, []LineInput{{ProductID: hammer.ID, Quantity: 5}})
	require.NoError(t, err)

	var stored models.Product
	require.NoError(t, db.First(&stored, hammer.ID).Error)
	assert.Equal(t, 50, stored.Stock)
}

func assertNothingPersisted(t *testing.T, db *gorm.DB) {
	t.Helper()
	var saleCount, lineCount int64
	require.NoError(t, db.Model(&models.Sale{}).Count(&saleCount).Error)
	require.NoError(t, db.Model(&models.SaleLine{}).Count(&lineCount).Error)
	assert.Zero(t, saleCount, "orphaned sale header persisted")
	assert.Zero(t, lineCount, "orphaned sale lines persisted")
}
