package services

import (
	"testing"

	"agendabiz-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A named in-memory database per test: the pool may open several
	// connections, and an anonymous :memory: DSN would give each its own db.
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Business{},
		&models.User{},
		&models.Professional{},
		&models.Client{},
		&models.Service{},
		&models.Product{},
		&models.Appointment{},
		&models.ServiceExecution{},
		&models.ProductMovement{},
		&models.AntifuroPolicy{},
		&models.FinanceAccess{},
		&models.Conversation{},
		&models.Message{},
		&models.WhatsAppConnection{},
		&models.Subscription{},
	))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return db
}

func seedBusiness(t *testing.T, db *gorm.DB, name string) *models.Business {
	t.Helper()
	business := models.Business{Name: name, Vertical: models.VerticalBarbershop}
	require.NoError(t, db.Create(&business).Error)
	return &business
}

func seedProfessional(t *testing.T, db *gorm.DB, businessID uuid.UUID, name string, pct float64) *models.Professional {
	t.Helper()
	professional := models.Professional{
		BusinessID:           businessID,
		Name:                 name,
		Active:               true,
		CompensationType:     models.CompensationPercentage,
		CommissionPercentage: &pct,
	}
	require.NoError(t, db.Create(&professional).Error)
	return &professional
}

func seedSalaried(t *testing.T, db *gorm.DB, businessID uuid.UUID, name string, salaryCents int64) *models.Professional {
	t.Helper()
	professional := models.Professional{
		BusinessID:       businessID,
		Name:             name,
		Active:           true,
		CompensationType: models.CompensationSalary,
		SalaryCents:      &salaryCents,
	}
	require.NoError(t, db.Create(&professional).Error)
	return &professional
}

func seedClient(t *testing.T, db *gorm.DB, businessID uuid.UUID, name string) *models.Client {
	t.Helper()
	client := models.Client{BusinessID: businessID, Name: name, Phone: "+5511999990000"}
	require.NoError(t, db.Create(&client).Error)
	return &client
}

func seedService(t *testing.T, db *gorm.DB, businessID uuid.UUID, name string, minutes int, priceCents int64) *models.Service {
	t.Helper()
	service := models.Service{
		BusinessID:      businessID,
		Name:            name,
		DurationMinutes: minutes,
		PriceCents:      priceCents,
		Active:          true,
	}
	require.NoError(t, db.Create(&service).Error)
	return &service
}

func seedProduct(t *testing.T, db *gorm.DB, businessID uuid.UUID, name string, priceCents int64, stock int) *models.Product {
	t.Helper()
	product := models.Product{
		BusinessID: businessID,
		Name:       name,
		PriceCents: priceCents,
		StockQty:   stock,
		Active:     true,
	}
	require.NoError(t, db.Create(&product).Error)
	return &product
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
