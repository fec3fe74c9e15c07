package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"agendabiz-backend/config"
	"agendabiz-backend/models"
	"agendabiz-backend/routes"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	config.Cfg.JWTSecret = "test-secret"
	config.Cfg.JWTExpiryHours = 1
	config.Log = zap.NewNop()

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
	config.DB = db

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return routes.SetupRouter()
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerOwner(t *testing.T, r *gin.Engine, email, businessName string) string {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/auth/register", "", gin.H{
		"email":        email,
		"name":         "Owner",
		"password":     "supersecret",
		"businessName": businessName,
		"vertical":     "barbershop",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func createResource(t *testing.T, r *gin.Engine, token, path string, body gin.H) uuid.UUID {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, path, token, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		ID uuid.UUID `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEqual(t, uuid.Nil, resp.ID)
	return resp.ID
}

func TestRegisterAndLogin(t *testing.T) {
	r := setupTestServer(t)

	registerOwner(t, r, "owner@navalha.com", "Navalha")

	// Duplicate email is refused.
	w := doJSON(t, r, http.MethodPost, "/auth/register", "", gin.H{
		"email":        "owner@navalha.com",
		"name":         "Other",
		"password":     "supersecret",
		"businessName": "Other Shop",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodPost, "/auth/login", "", gin.H{
		"email": "owner@navalha.com", "password": "supersecret",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/auth/login", "", gin.H{
		"email": "owner@navalha.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := setupTestServer(t)

	w := doJSON(t, r, http.MethodGet, "/api/clients", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/clients", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAppointmentBookingFlow(t *testing.T) {
	r := setupTestServer(t)
	token := registerOwner(t, r, "owner@navalha.com", "Navalha")

	clientID := createResource(t, r, token, "/api/clients", gin.H{
		"name": "Carlos", "phone": "+5511999990000",
	})
	professionalID := createResource(t, r, token, "/api/professionals", gin.H{
		"name": "Joao", "compensationType": "percentage", "commissionPercentage": 40,
	})
	serviceID := createResource(t, r, token, "/api/services", gin.H{
		"name": "Cut", "durationMinutes": 60, "priceCents": 10000,
	})

	startsAt := time.Date(2026, time.September, 14, 9, 0, 0, 0, time.UTC)

	w := doJSON(t, r, http.MethodPost, "/api/appointments", token, gin.H{
		"clientId":       clientID,
		"professionalId": professionalID,
		"serviceId":      serviceID,
		"startsAt":       startsAt,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created models.Appointment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, models.StatusScheduled, created.Status)
	assert.True(t, created.EndsAt.Equal(startsAt.Add(time.Hour)))

	// Overlapping booking for the same professional comes back 409.
	w = doJSON(t, r, http.MethodPost, "/api/appointments", token, gin.H{
		"clientId":       clientID,
		"professionalId": professionalID,
		"serviceId":      serviceID,
		"startsAt":       startsAt.Add(30 * time.Minute),
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// The day view shows the booking.
	w = doJSON(t, r, http.MethodGet, "/api/appointments/day?date=2026-09-14", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var day []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &day))
	require.Len(t, day, 1)
	assert.Equal(t, "Carlos", day[0]["clientName"])

	// scheduled -> done emits the execution with the frozen price.
	statusPath := fmt.Sprintf("/api/appointments/%s/status", created.ID)
	w = doJSON(t, r, http.MethodPatch, statusPath, token, gin.H{"status": "done"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var executions []models.ServiceExecution
	require.NoError(t, config.DB.Find(&executions).Error)
	require.Len(t, executions, 1)
	assert.Equal(t, int64(10000), executions[0].ServicePriceCents)

	// Terminal: a second transition is rejected.
	w = doJSON(t, r, http.MethodPatch, statusPath, token, gin.H{"status": "cancelled"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestTenantCannotTouchOtherTenantsData(t *testing.T) {
	r := setupTestServer(t)
	tokenA := registerOwner(t, r, "a@shops.com", "Shop A")
	tokenB := registerOwner(t, r, "b@shops.com", "Shop B")

	clientID := createResource(t, r, tokenA, "/api/clients", gin.H{
		"name": "Carlos", "phone": "+5511999990000",
	})

	w := doJSON(t, r, http.MethodGet, "/api/clients/"+clientID.String(), tokenB, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/clients/"+clientID.String(), tokenA, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestFinanceSummaryGate(t *testing.T) {
	r := setupTestServer(t)
	token := registerOwner(t, r, "owner@navalha.com", "Navalha")

	// No finance password configured yet.
	req := httptest.NewRequest(http.MethodGet, "/api/finance/summary?month=2026-09", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Finance-Password", "anything")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	resp := doJSON(t, r, http.MethodPut, "/api/finance/access", token, gin.H{
		"name": "Owner", "password": "finance-pass",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/api/finance/summary?month=2026-09", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Finance-Password", "wrong")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/finance/summary?month=2026-09", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("X-Finance-Password", "finance-pass")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var summary map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Contains(t, summary, "totalRevenueCents")
}

func TestDeleteClientRefusedWhenHistoryCheckFails(t *testing.T) {
	r := setupTestServer(t)
	token := registerOwner(t, r, "owner@navalha.com", "Navalha")

	clientID := createResource(t, r, token, "/api/clients", gin.H{
		"name": "Carlos", "phone": "+5511999990000",
	})

	// Break the last history query; the delete must fail rather than treat
	// the failed count as "no history".
	require.NoError(t, config.DB.Migrator().DropTable(&models.ProductMovement{}))

	w := doJSON(t, r, http.MethodDelete, "/api/clients/"+clientID.String(), token, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/clients/"+clientID.String(), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoginSurvivesLastLoginWriteFailure(t *testing.T) {
	r := setupTestServer(t)
	registerOwner(t, r, "owner@navalha.com", "Navalha")

	core, logs := observer.New(zapcore.WarnLevel)
	config.Log = zap.New(core)

	require.NoError(t, config.DB.Migrator().DropColumn(&models.User{}, "last_login"))

	w := doJSON(t, r, http.MethodPost, "/auth/login", "", gin.H{
		"email": "owner@navalha.com", "password": "supersecret",
	})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 1, logs.FilterMessage("failed to record last login").Len())
}

func TestMovementEndpoints(t *testing.T) {
	r := setupTestServer(t)
	token := registerOwner(t, r, "owner@navalha.com", "Navalha")

	productID := createResource(t, r, token, "/api/products", gin.H{
		"name": "Pomade", "priceCents": 1500, "stockQty": 10,
	})

	w := doJSON(t, r, http.MethodPost, "/api/movements", token, gin.H{
		"productId": productID, "type": "sale", "qty": 3,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Selling more than the stock holds is a 400.
	w = doJSON(t, r, http.MethodPost, "/api/movements", token, gin.H{
		"productId": productID, "type": "sale", "qty": 100,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/movements", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var rows []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Pomade", rows[0]["productName"])
	assert.Equal(t, float64(4500), rows[0]["totalCents"])
}
