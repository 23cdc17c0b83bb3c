package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/steelhall-dev/steelhall/db"
	"github.com/steelhall-dev/steelhall/internal/auth"
	"github.com/steelhall-dev/steelhall/internal/models"
	"github.com/steelhall-dev/steelhall/internal/router"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testPassword = "password123"

var testDBCounter int64

// setupTest wires the handlers to a fresh in-memory sqlite database and
// returns the real router. Each test gets its own named database so
// parallel packages cannot see each other's tables.
func setupTest(t *testing.T) *gin.Engine {
	t.Helper()

	t.Setenv("JWT_SECRET", "test-secret")
	require.NoError(t, auth.InitJWTSecret())

	gin.SetMode(gin.TestMode)

	n := atomic.AddInt64(&testDBCounter, 1)
	dsn := fmt.Sprintf("file:handlers%d?mode=memory&cache=shared", n)

	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = gdb.AutoMigrate(&models.User{}, &models.Material{}, &models.Hall{}, &models.MaterialUsage{})
	require.NoError(t, err)

	db.DB = gdb

	return router.NewRouter()
}

// createTestUser inserts a user with the shared test password and returns
// it together with a valid bearer token. MinCost keeps the hashing cheap.
func createTestUser(t *testing.T, email string, admin bool) (models.User, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		Username:     "tester",
		Email:        email,
		PasswordHash: string(hash),
		IsAdmin:      admin,
		IsActive:     true,
	}
	require.NoError(t, db.DB.Create(&user).Error)

	token, err := auth.GenerateJWT(user.ID, user.Email)
	require.NoError(t, err)

	return user, token
}

func createTestHall(t *testing.T, ownerID *uint, length, width float64) models.Hall {
	t.Helper()

	hall := models.Hall{
		SalesmanID: ownerID,
		Length:     length,
		Width:      width,
		PoleHeight: 4.5,
		RoofSlope:  12,
	}
	require.NoError(t, db.DB.Create(&hall).Error)

	return hall
}

func createTestMaterial(t *testing.T, name string, price float64) models.Material {
	t.Helper()

	material := models.Material{Name: name, Price: price}
	require.NoError(t, db.DB.Create(&material).Error)

	return material
}

func createTestUsage(t *testing.T, hallID uint, materialID *uint, quantity int) models.MaterialUsage {
	t.Helper()

	entry := models.MaterialUsage{HallID: hallID, MaterialID: materialID, Quantity: quantity}
	require.NoError(t, db.DB.Create(&entry).Error)

	return entry
}

func dbUpdateActive(userID uint, active bool) error {
	return db.DB.Model(&models.User{}).Where("id = ?", userID).Update("is_active", active).Error
}

// doRequest performs an HTTP request against the router. A non-empty token
// is sent as a bearer Authorization header; a non-nil body is sent as JSON.
func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	return body
}
