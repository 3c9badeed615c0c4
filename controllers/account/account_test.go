package accountControllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/BGreenberg79/CT-Module6-MiniProject-E-Commerce-API/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Customer{}, &models.CustomerAccount{}))
	return db
}

func setupRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/accounts", CreateAccount(db))
	r.GET("/accounts/:id", GetAccountByID(db))
	r.PUT("/accounts/:id", UpdateAccount(db))
	r.DELETE("/accounts/:id", DeleteAccount(db))
	return r
}

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateAccountHashesPassword(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	customer := models.Customer{Name: "Ada"}
	require.NoError(t, db.Create(&customer).Error)

	w := doJSON(r, http.MethodPost, "/accounts", gin.H{
		"username":    "ada",
		"password":    "correct-horse",
		"customer_id": customer.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// the hash never leaves the server
	assert.NotContains(t, w.Body.String(), "correct-horse")
	assert.NotContains(t, w.Body.String(), "password_hash")

	var stored models.CustomerAccount
	require.NoError(t, db.First(&stored, "username = ?", "ada").Error)
	assert.NotEqual(t, "correct-horse", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("correct-horse")))
}

func TestCreateAccountDuplicateUsername(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	w := doJSON(r, http.MethodPost, "/accounts", gin.H{"username": "ada", "password": "correct-horse"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(r, http.MethodPost, "/accounts", gin.H{"username": "ada", "password": "battery-staple"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateAccountShortPassword(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	w := doJSON(r, http.MethodPost, "/accounts", gin.H{"username": "ada", "password": "short"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateAccountUnknownCustomer(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	w := doJSON(r, http.MethodPost, "/accounts", gin.H{
		"username":    "ada",
		"password":    "correct-horse",
		"customer_id": 42,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateAccountRehashesPassword(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.DefaultCost)
	require.NoError(t, err)
	account := models.CustomerAccount{Username: "ada", PasswordHash: string(hash)}
	require.NoError(t, db.Create(&account).Error)

	w := doJSON(r, http.MethodPut, "/accounts/1", gin.H{"password": "battery-staple"})
	require.Equal(t, http.StatusOK, w.Code)

	var stored models.CustomerAccount
	require.NoError(t, db.First(&stored, account.ID).Error)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("battery-staple")))
}

func TestUpdateAccountDuplicateUsername(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	require.NoError(t, db.Create(&models.CustomerAccount{Username: "ada", PasswordHash: "x"}).Error)
	require.NoError(t, db.Create(&models.CustomerAccount{Username: "grace", PasswordHash: "x"}).Error)

	// renaming onto a taken username is rejected
	w := doJSON(r, http.MethodPut, "/accounts/2", gin.H{"username": "ada"})
	assert.Equal(t, http.StatusConflict, w.Code)

	// keeping your own username is not a conflict
	w = doJSON(r, http.MethodPut, "/accounts/2", gin.H{"username": "grace"})
	assert.Equal(t, http.StatusOK, w.Code)

	var stored models.CustomerAccount
	require.NoError(t, db.First(&stored, 2).Error)
	assert.Equal(t, "grace", stored.Username)
}

func TestDeleteAccount(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	account := models.CustomerAccount{Username: "ada", PasswordHash: "x"}
	require.NoError(t, db.Create(&account).Error)

	w := doJSON(r, http.MethodDelete, "/accounts/1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodDelete, "/accounts/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
