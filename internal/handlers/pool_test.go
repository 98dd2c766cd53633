package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"assetpool/internal/handlers/business"
	"assetpool/internal/models"
	dbconfig "assetpool/pkg/config"
)

func setupTestAPI(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:handlers_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, dbconfig.MigrateModels(db))
	require.NoError(t, dbconfig.SeedSystemRecords(db))

	old := dbconfig.DB
	dbconfig.DB = db
	t.Cleanup(func() { dbconfig.DB = old })

	r := gin.New()
	r.GET("/pools/:id", GetPool)
	r.POST("/pools", CreatePool)
	r.POST("/pools/:id/contribute", Contribute)
	r.POST("/pools/:id/withdraw", Withdraw)
	r.GET("/pools/:id/contributors", ListContributors)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedContributor(t *testing.T, address string, amount int64) {
	t.Helper()
	require.NoError(t, dbconfig.DB.Transaction(func(tx *gorm.DB) error {
		if err := business.Mint(tx, business.SystemAccount, address, amount); err != nil {
			return err
		}
		return business.Approve(tx, address, business.SystemAccount, amount)
	}))
}

func TestPoolLifecycleOverHTTP(t *testing.T) {
	r := setupTestAPI(t)

	asset := models.Asset{Name: "warehouse", Owner: "addr-seller"}
	require.NoError(t, dbconfig.DB.Create(&asset).Error)

	w := doJSON(t, r, http.MethodPost, "/pools", gin.H{"asset_id": asset.ID, "target_amount": 1000})
	require.Equal(t, http.StatusCreated, w.Code)
	var pool models.Pool
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pool))

	_, err := business.ListAsset(dbconfig.DB, asset.ID, "addr-seller", 1000, pool.EscrowAddress)
	require.NoError(t, err)

	seedContributor(t, "addr-alice", 600)
	seedContributor(t, "addr-bob", 400)

	path := fmt.Sprintf("/pools/%d/contribute", pool.ID)
	w = doJSON(t, r, http.MethodPost, path, gin.H{"address": "addr-alice", "amount": 600})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, path, gin.H{"address": "addr-bob", "amount": 400})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pool))
	assert.True(t, pool.Funded)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/pools/%d", pool.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/pools/%d/contributors", pool.ID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var records []models.ContributorRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &records))
	assert.Len(t, records, 2)
}

func TestPoolErrorStatuses(t *testing.T) {
	r := setupTestAPI(t)

	asset := models.Asset{Name: "warehouse", Owner: "addr-seller"}
	require.NoError(t, dbconfig.DB.Create(&asset).Error)

	w := doJSON(t, r, http.MethodGet, "/pools/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodGet, "/pools/not-a-number", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/pools", gin.H{"asset_id": 999, "target_amount": 1000})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodPost, "/pools", gin.H{"asset_id": asset.ID, "target_amount": 1000})
	require.Equal(t, http.StatusCreated, w.Code)
	var pool models.Pool
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pool))

	_, err := business.ListAsset(dbconfig.DB, asset.ID, "addr-seller", 1000, pool.EscrowAddress)
	require.NoError(t, err)

	path := fmt.Sprintf("/pools/%d/contribute", pool.ID)

	// Missing fields fail binding.
	w = doJSON(t, r, http.MethodPost, path, gin.H{"address": "addr-alice"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	seedContributor(t, "addr-alice", 2000)

	w = doJSON(t, r, http.MethodPost, path, gin.H{"address": "addr-alice", "amount": 1500})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, path, gin.H{"address": "addr-alice", "amount": 1000})
	require.Equal(t, http.StatusOK, w.Code)

	// Funded pool rejects further contributions and withdrawals as conflicts.
	w = doJSON(t, r, http.MethodPost, path, gin.H{"address": "addr-alice", "amount": 100})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodPost, fmt.Sprintf("/pools/%d/withdraw", pool.ID), gin.H{"address": "addr-alice"})
	assert.Equal(t, http.StatusConflict, w.Code)
}
