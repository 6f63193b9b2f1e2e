package handlers

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"baro_landing_go/config"
	"baro_landing_go/db"
	"baro_landing_go/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// Unique shared memory name to isolate tests while allowing shared cache
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{})
	assert.NoError(t, err)

	err = testDB.AutoMigrate(&models.Consultation{})
	assert.NoError(t, err)

	// Set global DB
	db.DB = testDB

	return testDB
}

func testConfig() *config.Config {
	return &config.Config{
		Environment:   "test",
		AppURL:        "http://localhost:8080",
		DBPath:        "db/test.db",
		EmailTestMode: true,
	}
}

func setupEcho(method, path string, body io.Reader) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// Add config to context
	c.Set("config", testConfig())

	return e, c, rec
}
