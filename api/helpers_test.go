package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"expenses/config"
	"expenses/database"
	"expenses/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var fixedNow = time.Date(2024, 3, 1, 9, 0, 0, 123456000, time.UTC)

func init() {
	gin.SetMode(gin.TestMode)
}

// setupTestRouter 基于临时 sqlite 文件的完整路由
func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	db, err := database.Open(config.DatabaseConfig{
		Driver:   "sqlite",
		Path:     filepath.Join(t.TempDir(), "expenses.db"),
		LogLevel: "silent",
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	svc := service.NewExpenseService(db, service.WithClock(func() time.Time { return fixedNow }))
	return newTestEngine(svc)
}

// setupMockDB 使用 sqlmock 模拟 mysql，用于验证 SQL 和错误路径
func setupMockDB(t *testing.T) (sqlmock.Sqlmock, *gin.Engine, func()) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return mock, newTestEngine(service.NewExpenseService(gormDB)), func() {
		sqlDB.Close()
	}
}

func newTestEngine(svc ExpenseService) *gin.Engine {
	r := gin.New()
	h := NewExpenseHandler(svc, nil)
	e := NewExportHandler(svc, nil)
	e.now = func() time.Time { return fixedNow }
	r.POST("/api/expenses", h.Create)
	r.GET("/api/expenses", h.List)
	r.DELETE("/api/expenses/:id", h.Delete)
	r.GET("/api/summary", h.Summary)
	r.GET("/api/export/csv", e.ExportCSV)
	r.GET("/api/export/excel", e.ExportExcel)
	return r
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// createExpense 创建记录并返回响应
func createExpense(t *testing.T, r *gin.Engine, body string) ExpenseResponse {
	t.Helper()
	w := doRequest(r, http.MethodPost, "/api/expenses", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp ExpenseResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}
