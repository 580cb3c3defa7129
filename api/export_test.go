package api

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportHandler_ExportCSV(t *testing.T) {
	r := setupTestRouter(t)
	createExpense(t, r, `{"description":"午餐, 两人","category":"餐饮","amount":12.5,"created_at":"2024-01-01T12:00:00"}`)
	createExpense(t, r, `{"description":"地铁","category":"交通","amount":3,"created_at":"2024-01-02T08:00:00"}`)

	w := doRequest(r, http.MethodGet, "/api/export/csv?sort=date_asc", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Equal(t, "attachment; filename=expenses_20240301_090000.csv", w.Header().Get("Content-Disposition"))

	body := w.Body.String()
	require.True(t, strings.HasPrefix(body, "\xEF\xBB\xBF"))
	records, err := csv.NewReader(strings.NewReader(strings.TrimPrefix(body, "\xEF\xBB\xBF"))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"id", "description", "category", "amount", "created_at"}, records[0])
	assert.Equal(t, []string{"1", "午餐, 两人", "餐饮", "12.5", "2024-01-01T12:00:00"}, records[1])
	assert.Equal(t, []string{"2", "地铁", "交通", "3", "2024-01-02T08:00:00"}, records[2])

	// 筛选条件与列表一致
	w = doRequest(r, http.MethodGet, "/api/export/csv?start=2024-01-02", "")
	records, err = csv.NewReader(strings.NewReader(strings.TrimPrefix(w.Body.String(), "\xEF\xBB\xBF"))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "地铁", records[1][1])
}

func TestExportHandler_ExportExcel(t *testing.T) {
	r := setupTestRouter(t)
	createExpense(t, r, `{"description":"a","category":"餐饮","amount":10,"created_at":"2024-01-01T00:00:00"}`)
	createExpense(t, r, `{"description":"b","category":"餐饮","amount":5.5,"created_at":"2024-01-02T00:00:00"}`)

	w := doRequest(r, http.MethodGet, "/api/export/excel?sort=amount_desc", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(ExportSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, exportHeaders, rows[0])
	assert.Equal(t, "a", rows[1][1])
	assert.Equal(t, "b", rows[2][1])
	assert.Equal(t, "total", rows[3][0])
	assert.Equal(t, "15.5", rows[3][3])
	assert.Equal(t, "2 records", rows[3][4])
}

func TestBuildWorkbook_Empty(t *testing.T) {
	f, err := buildWorkbook(nil)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(ExportSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "total", rows[1][0])
	assert.Equal(t, "0", rows[1][3])
}
