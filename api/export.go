package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"expenses/models"
	"expenses/service"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// 导出文件的表头
var exportHeaders = []string{"id", "description", "category", "amount", "created_at"}

// ExportHandler 导出处理器
type ExportHandler struct {
	svc ExpenseService
	log *zap.Logger
	now func() time.Time
}

// NewExportHandler 创建导出处理器
func NewExportHandler(svc ExpenseService, log *zap.Logger) *ExportHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &ExportHandler{svc: svc, log: log, now: models.NowUTC}
}

func (h *ExportHandler) load(c *gin.Context) ([]models.Expense, bool) {
	rows, err := h.svc.Export(c.Request.Context(), filterFromQuery(c), service.ParseSort(c.Query("sort")))
	if err != nil {
		respondError(c, h.log, err, "导出失败")
		return nil, false
	}
	return rows, true
}

func (h *ExportHandler) filename(ext string) string {
	return fmt.Sprintf("expenses_%s.%s", h.now().Format("20060102_150405"), ext)
}

// ExportCSV 导出消费记录为 CSV
// @Summary 导出消费记录为 CSV
// @Description 按与列表相同的筛选和排序条件导出全部匹配记录（不分页）
// @Tags 导出
// @Produce text/csv
// @Param start query string false "开始时间（ISO-8601，包含）"
// @Param end query string false "结束时间（ISO-8601，包含）"
// @Param category query string false "类别（精确匹配）"
// @Param sort query string false "排序方式" Enums(amount_asc,amount_desc,date_asc,date_desc)
// @Success 200 {file} file "CSV 文件"
// @Failure 500 {object} ErrorResponse "服务器内部错误"
// @Router /api/export/csv [get]
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	rows, ok := h.load(c)
	if !ok {
		return
	}

	buf := new(bytes.Buffer)
	// 添加 BOM 以便 Excel 正确识别 UTF-8
	buf.WriteString("\xEF\xBB\xBF")

	writer := csv.NewWriter(buf)
	if err := writer.Write(exportHeaders); err != nil {
		respondError(c, h.log, err, "生成 CSV 失败")
		return
	}
	for _, e := range rows {
		record := []string{
			strconv.FormatUint(uint64(e.ID), 10),
			e.Description,
			e.Category,
			strconv.FormatFloat(e.Amount, 'f', -1, 64),
			models.FormatISOTime(e.CreatedAt),
		}
		if err := writer.Write(record); err != nil {
			respondError(c, h.log, err, "生成 CSV 失败")
			return
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		respondError(c, h.log, err, "生成 CSV 失败")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", h.filename("csv")))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportExcel 导出消费记录为 Excel
// @Summary 导出消费记录为 Excel
// @Description 按与列表相同的筛选和排序条件导出全部匹配记录，末行为合计
// @Tags 导出
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param start query string false "开始时间（ISO-8601，包含）"
// @Param end query string false "结束时间（ISO-8601，包含）"
// @Param category query string false "类别（精确匹配）"
// @Param sort query string false "排序方式" Enums(amount_asc,amount_desc,date_asc,date_desc)
// @Success 200 {file} file "Excel 文件"
// @Failure 500 {object} ErrorResponse "服务器内部错误"
// @Router /api/export/excel [get]
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	rows, ok := h.load(c)
	if !ok {
		return
	}

	f, err := buildWorkbook(rows)
	if err != nil {
		respondError(c, h.log, err, "生成 Excel 失败")
		return
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		respondError(c, h.log, err, "生成 Excel 失败")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", h.filename("xlsx")))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// ExportSheetName Excel 工作表名称
const ExportSheetName = "expenses"

// buildWorkbook 表头一行，每条记录一行，最后一行为合计
func buildWorkbook(rows []models.Expense) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", ExportSheetName); err != nil {
		f.Close()
		return nil, err
	}

	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Border:    border,
	})
	if err != nil {
		f.Close()
		return nil, err
	}
	totalStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"FFC000"}, Pattern: 1},
		Border: border,
	})
	if err != nil {
		f.Close()
		return nil, err
	}

	_ = f.SetColWidth(ExportSheetName, "A", "A", 8)
	_ = f.SetColWidth(ExportSheetName, "B", "B", 30)
	_ = f.SetColWidth(ExportSheetName, "C", "C", 16)
	_ = f.SetColWidth(ExportSheetName, "D", "D", 12)
	_ = f.SetColWidth(ExportSheetName, "E", "E", 28)

	headerRow := make([]interface{}, len(exportHeaders))
	for i, v := range exportHeaders {
		headerRow[i] = v
	}
	if err := f.SetSheetRow(ExportSheetName, "A1", &headerRow); err != nil {
		f.Close()
		return nil, err
	}
	_ = f.SetCellStyle(ExportSheetName, "A1", "E1", headerStyle)

	var total float64
	for i, e := range rows {
		cell := fmt.Sprintf("A%d", i+2)
		row := []interface{}{e.ID, e.Description, e.Category, e.Amount, models.FormatISOTime(e.CreatedAt)}
		if err := f.SetSheetRow(ExportSheetName, cell, &row); err != nil {
			f.Close()
			return nil, err
		}
		total += e.Amount
	}

	totalRow := len(rows) + 2
	_ = f.SetCellValue(ExportSheetName, fmt.Sprintf("A%d", totalRow), "total")
	_ = f.SetCellValue(ExportSheetName, fmt.Sprintf("D%d", totalRow), total)
	_ = f.SetCellValue(ExportSheetName, fmt.Sprintf("E%d", totalRow), fmt.Sprintf("%d records", len(rows)))
	_ = f.SetCellStyle(ExportSheetName, fmt.Sprintf("A%d", totalRow), fmt.Sprintf("E%d", totalRow), totalStyle)

	return f, nil
}
