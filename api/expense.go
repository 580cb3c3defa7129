package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"expenses/models"
	"expenses/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ExpenseService 处理器依赖的消费记录服务
type ExpenseService interface {
	Create(ctx context.Context, in service.CreateInput) (*models.Expense, error)
	List(ctx context.Context, q service.ListQuery) (*service.ListResult, error)
	Summary(ctx context.Context, r service.DateRange) (*service.SummaryResult, error)
	Delete(ctx context.Context, id uint) error
	Export(ctx context.Context, f service.Filter, sort service.Sort) ([]models.Expense, error)
}

// ExpenseHandler 消费记录处理器
type ExpenseHandler struct {
	svc ExpenseService
	log *zap.Logger
}

// NewExpenseHandler 创建消费记录处理器
func NewExpenseHandler(svc ExpenseService, log *zap.Logger) *ExpenseHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &ExpenseHandler{svc: svc, log: log}
}

// CreateExpenseRequest 创建消费记录请求
// amount 可以是数字或数字字符串；created_at 省略时使用当前 UTC 时间
type CreateExpenseRequest struct {
	Description string          `json:"description" example:"午餐"`
	Category    string          `json:"category" example:"餐饮"`
	Amount      json.RawMessage `json:"amount" swaggertype:"number" example:"12.5"`
	CreatedAt   *string         `json:"created_at,omitempty" example:"2024-01-15T12:30:00"`
}

// ExpenseResponse 消费记录
type ExpenseResponse struct {
	ID          uint    `json:"id" example:"1"`
	Description string  `json:"description" example:"午餐"`
	Category    string  `json:"category" example:"餐饮"`
	Amount      float64 `json:"amount" example:"12.5"`
	CreatedAt   string  `json:"created_at" example:"2024-01-15T12:30:00"`
}

// ListResponse 分页列表
type ListResponse struct {
	Total   int64             `json:"total" example:"42"`
	Page    int               `json:"page" example:"1"`
	PerPage int               `json:"per_page" example:"100"`
	Data    []ExpenseResponse `json:"data"`
}

// DeleteResponse 删除结果
type DeleteResponse struct {
	Deleted uint `json:"deleted" example:"1"`
}

// toExpenseResponse 行结构 -> JSON 结构
func toExpenseResponse(e models.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID,
		Description: e.Description,
		Category:    e.Category,
		Amount:      e.Amount,
		CreatedAt:   models.FormatISOTime(e.CreatedAt),
	}
}

func toExpenseResponses(items []models.Expense) []ExpenseResponse {
	out := make([]ExpenseResponse, 0, len(items))
	for _, e := range items {
		out = append(out, toExpenseResponse(e))
	}
	return out
}

// toCreateInput 请求结构 -> 服务参数，金额和时间在这里解析
func (r CreateExpenseRequest) toCreateInput() (service.CreateInput, error) {
	amount, err := service.ParseAmount(r.Amount)
	if err != nil {
		return service.CreateInput{}, err
	}
	in := service.CreateInput{
		Description: r.Description,
		Category:    r.Category,
		Amount:      amount,
	}
	if r.CreatedAt != nil && strings.TrimSpace(*r.CreatedAt) != "" {
		t, err := models.ParseISOTime(*r.CreatedAt)
		if err != nil {
			return service.CreateInput{}, &service.ValidationError{Field: "created_at", Reason: "must be an ISO-8601 timestamp"}
		}
		in.CreatedAt = &t
	}
	return in, nil
}

// Create 创建消费记录
// @Summary 创建消费记录
// @Description 创建一条新的消费记录，未传 created_at 时使用当前 UTC 时间
// @Tags 消费记录
// @Accept json
// @Produce json
// @Param request body CreateExpenseRequest true "消费记录信息"
// @Success 200 {object} ExpenseResponse "创建成功"
// @Failure 400 {object} ErrorResponse "请求参数错误"
// @Failure 500 {object} ErrorResponse "服务器内部错误"
// @Router /api/expenses [post]
func (h *ExpenseHandler) Create(c *gin.Context) {
	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid JSON body")
		return
	}

	in, err := req.toCreateInput()
	if err != nil {
		respondError(c, h.log, err, "创建消费记录失败")
		return
	}

	expense, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.log, err, "创建消费记录失败")
		return
	}

	c.JSON(http.StatusOK, toExpenseResponse(*expense))
}

// List 获取消费记录列表
// @Summary 获取消费记录列表
// @Description 支持时间范围、类别筛选，排序和分页。无法解析的 start/end 会被忽略。
// @Tags 消费记录
// @Produce json
// @Param start query string false "开始时间（ISO-8601，包含）"
// @Param end query string false "结束时间（ISO-8601，包含）"
// @Param category query string false "类别（精确匹配）"
// @Param sort query string false "排序方式" Enums(amount_asc,amount_desc,date_asc,date_desc)
// @Param page query int false "页码" default(1)
// @Param per_page query int false "每页数量" default(100)
// @Success 200 {object} ListResponse "获取成功"
// @Failure 400 {object} ErrorResponse "分页参数错误"
// @Router /api/expenses [get]
func (h *ExpenseHandler) List(c *gin.Context) {
	page, err := service.ParsePositiveInt("page", c.Query("page"), service.DefaultPage)
	if err != nil {
		respondError(c, h.log, err, "查询失败")
		return
	}
	perPage, err := service.ParsePositiveInt("per_page", c.Query("per_page"), service.DefaultPerPage)
	if err != nil {
		respondError(c, h.log, err, "查询失败")
		return
	}

	res, err := h.svc.List(c.Request.Context(), service.ListQuery{
		Filter:  filterFromQuery(c),
		Sort:    service.ParseSort(c.Query("sort")),
		Page:    page,
		PerPage: perPage,
	})
	if err != nil {
		respondError(c, h.log, err, "查询失败")
		return
	}

	c.JSON(http.StatusOK, ListResponse{
		Total:   res.Total,
		Page:    res.Page,
		PerPage: res.PerPage,
		Data:    toExpenseResponses(res.Items),
	})
}

// Delete 删除消费记录
// @Summary 删除消费记录
// @Description 永久删除指定的消费记录
// @Tags 消费记录
// @Produce json
// @Param id path int true "消费记录ID"
// @Success 200 {object} DeleteResponse "删除成功"
// @Failure 404 {object} ErrorResponse "记录不存在"
// @Router /api/expenses/{id} [delete]
func (h *ExpenseHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		NotFound(c)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), uint(id)); err != nil {
		respondError(c, h.log, err, "删除失败")
		return
	}

	c.JSON(http.StatusOK, DeleteResponse{Deleted: uint(id)})
}

// filterFromQuery 读取 start/end/category，日期宽松解析
func filterFromQuery(c *gin.Context) service.Filter {
	return service.Filter{
		DateRange: service.ParseDateRange(c.Query("start"), c.Query("end")),
		Category:  c.Query("category"),
	}
}
