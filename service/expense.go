package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"expenses/models"

	"gorm.io/gorm"
)

const (
	// DefaultPage 默认页码
	DefaultPage = 1
	// DefaultPerPage 默认每页数量
	DefaultPerPage = 100
)

// ExpenseService 消费记录的创建、查询、汇总和删除
type ExpenseService struct {
	db  *gorm.DB
	now func() time.Time
}

// Option ExpenseService 可选配置
type Option func(*ExpenseService)

// WithClock 替换当前时间来源（测试用）
func WithClock(now func() time.Time) Option {
	return func(s *ExpenseService) {
		s.now = now
	}
}

// NewExpenseService 创建消费记录服务
func NewExpenseService(db *gorm.DB, opts ...Option) *ExpenseService {
	s := &ExpenseService{db: db, now: models.NowUTC}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateInput 创建消费记录的参数
type CreateInput struct {
	Description string
	Category    string
	Amount      float64
	// CreatedAt 为 nil 时使用当前 UTC 时间
	CreatedAt *time.Time
}

// ListQuery 列表查询参数
type ListQuery struct {
	Filter
	Sort    Sort
	Page    int
	PerPage int
}

// ListResult 分页结果，Total 为分页前的匹配总数
type ListResult struct {
	Total   int64
	Page    int
	PerPage int
	Items   []models.Expense
}

// SummaryResult 汇总结果
type SummaryResult struct {
	Total      float64
	ByCategory []models.CategoryTotal
}

// Create 创建消费记录，返回持久化后的完整记录
func (s *ExpenseService) Create(ctx context.Context, in CreateInput) (*models.Expense, error) {
	if strings.TrimSpace(in.Description) == "" {
		return nil, invalid("description", "is required")
	}
	if strings.TrimSpace(in.Category) == "" {
		return nil, invalid("category", "is required")
	}
	if math.IsNaN(in.Amount) || math.IsInf(in.Amount, 0) {
		return nil, invalid("amount", "must be a finite number")
	}

	createdAt := s.now()
	if in.CreatedAt != nil {
		createdAt = in.CreatedAt.UTC().Truncate(time.Microsecond)
	}

	expense := models.Expense{
		Description: in.Description,
		Category:    in.Category,
		Amount:      in.Amount,
		CreatedAt:   createdAt,
	}
	if err := s.db.WithContext(ctx).Create(&expense).Error; err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}
	return &expense, nil
}

// List 按条件筛选、排序并分页
// 页码超出范围时返回空列表，不视为错误
func (s *ExpenseService) List(ctx context.Context, q ListQuery) (*ListResult, error) {
	if q.Page < 1 {
		return nil, invalid("page", "must be a positive integer")
	}
	if q.PerPage < 1 {
		return nil, invalid("per_page", "must be a positive integer")
	}

	query, err := s.filtered(ctx, q.Filter)
	if err != nil {
		return nil, err
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count expenses: %w", err)
	}

	items := make([]models.Expense, 0)
	offset := (q.Page - 1) * q.PerPage
	if err := query.Order(q.Sort.orderBy()).Offset(offset).Limit(q.PerPage).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}

	return &ListResult{
		Total:   total,
		Page:    q.Page,
		PerPage: q.PerPage,
		Items:   items,
	}, nil
}

// Summary 统计时间区间内的总金额和按类别的金额
// 总金额由分组结果累加得到，与 by_category 来自同一条查询
func (s *ExpenseService) Summary(ctx context.Context, r DateRange) (*SummaryResult, error) {
	query, err := s.filtered(ctx, Filter{DateRange: r})
	if err != nil {
		return nil, err
	}

	byCategory := make([]models.CategoryTotal, 0)
	if err := query.
		Select("category, COALESCE(SUM(amount), 0) AS amount").
		Group("category").
		Order("category").
		Scan(&byCategory).Error; err != nil {
		return nil, fmt.Errorf("summarize expenses: %w", err)
	}

	result := &SummaryResult{ByCategory: byCategory}
	for _, ct := range byCategory {
		result.Total += ct.Amount
	}
	return result, nil
}

// Delete 永久删除记录，记录不存在时返回 ErrNotFound
func (s *ExpenseService) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Expense{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete expense %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Export 返回全部匹配记录（不分页），排序规则与 List 相同
func (s *ExpenseService) Export(ctx context.Context, f Filter, sort Sort) ([]models.Expense, error) {
	query, err := s.filtered(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]models.Expense, 0)
	if err := query.Order(sort.orderBy()).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("export expenses: %w", err)
	}
	return items, nil
}

// filtered 返回带筛选条件、可重复使用的查询
func (s *ExpenseService) filtered(ctx context.Context, f Filter) (*gorm.DB, error) {
	query, err := applyPredicate(s.db.WithContext(ctx).Model(&models.Expense{}), f.Predicate())
	if err != nil {
		return nil, fmt.Errorf("build filter: %w", err)
	}
	return query.Session(&gorm.Session{}), nil
}

// ParseAmount 解析金额，支持 JSON 数字或数字字符串
// 不限制正负和大小
func ParseAmount(raw []byte) (float64, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return 0, invalid("amount", "is required")
	}
	if strings.HasPrefix(s, `"`) {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			return 0, invalid("amount", "must be a number")
		}
		s = strings.TrimSpace(unquoted)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return 0, invalid("amount", "is out of range")
		}
		return 0, invalid("amount", "must be a number")
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, invalid("amount", "must be a finite number")
	}
	return v, nil
}

// ParsePositiveInt 解析分页参数，空字符串返回默认值
func ParsePositiveInt(field, raw string, def int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		return 0, invalid(field, "must be a positive integer")
	}
	return v, nil
}
