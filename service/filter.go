package service

import (
	"strings"
	"time"

	"expenses/models"

	"github.com/Masterminds/squirrel"
	"gorm.io/gorm"
)

// DateRange created_at 的闭区间，nil 表示不限制
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// Filter 列表/导出共用的筛选条件
type Filter struct {
	DateRange
	Category string
}

// ParseDateRange 宽松解析 start/end
// 无法解析的值直接忽略，对应的条件不生效，不返回错误
func ParseDateRange(start, end string) DateRange {
	var r DateRange
	if start = strings.TrimSpace(start); start != "" {
		if t, err := models.ParseISOTime(start); err == nil {
			r.Start = &t
		}
	}
	if end = strings.TrimSpace(end); end != "" {
		if t, err := models.ParseISOTime(end); err == nil {
			r.End = &t
		}
	}
	return r
}

// Predicate 时间区间条件
func (r DateRange) Predicate() squirrel.And {
	and := squirrel.And{}
	if r.Start != nil {
		and = append(and, squirrel.GtOrEq{"created_at": *r.Start})
	}
	if r.End != nil {
		and = append(and, squirrel.LtOrEq{"created_at": *r.End})
	}
	return and
}

// Predicate 时间区间 + 类别精确匹配
func (f Filter) Predicate() squirrel.And {
	and := f.DateRange.Predicate()
	if f.Category != "" {
		and = append(and, squirrel.Eq{"category": f.Category})
	}
	return and
}

// applyPredicate 把 squirrel 条件转换为 gorm 的 Where，空条件不追加
func applyPredicate(db *gorm.DB, pred squirrel.And) (*gorm.DB, error) {
	if len(pred) == 0 {
		return db, nil
	}
	sql, args, err := pred.ToSql()
	if err != nil {
		return nil, err
	}
	return db.Where(sql, args...), nil
}
