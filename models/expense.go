package models

import (
	"time"
)

// Expense 消费记录（表 expenses 的行结构）
// JSON 输出格式由 api 层的映射函数决定
type Expense struct {
	ID          uint      `gorm:"primaryKey"`
	Description string    `gorm:"size:255;not null"`
	Category    string    `gorm:"size:100;not null;index"`
	Amount      float64   `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null;index;precision:6"`
}

// TableName 设置表名
func (Expense) TableName() string {
	return "expenses"
}

// CategoryTotal 按类别汇总的金额
type CategoryTotal struct {
	Category string
	Amount   float64
}
