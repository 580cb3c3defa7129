package service

// Sort 列表排序方式
type Sort string

const (
	SortAmountAsc  Sort = "amount_asc"
	SortAmountDesc Sort = "amount_desc"
	SortDateAsc    Sort = "date_asc"
	SortDateDesc   Sort = "date_desc"
)

// ParseSort 解析排序参数，无法识别的值按默认的 date_desc 处理
func ParseSort(s string) Sort {
	switch Sort(s) {
	case SortAmountAsc, SortAmountDesc, SortDateAsc:
		return Sort(s)
	default:
		return SortDateDesc
	}
}

// orderBy 相同取值时按 id 同方向排序，保证分页稳定
func (s Sort) orderBy() string {
	switch s {
	case SortAmountAsc:
		return "amount ASC, id ASC"
	case SortAmountDesc:
		return "amount DESC, id DESC"
	case SortDateAsc:
		return "created_at ASC, id ASC"
	default:
		return "created_at DESC, id DESC"
	}
}
