package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"expenses/config"
	"expenses/database"
	"expenses/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var baseTime = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(config.DatabaseConfig{
		Driver:   "sqlite",
		Path:     filepath.Join(t.TempDir(), "expenses.db"),
		LogLevel: "silent",
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func ptr(t time.Time) *time.Time { return &t }

// seed 依次创建记录，第 i 条的时间为 baseTime + i 天
func seed(t *testing.T, svc *ExpenseService, rows ...CreateInput) []models.Expense {
	t.Helper()
	out := make([]models.Expense, 0, len(rows))
	for i, in := range rows {
		if in.CreatedAt == nil {
			in.CreatedAt = ptr(baseTime.AddDate(0, 0, i))
		}
		e, err := svc.Create(context.Background(), in)
		require.NoError(t, err)
		out = append(out, *e)
	}
	return out
}

func listAll(t *testing.T, svc *ExpenseService, q ListQuery) *ListResult {
	t.Helper()
	if q.Page == 0 {
		q.Page = DefaultPage
	}
	if q.PerPage == 0 {
		q.PerPage = DefaultPerPage
	}
	res, err := svc.List(context.Background(), q)
	require.NoError(t, err)
	return res
}

func TestExpenseService_CreateThenList(t *testing.T) {
	svc := NewExpenseService(setupTestDB(t))

	created, err := svc.Create(context.Background(), CreateInput{
		Description: "午餐", Category: "餐饮", Amount: 25.5,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	res := listAll(t, svc, ListQuery{})
	require.Len(t, res.Items, 1)
	assert.Equal(t, int64(1), res.Total)
	got := res.Items[0]
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "午餐", got.Description)
	assert.Equal(t, "餐饮", got.Category)
	assert.Equal(t, 25.5, got.Amount)
	assert.True(t, created.CreatedAt.Equal(got.CreatedAt))
}

func TestExpenseService_Create_DefaultsToClock(t *testing.T) {
	fixed := time.Date(2024, 5, 6, 7, 8, 9, 123456000, time.UTC)
	svc := NewExpenseService(setupTestDB(t), WithClock(func() time.Time { return fixed }))

	e, err := svc.Create(context.Background(), CreateInput{Description: "a", Category: "b", Amount: 1})
	require.NoError(t, err)
	assert.True(t, fixed.Equal(e.CreatedAt))

	// 显式传入的时间（补录）优先，并转换为 UTC
	backdated := time.Date(2020, 1, 1, 8, 0, 0, 0, time.FixedZone("CST", 8*3600))
	e, err = svc.Create(context.Background(), CreateInput{Description: "a", Category: "b", Amount: 1, CreatedAt: &backdated})
	require.NoError(t, err)
	assert.True(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC).Equal(e.CreatedAt))
}

func TestExpenseService_Create_Validation(t *testing.T) {
	svc := NewExpenseService(setupTestDB(t))
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInput{Category: "b", Amount: 1})
	assert.True(t, IsValidation(err))

	_, err = svc.Create(ctx, CreateInput{Description: "a", Category: "  ", Amount: 1})
	assert.True(t, IsValidation(err))

	// 金额不校验正负
	e, err := svc.Create(ctx, CreateInput{Description: "退款", Category: "b", Amount: -30})
	require.NoError(t, err)
	assert.Equal(t, -30.0, e.Amount)
	_, err = svc.Create(ctx, CreateInput{Description: "零", Category: "b", Amount: 0})
	require.NoError(t, err)
}

func TestExpenseService_Delete(t *testing.T) {
	svc := NewExpenseService(setupTestDB(t))
	ctx := context.Background()
	rows := seed(t, svc,
		CreateInput{Description: "a", Category: "A", Amount: 10},
		CreateInput{Description: "b", Category: "B", Amount: 20},
	)

	require.NoError(t, svc.Delete(ctx, rows[0].ID))

	res := listAll(t, svc, ListQuery{})
	require.Len(t, res.Items, 1)
	assert.Equal(t, rows[1].ID, res.Items[0].ID)

	sum, err := svc.Summary(ctx, DateRange{})
	require.NoError(t, err)
	assert.Equal(t, 20.0, sum.Total)

	// 再次删除同一条返回 ErrNotFound
	assert.ErrorIs(t, svc.Delete(ctx, rows[0].ID), ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, 9999), ErrNotFound)
}

func TestExpenseService_List_CategoryExactMatch(t *testing.T) {
	svc := NewExpenseService(setupTestDB(t))
	seed(t, svc,
		CreateInput{Description: "a", Category: "Food", Amount: 1},
		CreateInput{Description: "b", Category: "food", Amount: 2},
		CreateInput{Description: "c", Category: "Fast Food", Amount: 3},
		CreateInput{Description: "d", Category: "Food", Amount: 4},
	)

	res := listAll(t, svc, ListQuery{Filter: Filter{Category: "Food"}})
	assert.Equal(t, int64(2), res.Total)
	for _, e := range res.Items {
		assert.Equal(t, "Food", e.Category)
	}
}

func TestExpenseService_List_Sort(t *testing.T) {
	svc := NewExpenseService(setupTestDB(t))
	seed(t, svc,
		CreateInput{Description: "a", Category: "A", Amount: 30},
		CreateInput{Description: "b", Category: "A", Amount: 10},
		CreateInput{Description: "c", Category: "A", Amount: 50},
		CreateInput{Description: "d", Category: "A", Amount: 20},
	)

	cases := []struct {
		sort Sort
		less func(a, b models.Expense) bool
	}{
		{SortAmountAsc, func(a, b models.Expense) bool { return a.Amount <= b.Amount }},
		{SortAmountDesc, func(a, b models.Expense) bool { return a.Amount >= b.Amount }},
		{SortDateAsc, func(a, b models.Expense) bool { return !a.CreatedAt.After(b.CreatedAt) }},
		{SortDateDesc, func(a, b models.Expense) bool { return !a.CreatedAt.Before(b.CreatedAt) }},
		{ParseSort("bogus"), func(a, b models.Expense) bool { return !a.CreatedAt.Before(b.CreatedAt) }},
	}
	for _, tc := range cases {
		res := listAll(t, svc, ListQuery{Sort: tc.sort})
		require.Len(t, res.Items, 4)
		for i := 1; i < len(res.Items); i++ {
			assert.True(t, tc.less(res.Items[i-1], res.Items[i]), "sort %s at %d", tc.sort, i)
		}
	}

	// 默认最新的在前
	res := listAll(t, svc, ListQuery{Sort: ParseSort("")})
	assert.Equal(t, "d", res.Items[0].Description)
}

func TestExpenseService_List_Pagination(t *testing.T) {
	svc := NewExpenseService(setupTestDB(t))
	seed(t, svc,
		CreateInput{Description: "1", Category: "A", Amount: 1},
		CreateInput{Description: "2", Category: "A", Amount: 2},
		CreateInput{Description: "3", Category: "A", Amount: 3},
		CreateInput{Description: "4", Category: "A", Amount: 4},
		CreateInput{Description: "5", Category: "A", Amount: 5},
	)

	res := listAll(t, svc, ListQuery{Sort: SortAmountAsc, Page: 2, PerPage: 2})
	assert.Equal(t, int64(5), res.Total)
	assert.Equal(t, 2, res.Page)
	assert.Equal(t, 2, res.PerPage)
	require.Len(t, res.Items, 2)
	assert.Equal(t, 3.0, res.Items[0].Amount)
	assert.Equal(t, 4.0, res.Items[1].Amount)

	// 超出范围返回空列表，总数不变
	res = listAll(t, svc, ListQuery{Page: 10, PerPage: 2})
	assert.Equal(t, int64(5), res.Total)
	assert.Empty(t, res.Items)
	assert.NotNil(t, res.Items)

	_, err := svc.List(context.Background(), ListQuery{Page: 0, PerPage: 2})
	assert.True(t, IsValidation(err))
	_, err = svc.List(context.Background(), ListQuery{Page: 1, PerPage: -1})
	assert.True(t, IsValidation(err))
}

func TestExpenseService_DateWindow(t *testing.T) {
	svc := NewExpenseService(setupTestDB(t))
	ctx := context.Background()
	seed(t, svc,
		CreateInput{Description: "d0", Category: "A", Amount: 1},  // 03-01
		CreateInput{Description: "d1", Category: "B", Amount: 2},  // 03-02
		CreateInput{Description: "d2", Category: "A", Amount: 4},  // 03-03
		CreateInput{Description: "d3", Category: "B", Amount: 8},  // 03-04
		CreateInput{Description: "d4", Category: "C", Amount: 16}, // 03-05
	)

	// 边界包含在内
	r := DateRange{Start: ptr(baseTime.AddDate(0, 0, 1)), End: ptr(baseTime.AddDate(0, 0, 3))}
	res := listAll(t, svc, ListQuery{Filter: Filter{DateRange: r}})
	assert.Equal(t, int64(3), res.Total)

	var listed float64
	for _, e := range res.Items {
		listed += e.Amount
	}

	sum, err := svc.Summary(ctx, r)
	require.NoError(t, err)
	assert.Equal(t, listed, sum.Total)
	assert.Equal(t, 14.0, sum.Total)

	var byCat float64
	for _, ct := range sum.ByCategory {
		byCat += ct.Amount
	}
	assert.InDelta(t, sum.Total, byCat, 1e-9)
}

func TestExpenseService_Summary(t *testing.T) {
	svc := NewExpenseService(setupTestDB(t))
	ctx := context.Background()

	// 无数据时总额为 0
	sum, err := svc.Summary(ctx, DateRange{})
	require.NoError(t, err)
	assert.Equal(t, 0.0, sum.Total)
	assert.Empty(t, sum.ByCategory)

	seed(t, svc,
		CreateInput{Description: "x", Category: "A", Amount: 10},
		CreateInput{Description: "y", Category: "A", Amount: 20},
		CreateInput{Description: "z", Category: "B", Amount: 30},
	)

	sum, err = svc.Summary(ctx, DateRange{})
	require.NoError(t, err)
	assert.Equal(t, 60.0, sum.Total)
	assert.ElementsMatch(t, []models.CategoryTotal{
		{Category: "A", Amount: 30},
		{Category: "B", Amount: 30},
	}, sum.ByCategory)
}

func TestExpenseService_Export(t *testing.T) {
	svc := NewExpenseService(setupTestDB(t))
	seed(t, svc,
		CreateInput{Description: "a", Category: "A", Amount: 3},
		CreateInput{Description: "b", Category: "B", Amount: 1},
		CreateInput{Description: "c", Category: "A", Amount: 2},
	)

	rows, err := svc.Export(context.Background(), Filter{Category: "A"}, SortAmountAsc)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 2.0, rows[0].Amount)
	assert.Equal(t, 3.0, rows[1].Amount)
}

func TestParseDateRange(t *testing.T) {
	r := ParseDateRange("2024-01-01", "2024-01-31T23:59:59")
	require.NotNil(t, r.Start)
	require.NotNil(t, r.End)
	assert.True(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Equal(*r.Start))

	// 无法解析的值被忽略
	r = ParseDateRange("not-a-date", "")
	assert.Nil(t, r.Start)
	assert.Nil(t, r.End)

	r = ParseDateRange("", "2024-99-99")
	assert.Nil(t, r.End)
}

func TestFilterPredicate(t *testing.T) {
	assert.Empty(t, Filter{}.Predicate())
	assert.Empty(t, ParseDateRange("bad", "worse").Predicate())

	start := baseTime
	sql, args, err := Filter{DateRange: DateRange{Start: &start}, Category: "A"}.Predicate().ToSql()
	require.NoError(t, err)
	assert.Equal(t, "(created_at >= ? AND category = ?)", sql)
	assert.Equal(t, []interface{}{start, "A"}, args)
}

func TestParseSort(t *testing.T) {
	assert.Equal(t, SortAmountAsc, ParseSort("amount_asc"))
	assert.Equal(t, SortAmountDesc, ParseSort("amount_desc"))
	assert.Equal(t, SortDateAsc, ParseSort("date_asc"))
	assert.Equal(t, SortDateDesc, ParseSort("date_desc"))
	assert.Equal(t, SortDateDesc, ParseSort("AMOUNT_ASC"))
	assert.Equal(t, SortDateDesc, ParseSort(""))
}

func TestParseAmount(t *testing.T) {
	for raw, want := range map[string]float64{
		`12.5`:     12.5,
		`-3`:       -3,
		`0`:        0,
		`"42"`:     42,
		`" 7.25 "`: 7.25,
		`1e3`:      1000,
	} {
		got, err := ParseAmount([]byte(raw))
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	for _, raw := range []string{``, `null`, `"abc"`, `true`, `"NaN"`, `"inf"`, `{}`, `"1e999"`} {
		_, err := ParseAmount([]byte(raw))
		assert.True(t, IsValidation(err), raw)
	}
}

func TestParsePositiveInt(t *testing.T) {
	v, err := ParsePositiveInt("page", "", DefaultPage)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	v, err = ParsePositiveInt("per_page", "250", DefaultPerPage)
	require.NoError(t, err)
	assert.Equal(t, 250, v)

	for _, raw := range []string{"0", "-1", "abc", "1.5"} {
		_, err := ParsePositiveInt("page", raw, 1)
		assert.True(t, IsValidation(err), raw)
	}
}
