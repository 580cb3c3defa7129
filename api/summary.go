package api

import (
	"net/http"

	"expenses/service"

	"github.com/gin-gonic/gin"
)

// CategoryAmount 单个类别的金额合计
type CategoryAmount struct {
	Category string  `json:"category" example:"餐饮"`
	Amount   float64 `json:"amount" example:"30"`
}

// SummaryResponse 汇总结果
type SummaryResponse struct {
	Total      float64          `json:"total" example:"60"`
	ByCategory []CategoryAmount `json:"by_category"`
}

func toSummaryResponse(res *service.SummaryResult) SummaryResponse {
	out := SummaryResponse{
		Total:      res.Total,
		ByCategory: make([]CategoryAmount, 0, len(res.ByCategory)),
	}
	for _, ct := range res.ByCategory {
		out.ByCategory = append(out.ByCategory, CategoryAmount{Category: ct.Category, Amount: ct.Amount})
	}
	return out
}

// Summary 获取消费汇总
// @Summary 获取消费汇总
// @Description 统计时间范围内的总金额和各类别金额。不传 start/end 则统计全部时间，无法解析的值会被忽略。
// @Tags 统计
// @Produce json
// @Param start query string false "开始时间（ISO-8601，包含）"
// @Param end query string false "结束时间（ISO-8601，包含）"
// @Success 200 {object} SummaryResponse "获取成功"
// @Failure 500 {object} ErrorResponse "服务器内部错误"
// @Router /api/summary [get]
func (h *ExpenseHandler) Summary(c *gin.Context) {
	r := service.ParseDateRange(c.Query("start"), c.Query("end"))

	res, err := h.svc.Summary(c.Request.Context(), r)
	if err != nil {
		respondError(c, h.log, err, "统计失败")
		return
	}

	c.JSON(http.StatusOK, toSummaryResponse(res))
}
