package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/triplog/triplog-backend/domain"
	"github.com/triplog/triplog-backend/internal/rest/request"
	"github.com/triplog/triplog-backend/internal/rest/response"
)

type reportHandler struct {
	Service domain.ReportUsecase
}

func NewReportHandler(svc domain.ReportUsecase) *reportHandler {
	return &reportHandler{
		Service: svc,
	}
}

// File records a report against a post or a comment
func (h *reportHandler) File(c *gin.Context) {
	var req request.Report
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	report := req.ToDomain()
	if err := h.Service.File(c.Request.Context(), &report, callerIdentity(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "report filed"})
}

// MostReported returns the moderation ranking for one target type
func (h *reportHandler) MostReported(c *gin.Context) {
	targetType := c.DefaultQuery("type", domain.ReportTargetPost)

	limit, err := strconv.ParseInt(c.Query("limit"), 10, 64)
	if err != nil || limit < 1 || limit > RankMax {
		limit = DefaultRankLimit
	}

	summaries, err := h.Service.MostReported(c.Request.Context(), targetType, limit, callerIdentity(c))
	if err != nil {
		respondError(c, err)
		return
	}

	res := make([]response.ReportSummary, len(summaries))
	for i := range summaries {
		res[i] = response.NewReportSummaryFromDomain(&summaries[i])
	}
	c.JSON(http.StatusOK, gin.H{"items": res})
}

// TargetCount returns how many reports one target has accumulated
func (h *reportHandler) TargetCount(c *gin.Context) {
	targetType := c.DefaultQuery("type", domain.ReportTargetPost)
	targetID, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: domain.ErrBadParamInput.Error()})
		return
	}

	count, err := h.Service.TargetCount(c.Request.Context(), targetType, targetID, callerIdentity(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"targetId": targetID, "reports": count})
}
