package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/curata-io/curata/domain"
	"github.com/curata-io/curata/internal/rest/response"
)

const (
	DefaultTrendingLimit = 10
	TrendingLimitMin     = 1
	TrendingLimitMax     = 50
)

// TrendingHandler represent the httphandler for the ranking read side
type TrendingHandler struct {
	Service domain.TrendingUsecase
}

func NewTrendingHandler(svc domain.TrendingUsecase) *TrendingHandler {
	return &TrendingHandler{
		Service: svc,
	}
}

func trendingLimit(c *gin.Context) int64 {
	limitS := c.Query("limit")
	limit, err := strconv.ParseInt(limitS, 10, 64)
	if err != nil || limit < TrendingLimitMin || limit > TrendingLimitMax {
		limit = DefaultTrendingLimit
		logrus.Error("Invalid param 'limit'")
	}
	return limit
}

// TrendingTags returns the top tags by occurrence inside the trending window
func (h *TrendingHandler) TrendingTags(c *gin.Context) {
	tags, err := h.Service.TrendingTags(c.Request.Context(), trendingLimit(c))
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	res := make([]response.TagScore, len(tags))
	for i := range tags {
		res[i] = response.NewTagScoreFromDomain(tags[i])
	}
	c.JSON(http.StatusOK, res)
}

// TrendingContent returns content IDs ranked by the composite score
func (h *TrendingHandler) TrendingContent(c *gin.Context) {
	ids, err := h.Service.TrendingContent(c.Request.Context(), trendingLimit(c))
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"content_ids": ids})
}

// HotRank returns the best-effort realtime rank from the hourly buckets
func (h *TrendingHandler) HotRank(c *gin.Context) {
	scores, err := h.Service.FetchHotRank(c.Request.Context(), trendingLimit(c))
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	res := make([]response.ContentScore, len(scores))
	for i := range scores {
		res[i] = response.NewContentScoreFromDomain(scores[i])
	}
	c.JSON(http.StatusOK, res)
}
