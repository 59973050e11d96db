package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/curata-io/curata/domain"
	"github.com/curata-io/curata/internal/rest/response"
)

// RecommendHandler represent the httphandler for playlist recommendations
type RecommendHandler struct {
	Service domain.RecommendUsecase
}

func NewRecommendHandler(svc domain.RecommendUsecase) *RecommendHandler {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("sorttype", func(fl validator.FieldLevel) bool {
			_, err := domain.ParseSortType(fl.Field().String())
			return err == nil
		})
	}
	return &RecommendHandler{
		Service: svc,
	}
}

type recommendQuery struct {
	SortType string `form:"sortType" binding:"required,sorttype"`
}

// Recommend returns public playlists ranked against the reference playlist
func (h *RecommendHandler) Recommend(c *gin.Context) {
	idP, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}
	id := int64(idP)

	var query recommendQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	sortType, err := domain.ParseSortType(query.SortType)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	playlists, err := h.Service.Recommend(c.Request.Context(), id, sortType)
	if err != nil {
		c.JSON(getStatusCode(err), ResponseError{Message: err.Error()})
		return
	}

	res := make([]response.PlaylistSummary, len(playlists))
	for i := range playlists {
		res[i] = response.NewPlaylistSummaryFromDomain(&playlists[i])
	}
	c.JSON(http.StatusOK, res)
}
