package v1

import (
	"net/http"
	"strconv"

	"recruiter-backend/internal/delivery/http/response"
	"recruiter-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type MatchHandler struct {
	matchUC domain.MatchUsecase
}

func NewMatchHandler(r *gin.RouterGroup, matchUC domain.MatchUsecase) {
	handler := &MatchHandler{matchUC: matchUC}

	matches := r.Group("/matches")
	{
		matches.GET("", handler.List)
		matches.GET("/recommended_jobs", handler.RecommendedJobs)
	}
}

// List godoc
// @Summary      List job matches
// @Description  Staff get a paginated list of all matches, candidates get their own
// @Tags         matches
// @Produce      json
// @Param        page       query     int  false  "Page number"
// @Param        page_size  query     int  false  "Page size"
// @Success      200        {object}  response.Response
// @Router       /matches [get]
// @Security     BearerAuth
func (h *MatchHandler) List(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	role := c.GetString(string(domain.KeyUserRole))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	matches, total, err := h.matchUC.ListMatches(c.Request.Context(), userID, role, page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Match list", gin.H{
		"matches":   matches,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// RecommendedJobs godoc
// @Summary      Get recommended jobs
// @Description  Returns the logged-in candidate's highest scoring job matches
// @Tags         matches
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /matches/recommended_jobs [get]
// @Security     BearerAuth
func (h *MatchHandler) RecommendedJobs(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	matches, err := h.matchUC.RecommendedJobs(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Recommended jobs", matches)
}
