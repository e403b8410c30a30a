package v1

import (
	"net/http"
	"strconv"

	"recruiter-backend/internal/delivery/http/response"
	"recruiter-backend/internal/domain"
	"recruiter-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
}

func NewApplicationHandler(r *gin.RouterGroup, applicationUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{applicationUC: applicationUC}

	jobs := r.Group("/jobs")
	{
		jobs.POST("/:id/apply", handler.Apply)
		jobs.GET("/:id/applications", handler.ListByJob)
	}

	applications := r.Group("/applications")
	{
		applications.GET("", handler.List)
		applications.GET("/me", handler.ListMine)
		applications.GET("/:id", handler.Get)
		applications.PATCH("/:id/update_status", handler.UpdateStatus)
	}
}

type ApplyRequest struct {
	CoverLetter string `json:"cover_letter" binding:"required"`
	ResumeURL   string `json:"resume_url" binding:"required,url"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Apply godoc
// @Summary      Apply to a job
// @Description  Submits an application for the logged-in candidate. One application per job
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id           path      int           true  "Job ID"
// @Param        application  body      ApplyRequest  true  "Application JSON"
// @Success      201          {object}  response.Response{data=domain.JobApplication}
// @Failure      400          {object}  response.Response
// @Failure      404          {object}  response.Response
// @Failure      409          {object}  response.Response
// @Router       /jobs/{id}/apply [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Apply(c *gin.Context) {
	jobID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid ID format"))
		return
	}

	var req ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))

	app, err := h.applicationUC.ApplyToJob(c.Request.Context(), userID, jobID, req.CoverLetter, req.ResumeURL)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Application submitted", app)
}

// ListByJob godoc
// @Summary      List applications for a job
// @Description  Returns all applications against a job posting (posting owner or staff)
// @Tags         applications
// @Produce      json
// @Param        id   path      int  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id}/applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListByJob(c *gin.Context) {
	jobID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid ID format"))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	role := c.GetString(string(domain.KeyUserRole))

	apps, err := h.applicationUC.ListByJobID(c.Request.Context(), userID, role, jobID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application list", apps)
}

// List godoc
// @Summary      List applications
// @Description  Staff get a paginated list across all jobs, candidates get their own applications
// @Tags         applications
// @Produce      json
// @Param        page       query     int  false  "Page number"
// @Param        page_size  query     int  false  "Page size"
// @Success      200        {object}  response.Response
// @Router       /applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) List(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	role := c.GetString(string(domain.KeyUserRole))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	apps, total, err := h.applicationUC.ListApplications(c.Request.Context(), userID, role, page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application list", gin.H{
		"applications": apps,
		"total":        total,
		"page":         page,
		"page_size":    pageSize,
	})
}

// ListMine godoc
// @Summary      List own applications
// @Description  Returns the logged-in candidate's applications
// @Tags         applications
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /applications/me [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	apps, err := h.applicationUC.GetMyApplications(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application list", apps)
}

// Get godoc
// @Summary      Get application details
// @Description  Returns a single application (applicant, posting owner or staff)
// @Tags         applications
// @Produce      json
// @Param        id   path      int  true  "Application ID"
// @Success      200  {object}  response.Response{data=domain.JobApplication}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /applications/{id} [get]
// @Security     BearerAuth
func (h *ApplicationHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid ID format"))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	role := c.GetString(string(domain.KeyUserRole))

	app, err := h.applicationUC.GetApplication(c.Request.Context(), userID, role, id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application details", app)
}

// UpdateStatus godoc
// @Summary      Update application status
// @Description  Moves an application to a new status (staff only)
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id      path      int                  true  "Application ID"
// @Param        status  body      UpdateStatusRequest  true  "Status JSON"
// @Success      200     {object}  response.Response
// @Failure      400     {object}  response.Response
// @Failure      403     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Router       /applications/{id}/update_status [patch]
// @Security     BearerAuth
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid ID format"))
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	role := c.GetString(string(domain.KeyUserRole))

	if err := h.applicationUC.UpdateApplicationStatus(c.Request.Context(), role, id, req.Status); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application status updated", gin.H{"status": req.Status})
}
