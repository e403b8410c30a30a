package v1

import (
	"net/http"
	"strconv"
	"time"

	"recruiter-backend/internal/delivery/http/response"
	"recruiter-backend/internal/domain"
	"recruiter-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type CandidateHandler struct {
	candidateUC domain.CandidateUsecase
}

func NewCandidateHandler(r *gin.RouterGroup, candidateUC domain.CandidateUsecase) {
	handler := &CandidateHandler{candidateUC: candidateUC}

	me := r.Group("/candidates/me")
	{
		me.GET("", handler.GetMyProfile)
		me.PUT("", handler.UpsertMyProfile)
		me.POST("/skills", handler.AddSkill)
		me.DELETE("/skills/:id", handler.RemoveSkill)
		me.POST("/experiences", handler.AddExperience)
		me.DELETE("/experiences/:id", handler.RemoveExperience)
	}

	candidates := r.Group("/candidates")
	{
		candidates.GET("", handler.List)
		candidates.GET("/:user_id", handler.GetProfile)
	}
}

type UpsertProfileRequest struct {
	PhoneNumber       string   `json:"phone_number" binding:"required"`
	Location          string   `json:"location" binding:"required"`
	CurrentPosition   string   `json:"current_position"`
	YearsOfExperience int      `json:"years_of_experience"`
	Skills            []string `json:"skills"`
	Education         string   `json:"education"`
	ResumeURL         string   `json:"resume_url"`
}

type AddSkillRequest struct {
	SkillName         string `json:"skill_name" binding:"required"`
	SkillLevel        string `json:"skill_level" binding:"required"`
	YearsOfExperience int    `json:"years_of_experience"`
}

type AddExperienceRequest struct {
	CompanyName string     `json:"company_name" binding:"required"`
	Position    string     `json:"position" binding:"required"`
	StartDate   time.Time  `json:"start_date" binding:"required"`
	EndDate     *time.Time `json:"end_date"`
	CurrentJob  bool       `json:"current_job"`
	Description string     `json:"description"`
}

// GetMyProfile godoc
// @Summary      Get own candidate profile
// @Description  Returns the candidate profile of the logged-in user
// @Tags         candidates
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.CandidateProfile}
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /candidates/me [get]
// @Security     BearerAuth
func (h *CandidateHandler) GetMyProfile(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	profile, err := h.candidateUC.GetProfile(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile retrieved", profile)
}

// GetProfile godoc
// @Summary      Get a candidate profile
// @Description  Returns a candidate profile by user ID (self or staff only)
// @Tags         candidates
// @Produce      json
// @Param        user_id  path      string  true  "User ID"
// @Success      200      {object}  response.Response{data=domain.CandidateProfile}
// @Failure      403      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Router       /candidates/{user_id} [get]
// @Security     BearerAuth
func (h *CandidateHandler) GetProfile(c *gin.Context) {
	profile, err := h.candidateUC.GetProfile(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile retrieved", profile)
}

// UpsertMyProfile godoc
// @Summary      Create or update own candidate profile
// @Description  Creates the candidate profile on first call and updates it afterwards
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        profile  body      UpsertProfileRequest  true  "Profile JSON"
// @Success      200      {object}  response.Response{data=domain.CandidateProfile}
// @Failure      400      {object}  response.Response
// @Failure      401      {object}  response.Response
// @Router       /candidates/me [put]
// @Security     BearerAuth
func (h *CandidateHandler) UpsertMyProfile(c *gin.Context) {
	var req UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	profile := &domain.CandidateProfile{
		PhoneNumber:       req.PhoneNumber,
		Location:          req.Location,
		CurrentPosition:   req.CurrentPosition,
		YearsOfExperience: req.YearsOfExperience,
		Skills:            req.Skills,
		Education:         req.Education,
		ResumeURL:         req.ResumeURL,
	}

	if err := h.candidateUC.UpsertProfile(c.Request.Context(), profile); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile saved", profile)
}

// List godoc
// @Summary      List candidate profiles
// @Description  Paginated list of candidate profiles (staff only)
// @Tags         candidates
// @Produce      json
// @Param        page       query     int  false  "Page number"
// @Param        page_size  query     int  false  "Page size"
// @Success      200        {object}  response.Response
// @Failure      403        {object}  response.Response
// @Router       /candidates [get]
// @Security     BearerAuth
func (h *CandidateHandler) List(c *gin.Context) {
	role := c.GetString(string(domain.KeyUserRole))
	if !domain.IsStaff(role) {
		c.Error(apperror.Forbidden("Only staff can list candidates"))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	profiles, total, err := h.candidateUC.ListProfiles(c.Request.Context(), page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Candidate list", gin.H{
		"candidates": profiles,
		"total":      total,
		"page":       page,
		"page_size":  pageSize,
	})
}

// AddSkill godoc
// @Summary      Add a skill
// @Description  Adds a skill record to the logged-in candidate's profile
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        skill  body      AddSkillRequest  true  "Skill JSON"
// @Success      201    {object}  response.Response{data=domain.CandidateSkill}
// @Failure      400    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Router       /candidates/me/skills [post]
// @Security     BearerAuth
func (h *CandidateHandler) AddSkill(c *gin.Context) {
	var req AddSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	skill := &domain.CandidateSkill{
		SkillName:         req.SkillName,
		SkillLevel:        req.SkillLevel,
		YearsOfExperience: req.YearsOfExperience,
	}

	created, err := h.candidateUC.AddSkill(c.Request.Context(), skill)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Skill added", created)
}

// RemoveSkill godoc
// @Summary      Remove a skill
// @Description  Deletes a skill record from the logged-in candidate's profile
// @Tags         candidates
// @Produce      json
// @Param        id   path      int  true  "Skill ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /candidates/me/skills/{id} [delete]
// @Security     BearerAuth
func (h *CandidateHandler) RemoveSkill(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid ID format"))
		return
	}

	if err := h.candidateUC.RemoveSkill(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Skill removed", nil)
}

// AddExperience godoc
// @Summary      Add a work experience
// @Description  Adds a work experience entry to the logged-in candidate's profile
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        experience  body      AddExperienceRequest  true  "Experience JSON"
// @Success      201         {object}  response.Response{data=domain.CandidateExperience}
// @Failure      400         {object}  response.Response
// @Failure      404         {object}  response.Response
// @Router       /candidates/me/experiences [post]
// @Security     BearerAuth
func (h *CandidateHandler) AddExperience(c *gin.Context) {
	var req AddExperienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	exp := &domain.CandidateExperience{
		CompanyName: req.CompanyName,
		Position:    req.Position,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		CurrentJob:  req.CurrentJob,
		Description: req.Description,
	}

	created, err := h.candidateUC.AddExperience(c.Request.Context(), exp)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Experience added", created)
}

// RemoveExperience godoc
// @Summary      Remove a work experience
// @Description  Deletes a work experience entry from the logged-in candidate's profile
// @Tags         candidates
// @Produce      json
// @Param        id   path      int  true  "Experience ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /candidates/me/experiences/{id} [delete]
// @Security     BearerAuth
func (h *CandidateHandler) RemoveExperience(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid ID format"))
		return
	}

	if err := h.candidateUC.RemoveExperience(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Experience removed", nil)
}
