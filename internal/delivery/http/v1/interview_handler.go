package v1

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"recruiter-backend/internal/delivery/http/response"
	"recruiter-backend/internal/domain"
	"recruiter-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type InterviewHandler struct {
	interviewUC domain.InterviewUsecase
}

func NewInterviewHandler(r *gin.RouterGroup, interviewUC domain.InterviewUsecase) {
	handler := &InterviewHandler{interviewUC: interviewUC}

	interviews := r.Group("/interviews")
	{
		interviews.POST("", handler.Schedule)
		interviews.GET("", handler.List)
		interviews.GET("/export", handler.Export)
		interviews.GET("/:id", handler.Get)
		interviews.PUT("/:id", handler.Update)
		interviews.POST("/:id/start_interview", handler.Start)
		interviews.POST("/:id/cancel_interview", handler.Cancel)
		interviews.POST("/:id/add_question", handler.AddQuestion)
		interviews.POST("/:id/submit_feedback", handler.SubmitFeedback)
		interviews.GET("/:id/questions", handler.ListQuestions)
		interviews.GET("/:id/feedback", handler.GetFeedback)
	}
}

type ScheduleInterviewRequest struct {
	CandidateUserID string    `json:"candidate_user_id" binding:"required"`
	InterviewerID   string    `json:"interviewer_id"`
	JobID           int64     `json:"job_id" binding:"required"`
	ScheduledDate   time.Time `json:"scheduled_date" binding:"required"`
	Duration        int       `json:"duration" binding:"required"`
	InterviewType   string    `json:"interview_type" binding:"required"`
	MeetingLink     string    `json:"meeting_link"`
	Notes           string    `json:"notes"`
}

type UpdateInterviewRequest struct {
	ScheduledDate *time.Time `json:"scheduled_date"`
	Duration      *int       `json:"duration"`
	Status        *string    `json:"status"`
	MeetingLink   *string    `json:"meeting_link"`
	Notes         *string    `json:"notes"`
	Rating        *int       `json:"rating"`
}

type AddQuestionRequest struct {
	QuestionText    string `json:"question_text" binding:"required"`
	QuestionType    string `json:"question_type" binding:"required"`
	ExpectedAnswer  string `json:"expected_answer"`
	CandidateAnswer string `json:"candidate_answer"`
	Score           *int   `json:"score"`
	Notes           string `json:"notes"`
}

type SubmitFeedbackRequest struct {
	Strengths                 string `json:"strengths" binding:"required"`
	Weaknesses                string `json:"weaknesses" binding:"required"`
	OverallRating             int    `json:"overall_rating" binding:"required"`
	TechnicalSkillsRating     int    `json:"technical_skills_rating" binding:"required"`
	CommunicationSkillsRating int    `json:"communication_skills_rating" binding:"required"`
	ProblemSolvingRating      int    `json:"problem_solving_rating" binding:"required"`
	Recommendation            string `json:"recommendation" binding:"required"`
}

// Schedule godoc
// @Summary      Schedule an interview
// @Description  Schedules a new interview. The interviewer defaults to the caller when not set
// @Tags         interviews
// @Accept       json
// @Produce      json
// @Param        interview  body      ScheduleInterviewRequest  true  "Interview JSON"
// @Success      201        {object}  response.Response{data=domain.Interview}
// @Failure      400        {object}  response.Response
// @Failure      403        {object}  response.Response
// @Failure      409        {object}  response.Response
// @Router       /interviews [post]
// @Security     BearerAuth
func (h *InterviewHandler) Schedule(c *gin.Context) {
	var req ScheduleInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	role := c.GetString(string(domain.KeyUserRole))

	interviewerID := req.InterviewerID
	if interviewerID == "" {
		interviewerID = userID
	}

	interview := &domain.Interview{
		CandidateUserID: req.CandidateUserID,
		InterviewerID:   interviewerID,
		JobID:           req.JobID,
		ScheduledDate:   req.ScheduledDate,
		Duration:        req.Duration,
		InterviewType:   req.InterviewType,
		MeetingLink:     req.MeetingLink,
		Notes:           req.Notes,
	}

	if err := h.interviewUC.Schedule(c.Request.Context(), userID, role, interview); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Interview scheduled", interview)
}

// List godoc
// @Summary      List interviews
// @Description  Staff see all interviews, interviewers see the ones they conduct, candidates their own
// @Tags         interviews
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /interviews [get]
// @Security     BearerAuth
func (h *InterviewHandler) List(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	role := c.GetString(string(domain.KeyUserRole))

	interviews, err := h.interviewUC.List(c.Request.Context(), userID, role)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Interview list", interviews)
}

// Get godoc
// @Summary      Get interview details
// @Description  Returns an interview with its questions and feedback
// @Tags         interviews
// @Produce      json
// @Param        id   path      int  true  "Interview ID"
// @Success      200  {object}  response.Response{data=domain.Interview}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /interviews/{id} [get]
// @Security     BearerAuth
func (h *InterviewHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid ID format"))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	role := c.GetString(string(domain.KeyUserRole))

	interview, err := h.interviewUC.Get(c.Request.Context(), userID, role, id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Interview details", interview)
}

// Update godoc
// @Summary      Update an interview
// @Description  Partially updates an interview. Rescheduling moves the pending reminder
// @Tags         interviews
// @Accept       json
// @Produce      json
// @Param        id         path      int                     true  "Interview ID"
// @Param        interview  body      UpdateInterviewRequest  true  "Fields to update"
// @Success      200        {object}  response.Response{data=domain.Interview}
// @Failure      400        {object}  response.Response
// @Failure      403        {object}  response.Response
// @Failure      404        {object}  response.Response
// @Router       /interviews/{id} [put]
// @Security     BearerAuth
func (h *InterviewHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid ID format"))
		return
	}

	var req UpdateInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	role := c.GetString(string(domain.KeyUserRole))

	update := &domain.InterviewUpdate{
		ScheduledDate: req.ScheduledDate,
		Duration:      req.Duration,
		Status:        req.Status,
		MeetingLink:   req.MeetingLink,
		Notes:         req.Notes,
		Rating:        req.Rating,
	}

	interview, err := h.interviewUC.Update(c.Request.Context(), userID, role, id, update)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Interview updated", interview)
}

// Start godoc
// @Summary      Start an interview
// @Description  Moves a scheduled interview to IN_PROGRESS
// @Tags         interviews
// @Produce      json
// @Param        id   path      int  true  "Interview ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /interviews/{id}/start_interview [post]
// @Security     BearerAuth
func (h *InterviewHandler) Start(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid ID format"))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	role := c.GetString(string(domain.KeyUserRole))

	if err := h.interviewUC.Start(c.Request.Context(), userID, role, id); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Interview started", gin.H{"status": domain.InterviewStatusInProgress})
}

// Cancel godoc
// @Summary      Cancel an interview
// @Description  Cancels a scheduled or in-progress interview and drops its pending reminder
// @Tags         interviews
// @Produce      json
// @Param        id   path      int  true  "Interview ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /interviews/{id}/cancel_interview [post]
// @Security     BearerAuth
func (h *InterviewHandler) Cancel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid ID format"))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	role := c.GetString(string(domain.KeyUserRole))

	if err := h.interviewUC.Cancel(c.Request.Context(), userID, role, id); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Interview cancelled", gin.H{"status": domain.InterviewStatusCancelled})
}

// AddQuestion godoc
// @Summary      Add an interview question
// @Description  Attaches a question to an interview (interviewer or staff)
// @Tags         interviews
// @Accept       json
// @Produce      json
// @Param        id        path      int                 true  "Interview ID"
// @Param        question  body      AddQuestionRequest  true  "Question JSON"
// @Success      201       {object}  response.Response{data=domain.InterviewQuestion}
// @Failure      400       {object}  response.Response
// @Failure      403       {object}  response.Response
// @Failure      404       {object}  response.Response
// @Router       /interviews/{id}/add_question [post]
// @Security     BearerAuth
func (h *InterviewHandler) AddQuestion(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid ID format"))
		return
	}

	var req AddQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	role := c.GetString(string(domain.KeyUserRole))

	question := &domain.InterviewQuestion{
		QuestionText:    req.QuestionText,
		QuestionType:    req.QuestionType,
		ExpectedAnswer:  req.ExpectedAnswer,
		CandidateAnswer: req.CandidateAnswer,
		Score:           req.Score,
		Notes:           req.Notes,
	}

	if err := h.interviewUC.AddQuestion(c.Request.Context(), userID, role, id, question); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Question added", question)
}

// SubmitFeedback godoc
// @Summary      Submit interview feedback
// @Description  Submits feedback, completes the interview and notifies the candidate
// @Tags         interviews
// @Accept       json
// @Produce      json
// @Param        id        path      int                    true  "Interview ID"
// @Param        feedback  body      SubmitFeedbackRequest  true  "Feedback JSON"
// @Success      201       {object}  response.Response{data=domain.InterviewFeedback}
// @Failure      400       {object}  response.Response
// @Failure      403       {object}  response.Response
// @Failure      404       {object}  response.Response
// @Failure      409       {object}  response.Response
// @Router       /interviews/{id}/submit_feedback [post]
// @Security     BearerAuth
func (h *InterviewHandler) SubmitFeedback(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid ID format"))
		return
	}

	var req SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	role := c.GetString(string(domain.KeyUserRole))

	feedback := &domain.InterviewFeedback{
		Strengths:                 req.Strengths,
		Weaknesses:                req.Weaknesses,
		OverallRating:             req.OverallRating,
		TechnicalSkillsRating:     req.TechnicalSkillsRating,
		CommunicationSkillsRating: req.CommunicationSkillsRating,
		ProblemSolvingRating:      req.ProblemSolvingRating,
		Recommendation:            req.Recommendation,
	}

	if err := h.interviewUC.SubmitFeedback(c.Request.Context(), userID, role, id, feedback); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Feedback submitted", feedback)
}

// ListQuestions godoc
// @Summary      List interview questions
// @Description  Returns the questions attached to an interview
// @Tags         interviews
// @Produce      json
// @Param        id   path      int  true  "Interview ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /interviews/{id}/questions [get]
// @Security     BearerAuth
func (h *InterviewHandler) ListQuestions(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid ID format"))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	role := c.GetString(string(domain.KeyUserRole))

	interview, err := h.interviewUC.Get(c.Request.Context(), userID, role, id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Question list", interview.Questions)
}

// GetFeedback godoc
// @Summary      Get interview feedback
// @Description  Returns the feedback submitted for an interview
// @Tags         interviews
// @Produce      json
// @Param        id   path      int  true  "Interview ID"
// @Success      200  {object}  response.Response{data=domain.InterviewFeedback}
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /interviews/{id}/feedback [get]
// @Security     BearerAuth
func (h *InterviewHandler) GetFeedback(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid ID format"))
		return
	}

	userID := c.GetString(string(domain.KeyUserID))
	role := c.GetString(string(domain.KeyUserRole))

	interview, err := h.interviewUC.Get(c.Request.Context(), userID, role, id)
	if err != nil {
		c.Error(err)
		return
	}

	if interview.FeedbackDetail == nil {
		c.Error(apperror.NotFound("Feedback not found"))
		return
	}

	response.Success(c, http.StatusOK, "Interview feedback", interview.FeedbackDetail)
}

// Export godoc
// @Summary      Export interview report
// @Description  Exports completed interviews as an xlsx or csv file (staff only)
// @Tags         interviews
// @Produce      application/octet-stream
// @Param        format  query  string  false  "Export format (xlsx or csv)"  default(xlsx)
// @Success      200  {file}  binary
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /interviews/export [get]
// @Security     BearerAuth
func (h *InterviewHandler) Export(c *gin.Context) {
	role := c.GetString(string(domain.KeyUserRole))
	format := c.DefaultQuery("format", "xlsx")

	data, contentType, err := h.interviewUC.ExportReport(c.Request.Context(), role, format)
	if err != nil {
		c.Error(err)
		return
	}

	filename := fmt.Sprintf("interview-report-%s.%s", time.Now().Format("2006-01-02"), format)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}
