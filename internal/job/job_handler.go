package job

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshu-sajeev/bidboard/common"
	"github.com/joshu-sajeev/bidboard/internal/config"
	"github.com/joshu-sajeev/bidboard/internal/dto"
	"github.com/joshu-sajeev/bidboard/middleware"
)

type JobHandler struct {
	service JobServiceInterface
}

func NewJobHandler(s JobServiceInterface) *JobHandler {
	return &JobHandler{service: s}
}

var _ JobHandlerInterface = (*JobHandler)(nil)

// Create handles POST /add-job. It binds and validates the body, delegates
// to the JobService, and returns HTTP 201 with the stored job.
func (h *JobHandler) Create(c *gin.Context) {
	var req dto.JobCreateDTO

	if !middleware.Bind(c, &req) {
		c.Abort()
		return
	}

	resp, err := h.service.CreateJob(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		c.Abort()
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Get handles GET /job/:id and returns HTTP 404 when the id is unknown.
func (h *JobHandler) Get(c *gin.Context) {
	id, ok := jobID(c)
	if !ok {
		return
	}

	resp, err := h.service.GetJobByID(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// List handles GET /jobs.
func (h *JobHandler) List(c *gin.Context) {
	jobs, err := h.service.ListJobs(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, jobs)
}

// ListByBuyer handles GET /jobs/:email.
func (h *JobHandler) ListByBuyer(c *gin.Context) {
	email := c.Param("email")
	if !middleware.ValidEmail(email) {
		c.Error(common.KindErrf(http.StatusBadRequest, common.KindValidation, "invalid email"))
		return
	}

	jobs, err := h.service.ListJobsByBuyer(c.Request.Context(), email)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, jobs)
}

// Search handles GET /all-jobs?filter=&search=&sort=.
func (h *JobHandler) Search(c *gin.Context) {
	var q dto.JobListQuery
	if !middleware.BindQuery(c, &q) {
		return
	}

	jobs, err := h.service.SearchJobs(c.Request.Context(), &q)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, jobs)
}

// Replace handles PUT /update-job/:id. It answers 201 when the job did not
// exist before and 200 otherwise.
func (h *JobHandler) Replace(c *gin.Context) {
	id, ok := jobID(c)
	if !ok {
		return
	}

	var req dto.JobCreateDTO
	if !middleware.Bind(c, &req) {
		return
	}

	resp, created, err := h.service.ReplaceJob(c.Request.Context(), id, &req)
	if err != nil {
		c.Error(err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, resp)
}

// Delete handles DELETE /job/:id.
func (h *JobHandler) Delete(c *gin.Context) {
	id, ok := jobID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteJob(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.DeleteResultDTO{DeletedCount: 1})
}

// Categories handles GET /categories.
func (h *JobHandler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, config.Categories)
}

func jobID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if !middleware.ValidID(id) {
		c.Error(common.KindErrf(http.StatusBadRequest, common.KindValidation, "invalid ID"))
		return "", false
	}
	return id, true
}
