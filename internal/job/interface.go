package job

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/joshu-sajeev/bidboard/internal/dto"
	"github.com/joshu-sajeev/bidboard/internal/models"
)

// JobRepoInterface defines the contract for job repository operations.
type JobRepoInterface interface {
	Create(ctx context.Context, job *models.Job) error
	Get(ctx context.Context, id string) (*models.Job, error)
	List(ctx context.Context, q models.JobQuery) ([]models.Job, error)
	ListByBuyer(ctx context.Context, email string) ([]models.Job, error)
	// Upsert writes every caller-owned field of job. BidCount and CreatedAt
	// of an existing row are preserved. created reports an insert.
	Upsert(ctx context.Context, job *models.Job) (created bool, err error)
	Delete(ctx context.Context, id string) error
}

// JobServiceInterface defines the contract for job business logic operations.
type JobServiceInterface interface {
	CreateJob(ctx context.Context, dto *dto.JobCreateDTO) (*dto.JobResponseDTO, error)
	GetJobByID(ctx context.Context, id string) (*dto.JobResponseDTO, error)
	ListJobs(ctx context.Context) ([]dto.JobResponseDTO, error)
	ListJobsByBuyer(ctx context.Context, email string) ([]dto.JobResponseDTO, error)
	SearchJobs(ctx context.Context, q *dto.JobListQuery) ([]dto.JobResponseDTO, error)
	ReplaceJob(ctx context.Context, id string, dto *dto.JobCreateDTO) (*dto.JobResponseDTO, bool, error)
	DeleteJob(ctx context.Context, id string) error
}

// JobHandlerInterface defines the contract for HTTP request handlers.
type JobHandlerInterface interface {
	Create(c *gin.Context)
	Get(c *gin.Context)
	List(c *gin.Context)
	ListByBuyer(c *gin.Context)
	Search(c *gin.Context)
	Replace(c *gin.Context)
	Delete(c *gin.Context)
	Categories(c *gin.Context)
}
