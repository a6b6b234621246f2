package bid

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/joshu-sajeev/bidboard/internal/config"
	"github.com/joshu-sajeev/bidboard/internal/dto"
	"github.com/joshu-sajeev/bidboard/internal/models"
)

// BidRepoInterface defines the contract for bid repository operations.
type BidRepoInterface interface {
	// Place stores bid and increments the referenced job's bid_count as one
	// atomic unit. It returns storage.ErrDuplicate when the (email, job_id)
	// pair already has a bid and storage.ErrJobNotFound when the job is
	// gone; in both cases nothing is written.
	Place(ctx context.Context, bid *models.Bid) error
	Get(ctx context.Context, id string) (*models.Bid, error)
	ListByBidder(ctx context.Context, email string) ([]models.Bid, error)
	ListByBuyer(ctx context.Context, email string) ([]models.Bid, error)
	// UpdateStatus sets status to `to` only if it is still `from`, returning
	// storage.ErrConflict otherwise.
	UpdateStatus(ctx context.Context, id string, from, to config.BidStatus) error
}

// JobReader is the slice of the job store bid placement needs.
type JobReader interface {
	Get(ctx context.Context, id string) (*models.Job, error)
}

// BidServiceInterface defines the contract for bid business logic operations.
type BidServiceInterface interface {
	PlaceBid(ctx context.Context, dto *dto.BidCreateDTO) (*dto.BidResponseDTO, error)
	ListBids(ctx context.Context, email string, byBuyer bool) ([]dto.BidResponseDTO, error)
	UpdateStatus(ctx context.Context, id string, status string) (*dto.BidResponseDTO, error)
}

// BidHandlerInterface defines the contract for HTTP request handlers.
type BidHandlerInterface interface {
	Create(c *gin.Context)
	List(c *gin.Context)
	UpdateStatus(c *gin.Context)
}
