package dto

import (
	"time"

	"github.com/joshu-sajeev/bidboard/internal/config"
)

// BidCreateDTO is the body of POST /add-bid. Buyer, title and category are
// taken from the job, not the request.
type BidCreateDTO struct {
	JobID    string    `json:"job_id" validate:"required,uuid"`
	Email    string    `json:"email" validate:"required,email"`
	Price    float64   `json:"price" validate:"gte=0"`
	Comment  string    `json:"comment" validate:"max=2000"`
	Deadline time.Time `json:"deadline"`
}

type BidResponseDTO struct {
	ID        string           `json:"id"`
	JobID     string           `json:"job_id"`
	Email     string           `json:"email"`
	Buyer     string           `json:"buyer"`
	Price     float64          `json:"price"`
	Comment   string           `json:"comment,omitempty"`
	Deadline  time.Time        `json:"deadline"`
	Title     string           `json:"title"`
	Category  string           `json:"category"`
	Status    config.BidStatus `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type BidStatusUpdateDTO struct {
	Status string `json:"status" validate:"required"`
}
