package dto

import "time"

type BuyerDTO struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name,omitempty"`
	Photo string `json:"photo,omitempty"`
}

// JobCreateDTO is the body of POST /add-job and PUT /update-job/:id.
type JobCreateDTO struct {
	Title       string    `json:"title" validate:"required,max=255"`
	Description string    `json:"description"`
	Deadline    time.Time `json:"deadline" validate:"required"`
	MinPrice    float64   `json:"min_price" validate:"gte=0"`
	MaxPrice    float64   `json:"max_price" validate:"gte=0,gtefield=MinPrice"`
	Category    string    `json:"category" validate:"required"`
	Buyer       BuyerDTO  `json:"buyer"`
}

type JobResponseDTO struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Deadline    time.Time `json:"deadline"`
	MinPrice    float64   `json:"min_price"`
	MaxPrice    float64   `json:"max_price"`
	Category    string    `json:"category"`
	Buyer       BuyerDTO  `json:"buyer"`
	BidCount    int       `json:"bid_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// JobListQuery is bound from the /all-jobs query string.
type JobListQuery struct {
	Filter string `form:"filter"`
	Search string `form:"search"`
	Sort   string `form:"sort"`
}

type DeleteResultDTO struct {
	DeletedCount int `json:"deleted_count"`
}
