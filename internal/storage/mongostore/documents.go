package mongostore

import (
	"time"

	"github.com/joshu-sajeev/bidboard/internal/config"
	"github.com/joshu-sajeev/bidboard/internal/models"
	"gorm.io/datatypes"
)

type buyerDocument struct {
	Email string `bson:"email"`
	Name  string `bson:"name,omitempty"`
	Photo string `bson:"photo,omitempty"`
}

type jobDocument struct {
	ID          string        `bson:"_id"`
	Title       string        `bson:"title"`
	Description string        `bson:"description"`
	Deadline    time.Time     `bson:"deadline"`
	MinPrice    float64       `bson:"min_price"`
	MaxPrice    float64       `bson:"max_price"`
	Category    string        `bson:"category"`
	Buyer       buyerDocument `bson:"buyer"`
	BidCount    int           `bson:"bid_count"`
	CreatedAt   time.Time     `bson:"created_at"`
	UpdatedAt   time.Time     `bson:"updated_at"`
}

type bidDocument struct {
	ID        string           `bson:"_id"`
	JobID     string           `bson:"job_id"`
	Email     string           `bson:"email"`
	Buyer     string           `bson:"buyer"`
	Price     float64          `bson:"price"`
	Comment   string           `bson:"comment,omitempty"`
	Deadline  time.Time        `bson:"deadline"`
	Title     string           `bson:"title"`
	Category  string           `bson:"category"`
	Status    config.BidStatus `bson:"status"`
	CreatedAt time.Time        `bson:"created_at"`
	UpdatedAt time.Time        `bson:"updated_at"`
}

func jobToDocument(j *models.Job) jobDocument {
	return jobDocument{
		ID:          j.ID,
		Title:       j.Title,
		Description: j.Description,
		Deadline:    j.DeadlineTime(),
		MinPrice:    j.MinPrice,
		MaxPrice:    j.MaxPrice,
		Category:    j.Category,
		Buyer: buyerDocument{
			Email: j.Buyer.Email,
			Name:  j.Buyer.Name,
			Photo: j.Buyer.Photo,
		},
		BidCount:  j.BidCount,
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
	}
}

func (d jobDocument) model() models.Job {
	return models.Job{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Deadline:    datatypes.Date(d.Deadline.UTC()),
		MinPrice:    d.MinPrice,
		MaxPrice:    d.MaxPrice,
		Category:    d.Category,
		Buyer: models.Buyer{
			Email: d.Buyer.Email,
			Name:  d.Buyer.Name,
			Photo: d.Buyer.Photo,
		},
		BidCount:  d.BidCount,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func bidToDocument(b *models.Bid) bidDocument {
	return bidDocument{
		ID:        b.ID,
		JobID:     b.JobID,
		Email:     b.Email,
		Buyer:     b.Buyer,
		Price:     b.Price,
		Comment:   b.Comment,
		Deadline:  b.DeadlineTime(),
		Title:     b.Title,
		Category:  b.Category,
		Status:    b.Status,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func (d bidDocument) model() models.Bid {
	return models.Bid{
		ID:        d.ID,
		JobID:     d.JobID,
		Email:     d.Email,
		Buyer:     d.Buyer,
		Price:     d.Price,
		Comment:   d.Comment,
		Deadline:  datatypes.Date(d.Deadline.UTC()),
		Title:     d.Title,
		Category:  d.Category,
		Status:    d.Status,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
