package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/joshu-sajeev/bidboard/internal/config"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Bid is one bidder's application to a job. The (email, job_id) pair is
// unique; job_id is deliberately not a foreign key so deleting a job leaves
// its bids in place.
type Bid struct {
	ID        string  `gorm:"type:varchar(36);primaryKey"`
	JobID     string  `gorm:"type:varchar(36);not null;uniqueIndex:idx_bids_email_job,priority:2"`
	Email     string  `gorm:"type:varchar(320);not null;uniqueIndex:idx_bids_email_job,priority:1"`
	Buyer     string  `gorm:"type:varchar(320);not null;index"`
	Price     float64 `gorm:"not null;default:0"`
	Comment   string  `gorm:"type:text"`
	Deadline  datatypes.Date
	Title     string           `gorm:"type:varchar(255)"`
	Category  string           `gorm:"type:varchar(64)"`
	Status    config.BidStatus `gorm:"type:varchar(32);not null;default:'Pending'"`
	CreatedAt time.Time        `gorm:"autoCreateTime"`
	UpdatedAt time.Time        `gorm:"autoUpdateTime"`
}

func (b *Bid) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Status == "" {
		b.Status = config.BidStatusPending
	}
	return nil
}

// DeadlineTime returns the deadline as a UTC time.Time.
func (b Bid) DeadlineTime() time.Time {
	return time.Time(b.Deadline).UTC()
}
