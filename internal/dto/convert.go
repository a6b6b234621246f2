package dto

import (
	"github.com/joshu-sajeev/bidboard/internal/models"
)

func JobResponse(job *models.Job) JobResponseDTO {
	return JobResponseDTO{
		ID:          job.ID,
		Title:       job.Title,
		Description: job.Description,
		Deadline:    job.DeadlineTime(),
		MinPrice:    job.MinPrice,
		MaxPrice:    job.MaxPrice,
		Category:    job.Category,
		Buyer: BuyerDTO{
			Email: job.Buyer.Email,
			Name:  job.Buyer.Name,
			Photo: job.Buyer.Photo,
		},
		BidCount:  job.BidCount,
		CreatedAt: job.CreatedAt,
		UpdatedAt: job.UpdatedAt,
	}
}

func JobResponses(jobs []models.Job) []JobResponseDTO {
	dtos := make([]JobResponseDTO, len(jobs))
	for i := range jobs {
		dtos[i] = JobResponse(&jobs[i])
	}
	return dtos
}

func BidResponse(bid *models.Bid) BidResponseDTO {
	return BidResponseDTO{
		ID:        bid.ID,
		JobID:     bid.JobID,
		Email:     bid.Email,
		Buyer:     bid.Buyer,
		Price:     bid.Price,
		Comment:   bid.Comment,
		Deadline:  bid.DeadlineTime(),
		Title:     bid.Title,
		Category:  bid.Category,
		Status:    bid.Status,
		CreatedAt: bid.CreatedAt,
		UpdatedAt: bid.UpdatedAt,
	}
}

func BidResponses(bids []models.Bid) []BidResponseDTO {
	dtos := make([]BidResponseDTO, len(bids))
	for i := range bids {
		dtos[i] = BidResponse(&bids[i])
	}
	return dtos
}
