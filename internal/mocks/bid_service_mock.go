package mocks

import (
	"context"

	"github.com/joshu-sajeev/bidboard/internal/dto"
	"github.com/stretchr/testify/mock"
)

type BidServiceMock struct {
	mock.Mock
}

func (m *BidServiceMock) PlaceBid(ctx context.Context, d *dto.BidCreateDTO) (*dto.BidResponseDTO, error) {
	args := m.Called(ctx, d)
	resp, _ := args.Get(0).(*dto.BidResponseDTO)
	return resp, args.Error(1)
}

func (m *BidServiceMock) ListBids(ctx context.Context, email string, byBuyer bool) ([]dto.BidResponseDTO, error) {
	args := m.Called(ctx, email, byBuyer)
	bids, _ := args.Get(0).([]dto.BidResponseDTO)
	return bids, args.Error(1)
}

func (m *BidServiceMock) UpdateStatus(ctx context.Context, id string, status string) (*dto.BidResponseDTO, error) {
	args := m.Called(ctx, id, status)
	resp, _ := args.Get(0).(*dto.BidResponseDTO)
	return resp, args.Error(1)
}
