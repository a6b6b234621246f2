package mocks

import (
	"context"

	"github.com/joshu-sajeev/bidboard/internal/config"
	"github.com/joshu-sajeev/bidboard/internal/models"
	"github.com/stretchr/testify/mock"
)

type BidRepoMock struct {
	mock.Mock
}

func (m *BidRepoMock) Place(ctx context.Context, bid *models.Bid) error {
	args := m.Called(ctx, bid)
	return args.Error(0)
}

func (m *BidRepoMock) Get(ctx context.Context, id string) (*models.Bid, error) {
	args := m.Called(ctx, id)

	bid, _ := args.Get(0).(*models.Bid)
	return bid, args.Error(1)
}

func (m *BidRepoMock) ListByBidder(ctx context.Context, email string) ([]models.Bid, error) {
	args := m.Called(ctx, email)

	bids, _ := args.Get(0).([]models.Bid)
	return bids, args.Error(1)
}

func (m *BidRepoMock) ListByBuyer(ctx context.Context, email string) ([]models.Bid, error) {
	args := m.Called(ctx, email)

	bids, _ := args.Get(0).([]models.Bid)
	return bids, args.Error(1)
}

func (m *BidRepoMock) UpdateStatus(ctx context.Context, id string, from, to config.BidStatus) error {
	args := m.Called(ctx, id, from, to)
	return args.Error(0)
}
