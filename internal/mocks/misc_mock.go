package mocks

import (
	"context"

	"github.com/joshu-sajeev/bidboard/internal/events"
	"github.com/joshu-sajeev/bidboard/internal/models"
	"github.com/stretchr/testify/mock"
)

type PublisherMock struct {
	mock.Mock
}

func (m *PublisherMock) Publish(ctx context.Context, e events.Event) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

type DriftReaderMock struct {
	mock.Mock
}

func (m *DriftReaderMock) ReadDrift(ctx context.Context) (*models.DriftReport, error) {
	args := m.Called(ctx)
	report, _ := args.Get(0).(*models.DriftReport)
	return report, args.Error(1)
}
