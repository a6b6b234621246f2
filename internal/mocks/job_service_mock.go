package mocks

import (
	"context"

	"github.com/joshu-sajeev/bidboard/internal/dto"
	"github.com/stretchr/testify/mock"
)

type JobServiceMock struct {
	mock.Mock
}

func (m *JobServiceMock) CreateJob(ctx context.Context, d *dto.JobCreateDTO) (*dto.JobResponseDTO, error) {
	args := m.Called(ctx, d)
	resp, _ := args.Get(0).(*dto.JobResponseDTO)
	return resp, args.Error(1)
}

func (m *JobServiceMock) GetJobByID(ctx context.Context, id string) (*dto.JobResponseDTO, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.JobResponseDTO), args.Error(1)
}

func (m *JobServiceMock) ListJobs(ctx context.Context) ([]dto.JobResponseDTO, error) {
	args := m.Called(ctx)
	jobs, _ := args.Get(0).([]dto.JobResponseDTO)
	return jobs, args.Error(1)
}

func (m *JobServiceMock) ListJobsByBuyer(ctx context.Context, email string) ([]dto.JobResponseDTO, error) {
	args := m.Called(ctx, email)
	jobs, _ := args.Get(0).([]dto.JobResponseDTO)
	return jobs, args.Error(1)
}

func (m *JobServiceMock) SearchJobs(ctx context.Context, q *dto.JobListQuery) ([]dto.JobResponseDTO, error) {
	args := m.Called(ctx, q)
	jobs, _ := args.Get(0).([]dto.JobResponseDTO)
	return jobs, args.Error(1)
}

func (m *JobServiceMock) ReplaceJob(ctx context.Context, id string, d *dto.JobCreateDTO) (*dto.JobResponseDTO, bool, error) {
	args := m.Called(ctx, id, d)
	resp, _ := args.Get(0).(*dto.JobResponseDTO)
	return resp, args.Bool(1), args.Error(2)
}

func (m *JobServiceMock) DeleteJob(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
