package job

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/joshu-sajeev/bidboard/common"
	"github.com/joshu-sajeev/bidboard/internal/config"
	"github.com/joshu-sajeev/bidboard/internal/dto"
	"github.com/joshu-sajeev/bidboard/internal/events"
	"github.com/joshu-sajeev/bidboard/internal/models"
	"github.com/joshu-sajeev/bidboard/internal/storage"
	"github.com/joshu-sajeev/bidboard/internal/telemetry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type JobService struct {
	repo      JobRepoInterface
	publisher events.Publisher
	logger    *slog.Logger
	tracer    trace.Tracer
}

// Option configures optional JobService collaborators.
type Option func(*JobService)

func WithPublisher(p events.Publisher) Option {
	return func(s *JobService) { s.publisher = p }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *JobService) { s.logger = l }
}

func NewJobService(repo JobRepoInterface, opts ...Option) *JobService {
	s := &JobService{
		repo:      repo,
		publisher: events.Nop{},
		logger:    slog.Default(),
		tracer:    otel.Tracer(telemetry.TracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ JobServiceInterface = (*JobService)(nil)

// CreateJob validates the category and price range, stores the job with a
// zero bid_count and returns it with its generated id.
func (s *JobService) CreateJob(ctx context.Context, in *dto.JobCreateDTO) (*dto.JobResponseDTO, error) {
	ctx, span := s.tracer.Start(ctx, "job.CreateJob", trace.WithAttributes(
		attribute.String("job.category", in.Category),
	))
	defer span.End()

	if err := common.CheckContext(ctx); err != nil {
		return nil, err
	}

	if err := validateJob(in); err != nil {
		return nil, err
	}

	job := toModel(in)
	if err := s.repo.Create(ctx, job); err != nil {
		span.SetStatus(codes.Error, "create failed")
		return nil, common.StoreError(err, "job", "add job to database")
	}

	resp := dto.JobResponse(job)
	return &resp, nil
}

// GetJobByID returns the job or a not_found APIError.
func (s *JobService) GetJobByID(ctx context.Context, id string) (*dto.JobResponseDTO, error) {
	if err := common.CheckContext(ctx); err != nil {
		return nil, err
	}

	job, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, common.StoreError(err, "job", "get job")
	}

	resp := dto.JobResponse(job)
	return &resp, nil
}

func (s *JobService) ListJobs(ctx context.Context) ([]dto.JobResponseDTO, error) {
	return s.list(ctx, models.JobQuery{})
}

func (s *JobService) ListJobsByBuyer(ctx context.Context, email string) ([]dto.JobResponseDTO, error) {
	if err := common.CheckContext(ctx); err != nil {
		return nil, err
	}

	jobs, err := s.repo.ListByBuyer(ctx, email)
	if err != nil {
		return nil, common.StoreError(err, "job", "list jobs")
	}

	return dto.JobResponses(jobs), nil
}

// SearchJobs backs /all-jobs: title search, category filter and deadline
// sort composed into one store query.
func (s *JobService) SearchJobs(ctx context.Context, q *dto.JobListQuery) ([]dto.JobResponseDTO, error) {
	query, err := BuildQuery(q)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, query)
}

func (s *JobService) list(ctx context.Context, q models.JobQuery) ([]dto.JobResponseDTO, error) {
	if err := common.CheckContext(ctx); err != nil {
		return nil, err
	}

	jobs, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, common.StoreError(err, "job", "list jobs")
	}

	return dto.JobResponses(jobs), nil
}

// ReplaceJob upserts the job under id. The bool result reports whether the
// job was created. When a concurrent request created the same id first, the
// upsert is retried once and lands on the update path.
func (s *JobService) ReplaceJob(ctx context.Context, id string, in *dto.JobCreateDTO) (*dto.JobResponseDTO, bool, error) {
	ctx, span := s.tracer.Start(ctx, "job.ReplaceJob", trace.WithAttributes(
		attribute.String("job.id", id),
	))
	defer span.End()

	if err := common.CheckContext(ctx); err != nil {
		return nil, false, err
	}

	if err := validateJob(in); err != nil {
		return nil, false, err
	}

	job := toModel(in)
	job.ID = id

	created, err := s.repo.Upsert(ctx, job)
	if errors.Is(err, storage.ErrDuplicate) {
		s.logger.Info("job created concurrently, retrying as update", "job_id", id)
		created, err = s.repo.Upsert(ctx, job)
	}
	if err != nil {
		span.SetStatus(codes.Error, "upsert failed")
		return nil, false, common.StoreError(err, "job", "update job")
	}
	span.SetAttributes(attribute.Bool("job.created", created))

	stored, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, false, common.StoreError(err, "job", "get job")
	}

	resp := dto.JobResponse(stored)
	return &resp, created, nil
}

// DeleteJob removes the job only. Bids referencing it are left in place.
func (s *JobService) DeleteJob(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "job.DeleteJob", trace.WithAttributes(
		attribute.String("job.id", id),
	))
	defer span.End()

	if err := common.CheckContext(ctx); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return common.StoreError(err, "job", "delete job")
	}

	events.Emit(ctx, s.publisher, s.logger, events.New(events.TypeJobDeleted, map[string]any{
		"job_id": id,
	}))
	return nil
}

func validateJob(in *dto.JobCreateDTO) error {
	if !config.IsValidCategory(in.Category) {
		return common.APIError{
			Status:  http.StatusBadRequest,
			Kind:    common.KindValidation,
			Message: "invalid category",
			Fields: map[string]any{
				"provided": in.Category,
				"allowed":  config.AllowedCategories(),
			},
		}
	}

	if in.MaxPrice < in.MinPrice {
		return common.KindErrf(http.StatusBadRequest, common.KindValidation,
			"max_price must not be lower than min_price")
	}

	return nil
}

func toModel(in *dto.JobCreateDTO) *models.Job {
	return &models.Job{
		Title:       in.Title,
		Description: in.Description,
		Deadline:    models.DateOf(in.Deadline),
		MinPrice:    in.MinPrice,
		MaxPrice:    in.MaxPrice,
		Category:    in.Category,
		Buyer: models.Buyer{
			Email: in.Buyer.Email,
			Name:  in.Buyer.Name,
			Photo: in.Buyer.Photo,
		},
	}
}
