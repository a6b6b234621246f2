package bid

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/joshu-sajeev/bidboard/common"
	"github.com/joshu-sajeev/bidboard/internal/config"
	"github.com/joshu-sajeev/bidboard/internal/dto"
	"github.com/joshu-sajeev/bidboard/internal/events"
	"github.com/joshu-sajeev/bidboard/internal/metrics"
	"github.com/joshu-sajeev/bidboard/internal/models"
	"github.com/joshu-sajeev/bidboard/internal/storage"
	"github.com/joshu-sajeev/bidboard/internal/telemetry"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DuplicateBidMessage is returned when a bidder applies to a job twice.
const DuplicateBidMessage = "You Have already Applied for this Job."

type BidService struct {
	repo      BidRepoInterface
	jobs      JobReader
	publisher events.Publisher
	metrics   *metrics.Metrics
	logger    *slog.Logger
	tracer    trace.Tracer
}

// Option configures optional BidService collaborators.
type Option func(*BidService)

func WithPublisher(p events.Publisher) Option {
	return func(s *BidService) { s.publisher = p }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *BidService) { s.metrics = m }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *BidService) { s.logger = l }
}

func NewBidService(repo BidRepoInterface, jobs JobReader, opts ...Option) *BidService {
	s := &BidService{
		repo:      repo,
		jobs:      jobs,
		publisher: events.Nop{},
		logger:    slog.Default(),
		tracer:    otel.Tracer(telemetry.TracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ BidServiceInterface = (*BidService)(nil)

// PlaceBid stores a Pending bid for in.JobID. Buyer, title and category are
// copied from the job so the owner's bid listing does not depend on the
// caller. The uniqueness check and the bid_count increment happen inside
// the repository's single atomic write.
func (s *BidService) PlaceBid(ctx context.Context, in *dto.BidCreateDTO) (*dto.BidResponseDTO, error) {
	ctx, span := s.tracer.Start(ctx, "bid.PlaceBid", trace.WithAttributes(
		attribute.String("bid.job_id", in.JobID),
	))
	defer span.End()

	if err := common.CheckContext(ctx); err != nil {
		return nil, err
	}

	job, err := s.jobs.Get(ctx, in.JobID)
	if err != nil {
		span.SetStatus(codes.Error, "job lookup failed")
		return nil, common.StoreError(err, "job", "get job")
	}

	deadline := in.Deadline
	if deadline.IsZero() {
		deadline = job.DeadlineTime()
	}

	bid := &models.Bid{
		JobID:    job.ID,
		Email:    in.Email,
		Buyer:    job.Buyer.Email,
		Price:    in.Price,
		Comment:  in.Comment,
		Deadline: models.DateOf(deadline),
		Title:    job.Title,
		Category: job.Category,
		Status:   config.BidStatusPending,
	}

	if err := s.repo.Place(ctx, bid); err != nil {
		span.SetStatus(codes.Error, "place failed")
		switch {
		case errors.Is(err, storage.ErrDuplicate):
			s.metrics.BidRejected("duplicate")
			return nil, common.KindErrf(http.StatusBadRequest, common.KindDuplicateBid, DuplicateBidMessage)
		case errors.Is(err, storage.ErrJobNotFound):
			s.metrics.BidRejected("job_missing")
			s.logger.Warn("bid rejected: job disappeared before bid_count increment",
				"job_id", job.ID, "email", in.Email)
			return nil, common.StoreError(err, "job", "place bid")
		default:
			return nil, common.StoreError(err, "bid", "place bid")
		}
	}

	s.metrics.BidPlaced()
	events.Emit(ctx, s.publisher, s.logger, events.New(events.TypeBidPlaced, map[string]any{
		"bid_id": bid.ID,
		"job_id": bid.JobID,
		"email":  bid.Email,
		"buyer":  bid.Buyer,
	}))

	resp := dto.BidResponse(bid)
	return &resp, nil
}

// ListBids returns the bids placed by email, or, when byBuyer is set, the
// bids received on jobs owned by email.
func (s *BidService) ListBids(ctx context.Context, email string, byBuyer bool) ([]dto.BidResponseDTO, error) {
	if err := common.CheckContext(ctx); err != nil {
		return nil, err
	}

	var (
		bids []models.Bid
		err  error
	)
	if byBuyer {
		bids, err = s.repo.ListByBuyer(ctx, email)
	} else {
		bids, err = s.repo.ListByBidder(ctx, email)
	}
	if err != nil {
		return nil, common.StoreError(err, "bid", "list bids")
	}

	return dto.BidResponses(bids), nil
}

// UpdateStatus moves a bid along the status state machine. Unknown labels
// are invalid_status, illegal edges invalid_transition. Re-applying the
// current status succeeds without a write.
func (s *BidService) UpdateStatus(ctx context.Context, id string, status string) (*dto.BidResponseDTO, error) {
	ctx, span := s.tracer.Start(ctx, "bid.UpdateStatus", trace.WithAttributes(
		attribute.String("bid.id", id),
		attribute.String("bid.status", status),
	))
	defer span.End()

	if err := common.CheckContext(ctx); err != nil {
		return nil, err
	}

	to, ok := config.ParseBidStatus(status)
	if !ok {
		return nil, common.APIError{
			Status:  http.StatusBadRequest,
			Kind:    common.KindInvalidStatus,
			Message: "invalid bid status",
			Fields: map[string]any{
				"provided": status,
				"allowed":  config.AllowedBidStatuses,
			},
		}
	}

	bid, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, common.StoreError(err, "bid", "get bid")
	}

	if bid.Status == to {
		resp := dto.BidResponse(bid)
		return &resp, nil
	}

	if !IsTransitionAllowed(bid.Status, to) {
		return nil, transitionError(bid.Status, to)
	}

	if err := s.repo.UpdateStatus(ctx, id, bid.Status, to); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			span.SetStatus(codes.Error, "status changed concurrently")
			return nil, common.APIError{
				Status:  http.StatusConflict,
				Kind:    common.KindInvalidTransition,
				Message: "bid status changed concurrently",
				Fields:  map[string]any{"expected": bid.Status, "to": to},
			}
		}
		return nil, common.StoreError(err, "bid", "update bid status")
	}

	from := bid.Status
	updated, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, common.StoreError(err, "bid", "get bid")
	}

	s.metrics.StatusChanged(string(to))
	events.Emit(ctx, s.publisher, s.logger, events.New(events.TypeBidStatusChanged, map[string]any{
		"bid_id": id,
		"job_id": updated.JobID,
		"from":   from,
		"to":     to,
	}))

	resp := dto.BidResponse(updated)
	return &resp, nil
}

func transitionError(from, to config.BidStatus) common.APIError {
	msg := "invalid status transition"
	if IsTerminal(from) {
		msg = fmt.Sprintf("bid is already %s", from)
	}
	return common.APIError{
		Status:  http.StatusConflict,
		Kind:    common.KindInvalidTransition,
		Message: msg,
		Fields:  map[string]any{"from": from, "to": to, "terminal": IsTerminal(from)},
	}
}
