package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/joshu-sajeev/bidboard/internal/job"
	"github.com/joshu-sajeev/bidboard/internal/models"
	"github.com/joshu-sajeev/bidboard/internal/storage"
	"gorm.io/gorm"
)

type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

var _ job.JobRepoInterface = (*JobRepository)(nil)

// Create inserts a new job. A missing ID is generated by the model hook and
// BidCount always starts at zero.
func (r *JobRepository) Create(ctx context.Context, job *models.Job) error {
	job.BidCount = 0
	if err := r.db.WithContext(ctx).Create(job).Error; err != nil {
		return fmt.Errorf("create job: %w", translateError(err))
	}
	return nil
}

// Get retrieves a single job by id, or storage.ErrNotFound.
func (r *JobRepository) Get(ctx context.Context, id string) (*models.Job, error) {
	var job models.Job
	if err := r.db.WithContext(ctx).First(&job, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("get job: %w", translateError(err))
	}
	return &job, nil
}

// List returns every job matching q. Without a sort the rows come back in
// whatever order the database yields them.
func (r *JobRepository) List(ctx context.Context, q models.JobQuery) ([]models.Job, error) {
	tx := r.db.WithContext(ctx).Model(&models.Job{})

	foldInGo := false
	if q.Search != "" {
		pattern := "%" + escapeLike(q.Search) + "%"
		switch {
		case r.db.Dialector.Name() == "postgres":
			tx = tx.Where(`title ILIKE ? ESCAPE '\'`, pattern)
		case isASCII(q.Search):
			tx = tx.Where(`LOWER(title) LIKE LOWER(?) ESCAPE '\'`, pattern)
		default:
			// SQLite's LOWER folds ASCII only.
			foldInGo = true
		}
	}
	if q.Category != "" {
		tx = tx.Where("category = ?", q.Category)
	}

	switch q.Sort {
	case models.SortAsc:
		tx = tx.Order("deadline ASC")
	case models.SortDesc:
		tx = tx.Order("deadline DESC")
	}

	jobs := make([]models.Job, 0)
	if err := tx.Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("list jobs: %w", translateError(err))
	}
	if foldInGo {
		jobs = filterTitle(jobs, q.Search)
	}
	return jobs, nil
}

func filterTitle(jobs []models.Job, search string) []models.Job {
	needle := strings.ToLower(search)
	out := jobs[:0]
	for _, j := range jobs {
		if strings.Contains(strings.ToLower(j.Title), needle) {
			out = append(out, j)
		}
	}
	return out
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// ListByBuyer returns every job owned by email.
func (r *JobRepository) ListByBuyer(ctx context.Context, email string) ([]models.Job, error) {
	jobs := make([]models.Job, 0)
	if err := r.db.WithContext(ctx).
		Where("buyer_email = ?", email).
		Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("list jobs by buyer: %w", translateError(err))
	}
	return jobs, nil
}

// Upsert overwrites the caller-owned columns of job.ID, inserting the job
// when no row matched. bid_count and created_at of an existing row are
// never touched.
func (r *JobRepository) Upsert(ctx context.Context, job *models.Job) (bool, error) {
	created := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Job{}).
			Where("id = ?", job.ID).
			Updates(map[string]any{
				"title":       job.Title,
				"description": job.Description,
				"deadline":    job.Deadline,
				"min_price":   job.MinPrice,
				"max_price":   job.MaxPrice,
				"category":    job.Category,
				"buyer_email": job.Buyer.Email,
				"buyer_name":  job.Buyer.Name,
				"buyer_photo": job.Buyer.Photo,
				"updated_at":  time.Now().UTC(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}

		created = true
		job.BidCount = 0
		return tx.Create(job).Error
	})
	if err != nil {
		return false, fmt.Errorf("upsert job: %w", translateError(err))
	}
	return created, nil
}

// Delete removes the job. Bids referencing it are left untouched.
func (r *JobRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Job{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete job: %w", translateError(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete job: %w", storage.ErrNotFound)
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
