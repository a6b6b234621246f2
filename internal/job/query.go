package job

import (
	"net/http"
	"strings"

	"github.com/joshu-sajeev/bidboard/common"
	"github.com/joshu-sajeev/bidboard/internal/config"
	"github.com/joshu-sajeev/bidboard/internal/dto"
	"github.com/joshu-sajeev/bidboard/internal/models"
)

// BuildQuery turns the /all-jobs parameters into a single store query.
// An empty search matches every title; an empty filter every category.
func BuildQuery(q *dto.JobListQuery) (models.JobQuery, error) {
	out := models.JobQuery{
		Search:   strings.TrimSpace(q.Search),
		Category: strings.TrimSpace(q.Filter),
	}

	if out.Category != "" && !config.IsValidCategory(out.Category) {
		return models.JobQuery{}, common.APIError{
			Status:  http.StatusBadRequest,
			Kind:    common.KindValidation,
			Message: "invalid category filter",
			Fields: map[string]any{
				"provided": out.Category,
				"allowed":  config.AllowedCategories(),
			},
		}
	}

	switch strings.ToLower(strings.TrimSpace(q.Sort)) {
	case "":
		out.Sort = models.SortNone
	case "asc":
		out.Sort = models.SortAsc
	case "desc":
		out.Sort = models.SortDesc
	default:
		return models.JobQuery{}, common.KindErrf(http.StatusBadRequest, common.KindValidation,
			"sort must be asc or desc")
	}

	return out, nil
}
