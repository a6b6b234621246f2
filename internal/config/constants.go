package config

import "slices"

type BidStatus string

const (
	BidStatusPending    BidStatus = "Pending"
	BidStatusInProgress BidStatus = "In Progress"
	BidStatusCompleted  BidStatus = "Completed"
	BidStatusRejected   BidStatus = "Rejected"
)

var AllowedBidStatuses = []BidStatus{
	BidStatusPending,
	BidStatusInProgress,
	BidStatusCompleted,
	BidStatusRejected,
}

// ParseBidStatus returns the status named by s, or false if s is not one of
// AllowedBidStatuses. Matching is exact.
func ParseBidStatus(s string) (BidStatus, bool) {
	st := BidStatus(s)
	if slices.Contains(AllowedBidStatuses, st) {
		return st, true
	}
	return "", false
}

type Category string

const (
	CategoryWebDevelopment   Category = "Web Development"
	CategoryDigitalMarketing Category = "Digital Marketing"
	CategoryGraphicsDesign   Category = "Graphics Design"
)

// CategoryStyle carries the display attributes a client renders a category
// badge with.
type CategoryStyle struct {
	Text       string `json:"text"`
	Background string `json:"background"`
}

// CategoryInfo pairs a category with its display attributes.
type CategoryInfo struct {
	Name  Category      `json:"name"`
	Style CategoryStyle `json:"style"`
}

// Categories is the single definition of the job category enum. Order is the
// order clients list them in.
var Categories = []CategoryInfo{
	{Name: CategoryWebDevelopment, Style: CategoryStyle{Text: "blue-500", Background: "blue-100/60"}},
	{Name: CategoryDigitalMarketing, Style: CategoryStyle{Text: "red-500", Background: "red-100/60"}},
	{Name: CategoryGraphicsDesign, Style: CategoryStyle{Text: "green-500", Background: "green-100/60"}},
}

func AllowedCategories() []string {
	out := make([]string, len(Categories))
	for i, c := range Categories {
		out[i] = string(c.Name)
	}
	return out
}

func IsValidCategory(c string) bool {
	return slices.Contains(AllowedCategories(), c)
}
