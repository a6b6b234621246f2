package models

type SortOrder string

const (
	SortNone SortOrder = ""
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// JobQuery is the listing filter composed by the job service. Search is a
// literal, case-insensitive title substring; an empty Search matches every
// title. An empty Category matches every category.
type JobQuery struct {
	Search   string
	Category string
	Sort     SortOrder
}

// BidCountDrift is a job whose stored bid_count differs from the number of
// bids referencing it.
type BidCountDrift struct {
	JobID    string `json:"job_id"`
	BidCount int    `json:"bid_count"`
	Actual   int    `json:"actual"`
}

// DriftReport is what the auditor reads from a store in one pass.
type DriftReport struct {
	Drifted      []BidCountDrift `json:"drifted"`
	OrphanedBids int             `json:"orphaned_bids"`
}
