package vectorgen

// Status is the processing outcome for a single item ID.
type Status string

// Per-item generation outcomes.
const (
	StatusExists  Status = "exists"
	StatusCreated Status = "created"
	StatusFailed  Status = "failed"
)

// Result is the outcome of ensuring one item's vector.
type Result struct {
	itemID int64
	status Status
	err    error
}

// NewExists reports that the item already had a stored vector.
func NewExists(itemID int64) Result { return Result{itemID: itemID, status: StatusExists} }

// NewCreated reports a freshly generated and stored vector.
func NewCreated(itemID int64) Result { return Result{itemID: itemID, status: StatusCreated} }

// NewFailed reports a generation failure for the item.
func NewFailed(itemID int64, err error) Result {
	return Result{itemID: itemID, status: StatusFailed, err: err}
}

// ItemID returns the item identifier.
func (r Result) ItemID() int64 { return r.itemID }

// Status returns the processing outcome.
func (r Result) Status() Status { return r.status }

// Err returns the failure cause, if any.
func (r Result) Err() error { return r.err }

// Summary aggregates per-item results for a batch generation call.
type Summary struct {
	Total         int     `json:"total"`
	AlreadyExists int     `json:"already_exists"`
	NewlyCreated  int     `json:"newly_created"`
	Failed        int     `json:"failed"`
	FailedIDs     []int64 `json:"failed_ids"`
}

// Summarize folds per-item results into a Summary.
func Summarize(results []Result) Summary {
	s := Summary{Total: len(results), FailedIDs: []int64{}}
	for _, r := range results {
		switch r.Status() {
		case StatusExists:
			s.AlreadyExists++
		case StatusCreated:
			s.NewlyCreated++
		case StatusFailed:
			s.Failed++
			s.FailedIDs = append(s.FailedIDs, r.ItemID())
		}
	}
	return s
}
