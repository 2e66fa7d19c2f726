package models

// BulkError records a single failed item of a bulk operation, tagged with the
// item's position in the original input.
type BulkError struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

// BulkResult collects the outcome of a bulk operation. One item's failure
// never aborts its siblings: successes keep their input order and every
// failure is captured per index.
type BulkResult[T any] struct {
	Successes []T         `json:"successes"`
	Errors    []BulkError `json:"errors"`
}

// HasErrors reports whether any item failed.
func (r *BulkResult[T]) HasErrors() bool {
	return len(r.Errors) > 0
}

// TotalProcessed is the number of items handled, successful or not.
func (r *BulkResult[T]) TotalProcessed() int {
	return len(r.Successes) + len(r.Errors)
}
