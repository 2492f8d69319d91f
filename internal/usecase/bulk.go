package usecase

// BulkFailure describes one item that could not be processed in a bulk
// operation.
type BulkFailure struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// BulkOutcome reports per-item results of a bulk operation. Items are
// processed independently: one failure never aborts the rest.
type BulkOutcome struct {
	Updated []string      `json:"updated"`
	Failed  []BulkFailure `json:"failed"`
}

func (o *BulkOutcome) ok(id string) {
	o.Updated = append(o.Updated, id)
}

func (o *BulkOutcome) fail(id string, err error) {
	o.Failed = append(o.Failed, BulkFailure{ID: id, Reason: err.Error()})
}
