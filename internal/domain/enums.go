package domain

// GateStatus represents the lifecycle of a gated submission.
type GateStatus string

const (
	// GateStatusQueued means the submission is waiting for the scan worker.
	GateStatusQueued GateStatus = "queued"
	// GateStatusProcessing means a worker has claimed the submission.
	GateStatusProcessing GateStatus = "processing"
	// GateStatusAccepted means both validation layers passed.
	GateStatusAccepted GateStatus = "accepted"
	// GateStatusRejectedStructural means the output failed shape checks.
	GateStatusRejectedStructural GateStatus = "rejected_structural"
	// GateStatusRejectedSemantic means the output failed content checks.
	GateStatusRejectedSemantic GateStatus = "rejected_semantic"
	// GateStatusFailed means the gate itself errored, e.g. the submitted
	// asset record could not be canonicalized.
	GateStatusFailed GateStatus = "failed"
)

// Rejected reports whether the status is one of the rejection outcomes.
func (s GateStatus) Rejected() bool {
	return s == GateStatusRejectedStructural || s == GateStatusRejectedSemantic
}

// Terminal reports whether the status is final.
func (s GateStatus) Terminal() bool {
	switch s {
	case GateStatusAccepted, GateStatusRejectedStructural, GateStatusRejectedSemantic, GateStatusFailed:
		return true
	}
	return false
}
