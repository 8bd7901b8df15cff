package performance

import "errors"

var (
	ErrAppraisalNotFound        = errors.New("appraisal not found")
	ErrDisputeNotFound          = errors.New("dispute not found")
	ErrDisputeAlreadyResolved   = errors.New("dispute already resolved")
	ErrInvalidDisputeTransition = errors.New("dispute status transition not allowed")
	ErrNotDisputeOwner          = errors.New("dispute belongs to another employee")
)
