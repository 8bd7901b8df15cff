package schedule

import "errors"

var (
	ErrTemplateNotFound   = errors.New("shift template not found")
	ErrAssignmentNotFound = errors.New("shift assignment not found")
	ErrAssignmentConflict = errors.New("employee already assigned a shift on this date")
)
