package report

import "errors"

var (
	ErrReportNotFound = errors.New("report not found")
	ErrEmptyPeriod    = errors.New("no data in the requested period")
)
