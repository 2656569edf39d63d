package analytics

import (
	"errors"
	"fmt"
)

// ErrNoData reports that a source table had no usable rows after
// normalization. It is distinct from a zero-valued result: a period in which
// nothing happened still produces a (zero-filled) answer.
var ErrNoData = errors.New("no data")

// ErrInvalidQuery reports a query the engine cannot answer as asked.
var ErrInvalidQuery = errors.New("invalid query")

// NoDataError names the table that came back empty. It matches ErrNoData
// with errors.Is.
type NoDataError struct {
	Table string
}

func (e *NoDataError) Error() string {
	return fmt.Sprintf("no data: %s table is empty after normalization", e.Table)
}

func (e *NoDataError) Is(target error) bool { return target == ErrNoData }

func invalidQuery(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidQuery, fmt.Sprintf(format, args...))
}
