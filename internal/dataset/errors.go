package dataset

import (
	"errors"
	"fmt"
)

// ErrDataLoad matches every *DataLoadError via errors.Is.
var ErrDataLoad = errors.New("data load failed")

// DataLoadError reports a dataset that is missing, unreadable or violates the record schema.
// It is fatal for the operation that triggered the load and is never retried.
type DataLoadError struct {
	Dataset string // "checklist" or "matches"
	Source  string
	Err     error
}

func (e *DataLoadError) Error() string {
	return fmt.Sprintf("load %s dataset from %s: %v", e.Dataset, e.Source, e.Err)
}

func (e *DataLoadError) Unwrap() error { return e.Err }

func (e *DataLoadError) Is(target error) bool { return target == ErrDataLoad }
