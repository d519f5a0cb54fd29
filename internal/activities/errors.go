package activities

import "fmt"

// MalformedRecordError is returned when a single raw record cannot be normalized.
// It only ever affects that one record, the rest of the batch is still used.
type MalformedRecordError struct {
	Index      int
	ActivityID int64
	Value      string
	Err        error
}

func (e *MalformedRecordError) Error() string {
	if e.ActivityID != 0 {
		return fmt.Sprintf("malformed record #%d (activity %d), start time [%s]: %s", e.Index, e.ActivityID, e.Value, e.Err)
	}
	return fmt.Sprintf("malformed record #%d, start time [%s]: %s", e.Index, e.Value, e.Err)
}

func (e *MalformedRecordError) Unwrap() error {
	return e.Err
}

// SourceUnavailableError means the raw records could not be fetched at all.
// No partial report is produced when this happens.
type SourceUnavailableError struct {
	Err error
}

func (e *SourceUnavailableError) Error() string {
	return fmt.Sprintf("activity source unavailable: %s", e.Err)
}

func (e *SourceUnavailableError) Unwrap() error {
	return e.Err
}

// MissingRollupRowError is returned by strict week lookups when the
// requested week has no row in the table.
type MissingRollupRowError struct {
	Week string
}

func (e *MissingRollupRowError) Error() string {
	return fmt.Sprintf("no data for week %s", e.Week)
}
