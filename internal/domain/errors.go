package domain

import "errors"

// ErrVersionConflict reports a compare-and-swap write that lost to a
// concurrent update. Callers re-read the record and retry.
var ErrVersionConflict = errors.New("record version conflict")
