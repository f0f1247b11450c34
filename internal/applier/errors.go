package applier

import "errors"

// ErrApplyFailed indicates a declared change could not be applied. The
// wrapping error names the change; earlier changes in the run remain
// committed and later ones are not attempted.
var ErrApplyFailed = errors.New("applying schema change")
