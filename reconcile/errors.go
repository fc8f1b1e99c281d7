// ABOUTME: Error taxonomy for the reconciliation workflows
// ABOUTME: Batch-establishing failures abort; per-record failures are reported and skipped
package reconcile

import "errors"

// ErrDonorNotFound means no donor matched any of the candidate emails.
// Returned before any write happens.
var ErrDonorNotFound = errors.New("donor not found")

// ErrNoAliases means a link request carried nothing to match against.
var ErrNoAliases = errors.New("no alias emails or pattern provided")
