// Package payment hosts the two stateless services of the collection core:
// the Initiator, which drives a provider adapter to start a payment and
// persists the pending correlation record, and the Reconciler, which matches
// the provider's later asynchronous callback back to that record and applies
// the single terminal transition.
//
// Neither service keeps in-process state; the persisted record is the only
// coordination point between them, guarded by the stores' conditional
// status update.
package payment

import (
	"fmt"
	"time"
)

// generateReference builds the fallback account/transaction reference used
// when an initiation is not tied to an invoice or payment link
func generateReference() string {
	return fmt.Sprintf("LPP%s%03d", time.Now().Format("20060102150405"), time.Now().UnixNano()%1000)
}
