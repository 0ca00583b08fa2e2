package payment

import (
	"context"
	"time"

	"go.uber.org/zap"

	"lipapay/app/models/subscription"
	"lipapay/app/models/transaction"
	"lipapay/pkg/payment/factory"
	"lipapay/pkg/payment/types"
)

// Reconciler matches provider callbacks to their pending record and applies
// the idempotent terminal transition. It never fails toward the provider:
// the HTTP layer acknowledges 200 regardless, because providers retry
// aggressively on anything else. Internal failures only surface in the log,
// keyed by correlation id.
type Reconciler struct {
	transactions  types.TransactionStore
	subscriptions types.SubscriptionStore
	invoices      types.InvoiceStore
	profiles      types.ProfileStore
	logger        *zap.Logger
	now           func() time.Time
}

// NewReconciler wires a Reconciler. logger may be nil.
func NewReconciler(
	transactions types.TransactionStore,
	subscriptions types.SubscriptionStore,
	invoices types.InvoiceStore,
	profiles types.ProfileStore,
	logger *zap.Logger,
) *Reconciler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reconciler{
		transactions:  transactions,
		subscriptions: subscriptions,
		invoices:      invoices,
		profiles:      profiles,
		logger:        logger,
		now:           time.Now,
	}
}

// Reconcile processes one raw callback delivery. Deliveries are at-least-once
// and unordered; duplicates and unknown correlation ids are no-ops.
func (r *Reconciler) Reconcile(ctx context.Context, provider types.Provider, raw []byte) {
	log := r.logger.With(zap.String("provider", string(provider)))

	event, err := factory.ParseCallback(provider, raw)
	if err != nil {
		log.Warn("callback rejected at parse boundary", zap.Error(err))
		return
	}
	log = log.With(zap.String("correlation_id", event.CorrelationID))

	tx, err := r.transactions.GetByCorrelationID(ctx, provider, event.CorrelationID)
	if err != nil {
		log.Error("transaction lookup failed", zap.Error(err))
		return
	}
	if tx != nil {
		r.reconcileTransaction(ctx, log, tx, event)
		return
	}

	sub, err := r.subscriptions.GetByCorrelationID(ctx, provider, event.CorrelationID)
	if err != nil {
		log.Error("subscription lookup failed", zap.Error(err))
		return
	}
	if sub != nil {
		r.reconcileSubscription(ctx, log, sub, event)
		return
	}

	// covers the race where our insert has not committed yet, and spurious
	// redelivery for records long gone
	log.Warn("callback for unknown correlation id")
}

func (r *Reconciler) reconcileTransaction(ctx context.Context, log *zap.Logger, tx *transaction.Transaction, event *types.CallbackEvent) {
	if !tx.IsPending() {
		log.Info("duplicate delivery for terminal transaction, ignoring",
			zap.String("status", tx.Status))
		return
	}

	if !event.Succeeded {
		applied, err := r.transactions.UpdateIfStatus(ctx, tx.ID, transaction.StatusPending, map[string]interface{}{
			"status":      transaction.StatusFailed,
			"result_code": event.ResultCode,
			"result_desc": event.ResultDesc,
		})
		if err != nil {
			log.Error("failure transition write failed", zap.Error(err))
			return
		}
		if !applied {
			log.Info("lost terminal transition race, no-op")
			return
		}
		log.Info("transaction failed",
			zap.Int("result_code", event.ResultCode),
			zap.String("result_desc", event.ResultDesc))
		return
	}

	paidAt := r.now()
	applied, err := r.transactions.UpdateIfStatus(ctx, tx.ID, transaction.StatusPending, map[string]interface{}{
		"status":      transaction.StatusCompleted,
		"result_code": event.ResultCode,
		"result_desc": event.ResultDesc,
		"receipt_id":  event.ReceiptID,
		"paid_at":     paidAt,
	})
	if err != nil {
		// the provider was still acked; this log line is the operator's alert
		log.Error("completion transition write failed", zap.Error(err))
		return
	}
	if !applied {
		log.Info("lost terminal transition race, no-op")
		return
	}
	log.Info("transaction completed", zap.String("receipt_id", event.ReceiptID))

	// best-effort cascade, failure never rolls back the transition
	if tx.InvoiceID != nil {
		if err := r.invoices.MarkPaid(ctx, *tx.InvoiceID); err != nil {
			log.Error("invoice cascade failed",
				zap.Uint64("invoice_id", *tx.InvoiceID), zap.Error(err))
		}
	}
}

func (r *Reconciler) reconcileSubscription(ctx context.Context, log *zap.Logger, sub *subscription.Subscription, event *types.CallbackEvent) {
	if !sub.IsPending() {
		log.Info("duplicate delivery for terminal subscription, ignoring",
			zap.String("status", sub.Status))
		return
	}

	if !event.Succeeded {
		applied, err := r.subscriptions.UpdateIfStatus(ctx, sub.ID, subscription.StatusPending, map[string]interface{}{
			"status":         subscription.StatusFailed,
			"failure_reason": event.ResultDesc,
		})
		if err != nil {
			log.Error("failure transition write failed", zap.Error(err))
			return
		}
		if !applied {
			log.Info("lost terminal transition race, no-op")
			return
		}
		log.Info("subscription activation failed", zap.String("reason", event.ResultDesc))
		return
	}

	startDate := r.now().UTC()
	endDate := startDate.AddDate(0, 0, subscription.ActivePeriodDays)
	applied, err := r.subscriptions.UpdateIfStatus(ctx, sub.ID, subscription.StatusPending, map[string]interface{}{
		"status":     subscription.StatusActive,
		"start_date": startDate,
		"end_date":   endDate,
	})
	if err != nil {
		log.Error("activation transition write failed", zap.Error(err))
		return
	}
	if !applied {
		log.Info("lost terminal transition race, no-op")
		return
	}
	log.Info("subscription activated",
		zap.String("plan", sub.PlanName),
		zap.Time("end_date", endDate))

	// best-effort cascade to the owning profile
	if err := r.profiles.SetSelectedPlan(ctx, sub.MerchantID, sub.PlanName); err != nil {
		log.Error("profile plan cascade failed",
			zap.Uint64("merchant_id", sub.MerchantID), zap.Error(err))
	}
}
