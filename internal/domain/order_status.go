package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// transitions lists the statuses reachable from each status. Staying in the
// same status is always allowed and is handled separately.
var transitions = map[OrderStatus][]OrderStatus{
	StatusPending:    {StatusConfirmed, StatusProcessing, StatusCancelled},
	StatusConfirmed:  {StatusProcessing, StatusShipped, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered, StatusCancelled},
	StatusDelivered:  {StatusRefunded},
	StatusCancelled:  {StatusRefunded},
	StatusRefunded:   {},
}

// CanTransition reports whether an order may move from one status to another
func CanTransition(from, to OrderStatus) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	if from == to {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// StatusChange is an admin- or system-driven status update
type StatusChange struct {
	Status         OrderStatus
	TrackingNumber string
	Carrier        string
	Note           string
	ActorID        *uuid.UUID
}

// StatusOutcome describes what ApplyStatus did
type StatusOutcome struct {
	Previous     OrderStatus
	Entry        StatusHistoryEntry
	RestoreStock bool
}

// ApplyStatus moves the order to change.Status, stamps the matching timestamp and
// appends a history entry. RestoreStock is set only when the order enters
// cancelled from another status, so a repeated cancel never credits stock twice.
func (o *Order) ApplyStatus(change StatusChange, now time.Time) (StatusOutcome, error) {
	if !change.Status.Valid() {
		return StatusOutcome{}, NewValidationError(FieldError{
			Field:   "status",
			Message: fmt.Sprintf("unknown status %q", change.Status),
		})
	}
	if !CanTransition(o.Status, change.Status) {
		return StatusOutcome{}, &TransitionError{From: o.Status, To: change.Status}
	}

	previous := o.Status
	entering := previous != change.Status
	o.Status = change.Status

	if change.TrackingNumber != "" {
		o.TrackingNumber = change.TrackingNumber
	}
	if change.Carrier != "" {
		o.Carrier = change.Carrier
	}
	if change.Note != "" {
		o.AdminNotes = change.Note
	}

	if entering {
		stamp := now
		switch change.Status {
		case StatusConfirmed:
			o.ConfirmedAt = &stamp
		case StatusShipped:
			o.ShippedAt = &stamp
		case StatusDelivered:
			o.DeliveredAt = &stamp
		case StatusCancelled:
			o.CancelledAt = &stamp
		case StatusRefunded:
			if o.PaymentStatus == PaymentPaid {
				o.PaymentStatus = PaymentRefunded
			}
		}
	}

	note := change.Note
	if note == "" {
		note = fmt.Sprintf("Status changed to %s", change.Status)
	}

	entry := StatusHistoryEntry{
		Status:    change.Status,
		Timestamp: now,
		Note:      note,
		ActorID:   change.ActorID,
	}
	o.StatusHistory = append(o.StatusHistory, entry)
	o.UpdatedAt = now

	return StatusOutcome{
		Previous:     previous,
		Entry:        entry,
		RestoreStock: entering && change.Status == StatusCancelled,
	}, nil
}

// PaymentResult is the outcome reported by the payment provider
type PaymentResult struct {
	Succeeded bool
	Reference string
}

// PaymentOutcome describes what ApplyPayment did
type PaymentOutcome struct {
	Changed bool
	Entry   *StatusHistoryEntry
}

// ApplyPayment records a payment outcome. A success on a pending order also
// confirms it (system-driven, no actor). Repeated successes are no-ops and a
// failure never downgrades a paid order.
func (o *Order) ApplyPayment(result PaymentResult, now time.Time) PaymentOutcome {
	if o.PaymentStatus == PaymentPaid || o.PaymentStatus == PaymentRefunded {
		return PaymentOutcome{}
	}

	if !result.Succeeded {
		if o.PaymentStatus == PaymentFailed {
			return PaymentOutcome{}
		}
		o.PaymentStatus = PaymentFailed
		o.UpdatedAt = now
		return PaymentOutcome{Changed: true}
	}

	paidAt := now
	o.PaymentStatus = PaymentPaid
	o.PaidAt = &paidAt
	if result.Reference != "" {
		ref := result.Reference
		o.PaymentReference = &ref
	}
	o.UpdatedAt = now

	if o.Status != StatusPending {
		return PaymentOutcome{Changed: true}
	}

	o.Status = StatusConfirmed
	o.ConfirmedAt = &paidAt
	entry := StatusHistoryEntry{
		Status:    StatusConfirmed,
		Timestamp: now,
		Note:      "Payment confirmed",
	}
	o.StatusHistory = append(o.StatusHistory, entry)

	return PaymentOutcome{Changed: true, Entry: &entry}
}
