package enums

import "fmt"

// GroupOrderStatus tracks the lifecycle of a pooled order.
type GroupOrderStatus string

const (
	GroupOrderStatusOpen      GroupOrderStatus = "open"
	GroupOrderStatusClosed    GroupOrderStatus = "closed"
	GroupOrderStatusCancelled GroupOrderStatus = "cancelled"
	GroupOrderStatusFulfilled GroupOrderStatus = "fulfilled"
	GroupOrderStatusCompleted GroupOrderStatus = "completed"
)

var validGroupOrderStatuses = []GroupOrderStatus{
	GroupOrderStatusOpen,
	GroupOrderStatusClosed,
	GroupOrderStatusCancelled,
	GroupOrderStatusFulfilled,
	GroupOrderStatusCompleted,
}

// String implements fmt.Stringer.
func (s GroupOrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known GroupOrderStatus.
func (s GroupOrderStatus) IsValid() bool {
	for _, candidate := range validGroupOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseGroupOrderStatus converts raw input into a GroupOrderStatus.
func ParseGroupOrderStatus(value string) (GroupOrderStatus, error) {
	for _, candidate := range validGroupOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid group order status %q", value)
}

// ParticipantStatus tracks a single vendor's contribution within an order.
type ParticipantStatus string

const (
	ParticipantStatusPending   ParticipantStatus = "pending"
	ParticipantStatusConfirmed ParticipantStatus = "confirmed"
	ParticipantStatusCancelled ParticipantStatus = "cancelled"
)

var validParticipantStatuses = []ParticipantStatus{
	ParticipantStatusPending,
	ParticipantStatusConfirmed,
	ParticipantStatusCancelled,
}

// String implements fmt.Stringer.
func (s ParticipantStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ParticipantStatus.
func (s ParticipantStatus) IsValid() bool {
	for _, candidate := range validParticipantStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseParticipantStatus converts raw input into a ParticipantStatus.
func ParseParticipantStatus(value string) (ParticipantStatus, error) {
	for _, candidate := range validParticipantStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid participant status %q", value)
}

// PaymentTerms captures how a pooled order settles.
type PaymentTerms string

const (
	PaymentTermsAdvance    PaymentTerms = "advance"
	PaymentTermsOnDelivery PaymentTerms = "on_delivery"
	PaymentTermsPartial    PaymentTerms = "partial"
)

var validPaymentTerms = []PaymentTerms{
	PaymentTermsAdvance,
	PaymentTermsOnDelivery,
	PaymentTermsPartial,
}

// String implements fmt.Stringer.
func (p PaymentTerms) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PaymentTerms.
func (p PaymentTerms) IsValid() bool {
	for _, candidate := range validPaymentTerms {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePaymentTerms converts raw input into a PaymentTerms.
func ParsePaymentTerms(value string) (PaymentTerms, error) {
	for _, candidate := range validPaymentTerms {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment terms %q", value)
}
