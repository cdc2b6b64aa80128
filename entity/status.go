package entity

// Review status values shared by all intake records.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Payment confirmation methods.
const (
	PaymentMethodFT      = "ft"      // bank transfer reference number
	PaymentMethodReceipt = "receipt" // uploaded receipt image/document
)

// Payment carries the review-controlled payment fields shared by
// registrations and trainings. The flow engine only ever writes the
// initial pending state; every later mutation comes from the review
// workflow.
type Payment struct {
	IsPaid        bool   `json:"is_paid" bson:"is_paid"`
	PaymentMethod string `json:"payment_method" bson:"payment_method" validate:"omitempty,oneof=ft receipt"`
	PaymentProof  string `json:"payment_proof" bson:"payment_proof" validate:"omitempty"`
	PaymentStatus string `json:"payment_status" bson:"payment_status" validate:"required,oneof=pending approved rejected"`
}

// NewPendingPayment returns the payment state every freshly created record
// starts in.
func NewPendingPayment() Payment {
	return Payment{
		IsPaid:        false,
		PaymentStatus: StatusPending,
	}
}
