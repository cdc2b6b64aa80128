package payments

import "gojobot/entity"

// Core lists payment proofs awaiting an admin verdict.
type Core interface {
	PendingRegistrationPayments() ([]entity.Registration, error)
	PendingTrainingPayments() ([]entity.Training, error)
}

// Reviewer applies a verdict and notifies the applicant, the same path
// the admin inline buttons take.
type Reviewer interface {
	ReviewPayment(kind, id string, approved bool) (string, error)
}
