package registration

import (
	"context"
	"errors"

	"gojobot/bot/flow"
	"gojobot/bot/flows/payment"
	repository "gojobot/internal/database"
	"gojobot/internal/service/files"
)

const PaymentFlowID flow.FlowID = "registration_payment"

// NewPaymentFlow builds the standalone proof resubmission flow. It is
// just the payment tail, for users whose proof was rejected or who
// dropped out before paying.
func NewPaymentFlow(repo Repository, store files.Store, notify payment.Notifier, cfg Config) *flow.Flow {
	submit := func(_ context.Context, telegramId int64, method, proof string) error {
		return repo.SubmitRegistrationPayment(telegramId, method, proof)
	}

	return &flow.Flow{
		ID:      PaymentFlowID,
		Initial: payment.StepMethod,
		Steps:   payment.Steps("registration", cfg.Fee, cfg.Accounts, store, submit, notify),
		Eligible: func(_ context.Context, d *flow.Draft) (string, error) {
			reg, err := repo.GetRegistration(d.UserID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return text(d.Language, "pay_no_record"), nil
				}
				return "", err
			}
			if reg.IsPaid {
				return text(d.Language, "pay_already"), nil
			}
			return "", nil
		},
		FailText: func(d *flow.Draft) string { return text(d.Language, "failed") },
	}
}
