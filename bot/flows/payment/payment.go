package payment

import (
	"context"
	"errors"
	"fmt"

	"gojobot/bot/flow"
	"gojobot/entity"
	"gojobot/internal/service/files"
	"gojobot/internal/service/validate"
)

// Step IDs shared by every flow that ends in a payment.
const (
	StepMethod flow.StepID = "pay_method"
	StepProof  flow.StepID = "pay_proof"
)

// Draft data keys
const (
	KeyMethod = "payment_method"
)

// Accounts are the receiving accounts shown in the instructions.
type Accounts struct {
	CBE      string
	Abissnya string
	Telebirr string
}

// Submitter attaches proof of payment to the record the flow created.
type Submitter func(ctx context.Context, telegramId int64, method, proof string) error

// Notifier tells reviewers that a proof is waiting for them.
type Notifier interface {
	PaymentSubmitted(kind string, telegramId int64, method, proof string)
}

// Steps builds the two-step payment tail merged into a parent flow's
// table: choose a confirmation method, then provide the proof. On both
// paths the record goes back to pending until a reviewer rules on it.
func Steps(kind string, fee int, accounts Accounts, store files.Store, submit Submitter, notify Notifier) map[flow.StepID]flow.Step {
	method := flow.Step{
		ID:   StepMethod,
		Kind: flow.KindText,
		Prompt: func(d *flow.Draft) string {
			return instructions(d.Language, fee, accounts.CBE, accounts.Abissnya, accounts.Telebirr)
		},
		Handle: func(ctx context.Context, m flow.Messenger, d *flow.Draft, in flow.Input) flow.StepResult {
			choice, ok := validate.One(in.Text, []string{entity.PaymentMethodFT, entity.PaymentMethodReceipt})
			if !ok {
				_ = m.SendText(d.ChatID, text(d.Language, "bad_choice"))
				return flow.StepResult{}
			}
			return flow.StepResult{
				NextStep:    StepProof,
				UpdateState: map[string]any{KeyMethod: choice},
			}
		},
	}

	proof := flow.Step{
		ID:   StepProof,
		Kind: flow.KindAny,
		Prompt: func(d *flow.Draft) string {
			if d.GetString(KeyMethod) == entity.PaymentMethodReceipt {
				return text(d.Language, "ask_receipt")
			}
			return text(d.Language, "ask_ft")
		},
		Handle: func(ctx context.Context, m flow.Messenger, d *flow.Draft, in flow.Input) flow.StepResult {
			pm := d.GetString(KeyMethod)

			var proofRef string
			switch pm {
			case entity.PaymentMethodReceipt:
				if in.File == nil {
					_ = m.SendText(d.ChatID, text(d.Language, "need_receipt"))
					return flow.StepResult{}
				}
				data, name, err := m.FetchFile(ctx, in.File.FileID)
				if err != nil {
					// transient transport failure, the user resends the file
					_ = m.SendText(d.ChatID, text(d.Language, "fetch_failed"))
					return flow.StepResult{}
				}
				if in.File.Name != "" {
					name = in.File.Name
				}
				ref, err := store.Save(ctx, files.CategoryPayment, name, data)
				if err != nil {
					switch {
					case errors.Is(err, files.ErrTooLarge):
						_ = m.SendText(d.ChatID, text(d.Language, "too_large"))
						return flow.StepResult{}
					case errors.Is(err, files.ErrTypeNotAllowed):
						_ = m.SendText(d.ChatID, text(d.Language, "bad_type"))
						return flow.StepResult{}
					}
					return flow.StepResult{Error: fmt.Errorf("storing receipt: %w", err)}
				}
				proofRef = ref

			default:
				ft, ok := validate.FTNumber(in.Text)
				if !ok {
					_ = m.SendText(d.ChatID, text(d.Language, "bad_ft"))
					return flow.StepResult{}
				}
				proofRef = ft
			}

			if err := submit(ctx, d.UserID, pm, proofRef); err != nil {
				return flow.StepResult{Error: fmt.Errorf("submitting payment: %w", err)}
			}

			if notify != nil {
				notify.PaymentSubmitted(kind, d.UserID, pm, proofRef)
			}

			_ = m.SendText(d.ChatID, text(d.Language, "submitted"))
			return flow.StepResult{Complete: true}
		},
	}

	return map[flow.StepID]flow.Step{
		StepMethod: method,
		StepProof:  proof,
	}
}
