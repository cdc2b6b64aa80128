package training

import (
	"context"
	"errors"
	"fmt"

	"gojobot/bot/flow"
	"gojobot/bot/flows/payment"
	"gojobot/entity"
	repository "gojobot/internal/database"
	"gojobot/internal/service/files"
	"gojobot/internal/service/validate"
)

const FlowID flow.FlowID = "training"

// Step IDs
const (
	StepLanguage flow.StepID = "language"
	StepMode     flow.StepID = "mode"
	StepCourses  flow.StepID = "courses"
	StepCreate   flow.StepID = "create"
)

// Draft data keys
const (
	KeyMode    = "mode"
	KeyCourses = "courses"
)

const (
	ModeInPerson = "in_person"
	ModeOnline   = "online"
)

// Repository defines the database operations the training flow needs.
type Repository interface {
	GetRegistration(telegramId int64) (*entity.Registration, error)
	GetTraining(telegramId int64) (*entity.Training, error)
	CreateTraining(tr *entity.Training) error
	SubmitTrainingPayment(telegramId int64, method, proof string) error
}

// Events receives record-level notifications for dashboards.
type Events interface {
	TrainingCreated(tr *entity.Training)
}

type Config struct {
	Fee      int
	Accounts payment.Accounts
}

// NewFlow builds the training enrollment step table: attendance mode,
// course picks for that mode, record creation and the payment tail.
// Only registered talents with an approved registration payment may
// enroll.
func NewFlow(repo Repository, store files.Store, notify payment.Notifier, events Events, cfg Config) *flow.Flow {
	steps := map[flow.StepID]flow.Step{
		StepLanguage: {
			ID:     StepLanguage,
			Kind:   flow.KindText,
			Prompt: func(d *flow.Draft) string { return text(d.Language, "ask_lang") },
			Handle: func(_ context.Context, m flow.Messenger, d *flow.Draft, in flow.Input) flow.StepResult {
				lang, ok := validate.One(in.Text, []string{"en", "am"})
				if !ok {
					_ = m.SendText(d.ChatID, text(d.Language, "bad_lang"))
					return flow.StepResult{}
				}
				d.Language = lang
				return flow.StepResult{NextStep: StepMode}
			},
		},

		StepMode: {
			ID:     StepMode,
			Kind:   flow.KindText,
			Prompt: func(d *flow.Draft) string { return text(d.Language, "ask_mode") },
			Handle: func(_ context.Context, m flow.Messenger, d *flow.Draft, in flow.Input) flow.StepResult {
				mode, ok := validate.One(in.Text, []string{ModeOnline, ModeInPerson})
				if !ok {
					_ = m.SendText(d.ChatID, text(d.Language, "bad_mode"))
					return flow.StepResult{}
				}
				return flow.StepResult{NextStep: StepCourses, UpdateState: map[string]any{KeyMode: mode}}
			},
		},

		StepCourses: {
			ID:   StepCourses,
			Kind: flow.KindText,
			Prompt: func(d *flow.Draft) string {
				return fmt.Sprintf(text(d.Language, "ask_courses"), validate.NumberedList(coursesFor(d)))
			},
			Handle: func(_ context.Context, m flow.Messenger, d *flow.Draft, in flow.Input) flow.StepResult {
				picked, ok := validate.Selection(in.Text, coursesFor(d))
				if !ok {
					_ = m.SendText(d.ChatID, text(d.Language, "bad_courses"))
					return flow.StepResult{}
				}
				return flow.StepResult{NextStep: StepCreate, UpdateState: map[string]any{KeyCourses: picked}}
			},
		},

		StepCreate: {
			ID: StepCreate,
			Enter: func(_ context.Context, m flow.Messenger, d *flow.Draft) flow.StepResult {
				tr := entity.NewTraining(d.UserID)
				tr.TrainingFee = cfg.Fee
				if d.GetString(KeyMode) == ModeOnline {
					tr.OnlineTraining = d.GetStrings(KeyCourses)
				} else {
					tr.Courses = d.GetStrings(KeyCourses)
				}

				if err := repo.CreateTraining(tr); err != nil {
					if errors.Is(err, repository.ErrDuplicate) {
						_ = m.SendText(d.ChatID, text(d.Language, "already"))
						return flow.StepResult{Abort: true}
					}
					return flow.StepResult{Error: fmt.Errorf("creating training: %w", err)}
				}
				if events != nil {
					events.TrainingCreated(tr)
				}
				_ = m.SendText(d.ChatID, text(d.Language, "created"))
				return flow.StepResult{NextStep: payment.StepMethod}
			},
		},
	}

	submit := func(_ context.Context, telegramId int64, method, proof string) error {
		return repo.SubmitTrainingPayment(telegramId, method, proof)
	}
	for id, step := range payment.Steps("training", cfg.Fee, cfg.Accounts, store, submit, notify) {
		steps[id] = step
	}

	return &flow.Flow{
		ID:      FlowID,
		Initial: StepLanguage,
		Steps:   steps,
		Eligible: func(_ context.Context, d *flow.Draft) (string, error) {
			if msg, err := requirePaidRegistration(repo, d); msg != "" || err != nil {
				return msg, err
			}
			_, err := repo.GetTraining(d.UserID)
			if err == nil {
				return text(d.Language, "already"), nil
			}
			if errors.Is(err, repository.ErrNotFound) {
				return "", nil
			}
			return "", err
		},
		FailText: func(d *flow.Draft) string { return text(d.Language, "failed") },
	}
}

func coursesFor(d *flow.Draft) []string {
	if d.GetString(KeyMode) == ModeOnline {
		return entity.OnlineCourses
	}
	return entity.InPersonCourses
}

func requirePaidRegistration(repo Repository, d *flow.Draft) (string, error) {
	reg, err := repo.GetRegistration(d.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return text(d.Language, "not_eligible"), nil
		}
		return "", err
	}
	if !reg.IsPaid {
		return text(d.Language, "not_eligible"), nil
	}
	return "", nil
}
