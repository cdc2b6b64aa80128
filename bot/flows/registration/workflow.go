package registration

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gojobot/bot/flow"
	"gojobot/bot/flows/payment"
	"gojobot/entity"
	repository "gojobot/internal/database"
	"gojobot/internal/service/files"
	"gojobot/internal/service/validate"
)

const FlowID flow.FlowID = "registration"

// Step IDs
const (
	StepLanguage   flow.StepID = "language"
	StepFullName   flow.StepID = "full_name"
	StepDOB        flow.StepID = "dob"
	StepGender     flow.StepID = "gender"
	StepPhone      flow.StepID = "phone"
	StepEmail      flow.StepID = "email"
	StepAddress    flow.StepID = "address"
	StepMarital    flow.StepID = "marital"
	StepHeight     flow.StepID = "height"
	StepWeight     flow.StepID = "weight"
	StepFaceColor  flow.StepID = "face_color"
	StepCategories flow.StepID = "categories"
	StepPrefLang   flow.StepID = "pref_lang"
	StepNationalID flow.StepID = "national_id"
	StepPhoto      flow.StepID = "photo"
	StepCreate     flow.StepID = "create"
)

// Draft data keys
const (
	KeyFullName   = "full_name"
	KeyDOB        = "dob"
	KeyGender     = "gender"
	KeyPhone      = "phone"
	KeyEmail      = "email"
	KeyAddress    = "address"
	KeyMarital    = "marital"
	KeyHeight     = "height"
	KeyWeight     = "weight"
	KeyFaceColor  = "face_color"
	KeyCategories = "categories"
	KeyPrefLang   = "pref_lang"
	KeyIDRef      = "national_id_ref"
	KeyPhotoRef   = "photo_ref"
)

const dobFormat = "2006-01-02"

// Repository defines the database operations the registration flow needs.
type Repository interface {
	GetRegistration(telegramId int64) (*entity.Registration, error)
	CreateRegistration(reg *entity.Registration) error
	SubmitRegistrationPayment(telegramId int64, method, proof string) error
}

// Events receives record-level notifications for dashboards.
type Events interface {
	RegistrationCreated(reg *entity.Registration)
}

// Config carries the fee and receiving accounts shown during payment.
type Config struct {
	Fee      int
	Accounts payment.Accounts
}

// NewFlow builds the talent registration step table. The flow walks the
// applicant through their profile, collects an ID document and a photo,
// creates the record and hands over to the payment tail.
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
				return flow.StepResult{NextStep: StepFullName}
			},
		},

		StepFullName: askStep(StepFullName, StepDOB, KeyFullName, "ask_full_name", "bad_full_name",
			func(s string) (any, bool) { v, ok := validate.FullName(s); return v, ok }),

		StepDOB: askStep(StepDOB, StepGender, KeyDOB, "ask_dob", "bad_dob",
			func(s string) (any, bool) {
				t, ok := validate.DateOfBirth(s)
				return t.Format(dobFormat), ok
			}),

		StepGender: pickStep(StepGender, StepPhone, KeyGender, "ask_gender", entity.Genders),

		StepPhone: askStep(StepPhone, StepEmail, KeyPhone, "ask_phone", "bad_phone",
			func(s string) (any, bool) { v, ok := validate.Phone(s); return v, ok }),

		StepEmail: askStep(StepEmail, StepAddress, KeyEmail, "ask_email", "bad_email",
			func(s string) (any, bool) { v, ok := validate.Email(s); return v, ok }),

		StepAddress: askStep(StepAddress, StepMarital, KeyAddress, "ask_address", "bad_address",
			func(s string) (any, bool) { v, ok := validate.FullName(s); return v, ok }),

		StepMarital: pickStep(StepMarital, StepHeight, KeyMarital, "ask_marital", entity.MaritalStatuses),

		StepHeight: askStep(StepHeight, StepWeight, KeyHeight, "ask_height", "bad_height",
			func(s string) (any, bool) { v, ok := validate.Height(s); return v, ok }),

		StepWeight: askStep(StepWeight, StepFaceColor, KeyWeight, "ask_weight", "bad_weight",
			func(s string) (any, bool) { v, ok := validate.Weight(s); return v, ok }),

		StepFaceColor: askStep(StepFaceColor, StepCategories, KeyFaceColor, "ask_face", "bad_face",
			func(s string) (any, bool) { v, ok := validate.FullName(s); return v, ok }),

		StepCategories: {
			ID:   StepCategories,
			Kind: flow.KindText,
			Prompt: func(d *flow.Draft) string {
				return fmt.Sprintf(text(d.Language, "ask_categories"), validate.NumberedList(entity.TalentCategories))
			},
			Handle: func(_ context.Context, m flow.Messenger, d *flow.Draft, in flow.Input) flow.StepResult {
				picked, ok := validate.Selection(in.Text, entity.TalentCategories)
				if !ok {
					_ = m.SendText(d.ChatID, text(d.Language, "bad_categories"))
					return flow.StepResult{}
				}
				return flow.StepResult{NextStep: StepPrefLang, UpdateState: map[string]any{KeyCategories: picked}}
			},
		},

		StepPrefLang: askStep(StepPrefLang, StepNationalID, KeyPrefLang, "ask_pref_lang", "bad_pref_lang",
			func(s string) (any, bool) { v, ok := validate.FullName(s); return v, ok }),

		StepNationalID: fileStep(StepNationalID, StepPhoto, KeyIDRef, "ask_id", files.CategoryNationalID, store),

		StepPhoto: fileStep(StepPhoto, StepCreate, KeyPhotoRef, "ask_photo", files.CategoryPhoto, store),

		StepCreate: {
			ID: StepCreate,
			Enter: func(_ context.Context, m flow.Messenger, d *flow.Draft) flow.StepResult {
				reg := buildRegistration(d, cfg.Fee)
				if err := repo.CreateRegistration(reg); err != nil {
					if errors.Is(err, repository.ErrDuplicate) {
						_ = m.SendText(d.ChatID, text(d.Language, "already"))
						return flow.StepResult{Abort: true}
					}
					return flow.StepResult{Error: fmt.Errorf("creating registration: %w", err)}
				}
				if events != nil {
					events.RegistrationCreated(reg)
				}
				_ = m.SendText(d.ChatID, text(d.Language, "created"))
				return flow.StepResult{NextStep: payment.StepMethod}
			},
		},
	}

	submit := func(_ context.Context, telegramId int64, method, proof string) error {
		return repo.SubmitRegistrationPayment(telegramId, method, proof)
	}
	for id, step := range payment.Steps("registration", cfg.Fee, cfg.Accounts, store, submit, notify) {
		steps[id] = step
	}

	return &flow.Flow{
		ID:      FlowID,
		Initial: StepLanguage,
		Steps:   steps,
		Eligible: func(_ context.Context, d *flow.Draft) (string, error) {
			_, err := repo.GetRegistration(d.UserID)
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

func buildRegistration(d *flow.Draft, fee int) *entity.Registration {
	reg := entity.NewRegistration(d.UserID)
	reg.FullName = d.GetString(KeyFullName)
	reg.DateOfBirth, _ = time.Parse(dobFormat, d.GetString(KeyDOB))
	reg.Gender = d.GetString(KeyGender)
	reg.PhoneNumber = d.GetString(KeyPhone)
	reg.Email = d.GetString(KeyEmail)
	reg.PresentAddress = d.GetString(KeyAddress)
	reg.MaritalStatus = d.GetString(KeyMarital)
	reg.Height = d.GetFloat(KeyHeight)
	reg.Weight = d.GetFloat(KeyWeight)
	reg.FaceColor = d.GetString(KeyFaceColor)
	reg.TalentCategories = d.GetStrings(KeyCategories)
	reg.PreferredLanguage = d.GetString(KeyPrefLang)
	reg.NationalIdRef = d.GetString(KeyIDRef)
	reg.PhotoRef = d.GetString(KeyPhotoRef)
	reg.RegistrationFee = fee
	return reg
}

// askStep builds a plain ask-validate-store text step.
func askStep(id, next flow.StepID, key, promptKey, badKey string, parse func(string) (any, bool)) flow.Step {
	return flow.Step{
		ID:     id,
		Kind:   flow.KindText,
		Prompt: func(d *flow.Draft) string { return text(d.Language, promptKey) },
		Handle: func(_ context.Context, m flow.Messenger, d *flow.Draft, in flow.Input) flow.StepResult {
			v, ok := parse(in.Text)
			if !ok {
				_ = m.SendText(d.ChatID, text(d.Language, badKey))
				return flow.StepResult{}
			}
			return flow.StepResult{NextStep: next, UpdateState: map[string]any{key: v}}
		},
	}
}

// pickStep builds a single-choice step over a numbered option list.
func pickStep(id, next flow.StepID, key, promptKey string, options []string) flow.Step {
	return flow.Step{
		ID:   id,
		Kind: flow.KindText,
		Prompt: func(d *flow.Draft) string {
			return fmt.Sprintf(text(d.Language, promptKey), validate.NumberedList(options))
		},
		Handle: func(_ context.Context, m flow.Messenger, d *flow.Draft, in flow.Input) flow.StepResult {
			v, ok := validate.One(in.Text, options)
			if !ok {
				_ = m.SendText(d.ChatID, text(d.Language, "bad_choice"))
				return flow.StepResult{}
			}
			return flow.StepResult{NextStep: next, UpdateState: map[string]any{key: v}}
		},
	}
}

// fileStep builds a document upload step storing the artifact reference.
func fileStep(id, next flow.StepID, key, promptKey string, category files.Category, store files.Store) flow.Step {
	return flow.Step{
		ID:     id,
		Kind:   flow.KindFile,
		Prompt: func(d *flow.Draft) string { return text(d.Language, promptKey) },
		Handle: func(ctx context.Context, m flow.Messenger, d *flow.Draft, in flow.Input) flow.StepResult {
			data, name, err := m.FetchFile(ctx, in.File.FileID)
			if err != nil {
				// transient transport failure, the user resends the file
				_ = m.SendText(d.ChatID, text(d.Language, "fetch_failed"))
				return flow.StepResult{}
			}
			if in.File.Name != "" {
				name = in.File.Name
			}
			ref, err := store.Save(ctx, category, name, data)
			if err != nil {
				switch {
				case errors.Is(err, files.ErrTooLarge):
					_ = m.SendText(d.ChatID, text(d.Language, "too_large"))
					return flow.StepResult{}
				case errors.Is(err, files.ErrTypeNotAllowed):
					_ = m.SendText(d.ChatID, text(d.Language, "bad_type"))
					return flow.StepResult{}
				}
				return flow.StepResult{Error: fmt.Errorf("storing upload: %w", err)}
			}
			return flow.StepResult{NextStep: next, UpdateState: map[string]any{key: ref}}
		},
	}
}
