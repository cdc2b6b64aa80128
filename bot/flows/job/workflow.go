package job

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gojobot/bot/flow"
	"gojobot/entity"
	repository "gojobot/internal/database"
	"gojobot/internal/service/files"
	"gojobot/internal/service/validate"
)

const FlowID flow.FlowID = "job"

// Step IDs
const (
	StepLanguage   flow.StepID = "language"
	StepCover      flow.StepID = "cover_letter"
	StepAge        flow.StepID = "age"
	StepPhone      flow.StepID = "phone"
	StepEmail      flow.StepID = "email"
	StepUsername   flow.StepID = "tg_username"
	StepEducation  flow.StepID = "education"
	StepExperience flow.StepID = "experience"
	StepSocial     flow.StepID = "social"
	StepCreate     flow.StepID = "create"
)

// Draft data keys
const (
	KeyCover    = "cover_letter"
	KeyAge      = "age"
	KeyPhone    = "phone"
	KeyEmail    = "email"
	KeyUsername = "tg_username"
	KeyEduRef   = "education_ref"
	KeyExpRef   = "experience_ref"
	KeySocial   = "social_links"
)

// Repository defines the database operations the job flow needs.
type Repository interface {
	GetRegistration(telegramId int64) (*entity.Registration, error)
	CreateJobApplication(app *entity.JobApplication) error
}

// Events receives record-level notifications for dashboards.
type Events interface {
	JobApplicationCreated(app *entity.JobApplication)
}

// NewFlow builds the job application step table. There is no payment
// tail and users may apply more than once.
func NewFlow(repo Repository, store files.Store, events Events) *flow.Flow {
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
				return flow.StepResult{NextStep: StepCover}
			},
		},

		StepCover: askStep(StepCover, StepAge, KeyCover, "ask_cover", "bad_cover",
			func(s string) (any, bool) { v, ok := validate.FullName(s); return v, ok }),

		StepAge: askStep(StepAge, StepPhone, KeyAge, "ask_age", "bad_age",
			func(s string) (any, bool) { v, ok := validate.Age(s); return v, ok }),

		StepPhone: askStep(StepPhone, StepEmail, KeyPhone, "ask_phone", "bad_phone",
			func(s string) (any, bool) { v, ok := validate.Phone(s); return v, ok }),

		StepEmail: askStep(StepEmail, StepUsername, KeyEmail, "ask_email", "bad_email",
			func(s string) (any, bool) { v, ok := validate.Email(s); return v, ok }),

		StepUsername: askStep(StepUsername, StepEducation, KeyUsername, "ask_username", "bad_username",
			func(s string) (any, bool) { v, ok := validate.TelegramUsername(s); return v, ok }),

		StepEducation:  fileStep(StepEducation, StepExperience, KeyEduRef, "ask_edu", files.CategoryEducation, store),
		StepExperience: fileStep(StepExperience, StepSocial, KeyExpRef, "ask_exp", files.CategoryExperience, store),

		StepSocial: {
			ID:     StepSocial,
			Kind:   flow.KindText,
			Prompt: func(d *flow.Draft) string { return text(d.Language, "ask_social") },
			Handle: func(_ context.Context, m flow.Messenger, d *flow.Draft, in flow.Input) flow.StepResult {
				if strings.EqualFold(strings.TrimSpace(in.Text), "skip") {
					return flow.StepResult{NextStep: StepCreate}
				}
				links, ok := validate.SocialLinks(in.Text)
				if !ok {
					_ = m.SendText(d.ChatID, text(d.Language, "bad_social"))
					return flow.StepResult{}
				}
				return flow.StepResult{NextStep: StepCreate, UpdateState: map[string]any{KeySocial: links}}
			},
		},

		StepCreate: {
			ID: StepCreate,
			Enter: func(_ context.Context, m flow.Messenger, d *flow.Draft) flow.StepResult {
				app := entity.NewJobApplication(d.UserID)
				app.CoverLetter = d.GetString(KeyCover)
				app.Age = d.GetInt(KeyAge)
				app.ContactPhone = d.GetString(KeyPhone)
				app.ContactEmail = d.GetString(KeyEmail)
				app.TelegramUsername = d.GetString(KeyUsername)
				app.EducationDocRef = d.GetString(KeyEduRef)
				app.ExperienceDocRef = d.GetString(KeyExpRef)
				app.SocialMediaLinks = d.GetStrings(KeySocial)

				if err := repo.CreateJobApplication(app); err != nil {
					return flow.StepResult{Error: fmt.Errorf("creating job application: %w", err)}
				}
				if events != nil {
					events.JobApplicationCreated(app)
				}
				_ = m.SendText(d.ChatID, text(d.Language, "created"))
				return flow.StepResult{Complete: true}
			},
		},
	}

	return &flow.Flow{
		ID:      FlowID,
		Initial: StepLanguage,
		Steps:   steps,
		Eligible: func(_ context.Context, d *flow.Draft) (string, error) {
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
		},
		FailText: func(d *flow.Draft) string { return text(d.Language, "failed") },
	}
}

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
