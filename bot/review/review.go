package review

import (
	"fmt"
	"log/slog"
	"strings"

	"gojobot/bot/telegram"
	"gojobot/entity"
	"gojobot/internal/lib/sl"
)

// Payment kinds the review service rules on.
const (
	KindRegistration = "registration"
	KindTraining     = "training"
)

// Callback data format: rv:<a|r>:<kind>:<record id>
const callbackPrefix = "rv:"

// Repository defines the database operations the review service needs.
type Repository interface {
	GetUser(telegramId int64) (*entity.User, error)
	GetRegistration(telegramId int64) (*entity.Registration, error)
	GetTraining(telegramId int64) (*entity.Training, error)
	PendingRegistrationPayments() ([]entity.Registration, error)
	PendingTrainingPayments() ([]entity.Training, error)
	ReviewRegistrationPayment(id string, approved bool) (*entity.Registration, error)
	ReviewTrainingPayment(id string, approved bool) (*entity.Training, error)
	ListRegistrations() ([]entity.Registration, error)
	ListTrainings() ([]entity.Training, error)
	ListJobApplications() ([]entity.JobApplication, error)
	GetJobApplicationsByUser(telegramId int64) ([]entity.JobApplication, error)
}

// Sender is the outbound messaging surface, implemented by the Telegram
// messenger.
type Sender interface {
	SendText(chatID int64, text string) error
	SendInline(chatID int64, text string, buttons []telegram.Button) error
}

// NopSender drops outbound messages. It stands in for the Telegram
// messenger when the bot transport is disabled and verdicts arrive
// through the HTTP API only.
type NopSender struct{}

func (NopSender) SendText(int64, string) error { return nil }

func (NopSender) SendInline(int64, string, []telegram.Button) error { return nil }

// Events receives review notifications for dashboards.
type Events interface {
	PaymentSubmitted(kind string, telegramId int64)
	PaymentReviewed(kind, id string, approved bool)
}

// Service runs the payment review workflow: reviewers get notified of
// new proofs, rule by inline buttons or commands, and the users get the
// verdict in their own language.
type Service struct {
	repo   Repository
	sender Sender
	admins []int64
	events Events
	log    *slog.Logger
}

func NewService(repo Repository, sender Sender, admins []int64, events Events, log *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		sender: sender,
		admins: admins,
		events: events,
		log:    log.With(sl.Module("review")),
	}
}

// PaymentSubmitted implements the payment notifier: every reviewer gets
// the proof plus Approve and Reject buttons.
func (s *Service) PaymentSubmitted(kind string, telegramId int64, method, proof string) {
	id, err := s.recordID(kind, telegramId)
	if err != nil {
		s.log.Error("looking up record for notification", sl.Err(err))
		return
	}

	msg := fmt.Sprintf("💰 New %s payment from user %d\nMethod: %s\nProof: %s\nRecord: %s",
		kind, telegramId, method, proof, id)
	buttons := []telegram.Button{
		{Text: "✅ Approve", Data: callbackPrefix + "a:" + kind + ":" + id},
		{Text: "❌ Reject", Data: callbackPrefix + "r:" + kind + ":" + id},
	}

	for _, admin := range s.admins {
		if err := s.sender.SendInline(admin, msg, buttons); err != nil {
			s.log.Warn("notifying reviewer", slog.Int64("admin", admin), sl.Err(err))
		}
	}

	if s.events != nil {
		s.events.PaymentSubmitted(kind, telegramId)
	}
}

func (s *Service) recordID(kind string, telegramId int64) (string, error) {
	switch kind {
	case KindTraining:
		tr, err := s.repo.GetTraining(telegramId)
		if err != nil {
			return "", err
		}
		return tr.ID, nil
	default:
		reg, err := s.repo.GetRegistration(telegramId)
		if err != nil {
			return "", err
		}
		return reg.ID, nil
	}
}

// IsReviewCallback reports whether callback data belongs to this service.
func IsReviewCallback(data string) bool {
	return strings.HasPrefix(data, callbackPrefix)
}

// HandleCallback rules on a payment from an inline button press and
// returns the acknowledgement shown to the reviewer.
func (s *Service) HandleCallback(from int64, data string) (string, error) {
	if !s.isAdmin(from) {
		return "You are not allowed to review payments.", nil
	}

	parts := strings.Split(strings.TrimPrefix(data, callbackPrefix), ":")
	if len(parts) != 3 {
		return "", fmt.Errorf("malformed review callback: %q", data)
	}
	approved := parts[0] == "a"
	return s.review(parts[1], parts[2], approved)
}

// Approve rules on a payment from an admin command.
func (s *Service) Approve(from int64, kind, id string) (string, error) {
	if !s.isAdmin(from) {
		return "You are not allowed to review payments.", nil
	}
	return s.review(kind, id, true)
}

// Reject rules on a payment from an admin command.
func (s *Service) Reject(from int64, kind, id string) (string, error) {
	if !s.isAdmin(from) {
		return "You are not allowed to review payments.", nil
	}
	return s.review(kind, id, false)
}

// ReviewPayment rules on a payment without an admin check. The HTTP
// API calls it behind its own key authentication.
func (s *Service) ReviewPayment(kind, id string, approved bool) (string, error) {
	return s.review(kind, id, approved)
}

func (s *Service) review(kind, id string, approved bool) (string, error) {
	var telegramId int64

	switch kind {
	case KindRegistration:
		reg, err := s.repo.ReviewRegistrationPayment(id, approved)
		if err != nil {
			return "", fmt.Errorf("reviewing registration payment: %w", err)
		}
		telegramId = reg.TelegramId
	case KindTraining:
		tr, err := s.repo.ReviewTrainingPayment(id, approved)
		if err != nil {
			return "", fmt.Errorf("reviewing training payment: %w", err)
		}
		telegramId = tr.TelegramId
	default:
		return "", fmt.Errorf("unknown payment kind: %q", kind)
	}

	verdict := "rejected"
	key := kind + "_rejected"
	if approved {
		verdict = "approved"
		key = kind + "_approved"
	}

	if err := s.sender.SendText(telegramId, text(s.userLanguage(telegramId), key)); err != nil {
		s.log.Warn("notifying user of verdict", slog.Int64("user_id", telegramId), sl.Err(err))
	}

	if s.events != nil {
		s.events.PaymentReviewed(kind, id, approved)
	}

	s.log.Info("payment reviewed",
		slog.String("kind", kind),
		slog.String("id", id),
		slog.Bool("approved", approved),
	)
	return fmt.Sprintf("%s payment %s %s", kind, id, verdict), nil
}

func (s *Service) userLanguage(telegramId int64) string {
	user, err := s.repo.GetUser(telegramId)
	if err != nil || user == nil {
		return "en"
	}
	if user.LanguageCode == "am" {
		return "am"
	}
	return "en"
}

func (s *Service) isAdmin(userId int64) bool {
	for _, id := range s.admins {
		if id == userId {
			return true
		}
	}
	return false
}

// PendingRegistrations formats the registration payments waiting for a
// verdict.
func (s *Service) PendingRegistrations() (string, error) {
	regs, err := s.repo.PendingRegistrationPayments()
	if err != nil {
		return "", fmt.Errorf("listing pending registration payments: %w", err)
	}
	if len(regs) == 0 {
		return "No pending registration payments.", nil
	}

	var b strings.Builder
	b.WriteString("Pending registration payments:\n")
	for _, reg := range regs {
		fmt.Fprintf(&b, "\n• %s\n  user %d, %s\n  method %s, proof %s\n  /approve_payment %s\n  /reject_payment %s\n",
			reg.FullName, reg.TelegramId, reg.ID, reg.PaymentMethod, reg.PaymentProof, reg.ID, reg.ID)
	}
	return b.String(), nil
}

// PendingTrainings formats the training payments waiting for a verdict.
func (s *Service) PendingTrainings() (string, error) {
	trs, err := s.repo.PendingTrainingPayments()
	if err != nil {
		return "", fmt.Errorf("listing pending training payments: %w", err)
	}
	if len(trs) == 0 {
		return "No pending training payments.", nil
	}

	var b strings.Builder
	b.WriteString("Pending training payments:\n")
	for _, tr := range trs {
		courses := tr.Courses
		if len(courses) == 0 {
			courses = tr.OnlineTraining
		}
		fmt.Fprintf(&b, "\n• user %d, %s\n  courses: %s\n  method %s, proof %s\n  /approve_training_payment %s\n  /reject_training_payment %s\n",
			tr.TelegramId, tr.ID, strings.Join(courses, ", "), tr.PaymentMethod, tr.PaymentProof, tr.ID, tr.ID)
	}
	return b.String(), nil
}

// Registrations formats a summary of all registrations.
func (s *Service) Registrations() (string, error) {
	regs, err := s.repo.ListRegistrations()
	if err != nil {
		return "", fmt.Errorf("listing registrations: %w", err)
	}
	if len(regs) == 0 {
		return "No registrations yet.", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Registrations (%d):\n", len(regs))
	for _, reg := range regs {
		fmt.Fprintf(&b, "\n• %s (user %d)\n  paid: %t, status: %s\n  categories: %s\n",
			reg.FullName, reg.TelegramId, reg.IsPaid, reg.PaymentStatus, strings.Join(reg.TalentCategories, ", "))
	}
	return b.String(), nil
}

// Trainings formats a summary of all enrollments.
func (s *Service) Trainings() (string, error) {
	trs, err := s.repo.ListTrainings()
	if err != nil {
		return "", fmt.Errorf("listing trainings: %w", err)
	}
	if len(trs) == 0 {
		return "No training enrollments yet.", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Training enrollments (%d):\n", len(trs))
	for _, tr := range trs {
		mode := "in person"
		courses := tr.Courses
		if !tr.InPerson() {
			mode = "online"
			courses = tr.OnlineTraining
		}
		fmt.Fprintf(&b, "\n• user %d, %s\n  paid: %t, status: %s\n  %s: %s\n",
			tr.TelegramId, tr.ID, tr.IsPaid, tr.PaymentStatus, mode, strings.Join(courses, ", "))
	}
	return b.String(), nil
}

// Jobs formats a summary of all job applications.
func (s *Service) Jobs() (string, error) {
	apps, err := s.repo.ListJobApplications()
	if err != nil {
		return "", fmt.Errorf("listing job applications: %w", err)
	}
	if len(apps) == 0 {
		return "No job applications yet.", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Job applications (%d):\n", len(apps))
	for _, app := range apps {
		fmt.Fprintf(&b, "\n• user %d (%s), age %d\n  %s, %s\n  status: %s\n",
			app.TelegramId, app.TelegramUsername, app.Age, app.ContactEmail, app.ContactPhone, app.Status)
	}
	return b.String(), nil
}

// UserSummary formats everything known about one user.
func (s *Service) UserSummary(telegramId int64) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "User %d\n", telegramId)

	if user, err := s.repo.GetUser(telegramId); err == nil && user != nil {
		fmt.Fprintf(&b, "Name: %s (@%s)\nLast seen: %s\n", user.FullName(), user.Username, user.LastSeen.Format("2006-01-02 15:04"))
	}

	if reg, err := s.repo.GetRegistration(telegramId); err == nil {
		fmt.Fprintf(&b, "\nRegistration %s\n  %s, paid: %t, status: %s\n", reg.ID, reg.FullName, reg.IsPaid, reg.PaymentStatus)
	} else {
		b.WriteString("\nNo registration.\n")
	}

	if tr, err := s.repo.GetTraining(telegramId); err == nil {
		courses := tr.Courses
		if !tr.InPerson() {
			courses = tr.OnlineTraining
		}
		fmt.Fprintf(&b, "\nTraining %s\n  %s, paid: %t, status: %s\n", tr.ID, strings.Join(courses, ", "), tr.IsPaid, tr.PaymentStatus)
	} else {
		b.WriteString("\nNo training enrollment.\n")
	}

	apps, err := s.repo.GetJobApplicationsByUser(telegramId)
	if err == nil && len(apps) > 0 {
		fmt.Fprintf(&b, "\nJob applications: %d\n", len(apps))
		for _, app := range apps {
			fmt.Fprintf(&b, "  • %s, age %d, status %s\n", app.ID, app.Age, app.Status)
		}
	} else {
		b.WriteString("\nNo job applications.\n")
	}

	return b.String(), nil
}
