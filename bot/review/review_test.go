package review

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gojobot/bot/telegram"
	"gojobot/entity"
	repository "gojobot/internal/database"
)

type fakeRepo struct {
	user *entity.User
	reg  *entity.Registration
	tr   *entity.Training
}

func (r *fakeRepo) GetUser(int64) (*entity.User, error) {
	if r.user == nil {
		return nil, repository.ErrNotFound
	}
	return r.user, nil
}

func (r *fakeRepo) GetRegistration(int64) (*entity.Registration, error) {
	if r.reg == nil {
		return nil, repository.ErrNotFound
	}
	return r.reg, nil
}

func (r *fakeRepo) GetTraining(int64) (*entity.Training, error) {
	if r.tr == nil {
		return nil, repository.ErrNotFound
	}
	return r.tr, nil
}

func (r *fakeRepo) PendingRegistrationPayments() ([]entity.Registration, error) {
	if r.reg == nil {
		return nil, nil
	}
	return []entity.Registration{*r.reg}, nil
}

func (r *fakeRepo) PendingTrainingPayments() ([]entity.Training, error) {
	if r.tr == nil {
		return nil, nil
	}
	return []entity.Training{*r.tr}, nil
}

func (r *fakeRepo) ReviewRegistrationPayment(id string, approved bool) (*entity.Registration, error) {
	if r.reg == nil || r.reg.ID != id {
		return nil, repository.ErrNotFound
	}
	r.reg.IsPaid = approved
	if approved {
		r.reg.PaymentStatus = entity.StatusApproved
	} else {
		r.reg.PaymentStatus = entity.StatusRejected
	}
	return r.reg, nil
}

func (r *fakeRepo) ReviewTrainingPayment(id string, approved bool) (*entity.Training, error) {
	if r.tr == nil || r.tr.ID != id {
		return nil, repository.ErrNotFound
	}
	r.tr.IsPaid = approved
	if approved {
		r.tr.PaymentStatus = entity.StatusApproved
	} else {
		r.tr.PaymentStatus = entity.StatusRejected
	}
	return r.tr, nil
}

func (r *fakeRepo) ListRegistrations() ([]entity.Registration, error) {
	return r.PendingRegistrationPayments()
}

func (r *fakeRepo) ListTrainings() ([]entity.Training, error) {
	return r.PendingTrainingPayments()
}

func (r *fakeRepo) ListJobApplications() ([]entity.JobApplication, error) { return nil, nil }

func (r *fakeRepo) GetJobApplicationsByUser(int64) ([]entity.JobApplication, error) {
	return nil, nil
}

type sent struct {
	chatID  int64
	text    string
	buttons []telegram.Button
}

type fakeSender struct {
	messages []sent
}

func (s *fakeSender) SendText(chatID int64, text string) error {
	s.messages = append(s.messages, sent{chatID: chatID, text: text})
	return nil
}

func (s *fakeSender) SendInline(chatID int64, text string, buttons []telegram.Button) error {
	s.messages = append(s.messages, sent{chatID: chatID, text: text, buttons: buttons})
	return nil
}

func newService(repo *fakeRepo, sender *fakeSender) *Service {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(repo, sender, []int64{100, 101}, nil, log)
}

func regFixture() *entity.Registration {
	reg := entity.NewRegistration(55)
	reg.FullName = "Abebe Bikila"
	reg.PaymentMethod = entity.PaymentMethodFT
	reg.PaymentProof = "FT123"
	return reg
}

func TestPaymentSubmittedNotifiesAllReviewers(t *testing.T) {
	repo := &fakeRepo{reg: regFixture()}
	sender := &fakeSender{}
	s := newService(repo, sender)

	s.PaymentSubmitted(KindRegistration, 55, "ft", "FT123")

	require.Len(t, sender.messages, 2)
	assert.Equal(t, int64(100), sender.messages[0].chatID)
	assert.Equal(t, int64(101), sender.messages[1].chatID)

	require.Len(t, sender.messages[0].buttons, 2)
	assert.Equal(t, "rv:a:registration:"+repo.reg.ID, sender.messages[0].buttons[0].Data)
	assert.Equal(t, "rv:r:registration:"+repo.reg.ID, sender.messages[0].buttons[1].Data)
	assert.True(t, IsReviewCallback(sender.messages[0].buttons[0].Data))
}

func TestHandleCallbackApprove(t *testing.T) {
	repo := &fakeRepo{reg: regFixture()}
	sender := &fakeSender{}
	s := newService(repo, sender)

	ack, err := s.HandleCallback(100, "rv:a:registration:"+repo.reg.ID)
	require.NoError(t, err)
	assert.Contains(t, ack, "approved")

	assert.True(t, repo.reg.IsPaid)
	assert.Equal(t, entity.StatusApproved, repo.reg.PaymentStatus)

	// user got the verdict
	require.Len(t, sender.messages, 1)
	assert.Equal(t, int64(55), sender.messages[0].chatID)
	assert.Equal(t, text("en", "registration_approved"), sender.messages[0].text)
}

func TestHandleCallbackRejectInUserLanguage(t *testing.T) {
	repo := &fakeRepo{
		reg:  regFixture(),
		user: &entity.User{TelegramId: 55, LanguageCode: "am"},
	}
	sender := &fakeSender{}
	s := newService(repo, sender)

	ack, err := s.HandleCallback(101, "rv:r:registration:"+repo.reg.ID)
	require.NoError(t, err)
	assert.Contains(t, ack, "rejected")

	assert.False(t, repo.reg.IsPaid)
	assert.Equal(t, entity.StatusRejected, repo.reg.PaymentStatus)
	assert.Equal(t, text("am", "registration_rejected"), sender.messages[0].text)
}

func TestHandleCallbackRefusesNonAdmin(t *testing.T) {
	repo := &fakeRepo{reg: regFixture()}
	sender := &fakeSender{}
	s := newService(repo, sender)

	ack, err := s.HandleCallback(999, "rv:a:registration:"+repo.reg.ID)
	require.NoError(t, err)
	assert.Contains(t, ack, "not allowed")
	assert.False(t, repo.reg.IsPaid)
}

func TestApproveTrainingByCommand(t *testing.T) {
	tr := entity.NewTraining(66)
	tr.Courses = []string{"Acting"}
	repo := &fakeRepo{tr: tr}
	sender := &fakeSender{}
	s := newService(repo, sender)

	ack, err := s.Approve(100, KindTraining, tr.ID)
	require.NoError(t, err)
	assert.Contains(t, ack, "approved")
	assert.True(t, tr.IsPaid)
	assert.Equal(t, text("en", "training_approved"), sender.messages[0].text)
}

func TestReviewUnknownRecord(t *testing.T) {
	repo := &fakeRepo{}
	s := newService(repo, &fakeSender{})

	_, err := s.Reject(100, KindRegistration, "missing-id")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestReviewPaymentWithNopSender(t *testing.T) {
	// verdicts arriving over the HTTP API work without a bot transport
	repo := &fakeRepo{reg: regFixture()}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	s := NewService(repo, NopSender{}, nil, nil, log)

	ack, err := s.ReviewPayment(KindRegistration, repo.reg.ID, true)
	require.NoError(t, err)
	assert.Contains(t, ack, "approved")
	assert.True(t, repo.reg.IsPaid)
}

func TestPendingListings(t *testing.T) {
	repo := &fakeRepo{}
	s := newService(repo, &fakeSender{})

	out, err := s.PendingRegistrations()
	require.NoError(t, err)
	assert.Equal(t, "No pending registration payments.", out)

	repo.reg = regFixture()
	out, err = s.PendingRegistrations()
	require.NoError(t, err)
	assert.Contains(t, out, "Abebe Bikila")
	assert.Contains(t, out, "/approve_payment "+repo.reg.ID)
}
