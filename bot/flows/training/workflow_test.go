package training

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gojobot/bot/flow"
	"gojobot/bot/flows/payment"
	"gojobot/entity"
	repository "gojobot/internal/database"
	"gojobot/internal/service/files"
)

type fakeRepo struct {
	reg       *entity.Registration
	trainings map[int64]*entity.Training
	submitted map[int64]string
}

func newFakeRepo(reg *entity.Registration) *fakeRepo {
	return &fakeRepo{
		reg:       reg,
		trainings: make(map[int64]*entity.Training),
		submitted: make(map[int64]string),
	}
}

func (r *fakeRepo) GetRegistration(int64) (*entity.Registration, error) {
	if r.reg == nil {
		return nil, repository.ErrNotFound
	}
	return r.reg, nil
}

func (r *fakeRepo) GetTraining(telegramId int64) (*entity.Training, error) {
	tr, ok := r.trainings[telegramId]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return tr, nil
}

func (r *fakeRepo) CreateTraining(tr *entity.Training) error {
	if _, ok := r.trainings[tr.TelegramId]; ok {
		return repository.ErrDuplicate
	}
	r.trainings[tr.TelegramId] = tr
	return nil
}

func (r *fakeRepo) SubmitTrainingPayment(telegramId int64, method, proof string) error {
	r.submitted[telegramId] = method + ":" + proof
	return nil
}

type fakeMessenger struct {
	sent []string
}

func (m *fakeMessenger) SendText(_ int64, text string) error {
	m.sent = append(m.sent, text)
	return nil
}

func (m *fakeMessenger) FetchFile(_ context.Context, fileID string) ([]byte, string, error) {
	return []byte("content"), "upload.bin", nil
}

func paidRegistration(telegramId int64) *entity.Registration {
	reg := entity.NewRegistration(telegramId)
	reg.IsPaid = true
	return reg
}

func testEngine(t *testing.T, repo *fakeRepo) *flow.Engine {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := files.NewDiskStore(t.TempDir(), log)
	require.NoError(t, err)

	e := flow.NewEngine(flow.NewMemoryStorage(), log)
	e.Register(NewFlow(repo, store, nil, nil, Config{
		Fee:      2500,
		Accounts: payment.Accounts{CBE: "1000", Abissnya: "1954", Telebirr: "0914"},
	}))
	return e
}

func send(t *testing.T, e *flow.Engine, m flow.Messenger, userID int64, in flow.Input) {
	t.Helper()
	handled, err := e.HandleInput(context.Background(), m, userID, in)
	require.NoError(t, err)
	require.True(t, handled)
}

func TestTrainingOnlineEnrollment(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo(paidRegistration(20))
	e := testEngine(t, repo)
	m := &fakeMessenger{}

	require.NoError(t, e.Start(ctx, m, 20, 20, FlowID, ""))
	send(t, e, m, 20, flow.Input{Text: "1"}) // English
	send(t, e, m, 20, flow.Input{Text: "1"}) // online

	// online list has two courses, 3 is out of range
	send(t, e, m, 20, flow.Input{Text: "1, 3"})
	assert.Equal(t, text("en", "bad_courses"), m.sent[len(m.sent)-1])

	send(t, e, m, 20, flow.Input{Text: "1, 2"})

	tr := repo.trainings[20]
	require.NotNil(t, tr)
	assert.Equal(t, []string{"Scriptwriting", "Screenplay"}, tr.OnlineTraining)
	assert.Empty(t, tr.Courses)
	assert.Equal(t, 2500, tr.TrainingFee)

	send(t, e, m, 20, flow.Input{Text: "1"})
	send(t, e, m, 20, flow.Input{Text: "FT555"})
	assert.Equal(t, "ft:FT555", repo.submitted[20])
}

func TestTrainingInPersonEnrollment(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo(paidRegistration(21))
	e := testEngine(t, repo)
	m := &fakeMessenger{}

	require.NoError(t, e.Start(ctx, m, 21, 21, FlowID, ""))
	send(t, e, m, 21, flow.Input{Text: "2"}) // አማርኛ
	send(t, e, m, 21, flow.Input{Text: "2"}) // in person
	send(t, e, m, 21, flow.Input{Text: "1, 3"})

	tr := repo.trainings[21]
	require.NotNil(t, tr)
	assert.Equal(t, []string{"Acting", "Directing"}, tr.Courses)
	assert.Empty(t, tr.OnlineTraining)
	assert.True(t, tr.InPerson())
}

func TestTrainingRequiresPaidRegistration(t *testing.T) {
	ctx := context.Background()

	// no registration at all
	e := testEngine(t, newFakeRepo(nil))
	m := &fakeMessenger{}
	require.NoError(t, e.Start(ctx, m, 22, 22, FlowID, "en"))
	assert.Equal(t, []string{text("en", "not_eligible")}, m.sent)

	// registered but unpaid
	reg := entity.NewRegistration(23)
	e = testEngine(t, newFakeRepo(reg))
	m = &fakeMessenger{}
	require.NoError(t, e.Start(ctx, m, 23, 23, FlowID, "en"))
	assert.Equal(t, []string{text("en", "not_eligible")}, m.sent)
}

func TestTrainingDuplicateRefused(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo(paidRegistration(24))
	repo.trainings[24] = entity.NewTraining(24)
	e := testEngine(t, repo)
	m := &fakeMessenger{}

	require.NoError(t, e.Start(ctx, m, 24, 24, FlowID, "en"))
	assert.Equal(t, []string{text("en", "already")}, m.sent)
}
