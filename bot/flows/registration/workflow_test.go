package registration

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
	regs      map[int64]*entity.Registration
	submitted map[int64]string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		regs:      make(map[int64]*entity.Registration),
		submitted: make(map[int64]string),
	}
}

func (r *fakeRepo) GetRegistration(telegramId int64) (*entity.Registration, error) {
	reg, ok := r.regs[telegramId]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return reg, nil
}

func (r *fakeRepo) CreateRegistration(reg *entity.Registration) error {
	if _, ok := r.regs[reg.TelegramId]; ok {
		return repository.ErrDuplicate
	}
	r.regs[reg.TelegramId] = reg
	return nil
}

func (r *fakeRepo) SubmitRegistrationPayment(telegramId int64, method, proof string) error {
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
	return []byte("content-of-" + fileID), "upload.bin", nil
}

func (m *fakeMessenger) last() string {
	if len(m.sent) == 0 {
		return ""
	}
	return m.sent[len(m.sent)-1]
}

type fakeNotifier struct {
	kinds []string
}

func (n *fakeNotifier) PaymentSubmitted(kind string, _ int64, _, _ string) {
	n.kinds = append(n.kinds, kind)
}

func testEngine(t *testing.T, repo *fakeRepo, notify payment.Notifier) (*flow.Engine, files.Store) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := files.NewDiskStore(t.TempDir(), log)
	require.NoError(t, err)

	e := flow.NewEngine(flow.NewMemoryStorage(), log)
	e.Register(NewFlow(repo, store, notify, nil, Config{
		Fee:      200,
		Accounts: payment.Accounts{CBE: "1000", Abissnya: "1954", Telebirr: "0914"},
	}))
	return e, store
}

func send(t *testing.T, e *flow.Engine, m flow.Messenger, userID int64, in flow.Input) {
	t.Helper()
	handled, err := e.HandleInput(context.Background(), m, userID, in)
	require.NoError(t, err)
	require.True(t, handled)
}

func TestRegistrationHappyPath(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	notify := &fakeNotifier{}
	e, _ := testEngine(t, repo, notify)
	m := &fakeMessenger{}

	require.NoError(t, e.Start(ctx, m, 10, 10, FlowID, ""))

	for _, reply := range []string{
		"1",                // English
		"Abebe Bikila",     // full name
		"1990-05-04",       // dob
		"1",                // Male
		"+251912345678",    // phone
		"abebe@example.et", // email
		"Addis Ababa",      // address
		"1",                // Single
		"1.75",             // height
		"68",               // weight
		"dark",             // face color
		"4, 5",             // categories
		"Amharic",          // preferred working language
	} {
		send(t, e, m, 10, flow.Input{Text: reply})
	}

	send(t, e, m, 10, flow.Input{File: &flow.FileInput{FileID: "id1", Name: "id.png"}})
	send(t, e, m, 10, flow.Input{File: &flow.FileInput{FileID: "ph1", Name: "me.jpg"}})

	reg := repo.regs[10]
	require.NotNil(t, reg)
	assert.Equal(t, "Abebe Bikila", reg.FullName)
	assert.Equal(t, "Male", reg.Gender)
	assert.Equal(t, []string{"Lead Actors", "Supporting Actors"}, reg.TalentCategories)
	assert.Equal(t, 1.75, reg.Height)
	assert.Equal(t, 200, reg.RegistrationFee)
	assert.Contains(t, reg.NationalIdRef, "id_")
	assert.Contains(t, reg.PhotoRef, "photo_")
	assert.False(t, reg.IsPaid)
	assert.Equal(t, entity.StatusPending, reg.PaymentStatus)

	// payment tail: choose FT number, provide it
	send(t, e, m, 10, flow.Input{Text: "1"})
	send(t, e, m, 10, flow.Input{Text: "FT987654"})

	assert.Equal(t, "ft:FT987654", repo.submitted[10])
	assert.Equal(t, []string{"registration"}, notify.kinds)

	// flow is done, nothing left to handle
	handled, err := e.HandleInput(ctx, m, 10, flow.Input{Text: "hello"})
	require.NoError(t, err)
	assert.False(t, handled)
}

func TestRegistrationRejectsInvalidInput(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	e, _ := testEngine(t, repo, nil)
	m := &fakeMessenger{}

	require.NoError(t, e.Start(ctx, m, 11, 11, FlowID, ""))
	send(t, e, m, 11, flow.Input{Text: "1"})
	send(t, e, m, 11, flow.Input{Text: "Abebe Bikila"})

	// underage stays on the dob step
	send(t, e, m, 11, flow.Input{Text: "2015-01-01"})
	assert.Equal(t, text("en", "bad_dob"), m.last())

	send(t, e, m, 11, flow.Input{Text: "1990-05-04"})
	send(t, e, m, 11, flow.Input{Text: "9"}) // no such gender option
	assert.Equal(t, text("en", "bad_choice"), m.last())
}

func TestRegistrationOutOfRangeCategoryRejectsSubmission(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	e, _ := testEngine(t, repo, nil)
	m := &fakeMessenger{}

	require.NoError(t, e.Start(ctx, m, 12, 12, FlowID, ""))
	for _, reply := range []string{"1", "Abebe Bikila", "1990-05-04", "1", "+251912345678",
		"abebe@example.et", "Addis Ababa", "1", "1.75", "68", "dark"} {
		send(t, e, m, 12, flow.Input{Text: reply})
	}

	send(t, e, m, 12, flow.Input{Text: "1, 3, 99"})
	assert.Equal(t, text("en", "bad_categories"), m.last())

	// valid picks move on
	send(t, e, m, 12, flow.Input{Text: "1, 3"})
	assert.Equal(t, text("en", "ask_pref_lang"), m.last())
}

func TestRegistrationDuplicateRefused(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	repo.regs[13] = entity.NewRegistration(13)
	e, _ := testEngine(t, repo, nil)
	m := &fakeMessenger{}

	require.NoError(t, e.Start(ctx, m, 13, 13, FlowID, "en"))
	assert.Equal(t, []string{text("en", "already")}, m.sent)

	handled, err := e.HandleInput(ctx, m, 13, flow.Input{Text: "hi"})
	require.NoError(t, err)
	assert.False(t, handled)
}

func TestRegistrationReceiptUpload(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepo()
	e, _ := testEngine(t, repo, nil)
	m := &fakeMessenger{}

	require.NoError(t, e.Start(ctx, m, 14, 14, FlowID, ""))
	for _, reply := range []string{"1", "Abebe Bikila", "1990-05-04", "1", "+251912345678",
		"abebe@example.et", "Addis Ababa", "1", "1.75", "68", "dark", "1", "Amharic"} {
		send(t, e, m, 14, flow.Input{Text: reply})
	}
	send(t, e, m, 14, flow.Input{File: &flow.FileInput{FileID: "id1", Name: "id.png"}})
	send(t, e, m, 14, flow.Input{File: &flow.FileInput{FileID: "ph1", Name: "me.jpg"}})

	// choose receipt upload, send a disallowed type first
	send(t, e, m, 14, flow.Input{Text: "2"})
	send(t, e, m, 14, flow.Input{File: &flow.FileInput{FileID: "r1", Name: "receipt.exe"}})
	assert.NotContains(t, repo.submitted, int64(14))

	send(t, e, m, 14, flow.Input{File: &flow.FileInput{FileID: "r1", Name: "receipt.png"}})
	require.Contains(t, repo.submitted, int64(14))
	assert.Contains(t, repo.submitted[14], "receipt:payment_")
}
