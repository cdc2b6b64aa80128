package job

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gojobot/bot/flow"
	"gojobot/entity"
	repository "gojobot/internal/database"
	"gojobot/internal/service/files"
)

type fakeRepo struct {
	reg  *entity.Registration
	apps []*entity.JobApplication
}

func (r *fakeRepo) GetRegistration(int64) (*entity.Registration, error) {
	if r.reg == nil {
		return nil, repository.ErrNotFound
	}
	return r.reg, nil
}

func (r *fakeRepo) CreateJobApplication(app *entity.JobApplication) error {
	r.apps = append(r.apps, app)
	return nil
}

type fakeMessenger struct {
	sent     []string
	fetchErr error
}

func (m *fakeMessenger) SendText(_ int64, text string) error {
	m.sent = append(m.sent, text)
	return nil
}

func (m *fakeMessenger) FetchFile(_ context.Context, fileID string) ([]byte, string, error) {
	if m.fetchErr != nil {
		return nil, "", m.fetchErr
	}
	return []byte("content"), "upload.bin", nil
}

func testEngine(t *testing.T, repo *fakeRepo) *flow.Engine {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := files.NewDiskStore(t.TempDir(), log)
	require.NoError(t, err)

	e := flow.NewEngine(flow.NewMemoryStorage(), log)
	e.Register(NewFlow(repo, store, nil))
	return e
}

func send(t *testing.T, e *flow.Engine, m flow.Messenger, userID int64, in flow.Input) {
	t.Helper()
	handled, err := e.HandleInput(context.Background(), m, userID, in)
	require.NoError(t, err)
	require.True(t, handled)
}

func paidRegistration(telegramId int64) *entity.Registration {
	reg := entity.NewRegistration(telegramId)
	reg.IsPaid = true
	return reg
}

func TestJobApplicationHappyPath(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{reg: paidRegistration(30)}
	e := testEngine(t, repo)
	m := &fakeMessenger{}

	require.NoError(t, e.Start(ctx, m, 30, 30, FlowID, ""))
	for _, reply := range []string{
		"1",
		"I have five years of experience on set.",
		"27",
		"+251911223344",
		"sara@example.et",
		"@sara_works",
	} {
		send(t, e, m, 30, flow.Input{Text: reply})
	}
	send(t, e, m, 30, flow.Input{File: &flow.FileInput{FileID: "e1", Name: "degree.pdf"}})
	send(t, e, m, 30, flow.Input{File: &flow.FileInput{FileID: "x1", Name: "cv.docx"}})
	send(t, e, m, 30, flow.Input{Text: "https://instagram.com/sara, tiktok.com/@sara"})

	require.Len(t, repo.apps, 1)
	app := repo.apps[0]
	assert.Equal(t, 27, app.Age)
	assert.Equal(t, "@sara_works", app.TelegramUsername)
	assert.Contains(t, app.EducationDocRef, "education_")
	assert.Contains(t, app.ExperienceDocRef, "experience_")
	assert.Len(t, app.SocialMediaLinks, 2)
	assert.Equal(t, entity.StatusPending, app.Status)
}

func TestJobApplicationSkipSocialLinks(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{reg: paidRegistration(31)}
	e := testEngine(t, repo)
	m := &fakeMessenger{}

	require.NoError(t, e.Start(ctx, m, 31, 31, FlowID, ""))
	for _, reply := range []string{"1", "Cover letter text here.", "35", "+251911223344", "x@y.et", "someuser"} {
		send(t, e, m, 31, flow.Input{Text: reply})
	}
	send(t, e, m, 31, flow.Input{File: &flow.FileInput{FileID: "e1", Name: "degree.doc"}})
	send(t, e, m, 31, flow.Input{File: &flow.FileInput{FileID: "x1", Name: "cv.pdf"}})
	send(t, e, m, 31, flow.Input{Text: "skip"})

	require.Len(t, repo.apps, 1)
	assert.Empty(t, repo.apps[0].SocialMediaLinks)
	assert.Equal(t, "@someuser", repo.apps[0].TelegramUsername)
}

func TestJobApplicationAllowsRepeatApplications(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{reg: paidRegistration(32)}
	e := testEngine(t, repo)

	for i := 0; i < 2; i++ {
		m := &fakeMessenger{}
		require.NoError(t, e.Start(ctx, m, 32, 32, FlowID, ""))
		for _, reply := range []string{"1", "Cover letter text.", "40", "+251911223344", "x@y.et", "someuser"} {
			send(t, e, m, 32, flow.Input{Text: reply})
		}
		send(t, e, m, 32, flow.Input{File: &flow.FileInput{FileID: "e1", Name: "degree.pdf"}})
		send(t, e, m, 32, flow.Input{File: &flow.FileInput{FileID: "x1", Name: "cv.pdf"}})
		send(t, e, m, 32, flow.Input{Text: "skip"})
	}

	assert.Len(t, repo.apps, 2)
}

func TestJobApplicationRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{reg: paidRegistration(33)}
	e := testEngine(t, repo)
	m := &fakeMessenger{}

	require.NoError(t, e.Start(ctx, m, 33, 33, FlowID, ""))
	send(t, e, m, 33, flow.Input{Text: "1"})
	send(t, e, m, 33, flow.Input{Text: "Cover letter."})

	send(t, e, m, 33, flow.Input{Text: "17"})
	assert.Equal(t, text("en", "bad_age"), m.sent[len(m.sent)-1])

	send(t, e, m, 33, flow.Input{Text: "101"})
	assert.Equal(t, text("en", "bad_age"), m.sent[len(m.sent)-1])

	send(t, e, m, 33, flow.Input{Text: "27"})
	assert.Equal(t, text("en", "ask_phone"), m.sent[len(m.sent)-1])
}

func TestJobApplicationSurvivesFetchFailure(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{reg: paidRegistration(35)}
	e := testEngine(t, repo)
	m := &fakeMessenger{}

	require.NoError(t, e.Start(ctx, m, 35, 35, FlowID, ""))
	for _, reply := range []string{"1", "Cover letter text.", "30", "+251911223344", "x@y.et", "someuser"} {
		send(t, e, m, 35, flow.Input{Text: reply})
	}

	// the download from Telegram fails once, the draft stays on the step
	m.fetchErr = errors.New("getFile: timeout")
	send(t, e, m, 35, flow.Input{File: &flow.FileInput{FileID: "e1", Name: "degree.pdf"}})
	assert.Equal(t, text("en", "fetch_failed"), m.sent[len(m.sent)-1])

	_, active, err := e.Active(ctx, 35)
	require.NoError(t, err)
	require.True(t, active)

	// resending the same upload succeeds and the flow finishes
	m.fetchErr = nil
	send(t, e, m, 35, flow.Input{File: &flow.FileInput{FileID: "e1", Name: "degree.pdf"}})
	send(t, e, m, 35, flow.Input{File: &flow.FileInput{FileID: "x1", Name: "cv.pdf"}})
	send(t, e, m, 35, flow.Input{Text: "skip"})

	require.Len(t, repo.apps, 1)
	assert.Contains(t, repo.apps[0].EducationDocRef, "education_")
}

func TestJobApplicationRequiresPaidRegistration(t *testing.T) {
	e := testEngine(t, &fakeRepo{})
	m := &fakeMessenger{}

	require.NoError(t, e.Start(context.Background(), m, 34, 34, FlowID, "en"))
	assert.Equal(t, []string{text("en", "not_eligible")}, m.sent)
}
