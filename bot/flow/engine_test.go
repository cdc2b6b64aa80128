package flow

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMessenger struct {
	sent []string
}

func (m *fakeMessenger) SendText(_ int64, text string) error {
	m.sent = append(m.sent, text)
	return nil
}

func (m *fakeMessenger) FetchFile(_ context.Context, _ string) ([]byte, string, error) {
	return []byte("bytes"), "file.png", nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func twoStepFlow() *Flow {
	return &Flow{
		ID:      "quiz",
		Initial: "name",
		Steps: map[StepID]Step{
			"name": {
				ID:     "name",
				Kind:   KindText,
				Prompt: func(*Draft) string { return "your name?" },
				Handle: func(_ context.Context, _ Messenger, _ *Draft, in Input) StepResult {
					return StepResult{NextStep: "color", UpdateState: map[string]any{"name": in.Text}}
				},
			},
			"color": {
				ID:     "color",
				Kind:   KindText,
				Prompt: func(*Draft) string { return "favorite color?" },
				Handle: func(_ context.Context, _ Messenger, _ *Draft, in Input) StepResult {
					return StepResult{Complete: true, UpdateState: map[string]any{"color": in.Text}}
				},
			},
		},
		FailText: func(*Draft) string { return "something went wrong" },
	}
}

func TestEngineWalksSteps(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	e := NewEngine(storage, testLogger())
	e.Register(twoStepFlow())
	m := &fakeMessenger{}

	require.NoError(t, e.Start(ctx, m, 7, 7, "quiz", "en"))
	assert.Equal(t, []string{"your name?"}, m.sent)

	handled, err := e.HandleInput(ctx, m, 7, Input{Text: "Abebe"})
	require.NoError(t, err)
	assert.True(t, handled)
	assert.Equal(t, "favorite color?", m.sent[len(m.sent)-1])

	d, err := storage.Load(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "Abebe", d.GetString("name"))
	assert.Equal(t, StepID("color"), d.Step)

	handled, err = e.HandleInput(ctx, m, 7, Input{Text: "blue"})
	require.NoError(t, err)
	assert.True(t, handled)

	// completion deletes the draft
	d, err = storage.Load(ctx, 7)
	require.NoError(t, err)
	assert.Nil(t, d)
}

func TestEngineNoDraft(t *testing.T) {
	e := NewEngine(NewMemoryStorage(), testLogger())
	e.Register(twoStepFlow())

	handled, err := e.HandleInput(context.Background(), &fakeMessenger{}, 99, Input{Text: "hi"})
	require.NoError(t, err)
	assert.False(t, handled)
}

func TestEngineKindMismatchRepeatsPrompt(t *testing.T) {
	ctx := context.Background()
	e := NewEngine(NewMemoryStorage(), testLogger())
	f := twoStepFlow()
	f.Steps["name"] = Step{
		ID:     "name",
		Kind:   KindFile,
		Prompt: func(*Draft) string { return "send a file" },
		Handle: func(_ context.Context, _ Messenger, _ *Draft, _ Input) StepResult {
			return StepResult{Complete: true}
		},
	}
	e.Register(f)
	m := &fakeMessenger{}

	require.NoError(t, e.Start(ctx, m, 1, 1, "quiz", "en"))

	handled, err := e.HandleInput(ctx, m, 1, Input{Text: "not a file"})
	require.NoError(t, err)
	assert.True(t, handled)
	assert.Equal(t, []string{"send a file", "send a file"}, m.sent)
}

func TestEngineEligibilityGate(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	e := NewEngine(storage, testLogger())
	f := twoStepFlow()
	f.Eligible = func(context.Context, *Draft) (string, error) {
		return "finish registration first", nil
	}
	e.Register(f)
	m := &fakeMessenger{}

	require.NoError(t, e.Start(ctx, m, 5, 5, "quiz", "en"))
	assert.Equal(t, []string{"finish registration first"}, m.sent)

	d, err := storage.Load(ctx, 5)
	require.NoError(t, err)
	assert.Nil(t, d)
}

func TestEngineStepErrorFailsFlow(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	e := NewEngine(storage, testLogger())
	f := twoStepFlow()
	boom := errors.New("insert failed")
	f.Steps["name"] = Step{
		ID:     "name",
		Kind:   KindText,
		Prompt: func(*Draft) string { return "your name?" },
		Handle: func(_ context.Context, _ Messenger, _ *Draft, _ Input) StepResult {
			return StepResult{Error: boom}
		},
	}
	e.Register(f)
	m := &fakeMessenger{}

	require.NoError(t, e.Start(ctx, m, 2, 2, "quiz", "en"))

	_, err := e.HandleInput(ctx, m, 2, Input{Text: "x"})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "something went wrong", m.sent[len(m.sent)-1])

	d, err := storage.Load(ctx, 2)
	require.NoError(t, err)
	assert.Nil(t, d)
}

func TestEngineAbortDeletesDraftSilently(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	e := NewEngine(storage, testLogger())
	f := twoStepFlow()
	f.Steps["name"] = Step{
		ID:     "name",
		Kind:   KindText,
		Prompt: func(*Draft) string { return "your name?" },
		Handle: func(_ context.Context, m Messenger, d *Draft, _ Input) StepResult {
			_ = m.SendText(d.ChatID, "you are already registered")
			return StepResult{Abort: true}
		},
	}
	e.Register(f)
	m := &fakeMessenger{}

	require.NoError(t, e.Start(ctx, m, 3, 3, "quiz", "en"))
	_, err := e.HandleInput(ctx, m, 3, Input{Text: "x"})
	require.NoError(t, err)
	assert.Equal(t, "you are already registered", m.sent[len(m.sent)-1])

	d, err := storage.Load(ctx, 3)
	require.NoError(t, err)
	assert.Nil(t, d)
}

func TestEngineAutoTransitionChain(t *testing.T) {
	ctx := context.Background()
	e := NewEngine(NewMemoryStorage(), testLogger())
	f := &Flow{
		ID:      "chain",
		Initial: "ask",
		Steps: map[StepID]Step{
			"ask": {
				ID:     "ask",
				Kind:   KindText,
				Prompt: func(*Draft) string { return "ready?" },
				Handle: func(_ context.Context, _ Messenger, _ *Draft, _ Input) StepResult {
					return StepResult{NextStep: "create"}
				},
			},
			"create": {
				ID: "create",
				Enter: func(_ context.Context, m Messenger, d *Draft) StepResult {
					_ = m.SendText(d.ChatID, "record created")
					return StepResult{NextStep: "pay"}
				},
			},
			"pay": {
				ID:     "pay",
				Kind:   KindText,
				Prompt: func(*Draft) string { return "how will you pay?" },
				Handle: func(_ context.Context, _ Messenger, _ *Draft, _ Input) StepResult {
					return StepResult{Complete: true}
				},
			},
		},
	}
	e.Register(f)
	m := &fakeMessenger{}

	require.NoError(t, e.Start(ctx, m, 4, 4, "chain", "en"))
	_, err := e.HandleInput(ctx, m, 4, Input{Text: "yes"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ready?", "record created", "how will you pay?"}, m.sent)
}

func TestEngineTransitionLimit(t *testing.T) {
	ctx := context.Background()
	e := NewEngine(NewMemoryStorage(), testLogger())
	f := &Flow{
		ID:      "loop",
		Initial: "a",
		Steps: map[StepID]Step{
			"a": {
				ID:     "a",
				Kind:   KindText,
				Prompt: func(*Draft) string { return "go" },
				Handle: func(_ context.Context, _ Messenger, _ *Draft, _ Input) StepResult {
					return StepResult{NextStep: "b"}
				},
			},
			"b": {
				ID: "b",
				Enter: func(_ context.Context, _ Messenger, _ *Draft) StepResult {
					return StepResult{NextStep: "c"}
				},
			},
			"c": {
				ID: "c",
				Enter: func(_ context.Context, _ Messenger, _ *Draft) StepResult {
					return StepResult{NextStep: "b"}
				},
			},
		},
	}
	e.Register(f)
	m := &fakeMessenger{}

	require.NoError(t, e.Start(ctx, m, 6, 6, "loop", "en"))
	_, err := e.HandleInput(ctx, m, 6, Input{Text: "go"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transition limit")
}

func TestEngineStartReplacesDraft(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	e := NewEngine(storage, testLogger())
	e.Register(twoStepFlow())
	m := &fakeMessenger{}

	require.NoError(t, e.Start(ctx, m, 8, 8, "quiz", "en"))
	_, err := e.HandleInput(ctx, m, 8, Input{Text: "Abebe"})
	require.NoError(t, err)

	// restart goes back to the first step with fresh data
	require.NoError(t, e.Start(ctx, m, 8, 8, "quiz", "am"))
	d, err := storage.Load(ctx, 8)
	require.NoError(t, err)
	assert.Equal(t, StepID("name"), d.Step)
	assert.Empty(t, d.Data)
	assert.Equal(t, "am", d.Language)
}

func TestEngineSerializesUserInput(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	e := NewEngine(storage, testLogger())

	var handled int32
	f := &Flow{
		ID:      "race",
		Initial: "name",
		Steps: map[StepID]Step{
			"name": {
				ID:     "name",
				Kind:   KindText,
				Prompt: func(*Draft) string { return "your name?" },
				Handle: func(_ context.Context, _ Messenger, _ *Draft, _ Input) StepResult {
					atomic.AddInt32(&handled, 1)
					return StepResult{NextStep: "photo"}
				},
			},
			"photo": {
				ID:     "photo",
				Kind:   KindFile,
				Prompt: func(*Draft) string { return "send a photo" },
				Handle: func(_ context.Context, _ Messenger, _ *Draft, _ Input) StepResult {
					return StepResult{Complete: true}
				},
			},
		},
	}
	e.Register(f)
	m := &fakeMessenger{}

	require.NoError(t, e.Start(ctx, m, 10, 10, "race", "en"))

	// two quick messages from the same user must not both run the
	// text step; the second lands on the file step and only repeats
	// its prompt
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.HandleInput(ctx, m, 10, Input{Text: "Abebe"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&handled))

	d, err := storage.Load(ctx, 10)
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, StepID("photo"), d.Step)
}

func TestEngineCancel(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	e := NewEngine(storage, testLogger())
	e.Register(twoStepFlow())
	m := &fakeMessenger{}

	had, err := e.Cancel(ctx, 9)
	require.NoError(t, err)
	assert.False(t, had)

	require.NoError(t, e.Start(ctx, m, 9, 9, "quiz", "en"))
	had, err = e.Cancel(ctx, 9)
	require.NoError(t, err)
	assert.True(t, had)

	_, active, err := e.Active(ctx, 9)
	require.NoError(t, err)
	assert.False(t, active)
}
