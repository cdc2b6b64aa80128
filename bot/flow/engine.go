package flow

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Engine is the platform-agnostic flow orchestrator. One draft per user
// at a time; starting a flow replaces whatever was in progress. Updates
// for the same user are serialized, the dispatcher may deliver them on
// any goroutine.
type Engine struct {
	flows   map[FlowID]*Flow
	storage StateStorage
	log     *slog.Logger

	mu    sync.Mutex
	users map[int64]*sync.Mutex
}

// NewEngine creates a new flow engine.
func NewEngine(storage StateStorage, log *slog.Logger) *Engine {
	return &Engine{
		flows:   make(map[FlowID]*Flow),
		storage: storage,
		log:     log,
		users:   make(map[int64]*sync.Mutex),
	}
}

// userLock returns the mutex guarding one user's draft.
func (e *Engine) userLock(userID int64) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	l, ok := e.users[userID]
	if !ok {
		l = &sync.Mutex{}
		e.users[userID] = l
	}
	return l
}

// Register adds a flow to the engine.
func (e *Engine) Register(f *Flow) {
	e.flows[f.ID] = f
	e.log.Info("flow engine: registered flow", slog.String("flow_id", string(f.ID)))
}

// Start begins a flow for a user, discarding any draft already in
// progress. The flow's eligibility gate runs first.
func (e *Engine) Start(ctx context.Context, m Messenger, userID, chatID int64, flowID FlowID, language string) error {
	lock := e.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	f, ok := e.flows[flowID]
	if !ok {
		return fmt.Errorf("flow not found: %s", flowID)
	}

	draft := NewDraft(userID, chatID, flowID, f.Initial)
	if language != "" {
		draft.Language = language
	}

	if f.Eligible != nil {
		refusal, err := f.Eligible(ctx, draft)
		if err != nil {
			return fmt.Errorf("eligibility check: %w", err)
		}
		if refusal != "" {
			return m.SendText(chatID, refusal)
		}
	}

	if err := e.storage.Save(ctx, draft); err != nil {
		return fmt.Errorf("saving initial draft: %w", err)
	}

	e.log.Info("flow engine: starting flow",
		slog.Int64("user_id", userID),
		slog.String("flow_id", string(flowID)),
	)

	return e.enterStep(ctx, m, draft, f, f.Initial)
}

// HandleInput routes a message to the user's current step. The returned
// bool reports whether a draft was in progress at all, so the caller can
// offer guidance when there was nothing to route to.
func (e *Engine) HandleInput(ctx context.Context, m Messenger, userID int64, input Input) (bool, error) {
	lock := e.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	draft, err := e.storage.Load(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("loading draft: %w", err)
	}
	if draft == nil {
		return false, nil
	}

	f, ok := e.flows[draft.FlowID]
	if !ok {
		return true, fmt.Errorf("flow not found: %s", draft.FlowID)
	}

	step, ok := f.Steps[draft.Step]
	if !ok {
		return true, fmt.Errorf("step not found: %s", draft.Step)
	}

	// Wrong kind of input for this step, repeat the prompt.
	if !kindMatches(step.Kind, input) {
		if step.Prompt != nil {
			return true, m.SendText(draft.ChatID, step.Prompt(draft))
		}
		return true, nil
	}

	result := step.Handle(ctx, m, draft, input)
	return true, e.processResult(ctx, m, draft, f, result)
}

// Cancel discards a user's draft. The returned bool reports whether
// there was one.
func (e *Engine) Cancel(ctx context.Context, userID int64) (bool, error) {
	lock := e.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	draft, err := e.storage.Load(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("loading draft: %w", err)
	}
	if draft == nil {
		return false, nil
	}
	return true, e.storage.Delete(ctx, userID)
}

// Active returns the flow the user is currently in, if any.
func (e *Engine) Active(ctx context.Context, userID int64) (FlowID, bool, error) {
	draft, err := e.storage.Load(ctx, userID)
	if err != nil || draft == nil {
		return "", false, err
	}
	return draft.FlowID, true, nil
}

func kindMatches(kind InputKind, input Input) bool {
	switch kind {
	case KindText:
		return input.Text != ""
	case KindFile:
		return input.File != nil
	default:
		return true
	}
}

// enterStep moves the draft to a step and runs its entry action, either
// the Enter hook or sending the prompt.
func (e *Engine) enterStep(ctx context.Context, m Messenger, draft *Draft, f *Flow, id StepID) error {
	step, ok := f.Steps[id]
	if !ok {
		return fmt.Errorf("step not found: %s", id)
	}

	draft.Step = id
	if err := e.storage.Save(ctx, draft); err != nil {
		return fmt.Errorf("saving draft: %w", err)
	}

	if step.Enter != nil {
		result := step.Enter(ctx, m, draft)
		return e.processResult(ctx, m, draft, f, result)
	}
	if step.Prompt != nil {
		return m.SendText(draft.ChatID, step.Prompt(draft))
	}
	return nil
}

// processResult handles the result of a step handler: transitions,
// chaining, draft saves, flow completion.
func (e *Engine) processResult(ctx context.Context, m Messenger, draft *Draft, f *Flow, result StepResult) error {
	const maxTransitions = 20

	for i := 0; ; i++ {
		if result.Error != nil {
			e.log.Error("flow engine: step error",
				slog.Int64("user_id", draft.UserID),
				slog.String("flow_id", string(draft.FlowID)),
				slog.String("step_id", string(draft.Step)),
				slog.String("error", result.Error.Error()),
			)
			if f.FailText != nil {
				_ = m.SendText(draft.ChatID, f.FailText(draft))
			}
			if err := e.storage.Delete(ctx, draft.UserID); err != nil {
				e.log.Error("flow engine: deleting draft after error", slog.String("error", err.Error()))
			}
			return result.Error
		}

		if result.Abort {
			return e.storage.Delete(ctx, draft.UserID)
		}

		if result.UpdateState != nil {
			draft.MergeData(result.UpdateState)
		}
		draft.UpdatedAt = time.Now()

		if result.Complete {
			e.log.Info("flow engine: flow completed",
				slog.Int64("user_id", draft.UserID),
				slog.String("flow_id", string(draft.FlowID)),
			)
			return e.storage.Delete(ctx, draft.UserID)
		}

		if result.NextStep == "" || result.NextStep == draft.Step {
			return e.storage.Save(ctx, draft)
		}

		if i >= maxTransitions {
			return fmt.Errorf("flow %s: transition limit reached at step %s", draft.FlowID, draft.Step)
		}

		step, ok := f.Steps[result.NextStep]
		if !ok {
			return fmt.Errorf("next step not found: %s", result.NextStep)
		}

		draft.Step = result.NextStep
		if err := e.storage.Save(ctx, draft); err != nil {
			return fmt.Errorf("saving draft after transition: %w", err)
		}

		e.log.Debug("flow engine: transitioning",
			slog.Int64("user_id", draft.UserID),
			slog.String("step_id", string(draft.Step)),
		)

		if step.Enter != nil {
			result = step.Enter(ctx, m, draft)
			continue
		}
		if step.Prompt != nil {
			return m.SendText(draft.ChatID, step.Prompt(draft))
		}
		return nil
	}
}
