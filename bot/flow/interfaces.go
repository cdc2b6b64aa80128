package flow

import "context"

// StepID is a unique identifier for a step within a flow.
type StepID string

// FlowID is a unique identifier for a flow.
type FlowID string

// InputKind declares what a step is waiting for. The engine re-prompts
// when the input kind does not match instead of calling the handler.
type InputKind int

const (
	KindText InputKind = iota
	KindFile
	KindAny
)

// FileInput is a document or photo attached to an incoming message.
type FileInput struct {
	FileID string
	Name   string
	Size   int64
}

// Input is one incoming user message, normalized by the transport.
type Input struct {
	Text string
	File *FileInput
}

// Messenger is the transport surface steps talk through.
type Messenger interface {
	SendText(chatID int64, text string) error
	FetchFile(ctx context.Context, fileID string) ([]byte, string, error)
}

// StepResult represents the outcome of handling an event in a step.
// Abort ends the flow without the failure message, for cases where the
// handler already told the user why (a duplicate record, say).
type StepResult struct {
	NextStep    StepID
	UpdateState map[string]any
	Complete    bool
	Abort       bool
	Error       error
}

// Step is one row of a flow's step table. Prompt is sent on entry;
// Handle processes the user's reply. Steps with Enter set run on entry
// instead of prompting, which lets them chain to the next step.
type Step struct {
	ID     StepID
	Kind   InputKind
	Prompt func(d *Draft) string
	Enter  func(ctx context.Context, m Messenger, d *Draft) StepResult
	Handle func(ctx context.Context, m Messenger, d *Draft, input Input) StepResult
}

// Flow is a complete step table plus its entry conditions.
type Flow struct {
	ID      FlowID
	Initial StepID
	Steps   map[StepID]Step

	// Eligible gates entry. A non-empty message means the user may not
	// start the flow and should be told why. Nil means always eligible.
	Eligible func(ctx context.Context, d *Draft) (string, error)

	// FailText is the localized message sent when a step returns an error.
	FailText func(d *Draft) string
}

// StateStorage handles persistence of in-progress drafts, keyed by user.
type StateStorage interface {
	Save(ctx context.Context, d *Draft) error
	Load(ctx context.Context, userID int64) (*Draft, error)
	Delete(ctx context.Context, userID int64) error
}
