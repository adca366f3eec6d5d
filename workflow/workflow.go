// Package workflow sequences logo generation and animation for a single user
// session: Idle → GeneratingImage → ReviewImage → GeneratingVideo → ReviewVideo.
//
// The Machine enforces single-flight itself. A trigger is accepted only from
// its eligible state, and GeneratingImage/GeneratingVideo are held for exactly
// the lifetime of one client call.
package workflow

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/mhpenta/logomotion"
)

// State is the active step of the workflow.
type State int

const (
	Idle State = iota
	GeneratingImage
	ReviewImage
	GeneratingVideo
	ReviewVideo
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case GeneratingImage:
		return "GeneratingImage"
	case ReviewImage:
		return "ReviewImage"
	case GeneratingVideo:
		return "GeneratingVideo"
	case ReviewVideo:
		return "ReviewVideo"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Transient reports whether a generation call is in flight in this state.
func (s State) Transient() bool {
	return s == GeneratingImage || s == GeneratingVideo
}

var (
	// ErrInvalidTransition is returned when a trigger is not allowed in the current state.
	ErrInvalidTransition = errors.New("invalid workflow transition")

	// ErrCancelled is the failure recorded when an in-flight call is cancelled.
	ErrCancelled = errors.New("generation cancelled")
)

// Fallback messages for failures that carry no text of their own.
const (
	imageFailureMessage = "Failed to generate image. Please try again."
	videoFailureMessage = "Failed to generate video. Ensure you have selected a valid API key."
)

// Generator is the part of logomotion.Client the machine depends on.
type Generator interface {
	GenerateImage(ctx context.Context, prompt string, style logomotion.Style) (*logomotion.GeneratedImage, error)
	AnimateImage(ctx context.Context, source logomotion.InputImage, prompt string, aspectRatio logomotion.VideoAspectRatio) (*logomotion.GeneratedVideo, error)
}

var _ Generator = (*logomotion.Client)(nil)

// Content is everything generated so far in the session.
// Video is only ever set while ImageData is set.
type Content struct {
	ImageData     []byte
	ImageMIMEType string
	Video         *logomotion.VideoHandle
	ImagePrompt   string
	VideoPrompt   string
}

func (c Content) clone() Content {
	out := c
	out.ImageData = bytes.Clone(c.ImageData)
	if c.Video != nil {
		v := *c.Video
		out.Video = &v
	}
	return out
}

// Snapshot is what a presentation layer renders.
type Snapshot struct {
	SessionID string
	State     State
	Content   Content
	Error     string
}

// Observer is called with a snapshot after every change. It runs on the
// goroutine that made the change and must not call back into the Machine.
type Observer func(Snapshot)

// Option configures the Machine.
type Option func(*Machine)

// WithLogger sets a structured logger for the machine.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

// WithObserver registers fn to receive snapshots.
func WithObserver(fn Observer) Option {
	return func(m *Machine) {
		m.observers = append(m.observers, fn)
	}
}

// Machine is the workflow controller for one session. It is safe for
// concurrent use; its lock is never held across a generation call.
type Machine struct {
	gen       Generator
	logger    *slog.Logger
	observers []Observer

	mu        sync.Mutex
	sessionID string
	state     State
	content   Content
	lastErr   string

	// epoch changes on every reset so that a late settlement can be discarded.
	epoch  uint64
	cancel context.CancelFunc

	// inFlight is set from begin until the call settles, across resets.
	inFlight bool
}

// New creates a Machine in the Idle state.
func New(gen Generator, opts ...Option) *Machine {
	m := &Machine{
		gen:       gen,
		logger:    slog.Default(),
		sessionID: uuid.NewString(),
		state:     Idle,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns the active state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Snapshot returns a copy of the session state.
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *Machine) snapshotLocked() Snapshot {
	return Snapshot{
		SessionID: m.sessionID,
		State:     m.state,
		Content:   m.content.clone(),
		Error:     m.lastErr,
	}
}

// GenerateImage creates a logo from Idle. It blocks until the call settles and
// returns the failure, if any, that was recorded as the session error.
func (m *Machine) GenerateImage(ctx context.Context, prompt string, style logomotion.Style) error {
	if err := logomotion.ValidatePrompt(prompt); err != nil {
		return err
	}

	callCtx, epoch, _, err := m.begin(ctx, Idle, GeneratingImage)
	if err != nil {
		return err
	}

	m.logger.Debug("workflow generating image", "session", m.sessionIDFor(epoch), "style", string(style))
	img, genErr := m.gen.GenerateImage(callCtx, prompt, style)

	return m.settle(epoch, func() (State, error) {
		if genErr != nil {
			return Idle, genErr
		}
		if img == nil {
			return Idle, logomotion.ErrEmptyResult
		}
		m.content.ImageData = img.Data
		m.content.ImageMIMEType = img.MIMEType
		m.content.ImagePrompt = prompt
		return ReviewImage, nil
	}, imageFailureMessage)
}

// Animate turns the reviewed image into a video. A failure returns the
// session to ReviewImage; the image is kept.
func (m *Machine) Animate(ctx context.Context, prompt string, aspectRatio logomotion.VideoAspectRatio) error {
	callCtx, epoch, content, err := m.begin(ctx, ReviewImage, GeneratingVideo)
	if err != nil {
		return err
	}
	source := logomotion.InputImage{Data: content.ImageData, MIMEType: content.ImageMIMEType}

	m.logger.Debug("workflow animating image", "session", m.sessionIDFor(epoch), "aspect_ratio", string(aspectRatio))
	video, genErr := m.gen.AnimateImage(callCtx, source, prompt, aspectRatio)

	return m.settle(epoch, func() (State, error) {
		if genErr != nil {
			return ReviewImage, genErr
		}
		if video == nil {
			return ReviewImage, logomotion.ErrEmptyResult
		}
		handle := video.Handle
		m.content.Video = &handle
		m.content.VideoPrompt = prompt
		return ReviewVideo, nil
	}, videoFailureMessage)
}

// Reset discards all content and the last error and returns to Idle from any
// state. An in-flight call is cancelled and its result ignored. New triggers
// are rejected until that call has returned.
func (m *Machine) Reset() {
	m.mu.Lock()
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.epoch++
	m.state = Idle
	m.content = Content{}
	m.lastErr = ""
	m.sessionID = uuid.NewString()
	snap := m.snapshotLocked()
	m.mu.Unlock()

	m.logger.Info("workflow reset", "session", snap.SessionID)
	m.notify(snap)
}

// Cancel aborts the in-flight call, if any. The call then settles through its
// normal failure path. It reports whether there was anything to cancel.
func (m *Machine) Cancel() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cancel == nil {
		return false
	}
	m.cancel()
	return true
}

// begin checks eligibility, clears the error and enters the transient state.
// It returns the content as it was when the transition was taken.
func (m *Machine) begin(ctx context.Context, from, to State) (context.Context, uint64, Content, error) {
	m.mu.Lock()
	if m.state != from {
		state := m.state
		m.mu.Unlock()
		return nil, 0, Content{}, fmt.Errorf("%w: cannot enter %s from %s", ErrInvalidTransition, to, state)
	}
	if m.inFlight {
		m.mu.Unlock()
		return nil, 0, Content{}, fmt.Errorf("%w: cannot enter %s while a cancelled call is still returning", ErrInvalidTransition, to)
	}

	callCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.inFlight = true
	m.lastErr = ""
	m.state = to
	epoch := m.epoch
	content := m.content
	snap := m.snapshotLocked()
	m.mu.Unlock()

	m.notify(snap)
	return callCtx, epoch, content, nil
}

// settle leaves the transient state exactly once. apply runs under the lock
// and returns the next state and the failure, if any.
func (m *Machine) settle(epoch uint64, apply func() (State, error), fallback string) error {
	m.mu.Lock()
	m.inFlight = false
	if epoch != m.epoch {
		// Reset happened while the call was in flight.
		m.mu.Unlock()
		m.logger.Debug("discarding settlement after reset")
		return ErrCancelled
	}

	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}

	next, err := apply()
	if err != nil {
		if errors.Is(err, context.Canceled) {
			err = ErrCancelled
		}
		m.lastErr = errorMessage(err, fallback)
	}
	m.state = next
	snap := m.snapshotLocked()
	m.mu.Unlock()

	if err != nil {
		m.logger.Error("workflow step failed",
			"session", snap.SessionID,
			"state", snap.State.String(),
			"error", snap.Error,
		)
	} else {
		m.logger.Info("workflow step completed",
			"session", snap.SessionID,
			"state", snap.State.String(),
		)
	}

	m.notify(snap)
	return err
}

func (m *Machine) sessionIDFor(epoch uint64) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if epoch != m.epoch {
		return ""
	}
	return m.sessionID
}

func (m *Machine) notify(snap Snapshot) {
	for _, fn := range m.observers {
		fn(snap)
	}
}

func errorMessage(err error, fallback string) string {
	if msg := strings.TrimSpace(err.Error()); msg != "" {
		return msg
	}
	return fallback
}
