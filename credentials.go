package logomotion

import (
	"context"
	"strings"
	"sync"
	"time"
)

// DefaultSettleDelay is how long the client waits after the credential picker
// returns before re-checking the selection.
const DefaultSettleDelay = 500 * time.Millisecond

// PickerFunc asks the user for an API key. An empty key with a nil error means
// the user cancelled.
type PickerFunc func(ctx context.Context) (string, error)

// KeyStore is a CredentialGate that holds the selected API key and serves it
// to providers. The key can be replaced at runtime through the picker.
type KeyStore struct {
	mu     sync.RWMutex
	key    string
	picker PickerFunc
}

var _ CredentialGate = (*KeyStore)(nil)

// NewKeyStore creates a KeyStore seeded with key. picker may be nil, in which
// case an unset key can never be satisfied.
func NewKeyStore(key string, picker PickerFunc) *KeyStore {
	return &KeyStore{key: strings.TrimSpace(key), picker: picker}
}

// APIKey returns the currently selected key.
func (s *KeyStore) APIKey() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.key
}

// SetAPIKey replaces the selected key.
func (s *KeyStore) SetAPIKey(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.key = strings.TrimSpace(key)
}

// HasSelectedCredential reports whether a non-blank key is set.
func (s *KeyStore) HasSelectedCredential(ctx context.Context) (bool, error) {
	return s.APIKey() != "", nil
}

// OpenCredentialPicker runs the picker and stores the key it returns.
// A blank key leaves the current selection unchanged.
func (s *KeyStore) OpenCredentialPicker(ctx context.Context) error {
	if s.picker == nil {
		return nil
	}
	key, err := s.picker(ctx)
	if err != nil {
		return err
	}
	if key = strings.TrimSpace(key); key != "" {
		s.SetAPIKey(key)
	}
	return nil
}

// ensureCredential runs the gate: if nothing is selected it opens the picker,
// waits settle, and checks again. Any outcome other than a selected credential
// is a CredentialError.
func ensureCredential(ctx context.Context, gate CredentialGate, settle time.Duration) error {
	if gate == nil {
		return nil
	}

	ok, err := gate.HasSelectedCredential(ctx)
	if err != nil {
		return &CredentialError{Reason: "checking selection", Err: err}
	}
	if ok {
		return nil
	}

	if err := gate.OpenCredentialPicker(ctx); err != nil {
		return &CredentialError{Reason: "credential picker failed", Err: err}
	}

	if err := sleepContext(ctx, settle); err != nil {
		return &CredentialError{Reason: "interrupted while waiting for selection", Err: err}
	}

	ok, err = gate.HasSelectedCredential(ctx)
	if err != nil {
		return &CredentialError{Reason: "checking selection", Err: err}
	}
	if !ok {
		return &CredentialError{Reason: "picker closed without a selection", Err: ErrNoCredential}
	}
	return nil
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
