package translate

import "context"

// Stub is a no-op translation provider for local runs.
// It returns the text unchanged, so callers fall back to the Arabic.
type Stub struct{}

// NewStub creates a new no-op translation provider.
func NewStub() *Stub { return &Stub{} }

// Translate returns text as is.
func (s *Stub) Translate(_ context.Context, text string) (string, error) {
	return text, nil
}
