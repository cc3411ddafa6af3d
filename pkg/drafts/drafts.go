// Package drafts persists course drafts between generation sessions.
//
// Each draft is a snapshot of a course plus the prompt that produced it,
// keyed by a generated ID. The store is backed by BadgerDB with
// msgpack-encoded records; an in-memory mode exists for tests.
package drafts

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/studyforge/studyforge/pkg/course"
)

// ErrNotFound is returned when a draft ID does not exist in the store.
var ErrNotFound = errors.New("drafts: not found")

// Draft is one stored course snapshot.
type Draft struct {
	ID     string         `msgpack:"id"`
	Course *course.Course `msgpack:"course"`

	// Prompt is the outbound message the course was generated from.
	Prompt string `msgpack:"prompt,omitempty"`

	CreatedAt time.Time `msgpack:"created_at"`
	UpdatedAt time.Time `msgpack:"updated_at"`
}

// New wraps a course in a fresh draft with a generated ID.
func New(c *course.Course, prompt string) *Draft {
	now := time.Now().UTC()
	return &Draft{
		ID:        uuid.NewString(),
		Course:    c,
		Prompt:    prompt,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Store is the draft persistence interface.
type Store interface {
	// Put stores a draft, overwriting any existing record with the same ID,
	// and refreshes UpdatedAt.
	Put(ctx context.Context, d *Draft) error

	// Get retrieves a draft by ID. Returns ErrNotFound if not present.
	Get(ctx context.Context, id string) (*Draft, error)

	// List returns all drafts ordered by CreatedAt, oldest first.
	List(ctx context.Context) ([]*Draft, error)

	// Delete removes a draft. No error if the ID does not exist.
	Delete(ctx context.Context, id string) error

	// Close releases any resources held by the store.
	Close() error
}
