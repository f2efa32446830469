package repository

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// StateKey names one persisted slice of client state.
type StateKey string

const (
	StateContent     StateKey = "content"
	StatePreferences StateKey = "preferences"
	StateUser        StateKey = "user"
)

// StateKeys lists every persisted slice.
var StateKeys = []StateKey{StateContent, StatePreferences, StateUser}

// StateEntry is a persisted slice as raw JSON.
type StateEntry struct {
	Key       StateKey
	Value     []byte
	UpdatedAt time.Time
}

// Instance identifies this client installation.
type Instance struct {
	InstanceID string
	APIURL     string
	CreatedAt  time.Time
}

type StateRepo interface {
	Get(ctx context.Context, key StateKey) (*StateEntry, error)
	List(ctx context.Context) ([]StateEntry, error)
	Put(ctx context.Context, key StateKey, value []byte) error
	Delete(ctx context.Context, key StateKey) error
}

type InstanceRepo interface {
	Get(ctx context.Context) (*Instance, error)
	SetAPIURL(ctx context.Context, url string) error
}
