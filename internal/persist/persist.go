// Package persist saves and restores the client state that survives a
// restart: loaded content, preferences and the signed-in user. Drafts and
// fetch caches are never written.
package persist

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/ejournal/internal/db"
	"github.com/alexanderramin/ejournal/internal/domain"
	"github.com/alexanderramin/ejournal/internal/preferences"
	"github.com/alexanderramin/ejournal/internal/repository"
	"github.com/alexanderramin/ejournal/internal/store"
	"go.uber.org/zap"
)

// State is the persisted subset. A nil slice was not stored.
type State struct {
	InstanceID  string
	Content     *store.Content
	Preferences *preferences.State
	User        *domain.User
}

// Persister reads and writes State through a UnitOfWork.
type Persister struct {
	uow db.UnitOfWork
	log *zap.Logger
}

type Option func(*Persister)

func WithLogger(l *zap.Logger) Option {
	return func(p *Persister) {
		if l != nil {
			p.log = l
		}
	}
}

func New(uow db.UnitOfWork, opts ...Option) *Persister {
	p := &Persister{uow: uow, log: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Load reads every stored slice in one transaction.
func (p *Persister) Load(ctx context.Context) (State, error) {
	var out State
	err := p.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		in, err := repository.NewSQLiteInstanceRepo(tx).Get(ctx)
		if err != nil {
			return err
		}
		out.InstanceID = in.InstanceID

		entries, err := repository.NewSQLiteStateRepo(tx).List(ctx)
		if err != nil {
			return err
		}
		for _, e := range entries {
			if err := decodeInto(&out, e); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return State{}, fmt.Errorf("loading client state: %w", err)
	}
	return out, nil
}

func decodeInto(out *State, e repository.StateEntry) error {
	var target any
	switch e.Key {
	case repository.StateContent:
		out.Content = &store.Content{}
		target = out.Content
	case repository.StatePreferences:
		out.Preferences = &preferences.State{}
		target = out.Preferences
	case repository.StateUser:
		out.User = &domain.User{}
		target = out.User
	default:
		return fmt.Errorf("unknown client state %q", e.Key)
	}
	if err := json.Unmarshal(e.Value, target); err != nil {
		return fmt.Errorf("decoding client state %q: %w", e.Key, err)
	}
	return nil
}

// Save writes the non-nil slices of s atomically.
func (p *Persister) Save(ctx context.Context, s State) error {
	slices := map[repository.StateKey]any{}
	if s.Content != nil {
		slices[repository.StateContent] = s.Content
	}
	if s.Preferences != nil {
		slices[repository.StatePreferences] = s.Preferences
	}
	if s.User != nil {
		slices[repository.StateUser] = s.User
	}

	encoded := make(map[repository.StateKey][]byte, len(slices))
	for key, v := range slices {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encoding client state %q: %w", key, err)
		}
		encoded[key] = data
	}

	err := p.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteStateRepo(tx)
		for _, key := range repository.StateKeys {
			data, ok := encoded[key]
			if !ok {
				continue
			}
			if err := repo.Put(ctx, key, data); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("saving client state: %w", err)
	}
	p.log.Debug("client state saved", zap.Int("slices", len(encoded)))
	return nil
}

// Clear forgets every stored slice, e.g. on logout.
func (p *Persister) Clear(ctx context.Context) error {
	err := p.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteStateRepo(tx)
		for _, key := range repository.StateKeys {
			if err := repo.Delete(ctx, key); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("clearing client state: %w", err)
	}
	return nil
}

// Hydrate restores the stored slices into st and prefs and returns the
// stored user, if any.
func (p *Persister) Hydrate(ctx context.Context, st *store.Store, prefs *preferences.Preferences) (*domain.User, error) {
	s, err := p.Load(ctx)
	if err != nil {
		return nil, err
	}
	if s.Content != nil {
		st.Restore(*s.Content)
	}
	if s.Preferences != nil {
		prefs.Restore(*s.Preferences)
	}
	if s.User != nil {
		prefs.SetUser(s.User.ID)
	}
	p.log.Debug("client state hydrated",
		zap.String("instance_id", s.InstanceID),
		zap.Bool("content", s.Content != nil),
		zap.Bool("preferences", s.Preferences != nil),
		zap.Bool("user", s.User != nil))
	return s.User, nil
}

// Persist writes the current content and preferences, plus user when set.
func (p *Persister) Persist(ctx context.Context, st *store.Store, prefs *preferences.Preferences, user *domain.User) error {
	content := st.Snapshot()
	prefState := prefs.Snapshot()
	return p.Save(ctx, State{Content: &content, Preferences: &prefState, User: user})
}

// InstanceID returns the id of this client installation.
func (p *Persister) InstanceID(ctx context.Context) (string, error) {
	var id string
	err := p.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		in, err := repository.NewSQLiteInstanceRepo(tx).Get(ctx)
		if err != nil {
			return err
		}
		id = in.InstanceID
		return nil
	})
	return id, err
}

// BindServer records the API url the state belongs to. State stored for a
// different server is cleared first.
func (p *Persister) BindServer(ctx context.Context, url string) error {
	return p.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		instances := repository.NewSQLiteInstanceRepo(tx)
		in, err := instances.Get(ctx)
		if err != nil {
			return err
		}
		if in.APIURL == url {
			return nil
		}
		if in.APIURL != "" {
			p.log.Info("api url changed, dropping stored state",
				zap.String("previous", in.APIURL), zap.String("current", url))
			states := repository.NewSQLiteStateRepo(tx)
			for _, key := range repository.StateKeys {
				if err := states.Delete(ctx, key); err != nil {
					return err
				}
			}
		}
		return instances.SetAPIURL(ctx, url)
	})
}
