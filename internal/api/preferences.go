package api

import (
	"context"
	"fmt"

	"github.com/alexanderramin/ejournal/internal/domain"
	"github.com/alexanderramin/ejournal/internal/transport"
)

type Preferences struct {
	t transport.Transport
}

func (c *Preferences) Get(ctx context.Context, uID int) (domain.Preferences, error) {
	resp, err := c.t.Get(ctx, resourceID("preferences", uID), nil)
	if err != nil {
		return domain.Preferences{}, fmt.Errorf("getting preferences: %w", err)
	}
	return decode[domain.Preferences](resp, "preferences")
}

// Update sends a partial preferences patch keyed by the server field names.
func (c *Preferences) Update(ctx context.Context, uID int, patch map[string]any) error {
	if _, err := c.t.Update(ctx, resourceID("preferences", uID), patch); err != nil {
		return fmt.Errorf("updating preferences: %w", err)
	}
	return nil
}
