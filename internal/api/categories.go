package api

import (
	"context"
	"fmt"

	"github.com/alexanderramin/ejournal/internal/domain"
	"github.com/alexanderramin/ejournal/internal/transport"
)

type Categories struct {
	t transport.Transport
}

// categoryPayload sends template links as ids so the local template
// summaries are never sent or modified.
type categoryPayload struct {
	AssignmentID int     `json:"assignment_id"`
	Name         *string `json:"name"`
	Description  string  `json:"description"`
	Color        string  `json:"color"`
	Templates    []int   `json:"templates"`
}

func newCategoryPayload(aID int, c domain.Category) categoryPayload {
	return categoryPayload{
		AssignmentID: aID,
		Name:         c.Name,
		Description:  domain.StrValue(c.Description),
		Color:        c.Color,
		Templates:    c.TemplateIDs(),
	}
}

func (c *Categories) List(ctx context.Context, aID int) ([]domain.Category, error) {
	resp, err := c.t.Get(ctx, "categories", assignmentQuery(aID))
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	return decode[[]domain.Category](resp, "categories")
}

func (c *Categories) Get(ctx context.Context, id int) (domain.Category, error) {
	resp, err := c.t.Get(ctx, resourceID("categories", id), nil)
	if err != nil {
		return domain.Category{}, fmt.Errorf("getting category %d: %w", id, err)
	}
	return decode[domain.Category](resp, "category")
}

func (c *Categories) Create(ctx context.Context, aID int, category domain.Category) (domain.Category, error) {
	resp, err := c.t.Create(ctx, "categories", newCategoryPayload(aID, category))
	if err != nil {
		return domain.Category{}, fmt.Errorf("creating category: %w", err)
	}
	return decode[domain.Category](resp, "category")
}

func (c *Categories) Update(ctx context.Context, aID, id int, category domain.Category) (domain.Category, error) {
	resp, err := c.t.Update(ctx, resourceID("categories", id), newCategoryPayload(aID, category))
	if err != nil {
		return domain.Category{}, fmt.Errorf("updating category %d: %w", id, err)
	}
	return decode[domain.Category](resp, "category")
}

// Delete removes the category and returns the server's description.
func (c *Categories) Delete(ctx context.Context, id int) (string, error) {
	resp, err := c.t.Delete(ctx, resourceID("categories", id))
	if err != nil {
		return "", fmt.Errorf("deleting category %d: %w", id, err)
	}
	return resp.Description(), nil
}

// EditEntryRequest links or unlinks a category on a journal entry.
type EditEntryRequest struct {
	EntryID int  `json:"entry_id"`
	Add     bool `json:"add"`
}

func (c *Categories) EditEntry(ctx context.Context, id int, req EditEntryRequest) error {
	if _, err := c.t.Update(ctx, resourceID("categories", id)+"/edit_entry", req); err != nil {
		return fmt.Errorf("editing entry categories: %w", err)
	}
	return nil
}
