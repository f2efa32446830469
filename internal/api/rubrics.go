package api

import (
	"context"
	"fmt"

	"github.com/alexanderramin/ejournal/internal/domain"
	"github.com/alexanderramin/ejournal/internal/transport"
)

type Rubrics struct {
	t transport.Transport
}

type rubricPayload struct {
	domain.Rubric
	AssignmentID   int  `json:"assignment_id"`
	TemplateImport bool `json:"template_import"`
}

func (c *Rubrics) List(ctx context.Context, aID int) ([]domain.Rubric, error) {
	resp, err := c.t.Get(ctx, "rubrics", assignmentQuery(aID))
	if err != nil {
		return nil, fmt.Errorf("listing rubrics: %w", err)
	}
	return decode[[]domain.Rubric](resp, "rubrics")
}

func (c *Rubrics) Create(ctx context.Context, aID int, r domain.Rubric) (domain.Rubric, error) {
	resp, err := c.t.Create(ctx, "rubrics", rubricPayload{Rubric: r, AssignmentID: aID})
	if err != nil {
		return domain.Rubric{}, fmt.Errorf("creating rubric: %w", err)
	}
	return decode[domain.Rubric](resp, "rubric")
}

func (c *Rubrics) Update(ctx context.Context, aID, id int, r domain.Rubric) (domain.Rubric, error) {
	resp, err := c.t.Update(ctx, resourceID("rubrics", id), rubricPayload{Rubric: r, AssignmentID: aID})
	if err != nil {
		return domain.Rubric{}, fmt.Errorf("updating rubric %d: %w", id, err)
	}
	return decode[domain.Rubric](resp, "rubric")
}

func (c *Rubrics) Delete(ctx context.Context, id int) (string, error) {
	resp, err := c.t.Delete(ctx, resourceID("rubrics", id))
	if err != nil {
		return "", fmt.Errorf("deleting rubric %d: %w", id, err)
	}
	return resp.Description(), nil
}
