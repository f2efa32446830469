package api

import (
	"context"
	"fmt"

	"github.com/alexanderramin/ejournal/internal/domain"
	"github.com/alexanderramin/ejournal/internal/transport"
)

type Templates struct {
	t transport.Transport
}

type templatePayload struct {
	domain.Template
	AssignmentID   int  `json:"assignment_id"`
	TemplateImport bool `json:"template_import"`
}

func (c *Templates) List(ctx context.Context, aID int) ([]domain.Template, error) {
	resp, err := c.t.Get(ctx, "templates", assignmentQuery(aID))
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}
	return decode[[]domain.Template](resp, "templates")
}

// Create stores a new template. templateImport marks templates copied from
// another assignment.
func (c *Templates) Create(ctx context.Context, aID int, tmpl domain.Template, templateImport bool) (domain.Template, error) {
	payload := templatePayload{Template: tmpl, AssignmentID: aID, TemplateImport: templateImport}
	resp, err := c.t.Create(ctx, "templates", payload)
	if err != nil {
		return domain.Template{}, fmt.Errorf("creating template: %w", err)
	}
	return decode[domain.Template](resp, "template")
}

func (c *Templates) Update(ctx context.Context, aID, id int, tmpl domain.Template) (domain.Template, error) {
	payload := templatePayload{Template: tmpl, AssignmentID: aID}
	resp, err := c.t.Update(ctx, resourceID("templates", id), payload)
	if err != nil {
		return domain.Template{}, fmt.Errorf("updating template %d: %w", id, err)
	}
	return decode[domain.Template](resp, "template")
}

func (c *Templates) Delete(ctx context.Context, id int) (string, error) {
	resp, err := c.t.Delete(ctx, resourceID("templates", id))
	if err != nil {
		return "", fmt.Errorf("deleting template %d: %w", id, err)
	}
	return resp.Description(), nil
}
