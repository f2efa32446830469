package api

import (
	"context"
	"fmt"

	"github.com/alexanderramin/ejournal/internal/domain"
	"github.com/alexanderramin/ejournal/internal/transport"
)

type PresetNodes struct {
	t transport.Transport
}

type presetNodePayload struct {
	AssignmentID int                   `json:"assignment_id"`
	Type         domain.PresetNodeType `json:"type"`
	Description  *string               `json:"description"`
	UnlockDate   *string               `json:"unlock_date"`
	DueDate      string                `json:"due_date"`
	LockDate     *string               `json:"lock_date"`
	Target       *float64              `json:"target"`
	TemplateID   *int                  `json:"template_id,omitempty"`
}

func newPresetNodePayload(aID int, n domain.PresetNode) presetNodePayload {
	p := presetNodePayload{
		AssignmentID: aID,
		Type:         n.Type,
		Description:  n.Description,
		UnlockDate:   n.UnlockDate,
		DueDate:      n.DueDate,
		LockDate:     n.LockDate,
		Target:       n.Target,
	}
	if n.Template != nil {
		id := n.Template.ID
		p.TemplateID = &id
	}
	return p
}

func (c *PresetNodes) List(ctx context.Context, aID int) ([]domain.PresetNode, error) {
	resp, err := c.t.Get(ctx, "preset_nodes", assignmentQuery(aID))
	if err != nil {
		return nil, fmt.Errorf("listing preset nodes: %w", err)
	}
	return decode[[]domain.PresetNode](resp, "presets")
}

func (c *PresetNodes) Create(ctx context.Context, aID int, node domain.PresetNode) (domain.PresetNode, error) {
	resp, err := c.t.Create(ctx, "preset_nodes", newPresetNodePayload(aID, node))
	if err != nil {
		return domain.PresetNode{}, fmt.Errorf("creating preset node: %w", err)
	}
	return decode[domain.PresetNode](resp, "preset")
}

func (c *PresetNodes) Update(ctx context.Context, aID int, node domain.PresetNode) (domain.PresetNode, error) {
	resp, err := c.t.Update(ctx, resourceID("preset_nodes", node.ID), newPresetNodePayload(aID, node))
	if err != nil {
		return domain.PresetNode{}, fmt.Errorf("updating preset node %d: %w", node.ID, err)
	}
	return decode[domain.PresetNode](resp, "preset")
}

func (c *PresetNodes) Delete(ctx context.Context, id int) (string, error) {
	resp, err := c.t.Delete(ctx, resourceID("preset_nodes", id))
	if err != nil {
		return "", fmt.Errorf("deleting preset node %d: %w", id, err)
	}
	return resp.Description(), nil
}
