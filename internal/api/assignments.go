package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/alexanderramin/ejournal/internal/domain"
	"github.com/alexanderramin/ejournal/internal/transport"
)

type Assignments struct {
	t transport.Transport
}

type assignmentPayload struct {
	domain.Assignment
	CourseID *int `json:"course_id"`
}

// Retrieve fetches one assignment. courseID scopes course-dependent fields
// and may be nil.
func (c *Assignments) Retrieve(ctx context.Context, id int, courseID *int) (domain.Assignment, error) {
	var query url.Values
	if courseID != nil {
		query = url.Values{"course_id": {strconv.Itoa(*courseID)}}
	}
	resp, err := c.t.Get(ctx, resourceID("assignments", id), query)
	if err != nil {
		return domain.Assignment{}, fmt.Errorf("retrieving assignment %d: %w", id, err)
	}
	return decode[domain.Assignment](resp, "assignment")
}

func (c *Assignments) Update(ctx context.Context, a domain.Assignment, courseID *int) (domain.Assignment, error) {
	resp, err := c.t.Update(ctx, resourceID("assignments", a.ID), assignmentPayload{Assignment: a, CourseID: courseID})
	if err != nil {
		return domain.Assignment{}, fmt.Errorf("updating assignment %d: %w", a.ID, err)
	}
	return decode[domain.Assignment](resp, "assignment")
}
