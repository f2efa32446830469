// Package api wraps the JSON API resources used by the assignment editor.
// Every function maps one resource call onto the transport and decodes the
// authoritative entity from the conventional response key.
package api

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/alexanderramin/ejournal/internal/transport"
)

// Client groups the resource wrappers over one transport.
type Client struct {
	Assignments *Assignments
	Categories  *Categories
	Templates   *Templates
	PresetNodes *PresetNodes
	Rubrics     *Rubrics
	Preferences *Preferences
}

func New(t transport.Transport) *Client {
	return &Client{
		Assignments: &Assignments{t: t},
		Categories:  &Categories{t: t},
		Templates:   &Templates{t: t},
		PresetNodes: &PresetNodes{t: t},
		Rubrics:     &Rubrics{t: t},
		Preferences: &Preferences{t: t},
	}
}

func resourceID(resource string, id int) string {
	return fmt.Sprintf("%s/%d", resource, id)
}

func assignmentQuery(aID int) url.Values {
	return url.Values{"assignment_id": {strconv.Itoa(aID)}}
}

func decode[T any](resp *transport.Response, key string) (T, error) {
	var v T
	if err := resp.Decode(key, &v); err != nil {
		return v, err
	}
	return v, nil
}
