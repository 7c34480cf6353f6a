package hcapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// PlacementGroupType is the spreading strategy of a placement group.
type PlacementGroupType string

const (
	// PlacementGroupTypeSpread spreads servers across different hosts.
	PlacementGroupTypeSpread PlacementGroupType = "spread"
)

// PlacementGroup controls how servers are distributed across physical hosts.
type PlacementGroup struct {
	ID      int64              `json:"id"`
	Name    string             `json:"name"`
	Type    PlacementGroupType `json:"type"`
	Servers []int64            `json:"servers"`
	Labels  map[string]string  `json:"labels"`
	Created time.Time          `json:"created"`
}

// PlacementGroupClient provides access to placement groups.
type PlacementGroupClient struct {
	client *Client
}

// PlacementGroupListOpts holds filter parameters for listing placement groups.
type PlacementGroupListOpts struct {
	ListOpts
	Name string
	Type PlacementGroupType
}

func (o PlacementGroupListOpts) values() url.Values {
	v := o.ListOpts.values()
	if o.Name != "" {
		v.Set("name", o.Name)
	}
	if o.Type != "" {
		v.Set("type", string(o.Type))
	}
	return v
}

// Get retrieves a placement group by id.
func (c PlacementGroupClient) Get(ctx context.Context, id int64) (*PlacementGroup, *Response, error) {
	var body struct {
		PlacementGroup *PlacementGroup `json:"placement_group"`
	}
	resp, err := c.client.do(ctx, http.MethodGet, fmt.Sprintf("/placement_groups/%d", id), nil, nil, &body)
	if err != nil {
		return nil, resp, err
	}
	return body.PlacementGroup, resp, nil
}

// GetByName retrieves a placement group by name. Returns nil without an
// error when no group matches.
func (c PlacementGroupClient) GetByName(ctx context.Context, name string) (*PlacementGroup, *Response, error) {
	groups, resp, err := c.List(ctx, PlacementGroupListOpts{Name: name})
	if err != nil || len(groups) == 0 {
		return nil, resp, err
	}
	return groups[0], resp, nil
}

// List returns a page of placement groups.
func (c PlacementGroupClient) List(ctx context.Context, opts PlacementGroupListOpts) ([]*PlacementGroup, *Response, error) {
	var body struct {
		PlacementGroups []*PlacementGroup `json:"placement_groups"`
	}
	resp, err := c.client.do(ctx, http.MethodGet, "/placement_groups", opts.values(), nil, &body)
	if err != nil {
		return nil, resp, err
	}
	return body.PlacementGroups, resp, nil
}

// All returns all placement groups.
func (c PlacementGroupClient) All(ctx context.Context) ([]*PlacementGroup, error) {
	return allPages(func(page int) ([]*PlacementGroup, *Response, error) {
		return c.List(ctx, PlacementGroupListOpts{ListOpts: ListOpts{Page: page}})
	})
}

// PlacementGroupCreateOpts holds all parameters for creating a placement
// group. Name and Type are required.
type PlacementGroupCreateOpts struct {
	Name   string             `json:"name"`
	Type   PlacementGroupType `json:"type"`
	Labels map[string]string  `json:"labels,omitempty"`
}

// PlacementGroupCreateResult is the result of creating a placement group.
// Action is nil when the group was created synchronously.
type PlacementGroupCreateResult struct {
	PlacementGroup *PlacementGroup
	Action         *Action
}

// Create creates a placement group.
func (c PlacementGroupClient) Create(ctx context.Context, opts PlacementGroupCreateOpts) (PlacementGroupCreateResult, *Response, error) {
	if opts.Name == "" {
		return PlacementGroupCreateResult{}, nil, missingField("name")
	}
	if opts.Type == "" {
		return PlacementGroupCreateResult{}, nil, missingField("type")
	}

	var body struct {
		PlacementGroup *PlacementGroup `json:"placement_group"`
		Action         *Action         `json:"action"`
	}
	resp, err := c.client.do(ctx, http.MethodPost, "/placement_groups", nil, opts, &body)
	if err != nil {
		return PlacementGroupCreateResult{}, resp, err
	}
	return PlacementGroupCreateResult{PlacementGroup: body.PlacementGroup, Action: body.Action}, resp, nil
}

// PlacementGroupUpdateOpts holds the fields changed by a placement group
// update. Only set fields are sent.
type PlacementGroupUpdateOpts struct {
	Name   string            `json:"name,omitempty"`
	Labels map[string]string `json:"labels,omitempty"`
}

// Update changes the name or labels of a placement group.
func (c PlacementGroupClient) Update(ctx context.Context, id int64, opts PlacementGroupUpdateOpts) (*PlacementGroup, *Response, error) {
	var body struct {
		PlacementGroup *PlacementGroup `json:"placement_group"`
	}
	resp, err := c.client.do(ctx, http.MethodPut, fmt.Sprintf("/placement_groups/%d", id), nil, opts, &body)
	if err != nil {
		return nil, resp, err
	}
	return body.PlacementGroup, resp, nil
}

// Delete deletes a placement group. Servers in the group are not deleted.
func (c PlacementGroupClient) Delete(ctx context.Context, id int64) (*Response, error) {
	return c.client.do(ctx, http.MethodDelete, fmt.Sprintf("/placement_groups/%d", id), nil, nil, nil)
}
