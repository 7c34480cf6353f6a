package hcapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Datacenter is a Hetzner Cloud datacenter, e.g. "nbg1-dc3".
type Datacenter struct {
	ID          int64                 `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description"`
	Location    Location              `json:"location"`
	ServerTypes DatacenterServerTypes `json:"server_types"`
}

// DatacenterServerTypes lists the server types offered in a datacenter.
type DatacenterServerTypes struct {
	Supported             []int64 `json:"supported"`
	AvailableForMigration []int64 `json:"available_for_migration"`
	Available             []int64 `json:"available"`
}

// DatacenterClient provides read access to datacenters.
type DatacenterClient struct {
	client *Client
}

// DatacenterListOpts holds filter parameters for listing datacenters.
type DatacenterListOpts struct {
	ListOpts
	Name string
}

func (o DatacenterListOpts) values() url.Values {
	v := o.ListOpts.values()
	if o.Name != "" {
		v.Set("name", o.Name)
	}
	return v
}

// Get retrieves a datacenter by id.
func (c DatacenterClient) Get(ctx context.Context, id int64) (*Datacenter, *Response, error) {
	var body struct {
		Datacenter *Datacenter `json:"datacenter"`
	}
	resp, err := c.client.do(ctx, http.MethodGet, fmt.Sprintf("/datacenters/%d", id), nil, nil, &body)
	if err != nil {
		return nil, resp, err
	}
	return body.Datacenter, resp, nil
}

// GetByName retrieves a datacenter by name. Returns nil without an error
// when no datacenter matches.
func (c DatacenterClient) GetByName(ctx context.Context, name string) (*Datacenter, *Response, error) {
	datacenters, resp, err := c.List(ctx, DatacenterListOpts{Name: name})
	if err != nil || len(datacenters) == 0 {
		return nil, resp, err
	}
	return datacenters[0], resp, nil
}

// List returns a page of datacenters.
func (c DatacenterClient) List(ctx context.Context, opts DatacenterListOpts) ([]*Datacenter, *Response, error) {
	var body struct {
		Datacenters []*Datacenter `json:"datacenters"`
	}
	resp, err := c.client.do(ctx, http.MethodGet, "/datacenters", opts.values(), nil, &body)
	if err != nil {
		return nil, resp, err
	}
	return body.Datacenters, resp, nil
}

// All returns all datacenters.
func (c DatacenterClient) All(ctx context.Context) ([]*Datacenter, error) {
	return allPages(func(page int) ([]*Datacenter, *Response, error) {
		return c.List(ctx, DatacenterListOpts{ListOpts: ListOpts{Page: page}})
	})
}
