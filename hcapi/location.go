package hcapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// Location is a Hetzner Cloud location, e.g. "nbg1".
type Location struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Country     string  `json:"country"`
	City        string  `json:"city"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	NetworkZone string  `json:"network_zone"`
}

// LocationClient provides read access to locations.
type LocationClient struct {
	client *Client
}

// LocationListOpts holds filter parameters for listing locations.
type LocationListOpts struct {
	ListOpts
	Name string
}

func (o LocationListOpts) values() url.Values {
	v := o.ListOpts.values()
	if o.Name != "" {
		v.Set("name", o.Name)
	}
	return v
}

// Get retrieves a location by id.
func (c LocationClient) Get(ctx context.Context, id int64) (*Location, *Response, error) {
	var body struct {
		Location *Location `json:"location"`
	}
	resp, err := c.client.do(ctx, http.MethodGet, fmt.Sprintf("/locations/%d", id), nil, nil, &body)
	if err != nil {
		return nil, resp, err
	}
	return body.Location, resp, nil
}

// GetByName retrieves a location by name. Returns nil without an error
// when no location matches.
func (c LocationClient) GetByName(ctx context.Context, name string) (*Location, *Response, error) {
	locations, resp, err := c.List(ctx, LocationListOpts{Name: name})
	if err != nil || len(locations) == 0 {
		return nil, resp, err
	}
	return locations[0], resp, nil
}

// List returns a page of locations.
func (c LocationClient) List(ctx context.Context, opts LocationListOpts) ([]*Location, *Response, error) {
	var body struct {
		Locations []*Location `json:"locations"`
	}
	resp, err := c.client.do(ctx, http.MethodGet, "/locations", opts.values(), nil, &body)
	if err != nil {
		return nil, resp, err
	}
	return body.Locations, resp, nil
}

// All returns all locations.
func (c LocationClient) All(ctx context.Context) ([]*Location, error) {
	return allPages(func(page int) ([]*Location, *Response, error) {
		return c.List(ctx, LocationListOpts{ListOpts: ListOpts{Page: page}})
	})
}
