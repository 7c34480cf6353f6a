package hcapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// ServerType describes a server model, e.g. "cpx11".
type ServerType struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Cores        int     `json:"cores"`
	Memory       float64 `json:"memory"`
	Disk         int     `json:"disk"`
	StorageType  string  `json:"storage_type"`
	CPUType      string  `json:"cpu_type"`
	Architecture string  `json:"architecture"`
	Deprecated   bool    `json:"deprecated"`
}

// ServerTypeClient provides read access to server types.
type ServerTypeClient struct {
	client *Client
}

// ServerTypeListOpts holds filter parameters for listing server types.
type ServerTypeListOpts struct {
	ListOpts
	Name string
}

func (o ServerTypeListOpts) values() url.Values {
	v := o.ListOpts.values()
	if o.Name != "" {
		v.Set("name", o.Name)
	}
	return v
}

// Get retrieves a server type by id.
func (c ServerTypeClient) Get(ctx context.Context, id int64) (*ServerType, *Response, error) {
	var body struct {
		ServerType *ServerType `json:"server_type"`
	}
	resp, err := c.client.do(ctx, http.MethodGet, fmt.Sprintf("/server_types/%d", id), nil, nil, &body)
	if err != nil {
		return nil, resp, err
	}
	return body.ServerType, resp, nil
}

// GetByName retrieves a server type by name. Returns nil without an error
// when no server type matches.
func (c ServerTypeClient) GetByName(ctx context.Context, name string) (*ServerType, *Response, error) {
	serverTypes, resp, err := c.List(ctx, ServerTypeListOpts{Name: name})
	if err != nil || len(serverTypes) == 0 {
		return nil, resp, err
	}
	return serverTypes[0], resp, nil
}

// List returns a page of server types.
func (c ServerTypeClient) List(ctx context.Context, opts ServerTypeListOpts) ([]*ServerType, *Response, error) {
	var body struct {
		ServerTypes []*ServerType `json:"server_types"`
	}
	resp, err := c.client.do(ctx, http.MethodGet, "/server_types", opts.values(), nil, &body)
	if err != nil {
		return nil, resp, err
	}
	return body.ServerTypes, resp, nil
}

// All returns all server types.
func (c ServerTypeClient) All(ctx context.Context) ([]*ServerType, error) {
	return allPages(func(page int) ([]*ServerType, *Response, error) {
		return c.List(ctx, ServerTypeListOpts{ListOpts: ListOpts{Page: page}})
	})
}
