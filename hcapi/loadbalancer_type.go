package hcapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// LoadBalancerType describes a load balancer model, e.g. "lb11".
type LoadBalancerType struct {
	ID                      int64  `json:"id"`
	Name                    string `json:"name"`
	Description             string `json:"description"`
	MaxConnections          int    `json:"max_connections"`
	MaxServices             int    `json:"max_services"`
	MaxTargets              int    `json:"max_targets"`
	MaxAssignedCertificates int    `json:"max_assigned_certificates"`
}

// LoadBalancerTypeClient provides read access to load balancer types.
type LoadBalancerTypeClient struct {
	client *Client
}

// LoadBalancerTypeListOpts holds filter parameters for listing load
// balancer types.
type LoadBalancerTypeListOpts struct {
	ListOpts
	Name string
}

func (o LoadBalancerTypeListOpts) values() url.Values {
	v := o.ListOpts.values()
	if o.Name != "" {
		v.Set("name", o.Name)
	}
	return v
}

// Get retrieves a load balancer type by id.
func (c LoadBalancerTypeClient) Get(ctx context.Context, id int64) (*LoadBalancerType, *Response, error) {
	var body struct {
		LoadBalancerType *LoadBalancerType `json:"load_balancer_type"`
	}
	resp, err := c.client.do(ctx, http.MethodGet, fmt.Sprintf("/load_balancer_types/%d", id), nil, nil, &body)
	if err != nil {
		return nil, resp, err
	}
	return body.LoadBalancerType, resp, nil
}

// GetByName retrieves a load balancer type by name. Returns nil without
// an error when no type matches.
func (c LoadBalancerTypeClient) GetByName(ctx context.Context, name string) (*LoadBalancerType, *Response, error) {
	types, resp, err := c.List(ctx, LoadBalancerTypeListOpts{Name: name})
	if err != nil || len(types) == 0 {
		return nil, resp, err
	}
	return types[0], resp, nil
}

// List returns a page of load balancer types.
func (c LoadBalancerTypeClient) List(ctx context.Context, opts LoadBalancerTypeListOpts) ([]*LoadBalancerType, *Response, error) {
	var body struct {
		LoadBalancerTypes []*LoadBalancerType `json:"load_balancer_types"`
	}
	resp, err := c.client.do(ctx, http.MethodGet, "/load_balancer_types", opts.values(), nil, &body)
	if err != nil {
		return nil, resp, err
	}
	return body.LoadBalancerTypes, resp, nil
}

// All returns all load balancer types.
func (c LoadBalancerTypeClient) All(ctx context.Context) ([]*LoadBalancerType, error) {
	return allPages(func(page int) ([]*LoadBalancerType, *Response, error) {
		return c.List(ctx, LoadBalancerTypeListOpts{ListOpts: ListOpts{Page: page}})
	})
}
