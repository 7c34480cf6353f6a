package hcapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// NetworkSubnetType is the kind of a network subnet.
type NetworkSubnetType string

const (
	NetworkSubnetTypeCloud   NetworkSubnetType = "cloud"
	NetworkSubnetTypeServer  NetworkSubnetType = "server"
	NetworkSubnetTypeVSwitch NetworkSubnetType = "vswitch"
)

// Network is a private network.
type Network struct {
	ID                    int64             `json:"id"`
	Name                  string            `json:"name"`
	Created               time.Time         `json:"created"`
	IPRange               string            `json:"ip_range"`
	Subnets               []NetworkSubnet   `json:"subnets"`
	Routes                []NetworkRoute    `json:"routes"`
	Servers               []int64           `json:"servers"`
	Protection            NetworkProtection `json:"protection"`
	Labels                map[string]string `json:"labels"`
	ExposeRoutesToVSwitch bool              `json:"expose_routes_to_vswitch"`
}

// NetworkSubnet is a subnet within a network.
type NetworkSubnet struct {
	Type        NetworkSubnetType `json:"type"`
	IPRange     string            `json:"ip_range"`
	NetworkZone string            `json:"network_zone"`
	Gateway     string            `json:"gateway,omitempty"`
	VSwitchID   int64             `json:"vswitch_id,omitempty"`
}

// NetworkRoute is a route within a network.
type NetworkRoute struct {
	Destination string `json:"destination"`
	Gateway     string `json:"gateway"`
}

// NetworkProtection holds the delete protection flag of a network.
type NetworkProtection struct {
	Delete bool `json:"delete"`
}

// NetworkClient provides access to networks.
type NetworkClient struct {
	client *Client

	// Action exposes the network-specific action operations.
	Action NetworkActionClient
}

// NetworkListOpts holds filter parameters for listing networks.
type NetworkListOpts struct {
	ListOpts
	Name string
}

func (o NetworkListOpts) values() url.Values {
	v := o.ListOpts.values()
	if o.Name != "" {
		v.Set("name", o.Name)
	}
	return v
}

// Get retrieves a network by id.
func (c NetworkClient) Get(ctx context.Context, id int64) (*Network, *Response, error) {
	var body struct {
		Network *Network `json:"network"`
	}
	resp, err := c.client.do(ctx, http.MethodGet, fmt.Sprintf("/networks/%d", id), nil, nil, &body)
	if err != nil {
		return nil, resp, err
	}
	return body.Network, resp, nil
}

// GetByName retrieves a network by name. Returns nil without an error when
// no network matches.
func (c NetworkClient) GetByName(ctx context.Context, name string) (*Network, *Response, error) {
	networks, resp, err := c.List(ctx, NetworkListOpts{Name: name})
	if err != nil || len(networks) == 0 {
		return nil, resp, err
	}
	return networks[0], resp, nil
}

// List returns a page of networks.
func (c NetworkClient) List(ctx context.Context, opts NetworkListOpts) ([]*Network, *Response, error) {
	var body struct {
		Networks []*Network `json:"networks"`
	}
	resp, err := c.client.do(ctx, http.MethodGet, "/networks", opts.values(), nil, &body)
	if err != nil {
		return nil, resp, err
	}
	return body.Networks, resp, nil
}

// All returns all networks.
func (c NetworkClient) All(ctx context.Context) ([]*Network, error) {
	return allPages(func(page int) ([]*Network, *Response, error) {
		return c.List(ctx, NetworkListOpts{ListOpts: ListOpts{Page: page}})
	})
}

// NetworkCreateOpts holds all parameters for creating a network. Name and
// IPRange are required.
type NetworkCreateOpts struct {
	Name                  string            `json:"name"`
	IPRange               string            `json:"ip_range"`
	Subnets               []NetworkSubnet   `json:"subnets,omitempty"`
	Routes                []NetworkRoute    `json:"routes,omitempty"`
	Labels                map[string]string `json:"labels,omitempty"`
	ExposeRoutesToVSwitch bool              `json:"expose_routes_to_vswitch,omitempty"`
}

// Create creates a network.
func (c NetworkClient) Create(ctx context.Context, opts NetworkCreateOpts) (*Network, *Response, error) {
	if opts.Name == "" {
		return nil, nil, missingField("name")
	}
	if opts.IPRange == "" {
		return nil, nil, missingField("ip_range")
	}

	var body struct {
		Network *Network `json:"network"`
	}
	resp, err := c.client.do(ctx, http.MethodPost, "/networks", nil, opts, &body)
	if err != nil {
		return nil, resp, err
	}
	return body.Network, resp, nil
}

// NetworkUpdateOpts holds the fields changed by a network update. Only set
// fields are sent.
type NetworkUpdateOpts struct {
	Name                  string            `json:"name,omitempty"`
	Labels                map[string]string `json:"labels,omitempty"`
	ExposeRoutesToVSwitch *bool             `json:"expose_routes_to_vswitch,omitempty"`
}

// Update changes the name or labels of a network.
func (c NetworkClient) Update(ctx context.Context, id int64, opts NetworkUpdateOpts) (*Network, *Response, error) {
	var body struct {
		Network *Network `json:"network"`
	}
	resp, err := c.client.do(ctx, http.MethodPut, fmt.Sprintf("/networks/%d", id), nil, opts, &body)
	if err != nil {
		return nil, resp, err
	}
	return body.Network, resp, nil
}

// Delete deletes a network.
func (c NetworkClient) Delete(ctx context.Context, id int64) (*Response, error) {
	return c.client.do(ctx, http.MethodDelete, fmt.Sprintf("/networks/%d", id), nil, nil, nil)
}

// NetworkActionClient provides the network action operations.
type NetworkActionClient struct {
	client *Client
}

func (c NetworkActionClient) doAction(ctx context.Context, networkID int64, command string, opts any) (*Action, *Response, error) {
	var body struct {
		Action *Action `json:"action"`
	}
	path := fmt.Sprintf("/networks/%d/actions/%s", networkID, command)
	resp, err := c.client.do(ctx, http.MethodPost, path, nil, opts, &body)
	if err != nil {
		return nil, resp, err
	}
	return body.Action, resp, nil
}

// NetworkAddSubnetOpts holds the subnet to add.
type NetworkAddSubnetOpts struct {
	Subnet NetworkSubnet
}

// AddSubnet adds a subnet to a network.
func (c NetworkActionClient) AddSubnet(ctx context.Context, networkID int64, opts NetworkAddSubnetOpts) (*Action, *Response, error) {
	return c.doAction(ctx, networkID, "add_subnet", opts.Subnet)
}

// NetworkDeleteSubnetOpts identifies the subnet to delete by its IP range.
type NetworkDeleteSubnetOpts struct {
	IPRange string `json:"ip_range"`
}

// DeleteSubnet removes a subnet from a network.
func (c NetworkActionClient) DeleteSubnet(ctx context.Context, networkID int64, opts NetworkDeleteSubnetOpts) (*Action, *Response, error) {
	return c.doAction(ctx, networkID, "delete_subnet", opts)
}

// AddRoute adds a route to a network.
func (c NetworkActionClient) AddRoute(ctx context.Context, networkID int64, route NetworkRoute) (*Action, *Response, error) {
	return c.doAction(ctx, networkID, "add_route", route)
}

// DeleteRoute removes a route from a network.
func (c NetworkActionClient) DeleteRoute(ctx context.Context, networkID int64, route NetworkRoute) (*Action, *Response, error) {
	return c.doAction(ctx, networkID, "delete_route", route)
}

// NetworkChangeIPRangeOpts holds the new IP range. The range can only be
// extended, never shrunk.
type NetworkChangeIPRangeOpts struct {
	IPRange string `json:"ip_range"`
}

// ChangeIPRange extends the IP range of a network.
func (c NetworkActionClient) ChangeIPRange(ctx context.Context, networkID int64, opts NetworkChangeIPRangeOpts) (*Action, *Response, error) {
	return c.doAction(ctx, networkID, "change_ip_range", opts)
}

// NetworkChangeProtectionOpts holds the protection flags to change.
type NetworkChangeProtectionOpts struct {
	Delete *bool `json:"delete,omitempty"`
}

// ChangeProtection changes the delete protection of a network.
func (c NetworkActionClient) ChangeProtection(ctx context.Context, networkID int64, opts NetworkChangeProtectionOpts) (*Action, *Response, error) {
	return c.doAction(ctx, networkID, "change_protection", opts)
}
