package hcapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// FloatingIP is a public IP address that can be moved between servers,
// including servers in different datacenters of the same location.
type FloatingIP struct {
	ID           int64                `json:"id"`
	Name         string               `json:"name"`
	Description  string               `json:"description"`
	IP           string               `json:"ip"`
	Type         IPType               `json:"type"`
	Server       *int64               `json:"server"`
	HomeLocation *Location            `json:"home_location"`
	Blocked      bool                 `json:"blocked"`
	DNSPtr       []DNSPtr             `json:"dns_ptr"`
	Protection   FloatingIPProtection `json:"protection"`
	Labels       map[string]string    `json:"labels"`
	Created      time.Time            `json:"created"`
}

// FloatingIPProtection represents the deletion protection of a floating IP.
type FloatingIPProtection struct {
	Delete bool `json:"delete"`
}

// FloatingIPClient provides access to floating IPs.
type FloatingIPClient struct {
	client *Client

	Action FloatingIPActionClient
}

// FloatingIPListOpts holds filter parameters for listing floating IPs.
type FloatingIPListOpts struct {
	ListOpts
	Name string
}

func (o FloatingIPListOpts) values() url.Values {
	v := o.ListOpts.values()
	if o.Name != "" {
		v.Set("name", o.Name)
	}
	return v
}

// Get retrieves a floating IP by id.
func (c FloatingIPClient) Get(ctx context.Context, id int64) (*FloatingIP, *Response, error) {
	var body struct {
		FloatingIP *FloatingIP `json:"floating_ip"`
	}
	resp, err := c.client.do(ctx, http.MethodGet, fmt.Sprintf("/floating_ips/%d", id), nil, nil, &body)
	if err != nil {
		return nil, resp, err
	}
	return body.FloatingIP, resp, nil
}

// GetByName retrieves a floating IP by name. Returns nil without an error
// when no floating IP matches.
func (c FloatingIPClient) GetByName(ctx context.Context, name string) (*FloatingIP, *Response, error) {
	ips, resp, err := c.List(ctx, FloatingIPListOpts{Name: name})
	if err != nil || len(ips) == 0 {
		return nil, resp, err
	}
	return ips[0], resp, nil
}

// List returns a page of floating IPs.
func (c FloatingIPClient) List(ctx context.Context, opts FloatingIPListOpts) ([]*FloatingIP, *Response, error) {
	var body struct {
		FloatingIPs []*FloatingIP `json:"floating_ips"`
	}
	resp, err := c.client.do(ctx, http.MethodGet, "/floating_ips", opts.values(), nil, &body)
	if err != nil {
		return nil, resp, err
	}
	return body.FloatingIPs, resp, nil
}

// All returns all floating IPs.
func (c FloatingIPClient) All(ctx context.Context) ([]*FloatingIP, error) {
	return allPages(func(page int) ([]*FloatingIP, *Response, error) {
		return c.List(ctx, FloatingIPListOpts{ListOpts: ListOpts{Page: page}})
	})
}

// FloatingIPCreateOpts holds all parameters for creating a floating IP.
// Type is required, as is either HomeLocation or Server.
type FloatingIPCreateOpts struct {
	Type         IPType            `json:"type"`
	Name         string            `json:"name,omitempty"`
	Description  string            `json:"description,omitempty"`
	HomeLocation string            `json:"home_location,omitempty"`
	Server       *int64            `json:"server,omitempty"`
	Labels       map[string]string `json:"labels,omitempty"`
}

// FloatingIPCreateResult is the result of creating a floating IP. Action
// is nil when the IP was created without an assignment.
type FloatingIPCreateResult struct {
	FloatingIP *FloatingIP
	Action     *Action
}

// Create creates a floating IP.
func (c FloatingIPClient) Create(ctx context.Context, opts FloatingIPCreateOpts) (FloatingIPCreateResult, *Response, error) {
	if opts.Type == "" {
		return FloatingIPCreateResult{}, nil, missingField("type")
	}
	if opts.HomeLocation == "" && opts.Server == nil {
		return FloatingIPCreateResult{}, nil, missingField("home_location")
	}

	var body struct {
		FloatingIP *FloatingIP `json:"floating_ip"`
		Action     *Action     `json:"action"`
	}
	resp, err := c.client.do(ctx, http.MethodPost, "/floating_ips", nil, opts, &body)
	if err != nil {
		return FloatingIPCreateResult{}, resp, err
	}
	return FloatingIPCreateResult{FloatingIP: body.FloatingIP, Action: body.Action}, resp, nil
}

// FloatingIPUpdateOpts holds the fields changed by a floating IP update.
// Only set fields are sent.
type FloatingIPUpdateOpts struct {
	Name        string            `json:"name,omitempty"`
	Description string            `json:"description,omitempty"`
	Labels      map[string]string `json:"labels,omitempty"`
}

// Update changes the name, description or labels of a floating IP.
func (c FloatingIPClient) Update(ctx context.Context, id int64, opts FloatingIPUpdateOpts) (*FloatingIP, *Response, error) {
	var body struct {
		FloatingIP *FloatingIP `json:"floating_ip"`
	}
	resp, err := c.client.do(ctx, http.MethodPut, fmt.Sprintf("/floating_ips/%d", id), nil, opts, &body)
	if err != nil {
		return nil, resp, err
	}
	return body.FloatingIP, resp, nil
}

// Delete deletes a floating IP.
func (c FloatingIPClient) Delete(ctx context.Context, id int64) (*Response, error) {
	return c.client.do(ctx, http.MethodDelete, fmt.Sprintf("/floating_ips/%d", id), nil, nil, nil)
}

// FloatingIPActionClient provides access to the actions of floating IPs.
type FloatingIPActionClient struct {
	client *Client
}

func (c FloatingIPActionClient) doAction(ctx context.Context, id int64, command string, opts any) (*Action, *Response, error) {
	var body struct {
		Action *Action `json:"action"`
	}
	path := fmt.Sprintf("/floating_ips/%d/actions/%s", id, command)
	resp, err := c.client.do(ctx, http.MethodPost, path, nil, opts, &body)
	if err != nil {
		return nil, resp, err
	}
	return body.Action, resp, nil
}

// Assign assigns a floating IP to a server.
func (c FloatingIPActionClient) Assign(ctx context.Context, id, serverID int64) (*Action, *Response, error) {
	opts := struct {
		Server int64 `json:"server"`
	}{Server: serverID}
	return c.doAction(ctx, id, "assign", opts)
}

// Unassign removes a floating IP from its server.
func (c FloatingIPActionClient) Unassign(ctx context.Context, id int64) (*Action, *Response, error) {
	return c.doAction(ctx, id, "unassign", nil)
}

// ChangeDNSPtr changes the reverse DNS entry for one address of a floating
// IP. A nil ptr resets the entry to the default.
func (c FloatingIPActionClient) ChangeDNSPtr(ctx context.Context, id int64, ip string, ptr *string) (*Action, *Response, error) {
	opts := struct {
		IP     string  `json:"ip"`
		DNSPtr *string `json:"dns_ptr"`
	}{IP: ip, DNSPtr: ptr}
	return c.doAction(ctx, id, "change_dns_ptr", opts)
}

// ChangeProtection changes the deletion protection of a floating IP.
func (c FloatingIPActionClient) ChangeProtection(ctx context.Context, id int64, delete bool) (*Action, *Response, error) {
	opts := struct {
		Delete bool `json:"delete"`
	}{Delete: delete}
	return c.doAction(ctx, id, "change_protection", opts)
}
