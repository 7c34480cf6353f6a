package hcapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// IPType is the address family of an IP resource.
type IPType string

const (
	IPTypeIPv4 IPType = "ipv4"
	IPTypeIPv6 IPType = "ipv6"
)

// PrimaryIP is a public IP address that can be assigned to a server and
// survives the server's deletion.
type PrimaryIP struct {
	ID           int64               `json:"id"`
	Name         string              `json:"name"`
	IP           string              `json:"ip"`
	Type         IPType              `json:"type"`
	AssigneeID   int64               `json:"assignee_id"`
	AssigneeType string              `json:"assignee_type"`
	AutoDelete   bool                `json:"auto_delete"`
	Blocked      bool                `json:"blocked"`
	Datacenter   *Datacenter         `json:"datacenter"`
	DNSPtr       []DNSPtr            `json:"dns_ptr"`
	Protection   PrimaryIPProtection `json:"protection"`
	Labels       map[string]string   `json:"labels"`
	Created      time.Time           `json:"created"`
}

// DNSPtr is a reverse DNS entry for a single address of an IP resource.
type DNSPtr struct {
	IP     string `json:"ip"`
	DNSPtr string `json:"dns_ptr"`
}

// PrimaryIPProtection represents the deletion protection of a primary IP.
type PrimaryIPProtection struct {
	Delete bool `json:"delete"`
}

// PrimaryIPClient provides access to primary IPs.
type PrimaryIPClient struct {
	client *Client

	Action PrimaryIPActionClient
}

// PrimaryIPListOpts holds filter parameters for listing primary IPs.
type PrimaryIPListOpts struct {
	ListOpts
	Name string
	IP   string
}

func (o PrimaryIPListOpts) values() url.Values {
	v := o.ListOpts.values()
	if o.Name != "" {
		v.Set("name", o.Name)
	}
	if o.IP != "" {
		v.Set("ip", o.IP)
	}
	return v
}

// Get retrieves a primary IP by id.
func (c PrimaryIPClient) Get(ctx context.Context, id int64) (*PrimaryIP, *Response, error) {
	var body struct {
		PrimaryIP *PrimaryIP `json:"primary_ip"`
	}
	resp, err := c.client.do(ctx, http.MethodGet, fmt.Sprintf("/primary_ips/%d", id), nil, nil, &body)
	if err != nil {
		return nil, resp, err
	}
	return body.PrimaryIP, resp, nil
}

// GetByName retrieves a primary IP by name. Returns nil without an error
// when no primary IP matches.
func (c PrimaryIPClient) GetByName(ctx context.Context, name string) (*PrimaryIP, *Response, error) {
	ips, resp, err := c.List(ctx, PrimaryIPListOpts{Name: name})
	if err != nil || len(ips) == 0 {
		return nil, resp, err
	}
	return ips[0], resp, nil
}

// List returns a page of primary IPs.
func (c PrimaryIPClient) List(ctx context.Context, opts PrimaryIPListOpts) ([]*PrimaryIP, *Response, error) {
	var body struct {
		PrimaryIPs []*PrimaryIP `json:"primary_ips"`
	}
	resp, err := c.client.do(ctx, http.MethodGet, "/primary_ips", opts.values(), nil, &body)
	if err != nil {
		return nil, resp, err
	}
	return body.PrimaryIPs, resp, nil
}

// All returns all primary IPs.
func (c PrimaryIPClient) All(ctx context.Context) ([]*PrimaryIP, error) {
	return allPages(func(page int) ([]*PrimaryIP, *Response, error) {
		return c.List(ctx, PrimaryIPListOpts{ListOpts: ListOpts{Page: page}})
	})
}

// PrimaryIPCreateOpts holds all parameters for creating a primary IP.
// Name and Type are required, as is either Datacenter or AssigneeID.
type PrimaryIPCreateOpts struct {
	Name         string            `json:"name"`
	Type         IPType            `json:"type"`
	Datacenter   string            `json:"datacenter,omitempty"`
	AssigneeID   int64             `json:"assignee_id,omitempty"`
	AssigneeType string            `json:"assignee_type,omitempty"`
	AutoDelete   *bool             `json:"auto_delete,omitempty"`
	Labels       map[string]string `json:"labels,omitempty"`
}

// PrimaryIPCreateResult is the result of creating a primary IP. Action is
// nil when the IP was created without an assignment.
type PrimaryIPCreateResult struct {
	PrimaryIP *PrimaryIP
	Action    *Action
}

// Create creates a primary IP.
func (c PrimaryIPClient) Create(ctx context.Context, opts PrimaryIPCreateOpts) (PrimaryIPCreateResult, *Response, error) {
	if opts.Name == "" {
		return PrimaryIPCreateResult{}, nil, missingField("name")
	}
	if opts.Type == "" {
		return PrimaryIPCreateResult{}, nil, missingField("type")
	}

	var body struct {
		PrimaryIP *PrimaryIP `json:"primary_ip"`
		Action    *Action    `json:"action"`
	}
	resp, err := c.client.do(ctx, http.MethodPost, "/primary_ips", nil, opts, &body)
	if err != nil {
		return PrimaryIPCreateResult{}, resp, err
	}
	return PrimaryIPCreateResult{PrimaryIP: body.PrimaryIP, Action: body.Action}, resp, nil
}

// PrimaryIPUpdateOpts holds the fields changed by a primary IP update.
// Only set fields are sent.
type PrimaryIPUpdateOpts struct {
	Name       string            `json:"name,omitempty"`
	AutoDelete *bool             `json:"auto_delete,omitempty"`
	Labels     map[string]string `json:"labels,omitempty"`
}

// Update changes the name, auto delete behavior or labels of a primary IP.
func (c PrimaryIPClient) Update(ctx context.Context, id int64, opts PrimaryIPUpdateOpts) (*PrimaryIP, *Response, error) {
	var body struct {
		PrimaryIP *PrimaryIP `json:"primary_ip"`
	}
	resp, err := c.client.do(ctx, http.MethodPut, fmt.Sprintf("/primary_ips/%d", id), nil, opts, &body)
	if err != nil {
		return nil, resp, err
	}
	return body.PrimaryIP, resp, nil
}

// Delete deletes a primary IP. The IP must not be assigned.
func (c PrimaryIPClient) Delete(ctx context.Context, id int64) (*Response, error) {
	return c.client.do(ctx, http.MethodDelete, fmt.Sprintf("/primary_ips/%d", id), nil, nil, nil)
}

// PrimaryIPActionClient provides access to the actions of primary IPs.
type PrimaryIPActionClient struct {
	client *Client
}

func (c PrimaryIPActionClient) doAction(ctx context.Context, id int64, command string, opts any) (*Action, *Response, error) {
	var body struct {
		Action *Action `json:"action"`
	}
	path := fmt.Sprintf("/primary_ips/%d/actions/%s", id, command)
	resp, err := c.client.do(ctx, http.MethodPost, path, nil, opts, &body)
	if err != nil {
		return nil, resp, err
	}
	return body.Action, resp, nil
}

// Assign assigns a primary IP to a server.
func (c PrimaryIPActionClient) Assign(ctx context.Context, id, serverID int64) (*Action, *Response, error) {
	opts := struct {
		AssigneeID   int64  `json:"assignee_id"`
		AssigneeType string `json:"assignee_type"`
	}{AssigneeID: serverID, AssigneeType: "server"}
	return c.doAction(ctx, id, "assign", opts)
}

// Unassign removes a primary IP from its server.
func (c PrimaryIPActionClient) Unassign(ctx context.Context, id int64) (*Action, *Response, error) {
	return c.doAction(ctx, id, "unassign", nil)
}

// ChangeDNSPtr changes the reverse DNS entry for one address of a primary
// IP. A nil ptr resets the entry to the default.
func (c PrimaryIPActionClient) ChangeDNSPtr(ctx context.Context, id int64, ip string, ptr *string) (*Action, *Response, error) {
	opts := struct {
		IP     string  `json:"ip"`
		DNSPtr *string `json:"dns_ptr"`
	}{IP: ip, DNSPtr: ptr}
	return c.doAction(ctx, id, "change_dns_ptr", opts)
}

// ChangeProtection changes the deletion protection of a primary IP.
func (c PrimaryIPActionClient) ChangeProtection(ctx context.Context, id int64, delete bool) (*Action, *Response, error) {
	opts := struct {
		Delete bool `json:"delete"`
	}{Delete: delete}
	return c.doAction(ctx, id, "change_protection", opts)
}
