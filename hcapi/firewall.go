package hcapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// FirewallRuleDirection is the traffic direction a rule applies to.
type FirewallRuleDirection string

const (
	FirewallRuleDirectionIn  FirewallRuleDirection = "in"
	FirewallRuleDirectionOut FirewallRuleDirection = "out"
)

// FirewallRuleProtocol is the protocol matched by a rule.
type FirewallRuleProtocol string

const (
	FirewallRuleProtocolTCP  FirewallRuleProtocol = "tcp"
	FirewallRuleProtocolUDP  FirewallRuleProtocol = "udp"
	FirewallRuleProtocolICMP FirewallRuleProtocol = "icmp"
	FirewallRuleProtocolESP  FirewallRuleProtocol = "esp"
	FirewallRuleProtocolGRE  FirewallRuleProtocol = "gre"
)

// Firewall is a collection of traffic rules applied to servers.
type Firewall struct {
	ID        int64              `json:"id"`
	Name      string             `json:"name"`
	Created   time.Time          `json:"created"`
	Labels    map[string]string  `json:"labels"`
	Rules     []FirewallRule     `json:"rules"`
	AppliedTo []FirewallResource `json:"applied_to"`
}

// FirewallRule is a single traffic rule.
type FirewallRule struct {
	Direction      FirewallRuleDirection `json:"direction"`
	SourceIPs      []string              `json:"source_ips,omitempty"`
	DestinationIPs []string              `json:"destination_ips,omitempty"`
	Protocol       FirewallRuleProtocol  `json:"protocol"`
	Port           *string               `json:"port,omitempty"`
	Description    *string               `json:"description,omitempty"`
}

// FirewallResource selects resources a firewall is applied to, either one
// server or all servers matching a label selector.
type FirewallResource struct {
	Type          string                         `json:"type"`
	Server        *FirewallResourceServer        `json:"server,omitempty"`
	LabelSelector *FirewallResourceLabelSelector `json:"label_selector,omitempty"`
}

// FirewallResourceServer selects a single server.
type FirewallResourceServer struct {
	ID int64 `json:"id"`
}

// FirewallResourceLabelSelector selects servers by label.
type FirewallResourceLabelSelector struct {
	Selector string `json:"selector"`
}

// FirewallClient provides access to firewalls.
type FirewallClient struct {
	client *Client

	// Action exposes the firewall-specific action operations.
	Action FirewallActionClient
}

// FirewallListOpts holds filter parameters for listing firewalls.
type FirewallListOpts struct {
	ListOpts
	Name string
}

func (o FirewallListOpts) values() url.Values {
	v := o.ListOpts.values()
	if o.Name != "" {
		v.Set("name", o.Name)
	}
	return v
}

// Get retrieves a firewall by id.
func (c FirewallClient) Get(ctx context.Context, id int64) (*Firewall, *Response, error) {
	var body struct {
		Firewall *Firewall `json:"firewall"`
	}
	resp, err := c.client.do(ctx, http.MethodGet, fmt.Sprintf("/firewalls/%d", id), nil, nil, &body)
	if err != nil {
		return nil, resp, err
	}
	return body.Firewall, resp, nil
}

// GetByName retrieves a firewall by name. Returns nil without an error
// when no firewall matches.
func (c FirewallClient) GetByName(ctx context.Context, name string) (*Firewall, *Response, error) {
	firewalls, resp, err := c.List(ctx, FirewallListOpts{Name: name})
	if err != nil || len(firewalls) == 0 {
		return nil, resp, err
	}
	return firewalls[0], resp, nil
}

// List returns a page of firewalls.
func (c FirewallClient) List(ctx context.Context, opts FirewallListOpts) ([]*Firewall, *Response, error) {
	var body struct {
		Firewalls []*Firewall `json:"firewalls"`
	}
	resp, err := c.client.do(ctx, http.MethodGet, "/firewalls", opts.values(), nil, &body)
	if err != nil {
		return nil, resp, err
	}
	return body.Firewalls, resp, nil
}

// All returns all firewalls.
func (c FirewallClient) All(ctx context.Context) ([]*Firewall, error) {
	return allPages(func(page int) ([]*Firewall, *Response, error) {
		return c.List(ctx, FirewallListOpts{ListOpts: ListOpts{Page: page}})
	})
}

// FirewallCreateOpts holds all parameters for creating a firewall. Name is
// required.
type FirewallCreateOpts struct {
	Name    string             `json:"name"`
	Labels  map[string]string  `json:"labels,omitempty"`
	Rules   []FirewallRule     `json:"rules,omitempty"`
	ApplyTo []FirewallResource `json:"apply_to,omitempty"`
}

// FirewallCreateResult is the result of a firewall create call. Applying
// the firewall to resources happens asynchronously.
type FirewallCreateResult struct {
	Firewall *Firewall
	Actions  []*Action
}

// Create creates a firewall.
func (c FirewallClient) Create(ctx context.Context, opts FirewallCreateOpts) (FirewallCreateResult, *Response, error) {
	var result FirewallCreateResult
	if opts.Name == "" {
		return result, nil, missingField("name")
	}

	var body struct {
		Firewall *Firewall `json:"firewall"`
		Actions  []*Action `json:"actions"`
	}
	resp, err := c.client.do(ctx, http.MethodPost, "/firewalls", nil, opts, &body)
	if err != nil {
		return result, resp, err
	}
	result.Firewall = body.Firewall
	result.Actions = body.Actions
	return result, resp, nil
}

// FirewallUpdateOpts holds the fields changed by a firewall update. Only
// set fields are sent.
type FirewallUpdateOpts struct {
	Name   string            `json:"name,omitempty"`
	Labels map[string]string `json:"labels,omitempty"`
}

// Update changes the name or labels of a firewall.
func (c FirewallClient) Update(ctx context.Context, id int64, opts FirewallUpdateOpts) (*Firewall, *Response, error) {
	var body struct {
		Firewall *Firewall `json:"firewall"`
	}
	resp, err := c.client.do(ctx, http.MethodPut, fmt.Sprintf("/firewalls/%d", id), nil, opts, &body)
	if err != nil {
		return nil, resp, err
	}
	return body.Firewall, resp, nil
}

// Delete deletes a firewall. The firewall must not be applied to any
// resource.
func (c FirewallClient) Delete(ctx context.Context, id int64) (*Response, error) {
	return c.client.do(ctx, http.MethodDelete, fmt.Sprintf("/firewalls/%d", id), nil, nil, nil)
}

// FirewallActionClient provides the firewall action operations. Rule and
// application changes affect multiple resources and therefore return a
// list of actions.
type FirewallActionClient struct {
	client *Client
}

func (c FirewallActionClient) doActions(ctx context.Context, firewallID int64, command string, opts any) ([]*Action, *Response, error) {
	var body struct {
		Actions []*Action `json:"actions"`
	}
	path := fmt.Sprintf("/firewalls/%d/actions/%s", firewallID, command)
	resp, err := c.client.do(ctx, http.MethodPost, path, nil, opts, &body)
	if err != nil {
		return nil, resp, err
	}
	return body.Actions, resp, nil
}

// FirewallSetRulesOpts holds the full replacement rule set.
type FirewallSetRulesOpts struct {
	Rules []FirewallRule `json:"rules"`
}

// SetRules replaces all rules of a firewall. An empty rule set removes all
// rules.
func (c FirewallActionClient) SetRules(ctx context.Context, firewallID int64, opts FirewallSetRulesOpts) ([]*Action, *Response, error) {
	return c.doActions(ctx, firewallID, "set_rules", opts)
}

// FirewallApplyResourcesOpts selects the resources to apply to or remove
// from.
type FirewallApplyResourcesOpts struct {
	ApplyTo    []FirewallResource `json:"apply_to,omitempty"`
	RemoveFrom []FirewallResource `json:"remove_from,omitempty"`
}

// ApplyToResources applies a firewall to the given resources.
func (c FirewallActionClient) ApplyToResources(ctx context.Context, firewallID int64, resources []FirewallResource) ([]*Action, *Response, error) {
	return c.doActions(ctx, firewallID, "apply_to_resources", FirewallApplyResourcesOpts{ApplyTo: resources})
}

// RemoveFromResources removes a firewall from the given resources.
func (c FirewallActionClient) RemoveFromResources(ctx context.Context, firewallID int64, resources []FirewallResource) ([]*Action, *Response, error) {
	return c.doActions(ctx, firewallID, "remove_from_resources", FirewallApplyResourcesOpts{RemoveFrom: resources})
}
