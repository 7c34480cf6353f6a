package hcapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// ServerStatus is the lifecycle state of a server.
type ServerStatus string

const (
	ServerStatusInitializing ServerStatus = "initializing"
	ServerStatusOff          ServerStatus = "off"
	ServerStatusRunning      ServerStatus = "running"
	ServerStatusStarting     ServerStatus = "starting"
	ServerStatusStopping     ServerStatus = "stopping"
	ServerStatusMigrating    ServerStatus = "migrating"
	ServerStatusRebuilding   ServerStatus = "rebuilding"
	ServerStatusDeleting     ServerStatus = "deleting"
	ServerStatusUnknown      ServerStatus = "unknown"
)

// Server is a Hetzner Cloud server.
type Server struct {
	ID             int64              `json:"id"`
	Name           string             `json:"name"`
	Status         ServerStatus       `json:"status"`
	Created        time.Time          `json:"created"`
	PublicNet      ServerPublicNet    `json:"public_net"`
	PrivateNet     []ServerPrivateNet `json:"private_net"`
	ServerType     ServerType         `json:"server_type"`
	Datacenter     Datacenter         `json:"datacenter"`
	Image          *Image             `json:"image"`
	ISO            *ISO               `json:"iso"`
	RescueEnabled  bool               `json:"rescue_enabled"`
	Locked         bool               `json:"locked"`
	BackupWindow   string             `json:"backup_window"`
	Protection     ServerProtection   `json:"protection"`
	Labels         map[string]string  `json:"labels"`
	Volumes        []int64            `json:"volumes"`
	PlacementGroup *PlacementGroup    `json:"placement_group"`
}

// ServerPublicNet holds the public network configuration of a server.
type ServerPublicNet struct {
	IPv4        ServerPublicNetIPv4 `json:"ipv4"`
	IPv6        ServerPublicNetIPv6 `json:"ipv6"`
	FloatingIPs []int64             `json:"floating_ips"`
	Firewalls   []ServerFirewall    `json:"firewalls"`
}

// ServerPublicNetIPv4 is the public IPv4 address of a server.
type ServerPublicNetIPv4 struct {
	ID      int64  `json:"id"`
	IP      string `json:"ip"`
	Blocked bool   `json:"blocked"`
	DNSPtr  string `json:"dns_ptr"`
}

// ServerPublicNetIPv6 is the public IPv6 network of a server.
type ServerPublicNetIPv6 struct {
	ID      int64  `json:"id"`
	IP      string `json:"ip"`
	Blocked bool   `json:"blocked"`
}

// ServerFirewall is a firewall applied to a server.
type ServerFirewall struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

// ServerPrivateNet is the attachment of a server to a private network.
type ServerPrivateNet struct {
	Network    int64    `json:"network"`
	IP         string   `json:"ip"`
	AliasIPs   []string `json:"alias_ips"`
	MACAddress string   `json:"mac_address"`
}

// ServerProtection holds the protection flags of a server.
type ServerProtection struct {
	Delete  bool `json:"delete"`
	Rebuild bool `json:"rebuild"`
}

// ServerClient provides access to servers.
type ServerClient struct {
	client *Client

	// Action exposes the server-specific action operations.
	Action ServerActionClient
}

// ServerListOpts holds filter parameters for listing servers.
type ServerListOpts struct {
	ListOpts
	Name   string
	Status []ServerStatus
}

func (o ServerListOpts) values() url.Values {
	v := o.ListOpts.values()
	if o.Name != "" {
		v.Set("name", o.Name)
	}
	for _, s := range o.Status {
		v.Add("status", string(s))
	}
	return v
}

// Get retrieves a server by id.
func (c ServerClient) Get(ctx context.Context, id int64) (*Server, *Response, error) {
	var body struct {
		Server *Server `json:"server"`
	}
	resp, err := c.client.do(ctx, http.MethodGet, fmt.Sprintf("/servers/%d", id), nil, nil, &body)
	if err != nil {
		return nil, resp, err
	}
	return body.Server, resp, nil
}

// GetByName retrieves a server by name. Returns nil without an error when
// no server matches.
func (c ServerClient) GetByName(ctx context.Context, name string) (*Server, *Response, error) {
	servers, resp, err := c.List(ctx, ServerListOpts{Name: name})
	if err != nil || len(servers) == 0 {
		return nil, resp, err
	}
	return servers[0], resp, nil
}

// List returns a page of servers.
func (c ServerClient) List(ctx context.Context, opts ServerListOpts) ([]*Server, *Response, error) {
	var body struct {
		Servers []*Server `json:"servers"`
	}
	resp, err := c.client.do(ctx, http.MethodGet, "/servers", opts.values(), nil, &body)
	if err != nil {
		return nil, resp, err
	}
	return body.Servers, resp, nil
}

// All returns all servers.
func (c ServerClient) All(ctx context.Context) ([]*Server, error) {
	return allPages(func(page int) ([]*Server, *Response, error) {
		return c.List(ctx, ServerListOpts{ListOpts: ListOpts{Page: page}})
	})
}

// AllWithOpts returns all servers matching the filter, walking every page.
func (c ServerClient) AllWithOpts(ctx context.Context, opts ServerListOpts) ([]*Server, error) {
	return allPages(func(page int) ([]*Server, *Response, error) {
		opts.Page = page
		return c.List(ctx, opts)
	})
}

// ServerCreateOpts holds all parameters for creating a server. Name,
// ServerType, and Image are required; everything else is validated by the
// API.
type ServerCreateOpts struct {
	Name             string                 `json:"name"`
	ServerType       string                 `json:"server_type"`
	Image            string                 `json:"image"`
	Location         string                 `json:"location,omitempty"`
	Datacenter       string                 `json:"datacenter,omitempty"`
	SSHKeys          []string               `json:"ssh_keys,omitempty"`
	UserData         string                 `json:"user_data,omitempty"`
	Labels           map[string]string      `json:"labels,omitempty"`
	StartAfterCreate *bool                  `json:"start_after_create,omitempty"`
	Automount        *bool                  `json:"automount,omitempty"`
	Volumes          []int64                `json:"volumes,omitempty"`
	Networks         []int64                `json:"networks,omitempty"`
	Firewalls        []ServerCreateFirewall `json:"firewalls,omitempty"`
	PlacementGroup   int64                  `json:"placement_group,omitempty"`
	PublicNet        *ServerCreatePublicNet `json:"public_net,omitempty"`
}

// ServerCreateFirewall selects a firewall to apply at creation time.
type ServerCreateFirewall struct {
	Firewall int64 `json:"firewall"`
}

// ServerCreatePublicNet controls public IP assignment at creation time.
type ServerCreatePublicNet struct {
	EnableIPv4 bool  `json:"enable_ipv4"`
	EnableIPv6 bool  `json:"enable_ipv6"`
	IPv4       int64 `json:"ipv4,omitempty"`
	IPv6       int64 `json:"ipv6,omitempty"`
}

// ServerCreateResult is the result of a server create call. Creation is
// asynchronous: the returned server is typically still initializing and
// the action must be polled before the server is usable.
type ServerCreateResult struct {
	Server       *Server
	Action       *Action
	NextActions  []*Action
	RootPassword string
}

// Create creates a server.
func (c ServerClient) Create(ctx context.Context, opts ServerCreateOpts) (ServerCreateResult, *Response, error) {
	var result ServerCreateResult
	if opts.Name == "" {
		return result, nil, missingField("name")
	}
	if opts.ServerType == "" {
		return result, nil, missingField("server_type")
	}
	if opts.Image == "" {
		return result, nil, missingField("image")
	}

	var body struct {
		Server       *Server   `json:"server"`
		Action       *Action   `json:"action"`
		NextActions  []*Action `json:"next_actions"`
		RootPassword *string   `json:"root_password"`
	}
	resp, err := c.client.do(ctx, http.MethodPost, "/servers", nil, opts, &body)
	if err != nil {
		return result, resp, err
	}
	result.Server = body.Server
	result.Action = body.Action
	result.NextActions = body.NextActions
	if body.RootPassword != nil {
		result.RootPassword = *body.RootPassword
	}
	return result, resp, nil
}

// ServerUpdateOpts holds the fields changed by a server update. Only set
// fields are sent.
type ServerUpdateOpts struct {
	Name   string            `json:"name,omitempty"`
	Labels map[string]string `json:"labels,omitempty"`
}

// Update changes the name or labels of a server.
func (c ServerClient) Update(ctx context.Context, id int64, opts ServerUpdateOpts) (*Server, *Response, error) {
	var body struct {
		Server *Server `json:"server"`
	}
	resp, err := c.client.do(ctx, http.MethodPut, fmt.Sprintf("/servers/%d", id), nil, opts, &body)
	if err != nil {
		return nil, resp, err
	}
	return body.Server, resp, nil
}

// Delete deletes a server. Deletion is asynchronous and returns an action.
func (c ServerClient) Delete(ctx context.Context, id int64) (*Action, *Response, error) {
	var body struct {
		Action *Action `json:"action"`
	}
	resp, err := c.client.do(ctx, http.MethodDelete, fmt.Sprintf("/servers/%d", id), nil, nil, &body)
	if err != nil {
		return nil, resp, err
	}
	return body.Action, resp, nil
}

// ServerActionClient provides the server action operations. Every call
// returns an Action to poll.
type ServerActionClient struct {
	client *Client
}

func (c ServerActionClient) doAction(ctx context.Context, serverID int64, command string, opts any) (*Action, *Response, error) {
	var body struct {
		Action *Action `json:"action"`
	}
	path := fmt.Sprintf("/servers/%d/actions/%s", serverID, command)
	resp, err := c.client.do(ctx, http.MethodPost, path, nil, opts, &body)
	if err != nil {
		return nil, resp, err
	}
	return body.Action, resp, nil
}

// PowerOn powers on a server.
func (c ServerActionClient) PowerOn(ctx context.Context, serverID int64) (*Action, *Response, error) {
	return c.doAction(ctx, serverID, "poweron", nil)
}

// PowerOff cuts power to a server, without a clean shutdown.
func (c ServerActionClient) PowerOff(ctx context.Context, serverID int64) (*Action, *Response, error) {
	return c.doAction(ctx, serverID, "poweroff", nil)
}

// Reboot reboots a server gracefully via ACPI.
func (c ServerActionClient) Reboot(ctx context.Context, serverID int64) (*Action, *Response, error) {
	return c.doAction(ctx, serverID, "reboot", nil)
}

// Reset performs a hard reset, equivalent to pulling the power plug and
// plugging it back in.
func (c ServerActionClient) Reset(ctx context.Context, serverID int64) (*Action, *Response, error) {
	return c.doAction(ctx, serverID, "reset", nil)
}

// Shutdown requests a clean ACPI shutdown. The action succeeds once the
// signal is sent; whether the OS honors it is not observed.
func (c ServerActionClient) Shutdown(ctx context.Context, serverID int64) (*Action, *Response, error) {
	return c.doAction(ctx, serverID, "shutdown", nil)
}

// ServerEnableRescueOpts holds parameters for enabling rescue mode.
type ServerEnableRescueOpts struct {
	Type    string  `json:"type,omitempty"`
	SSHKeys []int64 `json:"ssh_keys,omitempty"`
}

// ServerEnableRescueResult is the result of enabling rescue mode.
type ServerEnableRescueResult struct {
	Action       *Action
	RootPassword string
}

// EnableRescue enables rescue mode for the next boot.
func (c ServerActionClient) EnableRescue(ctx context.Context, serverID int64, opts ServerEnableRescueOpts) (ServerEnableRescueResult, *Response, error) {
	var result ServerEnableRescueResult
	var body struct {
		Action       *Action `json:"action"`
		RootPassword string  `json:"root_password"`
	}
	resp, err := c.client.do(ctx, http.MethodPost, fmt.Sprintf("/servers/%d/actions/enable_rescue", serverID), nil, opts, &body)
	if err != nil {
		return result, resp, err
	}
	result.Action = body.Action
	result.RootPassword = body.RootPassword
	return result, resp, nil
}

// DisableRescue disables rescue mode.
func (c ServerActionClient) DisableRescue(ctx context.Context, serverID int64) (*Action, *Response, error) {
	return c.doAction(ctx, serverID, "disable_rescue", nil)
}

// ServerAttachToNetworkOpts holds parameters for attaching a server to a
// private network.
type ServerAttachToNetworkOpts struct {
	Network  int64    `json:"network"`
	IP       string   `json:"ip,omitempty"`
	AliasIPs []string `json:"alias_ips,omitempty"`
}

// AttachToNetwork attaches a server to a private network.
func (c ServerActionClient) AttachToNetwork(ctx context.Context, serverID int64, opts ServerAttachToNetworkOpts) (*Action, *Response, error) {
	return c.doAction(ctx, serverID, "attach_to_network", opts)
}

// ServerDetachFromNetworkOpts holds parameters for detaching a server
// from a private network.
type ServerDetachFromNetworkOpts struct {
	Network int64 `json:"network"`
}

// DetachFromNetwork detaches a server from a private network.
func (c ServerActionClient) DetachFromNetwork(ctx context.Context, serverID int64, opts ServerDetachFromNetworkOpts) (*Action, *Response, error) {
	return c.doAction(ctx, serverID, "detach_from_network", opts)
}

// ServerCreateImageOpts holds parameters for creating an image from a
// server.
type ServerCreateImageOpts struct {
	Type        ImageType         `json:"type,omitempty"`
	Description string            `json:"description,omitempty"`
	Labels      map[string]string `json:"labels,omitempty"`
}

// ServerCreateImageResult is the result of creating an image from a
// server.
type ServerCreateImageResult struct {
	Action *Action
	Image  *Image
}

// CreateImage creates a snapshot or backup image of a server.
func (c ServerActionClient) CreateImage(ctx context.Context, serverID int64, opts ServerCreateImageOpts) (ServerCreateImageResult, *Response, error) {
	var result ServerCreateImageResult
	var body struct {
		Action *Action `json:"action"`
		Image  *Image  `json:"image"`
	}
	resp, err := c.client.do(ctx, http.MethodPost, fmt.Sprintf("/servers/%d/actions/create_image", serverID), nil, opts, &body)
	if err != nil {
		return result, resp, err
	}
	result.Action = body.Action
	result.Image = body.Image
	return result, resp, nil
}

// ServerChangeProtectionOpts holds the protection flags to change.
type ServerChangeProtectionOpts struct {
	Delete  *bool `json:"delete,omitempty"`
	Rebuild *bool `json:"rebuild,omitempty"`
}

// ChangeProtection changes the delete and rebuild protection of a server.
func (c ServerActionClient) ChangeProtection(ctx context.Context, serverID int64, opts ServerChangeProtectionOpts) (*Action, *Response, error) {
	return c.doAction(ctx, serverID, "change_protection", opts)
}

// ServerResetPasswordResult is the result of a root password reset.
type ServerResetPasswordResult struct {
	Action       *Action
	RootPassword string
}

// ResetPassword resets the root password of a server.
func (c ServerActionClient) ResetPassword(ctx context.Context, serverID int64) (ServerResetPasswordResult, *Response, error) {
	var result ServerResetPasswordResult
	var body struct {
		Action       *Action `json:"action"`
		RootPassword string  `json:"root_password"`
	}
	resp, err := c.client.do(ctx, http.MethodPost, fmt.Sprintf("/servers/%d/actions/reset_password", serverID), nil, nil, &body)
	if err != nil {
		return result, resp, err
	}
	result.Action = body.Action
	result.RootPassword = body.RootPassword
	return result, resp, nil
}
