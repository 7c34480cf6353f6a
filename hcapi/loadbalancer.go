package hcapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// LoadBalancerAlgorithmType is the request distribution algorithm.
type LoadBalancerAlgorithmType string

const (
	LoadBalancerAlgorithmTypeRoundRobin       LoadBalancerAlgorithmType = "round_robin"
	LoadBalancerAlgorithmTypeLeastConnections LoadBalancerAlgorithmType = "least_connections"
)

// LoadBalancerTargetType is the kind of a load balancer target.
type LoadBalancerTargetType string

const (
	LoadBalancerTargetTypeServer        LoadBalancerTargetType = "server"
	LoadBalancerTargetTypeLabelSelector LoadBalancerTargetType = "label_selector"
	LoadBalancerTargetTypeIP            LoadBalancerTargetType = "ip"
)

// LoadBalancerServiceProtocol is the protocol of a load balancer service.
type LoadBalancerServiceProtocol string

const (
	LoadBalancerServiceProtocolTCP   LoadBalancerServiceProtocol = "tcp"
	LoadBalancerServiceProtocolHTTP  LoadBalancerServiceProtocol = "http"
	LoadBalancerServiceProtocolHTTPS LoadBalancerServiceProtocol = "https"
)

// LoadBalancer is a managed load balancer.
type LoadBalancer struct {
	ID               int64                    `json:"id"`
	Name             string                   `json:"name"`
	Created          time.Time                `json:"created"`
	PublicNet        LoadBalancerPublicNet    `json:"public_net"`
	PrivateNet       []LoadBalancerPrivateNet `json:"private_net"`
	Location         Location                 `json:"location"`
	LoadBalancerType LoadBalancerType         `json:"load_balancer_type"`
	Algorithm        LoadBalancerAlgorithm    `json:"algorithm"`
	Services         []LoadBalancerService    `json:"services"`
	Targets          []LoadBalancerTarget     `json:"targets"`
	Protection       LoadBalancerProtection   `json:"protection"`
	Labels           map[string]string        `json:"labels"`
}

// LoadBalancerPublicNet holds the public addresses of a load balancer.
type LoadBalancerPublicNet struct {
	Enabled bool                    `json:"enabled"`
	IPv4    LoadBalancerPublicNetIP `json:"ipv4"`
	IPv6    LoadBalancerPublicNetIP `json:"ipv6"`
}

// LoadBalancerPublicNetIP is one public address of a load balancer.
type LoadBalancerPublicNetIP struct {
	IP     string `json:"ip"`
	DNSPtr string `json:"dns_ptr"`
}

// LoadBalancerPrivateNet is the attachment of a load balancer to a
// private network.
type LoadBalancerPrivateNet struct {
	Network int64  `json:"network"`
	IP      string `json:"ip"`
}

// LoadBalancerAlgorithm wraps the algorithm type.
type LoadBalancerAlgorithm struct {
	Type LoadBalancerAlgorithmType `json:"type"`
}

// LoadBalancerService is a service exposed by a load balancer.
type LoadBalancerService struct {
	Protocol        LoadBalancerServiceProtocol     `json:"protocol"`
	ListenPort      int                             `json:"listen_port"`
	DestinationPort int                             `json:"destination_port"`
	Proxyprotocol   bool                            `json:"proxyprotocol"`
	HTTP            *LoadBalancerServiceHTTP        `json:"http,omitempty"`
	HealthCheck     *LoadBalancerServiceHealthCheck `json:"health_check,omitempty"`
}

// LoadBalancerServiceHTTP holds HTTP-specific service settings.
type LoadBalancerServiceHTTP struct {
	CookieName     string  `json:"cookie_name,omitempty"`
	CookieLifetime int     `json:"cookie_lifetime,omitempty"`
	Certificates   []int64 `json:"certificates,omitempty"`
	RedirectHTTP   bool    `json:"redirect_http,omitempty"`
	StickySessions bool    `json:"sticky_sessions,omitempty"`
}

// LoadBalancerServiceHealthCheck configures target health checking.
type LoadBalancerServiceHealthCheck struct {
	Protocol LoadBalancerServiceProtocol         `json:"protocol"`
	Port     int                                 `json:"port"`
	Interval int                                 `json:"interval"`
	Timeout  int                                 `json:"timeout"`
	Retries  int                                 `json:"retries"`
	HTTP     *LoadBalancerServiceHealthCheckHTTP `json:"http,omitempty"`
}

// LoadBalancerServiceHealthCheckHTTP holds HTTP health check settings.
type LoadBalancerServiceHealthCheckHTTP struct {
	Domain      string   `json:"domain,omitempty"`
	Path        string   `json:"path,omitempty"`
	Response    string   `json:"response,omitempty"`
	StatusCodes []string `json:"status_codes,omitempty"`
	TLS         bool     `json:"tls,omitempty"`
}

// LoadBalancerTarget is a traffic target of a load balancer.
type LoadBalancerTarget struct {
	Type          LoadBalancerTargetType           `json:"type"`
	Server        *LoadBalancerTargetServer        `json:"server,omitempty"`
	LabelSelector *LoadBalancerTargetLabelSelector `json:"label_selector,omitempty"`
	IP            *LoadBalancerTargetIP            `json:"ip,omitempty"`
	UsePrivateIP  bool                             `json:"use_private_ip,omitempty"`
}

// LoadBalancerTargetServer selects a single server target.
type LoadBalancerTargetServer struct {
	ID int64 `json:"id"`
}

// LoadBalancerTargetLabelSelector selects targets by label.
type LoadBalancerTargetLabelSelector struct {
	Selector string `json:"selector"`
}

// LoadBalancerTargetIP selects a dedicated-server IP target.
type LoadBalancerTargetIP struct {
	IP string `json:"ip"`
}

// LoadBalancerProtection holds the delete protection flag.
type LoadBalancerProtection struct {
	Delete bool `json:"delete"`
}

// LoadBalancerClient provides access to load balancers.
type LoadBalancerClient struct {
	client *Client

	// Action exposes the load-balancer-specific action operations.
	Action LoadBalancerActionClient
}

// LoadBalancerListOpts holds filter parameters for listing load balancers.
type LoadBalancerListOpts struct {
	ListOpts
	Name string
}

func (o LoadBalancerListOpts) values() url.Values {
	v := o.ListOpts.values()
	if o.Name != "" {
		v.Set("name", o.Name)
	}
	return v
}

// Get retrieves a load balancer by id.
func (c LoadBalancerClient) Get(ctx context.Context, id int64) (*LoadBalancer, *Response, error) {
	var body struct {
		LoadBalancer *LoadBalancer `json:"load_balancer"`
	}
	resp, err := c.client.do(ctx, http.MethodGet, fmt.Sprintf("/load_balancers/%d", id), nil, nil, &body)
	if err != nil {
		return nil, resp, err
	}
	return body.LoadBalancer, resp, nil
}

// GetByName retrieves a load balancer by name. Returns nil without an
// error when no load balancer matches.
func (c LoadBalancerClient) GetByName(ctx context.Context, name string) (*LoadBalancer, *Response, error) {
	loadBalancers, resp, err := c.List(ctx, LoadBalancerListOpts{Name: name})
	if err != nil || len(loadBalancers) == 0 {
		return nil, resp, err
	}
	return loadBalancers[0], resp, nil
}

// List returns a page of load balancers.
func (c LoadBalancerClient) List(ctx context.Context, opts LoadBalancerListOpts) ([]*LoadBalancer, *Response, error) {
	var body struct {
		LoadBalancers []*LoadBalancer `json:"load_balancers"`
	}
	resp, err := c.client.do(ctx, http.MethodGet, "/load_balancers", opts.values(), nil, &body)
	if err != nil {
		return nil, resp, err
	}
	return body.LoadBalancers, resp, nil
}

// All returns all load balancers.
func (c LoadBalancerClient) All(ctx context.Context) ([]*LoadBalancer, error) {
	return allPages(func(page int) ([]*LoadBalancer, *Response, error) {
		return c.List(ctx, LoadBalancerListOpts{ListOpts: ListOpts{Page: page}})
	})
}

// LoadBalancerCreateOpts holds all parameters for creating a load
// balancer. Name and LoadBalancerType are required.
type LoadBalancerCreateOpts struct {
	Name             string                 `json:"name"`
	LoadBalancerType string                 `json:"load_balancer_type"`
	Algorithm        *LoadBalancerAlgorithm `json:"algorithm,omitempty"`
	Location         string                 `json:"location,omitempty"`
	NetworkZone      string                 `json:"network_zone,omitempty"`
	Network          int64                  `json:"network,omitempty"`
	PublicInterface  *bool                  `json:"public_interface,omitempty"`
	Services         []LoadBalancerService  `json:"services,omitempty"`
	Targets          []LoadBalancerTarget   `json:"targets,omitempty"`
	Labels           map[string]string      `json:"labels,omitempty"`
}

// LoadBalancerCreateResult is the result of a load balancer create call.
type LoadBalancerCreateResult struct {
	LoadBalancer *LoadBalancer
	Action       *Action
}

// Create creates a load balancer.
func (c LoadBalancerClient) Create(ctx context.Context, opts LoadBalancerCreateOpts) (LoadBalancerCreateResult, *Response, error) {
	var result LoadBalancerCreateResult
	if opts.Name == "" {
		return result, nil, missingField("name")
	}
	if opts.LoadBalancerType == "" {
		return result, nil, missingField("load_balancer_type")
	}

	var body struct {
		LoadBalancer *LoadBalancer `json:"load_balancer"`
		Action       *Action       `json:"action"`
	}
	resp, err := c.client.do(ctx, http.MethodPost, "/load_balancers", nil, opts, &body)
	if err != nil {
		return result, resp, err
	}
	result.LoadBalancer = body.LoadBalancer
	result.Action = body.Action
	return result, resp, nil
}

// LoadBalancerUpdateOpts holds the fields changed by a load balancer
// update. Only set fields are sent.
type LoadBalancerUpdateOpts struct {
	Name   string            `json:"name,omitempty"`
	Labels map[string]string `json:"labels,omitempty"`
}

// Update changes the name or labels of a load balancer.
func (c LoadBalancerClient) Update(ctx context.Context, id int64, opts LoadBalancerUpdateOpts) (*LoadBalancer, *Response, error) {
	var body struct {
		LoadBalancer *LoadBalancer `json:"load_balancer"`
	}
	resp, err := c.client.do(ctx, http.MethodPut, fmt.Sprintf("/load_balancers/%d", id), nil, opts, &body)
	if err != nil {
		return nil, resp, err
	}
	return body.LoadBalancer, resp, nil
}

// Delete deletes a load balancer.
func (c LoadBalancerClient) Delete(ctx context.Context, id int64) (*Response, error) {
	return c.client.do(ctx, http.MethodDelete, fmt.Sprintf("/load_balancers/%d", id), nil, nil, nil)
}

// LoadBalancerActionClient provides the load balancer action operations.
type LoadBalancerActionClient struct {
	client *Client
}

func (c LoadBalancerActionClient) doAction(ctx context.Context, lbID int64, command string, opts any) (*Action, *Response, error) {
	var body struct {
		Action *Action `json:"action"`
	}
	path := fmt.Sprintf("/load_balancers/%d/actions/%s", lbID, command)
	resp, err := c.client.do(ctx, http.MethodPost, path, nil, opts, &body)
	if err != nil {
		return nil, resp, err
	}
	return body.Action, resp, nil
}

// AddService adds a service to a load balancer.
func (c LoadBalancerActionClient) AddService(ctx context.Context, lbID int64, service LoadBalancerService) (*Action, *Response, error) {
	return c.doAction(ctx, lbID, "add_service", service)
}

// UpdateService updates the service on the given listen port.
func (c LoadBalancerActionClient) UpdateService(ctx context.Context, lbID int64, service LoadBalancerService) (*Action, *Response, error) {
	return c.doAction(ctx, lbID, "update_service", service)
}

// LoadBalancerDeleteServiceOpts identifies the service to delete by its
// listen port.
type LoadBalancerDeleteServiceOpts struct {
	ListenPort int `json:"listen_port"`
}

// DeleteService removes the service on the given listen port.
func (c LoadBalancerActionClient) DeleteService(ctx context.Context, lbID int64, opts LoadBalancerDeleteServiceOpts) (*Action, *Response, error) {
	return c.doAction(ctx, lbID, "delete_service", opts)
}

// AddTarget adds a target to a load balancer.
func (c LoadBalancerActionClient) AddTarget(ctx context.Context, lbID int64, target LoadBalancerTarget) (*Action, *Response, error) {
	return c.doAction(ctx, lbID, "add_target", target)
}

// RemoveTarget removes a target from a load balancer.
func (c LoadBalancerActionClient) RemoveTarget(ctx context.Context, lbID int64, target LoadBalancerTarget) (*Action, *Response, error) {
	return c.doAction(ctx, lbID, "remove_target", target)
}

// LoadBalancerAttachToNetworkOpts holds parameters for attaching a load
// balancer to a private network.
type LoadBalancerAttachToNetworkOpts struct {
	Network int64  `json:"network"`
	IP      string `json:"ip,omitempty"`
}

// AttachToNetwork attaches a load balancer to a private network.
func (c LoadBalancerActionClient) AttachToNetwork(ctx context.Context, lbID int64, opts LoadBalancerAttachToNetworkOpts) (*Action, *Response, error) {
	return c.doAction(ctx, lbID, "attach_to_network", opts)
}

// LoadBalancerDetachFromNetworkOpts holds parameters for detaching a load
// balancer from a private network.
type LoadBalancerDetachFromNetworkOpts struct {
	Network int64 `json:"network"`
}

// DetachFromNetwork detaches a load balancer from a private network.
func (c LoadBalancerActionClient) DetachFromNetwork(ctx context.Context, lbID int64, opts LoadBalancerDetachFromNetworkOpts) (*Action, *Response, error) {
	return c.doAction(ctx, lbID, "detach_from_network", opts)
}

// ChangeAlgorithm changes the request distribution algorithm.
func (c LoadBalancerActionClient) ChangeAlgorithm(ctx context.Context, lbID int64, algorithm LoadBalancerAlgorithm) (*Action, *Response, error) {
	return c.doAction(ctx, lbID, "change_algorithm", algorithm)
}

// LoadBalancerChangeTypeOpts holds the new load balancer type.
type LoadBalancerChangeTypeOpts struct {
	LoadBalancerType string `json:"load_balancer_type"`
}

// ChangeType migrates a load balancer to a different type.
func (c LoadBalancerActionClient) ChangeType(ctx context.Context, lbID int64, opts LoadBalancerChangeTypeOpts) (*Action, *Response, error) {
	return c.doAction(ctx, lbID, "change_type", opts)
}

// LoadBalancerChangeProtectionOpts holds the protection flags to change.
type LoadBalancerChangeProtectionOpts struct {
	Delete *bool `json:"delete,omitempty"`
}

// ChangeProtection changes the delete protection of a load balancer.
func (c LoadBalancerActionClient) ChangeProtection(ctx context.Context, lbID int64, opts LoadBalancerChangeProtectionOpts) (*Action, *Response, error) {
	return c.doAction(ctx, lbID, "change_protection", opts)
}
