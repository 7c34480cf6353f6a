// Package hcapi is a typed client for the Hetzner Cloud API.
//
// All resource clients share a single transport: one Client holds the
// endpoint, the bearer token, and the underlying *http.Client, and every
// call goes through the same request/response path with uniform error
// classification. The Client is immutable after construction and safe for
// concurrent use.
//
//	client := hcapi.NewClient(token)
//	server, _, err := client.Server.Get(ctx, 42)
//
// State-changing calls return an Action that must be polled to completion,
// see ActionClient.WaitFor.
package hcapi

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"
)

// Version is the library version sent in the User-Agent header.
const Version = "1.0.0"

// DefaultEndpoint is the base URL of the Hetzner Cloud API.
const DefaultEndpoint = "https://api.hetzner.cloud/v1"

const (
	defaultTimeout      = 30 * time.Second
	defaultPollInterval = 500 * time.Millisecond
	defaultPollTimeout  = 5 * time.Minute
)

// Client is the Hetzner Cloud API client. Construct it with NewClient and
// share one instance across goroutines; it holds no per-request state
// beyond the connection pool of the underlying http.Client.
type Client struct {
	endpoint           string
	token              string
	userAgent          string
	timeout            time.Duration
	pollInterval       time.Duration
	pollTimeout        time.Duration
	insecureSkipVerify bool
	transport          http.RoundTripper
	registerer         prometheus.Registerer
	logger             logr.Logger
	logEnabled         bool
	httpClient         *http.Client

	Action           ActionClient
	Certificate      CertificateClient
	Datacenter       DatacenterClient
	Firewall         FirewallClient
	FloatingIP       FloatingIPClient
	Image            ImageClient
	ISO              ISOClient
	LoadBalancer     LoadBalancerClient
	LoadBalancerType LoadBalancerTypeClient
	Location         LocationClient
	Network          NetworkClient
	PlacementGroup   PlacementGroupClient
	Pricing          PricingClient
	PrimaryIP        PrimaryIPClient
	Server           ServerClient
	ServerType       ServerTypeClient
	SSHKey           SSHKeyClient
	Volume           VolumeClient
	Zone             ZoneClient
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides the API base URL. Useful for tests and proxies.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.endpoint = strings.TrimRight(endpoint, "/")
	}
}

// WithHTTPClient sets a custom http.Client for all requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout on the underlying http.Client.
// Per-call deadlines can additionally be set through the context.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithTransport sets the underlying RoundTripper, for custom connection
// pooling or TLS settings. Instrumentation and debug logging wrap it.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.transport = rt
	}
}

// WithInsecureSkipVerify disables TLS certificate verification. Ignored
// when a custom transport is supplied.
func WithInsecureSkipVerify() Option {
	return func(c *Client) {
		c.insecureSkipVerify = true
	}
}

// WithApplication sets an application name and version that prefix the
// User-Agent header.
func WithApplication(name, version string) Option {
	return func(c *Client) {
		c.userAgent = strings.TrimSpace(name+" "+version) + " " + c.userAgent
	}
}

// WithLogger enables debug logging of requests through the given logger.
// Request and response lines are emitted at V(1). The token is never logged.
func WithLogger(logger logr.Logger) Option {
	return func(c *Client) {
		c.logger = logger
		c.logEnabled = true
	}
}

// WithInstrumentation registers request metrics (in-flight gauge, request
// counter, duration histogram) with the given registerer.
func WithInstrumentation(reg prometheus.Registerer) Option {
	return func(c *Client) {
		c.registerer = reg
	}
}

// WithPollInterval sets the default interval for ActionClient.WaitFor.
func WithPollInterval(d time.Duration) Option {
	return func(c *Client) {
		c.pollInterval = d
	}
}

// WithPollTimeout sets the default timeout for ActionClient.WaitFor.
func WithPollTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.pollTimeout = d
	}
}

// NewClient creates a new Client authenticating with the given API token.
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		endpoint:     DefaultEndpoint,
		token:        token,
		userAgent:    "hcapi/" + Version,
		timeout:      defaultTimeout,
		pollInterval: defaultPollInterval,
		pollTimeout:  defaultPollTimeout,
		logger:       logr.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	if c.httpClient.Timeout == 0 {
		c.httpClient.Timeout = c.timeout
	}

	rt := c.transport
	if rt == nil {
		rt = c.httpClient.Transport
	}
	if rt == nil {
		if c.insecureSkipVerify {
			rt = &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true}, // #nosec G402 -- explicit opt-in
			}
		} else {
			rt = http.DefaultTransport
		}
	}
	if c.registerer != nil {
		rt = instrumentedTransport(c.registerer, rt)
	}
	if c.logEnabled {
		rt = &loggingTransport{next: rt, logger: c.logger}
	}
	c.httpClient.Transport = rt

	c.Action = ActionClient{client: c}
	c.Certificate = CertificateClient{client: c, Action: CertificateActionClient{client: c}}
	c.Datacenter = DatacenterClient{client: c}
	c.Firewall = FirewallClient{client: c, Action: FirewallActionClient{client: c}}
	c.FloatingIP = FloatingIPClient{client: c, Action: FloatingIPActionClient{client: c}}
	c.Image = ImageClient{client: c, Action: ImageActionClient{client: c}}
	c.ISO = ISOClient{client: c}
	c.LoadBalancer = LoadBalancerClient{client: c, Action: LoadBalancerActionClient{client: c}}
	c.LoadBalancerType = LoadBalancerTypeClient{client: c}
	c.Location = LocationClient{client: c}
	c.Network = NetworkClient{client: c, Action: NetworkActionClient{client: c}}
	c.PlacementGroup = PlacementGroupClient{client: c}
	c.Pricing = PricingClient{client: c}
	c.PrimaryIP = PrimaryIPClient{client: c, Action: PrimaryIPActionClient{client: c}}
	c.Server = ServerClient{client: c, Action: ServerActionClient{client: c}}
	c.ServerType = ServerTypeClient{client: c}
	c.SSHKey = SSHKeyClient{client: c}
	c.Volume = VolumeClient{client: c, Action: VolumeActionClient{client: c}}
	c.Zone = ZoneClient{client: c, RRSet: ZoneRRSetClient{client: c}}

	return c
}

// Endpoint returns the configured API base URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Response wraps an http.Response together with the decoded meta block
// of the body, if any.
type Response struct {
	*http.Response

	// Meta holds pagination metadata for list responses.
	Meta Meta
}

// Meta is the meta block returned with list responses.
type Meta struct {
	Pagination *Pagination `json:"pagination"`
}

// Pagination describes the position of a list response within the full
// result set. NextPage and PreviousPage are 0 when there is no such page.
type Pagination struct {
	Page         int `json:"page"`
	PerPage      int `json:"per_page"`
	PreviousPage int `json:"previous_page"`
	NextPage     int `json:"next_page"`
	LastPage     int `json:"last_page"`
	TotalEntries int `json:"total_entries"`
}

// ListOpts holds the pagination and filter parameters common to all list
// calls. Values are passed through verbatim; range checks (per_page 1-100,
// page >= 1) are enforced by the API and surface as validation errors.
type ListOpts struct {
	Page          int
	PerPage       int
	LabelSelector string
	Sort          []string
}

func (o ListOpts) values() url.Values {
	v := url.Values{}
	if o.Page > 0 {
		v.Set("page", strconv.Itoa(o.Page))
	}
	if o.PerPage > 0 {
		v.Set("per_page", strconv.Itoa(o.PerPage))
	}
	if o.LabelSelector != "" {
		v.Set("label_selector", o.LabelSelector)
	}
	for _, s := range o.Sort {
		v.Add("sort", s)
	}
	return v
}

// do issues a single API request. It is the only place requests are built
// and responses are decoded: URL assembly, bearer auth, JSON codec, and
// error classification all live here. result may be nil for calls without
// a response body.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, result any) (*Response, error) {
	u := c.endpoint + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request %s %s: %w", method, path, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportError(method, path, err)
	}
	defer func() {
		_ = httpResp.Body.Close()
	}()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, transportError(method, path, err)
	}

	resp := &Response{Response: httpResp}
	if httpResp.StatusCode >= 400 {
		return resp, errorFromResponse(httpResp.StatusCode, raw)
	}

	if len(raw) == 0 || httpResp.StatusCode == http.StatusNoContent {
		return resp, nil
	}

	var envelope struct {
		Meta Meta `json:"meta"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return resp, fmt.Errorf("decode response meta for %s %s: %w", method, path, err)
	}
	resp.Meta = envelope.Meta

	if result != nil {
		if err := json.Unmarshal(raw, result); err != nil {
			return resp, fmt.Errorf("decode response body for %s %s: %w", method, path, err)
		}
	}
	return resp, nil
}

// allPages collects every page of a list call, following meta.pagination
// until the last page is reached.
func allPages[T any](list func(page int) ([]T, *Response, error)) ([]T, error) {
	var all []T
	page := 1
	for {
		items, resp, err := list(page)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
		if resp == nil || resp.Meta.Pagination == nil || resp.Meta.Pagination.NextPage == 0 {
			return all, nil
		}
		page = resp.Meta.Pagination.NextPage
	}
}
