package hcapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// ZoneStatus is the lifecycle status of a DNS zone.
type ZoneStatus string

const (
	ZoneStatusOK       ZoneStatus = "ok"
	ZoneStatusUpdating ZoneStatus = "updating"
	ZoneStatusError    ZoneStatus = "error"
)

// Zone is a DNS zone.
type Zone struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	TTL         int               `json:"ttl"`
	Status      ZoneStatus        `json:"status"`
	RecordCount int               `json:"record_count"`
	Registrar   string            `json:"registrar"`
	Nameservers []string          `json:"assigned_nameservers"`
	Protection  ZoneProtection    `json:"protection"`
	Labels      map[string]string `json:"labels"`
	Created     time.Time         `json:"created"`
}

// ZoneProtection represents the deletion protection of a zone.
type ZoneProtection struct {
	Delete bool `json:"delete"`
}

// ZoneClient provides access to DNS zones.
type ZoneClient struct {
	client *Client

	RRSet ZoneRRSetClient
}

// ZoneListOpts holds filter parameters for listing zones.
type ZoneListOpts struct {
	ListOpts
	Name string
}

func (o ZoneListOpts) values() url.Values {
	v := o.ListOpts.values()
	if o.Name != "" {
		v.Set("name", o.Name)
	}
	return v
}

// Get retrieves a zone by id.
func (c ZoneClient) Get(ctx context.Context, id int64) (*Zone, *Response, error) {
	var body struct {
		Zone *Zone `json:"zone"`
	}
	resp, err := c.client.do(ctx, http.MethodGet, fmt.Sprintf("/zones/%d", id), nil, nil, &body)
	if err != nil {
		return nil, resp, err
	}
	return body.Zone, resp, nil
}

// GetByName retrieves a zone by name. Returns nil without an error when
// no zone matches.
func (c ZoneClient) GetByName(ctx context.Context, name string) (*Zone, *Response, error) {
	zones, resp, err := c.List(ctx, ZoneListOpts{Name: name})
	if err != nil || len(zones) == 0 {
		return nil, resp, err
	}
	return zones[0], resp, nil
}

// List returns a page of zones.
func (c ZoneClient) List(ctx context.Context, opts ZoneListOpts) ([]*Zone, *Response, error) {
	var body struct {
		Zones []*Zone `json:"zones"`
	}
	resp, err := c.client.do(ctx, http.MethodGet, "/zones", opts.values(), nil, &body)
	if err != nil {
		return nil, resp, err
	}
	return body.Zones, resp, nil
}

// All returns all zones.
func (c ZoneClient) All(ctx context.Context) ([]*Zone, error) {
	return allPages(func(page int) ([]*Zone, *Response, error) {
		return c.List(ctx, ZoneListOpts{ListOpts: ListOpts{Page: page}})
	})
}

// ZoneCreateOpts holds all parameters for creating a zone. Name is
// required. TTL is the default TTL for record sets that do not set one;
// the server enforces its own lower bound.
type ZoneCreateOpts struct {
	Name   string            `json:"name"`
	TTL    *int              `json:"ttl,omitempty"`
	Labels map[string]string `json:"labels,omitempty"`
}

// ZoneCreateResult is the result of creating a zone.
type ZoneCreateResult struct {
	Zone   *Zone
	Action *Action
}

// Create creates a DNS zone.
func (c ZoneClient) Create(ctx context.Context, opts ZoneCreateOpts) (ZoneCreateResult, *Response, error) {
	if opts.Name == "" {
		return ZoneCreateResult{}, nil, missingField("name")
	}

	var body struct {
		Zone   *Zone   `json:"zone"`
		Action *Action `json:"action"`
	}
	resp, err := c.client.do(ctx, http.MethodPost, "/zones", nil, opts, &body)
	if err != nil {
		return ZoneCreateResult{}, resp, err
	}
	return ZoneCreateResult{Zone: body.Zone, Action: body.Action}, resp, nil
}

// ZoneUpdateOpts holds the fields changed by a zone update. Only set
// fields are sent.
type ZoneUpdateOpts struct {
	TTL    *int              `json:"ttl,omitempty"`
	Labels map[string]string `json:"labels,omitempty"`
}

// Update changes the default TTL or labels of a zone.
func (c ZoneClient) Update(ctx context.Context, id int64, opts ZoneUpdateOpts) (*Zone, *Response, error) {
	var body struct {
		Zone *Zone `json:"zone"`
	}
	resp, err := c.client.do(ctx, http.MethodPut, fmt.Sprintf("/zones/%d", id), nil, opts, &body)
	if err != nil {
		return nil, resp, err
	}
	return body.Zone, resp, nil
}

// Delete deletes a zone and all of its record sets.
func (c ZoneClient) Delete(ctx context.Context, id int64) (*Action, *Response, error) {
	var body struct {
		Action *Action `json:"action"`
	}
	resp, err := c.client.do(ctx, http.MethodDelete, fmt.Sprintf("/zones/%d", id), nil, nil, &body)
	if err != nil {
		return nil, resp, err
	}
	return body.Action, resp, nil
}

// RRSetType is the record type of a DNS record set.
type RRSetType string

const (
	RRSetTypeA     RRSetType = "A"
	RRSetTypeAAAA  RRSetType = "AAAA"
	RRSetTypeCNAME RRSetType = "CNAME"
	RRSetTypeMX    RRSetType = "MX"
	RRSetTypeNS    RRSetType = "NS"
	RRSetTypePTR   RRSetType = "PTR"
	RRSetTypeSOA   RRSetType = "SOA"
	RRSetTypeSRV   RRSetType = "SRV"
	RRSetTypeTXT   RRSetType = "TXT"
)

// RRSetRecord is a single record within a record set.
type RRSetRecord struct {
	Value   string `json:"value"`
	Comment string `json:"comment,omitempty"`
}

// RRSet is a DNS resource record set, the records of a zone sharing one
// name and type. A record set is addressed by that pair, not by a
// numeric id.
type RRSet struct {
	Name       string            `json:"name"`
	Type       RRSetType         `json:"type"`
	TTL        *int              `json:"ttl"`
	Records    []RRSetRecord     `json:"records"`
	Protection RRSetProtection   `json:"protection"`
	Labels     map[string]string `json:"labels"`
}

// RRSetProtection represents the change protection of a record set.
type RRSetProtection struct {
	Change bool `json:"change"`
}

// ZoneRRSetClient provides access to the record sets of DNS zones.
type ZoneRRSetClient struct {
	client *Client
}

// ZoneRRSetListOpts holds filter parameters for listing record sets.
type ZoneRRSetListOpts struct {
	ListOpts
	Name string
	Type RRSetType
}

func (o ZoneRRSetListOpts) values() url.Values {
	v := o.ListOpts.values()
	if o.Name != "" {
		v.Set("name", o.Name)
	}
	if o.Type != "" {
		v.Set("type", string(o.Type))
	}
	return v
}

// Get retrieves a record set by its name and type.
func (c ZoneRRSetClient) Get(ctx context.Context, zoneID int64, name string, typ RRSetType) (*RRSet, *Response, error) {
	var body struct {
		RRSet *RRSet `json:"rrset"`
	}
	path := fmt.Sprintf("/zones/%d/rrsets/%s/%s", zoneID, name, typ)
	resp, err := c.client.do(ctx, http.MethodGet, path, nil, nil, &body)
	if err != nil {
		return nil, resp, err
	}
	return body.RRSet, resp, nil
}

// List returns a page of record sets of a zone.
func (c ZoneRRSetClient) List(ctx context.Context, zoneID int64, opts ZoneRRSetListOpts) ([]*RRSet, *Response, error) {
	var body struct {
		RRSets []*RRSet `json:"rrsets"`
	}
	resp, err := c.client.do(ctx, http.MethodGet, fmt.Sprintf("/zones/%d/rrsets", zoneID), opts.values(), nil, &body)
	if err != nil {
		return nil, resp, err
	}
	return body.RRSets, resp, nil
}

// All returns all record sets of a zone.
func (c ZoneRRSetClient) All(ctx context.Context, zoneID int64) ([]*RRSet, error) {
	return allPages(func(page int) ([]*RRSet, *Response, error) {
		return c.List(ctx, zoneID, ZoneRRSetListOpts{ListOpts: ListOpts{Page: page}})
	})
}

// ZoneRRSetCreateOpts holds all parameters for creating a record set.
// Name, Type and at least one record are required. TTL is optional; the
// server enforces its own lower bound and rejects values below it.
type ZoneRRSetCreateOpts struct {
	Name    string            `json:"name"`
	Type    RRSetType         `json:"type"`
	TTL     *int              `json:"ttl,omitempty"`
	Records []RRSetRecord     `json:"records"`
	Labels  map[string]string `json:"labels,omitempty"`
}

// Create creates a record set in a zone.
func (c ZoneRRSetClient) Create(ctx context.Context, zoneID int64, opts ZoneRRSetCreateOpts) (*RRSet, *Response, error) {
	if opts.Name == "" {
		return nil, nil, missingField("name")
	}
	if opts.Type == "" {
		return nil, nil, missingField("type")
	}
	if len(opts.Records) == 0 {
		return nil, nil, missingField("records")
	}

	var body struct {
		RRSet *RRSet `json:"rrset"`
	}
	resp, err := c.client.do(ctx, http.MethodPost, fmt.Sprintf("/zones/%d/rrsets", zoneID), nil, opts, &body)
	if err != nil {
		return nil, resp, err
	}
	return body.RRSet, resp, nil
}

// ZoneRRSetUpdateOpts holds the fields changed by a record set update.
// Records replaces the full record list when set.
type ZoneRRSetUpdateOpts struct {
	TTL     *int              `json:"ttl,omitempty"`
	Records []RRSetRecord     `json:"records,omitempty"`
	Labels  map[string]string `json:"labels,omitempty"`
}

// Update changes the TTL, records or labels of a record set.
func (c ZoneRRSetClient) Update(ctx context.Context, zoneID int64, name string, typ RRSetType, opts ZoneRRSetUpdateOpts) (*RRSet, *Response, error) {
	var body struct {
		RRSet *RRSet `json:"rrset"`
	}
	path := fmt.Sprintf("/zones/%d/rrsets/%s/%s", zoneID, name, typ)
	resp, err := c.client.do(ctx, http.MethodPut, path, nil, opts, &body)
	if err != nil {
		return nil, resp, err
	}
	return body.RRSet, resp, nil
}

// Delete deletes a record set.
func (c ZoneRRSetClient) Delete(ctx context.Context, zoneID int64, name string, typ RRSetType) (*Response, error) {
	path := fmt.Sprintf("/zones/%d/rrsets/%s/%s", zoneID, name, typ)
	return c.client.do(ctx, http.MethodDelete, path, nil, nil, nil)
}
