package hcapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// ISOType is the kind of an ISO image.
type ISOType string

const (
	ISOTypePublic  ISOType = "public"
	ISOTypePrivate ISOType = "private"
)

// ISO is an attachable ISO image.
type ISO struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Type         ISOType    `json:"type"`
	Architecture *string    `json:"architecture"`
	Deprecated   *time.Time `json:"deprecated"`
}

// ISOClient provides read access to ISO images.
type ISOClient struct {
	client *Client
}

// ISOListOpts holds filter parameters for listing ISOs.
type ISOListOpts struct {
	ListOpts
	Name         string
	Architecture []string
}

func (o ISOListOpts) values() url.Values {
	v := o.ListOpts.values()
	if o.Name != "" {
		v.Set("name", o.Name)
	}
	for _, a := range o.Architecture {
		v.Add("architecture", a)
	}
	return v
}

// Get retrieves an ISO by id.
func (c ISOClient) Get(ctx context.Context, id int64) (*ISO, *Response, error) {
	var body struct {
		ISO *ISO `json:"iso"`
	}
	resp, err := c.client.do(ctx, http.MethodGet, fmt.Sprintf("/isos/%d", id), nil, nil, &body)
	if err != nil {
		return nil, resp, err
	}
	return body.ISO, resp, nil
}

// GetByName retrieves an ISO by name. Returns nil without an error when no
// ISO matches.
func (c ISOClient) GetByName(ctx context.Context, name string) (*ISO, *Response, error) {
	isos, resp, err := c.List(ctx, ISOListOpts{Name: name})
	if err != nil || len(isos) == 0 {
		return nil, resp, err
	}
	return isos[0], resp, nil
}

// List returns a page of ISOs.
func (c ISOClient) List(ctx context.Context, opts ISOListOpts) ([]*ISO, *Response, error) {
	var body struct {
		ISOs []*ISO `json:"isos"`
	}
	resp, err := c.client.do(ctx, http.MethodGet, "/isos", opts.values(), nil, &body)
	if err != nil {
		return nil, resp, err
	}
	return body.ISOs, resp, nil
}

// All returns all ISOs.
func (c ISOClient) All(ctx context.Context) ([]*ISO, error) {
	return allPages(func(page int) ([]*ISO, *Response, error) {
		return c.List(ctx, ISOListOpts{ListOpts: ListOpts{Page: page}})
	})
}
