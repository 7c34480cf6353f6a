package hcapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// SSHKey is an SSH public key registered with the project.
type SSHKey struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Fingerprint string            `json:"fingerprint"`
	PublicKey   string            `json:"public_key"`
	Labels      map[string]string `json:"labels"`
	Created     time.Time         `json:"created"`
}

// SSHKeyClient provides access to SSH keys.
type SSHKeyClient struct {
	client *Client
}

// SSHKeyListOpts holds filter parameters for listing SSH keys.
type SSHKeyListOpts struct {
	ListOpts
	Name        string
	Fingerprint string
}

func (o SSHKeyListOpts) values() url.Values {
	v := o.ListOpts.values()
	if o.Name != "" {
		v.Set("name", o.Name)
	}
	if o.Fingerprint != "" {
		v.Set("fingerprint", o.Fingerprint)
	}
	return v
}

// Get retrieves an SSH key by id.
func (c SSHKeyClient) Get(ctx context.Context, id int64) (*SSHKey, *Response, error) {
	var body struct {
		SSHKey *SSHKey `json:"ssh_key"`
	}
	resp, err := c.client.do(ctx, http.MethodGet, fmt.Sprintf("/ssh_keys/%d", id), nil, nil, &body)
	if err != nil {
		return nil, resp, err
	}
	return body.SSHKey, resp, nil
}

// GetByName retrieves an SSH key by name. Returns nil without an error
// when no key matches.
func (c SSHKeyClient) GetByName(ctx context.Context, name string) (*SSHKey, *Response, error) {
	keys, resp, err := c.List(ctx, SSHKeyListOpts{Name: name})
	if err != nil || len(keys) == 0 {
		return nil, resp, err
	}
	return keys[0], resp, nil
}

// List returns a page of SSH keys.
func (c SSHKeyClient) List(ctx context.Context, opts SSHKeyListOpts) ([]*SSHKey, *Response, error) {
	var body struct {
		SSHKeys []*SSHKey `json:"ssh_keys"`
	}
	resp, err := c.client.do(ctx, http.MethodGet, "/ssh_keys", opts.values(), nil, &body)
	if err != nil {
		return nil, resp, err
	}
	return body.SSHKeys, resp, nil
}

// All returns all SSH keys.
func (c SSHKeyClient) All(ctx context.Context) ([]*SSHKey, error) {
	return allPages(func(page int) ([]*SSHKey, *Response, error) {
		return c.List(ctx, SSHKeyListOpts{ListOpts: ListOpts{Page: page}})
	})
}

// SSHKeyCreateOpts holds all parameters for creating an SSH key. Name and
// PublicKey are required.
type SSHKeyCreateOpts struct {
	Name      string            `json:"name"`
	PublicKey string            `json:"public_key"`
	Labels    map[string]string `json:"labels,omitempty"`
}

// Create registers an SSH public key.
func (c SSHKeyClient) Create(ctx context.Context, opts SSHKeyCreateOpts) (*SSHKey, *Response, error) {
	if opts.Name == "" {
		return nil, nil, missingField("name")
	}
	if opts.PublicKey == "" {
		return nil, nil, missingField("public_key")
	}

	var body struct {
		SSHKey *SSHKey `json:"ssh_key"`
	}
	resp, err := c.client.do(ctx, http.MethodPost, "/ssh_keys", nil, opts, &body)
	if err != nil {
		return nil, resp, err
	}
	return body.SSHKey, resp, nil
}

// SSHKeyUpdateOpts holds the fields changed by an SSH key update. Only
// set fields are sent.
type SSHKeyUpdateOpts struct {
	Name   string            `json:"name,omitempty"`
	Labels map[string]string `json:"labels,omitempty"`
}

// Update changes the name or labels of an SSH key.
func (c SSHKeyClient) Update(ctx context.Context, id int64, opts SSHKeyUpdateOpts) (*SSHKey, *Response, error) {
	var body struct {
		SSHKey *SSHKey `json:"ssh_key"`
	}
	resp, err := c.client.do(ctx, http.MethodPut, fmt.Sprintf("/ssh_keys/%d", id), nil, opts, &body)
	if err != nil {
		return nil, resp, err
	}
	return body.SSHKey, resp, nil
}

// Delete deletes an SSH key.
func (c SSHKeyClient) Delete(ctx context.Context, id int64) (*Response, error) {
	return c.client.do(ctx, http.MethodDelete, fmt.Sprintf("/ssh_keys/%d", id), nil, nil, nil)
}
