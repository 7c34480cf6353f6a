package hcapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// CertificateType is the kind of a certificate.
type CertificateType string

const (
	// CertificateTypeUploaded is a certificate supplied by the user.
	CertificateTypeUploaded CertificateType = "uploaded"
	// CertificateTypeManaged is issued and renewed by the provider.
	CertificateTypeManaged CertificateType = "managed"
)

// Certificate is a TLS certificate usable by load balancer services.
type Certificate struct {
	ID             int64              `json:"id"`
	Name           string             `json:"name"`
	Type           CertificateType    `json:"type"`
	Certificate    string             `json:"certificate"`
	Created        time.Time          `json:"created"`
	NotValidBefore time.Time          `json:"not_valid_before"`
	NotValidAfter  time.Time          `json:"not_valid_after"`
	DomainNames    []string           `json:"domain_names"`
	Fingerprint    string             `json:"fingerprint"`
	Status         *CertificateStatus `json:"status"`
	Labels         map[string]string  `json:"labels"`
}

// CertificateStatus is the issuance and renewal state of a managed
// certificate.
type CertificateStatus struct {
	Issuance string       `json:"issuance"`
	Renewal  string       `json:"renewal"`
	Error    *ActionError `json:"error,omitempty"`
}

// CertificateClient provides access to certificates.
type CertificateClient struct {
	client *Client

	// Action exposes the certificate-specific action operations.
	Action CertificateActionClient
}

// CertificateListOpts holds filter parameters for listing certificates.
type CertificateListOpts struct {
	ListOpts
	Name string
	Type []CertificateType
}

func (o CertificateListOpts) values() url.Values {
	v := o.ListOpts.values()
	if o.Name != "" {
		v.Set("name", o.Name)
	}
	for _, t := range o.Type {
		v.Add("type", string(t))
	}
	return v
}

// Get retrieves a certificate by id.
func (c CertificateClient) Get(ctx context.Context, id int64) (*Certificate, *Response, error) {
	var body struct {
		Certificate *Certificate `json:"certificate"`
	}
	resp, err := c.client.do(ctx, http.MethodGet, fmt.Sprintf("/certificates/%d", id), nil, nil, &body)
	if err != nil {
		return nil, resp, err
	}
	return body.Certificate, resp, nil
}

// GetByName retrieves a certificate by name. Returns nil without an error
// when no certificate matches.
func (c CertificateClient) GetByName(ctx context.Context, name string) (*Certificate, *Response, error) {
	certificates, resp, err := c.List(ctx, CertificateListOpts{Name: name})
	if err != nil || len(certificates) == 0 {
		return nil, resp, err
	}
	return certificates[0], resp, nil
}

// List returns a page of certificates.
func (c CertificateClient) List(ctx context.Context, opts CertificateListOpts) ([]*Certificate, *Response, error) {
	var body struct {
		Certificates []*Certificate `json:"certificates"`
	}
	resp, err := c.client.do(ctx, http.MethodGet, "/certificates", opts.values(), nil, &body)
	if err != nil {
		return nil, resp, err
	}
	return body.Certificates, resp, nil
}

// All returns all certificates.
func (c CertificateClient) All(ctx context.Context) ([]*Certificate, error) {
	return allPages(func(page int) ([]*Certificate, *Response, error) {
		return c.List(ctx, CertificateListOpts{ListOpts: ListOpts{Page: page}})
	})
}

// CertificateCreateOpts holds all parameters for creating a certificate.
// Uploaded certificates need Certificate and PrivateKey; managed ones
// need DomainNames.
type CertificateCreateOpts struct {
	Name        string            `json:"name"`
	Type        CertificateType   `json:"type,omitempty"`
	Certificate string            `json:"certificate,omitempty"`
	PrivateKey  string            `json:"private_key,omitempty"`
	DomainNames []string          `json:"domain_names,omitempty"`
	Labels      map[string]string `json:"labels,omitempty"`
}

// CertificateCreateResult is the result of a certificate create call.
// Managed certificates are issued asynchronously and come with an action.
type CertificateCreateResult struct {
	Certificate *Certificate
	Action      *Action
}

// Create creates a certificate.
func (c CertificateClient) Create(ctx context.Context, opts CertificateCreateOpts) (CertificateCreateResult, *Response, error) {
	var result CertificateCreateResult
	if opts.Name == "" {
		return result, nil, missingField("name")
	}

	var body struct {
		Certificate *Certificate `json:"certificate"`
		Action      *Action      `json:"action"`
	}
	resp, err := c.client.do(ctx, http.MethodPost, "/certificates", nil, opts, &body)
	if err != nil {
		return result, resp, err
	}
	result.Certificate = body.Certificate
	result.Action = body.Action
	return result, resp, nil
}

// CertificateUpdateOpts holds the fields changed by a certificate update.
// Only set fields are sent.
type CertificateUpdateOpts struct {
	Name   string            `json:"name,omitempty"`
	Labels map[string]string `json:"labels,omitempty"`
}

// Update changes the name or labels of a certificate.
func (c CertificateClient) Update(ctx context.Context, id int64, opts CertificateUpdateOpts) (*Certificate, *Response, error) {
	var body struct {
		Certificate *Certificate `json:"certificate"`
	}
	resp, err := c.client.do(ctx, http.MethodPut, fmt.Sprintf("/certificates/%d", id), nil, opts, &body)
	if err != nil {
		return nil, resp, err
	}
	return body.Certificate, resp, nil
}

// Delete deletes a certificate.
func (c CertificateClient) Delete(ctx context.Context, id int64) (*Response, error) {
	return c.client.do(ctx, http.MethodDelete, fmt.Sprintf("/certificates/%d", id), nil, nil, nil)
}

// CertificateActionClient provides the certificate action operations.
type CertificateActionClient struct {
	client *Client
}

// RetryIssuance retries the issuance or renewal of a managed certificate
// whose last attempt failed.
func (c CertificateActionClient) RetryIssuance(ctx context.Context, id int64) (*Action, *Response, error) {
	var body struct {
		Action *Action `json:"action"`
	}
	resp, err := c.client.do(ctx, http.MethodPost, fmt.Sprintf("/certificates/%d/actions/retry", id), nil, nil, &body)
	if err != nil {
		return nil, resp, err
	}
	return body.Action, resp, nil
}
