package hcapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// ImageType is the kind of an image.
type ImageType string

const (
	ImageTypeSystem    ImageType = "system"
	ImageTypeSnapshot  ImageType = "snapshot"
	ImageTypeBackup    ImageType = "backup"
	ImageTypeTemporary ImageType = "temporary"
)

// ImageStatus is the availability state of an image.
type ImageStatus string

const (
	ImageStatusAvailable   ImageStatus = "available"
	ImageStatusCreating    ImageStatus = "creating"
	ImageStatusUnavailable ImageStatus = "unavailable"
)

// Image is a system image, snapshot, or backup.
type Image struct {
	ID           int64             `json:"id"`
	Type         ImageType         `json:"type"`
	Status       ImageStatus       `json:"status"`
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	ImageSize    float64           `json:"image_size"`
	DiskSize     float64           `json:"disk_size"`
	Created      time.Time         `json:"created"`
	CreatedFrom  *ActionResource   `json:"created_from"`
	BoundTo      *int64            `json:"bound_to"`
	OSFlavor     string            `json:"os_flavor"`
	OSVersion    string            `json:"os_version"`
	Architecture string            `json:"architecture"`
	RapidDeploy  bool              `json:"rapid_deploy"`
	Protection   ImageProtection   `json:"protection"`
	Deprecated   *time.Time        `json:"deprecated"`
	Labels       map[string]string `json:"labels"`
}

// ImageProtection holds the delete protection flag of an image.
type ImageProtection struct {
	Delete bool `json:"delete"`
}

// ImageClient provides access to images.
type ImageClient struct {
	client *Client

	// Action exposes the image-specific action operations.
	Action ImageActionClient
}

// ImageListOpts holds filter parameters for listing images.
type ImageListOpts struct {
	ListOpts
	Name         string
	Type         []ImageType
	Status       []ImageStatus
	BoundTo      string
	Architecture []string
}

func (o ImageListOpts) values() url.Values {
	v := o.ListOpts.values()
	if o.Name != "" {
		v.Set("name", o.Name)
	}
	for _, t := range o.Type {
		v.Add("type", string(t))
	}
	for _, s := range o.Status {
		v.Add("status", string(s))
	}
	if o.BoundTo != "" {
		v.Set("bound_to", o.BoundTo)
	}
	for _, a := range o.Architecture {
		v.Add("architecture", a)
	}
	return v
}

// Get retrieves an image by id.
func (c ImageClient) Get(ctx context.Context, id int64) (*Image, *Response, error) {
	var body struct {
		Image *Image `json:"image"`
	}
	resp, err := c.client.do(ctx, http.MethodGet, fmt.Sprintf("/images/%d", id), nil, nil, &body)
	if err != nil {
		return nil, resp, err
	}
	return body.Image, resp, nil
}

// GetByName retrieves a system image by name. Returns nil without an error
// when no image matches.
func (c ImageClient) GetByName(ctx context.Context, name string) (*Image, *Response, error) {
	images, resp, err := c.List(ctx, ImageListOpts{Name: name})
	if err != nil || len(images) == 0 {
		return nil, resp, err
	}
	return images[0], resp, nil
}

// List returns a page of images.
func (c ImageClient) List(ctx context.Context, opts ImageListOpts) ([]*Image, *Response, error) {
	var body struct {
		Images []*Image `json:"images"`
	}
	resp, err := c.client.do(ctx, http.MethodGet, "/images", opts.values(), nil, &body)
	if err != nil {
		return nil, resp, err
	}
	return body.Images, resp, nil
}

// All returns all images.
func (c ImageClient) All(ctx context.Context) ([]*Image, error) {
	return allPages(func(page int) ([]*Image, *Response, error) {
		return c.List(ctx, ImageListOpts{ListOpts: ListOpts{Page: page}})
	})
}

// ImageUpdateOpts holds the fields changed by an image update. Only set
// fields are sent.
type ImageUpdateOpts struct {
	Description *string           `json:"description,omitempty"`
	Type        ImageType         `json:"type,omitempty"`
	Labels      map[string]string `json:"labels,omitempty"`
}

// Update changes the description, type, or labels of an image.
func (c ImageClient) Update(ctx context.Context, id int64, opts ImageUpdateOpts) (*Image, *Response, error) {
	var body struct {
		Image *Image `json:"image"`
	}
	resp, err := c.client.do(ctx, http.MethodPut, fmt.Sprintf("/images/%d", id), nil, opts, &body)
	if err != nil {
		return nil, resp, err
	}
	return body.Image, resp, nil
}

// Delete deletes an image. Only snapshots and backups can be deleted.
func (c ImageClient) Delete(ctx context.Context, id int64) (*Response, error) {
	return c.client.do(ctx, http.MethodDelete, fmt.Sprintf("/images/%d", id), nil, nil, nil)
}

// ImageActionClient provides the image action operations.
type ImageActionClient struct {
	client *Client
}

// ImageChangeProtectionOpts holds the protection flags to change.
type ImageChangeProtectionOpts struct {
	Delete *bool `json:"delete,omitempty"`
}

// ChangeProtection changes the delete protection of an image.
func (c ImageActionClient) ChangeProtection(ctx context.Context, id int64, opts ImageChangeProtectionOpts) (*Action, *Response, error) {
	var body struct {
		Action *Action `json:"action"`
	}
	resp, err := c.client.do(ctx, http.MethodPost, fmt.Sprintf("/images/%d/actions/change_protection", id), nil, opts, &body)
	if err != nil {
		return nil, resp, err
	}
	return body.Action, resp, nil
}
