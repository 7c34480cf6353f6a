package hcapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// VolumeStatus is the lifecycle state of a volume.
type VolumeStatus string

const (
	VolumeStatusCreating  VolumeStatus = "creating"
	VolumeStatusAvailable VolumeStatus = "available"
)

// Volume is a block storage volume.
type Volume struct {
	ID          int64             `json:"id"`
	Name        string            `json:"name"`
	Status      VolumeStatus      `json:"status"`
	Server      *int64            `json:"server"`
	Location    Location          `json:"location"`
	Size        int               `json:"size"`
	Format      *string           `json:"format"`
	LinuxDevice string            `json:"linux_device"`
	Protection  VolumeProtection  `json:"protection"`
	Labels      map[string]string `json:"labels"`
	Created     time.Time         `json:"created"`
}

// VolumeProtection holds the delete protection flag of a volume.
type VolumeProtection struct {
	Delete bool `json:"delete"`
}

// VolumeClient provides access to volumes.
type VolumeClient struct {
	client *Client

	// Action exposes the volume-specific action operations.
	Action VolumeActionClient
}

// VolumeListOpts holds filter parameters for listing volumes.
type VolumeListOpts struct {
	ListOpts
	Name   string
	Status []VolumeStatus
}

func (o VolumeListOpts) values() url.Values {
	v := o.ListOpts.values()
	if o.Name != "" {
		v.Set("name", o.Name)
	}
	for _, s := range o.Status {
		v.Add("status", string(s))
	}
	return v
}

// Get retrieves a volume by id.
func (c VolumeClient) Get(ctx context.Context, id int64) (*Volume, *Response, error) {
	var body struct {
		Volume *Volume `json:"volume"`
	}
	resp, err := c.client.do(ctx, http.MethodGet, fmt.Sprintf("/volumes/%d", id), nil, nil, &body)
	if err != nil {
		return nil, resp, err
	}
	return body.Volume, resp, nil
}

// GetByName retrieves a volume by name. Returns nil without an error when
// no volume matches.
func (c VolumeClient) GetByName(ctx context.Context, name string) (*Volume, *Response, error) {
	volumes, resp, err := c.List(ctx, VolumeListOpts{Name: name})
	if err != nil || len(volumes) == 0 {
		return nil, resp, err
	}
	return volumes[0], resp, nil
}

// List returns a page of volumes.
func (c VolumeClient) List(ctx context.Context, opts VolumeListOpts) ([]*Volume, *Response, error) {
	var body struct {
		Volumes []*Volume `json:"volumes"`
	}
	resp, err := c.client.do(ctx, http.MethodGet, "/volumes", opts.values(), nil, &body)
	if err != nil {
		return nil, resp, err
	}
	return body.Volumes, resp, nil
}

// All returns all volumes.
func (c VolumeClient) All(ctx context.Context) ([]*Volume, error) {
	return allPages(func(page int) ([]*Volume, *Response, error) {
		return c.List(ctx, VolumeListOpts{ListOpts: ListOpts{Page: page}})
	})
}

// VolumeCreateOpts holds all parameters for creating a volume. Name and
// Size are required; the volume needs either a Location or a Server to
// determine placement, which the API enforces.
type VolumeCreateOpts struct {
	Name      string            `json:"name"`
	Size      int               `json:"size"`
	Server    int64             `json:"server,omitempty"`
	Location  string            `json:"location,omitempty"`
	Automount *bool             `json:"automount,omitempty"`
	Format    *string           `json:"format,omitempty"`
	Labels    map[string]string `json:"labels,omitempty"`
}

// VolumeCreateResult is the result of a volume create call.
type VolumeCreateResult struct {
	Volume      *Volume
	Action      *Action
	NextActions []*Action
}

// Create creates a volume.
func (c VolumeClient) Create(ctx context.Context, opts VolumeCreateOpts) (VolumeCreateResult, *Response, error) {
	var result VolumeCreateResult
	if opts.Name == "" {
		return result, nil, missingField("name")
	}
	if opts.Size == 0 {
		return result, nil, missingField("size")
	}

	var body struct {
		Volume      *Volume   `json:"volume"`
		Action      *Action   `json:"action"`
		NextActions []*Action `json:"next_actions"`
	}
	resp, err := c.client.do(ctx, http.MethodPost, "/volumes", nil, opts, &body)
	if err != nil {
		return result, resp, err
	}
	result.Volume = body.Volume
	result.Action = body.Action
	result.NextActions = body.NextActions
	return result, resp, nil
}

// VolumeUpdateOpts holds the fields changed by a volume update. Only set
// fields are sent.
type VolumeUpdateOpts struct {
	Name   string            `json:"name,omitempty"`
	Labels map[string]string `json:"labels,omitempty"`
}

// Update changes the name or labels of a volume.
func (c VolumeClient) Update(ctx context.Context, id int64, opts VolumeUpdateOpts) (*Volume, *Response, error) {
	var body struct {
		Volume *Volume `json:"volume"`
	}
	resp, err := c.client.do(ctx, http.MethodPut, fmt.Sprintf("/volumes/%d", id), nil, opts, &body)
	if err != nil {
		return nil, resp, err
	}
	return body.Volume, resp, nil
}

// Delete deletes a volume. The volume must be detached.
func (c VolumeClient) Delete(ctx context.Context, id int64) (*Response, error) {
	return c.client.do(ctx, http.MethodDelete, fmt.Sprintf("/volumes/%d", id), nil, nil, nil)
}

// VolumeActionClient provides the volume action operations.
type VolumeActionClient struct {
	client *Client
}

func (c VolumeActionClient) doAction(ctx context.Context, volumeID int64, command string, opts any) (*Action, *Response, error) {
	var body struct {
		Action *Action `json:"action"`
	}
	path := fmt.Sprintf("/volumes/%d/actions/%s", volumeID, command)
	resp, err := c.client.do(ctx, http.MethodPost, path, nil, opts, &body)
	if err != nil {
		return nil, resp, err
	}
	return body.Action, resp, nil
}

// VolumeAttachOpts holds parameters for attaching a volume to a server.
type VolumeAttachOpts struct {
	Server    int64 `json:"server"`
	Automount *bool `json:"automount,omitempty"`
}

// Attach attaches a volume to a server.
func (c VolumeActionClient) Attach(ctx context.Context, volumeID int64, opts VolumeAttachOpts) (*Action, *Response, error) {
	return c.doAction(ctx, volumeID, "attach", opts)
}

// Detach detaches a volume from its server.
func (c VolumeActionClient) Detach(ctx context.Context, volumeID int64) (*Action, *Response, error) {
	return c.doAction(ctx, volumeID, "detach", nil)
}

// VolumeResizeOpts holds the new size of a volume. Volumes only grow.
type VolumeResizeOpts struct {
	Size int `json:"size"`
}

// Resize grows a volume to the given size in GB.
func (c VolumeActionClient) Resize(ctx context.Context, volumeID int64, opts VolumeResizeOpts) (*Action, *Response, error) {
	return c.doAction(ctx, volumeID, "resize", opts)
}

// VolumeChangeProtectionOpts holds the protection flags to change.
type VolumeChangeProtectionOpts struct {
	Delete *bool `json:"delete,omitempty"`
}

// ChangeProtection changes the delete protection of a volume.
func (c VolumeActionClient) ChangeProtection(ctx context.Context, volumeID int64, opts VolumeChangeProtectionOpts) (*Action, *Response, error) {
	return c.doAction(ctx, volumeID, "change_protection", opts)
}
