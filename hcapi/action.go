package hcapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// ActionStatus is the lifecycle state of an Action.
type ActionStatus string

const (
	ActionStatusRunning ActionStatus = "running"
	ActionStatusSuccess ActionStatus = "success"
	ActionStatusError   ActionStatus = "error"
)

// Action is the server-side record of an asynchronous operation. It is
// created by state-mutating calls and transitions from running to exactly
// one terminal status; the transition is only observable by re-fetching.
type Action struct {
	ID        int64            `json:"id"`
	Command   string           `json:"command"`
	Status    ActionStatus     `json:"status"`
	Progress  int              `json:"progress"`
	Started   time.Time        `json:"started"`
	Finished  *time.Time       `json:"finished"`
	Error     *ActionError     `json:"error"`
	Resources []ActionResource `json:"resources"`
}

// IsTerminal reports whether the action has reached success or error.
// Terminal actions never change again.
func (a *Action) IsTerminal() bool {
	return a.Status == ActionStatusSuccess || a.Status == ActionStatusError
}

// ActionError is the failure detail of an action with status "error".
type ActionError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e ActionError) Error() string {
	return fmt.Sprintf("%s (%s)", e.Message, e.Code)
}

// ActionResource identifies a resource affected by an action.
type ActionResource struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

// ErrPollTimeout is returned (wrapped) by WaitFor when an action is still
// running after the poll timeout. An indefinitely running action is an
// operational failure the caller has to handle; the API never expires it.
var ErrPollTimeout = errors.New("action poll timed out")

// ActionClient provides access to actions and the polling helper.
type ActionClient struct {
	client *Client
}

// ActionListOpts holds filter parameters for listing actions.
type ActionListOpts struct {
	ListOpts
	Status []ActionStatus
}

func (o ActionListOpts) values() url.Values {
	v := o.ListOpts.values()
	for _, s := range o.Status {
		v.Add("status", string(s))
	}
	return v
}

// Get retrieves an action by id.
func (c ActionClient) Get(ctx context.Context, id int64) (*Action, *Response, error) {
	var body struct {
		Action *Action `json:"action"`
	}
	resp, err := c.client.do(ctx, http.MethodGet, fmt.Sprintf("/actions/%d", id), nil, nil, &body)
	if err != nil {
		return nil, resp, err
	}
	return body.Action, resp, nil
}

// List returns a page of actions.
func (c ActionClient) List(ctx context.Context, opts ActionListOpts) ([]*Action, *Response, error) {
	var body struct {
		Actions []*Action `json:"actions"`
	}
	resp, err := c.client.do(ctx, http.MethodGet, "/actions", opts.values(), nil, &body)
	if err != nil {
		return nil, resp, err
	}
	return body.Actions, resp, nil
}

// All returns all actions, walking every page.
func (c ActionClient) All(ctx context.Context) ([]*Action, error) {
	return allPages(func(page int) ([]*Action, *Response, error) {
		return c.List(ctx, ActionListOpts{ListOpts: ListOpts{Page: page}})
	})
}

type waitConfig struct {
	interval time.Duration
	timeout  time.Duration
}

// WaitOption configures a single WaitFor call.
type WaitOption func(*waitConfig)

// WaitInterval overrides the poll interval for one WaitFor call.
func WaitInterval(d time.Duration) WaitOption {
	return func(cfg *waitConfig) {
		cfg.interval = d
	}
}

// WaitTimeout overrides the poll timeout for one WaitFor call.
func WaitTimeout(d time.Duration) WaitOption {
	return func(cfg *waitConfig) {
		cfg.timeout = d
	}
}

// WaitFor polls an action until it reaches a terminal status and returns
// the final action. A successful action returns a nil error; a failed one
// returns the action error. When the action is still running after the
// poll timeout, the last observed action is returned together with an
// error wrapping ErrPollTimeout.
//
// Defaults for interval and timeout come from the client options
// WithPollInterval and WithPollTimeout.
func (c ActionClient) WaitFor(ctx context.Context, action *Action, opts ...WaitOption) (*Action, error) {
	cfg := waitConfig{
		interval: c.client.pollInterval,
		timeout:  c.client.pollTimeout,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	deadline := time.Now().Add(cfg.timeout)
	current := action
	for {
		switch current.Status {
		case ActionStatusSuccess:
			return current, nil
		case ActionStatusError:
			actionErr := error(errors.New("action failed without error detail"))
			if current.Error != nil {
				actionErr = *current.Error
			}
			return current, fmt.Errorf("action %d (%s) failed: %w", current.ID, current.Command, actionErr)
		}

		if time.Now().After(deadline) {
			return current, fmt.Errorf("action %d (%s) still running after %s: %w",
				current.ID, current.Command, cfg.timeout, ErrPollTimeout)
		}

		select {
		case <-ctx.Done():
			return current, ctx.Err()
		case <-time.After(cfg.interval):
		}

		next, _, err := c.Get(ctx, current.ID)
		if err != nil {
			return current, err
		}
		current = next
	}
}

// WaitForAll polls several actions sequentially until all are terminal.
// It stops at the first failure.
func (c ActionClient) WaitForAll(ctx context.Context, actions []*Action, opts ...WaitOption) error {
	for _, action := range actions {
		if _, err := c.WaitFor(ctx, action, opts...); err != nil {
			return err
		}
	}
	return nil
}
