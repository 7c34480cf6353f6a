package hcapi

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionClient_Get(t *testing.T) {
	ts := newTestServer()
	defer ts.close()

	ts.handleFunc("/actions/7", func(w http.ResponseWriter, _ *http.Request) {
		jsonResponse(w, http.StatusOK, map[string]interface{}{
			"action": map[string]interface{}{
				"id":       7,
				"command":  "create_server",
				"status":   "running",
				"progress": 50,
			},
		})
	})

	client := ts.client()
	action, _, err := client.Action.Get(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, int64(7), action.ID)
	assert.Equal(t, "create_server", action.Command)
	assert.Equal(t, ActionStatusRunning, action.Status)
	assert.Equal(t, 50, action.Progress)
	assert.False(t, action.IsTerminal())
}

func TestActionClient_WaitFor_Success(t *testing.T) {
	ts := newTestServer()
	defer ts.close()

	var polls atomic.Int32
	ts.handleFunc("/actions/1", func(w http.ResponseWriter, _ *http.Request) {
		n := polls.Add(1)
		status := "running"
		progress := int(n) * 30
		if n >= 3 {
			status = "success"
			progress = 100
		}
		jsonResponse(w, http.StatusOK, map[string]interface{}{
			"action": map[string]interface{}{
				"id":       1,
				"command":  "start_server",
				"status":   status,
				"progress": progress,
			},
		})
	})

	client := ts.client(WithPollInterval(time.Millisecond))
	start := &Action{ID: 1, Command: "start_server", Status: ActionStatusRunning}

	final, err := client.Action.WaitFor(context.Background(), start)
	require.NoError(t, err)

	assert.Equal(t, ActionStatusSuccess, final.Status)
	assert.Equal(t, 100, final.Progress)
	assert.True(t, final.IsTerminal())
	assert.GreaterOrEqual(t, polls.Load(), int32(3))
}

func TestActionClient_WaitFor_AlreadyTerminal(t *testing.T) {
	ts := newTestServer()
	defer ts.close()

	// No handler registered: a terminal action must not be re-fetched.
	client := ts.client()
	done := &Action{ID: 9, Command: "attach_volume", Status: ActionStatusSuccess, Progress: 100}

	final, err := client.Action.WaitFor(context.Background(), done)
	require.NoError(t, err)
	assert.Same(t, done, final)
}

func TestActionClient_WaitFor_ActionError(t *testing.T) {
	ts := newTestServer()
	defer ts.close()

	ts.handleFunc("/actions/2", func(w http.ResponseWriter, _ *http.Request) {
		jsonResponse(w, http.StatusOK, map[string]interface{}{
			"action": map[string]interface{}{
				"id":      2,
				"command": "create_server",
				"status":  "error",
				"error": map[string]interface{}{
					"code":    "resource_limit_exceeded",
					"message": "server limit exceeded",
				},
			},
		})
	})

	client := ts.client(WithPollInterval(time.Millisecond))
	start := &Action{ID: 2, Command: "create_server", Status: ActionStatusRunning}

	final, err := client.Action.WaitFor(context.Background(), start)
	require.Error(t, err)

	assert.Equal(t, ActionStatusError, final.Status)
	assert.Contains(t, err.Error(), "resource_limit_exceeded")

	var actionErr ActionError
	require.ErrorAs(t, err, &actionErr)
	assert.Equal(t, "resource_limit_exceeded", actionErr.Code)
}

func TestActionClient_WaitFor_PollTimeout(t *testing.T) {
	ts := newTestServer()
	defer ts.close()

	ts.handleFunc("/actions/3", func(w http.ResponseWriter, _ *http.Request) {
		jsonResponse(w, http.StatusOK, map[string]interface{}{
			"action": map[string]interface{}{
				"id": 3, "command": "create_server", "status": "running", "progress": 10,
			},
		})
	})

	client := ts.client()
	start := &Action{ID: 3, Command: "create_server", Status: ActionStatusRunning}

	last, err := client.Action.WaitFor(context.Background(), start,
		WaitInterval(time.Millisecond), WaitTimeout(20*time.Millisecond))
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrPollTimeout)
	require.NotNil(t, last)
	assert.Equal(t, ActionStatusRunning, last.Status, "last observed action is returned on timeout")
}

func TestActionClient_WaitFor_ContextCancelled(t *testing.T) {
	ts := newTestServer()
	defer ts.close()

	ts.handleFunc("/actions/4", func(w http.ResponseWriter, _ *http.Request) {
		jsonResponse(w, http.StatusOK, map[string]interface{}{
			"action": map[string]interface{}{
				"id": 4, "command": "create_server", "status": "running",
			},
		})
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := ts.client()
	start := &Action{ID: 4, Command: "create_server", Status: ActionStatusRunning}

	_, err := client.Action.WaitFor(ctx, start, WaitInterval(time.Second))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestActionClient_WaitForAll(t *testing.T) {
	ts := newTestServer()
	defer ts.close()

	ts.handleFunc("/actions/10", func(w http.ResponseWriter, _ *http.Request) {
		jsonResponse(w, http.StatusOK, map[string]interface{}{
			"action": map[string]interface{}{"id": 10, "status": "success", "progress": 100},
		})
	})
	ts.handleFunc("/actions/11", func(w http.ResponseWriter, _ *http.Request) {
		jsonResponse(w, http.StatusOK, map[string]interface{}{
			"action": map[string]interface{}{
				"id": 11, "status": "error",
				"error": map[string]interface{}{"code": "conflict", "message": "locked"},
			},
		})
	})

	client := ts.client(WithPollInterval(time.Millisecond))
	actions := []*Action{
		{ID: 10, Status: ActionStatusRunning},
		{ID: 11, Status: ActionStatusRunning},
	}

	err := client.Action.WaitForAll(context.Background(), actions)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "conflict")
}

func TestActionClient_List_StatusFilter(t *testing.T) {
	ts := newTestServer()
	defer ts.close()

	ts.handleFunc("/actions", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, []string{"running"}, r.URL.Query()["status"])
		jsonResponse(w, http.StatusOK, map[string]interface{}{
			"actions": []interface{}{
				map[string]interface{}{"id": 1, "status": "running"},
			},
		})
	})

	client := ts.client()
	actions, _, err := client.Action.List(context.Background(), ActionListOpts{
		Status: []ActionStatus{ActionStatusRunning},
	})
	require.NoError(t, err)
	require.Len(t, actions, 1)
	assert.Equal(t, ActionStatusRunning, actions[0].Status)
}
