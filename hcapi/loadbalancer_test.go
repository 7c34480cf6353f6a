package hcapi

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBalancerClient_Create(t *testing.T) {
	ts := newTestServer()
	defer ts.close()

	ts.handleFunc("/load_balancers", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		var req LoadBalancerCreateOpts
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "lb-1", req.Name)
		assert.Equal(t, "lb11", req.LoadBalancerType)
		require.Len(t, req.Services, 1)
		assert.Equal(t, 443, req.Services[0].ListenPort)

		jsonResponse(w, http.StatusCreated, map[string]interface{}{
			"load_balancer": map[string]interface{}{"id": 3, "name": "lb-1"},
			"action": map[string]interface{}{
				"id": 60, "command": "create_load_balancer", "status": "running",
			},
		})
	})

	client := ts.client()
	result, _, err := client.LoadBalancer.Create(context.Background(), LoadBalancerCreateOpts{
		Name:             "lb-1",
		LoadBalancerType: "lb11",
		Location:         "fsn1",
		Services: []LoadBalancerService{{
			Protocol:        LoadBalancerServiceProtocolHTTPS,
			ListenPort:      443,
			DestinationPort: 8443,
		}},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(3), result.LoadBalancer.ID)
	assert.Equal(t, "create_load_balancer", result.Action.Command)
}

func TestLoadBalancerClient_Create_MissingType(t *testing.T) {
	ts := newTestServer()
	defer ts.close()

	client := ts.client()
	_, _, err := client.LoadBalancer.Create(context.Background(), LoadBalancerCreateOpts{Name: "lb-1"})
	require.Error(t, err)
	assert.True(t, IsValidation(err))

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	require.Len(t, apiErr.Fields, 1)
	assert.Equal(t, "load_balancer_type", apiErr.Fields[0].Name)
}

func TestLoadBalancerActionClient_AddTarget(t *testing.T) {
	ts := newTestServer()
	defer ts.close()

	ts.handleFunc("/load_balancers/3/actions/add_target", func(w http.ResponseWriter, r *http.Request) {
		var req LoadBalancerTarget
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, LoadBalancerTargetTypeServer, req.Type)
		assert.Equal(t, int64(42), req.Server.ID)

		jsonResponse(w, http.StatusCreated, map[string]interface{}{
			"action": map[string]interface{}{
				"id": 61, "command": "add_target", "status": "running",
			},
		})
	})

	client := ts.client()
	action, _, err := client.LoadBalancer.Action.AddTarget(context.Background(), 3, LoadBalancerTarget{
		Type:   LoadBalancerTargetTypeServer,
		Server: &LoadBalancerTargetServer{ID: 42},
	})
	require.NoError(t, err)
	assert.Equal(t, "add_target", action.Command)
}

func TestLoadBalancerActionClient_ChangeType(t *testing.T) {
	ts := newTestServer()
	defer ts.close()

	ts.handleFunc("/load_balancers/3/actions/change_type", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			LoadBalancerType string `json:"load_balancer_type"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "lb21", req.LoadBalancerType)

		jsonResponse(w, http.StatusCreated, map[string]interface{}{
			"action": map[string]interface{}{
				"id": 62, "command": "change_load_balancer_type", "status": "running",
			},
		})
	})

	client := ts.client()
	action, _, err := client.LoadBalancer.Action.ChangeType(context.Background(), 3, LoadBalancerChangeTypeOpts{
		LoadBalancerType: "lb21",
	})
	require.NoError(t, err)
	assert.Equal(t, "change_load_balancer_type", action.Command)
}
