package hcapi

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFirewallClient_Create_WithRules(t *testing.T) {
	ts := newTestServer()
	defer ts.close()

	ts.handleFunc("/firewalls", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		var req FirewallCreateOpts
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "web", req.Name)
		require.Len(t, req.Rules, 1)
		assert.Equal(t, FirewallRuleDirectionIn, req.Rules[0].Direction)

		jsonResponse(w, http.StatusCreated, map[string]interface{}{
			"firewall": map[string]interface{}{"id": 9, "name": "web"},
			"actions": []interface{}{
				map[string]interface{}{"id": 50, "command": "set_firewall_rules", "status": "running"},
			},
		})
	})

	client := ts.client()
	port := "443"
	result, _, err := client.Firewall.Create(context.Background(), FirewallCreateOpts{
		Name: "web",
		Rules: []FirewallRule{{
			Direction: FirewallRuleDirectionIn,
			Protocol:  FirewallRuleProtocolTCP,
			Port:      &port,
			SourceIPs: []string{"0.0.0.0/0", "::/0"},
		}},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(9), result.Firewall.ID)
	require.Len(t, result.Actions, 1)
	assert.Equal(t, "set_firewall_rules", result.Actions[0].Command)
}

func TestFirewallActionClient_SetRules(t *testing.T) {
	ts := newTestServer()
	defer ts.close()

	ts.handleFunc("/firewalls/9/actions/set_rules", func(w http.ResponseWriter, r *http.Request) {
		var req FirewallSetRulesOpts
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Empty(t, req.Rules)

		jsonResponse(w, http.StatusCreated, map[string]interface{}{
			"actions": []interface{}{
				map[string]interface{}{"id": 51, "command": "set_firewall_rules", "status": "running"},
				map[string]interface{}{"id": 52, "command": "apply_firewall", "status": "running"},
			},
		})
	})

	client := ts.client()
	actions, _, err := client.Firewall.Action.SetRules(context.Background(), 9, FirewallSetRulesOpts{})
	require.NoError(t, err)
	require.Len(t, actions, 2, "one action per affected resource")
}

func TestFirewallActionClient_ApplyToResources(t *testing.T) {
	ts := newTestServer()
	defer ts.close()

	ts.handleFunc("/firewalls/9/actions/apply_to_resources", func(w http.ResponseWriter, r *http.Request) {
		var req FirewallApplyResourcesOpts
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.ApplyTo, 1)
		assert.Equal(t, "server", req.ApplyTo[0].Type)
		assert.Equal(t, int64(42), req.ApplyTo[0].Server.ID)

		jsonResponse(w, http.StatusCreated, map[string]interface{}{
			"actions": []interface{}{
				map[string]interface{}{"id": 53, "command": "apply_firewall", "status": "running"},
			},
		})
	})

	client := ts.client()
	actions, _, err := client.Firewall.Action.ApplyToResources(context.Background(), 9, []FirewallResource{
		{Type: "server", Server: &FirewallResourceServer{ID: 42}},
	})
	require.NoError(t, err)
	require.Len(t, actions, 1)
}
