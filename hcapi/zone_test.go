package hcapi

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZoneClient_CreateAndGet(t *testing.T) {
	ts := newTestServer()
	defer ts.close()

	ts.handleFunc("/zones", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			var req ZoneCreateOpts
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "example.com", req.Name)

			jsonResponse(w, http.StatusCreated, map[string]interface{}{
				"zone": map[string]interface{}{
					"id": 5, "name": "example.com", "ttl": 3600, "status": "ok",
				},
			})
			return
		}
		jsonResponse(w, http.StatusOK, map[string]interface{}{"zones": []interface{}{}})
	})
	ts.handleFunc("/zones/5", func(w http.ResponseWriter, _ *http.Request) {
		jsonResponse(w, http.StatusOK, map[string]interface{}{
			"zone": map[string]interface{}{
				"id": 5, "name": "example.com", "ttl": 3600, "status": "ok",
			},
		})
	})

	client := ts.client()

	result, _, err := client.Zone.Create(context.Background(), ZoneCreateOpts{Name: "example.com"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), result.Zone.ID)

	zone, _, err := client.Zone.Get(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "example.com", zone.Name)
	assert.Equal(t, ZoneStatusOK, zone.Status)
}

func TestZoneRRSetClient_CreateThenList(t *testing.T) {
	ts := newTestServer()
	defer ts.close()

	created := false
	ts.handleFunc("/zones/5/rrsets", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			var req ZoneRRSetCreateOpts
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "www", req.Name)
			assert.Equal(t, RRSetTypeA, req.Type)
			require.Len(t, req.Records, 1)
			assert.Equal(t, "1.2.3.4", req.Records[0].Value)
			require.NotNil(t, req.TTL)
			assert.Equal(t, 3600, *req.TTL)

			created = true
			jsonResponse(w, http.StatusCreated, map[string]interface{}{
				"rrset": map[string]interface{}{
					"name": "www", "type": "A", "ttl": 3600,
					"records": []interface{}{map[string]interface{}{"value": "1.2.3.4"}},
				},
			})
			return
		}

		// list filtered by type must include the record created above
		if r.URL.Query().Get("type") == "A" && created {
			jsonResponse(w, http.StatusOK, map[string]interface{}{
				"rrsets": []interface{}{
					map[string]interface{}{
						"name": "www", "type": "A", "ttl": 3600,
						"records": []interface{}{map[string]interface{}{"value": "1.2.3.4"}},
					},
				},
			})
			return
		}
		jsonResponse(w, http.StatusOK, map[string]interface{}{"rrsets": []interface{}{}})
	})

	client := ts.client()
	ttl := 3600

	rrset, _, err := client.Zone.RRSet.Create(context.Background(), 5, ZoneRRSetCreateOpts{
		Name:    "www",
		Type:    RRSetTypeA,
		TTL:     &ttl,
		Records: []RRSetRecord{{Value: "1.2.3.4"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "www", rrset.Name)
	assert.Equal(t, RRSetTypeA, rrset.Type)

	rrsets, _, err := client.Zone.RRSet.List(context.Background(), 5, ZoneRRSetListOpts{Type: RRSetTypeA})
	require.NoError(t, err)
	require.Len(t, rrsets, 1)
	assert.Equal(t, "www", rrsets[0].Name)
}

func TestZoneRRSetClient_Create_MissingRequiredField(t *testing.T) {
	ts := newTestServer()
	defer ts.close()

	client := ts.client()

	tests := []struct {
		field string
		opts  ZoneRRSetCreateOpts
	}{
		{"name", ZoneRRSetCreateOpts{Type: RRSetTypeA, Records: []RRSetRecord{{Value: "1.2.3.4"}}}},
		{"type", ZoneRRSetCreateOpts{Name: "www", Records: []RRSetRecord{{Value: "1.2.3.4"}}}},
		{"records", ZoneRRSetCreateOpts{Name: "www", Type: RRSetTypeA}},
	}

	for _, tt := range tests {
		_, _, err := client.Zone.RRSet.Create(context.Background(), 5, tt.opts)
		require.Error(t, err, "field %s", tt.field)
		assert.True(t, IsValidation(err))

		var apiErr *Error
		require.ErrorAs(t, err, &apiErr)
		require.Len(t, apiErr.Fields, 1)
		assert.Equal(t, tt.field, apiErr.Fields[0].Name)
	}
}

func TestZoneRRSetClient_LowTTLRejectedByServer(t *testing.T) {
	ts := newTestServer()
	defer ts.close()

	ts.handleFunc("/zones/5/rrsets", func(w http.ResponseWriter, _ *http.Request) {
		jsonResponse(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error": map[string]interface{}{
				"code":    "invalid_input",
				"message": "invalid input in field 'ttl'",
				"details": map[string]interface{}{
					"fields": []interface{}{
						map[string]interface{}{"name": "ttl", "messages": []interface{}{"must be at least 60"}},
					},
				},
			},
		})
	})

	client := ts.client()
	ttl := 30

	// the client sends low TTLs as-is, rejection is server-side
	_, _, err := client.Zone.RRSet.Create(context.Background(), 5, ZoneRRSetCreateOpts{
		Name:    "www",
		Type:    RRSetTypeA,
		TTL:     &ttl,
		Records: []RRSetRecord{{Value: "1.2.3.4"}},
	})
	require.Error(t, err)
	require.True(t, IsValidation(err))

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	require.Len(t, apiErr.Fields, 1)
	assert.Equal(t, "ttl", apiErr.Fields[0].Name)
}

func TestZoneRRSetClient_GetByNameAndType(t *testing.T) {
	ts := newTestServer()
	defer ts.close()

	ts.handleFunc("/zones/5/rrsets/www/A", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		jsonResponse(w, http.StatusOK, map[string]interface{}{
			"rrset": map[string]interface{}{
				"name": "www", "type": "A",
				"records": []interface{}{map[string]interface{}{"value": "1.2.3.4"}},
			},
		})
	})

	client := ts.client()
	rrset, _, err := client.Zone.RRSet.Get(context.Background(), 5, "www", RRSetTypeA)
	require.NoError(t, err)
	assert.Equal(t, RRSetTypeA, rrset.Type)
	require.Len(t, rrset.Records, 1)
}

func TestZoneRRSetClient_Delete(t *testing.T) {
	ts := newTestServer()
	defer ts.close()

	ts.handleFunc("/zones/5/rrsets/www/A", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	})

	client := ts.client()
	_, err := client.Zone.RRSet.Delete(context.Background(), 5, "www", RRSetTypeA)
	require.NoError(t, err)
}
