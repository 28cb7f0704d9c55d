package api_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allDayHours = map[string][]string{
	"Seg": {"09:00", "10:00"},
	"Ter": {"09:00", "10:00"},
	"Qua": {"09:00", "10:00"},
	"Qui": {"09:00", "10:00"},
	"Sex": {"09:00", "10:00"},
	"Sáb": {"09:00", "10:00"},
	"Dom": {"09:00", "10:00"},
}

// setupTenant saves a profile and one service for the shared test owner.
func setupTenant(t *testing.T) {
	t.Helper()

	profileResp := makeRequest("PUT", "/profile", map[string]interface{}{
		"name":       fmt.Sprintf("Estúdio Teste %s", ownerID[:8]),
		"whatsapp":   "(11) 98765-4321",
		"work_hours": allDayHours,
	}, authToken)
	require.True(t, profileResp.IsSuccess(), "profile save failed: %s", profileResp.Message)

	catalogResp := makeRequest("PUT", "/catalog/services", []map[string]interface{}{
		{"id": "temp_1", "name": "Corte", "price": 80, "duration": "60 min"},
	}, authToken)
	require.True(t, catalogResp.IsSuccess(), "catalog sync failed: %s", catalogResp.Message)
}

// firstServiceID reads the persisted service ID off the public bundle.
func firstServiceID(t *testing.T) string {
	t.Helper()

	bundleResp := makeRequest("GET", "/tenants/"+ownerID, nil, "")
	require.True(t, bundleResp.IsSuccess(), "bundle fetch failed: %s", bundleResp.Message)

	services, ok := bundleResp.Data["services"].([]interface{})
	require.True(t, ok, "bundle has no services: %s", bundleResp.RawData)
	require.NotEmpty(t, services)

	svc := services[0].(map[string]interface{})
	id, _ := svc["id"].(string)
	require.NotEmpty(t, id)
	return id
}

func TestBookingFlow(t *testing.T) {
	setupTenant(t)
	serviceID := firstServiceID(t)

	startResp := makeRequest("POST", fmt.Sprintf("/booking/%s/sessions", ownerID), nil, "")
	require.True(t, startResp.IsSuccess(), "session start failed: %s", startResp.Message)
	sessionID := startResp.GetString("session_id")
	require.NotEmpty(t, sessionID)
	assert.Equal(t, "services", startResp.GetString("step"))

	// Advancing with nothing selected is rejected.
	emptyNext := makeRequest("POST", fmt.Sprintf("/booking-sessions/%s/next", sessionID), nil, "")
	assert.Equal(t, http.StatusUnprocessableEntity, emptyNext.StatusCode)

	toggleResp := makeRequest("POST", fmt.Sprintf("/booking-sessions/%s/services", sessionID), map[string]string{
		"service_id": serviceID,
	}, "")
	require.True(t, toggleResp.IsSuccess(), "toggle failed: %s", toggleResp.Message)

	nextResp := makeRequest("POST", fmt.Sprintf("/booking-sessions/%s/next", sessionID), nil, "")
	require.True(t, nextResp.IsSuccess())
	assert.Equal(t, "client_info", nextResp.GetString("step"))

	clientResp := makeRequest("PUT", fmt.Sprintf("/booking-sessions/%s/client", sessionID), map[string]string{
		"name":  "Maria",
		"phone": "11987654321",
	}, "")
	require.True(t, clientResp.IsSuccess(), "client info failed: %s", clientResp.Message)
	assert.Equal(t, "(11) 98765-4321", clientResp.GetString("client_phone"))

	nextResp = makeRequest("POST", fmt.Sprintf("/booking-sessions/%s/next", sessionID), nil, "")
	require.True(t, nextResp.IsSuccess())
	assert.Equal(t, "schedule", nextResp.GetString("step"))

	availResp := makeRequest("GET", fmt.Sprintf("/booking/%s/availability", ownerID), nil, "")
	require.True(t, availResp.IsSuccess(), "availability failed: %s", availResp.Message)

	var window []struct {
		FullDate string   `json:"full_date"`
		Times    []string `json:"times"`
	}
	require.NoError(t, json.Unmarshal([]byte(availResp.RawData), &window))
	require.NotEmpty(t, window)

	// Pick a day with open times, skipping today in case its slots have
	// already passed.
	var day, slot string
	for _, d := range window[1:] {
		if len(d.Times) > 0 {
			day, slot = d.FullDate, d.Times[0]
			break
		}
	}
	require.NotEmpty(t, day, "no open day in the window")

	dayResp := makeRequest("PUT", fmt.Sprintf("/booking-sessions/%s/day", sessionID), map[string]string{
		"date": day,
	}, "")
	require.True(t, dayResp.IsSuccess(), "day select failed: %s", dayResp.Message)

	timeResp := makeRequest("PUT", fmt.Sprintf("/booking-sessions/%s/time", sessionID), map[string]string{
		"time": slot,
	}, "")
	require.True(t, timeResp.IsSuccess(), "time select failed: %s", timeResp.Message)

	submitResp := makeRequest("POST", fmt.Sprintf("/booking-sessions/%s/submit", sessionID), nil, "")
	require.True(t, submitResp.IsSuccess(), "submit failed: %s", submitResp.Message)
	assert.Contains(t, submitResp.GetString("whatsapp_url"), "https://wa.me/")

	apt, ok := submitResp.Data["appointment"].(map[string]interface{})
	require.True(t, ok)
	aptID, _ := apt["id"].(string)
	require.NotEmpty(t, aptID)

	// The slot is now taken for everyone else.
	secondStart := makeRequest("POST", fmt.Sprintf("/booking/%s/sessions", ownerID), nil, "")
	require.True(t, secondStart.IsSuccess())
	secondSession := secondStart.GetString("session_id")
	makeRequest("POST", fmt.Sprintf("/booking-sessions/%s/services", secondSession), map[string]string{"service_id": serviceID}, "")
	makeRequest("POST", fmt.Sprintf("/booking-sessions/%s/next", secondSession), nil, "")
	makeRequest("PUT", fmt.Sprintf("/booking-sessions/%s/client", secondSession), map[string]string{"name": "Joana", "phone": "11911112222"}, "")
	makeRequest("POST", fmt.Sprintf("/booking-sessions/%s/next", secondSession), nil, "")
	conflictDay := makeRequest("PUT", fmt.Sprintf("/booking-sessions/%s/day", secondSession), map[string]string{"date": day}, "")
	require.True(t, conflictDay.IsSuccess())
	conflictTime := makeRequest("PUT", fmt.Sprintf("/booking-sessions/%s/time", secondSession), map[string]string{"time": slot}, "")
	assert.Equal(t, http.StatusUnprocessableEntity, conflictTime.StatusCode, "booked slot no longer selectable")

	// The owner sees the booking with its acknowledgement link.
	listResp := makeRequest("GET", "/appointments", nil, authToken)
	require.True(t, listResp.IsSuccess(), "list failed: %s", listResp.Message)
	assert.Contains(t, listResp.RawData, aptID)
	assert.Contains(t, listResp.RawData, "whatsapp_url")

	statsResp := makeRequest("GET", "/appointments/stats", nil, authToken)
	require.True(t, statsResp.IsSuccess(), "stats failed: %s", statsResp.Message)

	deleteResp := makeRequest("DELETE", "/appointments/"+aptID, nil, authToken)
	require.True(t, deleteResp.IsSuccess(), "delete failed: %s", deleteResp.Message)

	again := makeRequest("DELETE", "/appointments/"+aptID, nil, authToken)
	assert.Equal(t, http.StatusNotFound, again.StatusCode)
}
