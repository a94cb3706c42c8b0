//go:build integration

package integration

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Domikas122/ITSM-System-VIKO/internal/testutil"
)

func TestIncidentLifecycle(t *testing.T) {
	reporter := newTestClient(t)
	loginAsEmployee(t, reporter)

	specialist := newTestClient(t)
	loginAsSpecialist(t, specialist)

	id := createTestIncident(t, reporter, "Office firewall dropping all traffic")

	// new -> assigned defaults the assignee to the acting specialist
	transitionIncident(t, specialist, id, "assigned")
	details := getIncident(t, specialist, id)
	assert.Equal(t, "assigned", details.Incident.Status)
	require.NotNil(t, details.Incident.AssignedTo)
	assert.Equal(t, specialistID, *details.Incident.AssignedTo)
	assert.Nil(t, details.Incident.ResolvedAt)

	transitionIncident(t, specialist, id, "in_progress")
	transitionIncident(t, specialist, id, "resolved")

	details = getIncident(t, specialist, id)
	assert.Equal(t, "resolved", details.Incident.Status)
	require.NotNil(t, details.Incident.ResolvedAt)
	firstResolvedAt := *details.Incident.ResolvedAt

	// reopening keeps the original resolution timestamp
	transitionIncident(t, specialist, id, "in_progress")
	transitionIncident(t, specialist, id, "resolved")
	details = getIncident(t, specialist, id)
	require.NotNil(t, details.Incident.ResolvedAt)
	assert.Equal(t, firstResolvedAt, *details.Incident.ResolvedAt)

	transitionIncident(t, specialist, id, "closed")

	details = getIncident(t, specialist, id)
	assert.Equal(t, "closed", details.Incident.Status)

	// history comes back newest first; the status endpoint always records
	// status_change, the assigned action belongs to the assign endpoint
	actions := make([]string, 0, len(details.History))
	for _, entry := range details.History {
		actions = append(actions, entry.Action)
	}
	assert.Equal(t, []string{
		"status_change", "status_change", "status_change",
		"status_change", "status_change", "status_change", "created",
	}, actions)

	newest := details.History[0]
	require.NotNil(t, newest.PreviousStatus)
	require.NotNil(t, newest.NewStatus)
	assert.Equal(t, "resolved", *newest.PreviousStatus)
	assert.Equal(t, "closed", *newest.NewStatus)
}

func TestInvalidTransitionsRejected(t *testing.T) {
	client := newTestClient(t)
	loginAsSpecialist(t, client)

	id := createTestIncident(t, client, "Transition guard test incident")

	tests := []struct {
		name   string
		status string
		want   int
	}{
		{"cannot skip to in_progress", "in_progress", http.StatusBadRequest},
		{"cannot skip to resolved", "resolved", http.StatusBadRequest},
		{"cannot skip to closed", "closed", http.StatusBadRequest},
		{"unknown status", "archived", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := client.PATCH("/api/v1/incidents/"+id+"/status", map[string]string{
				"status": tt.status,
			})
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}

	t.Run("closed is terminal", func(t *testing.T) {
		for _, status := range []string{"assigned", "in_progress", "resolved", "closed"} {
			transitionIncident(t, client, id, status)
		}

		resp, err := client.PATCH("/api/v1/incidents/"+id+"/status", map[string]string{
			"status": "in_progress",
		})
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestAssignIncident(t *testing.T) {
	client := newTestClient(t)
	loginAsSpecialist(t, client)

	id := createTestIncident(t, client, "Assignment override test incident")

	resp, err := client.PATCH("/api/v1/incidents/"+id+"/assign", map[string]string{
		"assigneeId": specialistID,
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Data struct {
			Status     string  `json:"status"`
			AssignedTo *string `json:"assigned_to"`
		} `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &result)
	assert.Equal(t, "assigned", result.Data.Status)
	require.NotNil(t, result.Data.AssignedTo)
	assert.Equal(t, specialistID, *result.Data.AssignedTo)

	details := getIncident(t, client, id)
	require.NotEmpty(t, details.History)
	assert.Equal(t, "assigned", details.History[0].Action)

	t.Run("missing assignee rejected", func(t *testing.T) {
		resp, err := client.PATCH("/api/v1/incidents/"+id+"/assign", map[string]string{})
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestDeleteIncident(t *testing.T) {
	client := newTestClient(t)
	loginAsSpecialist(t, client)

	id := createTestIncident(t, client, "Deletion target incident for cleanup")

	resp, err := client.DELETE("/api/v1/incidents/" + id)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	getResp, err := client.GET("/api/v1/incidents/" + id)
	require.NoError(t, err)
	defer getResp.Body.Close()
	assert.Equal(t, http.StatusNotFound, getResp.StatusCode)
}
