//go:build integration

package integration

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Domikas122/ITSM-System-VIKO/internal/testutil"
)

func loginAsSpecialist(t *testing.T, client *testutil.Client) {
	t.Helper()
	client.LoginAs(t, specialistUsername, specialistPassword)
}

func loginAsEmployee(t *testing.T, client *testutil.Client) {
	t.Helper()
	client.LoginAs(t, employeeUsername, employeePassword)
}

type incidentOption func(map[string]interface{})

func withCategory(category string) incidentOption {
	return func(m map[string]interface{}) {
		m["category"] = category
	}
}

func withSeverity(severity string) incidentOption {
	return func(m map[string]interface{}) {
		m["severity"] = severity
	}
}

func withDescription(description string) incidentOption {
	return func(m map[string]interface{}) {
		m["description"] = description
	}
}

// createTestIncident creates an incident and returns its ID. The incident is
// deleted on cleanup with a specialist client.
func createTestIncident(t *testing.T, client *testutil.Client, title string, opts ...incidentOption) string {
	t.Helper()

	payload := map[string]interface{}{
		"title":       title,
		"description": "Integration test incident description with enough detail.",
		"category":    "it",
		"severity":    "medium",
	}
	for _, opt := range opts {
		opt(payload)
	}

	resp, err := client.POST("/api/v1/incidents", payload)
	require.NoError(t, err)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create incident: status=%d body=%s", resp.StatusCode, testutil.ReadBody(t, resp))
	}

	var result struct {
		Data struct {
			Incident struct {
				ID string `json:"id"`
			} `json:"incident"`
		} `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &result)
	id := result.Data.Incident.ID
	require.NotEmpty(t, id)

	t.Cleanup(func() { deleteIncident(t, id) })
	return id
}

// deleteIncident removes an incident using a specialist client. Does not fail
// if the incident is already gone.
func deleteIncident(t *testing.T, id string) {
	t.Helper()
	client := newTestClient(t)
	loginAsSpecialist(t, client)

	resp, err := client.DELETE("/api/v1/incidents/" + id)
	if err != nil {
		t.Logf("cleanup warning (incident %s): %v", id, err)
		return
	}
	resp.Body.Close()
}

// transitionIncident moves an incident to the given status.
func transitionIncident(t *testing.T, client *testutil.Client, id, status string) {
	t.Helper()
	resp, err := client.PATCH("/api/v1/incidents/"+id+"/status", map[string]interface{}{
		"status": status,
	})
	require.NoError(t, err)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("transition to %s: status=%d body=%s", status, resp.StatusCode, testutil.ReadBody(t, resp))
	}
	resp.Body.Close()
}

// getIncident fetches incident details and returns the decoded envelope.
func getIncident(t *testing.T, client *testutil.Client, id string) incidentDetails {
	t.Helper()
	resp, err := client.GET("/api/v1/incidents/" + id)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Data incidentDetails `json:"data"`
	}
	testutil.DecodeJSON(t, resp, &result)
	return result.Data
}

type incidentDetails struct {
	Incident struct {
		ID         string   `json:"id"`
		Title      string   `json:"title"`
		Status     string   `json:"status"`
		Category   string   `json:"category"`
		Severity   string   `json:"severity"`
		ReportedBy string   `json:"reported_by"`
		AssignedTo *string  `json:"assigned_to"`
		AITags     []string `json:"ai_tags"`
		ResolvedAt *string  `json:"resolved_at"`
	} `json:"incident"`
	History []historyEntry `json:"history"`
	Similar []struct {
		ID         string  `json:"id"`
		Title      string  `json:"title"`
		Similarity float64 `json:"similarity"`
	} `json:"similarIncidents"`
}

type historyEntry struct {
	Action         string  `json:"action"`
	PreviousStatus *string `json:"previous_status"`
	NewStatus      *string `json:"new_status"`
	PerformedBy    string  `json:"performed_by"`
	Notes          *string `json:"notes"`
}
