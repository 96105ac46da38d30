package handlers

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/lingobridge/lingobridge/internal/models"
	"github.com/lingobridge/lingobridge/internal/pool"
)

func TestHandler_ClusterStatus(t *testing.T) {
	upstream := httptest.NewServer(httptestModelsHandler())
	defer upstream.Close()

	th := newTestHandler()
	th.nodes.AddNode(upstream.URL, "Live Node")
	app := newTestApp(th)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/cluster/status", nil), -1)
	if err != nil {
		t.Fatalf("Failed to perform request: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var summary pool.Summary
	bodyBytes, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(bodyBytes, &summary); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if summary.TotalNodes != 2 {
		t.Errorf("Expected 2 nodes, got %d", summary.TotalNodes)
	}
	// The fixture node is unreachable, the httptest one answers
	if summary.OnlineNodes != 1 {
		t.Errorf("Expected 1 online node, got %d", summary.OnlineNodes)
	}
	if summary.Health != "healthy" {
		t.Errorf("Expected healthy cluster, got %s", summary.Health)
	}
}

func TestHandler_AddNode(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		expectedStatus int
	}{
		{
			name:           "valid_node",
			requestBody:    models.AddNodeRequest{URL: "http://10.0.0.5:8080", Name: "GPU Box"},
			expectedStatus: fiber.StatusCreated,
		},
		{
			name:           "missing_url",
			requestBody:    models.AddNodeRequest{Name: "No URL"},
			expectedStatus: fiber.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th := newTestHandler()
			app := newTestApp(th)

			status, body := postJSON(t, app, "/api/cluster/add", tt.requestBody)
			if status != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d: %s", tt.expectedStatus, status, string(body))
			}

			if tt.expectedStatus == fiber.StatusCreated {
				var resp map[string]string
				if err := json.Unmarshal(body, &resp); err != nil {
					t.Fatalf("Failed to unmarshal response: %v", err)
				}
				if resp["id"] != "node-2" {
					t.Errorf("Expected id node-2, got %s", resp["id"])
				}
				if th.nodes.Len() != 2 {
					t.Errorf("Expected pool of 2 nodes, got %d", th.nodes.Len())
				}
			}
		})
	}
}
