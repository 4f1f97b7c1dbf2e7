//go:build staging

package staging

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
)

// TestUserEndpoints exercises the user profile and pro status flows
func TestUserEndpoints(t *testing.T) {
	userID := "staging-smoke-user"

	t.Run("GetUser", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/users/%s", userID)
		resp, body := makeRequest(t, "GET", path, nil)

		// 200 or 404 are both valid (404 if user has no rides yet)
		if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNotFound {
			t.Errorf("Expected status 200 or 404, got %d. Body: %s", resp.StatusCode, string(body))
		}
	})

	t.Run("ProRoundTrip", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/users/%s/pro", userID)

		resp, body := makeRequest(t, "POST", path, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected status 200 on upgrade, got %d. Body: %s", resp.StatusCode, string(body))
		}

		resp, body = makeRequest(t, "DELETE", path, nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Expected status 200 on revoke, got %d. Body: %s", resp.StatusCode, string(body))
		}
	})

	t.Run("Streak", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/users/%s/streak", userID)
		resp, body := makeRequest(t, "GET", path, nil)

		if resp.StatusCode != http.StatusOK {
			t.Errorf("Expected status 200, got %d. Body: %s", resp.StatusCode, string(body))
		}

		var streak map[string]interface{}
		if err := json.Unmarshal(body, &streak); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if _, ok := streak["current_streak"]; !ok {
			t.Error("Expected 'current_streak' field in response")
		}
	})
}

// TestAchievementEndpoints exercises the achievement reads and share recording
func TestAchievementEndpoints(t *testing.T) {
	userID := "staging-smoke-user"

	t.Run("List", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/users/%s/achievements", userID)
		resp, body := makeRequest(t, "GET", path, nil)

		if resp.StatusCode != http.StatusOK {
			t.Errorf("Expected status 200, got %d. Body: %s", resp.StatusCode, string(body))
		}
	})

	t.Run("Notifications", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/users/%s/notifications", userID)
		resp, body := makeRequest(t, "GET", path, nil)

		if resp.StatusCode != http.StatusOK {
			t.Errorf("Expected status 200, got %d. Body: %s", resp.StatusCode, string(body))
		}

		resp, body = makeRequest(t, "POST", path+"/shown", nil)
		if resp.StatusCode != http.StatusOK {
			t.Errorf("Expected status 200, got %d. Body: %s", resp.StatusCode, string(body))
		}
	})
}
