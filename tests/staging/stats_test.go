//go:build staging

package staging

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
)

// TestStatsEndpoints tests the stats read endpoints across key shapes
func TestStatsEndpoints(t *testing.T) {
	userID := "staging-smoke-user"

	t.Run("DefaultKey", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/users/%s/stats", userID)
		resp, body := makeRequest(t, "GET", path, nil)

		if resp.StatusCode != http.StatusOK {
			t.Errorf("Expected status 200, got %d. Body: %s", resp.StatusCode, string(body))
		}

		var result map[string]interface{}
		if err := json.Unmarshal(body, &result); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if len(result) == 0 {
			t.Error("Expected stats summary, got empty response")
		}
	})

	t.Run("WindowAndMode", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/users/%s/stats?window=1w&mode=train", userID)
		resp, body := makeRequest(t, "GET", path, nil)

		if resp.StatusCode != http.StatusOK {
			t.Errorf("Expected status 200, got %d. Body: %s", resp.StatusCode, string(body))
		}
	})

	t.Run("InvalidWindow", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/users/%s/stats?window=fortnight", userID)
		resp, _ := makeRequest(t, "GET", path, nil)

		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", resp.StatusCode)
		}
	})

	t.Run("DetailStats", func(t *testing.T) {
		path := fmt.Sprintf("/api/v1/users/%s/stats/details", userID)
		resp, body := makeRequest(t, "GET", path, nil)

		if resp.StatusCode != http.StatusOK {
			t.Errorf("Expected status 200, got %d. Body: %s", resp.StatusCode, string(body))
		}
	})
}

// TestLeaderboardEndpoints tests the global board and per-user rank reads
func TestLeaderboardEndpoints(t *testing.T) {
	t.Run("Board", func(t *testing.T) {
		resp, body := makeRequest(t, "GET", "/api/v1/leaderboards?window=allTime&category=rides", nil)

		if resp.StatusCode != http.StatusOK {
			t.Errorf("Expected status 200, got %d. Body: %s", resp.StatusCode, string(body))
		}

		var board map[string]interface{}
		if err := json.Unmarshal(body, &board); err != nil {
			t.Fatalf("Failed to unmarshal response: %v", err)
		}
		if _, ok := board["top100"]; !ok {
			t.Error("Expected 'top100' field in response")
		}
	})

	t.Run("UserRank", func(t *testing.T) {
		resp, body := makeRequest(t, "GET", "/api/v1/users/staging-smoke-user/rank?window=allTime&category=distance", nil)

		if resp.StatusCode != http.StatusOK {
			t.Errorf("Expected status 200, got %d. Body: %s", resp.StatusCode, string(body))
		}
	})

	t.Run("InvalidCategory", func(t *testing.T) {
		resp, _ := makeRequest(t, "GET", "/api/v1/leaderboards?category=speed", nil)

		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", resp.StatusCode)
		}
	})
}
