package main

import (
	"fmt"
	"net/http"
	"time"
)

type HealthCheckCommand struct{}

func (c *HealthCheckCommand) Name() string {
	return "health-check"
}

func (c *HealthCheckCommand) Description() string {
	return "Check application health"
}

func (c *HealthCheckCommand) Run(args []string) error {
	baseURL := getEnv("HEALTH_CHECK_URL", "http://localhost:8080")
	if len(args) > 0 {
		baseURL = args[0]
	}

	PrintHeader(fmt.Sprintf("Health Check (%s)", baseURL))

	start := time.Now()
	if err := checkHealth(baseURL); err != nil {
		PrintError("Health check failed: %v", err)
		return err
	}
	duration := time.Since(start)

	if duration > 1*time.Second {
		PrintWarning("Health check warning: slow response time (%v)", duration)
	} else {
		PrintSuccess("Health check passed (response time: %v)", duration)
	}

	return nil
}

func checkHealth(baseURL string) error {
	client := &http.Client{Timeout: 10 * time.Second}

	resp, err := client.Get(baseURL + "/healthz")
	if err != nil {
		return fmt.Errorf("healthz unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("healthz returned status %d", resp.StatusCode)
	}

	resp, err = client.Get(baseURL + "/readyz")
	if err != nil {
		return fmt.Errorf("readyz unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("readyz returned status %d", resp.StatusCode)
	}

	return nil
}
