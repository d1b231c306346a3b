package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"
)

// checkcli queries a running netstatus server and prints the current state
// and window statistics.
func main() {
	api := os.Getenv("API_BASE")
	if api == "" {
		api = "http://localhost:8080"
	}
	client := &http.Client{Timeout: 5 * time.Second}

	var status struct {
		State     string     `json:"state"`
		CheckedAt *time.Time `json:"checked_at"`
	}
	if err := getJSON(client, api+"/api/status", &status); err != nil {
		fmt.Fprintln(os.Stderr, "Error contacting API:", err)
		os.Exit(1)
	}

	var stats struct {
		TotalChecks       int     `json:"total_checks"`
		GatewayDownCount  int     `json:"gateway_down_count"`
		InternetDownCount int     `json:"internet_down_count"`
		UptimePercent     float64 `json:"uptime_percent"`
	}
	if err := getJSON(client, api+"/api/stats", &stats); err != nil {
		fmt.Fprintln(os.Stderr, "Error contacting API:", err)
		os.Exit(1)
	}

	fmt.Println("State:", status.State)
	if status.CheckedAt != nil {
		fmt.Println("Checked:", status.CheckedAt.Format(time.RFC3339))
	}
	fmt.Printf("Checks: %d  gateway down: %d  internet down: %d  uptime: %.1f%%\n",
		stats.TotalChecks, stats.GatewayDownCount, stats.InternetDownCount, stats.UptimePercent)

	if status.State != "UP" {
		os.Exit(2)
	}
}

func getJSON(client *http.Client, url string, out any) error {
	resp, err := client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
