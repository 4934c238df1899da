package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Exchange the shared service token for a bearer token",
		Run:   runToken,
	}
	cmd.Flags().String("candidate", "", "Candidate id (required)")
	cmd.Flags().String("service-token", "", "Shared service token (dev mode accepts none)")
	_ = cmd.MarkFlagRequired("candidate")
	RootCmd.AddCommand(cmd)
}

func runToken(cmd *cobra.Command, _ []string) {
	cfg := loadConfig()
	candidate, _ := cmd.Flags().GetString("candidate")
	serviceToken, _ := cmd.Flags().GetString("service-token")

	body, _ := json.Marshal(map[string]string{
		"candidate_id":  candidate,
		"service_token": serviceToken,
	})
	req, err := http.NewRequestWithContext(cmd.Context(), http.MethodPost,
		cfg.ProfileServiceURL+"/api/auth/token", bytes.NewReader(body))
	if err != nil {
		exitErr("build request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := (&http.Client{Timeout: cfg.HTTPClientTimeout}).Do(req)
	if err != nil {
		exitErr("token exchange", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		exitErr("token exchange", fmt.Errorf("status %d", resp.StatusCode))
	}

	var out struct {
		Token     string `json:"token"`
		ExpiresIn int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		exitErr("decode response", err)
	}
	fmt.Println(out.Token)
}
