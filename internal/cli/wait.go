package cli

import (
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "wait",
		Short: "Wait until the Profile Service is ready",
		Run:   runWait,
	}
	cmd.Flags().Duration("timeout", 60*time.Second, "Give up after this long")
	RootCmd.AddCommand(cmd)
}

func runWait(cmd *cobra.Command, _ []string) {
	cfg := loadConfig()
	timeout, _ := cmd.Flags().GetDuration("timeout")

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 250 * time.Millisecond
	policy.MaxInterval = 5 * time.Second
	policy.MaxElapsedTime = timeout

	client := &http.Client{Timeout: 2 * time.Second}
	probe := func() error {
		req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet, cfg.ProfileServiceURL+"/readyz", nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := client.Do(req)
		if err != nil {
			return err
		}
		defer func() { _ = resp.Body.Close() }()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("not ready: status %d", resp.StatusCode)
		}
		return nil
	}

	if err := backoff.Retry(probe, backoff.WithContext(policy, cmd.Context())); err != nil {
		exitErr("service not ready", err)
	}
	fmt.Println("ready")
}
