// Package cli implements the profilectl commands: a terminal front end for
// the profile editing engine.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/quickhire/profile-engine/internal/adapter/profileapi"
	"github.com/quickhire/profile-engine/internal/adapter/session"
	"github.com/quickhire/profile-engine/internal/config"
	"github.com/quickhire/profile-engine/internal/profile"
)

var (
	serviceURL string
	tokenFlag  string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "profilectl",
	Short: "Edit your candidate profile from the terminal",
	Long:  "profilectl talks to the Profile Service with the same engine the form UI uses: fetch, edit, validate, save.",
}

func init() {
	cobra.OnInitialize(func() {
		// .env is optional; real env vars win
		_ = godotenv.Load()
	})
	RootCmd.PersistentFlags().StringVar(&serviceURL, "service", "", "Profile Service base URL (default: $PROFILE_SERVICE_URL)")
	RootCmd.PersistentFlags().StringVar(&tokenFlag, "token", "", "Bearer token (default: $PROFILE_TOKEN)")
}

// Execute runs the root command.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		exitErr("load config", err)
	}
	if serviceURL != "" {
		cfg.ProfileServiceURL = serviceURL
	}
	if tokenFlag != "" {
		cfg.ProfileToken = tokenFlag
	}
	return cfg
}

func newClient(cfg config.Config) *profileapi.Client {
	return profileapi.New(cfg.ProfileServiceURL, session.Static(cfg.ProfileToken), cfg.HTTPClientTimeout)
}

func loadStore(cmd *cobra.Command) (*profile.Store, *profileapi.Client) {
	cfg := loadConfig()
	client := newClient(cfg)
	st := profile.NewStore(client)
	if err := st.Load(cmd.Context()); err != nil {
		exitErr("load profile", err)
	}
	return st, client
}

func printJSON(v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
