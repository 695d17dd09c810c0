package cli

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/geolearn-io/client/internal/client"
	"github.com/geolearn-io/client/internal/config"
	"github.com/geolearn-io/client/internal/sessions"
)

// Shared command state, populated by preRunClientE
var (
	cfg     *config.Config
	svc     *client.Service
	api     *client.Client
	store   *sessions.Store
	apiHost string
)

var rootCmd = &cobra.Command{
	Use:   "geolearn",
	Short: "Client for the Geometry Learning System API",
	Long: `Client for the Geometry Learning System API.

If no config file is specified, the client will look for config files in the
following locations:
  - ./config.yaml
  - ./config/config.yaml
  - /etc/geolearn/config.yaml
  - ~/.config/geolearn/config.yaml`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Fatalf("Failed to execute command: %v", err)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the configuration file (optional)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
}

// preRunClientE loads configuration, restores any persisted session
// credential for the configured API host, and wires the shared service.
func preRunClientE(cmd *cobra.Command, _ []string) error {
	configFile, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}

	cfg, err = config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	verbose, err := cmd.Flags().GetBool("verbose")
	if err == nil && verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	apiHost, err = cfg.Host()
	if err != nil {
		return err
	}

	store, err = sessions.NewStore("")
	if err != nil {
		return fmt.Errorf("failed to open session store: %w", err)
	}

	svc = client.NewService(cfg)

	if stored, ok := store.Get(apiHost); ok {
		api = client.NewClientWithCredential(svc, stored.Credential())
	} else {
		api = client.NewClient(svc)
	}

	return nil
}

// persistSession writes the current credential back to disk, or forgets it
// when the session has ended.
func persistSession() {
	var err error
	if api.Affinity().Established() {
		err = store.Save(apiHost, api.Affinity().Credential())
	} else {
		err = store.Remove(apiHost)
	}
	if err != nil {
		logrus.WithError(err).Warn("Failed to persist session state")
	}
}
