package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const userAgent = "keboola-go-networking"

func NewNetworkingCommand() *cobra.Command {
	networkingCmd := &cobra.Command{
		Use:   "networking",
		Short: "Send HTTP requests described by endpoints",
		Long: `Networking CLI builds a request from an endpoint description, sends it and prints the response.

Examples:
  # Get a resource
  networking request /v4/launches/latest --base-url https://api.spacexdata.com

  # Create a resource
  networking request /users --method POST --data '{"name":"John"}'

Environment:
  NETWORKING_BASE_URL   default base URL
  NETWORKING_LOG_LEVEL  debug, info, warn or error
`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	networkingCmd.PersistentFlags().String("base-url", "", "base URL of the API (env: NETWORKING_BASE_URL)")
	networkingCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error (env: NETWORKING_LOG_LEVEL)")

	networkingCmd.AddCommand(NewRequestCmd())

	return networkingCmd
}

func Execute() {
	err := NewNetworkingCommand().Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
