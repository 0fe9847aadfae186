package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/parapente-jp/flightpass/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "flightpass",
		Short: "flightpass - tandem flight ticketing service",
		Long:  `flightpass issues and validates tandem paragliding flight tickets sold through the booking site.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
