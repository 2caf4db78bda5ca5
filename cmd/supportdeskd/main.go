package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/crestline-labs/supportdesk/internal/cli"
	"github.com/crestline-labs/supportdesk/internal/cli/admin"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "supportdeskd",
		Short: "Supportdesk daemon and CLI",
		Long:  "Supportdesk daemon for running the API server and managing companies and users",
	}

	cli.AddHelpJSONFlag(rootCmd)
	rootCmd.AddCommand(admin.ServeCmd())
	rootCmd.AddCommand(admin.CompanyCmd())
	rootCmd.AddCommand(admin.SeedCmd())

	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	cli.CheckHelpJSON(rootCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
