package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var buildVersion = "dev"

var apiOverride string

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Manage portfolio content from the terminal",
	Long: `folio talks to the portfolio API.

Log in once with 'folio login'; the access token is stored in the user
config directory and reused by the admin commands.`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the CLI version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(buildVersion))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiOverride, "api", "", "API base URL (overrides the saved one)")
	rootCmd.AddCommand(loginCmd, seedCmd, projectsCmd, postsCmd, likeCmd, statsCmd, uploadCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
