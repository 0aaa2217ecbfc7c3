// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "go-radius-admin",
	Short: "GoRadius-Admin is a management tool for multi-tenant RADIUS deployments",
	Long: `GoRadius-Admin is a management tool for multi-tenant RADIUS deployments
that maintains users, groups, check/reply attributes, accounting sessions and
batch provisioning on top of a FreeRADIUS-style database schema.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
