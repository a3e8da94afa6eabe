package main

import (
	"github.com/spf13/cobra"
)

// newRootCommand returns the command tree and the context its commands
// share. The caller closes the context once Execute returns.
func newRootCommand() (*cobra.Command, *commandContext) {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "court-scheduler",
		Short:         "Judge dashboard case service",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&ctx.dbPath, "db", "", "Database path (overrides DATABASE_PATH)")

	rootCmd.AddCommand(newServeCommand(ctx))
	rootCmd.AddCommand(newMigrateCommand(ctx))
	rootCmd.AddCommand(newImportCommand(ctx))
	rootCmd.AddCommand(newAssignedCommand(ctx))

	return rootCmd, ctx
}

// execute runs the command tree and always releases the database and
// flushes the logger, including when a command fails.
func execute(rootCmd *cobra.Command, ctx *commandContext) error {
	defer ctx.close()
	return rootCmd.Execute()
}
