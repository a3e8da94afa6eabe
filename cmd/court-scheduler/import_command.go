package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/JustJay7/court-scheduler/internal/feed"
	"github.com/spf13/cobra"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Upsert a scheduling feed file (JSON or YAML)",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(file)
			if err != nil {
				return fmt.Errorf("open feed: %w", err)
			}
			defer f.Close()

			recs, err := feed.Decode(f, feed.FormatForPath(file))
			if err != nil {
				return err
			}

			svc, err := ctx.service()
			if err != nil {
				return err
			}

			res := svc.ImportCases(cmd.Context(), recs)
			if !res.Succeeded() {
				return fmt.Errorf("import failed: %s", strings.Join(res.Errors(), "; "))
			}

			summary, _ := res.Payload()
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d cases (%d rows written)\n", summary.Received, summary.Upserted)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Feed file to import")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
