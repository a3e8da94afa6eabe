package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/JustJay7/court-scheduler/internal/classify"
	"github.com/JustJay7/court-scheduler/internal/database"
	"github.com/spf13/cobra"
)

func newAssignedCommand(ctx *commandContext) *cobra.Command {
	var judgeID int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "assigned",
		Short: "Show a judge's dashboard buckets",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.service()
			if err != nil {
				return err
			}

			res := svc.GetAssignedCases(cmd.Context(), judgeID)
			out := cmd.OutOrStdout()

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(res); err != nil {
					return err
				}
			}

			buckets, ok := res.Payload()
			if !ok {
				return fmt.Errorf("%s", strings.Join(res.Errors(), "; "))
			}
			if asJSON {
				return nil
			}
			writeBuckets(out, buckets)
			return nil
		},
	}

	cmd.Flags().IntVarP(&judgeID, "judge", "j", 0, "Judge id")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result envelope as JSON")
	_ = cmd.MarkFlagRequired("judge")
	return cmd
}

func writeBuckets(w io.Writer, b classify.Buckets) {
	sections := []struct {
		title   string
		records []database.CaseRecord
	}{
		{"Reserved judgments", b.ReservedJudgments},
		{"Scheduled continuations", b.ScheduledContinuations},
		{"Others", b.Others},
		{"Future assigned", b.FutureAssigned},
	}

	for i, s := range sections {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "%s (%d)\n", s.title, len(s.records))
		if len(s.records) == 0 {
			continue
		}
		fmt.Fprintln(w, caseTable(s.records))
	}
}
