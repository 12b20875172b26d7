package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"asura/tracker/internal/domain"

	"github.com/spf13/cobra"
)

func showCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show [activity]",
		Short: "Print the document, or one activity record, as JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc := a.store.Document()
			var v any = doc
			if len(args) == 1 {
				r, ok := doc.Record(domain.ParseRef(args[0]))
				if !ok {
					return fmt.Errorf("unknown activity %q", args[0])
				}
				v = r
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(v)
		},
	}
}

func listCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List visible activities with their totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc := a.store.Document()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ACTIVITY\tTEMPLATE\tHOURS\tSTREAK\tTODAY")
			for _, k := range doc.VisibleCoreActivities() {
				r, _ := doc.Core(k)
				fmt.Fprintf(w, "%s\t%s\t%.1f\t%d\t%d/%d\n", k, k.Family(), r.TotalHours, r.CurrentStreak, r.TodayMinutes, r.DailyGoalMinutes)
			}
			for _, c := range doc.ListCustomActivities() {
				r := c.Data
				fmt.Fprintf(w, "custom:%s\t%s\t%.1f\t%d\t%d/%d\n", c.Slug, c.Template, r.TotalHours, r.CurrentStreak, r.TodayMinutes, r.DailyGoalMinutes)
			}
			if doc.MinimalMode {
				fmt.Fprintln(w, "(minimal mode)")
			}
			return w.Flush()
		},
	}
}

func levelCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "level [activity]",
		Short: "Print the strength level of a gym activity",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := domain.CoreRef(domain.Gym)
			if len(args) == 1 {
				ref = domain.ParseRef(args[0])
			}
			lvl, ok := a.store.GymLevel(ref)
			if !ok {
				return fmt.Errorf("unknown activity %q", ref)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s level %d\n", ref, lvl)
			return nil
		},
	}
}
