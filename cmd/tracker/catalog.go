package main

import (
	"fmt"

	"asura/tracker/internal/domain"

	"github.com/spf13/cobra"
)

func catalogCmds(a *app) []*cobra.Command {
	return []*cobra.Command{
		customCmd(a),
		{
			Use:   "hide <activity>",
			Short: "Hide a built-in activity",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return done(cmd.OutOrStdout(), a.store.HideActivity(domain.CoreKey(args[0])))
			},
		},
		{
			Use:   "restore <activity>",
			Short: "Show a hidden built-in activity again",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return done(cmd.OutOrStdout(), a.store.RestoreActivity(domain.CoreKey(args[0])))
			},
		},
		{
			Use:       "minimal <on|off>",
			Short:     "Toggle minimal mode",
			Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
			ValidArgs: []string{"on", "off"},
			RunE: func(cmd *cobra.Command, args []string) error {
				return done(cmd.OutOrStdout(), a.store.SetMinimalMode(args[0] == "on"))
			},
		},
		dailyCmd(a),
		exerciseCmd(a),
	}
}

func customCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "custom",
		Short: "Manage custom activities",
	}

	var template, slug string
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a custom activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := slug
			if s == "" {
				s = domain.Slugify(args[0])
			}
			if !a.store.AddCustomActivity(s, args[0], domain.Template(template)) {
				return errNoChange
			}
			fmt.Fprintf(cmd.OutOrStdout(), "custom:%s\n", s)
			return nil
		},
	}
	add.Flags().StringVarP(&template, "template", "t", string(domain.TemplateNone), "Template: none, boxing, gym, music, language")
	add.Flags().StringVar(&slug, "slug", "", "Slug, derived from the name when empty")

	cmd.AddCommand(add, &cobra.Command{
		Use:   "delete <slug>",
		Short: "Delete a custom activity and its data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return done(cmd.OutOrStdout(), a.store.DeleteCustomActivity(domain.ParseRef(args[0]).Slug))
		},
	})
	return cmd
}

func dailyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Edit the daily checklist",
	}

	var category string
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a checklist item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return done(cmd.OutOrStdout(), a.store.AddDailyActivity(args[0], category))
		},
	}
	add.Flags().StringVar(&category, "category", "", "Item category")

	cmd.AddCommand(add, &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a checklist item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return done(cmd.OutOrStdout(), a.store.RemoveDailyActivity(args[0]))
		},
	}, &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a checklist item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return done(cmd.OutOrStdout(), a.store.RenameDailyActivity(args[0], args[1]))
		},
	}, &cobra.Command{
		Use:   "label <index> <name>",
		Short: "Rename an entry of the legacy name list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseInt(args[0])
			if err != nil {
				return err
			}
			return done(cmd.OutOrStdout(), a.store.UpdateDailyActivityName(i, args[1]))
		},
	}, &cobra.Command{
		Use:   "list",
		Short: "Print the checklist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, d := range a.store.Document().DailyActivityList {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", d.ID, d.Name, d.Category)
			}
			return nil
		},
	})
	return cmd
}

func exerciseCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exercise",
		Short: "Manage the gym exercise catalog",
	}

	var category string
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an exercise to the gym catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := a.store.AddGymExercise(args[0], domain.ExerciseCategory(category))
			if id == "" {
				return errNoChange
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
	add.Flags().StringVar(&category, "category", string(domain.CategoryOther), "Category: push, pull, legs, other")

	var (
		reps int
		date string
	)
	log := &cobra.Command{
		Use:   "log <activity> <id> <kg>",
		Short: "Record a working weight for an exercise",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kg, err := parseNumber(args[2])
			if err != nil {
				return err
			}
			var r *int
			if cmd.Flags().Changed("reps") {
				r = &reps
			}
			return done(cmd.OutOrStdout(), a.store.AddExerciseWeight(domain.ParseRef(args[0]), args[1], kg, r, date))
		},
	}
	log.Flags().IntVar(&reps, "reps", 0, "Repetitions")
	log.Flags().StringVar(&date, "date", "", "Point label, defaults to today")

	cmd.AddCommand(add, log, &cobra.Command{
		Use:   "rename <activity> <id> <name>",
		Short: "Rename an exercise",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return done(cmd.OutOrStdout(), a.store.UpdateExerciseName(domain.ParseRef(args[0]), args[1], args[2]))
		},
	}, &cobra.Command{
		Use:   "category <id> <push|pull|legs|other>",
		Short: "Change the category of a gym exercise",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return done(cmd.OutOrStdout(), a.store.UpdateGymExerciseCategory(args[0], domain.ExerciseCategory(args[1])))
		},
	})
	return cmd
}
