package main

import (
	"fmt"
	"strconv"

	"asura/tracker/internal/domain"

	"github.com/spf13/cobra"
)

func parseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return v, nil
}

func parseInt(s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", s)
	}
	return v, nil
}

// optionalFloat returns the flag value, or nil when the flag was not given.
func optionalFloat(cmd *cobra.Command, name string) *float64 {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetFloat64(name)
	return &v
}

func activityCmds(a *app) []*cobra.Command {
	return []*cobra.Command{
		hoursCmd(a),
		{
			Use:   "fight <activity> <win|loss|draw>",
			Short: "Record a fight result",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return done(cmd.OutOrStdout(), a.store.RecordFightResult(domain.ParseRef(args[0]), domain.FightResult(args[1])))
			},
		},
		{
			Use:   "concert <activity>",
			Short: "Count one concert",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return done(cmd.OutOrStdout(), a.store.AddConcert(domain.ParseRef(args[0])))
			},
		},
		{
			Use:   "books <activity> <count>",
			Short: "Set the number of books read",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				n, err := parseNumber(args[1])
				if err != nil {
					return err
				}
				return done(cmd.OutOrStdout(), a.store.SetBooksRead(domain.ParseRef(args[0]), n))
			},
		},
		{
			Use:   "goal <activity> <minutes>",
			Short: "Set the daily goal in minutes",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				n, err := parseInt(args[1])
				if err != nil {
					return err
				}
				return done(cmd.OutOrStdout(), a.store.SetDailyGoal(domain.ParseRef(args[0]), n))
			},
		},
		{
			Use:   "minutes <activity> <minutes>",
			Short: "Add minutes to today's counter",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				n, err := parseInt(args[1])
				if err != nil {
					return err
				}
				return done(cmd.OutOrStdout(), a.store.AddTodayMinutes(domain.ParseRef(args[0]), n))
			},
		},
		tapeCmd(a),
		fitnessCmd(a),
		liftCmd(a),
		weightCmd(a),
	}
}

func hoursCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hours",
		Short: "Log or correct practice hours",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "add <activity> <hours>",
		Short: "Log a session of the given length",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := parseNumber(args[1])
			if err != nil {
				return err
			}
			return done(cmd.OutOrStdout(), a.store.AddHours(domain.ParseRef(args[0]), h))
		},
	}, &cobra.Command{
		Use:   "set <activity> <hours>",
		Short: "Overwrite the total hours",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := parseNumber(args[1])
			if err != nil {
				return err
			}
			return done(cmd.OutOrStdout(), a.store.SetTotalHours(domain.ParseRef(args[0]), h))
		},
	})
	return cmd
}

func tapeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tape",
		Short: "Track fight tape study",
	}

	var (
		boxing, kickboxing, mma float64
		date                    string
	)
	entry := &cobra.Command{
		Use:   "log <activity>",
		Short: "Add a weekly tape entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return done(cmd.OutOrStdout(), a.store.AddTapeEntry(domain.ParseRef(args[0]), boxing, kickboxing, mma, date))
		},
	}
	entry.Flags().Float64Var(&boxing, "boxing", 0, "Boxing hours")
	entry.Flags().Float64Var(&kickboxing, "kickboxing", 0, "Kickboxing hours")
	entry.Flags().Float64Var(&mma, "mma", 0, "MMA hours")
	entry.Flags().StringVar(&date, "date", "", "Entry label, defaults to today")

	var updateDate string
	update := &cobra.Command{
		Use:   "update <activity> <index>",
		Short: "Correct a tape entry; only the given fields change",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseInt(args[1])
			if err != nil {
				return err
			}
			return done(cmd.OutOrStdout(), a.store.UpdateTapeEntryAt(domain.ParseRef(args[0]), i,
				optionalFloat(cmd, "boxing"), optionalFloat(cmd, "kickboxing"), optionalFloat(cmd, "mma"), updateDate))
		},
	}
	update.Flags().Float64("boxing", 0, "Boxing hours")
	update.Flags().Float64("kickboxing", 0, "Kickboxing hours")
	update.Flags().Float64("mma", 0, "MMA hours")
	update.Flags().StringVar(&updateDate, "date", "", "New entry label")

	cmd.AddCommand(&cobra.Command{
		Use:   "add <activity> <boxing|kickboxing|mma> <hours>",
		Short: "Add hours to one tape total",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := parseNumber(args[2])
			if err != nil {
				return err
			}
			return done(cmd.OutOrStdout(), a.store.AddTapeHours(domain.ParseRef(args[0]), domain.TapeKind(args[1]), h))
		},
	}, entry, update, &cobra.Command{
		Use:   "delete <activity> <index>",
		Short: "Delete a tape entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseInt(args[1])
			if err != nil {
				return err
			}
			return done(cmd.OutOrStdout(), a.store.DeleteTapeEntryAt(domain.ParseRef(args[0]), i))
		},
	}, &cobra.Command{
		Use:   "reset <activity>",
		Short: "Clear all tape totals and entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return done(cmd.OutOrStdout(), a.store.ResetTape(domain.ParseRef(args[0])))
		},
	})
	return cmd
}

func fitnessCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fitness",
		Short: "Track fitness test scores",
	}

	var date string
	add := &cobra.Command{
		Use:   "add <activity> <score>",
		Short: "Record a fitness test score",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseNumber(args[1])
			if err != nil {
				return err
			}
			return done(cmd.OutOrStdout(), a.store.AddFitnessScore(domain.ParseRef(args[0]), v, date))
		},
	}
	add.Flags().StringVar(&date, "date", "", "Point label, defaults to the current month")

	var updateDate string
	update := &cobra.Command{
		Use:   "update <activity> <index>",
		Short: "Correct a fitness score",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseInt(args[1])
			if err != nil {
				return err
			}
			return done(cmd.OutOrStdout(), a.store.UpdateFitnessScoreAt(domain.ParseRef(args[0]), i, optionalFloat(cmd, "score"), updateDate))
		},
	}
	update.Flags().Float64("score", 0, "New score")
	update.Flags().StringVar(&updateDate, "date", "", "New point label")

	cmd.AddCommand(add, update, &cobra.Command{
		Use:   "delete <activity> <index>",
		Short: "Delete a fitness score",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseInt(args[1])
			if err != nil {
				return err
			}
			return done(cmd.OutOrStdout(), a.store.DeleteFitnessScoreAt(domain.ParseRef(args[0]), i))
		},
	})
	return cmd
}

func liftCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lift",
		Short: "Edit the four tracked power lifts",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "name <activity> <slot 0-3> <name>",
		Short: "Rename a lift slot",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseInt(args[1])
			if err != nil {
				return err
			}
			return done(cmd.OutOrStdout(), a.store.UpdatePowerLiftName(domain.ParseRef(args[0]), i, args[2]))
		},
	}, &cobra.Command{
		Use:   "weight <activity> <slot 0-3> <kg>",
		Short: "Set the best weight of a lift slot",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseInt(args[1])
			if err != nil {
				return err
			}
			kg, err := parseNumber(args[2])
			if err != nil {
				return err
			}
			return done(cmd.OutOrStdout(), a.store.UpdatePowerLiftWeight(domain.ParseRef(args[0]), i, kg))
		},
	})
	return cmd
}

func weightCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weight",
		Short: "Track body weight",
	}

	var date string
	add := &cobra.Command{
		Use:   "add <activity> <kg>",
		Short: "Record a weigh-in",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kg, err := parseNumber(args[1])
			if err != nil {
				return err
			}
			return done(cmd.OutOrStdout(), a.store.AddBodyWeight(domain.ParseRef(args[0]), kg, date))
		},
	}
	add.Flags().StringVar(&date, "date", "", "Point label, defaults to today")

	var updateDate string
	update := &cobra.Command{
		Use:   "update <activity> <index>",
		Short: "Correct a weigh-in",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseInt(args[1])
			if err != nil {
				return err
			}
			return done(cmd.OutOrStdout(), a.store.UpdateBodyWeightAt(domain.ParseRef(args[0]), i, optionalFloat(cmd, "kg"), updateDate))
		},
	}
	update.Flags().Float64("kg", 0, "New weight")
	update.Flags().StringVar(&updateDate, "date", "", "New point label")

	cmd.AddCommand(add, update, &cobra.Command{
		Use:   "delete <activity> <index>",
		Short: "Delete a weigh-in",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseInt(args[1])
			if err != nil {
				return err
			}
			return done(cmd.OutOrStdout(), a.store.DeleteBodyWeightAt(domain.ParseRef(args[0]), i))
		},
	})
	return cmd
}
