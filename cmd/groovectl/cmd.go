package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/2beens/groove/internal/exercises"
	"github.com/2beens/groove/internal/groove"

	"github.com/spf13/cobra"
)

func SetupCommands(a *App) *cobra.Command {
	// root command
	rootCmd := &cobra.Command{
		Use:           "groovectl",
		Short:         "Exercise snacks, walks and sprints from the command line",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	// today's schedule
	todayCmd := &cobra.Command{
		Use:   "today",
		Short: "Show today's schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Today(cmd.Context(), cmd.OutOrStdout())
		},
	}

	refreshCmd := &cobra.Command{
		Use:   "refresh",
		Short: "Build today's schedule if not done yet",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Refresh(cmd.Context(), cmd.OutOrStdout())
		},
	}

	rescheduleCmd := &cobra.Command{
		Use:   "reschedule",
		Short: "Rebuild today's schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Reschedule(cmd.Context(), cmd.OutOrStdout())
		},
	}

	shuffleCmd := &cobra.Command{
		Use:   "shuffle",
		Short: "Make every exercise eligible again and rebuild today's schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Shuffle(cmd.Context(), cmd.OutOrStdout())
		},
	}

	var snoozeMinutes int
	snoozeCmd := &cobra.Command{
		Use:   "snooze [id]",
		Short: "Push a scheduled snack back",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid id [%s]", args[0])
			}
			return a.Snooze(cmd.Context(), cmd.OutOrStdout(), id, time.Duration(snoozeMinutes)*time.Minute)
		},
	}
	snoozeCmd.Flags().IntVarP(&snoozeMinutes, "minutes", "m", 0, "snooze duration in minutes (configured default if 0)")

	// exercises
	var exType string
	exercisesCmd := &cobra.Command{
		Use:   "exercises",
		Short: "List the exercise catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			t := exercises.Type(exType)
			if exType != "" && !t.IsValid() {
				return fmt.Errorf("unknown exercise type [%s]", exType)
			}
			return a.Exercises(cmd.Context(), cmd.OutOrStdout(), t)
		},
	}
	exercisesCmd.Flags().StringVarP(&exType, "type", "t", "", "strength or mobility")

	var (
		actualReps int
		wasEasy    bool
	)
	completeCmd := &cobra.Command{
		Use:   "complete [exercise id]",
		Short: "Record a completed snack",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Complete(cmd.Context(), cmd.OutOrStdout(), args[0], actualReps, wasEasy)
		},
	}
	completeCmd.Flags().IntVarP(&actualReps, "reps", "r", 0, "reps (or seconds) actually done")
	completeCmd.Flags().BoolVarP(&wasEasy, "easy", "e", false, "the set felt easy")
	_ = completeCmd.MarkFlagRequired("reps")

	performedCmd := &cobra.Command{
		Use:   "performed [exercise id]",
		Short: "Mark an exercise as performed today",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Performed(cmd.Context(), cmd.OutOrStdout(), args[0])
		},
	}

	enableCmd := &cobra.Command{
		Use:   "enable [exercise id]",
		Short: "Enable an exercise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.SetEnabled(cmd.Context(), cmd.OutOrStdout(), args[0], true)
		},
	}

	disableCmd := &cobra.Command{
		Use:   "disable [exercise id]",
		Short: "Disable an exercise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.SetEnabled(cmd.Context(), cmd.OutOrStdout(), args[0], false)
		},
	}

	repsCmd := &cobra.Command{
		Use:   "reps [exercise id] [count]",
		Short: "Set the reps (or seconds) of an exercise",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			reps, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid count [%s]", args[1])
			}
			return a.AdjustReps(cmd.Context(), cmd.OutOrStdout(), args[0], reps)
		},
	}

	resetCmd := &cobra.Command{
		Use:   "reset [exercise id]",
		Short: "Reset the progress of an exercise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Reset(cmd.Context(), cmd.OutOrStdout(), args[0])
		},
	}

	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Show the settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Settings(cmd.Context(), cmd.OutOrStdout())
		},
	}

	// walks
	walkCmd := &cobra.Command{
		Use:   "walk [duration]",
		Short: "Add walking time to today, e.g. 25m",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := time.ParseDuration(args[0])
			if err != nil {
				return fmt.Errorf("invalid duration [%s]", args[0])
			}
			return a.AddWalk(cmd.Context(), cmd.OutOrStdout(), d)
		},
	}

	var walkRange string
	walkStatsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Walk statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := groove.ParseWalkRange(walkRange)
			if err != nil {
				return err
			}
			return a.WalkStats(cmd.Context(), cmd.OutOrStdout(), r)
		},
	}
	walkStatsCmd.Flags().StringVarP(&walkRange, "range", "r", "week", "week, month, year or all")
	walkCmd.AddCommand(walkStatsCmd)

	// sprints
	sprintCmd := &cobra.Command{
		Use:   "sprint",
		Short: "Show the sprint sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.Sprints(cmd.Context(), cmd.OutOrStdout())
		},
	}
	sprintCmd.AddCommand(&cobra.Command{
		Use:   "done",
		Short: "Complete today's sprint session",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.CompleteSprint(cmd.Context(), cmd.OutOrStdout())
		},
	})
	sprintCmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Sprint statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.SprintStats(cmd.Context(), cmd.OutOrStdout())
		},
	})

	// add commands
	rootCmd.AddCommand(todayCmd, refreshCmd, rescheduleCmd, shuffleCmd, snoozeCmd)
	rootCmd.AddCommand(exercisesCmd, completeCmd, performedCmd, enableCmd, disableCmd, repsCmd, resetCmd)
	rootCmd.AddCommand(settingsCmd, walkCmd, sprintCmd)

	return rootCmd
}
