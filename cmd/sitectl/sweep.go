package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var flagSweepDryRun bool

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Delete uploaded files that nothing references",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, closeFn, err := openApp()
		if err != nil {
			return err
		}
		defer closeFn()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		result, err := a.sweep.Sweep(ctx, flagSweepDryRun)
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(result)
		}

		verb := "deleted"
		if flagSweepDryRun {
			verb = "would delete"
		}
		fmt.Printf("scanned %d, kept %d, within grace %d, %s %d\n",
			result.Scanned, result.Kept, result.Young, verb, len(result.Deleted))
		for _, name := range result.Deleted {
			fmt.Printf("  %s\n", name)
		}
		for _, name := range result.Failed {
			fmt.Printf("  failed: %s\n", name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sweepCmd)
	sweepCmd.Flags().BoolVar(&flagSweepDryRun, "dry-run", false, "only list files that would be deleted")
}
