package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"site-cms/internal/service"
)

var (
	flagSeedFile     string
	flagSeedProjects bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Write default content for keys that are missing or empty",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, closeFn, err := openApp()
		if err != nil {
			return err
		}
		defer closeFn()

		path := flagSeedFile
		if path == "" {
			path = a.cfg.Site.SeedFile
		}
		data, err := service.LoadSeedData(path)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		written, err := a.content.SeedDefaults(ctx, data.Content)
		if err != nil {
			return err
		}
		created := 0
		if flagSeedProjects {
			if created, err = a.projects.SeedIfEmpty(ctx, data.Projects); err != nil {
				return err
			}
		}

		if flagJSON {
			return printJSON(map[string]interface{}{"written": written, "projects_created": created})
		}
		fmt.Printf("content keys written: %d\n", len(written))
		for _, key := range written {
			fmt.Printf("  %s\n", key)
		}
		if flagSeedProjects {
			fmt.Printf("projects created: %d\n", created)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().StringVar(&flagSeedFile, "file", "", "seed yaml file (default: site.seed_file, then built-in defaults)")
	seedCmd.Flags().BoolVar(&flagSeedProjects, "projects", false, "also create sample projects when the table is empty")
}
