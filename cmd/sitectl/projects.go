package main

import (
	"context"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List projects in display order",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, closeFn, err := openApp()
		if err != nil {
			return err
		}
		defer closeFn()

		projects, err := a.projects.List(context.Background())
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(projects)
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"ID", "ORDER", "TITLE", "SLUG", "FEATURED", "PUBLISHED", "CREATED_AT"})
		for _, p := range projects {
			table.Append([]string{
				strconv.FormatInt(p.ID, 10),
				strconv.Itoa(p.SortOrder),
				p.Title,
				ptrS(p.Slug),
				strconv.FormatBool(p.IsFeatured),
				strconv.FormatBool(p.Published),
				p.CreatedAt,
			})
		}
		table.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(projectsCmd)
}
