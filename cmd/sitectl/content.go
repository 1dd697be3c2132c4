package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"site-cms/internal/dto"
)

var (
	flagContentPage    string
	flagContentSection string
	flagSetPage        string
	flagSetSection     string
	flagSetType        string
	flagSetTheme       string
)

var contentCmd = &cobra.Command{
	Use:   "content",
	Short: "Inspect and edit content entries",
}

var contentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List content entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, closeFn, err := openApp()
		if err != nil {
			return err
		}
		defer closeFn()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		entries, err := a.content.List(ctx, &dto.ContentListQuery{Page: flagContentPage, Section: flagContentSection})
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(entries)
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"KEY", "PAGE", "SECTION", "TYPE", "ORDER", "THEME", "VALUE"})
		table.SetAutoWrapText(false)
		for _, e := range entries {
			table.Append([]string{e.Key, e.Page, e.Section, e.Type, ptrI(e.SortOrder), e.Theme, truncate(e.Value, 60)})
		}
		table.Render()
		return nil
	},
}

var contentGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Show a single content entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, closeFn, err := openApp()
		if err != nil {
			return err
		}
		defer closeFn()

		entry, err := a.content.GetOne(context.Background(), args[0])
		if err != nil {
			return err
		}
		if entry == nil {
			return fmt.Errorf("content %q not found", args[0])
		}
		if flagJSON {
			return printJSON(entry)
		}
		fmt.Println(entry.Value)
		return nil
	},
}

var contentSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Upsert a content value, optionally with its theme",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, closeFn, err := openApp()
		if err != nil {
			return err
		}
		defer closeFn()

		meta := &dto.ContentMeta{}
		if cmd.Flags().Changed("page") {
			meta.Page = &flagSetPage
		}
		if cmd.Flags().Changed("section") {
			meta.Section = &flagSetSection
		}
		if cmd.Flags().Changed("type") {
			meta.Type = &flagSetType
		}
		updates := []dto.ContentUpdate{dto.ValueUpdate(args[0], args[1], meta)}
		if flagSetTheme != "" {
			updates = append(updates, dto.ThemeUpdate(args[0], flagSetTheme))
		}

		if err := a.content.UpsertBatch(context.Background(), updates); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "content %q saved\n", args[0])
		return nil
	},
}

var contentDeleteCmd = &cobra.Command{
	Use:   "delete <key>",
	Short: "Delete a content entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, closeFn, err := openApp()
		if err != nil {
			return err
		}
		defer closeFn()

		removed, err := a.content.DeleteByKey(context.Background(), args[0])
		if err != nil {
			return err
		}
		fmt.Println("deleted: " + strconv.FormatBool(removed))
		return nil
	},
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func init() {
	rootCmd.AddCommand(contentCmd)
	contentCmd.AddCommand(contentListCmd, contentGetCmd, contentSetCmd, contentDeleteCmd)

	contentListCmd.Flags().StringVar(&flagContentPage, "page", "", "filter by page")
	contentListCmd.Flags().StringVar(&flagContentSection, "section", "", "filter by section")

	contentSetCmd.Flags().StringVar(&flagSetPage, "page", "", "page")
	contentSetCmd.Flags().StringVar(&flagSetSection, "section", "", "section")
	contentSetCmd.Flags().StringVar(&flagSetType, "type", "", "type (text, richtext, markdown, image)")
	contentSetCmd.Flags().StringVar(&flagSetTheme, "theme", "", "light or dark")
}
