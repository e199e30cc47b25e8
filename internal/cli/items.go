package cli

import (
	"strings"
	"time"

	"itemedit/internal/model"
	"itemedit/internal/store"
	"itemedit/internal/tui"

	"github.com/spf13/cobra"
)

func newItemsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "Item commands",
	}
	cmd.AddCommand(newItemsListCmd(app))
	cmd.AddCommand(newItemsShowCmd(app))
	cmd.AddCommand(newItemsNewCmd(app))
	cmd.AddCommand(newItemsEditCmd(app))
	cmd.AddCommand(newItemsCommentCmd(app))
	cmd.AddCommand(newItemsDeleteCmd(app))
	cmd.AddCommand(newItemsSeedCmd(app))
	return cmd
}

func newItemsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			items, err := st.ListItems(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			if items == nil {
				items = []model.Item{}
			}
			return writeOut(cmd, app, items)
		},
	}
}

func newItemsShowCmd(app *App) *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "show <item-id>",
		Short: "Show an item with its comments (markdown unless --format is given)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			it, err := st.GetItem(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if cmd.Flags().Changed("format") {
				return writeOut(cmd, app, it)
			}
			md := tui.ItemMarkdown(it, time.Now())
			_, err = cmd.OutOrStdout().Write([]byte(tui.RenderMarkdown(md, width) + "\n"))
			return err
		},
	}

	cmd.Flags().IntVar(&width, "width", 80, "Wrap width for markdown output")
	return cmd
}

func newItemsNewCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Open the editor on a blank item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, app, true, nil)
		},
	}
}

func newItemsEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <item-id>",
		Short: "Open the editor on a stored item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			it, err := st.GetItem(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return runTUI(cmd, app, true, &it)
		},
	}
}

func newItemsCommentCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "comment <item-id> <text>...",
		Short: "Append a comment to an item",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.TrimSpace(strings.Join(args[1:], " "))
			if text == "" {
				return writeErr(cmd, errBlankComment)
			}
			st, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			c := model.NewComment(app.settings.CurrentUser, text, time.Now())
			if err := st.AddComment(cmd.Context(), args[0], c); err != nil {
				app.log.WithError(err).WithField("itemId", args[0]).Error("add comment failed")
				return writeErr(cmd, err)
			}
			app.log.WithField("itemId", args[0]).WithField("commentId", c.ID).Info("comment added")
			return writeOut(cmd, app, c)
		},
	}
}

func newItemsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <item-id>",
		Short: "Delete an item and its comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := st.DeleteItem(cmd.Context(), args[0]); err != nil {
				return writeErr(cmd, err)
			}
			app.log.WithField("itemId", args[0]).Info("item deleted")
			return writeOut(cmd, app, map[string]any{"id": args[0], "deleted": true})
		},
	}
}

func newItemsSeedCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert the sample item (item-1)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			it := store.SampleItem(time.Now())
			if _, err := st.GetItem(cmd.Context(), it.ID); err == nil && !force {
				return writeErr(cmd, errUsage("%s already exists (use --force to overwrite its fields)", it.ID))
			}
			if err := st.SaveItem(cmd.Context(), it); err != nil {
				return writeErr(cmd, err)
			}
			app.log.WithField("itemId", it.ID).Info("sample item seeded")
			return writeOut(cmd, app, it)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite the sample item's fields if it exists")
	return cmd
}
