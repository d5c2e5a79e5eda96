package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"leados.app/inbox/internal/domain"
	"leados.app/inbox/internal/inbox"
)

func newListCmd(app *App) *cobra.Command {
	var (
		channel, status, query, sort string
		offset, limit                int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List conversations",
		Example: `  inbox list
  inbox list --channel WhatsApp --status "Needs Attention"
  inbox list --query pricing --sort oldest`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := app.refresh(ctx); err != nil {
				return err
			}

			app.List.SetFilter(inbox.FilterUpdate{Channel: &channel, Status: &status, Query: &query})
			app.List.SetSort(inbox.SortOrder(sort))
			page := app.List.Page(offset, limit)

			if app.jsonOutput {
				return printJSON(app.out, page)
			}
			if len(page) == 0 {
				fmt.Fprintln(app.out, "No conversations found.")
				return nil
			}

			tw := tabwriter.NewWriter(app.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tCUSTOMER\tCHANNEL\tSTATUS\tLAST MESSAGE\tTIME")
			selected := app.List.SelectedID()
			for _, c := range page {
				id := c.ID
				if id == selected {
					id = "*" + id
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
					id, c.Customer, c.Channel, c.Status, clip(c.LastMessage, 48), c.Timestamp)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(app.out, "\n%d of %d shown\n", len(page), len(app.List.Filtered()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&channel, "channel", "c", inbox.FilterAll, "filter by channel")
	cmd.Flags().StringVarP(&status, "status", "s", inbox.FilterAll, "filter by status")
	cmd.Flags().StringVarP(&query, "query", "q", "", "match customer, subject or last message")
	cmd.Flags().StringVar(&sort, "sort", string(inbox.SortNewest), "newest, oldest or customer")
	cmd.Flags().IntVar(&offset, "offset", 0, "skip this many conversations")
	cmd.Flags().IntVarP(&limit, "limit", "n", 25, "max conversations")
	return cmd
}

func newShowCmd(app *App) *cobra.Command {
	var withSummary bool

	cmd := &cobra.Command{
		Use:   "show <conversation-id>",
		Short: "Show a conversation thread",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.refresh(ctx); err != nil {
				return err
			}
			if !app.List.Select(args[0]) {
				return inbox.ErrConversationNotFound
			}
			conv, _ := app.List.Selected()

			if app.jsonOutput {
				return printJSON(app.out, conv)
			}

			fmt.Fprintf(app.out, "%s · %s · %s\n", conv.Customer, conv.Channel, conv.Status)
			if conv.Subject != "" {
				fmt.Fprintf(app.out, "Subject: %s\n", conv.Subject)
			}
			fmt.Fprintln(app.out, strings.Repeat("─", 40))
			for _, m := range conv.Thread {
				fmt.Fprintf(app.out, "[%s] %s%s\n", speaker(m.Type), m.Content, stamp(m.Timestamp))
			}

			if withSummary {
				summary, err := app.API.GetSummary(ctx, conv.ID)
				if err != nil {
					fmt.Fprintf(app.out, "\nNo summary yet (%v)\n", err)
					return nil
				}
				fmt.Fprintf(app.out, "\nSummary (%s, suggests %s):\n%s\n",
					summary.Sentiment, summary.SuggestedStatus, summary.Summary)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&withSummary, "summary", false, "include the AI summary")
	return cmd
}

func newReplyCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reply <conversation-id> <message>...",
		Short: "Reply to the lead on the conversation's channel",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.refresh(ctx); err != nil {
				return err
			}
			coord, err := app.coordinator(ctx)
			if err != nil {
				return err
			}
			_, err = coord.SendReply(ctx, args[0], strings.Join(args[1:], " "))
			return err
		},
	}
}

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status <conversation-id> <status>",
		Short: `Set status: "Needs Attention", "AI Handled" or "Resolved"`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, ok := domain.ParseStatus(args[1])
			if !ok {
				return fmt.Errorf("unknown status %q", args[1])
			}
			ctx := cmd.Context()
			if err := app.refresh(ctx); err != nil {
				return err
			}
			coord, err := app.coordinator(ctx)
			if err != nil {
				return err
			}
			return coord.UpdateStatus(ctx, args[0], status)
		},
	}
}

func newSummarizeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "summarize <conversation-id>",
		Short: "Queue a fresh AI summary for a conversation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.API.RequestSummary(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(app.out, "Summary queued for conversation %s\n", args[0])
			return nil
		},
	}
}

func speaker(t domain.MessageType) string {
	switch t {
	case domain.MessageTypeUser:
		return "lead"
	case domain.MessageTypeAI:
		return "ai"
	case domain.MessageTypeSDR:
		return "you"
	default:
		return string(t)
	}
}

func stamp(ts string) string {
	if ts == "" {
		return ""
	}
	return "  (" + ts + ")"
}

func clip(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
