// Package cli is the terminal front-end over the inbox client core.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"leados.app/inbox/internal/gateway"
	"leados.app/inbox/internal/inbox"
)

// Version is set at build time.
var Version = "dev"

// API is everything the commands need from the server.
type API interface {
	inbox.Gateway
	ListLeads(ctx context.Context) ([]gateway.Lead, error)
	ListAppointments(ctx context.Context) ([]gateway.Appointment, error)
	CreateAppointment(ctx context.Context, req gateway.CreateAppointmentRequest) (*gateway.Appointment, error)
	GetSummary(ctx context.Context, conversationID string) (*gateway.Summary, error)
	RequestSummary(ctx context.Context, conversationID string) error
	Me(ctx context.Context) (*gateway.User, error)
}

// App carries the state shared by every command. It is built once per process.
type App struct {
	API      API
	List     *inbox.List
	Location *time.Location

	coord      *inbox.Coordinator
	out        io.Writer
	errOut     io.Writer
	user       *gateway.User
	jsonOutput bool
}

func NewApp(api API, list *inbox.List, loc *time.Location) *App {
	if loc == nil {
		loc = time.Local
	}
	return &App{API: api, List: list, Location: loc}
}

// coordinator resolves the signed-in user once and builds the coordinator for it.
func (a *App) coordinator(ctx context.Context) (*inbox.Coordinator, error) {
	if a.coord != nil {
		return a.coord, nil
	}
	user, err := a.API.Me(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolving signed-in user: %w", err)
	}
	a.user = user
	a.coord = inbox.NewCoordinator(a.List, a.API, user.ID,
		inbox.WithLocation(a.Location),
		inbox.WithNotifier(inbox.NotifierFunc(a.notify)))
	return a.coord, nil
}

func (a *App) notify(_ context.Context, n inbox.Notification) {
	mark := "✓"
	if n.Kind == inbox.NotifyFailure {
		mark = "✗"
	}
	fmt.Fprintf(a.out, "%s %s\n", mark, n.Text)
}

// refresh loads the list and reports how many records were unusable.
func (a *App) refresh(ctx context.Context) error {
	coord, err := a.coordinator(ctx)
	if err != nil {
		return err
	}
	res, err := coord.Refresh(ctx)
	if err != nil {
		return err
	}
	if res.Dropped > 0 {
		fmt.Fprintf(a.errOut, "warning: skipped %d conversations without an id\n", res.Dropped)
	}
	return nil
}

// NewRootCmd builds the command tree around app.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "inbox",
		Short: "Work the LeadOS conversation inbox from the terminal",
		Long: `inbox lists conversations across WhatsApp, Instagram, Facebook and Gmail,
replies through the lead's channel, updates conversation status and books
appointments.

The session is read from INBOX_SESSION_ID and the server from INBOX_API_URL.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			app.out = cmd.OutOrStdout()
			app.errOut = cmd.ErrOrStderr()
		},
	}

	root.PersistentFlags().BoolVar(&app.jsonOutput, "json", false, "print JSON instead of tables")

	root.AddCommand(
		newListCmd(app),
		newShowCmd(app),
		newReplyCmd(app),
		newStatusCmd(app),
		newSummarizeCmd(app),
		newBookCmd(app),
		newLeadsCmd(app),
		newAppointmentsCmd(app),
		newStatsCmd(app),
	)
	return root
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
