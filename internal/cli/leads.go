package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"leados.app/inbox/internal/domain"
	"leados.app/inbox/internal/gateway"
	"leados.app/inbox/internal/inbox"
)

func newLeadsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "leads",
		Short: "List leads and their channel identifiers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			leads, err := app.API.ListLeads(cmd.Context())
			if err != nil {
				return err
			}
			if app.jsonOutput {
				return printJSON(app.out, leads)
			}
			if len(leads) == 0 {
				fmt.Fprintln(app.out, "No leads found.")
				return nil
			}
			tw := tabwriter.NewWriter(app.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tPHONE\tWHATSAPP\tINSTAGRAM\tFACEBOOK\tBOOKED")
			for _, l := range leads {
				booked := ""
				if l.BookedTimestamp != nil {
					booked = l.BookedTimestamp.In(app.Location).Format("2006-01-02 3:04 PM")
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%t\t%s\t%s\t%s\n",
					l.ID, l.Name, l.PhoneNumber, l.HasWhatsApp, l.Metadata.InstagramID, l.Metadata.FacebookID, booked)
			}
			return tw.Flush()
		},
	}
}

func newBookCmd(app *App) *cobra.Command {
	var date, slot, with, conversation string

	cmd := &cobra.Command{
		Use:   "book <lead-id>",
		Short: "Book an appointment slot for a lead",
		Example: `  inbox book 1234 --date 2025-01-01 --time "10:30 AM"
  inbox book 1234 --date 2025-01-01 --time "2 PM" --with "Ana Ruiz" --conversation 5678`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			leadID := args[0]

			if with == "" {
				coord, err := app.coordinator(ctx)
				if err != nil {
					return err
				}
				at, err := coord.BookAppointment(ctx, leadID, date, slot)
				if err != nil {
					return err
				}
				fmt.Fprintf(app.out, "Booked lead %s for %s\n", leadID, at.In(app.Location).Format("Mon Jan 2 2006, 3:04 PM MST"))
				return nil
			}

			if date == "" || slot == "" {
				return inbox.ErrSlotNotSelected
			}
			appt, err := app.API.CreateAppointment(ctx, gateway.CreateAppointmentRequest{
				Date:         date,
				Time:         slot,
				LeadID:       leadID,
				With:         with,
				Conversation: conversation,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(app.out, "Appointment %s with %s on %s at %s\n", appt.ID, appt.With, appt.Date, appt.Time)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "calendar day, YYYY-MM-DD")
	cmd.Flags().StringVar(&slot, "time", "", `slot label such as "10:30 AM"`)
	cmd.Flags().StringVar(&with, "with", "", "who the appointment is with; records a full appointment")
	cmd.Flags().StringVar(&conversation, "conversation", "", "conversation the appointment came from")
	return cmd
}

func newAppointmentsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "appointments",
		Short: "List booked appointments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			appts, err := app.API.ListAppointments(cmd.Context())
			if err != nil {
				return err
			}
			if app.jsonOutput {
				return printJSON(app.out, appts)
			}
			if len(appts) == 0 {
				fmt.Fprintln(app.out, "No appointments booked.")
				return nil
			}
			tw := tabwriter.NewWriter(app.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "DATE\tTIME\tWITH\tLEAD")
			for _, a := range appts {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", a.Date, a.Time, a.With, a.LeadID)
			}
			return tw.Flush()
		},
	}
}

type stats struct {
	Conversations inbox.Tally `json:"conversations"`
	Leads         int         `json:"leads"`
	Booked        int         `json:"booked"`
	Appointments  int         `json:"appointments"`
}

func newStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Counts by channel and status, plus lead and appointment totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				leads []gateway.Lead
				appts []gateway.Appointment
			)

			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error { return app.refresh(ctx) })
			g.Go(func() error {
				var err error
				leads, err = app.API.ListLeads(ctx)
				return err
			})
			g.Go(func() error {
				var err error
				appts, err = app.API.ListAppointments(ctx)
				return err
			})
			if err := g.Wait(); err != nil {
				return err
			}

			s := stats{Conversations: app.List.Tally(), Leads: len(leads), Appointments: len(appts)}
			for _, l := range leads {
				if l.BookedTimestamp != nil {
					s.Booked++
				}
			}

			if app.jsonOutput {
				return printJSON(app.out, s)
			}

			fmt.Fprintf(app.out, "Conversations: %d\n", s.Conversations.Total)
			for _, ch := range domain.Channels {
				fmt.Fprintf(app.out, "  %-12s %d\n", ch, s.Conversations.ByChannel[ch])
			}
			for _, st := range domain.Statuses {
				fmt.Fprintf(app.out, "  %-16s %d\n", st, s.Conversations.ByStatus[st])
			}
			fmt.Fprintf(app.out, "Leads: %d (%d booked)\n", s.Leads, s.Booked)
			fmt.Fprintf(app.out, "Appointments: %d\n", s.Appointments)
			return nil
		},
	}
}
