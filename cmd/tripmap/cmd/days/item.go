package days

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/tripmap/internal/cmd/alerts"
	"github.com/agentstation/tripmap/internal/cmd/application"
	"github.com/agentstation/tripmap/internal/cmd/cmdutil"
	"github.com/agentstation/tripmap/pkg/collections"
	"github.com/agentstation/tripmap/pkg/errors"
	"github.com/agentstation/tripmap/pkg/trip"
)

// NewItemCommand creates the item command for editing schedule stops.
func NewItemCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Add, update, move or remove a stop in a day's schedule",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(
		newAddCommand(app),
		newUpdateCommand(app),
		newRemoveCommand(app),
		newMoveCommand(app),
	)
	return cmd
}

// itemFlags mirrors collections.ItemInput as command flags.
type itemFlags struct {
	in collections.ItemInput
}

func (f *itemFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.in.Time, "time", "", "start time as HH:MM (empty for untimed)")
	fl.StringVar(&f.in.Title, "title", "", "stop title")
	fl.StringVar(&f.in.Duration, "duration", "", "how long to stay, e.g. 1.5h")
	fl.StringVar(&f.in.Location, "location", "", "place name or address")
	fl.StringVar(&f.in.Description, "description", "", "description")
	fl.StringVar(&f.in.Note, "note", "", "note")
	fl.StringVar(&f.in.Photo, "photo", "", "photo as a data URL")
	fl.BoolVar(&f.in.IsOptional, "optional", false, "mark the stop as optional")
	fl.StringVar((*string)(&f.in.TransportMode), "transport", "", "how to reach the next stop: Train, Subway, Walk, Bus, Taxi, Rapit, Haruka, Flight")
	fl.StringVar(&f.in.TransportDetail, "transport-detail", "", "line or route to the next stop")
	fl.StringVar(&f.in.TransportDuration, "transport-duration", "", "travel time to the next stop")
	fl.StringVar(&f.in.TransportNote, "transport-note", "", "transport note")
}

// overlay copies the flags the user set onto in.
func (f *itemFlags) overlay(cmd *cobra.Command, in collections.ItemInput) collections.ItemInput {
	set := func(name string) bool { return cmd.Flags().Changed(name) }
	if set("time") {
		in.Time = f.in.Time
	}
	if set("title") {
		in.Title = f.in.Title
	}
	if set("duration") {
		in.Duration = f.in.Duration
	}
	if set("location") {
		in.Location = f.in.Location
	}
	if set("description") {
		in.Description = f.in.Description
	}
	if set("note") {
		in.Note = f.in.Note
	}
	if set("photo") {
		in.Photo = f.in.Photo
	}
	if set("optional") {
		in.IsOptional = f.in.IsOptional
	}
	if set("transport") {
		in.TransportMode = f.in.TransportMode
	}
	if set("transport-detail") {
		in.TransportDetail = f.in.TransportDetail
	}
	if set("transport-duration") {
		in.TransportDuration = f.in.TransportDuration
	}
	if set("transport-note") {
		in.TransportNote = f.in.TransportNote
	}
	return in
}

// inputFrom turns a stored stop back into an input so updates can start from it.
func inputFrom(it trip.ScheduleItem) collections.ItemInput {
	in := collections.ItemInput{
		Time:        it.Time,
		Title:       it.Title,
		Duration:    it.Duration,
		Location:    it.Location,
		Description: it.Description,
		Note:        it.Note,
		Photo:       it.Photo,
		IsOptional:  it.IsOptional,
	}
	if t := it.TransportAfter; t != nil {
		in.TransportMode = t.Mode
		in.TransportDetail = t.Detail
		in.TransportDuration = t.Duration
		in.TransportNote = t.Note
	}
	return in
}

func newAddCommand(app application.Application) *cobra.Command {
	flags := &itemFlags{}
	cmd := &cobra.Command{
		Use:     "add <day>",
		Short:   "Add a stop to a day",
		Example: `  tripmap item add 2 --time 09:00 --title 伏見稻荷大社 --duration 2h`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dayID, err := cmdutil.DayArg(args[0])
			if err != nil {
				return err
			}
			tm, err := app.Trip()
			if err != nil {
				return err
			}
			item, err := tm.Itinerary().AddItem(cmd.Context(), dayID, flags.in)
			if err != nil {
				return err
			}
			return cmdutil.Notify(cmd, app, alerts.Successf("Added %s to day %d", item.Title, dayID).WithDetails("id: "+item.ID))
		},
	}
	flags.register(cmd)
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newUpdateCommand(app application.Application) *cobra.Command {
	flags := &itemFlags{}
	cmd := &cobra.Command{
		Use:     "update <day> <item-id>",
		Short:   "Change fields of a stop; unset flags keep their value",
		Example: `  tripmap item update 2 item-1a2b --time 08:30 --note "Go early"`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dayID, err := cmdutil.DayArg(args[0])
			if err != nil {
				return err
			}
			tm, err := app.Trip()
			if err != nil {
				return err
			}
			day, err := tm.Itinerary().Day(dayID)
			if err != nil {
				return err
			}
			current, ok := findItem(day, args[1])
			if !ok {
				return errors.NewNotFoundError("schedule item", args[1])
			}
			item, err := tm.Itinerary().UpdateItem(cmd.Context(), dayID, current.ID, flags.overlay(cmd, inputFrom(current)))
			if err != nil {
				return err
			}
			return cmdutil.Notify(cmd, app, alerts.Successf("Updated %s on day %d", item.Title, dayID))
		},
	}
	flags.register(cmd)
	return cmd
}

func newRemoveCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <day> <item-id>",
		Aliases: []string{"remove", "delete"},
		Short:   "Remove a stop from a day",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dayID, err := cmdutil.DayArg(args[0])
			if err != nil {
				return err
			}
			tm, err := app.Trip()
			if err != nil {
				return err
			}
			if err := tm.Itinerary().DeleteItem(cmd.Context(), dayID, args[1]); err != nil {
				return err
			}
			return cmdutil.Notify(cmd, app, alerts.Successf("Removed %s from day %d", args[1], dayID))
		},
	}
}

func newMoveCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "move <from-day> <to-day> <item-id>",
		Short: "Move a stop to another day",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := cmdutil.DayArg(args[0])
			if err != nil {
				return err
			}
			to, err := cmdutil.DayArg(args[1])
			if err != nil {
				return err
			}
			tm, err := app.Trip()
			if err != nil {
				return err
			}
			if err := tm.Itinerary().MoveItem(cmd.Context(), from, to, args[2]); err != nil {
				return err
			}
			return cmdutil.Notify(cmd, app, alerts.Successf("Moved %s from day %d to day %d", args[2], from, to))
		},
	}
}

func findItem(day trip.DayItinerary, id string) (trip.ScheduleItem, bool) {
	for _, it := range day.Items {
		if it.ID == id {
			return it, true
		}
	}
	return trip.ScheduleItem{}, false
}

