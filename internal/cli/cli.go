package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"dojosync/internal/browser"
	"dojosync/internal/config"
	"dojosync/internal/gcal"
	"dojosync/internal/homebase"
	"dojosync/internal/mystudio"
	"dojosync/internal/school"
	"dojosync/internal/storage"
)

var (
	flagHeadless bool
	flagKeepOpen bool
	flagRemote   bool
	flagSettings string
	flagDataDir  string
	flagVerbose  bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dojosync",
		Short: "Sync today's class schedule and instructor shifts to Google Calendar",
		Long: `Scrapes today's class rosters from MyStudio and instructor shifts from
Homebase, merges classes that share a start time, assigns instructors to
the classes their shifts cover, and creates one Google Calendar event per
merged class.`,
		RunE:         runSync,
		SilenceUsage: true,
	}

	cmd.Flags().BoolVar(&flagHeadless, "headless", true, "Run the browser without a visible window")
	cmd.Flags().BoolVar(&flagKeepOpen, "keep-browser-open", false, "Leave the browser open after the run")
	cmd.Flags().BoolVar(&flagRemote, "remote-browser", false, "Connect to a browser at "+browser.DefaultRemoteURL+" instead of launching one")
	cmd.Flags().StringVar(&flagSettings, "settings", config.DefaultPath, "Path to the settings file")
	cmd.Flags().StringVar(&flagDataDir, "data-dir", storage.DefaultDataDir, "Data directory for sync records")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	return cmd
}

// runSync is the main command logic
func runSync(cmd *cobra.Command, args []string) error {
	log := newLogger(flagVerbose)

	if !config.Exists(flagSettings) {
		if err := config.WriteTemplate(flagSettings); err != nil {
			return err
		}
		fmt.Printf("Please fill out the %s file and run again.\n", flagSettings)
		return nil
	}

	settings, err := config.Load(flagSettings)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	// Load credentials up front so a missing secrets file or consent flow
	// surfaces before any scraping starts.
	creds, err := gcal.LoadCredentials(ctx, settings.GoogleAPI)
	if err != nil {
		return fmt.Errorf("loading Google API credentials: %w", err)
	}

	opts := browser.Options{
		Headless: flagHeadless,
		KeepOpen: flagKeepOpen,
		Remote:   flagRemote,
	}

	// The two scrapes share nothing and each enforces its own element
	// timeouts, so they run as a plain two-task join with no
	// cross-cancellation.
	var createSessions, jrSessions []*school.Session
	var instructors []*school.Instructor

	var g errgroup.Group
	g.Go(func() error {
		var err error
		createSessions, jrSessions, err = mystudio.Read(ctx, settings.MyStudio, opts, mystudio.DefaultAttempts,
			log.With().Str("component", "mystudio").Logger())
		return err
	})
	g.Go(func() error {
		var err error
		instructors, err = homebase.Read(ctx, settings.Homebase, opts,
			log.With().Str("component", "homebase").Logger())
		return err
	})
	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("an error occurred while reading data from websites")
		return err
	}

	// Instructors cover whole time blocks, so assignment runs against the
	// CREATE sessions before the JR rosters are folded in.
	school.AssignInstructors(createSessions, instructors)
	combined := school.Combine(append(append([]*school.Session(nil), createSessions...), jrSessions...)...)

	log.Info().
		Int("sessions", len(combined)).
		Int("instructors", len(instructors)).
		Msg("schedule reconciled")

	saveRecord(combined, instructors, log)

	publisher, err := gcal.NewPublisher(ctx, creds, settings.GoogleAPI.CalendarID,
		log.With().Str("component", "gcal").Logger())
	if err != nil {
		return err
	}
	if err := publisher.AddSessions(combined, settings.Students.Unity, settings.Students.Focus); err != nil {
		// The run still counts: events created before the failure stay in
		// place and the next run starts fresh.
		log.Error().Err(err).Msg("could not add events to Google Calendar")
	}

	return nil
}

// saveRecord writes the sync record; failures are logged, never fatal.
func saveRecord(sessions []*school.Session, instructors []*school.Instructor, log zerolog.Logger) {
	store, err := storage.New(flagDataDir)
	if err != nil {
		log.Warn().Err(err).Msg("skipping sync record")
		return
	}

	record := storage.NewRecord(sessions, instructors)
	if previous, err := store.LoadRecord(record.SyncedAt); err == nil && previous != nil {
		log.Info().Time("previous_sync", previous.SyncedAt).Msg("replacing today's earlier sync record")
	}

	if err := store.SaveRecord(record); err != nil {
		log.Warn().Err(err).Msg("skipping sync record")
	}
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}
