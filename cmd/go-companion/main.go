package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/tartampluch/go-companion/internal/calendar"
	"github.com/tartampluch/go-companion/internal/config"
	"github.com/tartampluch/go-companion/internal/contacts"
	"github.com/tartampluch/go-companion/internal/feed"
	"github.com/tartampluch/go-companion/internal/i18n"
	"github.com/tartampluch/go-companion/internal/notify"
	"github.com/tartampluch/go-companion/internal/server"
	"github.com/tartampluch/go-companion/internal/store"
	"github.com/tartampluch/go-companion/internal/streak"
)

// main delegates to runMain so deferred calls (like closing the log file) run
// before the process terminates; os.Exit skips defers.
func main() {
	os.Exit(runMain())
}

func runMain() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var logCloser io.Closer
	defer func() {
		if logCloser != nil {
			_ = logCloser.Close()
		}
	}()

	app := &cli.Command{
		Name:      "go-companion",
		Usage:     config.UsageShort,
		UsageText: config.UsageText,
		Version:   fmt.Sprintf("%s (%s/%s)", config.Version, runtime.GOOS, runtime.GOARCH),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  config.FlagDebug,
				Usage: config.FlagDescDebug,
			},
			&cli.StringFlag{
				Name:  config.FlagConfig,
				Usage: config.FlagDescConfig,
				Value: defaultSettingsPath(),
			},
			&cli.StringFlag{
				Name:  config.FlagContacts,
				Usage: config.FlagDescContacts,
			},
			&cli.StringFlag{
				Name:  config.FlagPort,
				Usage: config.FlagDescPort,
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logCloser = setupLogging(cmd.Bool(config.FlagDebug))
			logStartupInfo()
			return ctx, nil
		},
		Commands: []*cli.Command{
			{
				Name:   config.CmdCheckin,
				Usage:  config.CmdDescCheckin,
				Action: runCheckin,
			},
			{
				Name:   config.CmdStatus,
				Usage:  config.CmdDescStatus,
				Action: runStatus,
			},
			{
				Name:   config.CmdNotifications,
				Usage:  config.CmdDescNotifications,
				Action: runNotifications,
			},
			{
				Name:   config.CmdServe,
				Usage:  config.CmdDescServe,
				Action: runServe,
			},
		},
	}

	if err := app.Run(ctx, os.Args); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		return config.ExitCodeError
	}

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

// session bundles the wired application components for one command invocation.
type session struct {
	settings config.Settings
	cal      *calendar.Calendar
	trans    *i18n.Translator
	tracker  *streak.Tracker
	engine   *notify.Engine
}

// newSession loads settings, applies flag overrides and wires the components.
func newSession(cmd *cli.Command) (*session, error) {
	settings, err := config.LoadSettings(cmd.String(config.FlagConfig))
	if err != nil {
		return nil, err
	}
	if v := cmd.String(config.FlagContacts); v != "" {
		settings.ContactsPath = v
	}
	if v := cmd.String(config.FlagPort); v != "" {
		settings.FeedPort = v
		if err := settings.Validate(); err != nil {
			return nil, err
		}
	}

	cal, err := calendar.New(calendar.RealClock{}, settings.Timezone)
	if err != nil {
		return nil, err
	}

	trans := i18n.New(settings.Language)

	kv, err := store.NewFileStore(statePath(settings))
	if err != nil {
		return nil, err
	}

	engine := &notify.Engine{
		Cal:            cal,
		FormatBirthday: trans.BirthdayFormatter(),
		FormatReminder: trans.ReminderFormatter(),
	}

	return &session{
		settings: settings,
		cal:      cal,
		trans:    trans,
		tracker:  streak.NewTracker(cal, kv),
		engine:   engine,
	}, nil
}

// loadContacts reads the configured vCard file, or returns an empty snapshot
// when no path is configured.
func (s *session) loadContacts(ctx context.Context) ([]contacts.Contact, error) {
	if s.settings.ContactsPath == "" {
		return nil, nil
	}
	loader := &contacts.Loader{Cal: s.cal}
	return loader.LoadFile(ctx, s.settings.ContactsPath)
}

func runCheckin(ctx context.Context, cmd *cli.Command) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	s.tracker.Load(ctx)
	if s.tracker.RecordCheckIn(ctx) {
		fmt.Println(s.trans.MsgData(config.TKeyMsgCheckedIn,
			map[string]any{"Streak": s.tracker.Data().CurrentStreak}))
	} else {
		fmt.Println(s.trans.Msg(config.TKeyMsgAlreadyIn))
	}
	return nil
}

func runStatus(ctx context.Context, cmd *cli.Command) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	s.tracker.Load(ctx)
	d := s.tracker.Data()
	fmt.Printf("%s: %d\n", s.trans.Msg(config.TKeyLblStreak), d.CurrentStreak)
	fmt.Printf("%s: %d\n", s.trans.Msg(config.TKeyLblLongest), d.LongestStreak)
	fmt.Printf("%s: %d\n", s.trans.Msg(config.TKeyLblCheckIns), d.TotalCheckIns)
	return nil
}

func runNotifications(ctx context.Context, cmd *cli.Command) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	list, err := s.loadContacts(ctx)
	if err != nil {
		return err
	}

	derived := s.engine.Derive(list, s.cal.Today())
	sorted := notify.SortByPriority(derived)

	if banner := notify.SelectBanner(sorted, s.cal.Now()); banner != nil {
		fmt.Printf("*** %s - %s\n", banner.Title, banner.Subtitle)
	} else {
		fmt.Println(s.trans.Msg(config.TKeyLblNoBanner))
	}

	for _, n := range sorted {
		fmt.Printf("[%s] %s - %s\n", n.Priority, n.Title, n.Subtitle)
	}
	return nil
}

func runServe(ctx context.Context, cmd *cli.Command) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}

	list, err := s.loadContacts(ctx)
	if err != nil {
		return err
	}

	builder := &feed.Builder{Cal: s.cal}
	ics, err := builder.Build(list)
	if err != nil {
		return err
	}

	srv := server.NewFeedServer(s.settings.FeedPort)
	srv.Update(ics)
	return srv.Start(ctx)
}

// defaultSettingsPath locates the settings file in the user config directory.
func defaultSettingsPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return config.SettingsFileName
	}
	return filepath.Join(base, config.AppID, config.SettingsFileName)
}

// statePath locates the state store, honoring the data_dir override.
func statePath(s config.Settings) string {
	if s.DataDir != "" {
		return filepath.Join(s.DataDir, config.StoreFileName)
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return config.StoreFileName
	}
	return filepath.Join(base, config.AppID, config.StoreFileName)
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging configures the default slog logger: stderr always, plus a
// best-effort file in the user cache directory.
func setupLogging(debugMode bool) io.Closer {
	writers := []io.Writer{os.Stderr}
	var logFile *os.File

	if logPath, err := getLogFilePath(); err == nil {
		// O_TRUNC resets logs on restart to prevent indefinite growth.
		f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		if err == nil {
			writers = append(writers, f)
			logFile = f
		} else {
			fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		}
	}

	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}

	logger := slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), opts))
	slog.SetDefault(logger)

	if logFile == nil {
		return nil
	}
	return logFile
}

// getLogFilePath determines the platform-specific cache directory for logs.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrDataDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppID)
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}
