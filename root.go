package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/sadopc/hashira/internal/audio"
	"github.com/sadopc/hashira/internal/config"
	"github.com/sadopc/hashira/internal/focus"
	"github.com/sadopc/hashira/internal/store"
	"github.com/sadopc/hashira/internal/tui"
	"github.com/spf13/cobra"
)

var (
	version    = "dev"
	configPath string
	dbPath     string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "hashira",
	Short: "hashira - a Pomodoro focus timer with a bonds task list",
	Long: `hashira is a terminal focus timer. It counts down focus sessions and
short or long rests, plays cues on start, end and during focus, and keeps a
list of bonds (tasks) that are credited with every completed focus session.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default <user config dir>/hashira/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the SQLite database (overrides data.path)")
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// env bundles what every command opens.
type env struct {
	cfg     *config.Config
	logger  zerolog.Logger
	store   *store.Store
	closers []io.Closer
}

func openRuntime() (*env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if dbPath != "" {
		cfg.Data.Path = dbPath
	}

	logger, logFile, err := setupLogger(cfg.Log)
	if err != nil {
		return nil, err
	}
	rt := &env{cfg: cfg, logger: logger, closers: []io.Closer{logFile}}

	s, err := store.New(cfg.Data.Path)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("open database: %w", err)
	}
	rt.store = s
	rt.closers = append([]io.Closer{s}, rt.closers...)

	logger.Debug().Str("db", cfg.Data.Path).Msg("store opened")
	return rt, nil
}

func (rt *env) Close() {
	for _, c := range rt.closers {
		c.Close()
	}
}

// setupLogger writes to the configured log file: the terminal belongs to the
// UI.
func setupLogger(cfg config.LoggingConfig) (zerolog.Logger, io.Closer, error) {
	// Set log level
	level := zerolog.InfoLevel
	switch cfg.Level {
	case "debug":
		level = zerolog.DebugLevel
	case "info":
		level = zerolog.InfoLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("open log file: %w", err)
	}

	// Set output format
	if cfg.Format == "text" {
		return zerolog.New(zerolog.ConsoleWriter{Out: f, NoColor: true}).With().Timestamp().Logger(), f, nil
	}

	// Default to JSON
	return zerolog.New(f).With().Timestamp().Logger(), f, nil
}

// newEngine builds the focus engine from config and stored preferences.
func newEngine(rt *env) *focus.Engine {
	cfg := rt.cfg
	bank := audio.NewBank(audio.Options{
		Enabled:      cfg.Audio.Enabled,
		Player:       cfg.Audio.Player,
		VolumeScale:  cfg.Audio.VolumeScale,
		StartSound:   cfg.Audio.StartSound,
		EndSound:     cfg.Audio.EndSound,
		AmbientSound: cfg.Audio.AmbientSound,
	}, os.Stderr, rt.logger)

	d := focus.DefaultVolumes()
	return focus.New(rt.store, bank, focus.Options{
		Durations: focus.DurationsFrom(cfg.Timer.Focus, cfg.Timer.ShortBreak, cfg.Timer.LongBreak),
		Volumes: focus.Volumes{
			Start:   rt.store.SettingFloat("volume_start", d.Start),
			End:     rt.store.SettingFloat("volume_end", d.End),
			Ambient: rt.store.SettingFloat("volume_ambient", d.Ambient),
		},
		Muted:  cfg.Audio.Muted,
		Logger: rt.logger,
	})
}

func runTUI(cmd *cobra.Command, args []string) error {
	rt, err := openRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	engine := newEngine(rt)
	defer engine.Close()

	rt.logger.Info().Str("version", version).Msg("starting hashira")

	app := tui.NewApp(engine, rt.store, rt.logger)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
