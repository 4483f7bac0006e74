package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/hudumahub/HudumaFinder/internal/api"
	"github.com/hudumahub/HudumaFinder/internal/geo"
	"github.com/hudumahub/HudumaFinder/internal/lockfile"
	"github.com/hudumahub/HudumaFinder/internal/store"
	"github.com/hudumahub/HudumaFinder/internal/util"
	"github.com/hudumahub/HudumaFinder/internal/whatsapp"
)

// Default configuration constants
const (
	// DefaultStateDir is the default directory for HudumaFinder state data
	DefaultStateDir = "/var/lib/hudumafinder"
	// DefaultWhatsAppDBFileName is the default whatsmeow SQLite database filename
	DefaultWhatsAppDBFileName = "whatsmeow.db"
)

func main() {
	initializeLogger()

	config := loadEnvironmentConfig()
	flags := parseCommandLineFlags(config)

	if err := ensureDirectoriesExist(flags); err != nil {
		slog.Error("Failed to create required directories", "error", err)
		os.Exit(1)
	}

	// One instance per state directory; concurrent instances would race on
	// the SQLite databases.
	lock, err := lockfile.AcquireLock(*flags.stateDir)
	if err != nil {
		slog.Error("Failed to acquire state directory lock", "error", err)
		os.Exit(1)
	}
	defer lock.Release()

	waOpts := buildWhatsAppOptions(flags)
	storeOpts := buildStoreOptions(flags)
	geoOpts := buildGeoOptions(flags)
	apiOpts := buildAPIOptions(flags)

	slog.Info("Bootstrapping HudumaFinder with configured modules")
	slog.Debug("Module options counts", "whatsapp", len(waOpts), "store", len(storeOpts), "geo", len(geoOpts), "api", len(apiOpts))
	if err := api.Run(waOpts, storeOpts, geoOpts, apiOpts); err != nil {
		slog.Error("HudumaFinder failed to run", "error", err)
		lock.Release()
		os.Exit(1)
	}
	slog.Info("HudumaFinder exited successfully")
}

// Config holds environment configuration
type Config struct {
	StateDir    string
	SessionDSN  string
	WhatsAppDSN string
	Channel     string
	APIAddr     string
	OfflineGeo  bool
}

// Flags holds command line flag values
type Flags struct {
	qrOutput   *string
	numeric    *bool
	stateDir   *string
	sessionDSN *string
	waDSN      *string
	channel    *string
	apiAddr    *string
	offline    *bool
}

// initializeLogger sets up structured logging with debug level
func initializeLogger() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	slog.SetDefault(logger)
}

// loadEnvironmentConfig loads configuration from environment variables and .env file
func loadEnvironmentConfig() Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("failed to load .env file", "error", err)
	} else {
		slog.Debug("successfully loaded .env file")
	}

	config := Config{
		StateDir:    os.Getenv("HUDUMAFINDER_STATE_DIR"),
		SessionDSN:  os.Getenv("SESSION_DB_DSN"),
		WhatsAppDSN: os.Getenv("WHATSAPP_DB_DSN"),
		Channel:     os.Getenv("HUDUMAFINDER_CHANNEL"),
		APIAddr:     os.Getenv("API_ADDR"),
		OfflineGeo:  util.ParseBoolEnv("GEO_OFFLINE", false),
	}

	if config.StateDir == "" {
		config.StateDir = DefaultStateDir
		slog.Debug("No HUDUMAFINDER_STATE_DIR set, using default", "default_state_dir", config.StateDir)
	}

	// DATABASE_URL serves both stores when the specific DSNs are unset.
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		if config.SessionDSN == "" {
			config.SessionDSN = databaseURL
		}
		if config.WhatsAppDSN == "" {
			config.WhatsAppDSN = databaseURL
		}
	}

	if config.WhatsAppDSN == "" {
		config.WhatsAppDSN = filepath.Join(config.StateDir, DefaultWhatsAppDBFileName)
		slog.Debug("No WhatsApp database DSN provided, defaulting to SQLite", "sqlite_path", config.WhatsAppDSN)
	}

	slog.Debug("environment variables loaded",
		"HUDUMAFINDER_STATE_DIR", config.StateDir,
		"SESSION_DB_DSN_SET", config.SessionDSN != "",
		"WHATSAPP_DB_DSN_SET", config.WhatsAppDSN != "",
		"HUDUMAFINDER_CHANNEL", config.Channel,
		"API_ADDR", config.APIAddr,
		"GEO_OFFLINE", config.OfflineGeo)

	return config
}

// parseCommandLineFlags parses command line arguments with environment defaults
func parseCommandLineFlags(config Config) Flags {
	flags := Flags{
		qrOutput:   flag.String("qr-output", "", "path to write login QR code"),
		numeric:    flag.Bool("numeric-code", false, "use numeric login code instead of QR code"),
		stateDir:   flag.String("state-dir", config.StateDir, "state directory for HudumaFinder data (overrides $HUDUMAFINDER_STATE_DIR)"),
		sessionDSN: flag.String("session-dsn", config.SessionDSN, "session database DSN; empty keeps sessions in memory (overrides $SESSION_DB_DSN or $DATABASE_URL)"),
		waDSN:      flag.String("whatsapp-dsn", config.WhatsAppDSN, "WhatsApp/whatsmeow database DSN (overrides $WHATSAPP_DB_DSN or $DATABASE_URL)"),
		channel:    flag.String("channel", config.Channel, "delivery channel: console, whatsapp, or twilio (overrides $HUDUMAFINDER_CHANNEL)"),
		apiAddr:    flag.String("api-addr", config.APIAddr, "API server address (overrides $API_ADDR)"),
		offline:    flag.Bool("offline", config.OfflineGeo, "disable live geocoding/POI backends, use static data only (overrides $GEO_OFFLINE)"),
	}

	flag.Parse()

	slog.Debug("flags parsed",
		"qrOutput", *flags.qrOutput,
		"numeric", *flags.numeric,
		"stateDir", *flags.stateDir,
		"sessionDSN_set", *flags.sessionDSN != "",
		"waDSN_set", *flags.waDSN != "",
		"channel", *flags.channel,
		"apiAddr", *flags.apiAddr,
		"offline", *flags.offline)

	// Keep the WhatsApp SQLite file inside an overridden state directory.
	if *flags.stateDir != config.StateDir && *flags.waDSN == filepath.Join(config.StateDir, DefaultWhatsAppDBFileName) {
		*flags.waDSN = filepath.Join(*flags.stateDir, DefaultWhatsAppDBFileName)
		slog.Debug("Updated WhatsApp DSN based on state directory", "new_state_dir", *flags.stateDir)
	}

	return flags
}

// ensureDirectoriesExist creates necessary directories for file-based storage
func ensureDirectoriesExist(flags Flags) error {
	for _, dsn := range []string{*flags.waDSN, *flags.sessionDSN} {
		if dsn == "" || store.DetectDSNType(dsn) == "postgres" {
			continue
		}
		dir := filepath.Dir(dsn)
		slog.Debug("Creating state directory for file-based database", "dir", dir)
		if err := os.MkdirAll(dir, 0755); err != nil {
			slog.Error("Failed to create state directory", "error", err, "dir", dir)
			return err
		}
	}
	return nil
}

// buildWhatsAppOptions constructs WhatsApp configuration options
func buildWhatsAppOptions(flags Flags) []whatsapp.Option {
	var waOpts []whatsapp.Option
	if *flags.qrOutput != "" {
		waOpts = append(waOpts, whatsapp.WithQRCodeOutput(*flags.qrOutput))
	}
	if *flags.numeric {
		waOpts = append(waOpts, whatsapp.WithNumericCode())
	}
	if *flags.waDSN != "" {
		waOpts = append(waOpts, whatsapp.WithDBDSN(*flags.waDSN))
	}
	return waOpts
}

// buildStoreOptions constructs session store configuration options
func buildStoreOptions(flags Flags) []store.Option {
	var storeOpts []store.Option
	if *flags.sessionDSN != "" {
		if store.DetectDSNType(*flags.sessionDSN) == "postgres" {
			storeOpts = append(storeOpts, store.WithPostgresDSN(*flags.sessionDSN))
		} else {
			storeOpts = append(storeOpts, store.WithSQLiteDSN(*flags.sessionDSN))
		}
	}
	return storeOpts
}

// buildGeoOptions constructs geo service configuration options
func buildGeoOptions(flags Flags) []geo.Option {
	var geoOpts []geo.Option
	if *flags.offline {
		geoOpts = append(geoOpts, geo.WithLiveBackendDisabled())
	}
	return geoOpts
}

// buildAPIOptions constructs API server configuration options
func buildAPIOptions(flags Flags) []api.Option {
	var apiOpts []api.Option
	if *flags.apiAddr != "" {
		apiOpts = append(apiOpts, api.WithAddr(*flags.apiAddr))
	}
	if *flags.channel != "" {
		apiOpts = append(apiOpts, api.WithChannel(*flags.channel))
	}
	return apiOpts
}
