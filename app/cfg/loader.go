package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Application configuration
	PagesDir       string `long:"pages-dir" env:"PAGES_DIR" default:"./pages" description:"Directory containing hosting pages (<name>.html) and their settings (<name>.yml)"`
	AssetsDir      string `long:"assets-dir" env:"ASSETS_DIR" default:"./assets" description:"Directory containing the client bundle (notices.wasm, wasm_exec.js)"`
	Port           string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	BaseUrl        string `long:"base-url" env:"BASE_URL" description:"Public base URL for the service (e.g., https://noticias.example.com)"`
	APIAccessKey   string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for authentication (optional)"`
	ReloadInterval int    `long:"reload-interval" env:"RELOAD_INTERVAL" default:"30" description:"Interval in seconds between checks for changed pages (0 disables)"`

	// Application metadata
	Timezone string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/Sao_Paulo)"`
	Debug    bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

func Load() (*Cfg, error) {
	return parse(nil)
}

// parse reads flags from args, or from os.Args when args is nil.
func parse(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	var err error
	if args == nil {
		_, err = parser.Parse()
	} else {
		_, err = parser.ParseArgs(args)
	}
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		PagesDir:       raw.PagesDir,
		AssetsDir:      raw.AssetsDir,
		Port:           raw.Port,
		BaseUrl:        raw.BaseUrl,
		APIAccessKey:   raw.APIAccessKey,
		ReloadInterval: raw.ReloadInterval,
		Timezone:       raw.Timezone,
		Debug:          raw.Debug,
		Version:        GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	return cfg, nil
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
