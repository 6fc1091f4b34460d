package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/atomicstack/spider-tui/internal/app"
	"github.com/atomicstack/spider-tui/internal/protocol"
	"github.com/atomicstack/spider-tui/internal/theme"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	// File is the config file that was consulted, whether or not it existed.
	File  string
	Flags map[string]string
	Args  []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	DefaultConfigFile  = "spider_tui_config.json"
	DefaultLogFile     = "spider_tui.log"
	DefaultStateFile   = "client_state.dat"
	DefaultKeyfile     = "spider_keyfile.json"
	DefaultCompression = "zstd"
	DefaultColor       = "auto"
)

const (
	envConfig      = "SPIDER_TUI_CONFIG"
	envLogPath     = "SPIDER_TUI_LOG_PATH"
	envStatePath   = "SPIDER_TUI_STATE_PATH"
	envKeyfilePath = "SPIDER_TUI_KEYFILE"
	envTrace       = "SPIDER_TUI_TRACE"
	envAddress     = "SPIDER_TUI_ADDRESS"
	envCompression = "SPIDER_TUI_COMPRESSION"
	envColor       = "SPIDER_TUI_COLOR"
	envWidth       = "SPIDER_TUI_WIDTH"
	envHeight      = "SPIDER_TUI_HEIGHT"
	envInline      = "SPIDER_TUI_INLINE"
)

// fileConfig is the on-disk shape. Absent keys keep their defaults.
type fileConfig struct {
	LogPath     *string `json:"log_path" yaml:"log_path"`
	StatePath   *string `json:"state_data_path" yaml:"state_data_path"`
	KeyfilePath *string `json:"keyfile_path" yaml:"keyfile_path"`
	Trace       *bool   `json:"trace" yaml:"trace"`
	Address     *string `json:"address" yaml:"address"`
	Compression *string `json:"compression" yaml:"compression"`
	Color       *string `json:"color" yaml:"color"`
	Width       *int    `json:"width" yaml:"width"`
	Height      *int    `json:"height" yaml:"height"`
	Inline      *bool   `json:"inline" yaml:"inline"`
}

// values is the flat set every layer writes into.
type values struct {
	logPath     string
	statePath   string
	keyfilePath string
	trace       bool
	address     string
	compression string
	color       string
	width       int
	height      int
	inline      bool
}

func defaults() values {
	return values{
		logPath:     DefaultLogFile,
		statePath:   DefaultStateFile,
		keyfilePath: DefaultKeyfile,
		compression: DefaultCompression,
		color:       DefaultColor,
	}
}

type flagValues struct {
	logPath     *string
	statePath   *string
	keyfilePath *string
	trace       *bool
	address     *string
	compression *string
	color       *string
	width       *int
	height      *int
	inline      *bool
}

func newFlagSet() (*pflag.FlagSet, flagValues) {
	flags := pflag.NewFlagSet("spider-tui", pflag.ContinueOnError)
	flags.SetOutput(io.Discard)
	flags.Usage = func() {}
	f := flagValues{
		logPath:     flags.String("log-path", DefaultLogFile, "path to the log file"),
		statePath:   flags.String("state-path", DefaultStateFile, "path to the persisted client state"),
		keyfilePath: flags.String("keyfile", DefaultKeyfile, "path to the host key file"),
		trace:       flags.Bool("trace", false, "enable JSON trace logging"),
		address:     flags.StringP("address", "a", "", "host address tried before the saved ones"),
		compression: flags.StringP("compression", "c", DefaultCompression, "frame compression: none, lz4 or zstd"),
		color:       flags.String("color", DefaultColor, "color profile: auto, ascii, ansi, ansi256 or truecolor"),
		width:       flags.Int("width", 0, "fixed frame width in cells (0 follows the terminal)"),
		height:      flags.Int("height", 0, "fixed frame height in rows (0 follows the terminal)"),
		inline:      flags.Bool("inline", false, "draw without switching to the alternate screen"),
	}
	return flags, f
}

// Load parses configuration from CLI arguments, environment variables and
// the config file.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment. Layers apply
// in order: defaults, config file, environment, flags.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	flags, f := newFlagSet()
	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	path := envOrDefault(env, envConfig, DefaultConfigFile)
	if flags.NArg() > 0 {
		path = flags.Arg(0)
	}

	v := defaults()
	if err := applyFile(&v, path); err != nil {
		return Config{}, err
	}
	applyEnv(&v, env)

	if flags.Changed("log-path") {
		v.logPath = *f.logPath
	}
	if flags.Changed("state-path") {
		v.statePath = *f.statePath
	}
	if flags.Changed("keyfile") {
		v.keyfilePath = *f.keyfilePath
	}
	if flags.Changed("trace") {
		v.trace = *f.trace
	}
	if flags.Changed("address") {
		v.address = *f.address
	}
	if flags.Changed("compression") {
		v.compression = *f.compression
	}
	if flags.Changed("color") {
		v.color = *f.color
	}
	if flags.Changed("width") {
		v.width = *f.width
	}
	if flags.Changed("height") {
		v.height = *f.height
	}
	if flags.Changed("inline") {
		v.inline = *f.inline
	}

	cfg := Config{
		App: app.Config{
			StatePath:   v.statePath,
			KeyfilePath: v.keyfilePath,
			Address:     v.address,
			Compression: v.compression,
			Color:       v.color,
			Width:       v.width,
			Height:      v.height,
			Inline:      v.inline,
		},
		Logging: Logging{
			FilePath: v.logPath,
			Trace:    v.trace,
		},
		File: path,
		Flags: map[string]string{
			"config":      path,
			"log-path":    v.logPath,
			"state-path":  v.statePath,
			"keyfile":     v.keyfilePath,
			"trace":       strconv.FormatBool(v.trace),
			"address":     v.address,
			"compression": v.compression,
			"color":       v.color,
			"width":       strconv.Itoa(v.width),
			"height":      strconv.Itoa(v.height),
			"inline":      strconv.FormatBool(v.inline),
		},
		Args: append([]string(nil), args...),
	}
	return cfg, nil
}

// applyFile merges the config file at path into v. A missing file is not
// an error. YAML is selected by extension; anything else is JSON with
// comments.
func applyFile(v *values, path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(jsonc.ToJSON(data), &fc)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	setString(&v.logPath, fc.LogPath)
	setString(&v.statePath, fc.StatePath)
	setString(&v.keyfilePath, fc.KeyfilePath)
	setString(&v.address, fc.Address)
	setString(&v.compression, fc.Compression)
	setString(&v.color, fc.Color)
	if fc.Trace != nil {
		v.trace = *fc.Trace
	}
	if fc.Width != nil {
		v.width = *fc.Width
	}
	if fc.Height != nil {
		v.height = *fc.Height
	}
	if fc.Inline != nil {
		v.inline = *fc.Inline
	}
	return nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func applyEnv(v *values, env map[string]string) {
	v.logPath = envOrDefault(env, envLogPath, v.logPath)
	v.statePath = envOrDefault(env, envStatePath, v.statePath)
	v.keyfilePath = envOrDefault(env, envKeyfilePath, v.keyfilePath)
	v.trace = envOrBool(env, envTrace, v.trace)
	v.address = envOrDefault(env, envAddress, v.address)
	v.compression = envOrDefault(env, envCompression, v.compression)
	v.color = envOrDefault(env, envColor, v.color)
	v.width = envOrInt(env, envWidth, v.width)
	v.height = envOrInt(env, envHeight, v.height)
	v.inline = envOrBool(env, envInline, v.inline)
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if errors.Is(err, pflag.ErrHelp) {
		fmt.Fprintln(os.Stderr, Usage())
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Usage returns the command-line help text.
func Usage() string {
	flags, _ := newFlagSet()
	return "usage: spider-tui [flags] [config-file]\n\n" + flags.FlagUsages()
}

// Validate rejects values the application cannot run with.
func Validate(cfg Config) error {
	var errs []error
	if _, err := protocol.ParseCompression(cfg.App.Compression); err != nil {
		errs = append(errs, err)
	}
	if _, _, ok := theme.Profile(cfg.App.Color); !ok {
		errs = append(errs, fmt.Errorf("unknown color profile %q", cfg.App.Color))
	}
	if cfg.App.Width < 0 {
		errs = append(errs, fmt.Errorf("width must be >= 0 (got %d)", cfg.App.Width))
	}
	if cfg.App.Height < 0 {
		errs = append(errs, fmt.Errorf("height must be >= 0 (got %d)", cfg.App.Height))
	}
	if cfg.App.StatePath == "" {
		errs = append(errs, errors.New("state path must not be empty"))
	}
	return errors.Join(errs...)
}
