// Package config reads start-up settings from flags, an env file and the
// environment. Flags that were set win over the environment.
package config

import (
	"errors"
	"fmt"
	log "log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	cli "github.com/spf13/pflag"
)

type Provider string

const (
	ProviderGemini  Provider = "gemini"
	ProviderOpenAI  Provider = "openai"
	ProviderCompat  Provider = "compat"
	ProviderOffline Provider = "offline"
)

type MemoryBackend string

const (
	MemoryInProcess MemoryBackend = "memory"
	MemorySQLite    MemoryBackend = "sqlite"
	MemoryRedis     MemoryBackend = "redis"
)

// ErrHelp is returned when -h was given; the usage has been printed.
var ErrHelp = cli.ErrHelp

type Config struct {
	EnvFile  string
	LogLevel string
	Proxy    string

	Provider      Provider
	APIKey        string
	Models        []string
	BaseURL       string
	RemoteTimeout time.Duration

	DataDir      string
	Session      string
	MemoryTurns  int
	MemoryTokens int
	MemoryStore  MemoryBackend
	RedisURL     string

	Socket   string
	HTTPAddr string
	BusURL   string
	Console  bool

	VoiceRate   int
	VoiceVolume float64
}

// RemoteEnabled reports whether a remote model should be tried at all.
func (c *Config) RemoteEnabled() bool {
	return c.Provider != ProviderOffline && c.APIKey != ""
}

// DefaultModels lists the models tried in order for p.
func DefaultModels(p Provider) []string {
	switch p {
	case ProviderGemini:
		return []string{"gemini-2.0-flash-lite", "gemini-2.0-flash", "gemini-1.5-flash"}
	case ProviderOpenAI:
		return []string{"gpt-4o-mini", "gpt-4.1-nano"}
	case ProviderCompat:
		return []string{"llama3.2"}
	default:
		return nil
	}
}

// Load parses args (without the program name), loads the env file and
// fills the rest from the environment.
func Load(args []string) (*Config, error) {
	fs := cli.NewFlagSet("maze", cli.ContinueOnError)

	envFile := fs.StringP("env", "e", ".env", "Env file path")
	logLevel := fs.StringP("log", "l", "info", "Log level")
	proxyAddr := fs.StringP("proxy", "p", "", "Socks proxy address for remote calls")
	provider := fs.String("provider", "", "Remote model provider: gemini|openai|compat|offline")
	dataDir := fs.String("data-dir", "", "Directory for tasks, notes and memory")
	httpAddr := fs.String("http", "", "Serve the HTTP API on this address")
	busURL := fs.String("bus", "", "Websocket bus to join")
	socket := fs.String("socket", "", "Unix socket for maze-ctl")
	session := fs.String("session", "", "Conversation id to resume")
	noConsole := fs.Bool("no-console", false, "Do not read commands from the terminal")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if err := godotenv.Load(*envFile); err != nil {
		log.Debug("Env file not loaded", "path", *envFile, "err", err)
	}

	cfg := &Config{
		EnvFile:  *envFile,
		LogLevel: getEnv("MAZE_LOG", "info"),
		Proxy:    getEnv("MAZE_PROXY", ""),

		Provider: Provider(strings.ToLower(getEnv("MAZE_PROVIDER", string(ProviderGemini)))),
		BaseURL:  getEnv("MAZE_BASE_URL", "http://localhost:11434/v1"),

		DataDir:     getEnv("MAZE_DATA_DIR", "memory"),
		Session:     getEnv("MAZE_SESSION", ""),
		MemoryStore: MemoryBackend(strings.ToLower(getEnv("MAZE_MEMORY_STORE", string(MemoryInProcess)))),
		RedisURL:    getEnv("MAZE_REDIS_URL", "redis://localhost:6379/0"),

		Socket:   getEnv("MAZE_SOCKET", "/tmp/maze.sock"),
		HTTPAddr: getEnv("MAZE_HTTP", ""),
		BusURL:   getEnv("MAZE_BUS_URL", ""),
		Console:  !getBoolEnv("MAZE_NO_CONSOLE", false),
	}

	var errs []error
	cfg.MemoryTurns, errs = getIntEnv("MAZE_MEMORY_TURNS", 10, errs)
	cfg.MemoryTokens, errs = getIntEnv("MAZE_MEMORY_TOKENS", 0, errs)
	cfg.VoiceRate, errs = getIntEnv("MAZE_VOICE_RATE", 175, errs)
	cfg.VoiceVolume, errs = getFloatEnv("MAZE_VOICE_VOLUME", 1.0, errs)
	cfg.RemoteTimeout, errs = getDurationEnv("MAZE_REMOTE_TIMEOUT", 8*time.Second, errs)

	if fs.Changed("log") {
		cfg.LogLevel = *logLevel
	}
	if fs.Changed("proxy") {
		cfg.Proxy = *proxyAddr
	}
	if fs.Changed("provider") {
		cfg.Provider = Provider(strings.ToLower(*provider))
	}
	if fs.Changed("data-dir") {
		cfg.DataDir = *dataDir
	}
	if fs.Changed("http") {
		cfg.HTTPAddr = *httpAddr
	}
	if fs.Changed("bus") {
		cfg.BusURL = *busURL
	}
	if fs.Changed("socket") {
		cfg.Socket = *socket
	}
	if fs.Changed("session") {
		cfg.Session = *session
	}
	if fs.Changed("no-console") {
		cfg.Console = !*noConsole
	}

	switch cfg.Provider {
	case ProviderGemini:
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	case ProviderOpenAI:
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	case ProviderCompat:
		cfg.APIKey = getEnv("MAZE_COMPAT_API_KEY", "ollama")
	case ProviderOffline:
	default:
		errs = append(errs, fmt.Errorf("unknown provider %q", cfg.Provider))
	}

	cfg.Models = splitList(os.Getenv("MAZE_MODELS"))
	if len(cfg.Models) == 0 {
		cfg.Models = DefaultModels(cfg.Provider)
	}

	switch cfg.MemoryStore {
	case MemoryInProcess, MemorySQLite, MemoryRedis:
	default:
		errs = append(errs, fmt.Errorf("unknown memory store %q", cfg.MemoryStore))
	}
	if cfg.MemoryTurns <= 0 {
		errs = append(errs, fmt.Errorf("MAZE_MEMORY_TURNS must be positive, got %d", cfg.MemoryTurns))
	}
	if cfg.VoiceVolume < 0 || cfg.VoiceVolume > 1 {
		errs = append(errs, fmt.Errorf("MAZE_VOICE_VOLUME must be within [0,1], got %v", cfg.VoiceVolume))
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getIntEnv(key string, def int, errs []error) (int, []error) {
	v := os.Getenv(key)
	if v == "" {
		return def, errs
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, append(errs, fmt.Errorf("%s: %w", key, err))
	}
	return n, errs
}

func getFloatEnv(key string, def float64, errs []error) (float64, []error) {
	v := os.Getenv(key)
	if v == "" {
		return def, errs
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def, append(errs, fmt.Errorf("%s: %w", key, err))
	}
	return f, errs
}

func getDurationEnv(key string, def time.Duration, errs []error) (time.Duration, []error) {
	v := os.Getenv(key)
	if v == "" {
		return def, errs
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def, append(errs, fmt.Errorf("%s: %w", key, err))
	}
	return d, errs
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
