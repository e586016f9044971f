package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Server contains the HTTP listener configuration.
type Server struct {
	Port        int      `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
}

// Storage contains the file locations the service reads and writes.
type Storage struct {
	QuestionsDir     string `toml:"questions_dir"`
	ResultsDir       string `toml:"results_dir"`
	FeedbackFile     string `toml:"feedback_file"`
	StarFeedbackFile string `toml:"star_feedback_file"`
}

// Log controls the process logger.
type Log struct {
	Level  string `toml:"level"`  // debug, info, warn, error
	Format string `toml:"format"` // auto, text, json
}

// Config is the full service configuration.
type Config struct {
	Server  Server   `toml:"server"`
	Storage Storage  `toml:"storage"`
	AI      AIConfig `toml:"ai"`
	Log     Log      `toml:"log"`
}

// Default returns the configuration used when nothing else is set.
func Default() Config {
	return Config{
		Server: Server{
			Port:        8080,
			CORSOrigins: []string{"*"},
		},
		Storage: Storage{
			QuestionsDir:     "json",
			ResultsDir:       "post",
			FeedbackFile:     "feedback.json",
			StarFeedbackFile: "star_feedback.json",
		},
		AI: DefaultAIConfig(),
		Log: Log{
			Level:  "info",
			Format: "auto",
		},
	}
}

// Load builds the configuration in layers: defaults, the optional TOML file at
// path, a .env file in the working directory, then environment variables.
// An empty path skips the file layer.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	// .env is optional; existing environment variables win over it
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return errors.New("invalid PORT env variable")
		}
		c.Server.Port = port
	}
	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		c.Server.CORSOrigins = strings.Split(origins, ",")
	}

	c.Storage.QuestionsDir = getEnv("SURVEY_QUESTIONS_DIR", c.Storage.QuestionsDir)
	c.Storage.ResultsDir = getEnv("SURVEY_RESULTS_DIR", c.Storage.ResultsDir)
	c.Storage.FeedbackFile = getEnv("SURVEY_FEEDBACK_FILE", c.Storage.FeedbackFile)
	c.Storage.StarFeedbackFile = getEnv("SURVEY_STAR_FEEDBACK_FILE", c.Storage.StarFeedbackFile)

	c.AI.APIKey = getEnv("GEMINI_API_KEY", c.AI.APIKey)
	c.AI.Model = getEnv("GEMINI_MODEL", c.AI.Model)
	if ms := os.Getenv("GEMINI_TIMEOUT_MS"); ms != "" {
		v, err := strconv.Atoi(ms)
		if err != nil {
			return errors.New("invalid GEMINI_TIMEOUT_MS env variable")
		}
		c.AI.TimeoutMS = v
	}

	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("LOG_FORMAT", c.Log.Format)
	return nil
}

func (c *Config) normalize() {
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
	for i, o := range c.Server.CORSOrigins {
		c.Server.CORSOrigins[i] = strings.TrimSpace(o)
	}
	if c.AI.Model == "" {
		c.AI.Model = DefaultGeminiModel
	}
}

// Validate reports the first configuration problem found.
func (c Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	for name, v := range map[string]string{
		"storage.questions_dir":      c.Storage.QuestionsDir,
		"storage.results_dir":        c.Storage.ResultsDir,
		"storage.feedback_file":      c.Storage.FeedbackFile,
		"storage.star_feedback_file": c.Storage.StarFeedbackFile,
	} {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%s must be set", name)
		}
	}
	if c.AI.TimeoutMS <= 0 {
		return fmt.Errorf("ai.timeout_ms must be positive, got %d", c.AI.TimeoutMS)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q must be debug, info, warn or error", c.Log.Level)
	}
	switch c.Log.Format {
	case "auto", "text", "json":
	default:
		return fmt.Errorf("log.format %q must be auto, text or json", c.Log.Format)
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + strconv.Itoa(c.Server.Port)
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
