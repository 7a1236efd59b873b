package config

import (
	"connect/game"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Environment variables override the settings file.
const (
	EnvDifficulty = "CONNECT_DIFFICULTY"
	EnvSquare     = "CONNECT_SQUARE"
	EnvSeed       = "CONNECT_SEED"
	EnvLogLevel   = "CONNECT_LOG_LEVEL"
)

// Overrides replace single fields of the difficulty preset. Nil means keep.
type Overrides struct {
	Columns          *int         `yaml:"columns"`
	Rows             *int         `yaml:"rows"`
	WinLength        *int         `yaml:"win_length"`
	SquareWin        *bool        `yaml:"square_win"`
	MaxWildcards     *int         `yaml:"max_wildcards"`
	OfferChance      *float64     `yaml:"offer_chance"`
	SearchDepth      *int         `yaml:"search_depth"`
	RandomMoveChance *float64     `yaml:"random_move_chance"`
	Colors           []game.Color `yaml:"colors"`
}

type Settings struct {
	Difficulty string    `yaml:"difficulty"`
	Square     bool      `yaml:"square"`
	Game       Overrides `yaml:"game"`
	Seed       uint64    `yaml:"seed"` // 0 picks a time based seed
	LogLevel   string    `yaml:"log_level"`
}

func Default() Settings {
	return Settings{
		Difficulty: game.Beginner.String(),
		LogLevel:   zerolog.InfoLevel.String(),
	}
}

// Load reads the YAML settings at path, if any, then applies a .env file and
// the process environment on top.
func Load(path string) (Settings, error) {
	settings := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return settings, fmt.Errorf("failed to read settings: %w", err)
		}
		if err := yaml.Unmarshal(data, &settings); err != nil {
			return settings, fmt.Errorf("failed to parse settings %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return settings, fmt.Errorf("failed to load .env: %w", err)
	}
	if err := settings.applyEnv(); err != nil {
		return settings, err
	}
	return settings, nil
}

func (s *Settings) applyEnv() error {
	if v, ok := os.LookupEnv(EnvDifficulty); ok {
		s.Difficulty = v
	}
	if v, ok := os.LookupEnv(EnvSquare); ok {
		square, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvSquare, err)
		}
		s.Square = square
	}
	if v, ok := os.LookupEnv(EnvSeed); ok {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvSeed, err)
		}
		s.Seed = seed
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		s.LogLevel = v
	}
	return nil
}

// GameConfig resolves the difficulty preset and applies the overrides.
func (s Settings) GameConfig() (game.Config, error) {
	difficulty, err := game.ParseDifficulty(s.Difficulty)
	if err != nil {
		return game.Config{}, err
	}
	cfg := difficulty.Config(s.Square)

	o := s.Game
	setInt(&cfg.Columns, o.Columns)
	setInt(&cfg.Rows, o.Rows)
	setInt(&cfg.WinLength, o.WinLength)
	setInt(&cfg.MaxWildcards, o.MaxWildcards)
	setInt(&cfg.SearchDepth, o.SearchDepth)
	if o.SquareWin != nil {
		cfg.SquareWin = *o.SquareWin
	}
	if o.OfferChance != nil {
		cfg.OfferChance = *o.OfferChance
	}
	if o.RandomMoveChance != nil {
		cfg.RandomMoveChance = *o.RandomMoveChance
	}
	switch len(o.Colors) {
	case 0:
	case 2:
		cfg.Colors = [2]game.Color{o.Colors[0], o.Colors[1]}
	default:
		return game.Config{}, fmt.Errorf("%w: need exactly two colors, got %d", game.ErrInvalidConfig, len(o.Colors))
	}

	if err := cfg.Validate(); err != nil {
		return game.Config{}, err
	}
	return cfg, nil
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

// SetLogLevel configures the global logger to write human readable lines to
// stderr at the given level.
func SetLogLevel(level string) error {
	parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	zerolog.SetGlobalLevel(parsed)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	return nil
}
