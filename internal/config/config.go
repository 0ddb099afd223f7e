package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/mechlab/internal/physics"
)

const (
	DefaultTolerancePercent = 5.0
	DefaultQuizTime         = 2.0
	DefaultFPS              = 30
	DefaultTheme            = "default"

	DefaultVectorMagnitude = 10.0
	DefaultVectorBAngle    = 90.0

	DefaultLaunchSpeed  = 50.0
	DefaultLaunchAngle  = 45.0
	DefaultMaxDelta     = 0.1
	DefaultReplayFactor = 0.5

	DefaultMass      = 10.0
	DefaultMuStatic  = 0.5
	DefaultMuKinetic = 0.3
	DefaultHeight    = 50.0

	MinTimeScale = 0.1
	MaxTimeScale = 5.0
)

// EnvPrefix is prepended to every environment override, e.g.
// MECHLAB_FORCES_MASS.
const EnvPrefix = "MECHLAB"

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Logger     LoggerConfig     `mapstructure:"logger" yaml:"logger"`
	Metrics    MetricsConfig    `mapstructure:"metrics" yaml:"metrics"`
	Display    DisplayConfig    `mapstructure:"display" yaml:"display"`
	Answers    AnswersConfig    `mapstructure:"answers" yaml:"answers"`
	Challenge  ChallengeConfig  `mapstructure:"challenge" yaml:"challenge"`
	Vectors    VectorsConfig    `mapstructure:"vectors" yaml:"vectors"`
	Projectile ProjectileConfig `mapstructure:"projectile" yaml:"projectile"`
	Forces     ForcesConfig     `mapstructure:"forces" yaml:"forces"`
	Energy     EnergyConfig     `mapstructure:"energy" yaml:"energy"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level" yaml:"level"`
	Format     string `mapstructure:"format" yaml:"format"`
	LogFile    string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize    int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge     int    `mapstructure:"max_age" yaml:"max_age"`
	Compress   bool   `mapstructure:"compress" yaml:"compress"`
}

// MetricsConfig controls the Prometheus textfile written on exit. An empty
// File disables it.
type MetricsConfig struct {
	File string `mapstructure:"file" yaml:"file"`
}

type DisplayConfig struct {
	Theme string `mapstructure:"theme" yaml:"theme"`
	FPS   int    `mapstructure:"fps" yaml:"fps"`
}

type AnswersConfig struct {
	TolerancePercent float64 `mapstructure:"tolerance_percent" yaml:"tolerance_percent"`
	// QuizTime is the instant the projectile questions ask about.
	QuizTime float64 `mapstructure:"quiz_time" yaml:"quiz_time"`
}

// ChallengeConfig seeds the challenge generator. Zero picks a random seed.
type ChallengeConfig struct {
	Seed uint64 `mapstructure:"seed" yaml:"seed"`
}

type VectorsConfig struct {
	A             physics.Vector `mapstructure:"a" yaml:"a"`
	B             physics.Vector `mapstructure:"b" yaml:"b"`
	ShowResultant bool           `mapstructure:"show_resultant" yaml:"show_resultant"`
}

type ProjectileConfig struct {
	V0    float64 `mapstructure:"v0" yaml:"v0"`
	Angle float64 `mapstructure:"angle" yaml:"angle"`
	// MaxDelta caps a single frame delta before Scale is applied.
	MaxDelta float64 `mapstructure:"max_delta" yaml:"max_delta"`
	Scale    float64 `mapstructure:"scale" yaml:"scale"`
}

type ForcesConfig struct {
	Mass      float64 `mapstructure:"mass" yaml:"mass"`
	Force     float64 `mapstructure:"force" yaml:"force"`
	Angle     float64 `mapstructure:"angle" yaml:"angle"`
	MuStatic  float64 `mapstructure:"mu_static" yaml:"mu_static"`
	MuKinetic float64 `mapstructure:"mu_kinetic" yaml:"mu_kinetic"`
	TimeScale float64 `mapstructure:"time_scale" yaml:"time_scale"`
}

type EnergyConfig struct {
	Mass   float64 `mapstructure:"mass" yaml:"mass"`
	Height float64 `mapstructure:"height" yaml:"height"`
}

func DefaultConfig() *Config {
	return &Config{
		Logger: LoggerConfig{
			Level:      "info",
			Format:     "console",
			LogFile:    "mechlab.log",
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     7,
		},
		Display: DisplayConfig{
			Theme: DefaultTheme,
			FPS:   DefaultFPS,
		},
		Answers: AnswersConfig{
			TolerancePercent: DefaultTolerancePercent,
			QuizTime:         DefaultQuizTime,
		},
		Vectors: VectorsConfig{
			A:             physics.Vector{Magnitude: DefaultVectorMagnitude, Angle: 0},
			B:             physics.Vector{Magnitude: DefaultVectorMagnitude, Angle: DefaultVectorBAngle},
			ShowResultant: true,
		},
		Projectile: ProjectileConfig{
			V0:       DefaultLaunchSpeed,
			Angle:    DefaultLaunchAngle,
			MaxDelta: DefaultMaxDelta,
			Scale:    DefaultReplayFactor,
		},
		Forces: ForcesConfig{
			Mass:      DefaultMass,
			MuStatic:  DefaultMuStatic,
			MuKinetic: DefaultMuKinetic,
			TimeScale: 1.0,
		},
		Energy: EnergyConfig{
			Mass:   DefaultMass,
			Height: DefaultHeight,
		},
	}
}

// SetDefaults registers every key with v so that environment overrides are
// picked up by Unmarshal.
func SetDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("logger.level", d.Logger.Level)
	v.SetDefault("logger.format", d.Logger.Format)
	v.SetDefault("logger.log_file", d.Logger.LogFile)
	v.SetDefault("logger.max_size", d.Logger.MaxSize)
	v.SetDefault("logger.max_backups", d.Logger.MaxBackups)
	v.SetDefault("logger.max_age", d.Logger.MaxAge)
	v.SetDefault("logger.compress", d.Logger.Compress)

	v.SetDefault("metrics.file", d.Metrics.File)

	v.SetDefault("display.theme", d.Display.Theme)
	v.SetDefault("display.fps", d.Display.FPS)

	v.SetDefault("answers.tolerance_percent", d.Answers.TolerancePercent)
	v.SetDefault("answers.quiz_time", d.Answers.QuizTime)

	v.SetDefault("challenge.seed", d.Challenge.Seed)

	v.SetDefault("vectors.a.magnitude", d.Vectors.A.Magnitude)
	v.SetDefault("vectors.a.angle", d.Vectors.A.Angle)
	v.SetDefault("vectors.b.magnitude", d.Vectors.B.Magnitude)
	v.SetDefault("vectors.b.angle", d.Vectors.B.Angle)
	v.SetDefault("vectors.show_resultant", d.Vectors.ShowResultant)

	v.SetDefault("projectile.v0", d.Projectile.V0)
	v.SetDefault("projectile.angle", d.Projectile.Angle)
	v.SetDefault("projectile.max_delta", d.Projectile.MaxDelta)
	v.SetDefault("projectile.scale", d.Projectile.Scale)

	v.SetDefault("forces.mass", d.Forces.Mass)
	v.SetDefault("forces.force", d.Forces.Force)
	v.SetDefault("forces.angle", d.Forces.Angle)
	v.SetDefault("forces.mu_static", d.Forces.MuStatic)
	v.SetDefault("forces.mu_kinetic", d.Forces.MuKinetic)
	v.SetDefault("forces.time_scale", d.Forces.TimeScale)

	v.SetDefault("energy.mass", d.Energy.Mass)
	v.SetDefault("energy.height", d.Energy.Height)
}

// NewViper returns a viper instance with defaults and MECHLAB_ environment
// overrides wired up.
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads path, or ./mechlab.yaml when path is empty. A missing default
// file is not an error; a missing explicit path is.
func Load(path string) (*Config, error) {
	v := NewViper()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("mechlab")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return FromViper(v)
}

// FromViper unmarshals and validates the settings held by v.
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.Logger.Level); err != nil {
		return fmt.Errorf("logger.level %q: %w", c.Logger.Level, ErrInvalid)
	}
	if c.Logger.Format != "console" && c.Logger.Format != "json" {
		return fmt.Errorf("logger.format must be console or json, got %q: %w", c.Logger.Format, ErrInvalid)
	}
	if c.Display.FPS < 1 || c.Display.FPS > 120 {
		return fmt.Errorf("display.fps must be within [1, 120], got %d: %w", c.Display.FPS, ErrInvalid)
	}

	finite := []struct {
		name  string
		value float64
	}{
		{"answers.tolerance_percent", c.Answers.TolerancePercent},
		{"answers.quiz_time", c.Answers.QuizTime},
		{"vectors.a.magnitude", c.Vectors.A.Magnitude},
		{"vectors.a.angle", c.Vectors.A.Angle},
		{"vectors.b.magnitude", c.Vectors.B.Magnitude},
		{"vectors.b.angle", c.Vectors.B.Angle},
		{"projectile.v0", c.Projectile.V0},
		{"projectile.angle", c.Projectile.Angle},
		{"projectile.max_delta", c.Projectile.MaxDelta},
		{"projectile.scale", c.Projectile.Scale},
		{"forces.mass", c.Forces.Mass},
		{"forces.force", c.Forces.Force},
		{"forces.angle", c.Forces.Angle},
		{"forces.mu_static", c.Forces.MuStatic},
		{"forces.mu_kinetic", c.Forces.MuKinetic},
		{"forces.time_scale", c.Forces.TimeScale},
		{"energy.mass", c.Energy.Mass},
		{"energy.height", c.Energy.Height},
	}
	for _, f := range finite {
		if err := physics.CheckFinite(f.name, f.value); err != nil {
			return err
		}
	}

	if c.Answers.TolerancePercent < 0 {
		return fmt.Errorf("answers.tolerance_percent must not be negative: %w", ErrInvalid)
	}
	if c.Answers.QuizTime < 0 {
		return fmt.Errorf("answers.quiz_time must not be negative: %w", ErrInvalid)
	}
	if c.Projectile.MaxDelta < 0 {
		return fmt.Errorf("projectile.max_delta must not be negative: %w", ErrInvalid)
	}
	if c.Projectile.Scale <= 0 {
		return fmt.Errorf("projectile.scale must be positive: %w", ErrInvalid)
	}
	if c.Forces.TimeScale < MinTimeScale || c.Forces.TimeScale > MaxTimeScale {
		return fmt.Errorf("forces.time_scale must be within [%g, %g], got %g: %w",
			MinTimeScale, MaxTimeScale, c.Forces.TimeScale, ErrInvalid)
	}
	if c.Forces.MuStatic < 0 || c.Forces.MuKinetic < 0 {
		return fmt.Errorf("friction coefficients must not be negative: %w", ErrInvalid)
	}
	return nil
}
