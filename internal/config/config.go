// Package config loads and saves the stratsim TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/theirongolddev/stratsim/internal/model"

	"github.com/BurntSushi/toml"
)

// Config holds all stratsim configuration.
type Config struct {
	General    GeneralConfig             `toml:"general"`
	Growth     GrowthConfig              `toml:"growth"`
	SaaS       SaaSConfig                `toml:"saas"`
	Export     ExportConfig              `toml:"export"`
	Server     ServerConfig              `toml:"server"`
	Appearance AppearanceConfig          `toml:"appearance"`
	Log        LogConfig                 `toml:"log"`
	Scenarios  map[string]ScenarioConfig `toml:"scenarios,omitempty"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	Mode string `toml:"mode"`
	Seed uint64 `toml:"seed,omitempty"` // 0 draws a fresh seed every run
}

// GrowthConfig holds growth-mode inputs. Rates are in percent.
type GrowthConfig struct {
	PredictedRevenue float64 `toml:"predicted_revenue"`
	PredictedCost    float64 `toml:"predicted_cost"`
	GrowthRatePct    float64 `toml:"growth_rate_pct"`
	Months           int     `toml:"months"`
}

// SaaSConfig holds saas-mode inputs. Rates are in percent.
type SaaSConfig struct {
	MRR             float64 `toml:"mrr"`
	Customers       int     `toml:"customers"`
	ChurnRatePct    float64 `toml:"churn_rate_pct"`
	CAC             float64 `toml:"cac"`
	MarketingBudget float64 `toml:"marketing_budget"`
	ARPU            float64 `toml:"arpu"`
	Months          int     `toml:"months"`
}

// ExportConfig controls report output.
type ExportConfig struct {
	Dir          string `toml:"dir"`
	LinesPerPage int    `toml:"lines_per_page"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string `toml:"level"`
}

// ScenarioConfig is a named preset. Tables left out fall back to the
// top-level [growth] and [saas] values.
type ScenarioConfig struct {
	Mode   string        `toml:"mode"`
	Growth *GrowthConfig `toml:"growth,omitempty"`
	SaaS   *SaaSConfig   `toml:"saas,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{Mode: string(model.ModeGrowth)},
		Growth: GrowthConfig{
			PredictedRevenue: 50000,
			PredictedCost:    20000,
			GrowthRatePct:    5,
			Months:           12,
		},
		SaaS: SaaSConfig{
			MRR:             10000,
			Customers:       100,
			ChurnRatePct:    5,
			CAC:             200,
			MarketingBudget: 5000,
			ARPU:            100,
			Months:          12,
		},
		Export: ExportConfig{
			Dir:          ".",
			LinesPerPage: 48,
		},
		Server:     ServerConfig{Addr: "127.0.0.1:8788"},
		Appearance: AppearanceConfig{Theme: "flexoki-dark"},
		Log:        LogConfig{Level: "info"},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "stratsim")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "stratsim")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	return LoadFile(Path())
}

// LoadFile reads a config file at path over the defaults.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to the default path.
func Save(cfg Config) error {
	return SaveFile(Path(), cfg)
}

// SaveFile writes the config to path, creating parent directories.
func SaveFile(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// ScenarioNames lists the configured presets, sorted.
func (c Config) ScenarioNames() []string {
	names := make([]string, 0, len(c.Scenarios))
	for name := range c.Scenarios {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyScenario returns a copy of c with the named preset merged in.
func (c Config) ApplyScenario(name string) (Config, error) {
	sc, ok := c.Scenarios[name]
	if !ok {
		return c, fmt.Errorf("%w: unknown scenario %q", model.ErrInvalidParameter, name)
	}
	if sc.Mode != "" {
		c.General.Mode = sc.Mode
	}
	if sc.Growth != nil {
		c.Growth = *sc.Growth
	}
	if sc.SaaS != nil {
		c.SaaS = *sc.SaaS
	}
	return c, nil
}

// Params converts the configured inputs into a parameter set, turning
// percentages into fractions. The result is not validated.
func (c Config) Params() (model.Params, error) {
	mode, err := model.ParseMode(c.General.Mode)
	if err != nil {
		return model.Params{}, err
	}
	return model.Params{
		Mode: mode,
		Growth: model.GrowthParams{
			PredictedRevenue: c.Growth.PredictedRevenue,
			PredictedCost:    c.Growth.PredictedCost,
			GrowthRate:       c.Growth.GrowthRatePct / 100,
			Months:           c.Growth.Months,
		},
		SaaS: model.SaaSParams{
			MRR:             c.SaaS.MRR,
			Customers:       c.SaaS.Customers,
			ChurnRate:       c.SaaS.ChurnRatePct / 100,
			CAC:             c.SaaS.CAC,
			MarketingBudget: c.SaaS.MarketingBudget,
			ARPU:            c.SaaS.ARPU,
			Months:          c.SaaS.Months,
		},
	}, nil
}
