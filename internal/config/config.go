/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"chartmaker/internal/canvas"
)

// AppConfig is the user-editable configuration persisted to a YAML file in the user scope.
// Environment variables are read-only overrides applied at runtime.
//
// config_version: bump when the structure changes in a backward-incompatible way.
type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	Canvas        CanvasConfig  `yaml:"canvas"`
	Export        ExportConfig  `yaml:"export"`
	Font          FontConfig    `yaml:"font"`
	Logging       LoggingConfig `yaml:"logging"`
}

type CanvasConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	ChartType string `yaml:"chart_type"` // canonical chart type name, e.g. "VerticalBars"
	// Background is a "#rrggbb" color; empty leaves the canvas transparent.
	Background string `yaml:"background"`
}

type ExportConfig struct {
	Format string  `yaml:"format"` // png | bmp | tiff | pdf
	DPI    float64 `yaml:"dpi"`    // page size of PDF output
}

type FontConfig struct {
	File string  `yaml:"file"` // optional TTF; the built-in bitmap face is used when empty
	Size float64 `yaml:"size"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		Canvas:        CanvasConfig{Width: canvas.DefaultWidth, Height: canvas.DefaultHeight, ChartType: canvas.Classic.String(), Background: "#ffffff"},
		Export:        ExportConfig{Format: "png", DPI: 96},
		Font:          FontConfig{Size: 10},
		Logging:       LoggingConfig{Level: "info", Format: "console", Source: false, File: ""},
	}
}

// Env var names used as overrides.
const (
	EnvCanvasWidth  = "CHM_CANVAS_WIDTH"
	EnvCanvasHeight = "CHM_CANVAS_HEIGHT"
	EnvChartType    = "CHM_CHART_TYPE"
	EnvBackground   = "CHM_BACKGROUND"
	EnvExportFormat = "CHM_EXPORT_FORMAT"
	EnvExportDPI    = "CHM_EXPORT_DPI"
	EnvFontFile     = "CHM_FONT_FILE"
	EnvFontSize     = "CHM_FONT_SIZE"
	// EnvLogLevel Logging envs
	EnvLogLevel  = "CHM_LOG_LEVEL"
	EnvLogFormat = "CHM_LOG_FORMAT"
	EnvLogSource = "CHM_LOG_SOURCE"
	EnvLogFile   = "CHM_LOG_FILE"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// ConfigPath returns the per-user config file path.
func ConfigPath() (string, error) {
	var base string
	switch runtime.GOOS {
	case "windows":
		base = os.Getenv("AppData")
		if base == "" { // fallback
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
		base = filepath.Join(base, "ChartMaker")
	case "darwin":
		base = filepath.Join(os.Getenv("HOME"), "Library", "Application Support", "ChartMaker")
	default: // linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			base = filepath.Join(xdg, "chartmaker")
		} else if home := os.Getenv("HOME"); home != "" {
			base = filepath.Join(home, ".config", "chartmaker")
		}
	}
	if base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "config.yaml"), nil
}

// Load reads the user config file (if present), applies defaults, and merges environment overrides.
func Load() (AppConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		cfg := Defaults()
		applyEnvOverrides(&cfg)
		return cfg, err
	}
	return LoadFrom(path)
}

// LoadFrom is Load with an explicit file. A missing file is not an error;
// a file that does not parse is.
func LoadFrom(path string) (AppConfig, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var fileCfg AppConfig
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			applyEnvOverrides(&cfg)
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
		mergeInto(&cfg, &fileCfg)
	case !errors.Is(err, os.ErrNotExist):
		applyEnvOverrides(&cfg)
		return cfg, fmt.Errorf("read config: %w", err)
	}
	applyEnvOverrides(&cfg)
	return cfg, nil
}

// Save writes the user config YAML.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return SaveTo(path, cfg)
}

// SaveTo writes cfg to path, creating parent directories.
func SaveTo(path string, cfg AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// Validate reports settings that would make rendering fail.
func (c AppConfig) Validate() error {
	var errs []error
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		errs = append(errs, fmt.Errorf("canvas size %dx%d must be positive", c.Canvas.Width, c.Canvas.Height))
	}
	if _, ok := canvas.ParseType(c.Canvas.ChartType); !ok {
		errs = append(errs, fmt.Errorf("unknown chart type %q", c.Canvas.ChartType))
	}
	if c.Export.DPI <= 0 {
		errs = append(errs, fmt.Errorf("export dpi %v must be positive", c.Export.DPI))
	}
	if c.Font.Size <= 0 {
		errs = append(errs, fmt.Errorf("font size %v must be positive", c.Font.Size))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	// canvas
	if src.Canvas.Width != 0 {
		dst.Canvas.Width = src.Canvas.Width
	}
	if src.Canvas.Height != 0 {
		dst.Canvas.Height = src.Canvas.Height
	}
	if strings.TrimSpace(src.Canvas.ChartType) != "" {
		dst.Canvas.ChartType = strings.TrimSpace(src.Canvas.ChartType)
	}
	if strings.TrimSpace(src.Canvas.Background) != "" {
		dst.Canvas.Background = strings.TrimSpace(src.Canvas.Background)
	}
	// export
	if strings.TrimSpace(src.Export.Format) != "" {
		dst.Export.Format = strings.ToLower(strings.TrimSpace(src.Export.Format))
	}
	if src.Export.DPI != 0 {
		dst.Export.DPI = src.Export.DPI
	}
	// font
	if strings.TrimSpace(src.Font.File) != "" {
		dst.Font.File = strings.TrimSpace(src.Font.File)
	}
	if src.Font.Size != 0 {
		dst.Font.Size = src.Font.Size
	}
	// logging
	if strings.TrimSpace(src.Logging.Level) != "" {
		dst.Logging.Level = strings.ToLower(strings.TrimSpace(src.Logging.Level))
	}
	if strings.TrimSpace(src.Logging.Format) != "" {
		dst.Logging.Format = strings.ToLower(strings.TrimSpace(src.Logging.Format))
	}
	dst.Logging.Source = src.Logging.Source
	if strings.TrimSpace(src.Logging.File) != "" {
		dst.Logging.File = strings.TrimSpace(src.Logging.File)
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvCanvasWidth)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Canvas.Width = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvCanvasHeight)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Canvas.Height = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvChartType)); v != "" {
		cfg.Canvas.ChartType = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvBackground)); v != "" {
		cfg.Canvas.Background = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvExportFormat)); v != "" {
		cfg.Export.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvExportDPI)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Export.DPI = f
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvFontFile)); v != "" {
		cfg.Font.File = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvFontSize)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Font.Size = f
		}
	}
	// logging overrides
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogSource)); v != "" {
		lv := strings.ToLower(v)
		cfg.Logging.Source = lv == "1" || lv == "true" || lv == "on" || lv == "yes"
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

var envKeys = map[string]string{
	"canvas.width":      EnvCanvasWidth,
	"canvas.height":     EnvCanvasHeight,
	"canvas.chart_type": EnvChartType,
	"canvas.background": EnvBackground,
	"export.format":     EnvExportFormat,
	"export.dpi":        EnvExportDPI,
	"font.file":         EnvFontFile,
	"font.size":         EnvFontSize,
	"logging.level":     EnvLogLevel,
	"logging.format":    EnvLogFormat,
	"logging.source":    EnvLogSource,
	"logging.file":      EnvLogFile,
}

// EnvOverrideFor returns the env var name if the field is overridden by environment variables.
func EnvOverrideFor(key string) (string, bool) {
	name, ok := envKeys[key]
	if !ok || os.Getenv(name) == "" {
		return "", false
	}
	return name, true
}
