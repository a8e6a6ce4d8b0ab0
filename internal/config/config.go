package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/iburimskiy/circle-selector/internal/circle"
)

const (
	WindowWidth  = 480
	WindowHeight = 640
	WindowTitle  = "Circle Selector"

	// Button dimensions
	ButtonWidth  = 120
	ButtonHeight = 40
	ButtonX      = 20
	ButtonY      = 20
	ButtonGap    = 12

	// Radius slider, in dp
	SliderHeight  = 16
	SliderMinDp   = 40
	SliderMaxDp   = 200
	StatusPadding = 8

	DefaultIconCacheSize = 128
	DefaultVolume        = 0.5
)

// DefaultIcons are the items shown on first start.
var DefaultIcons = []string{
	"md:action/home",
	"md:action/favorite",
	"md:social/person",
	"md:maps/place",
	"md:action/settings",
	"md:image/camera_alt",
}

// Config is the complete application configuration.
type Config struct {
	Window  WindowConfig  `mapstructure:"window"`
	Circle  CircleConfig  `mapstructure:"circle"`
	Items   []ItemConfig  `mapstructure:"items"`
	Sound   SoundConfig   `mapstructure:"sound"`
	Icons   IconsConfig   `mapstructure:"icons"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// WindowConfig controls the demo window.
type WindowConfig struct {
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
	Title  string `mapstructure:"title"`
}

// CircleConfig holds the widget attributes. Lengths are in dp.
type CircleConfig struct {
	// RadiusDp of zero lets the widget pick its default radius
	RadiusDp       float64 `mapstructure:"radius_dp"`
	Color          Color   `mapstructure:"color"`
	ShadowRadiusDp float64 `mapstructure:"shadow_radius_dp"`
	// ScaleOnClick outside [1.1, 1.5] is clamped, not rejected
	ScaleOnClick  float64 `mapstructure:"scale_on_click"`
	BorderWidthDp float64 `mapstructure:"border_width_dp"`
	IconSizeDp    float64 `mapstructure:"icon_size_dp"`
	PaddingDp     float64 `mapstructure:"padding_dp"`
	AnimationMs   int     `mapstructure:"animation_ms"`
}

// ItemConfig is one initial selector item.
type ItemConfig struct {
	Icon    string `mapstructure:"icon"`
	Checked bool   `mapstructure:"checked"`
}

// SoundConfig controls the click feedback.
type SoundConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// ClickFile is a wav, mp3 or flac file; empty plays a synthesized blip
	ClickFile string  `mapstructure:"click_file"`
	Volume    float64 `mapstructure:"volume"`
}

// IconsConfig controls icon resolution.
type IconsConfig struct {
	CacheSize int `mapstructure:"cache_size"`
}

// LoggingConfig controls the log output.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	// File is the log file path; empty logs to stderr
	File string `mapstructure:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	items := make([]ItemConfig, len(DefaultIcons))
	for i, icon := range DefaultIcons {
		items[i] = ItemConfig{Icon: icon}
	}
	return &Config{
		Window: WindowConfig{
			Width:  WindowWidth,
			Height: WindowHeight,
			Title:  WindowTitle,
		},
		Circle: CircleConfig{
			RadiusDp:       circle.DefaultRadiusDp,
			Color:          Color(circle.DefaultColor),
			ShadowRadiusDp: circle.DefaultShadowRadiusDp,
			ScaleOnClick:   1.2,
			BorderWidthDp:  circle.DefaultBorderWidthPx,
			IconSizeDp:     circle.DefaultIconSizeDp,
			PaddingDp:      0,
			AnimationMs:    int(circle.DefaultAnimationDuration / time.Millisecond),
		},
		Items: items,
		Sound: SoundConfig{
			Enabled: true,
			Volume:  DefaultVolume,
		},
		Icons: IconsConfig{
			CacheSize: DefaultIconCacheSize,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// SetDefaults registers every default value with the global viper instance.
func SetDefaults() {
	setDefaults(viper.GetViper())
}

func setDefaults(v *viper.Viper) {
	defaults := Default()

	// Window defaults
	v.SetDefault("window.width", defaults.Window.Width)
	v.SetDefault("window.height", defaults.Window.Height)
	v.SetDefault("window.title", defaults.Window.Title)

	// Circle defaults
	v.SetDefault("circle.radius_dp", defaults.Circle.RadiusDp)
	v.SetDefault("circle.color", defaults.Circle.Color.String())
	v.SetDefault("circle.shadow_radius_dp", defaults.Circle.ShadowRadiusDp)
	v.SetDefault("circle.scale_on_click", defaults.Circle.ScaleOnClick)
	v.SetDefault("circle.border_width_dp", defaults.Circle.BorderWidthDp)
	v.SetDefault("circle.icon_size_dp", defaults.Circle.IconSizeDp)
	v.SetDefault("circle.padding_dp", defaults.Circle.PaddingDp)
	v.SetDefault("circle.animation_ms", defaults.Circle.AnimationMs)

	// Items
	items := make([]map[string]any, len(defaults.Items))
	for i, it := range defaults.Items {
		items[i] = map[string]any{"icon": it.Icon, "checked": it.Checked}
	}
	v.SetDefault("items", items)

	// Sound defaults
	v.SetDefault("sound.enabled", defaults.Sound.Enabled)
	v.SetDefault("sound.click_file", defaults.Sound.ClickFile)
	v.SetDefault("sound.volume", defaults.Sound.Volume)

	// Icon defaults
	v.SetDefault("icons.cache_size", defaults.Icons.CacheSize)

	// Logging defaults
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.file", defaults.Logging.File)
}

// Load reads the configuration from the global viper instance.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom unmarshals and validates the configuration held by v.
func LoadFrom(v *viper.Viper) (*Config, error) {
	var cfg Config
	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		StringToColorHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
	))
	if err := v.Unmarshal(&cfg, hook); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// Get returns the current configuration, falling back to defaults when
// it cannot be loaded.
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Watch reloads the configuration whenever the config file in use is
// written. onChange runs on the watcher goroutine.
func Watch(v *viper.Viper, onChange func(*Config, error)) {
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		onChange(LoadFrom(v))
	})
	v.WatchConfig()
}

// ConfigDir returns the path to the user's config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "circle-selector")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".circle-selector"
	}
	return filepath.Join(home, ".config", "circle-selector")
}

// ConfigFile returns the path to the config file.
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// AnimationDuration returns the click animation duration.
func (c *CircleConfig) AnimationDuration() time.Duration {
	return time.Duration(c.AnimationMs) * time.Millisecond
}

// ToCircle converts the dp attributes into a pixel circle.Config.
func (c *CircleConfig) ToCircle(density circle.Density) circle.Config {
	cfg := circle.DefaultConfig(density)
	cfg.Color = c.Color.NRGBA()
	cfg.Radius = density.Px(c.RadiusDp)
	cfg.ShadowRadius = density.Px(c.ShadowRadiusDp)
	cfg.ScaleOnClick = c.ScaleOnClick
	cfg.BorderWidth = density.Px(c.BorderWidthDp)
	cfg.Padding = density.Px(c.PaddingDp)
	if c.IconSizeDp > 0 {
		cfg.DefaultIconSize = int(density.Px(c.IconSizeDp))
	}
	if d := c.AnimationDuration(); d > 0 {
		cfg.AnimationDuration = d
	}
	return cfg
}

// CircleItems converts the configured items.
func (c *Config) CircleItems() []circle.Item {
	items := make([]circle.Item, len(c.Items))
	for i, it := range c.Items {
		items[i] = circle.Item{Icon: circle.IconRef(it.Icon), Checked: it.Checked}
	}
	return items
}
