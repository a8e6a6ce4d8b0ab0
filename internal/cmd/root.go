package cmd

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/iburimskiy/circle-selector/internal/circle"
	"github.com/iburimskiy/circle-selector/internal/config"
	"github.com/iburimskiy/circle-selector/internal/game"
	"github.com/iburimskiy/circle-selector/internal/icons"
	"github.com/iburimskiy/circle-selector/internal/logging"
	"github.com/iburimskiy/circle-selector/internal/sound"
)

var rootCmd = &cobra.Command{
	Use:   "circle-selector",
	Short: "Circular multi-selector demo",
	Long: `circle-selector shows a disc split into equal sectors, one per item.
Tapping a sector toggles it; checked sectors grow, darken and cast a
longer shadow. Edit the config file while it runs to restyle the circle.`,
	SilenceUsage: true,
	RunE:         run,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringP("config", "c", "", "config file (default is $HOME/.config/circle-selector/config.yaml)")
	flags.Float64("radius", 0, "circle radius in dp (0 picks the default)")
	flags.String("color", "", "circle color as #RRGGBB or #AARRGGBB")
	flags.Float64("scale", 0, "scale of checked sectors, clamped to [1.1, 1.5]")
	flags.String("log-level", "", "log level: "+strings.Join(logging.ValidLevels(), ", "))

	_ = viper.BindPFlag("config", flags.Lookup("config"))
	_ = viper.BindPFlag("circle.radius_dp", flags.Lookup("radius"))
	_ = viper.BindPFlag("circle.color", flags.Lookup("color"))
	_ = viper.BindPFlag("circle.scale_on_click", flags.Lookup("scale"))
	_ = viper.BindPFlag("logging.level", flags.Lookup("log-level"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("CIRCLE_SELECTOR")
	// e.g. CIRCLE_SELECTOR_CIRCLE_RADIUS_DP for circle.radius_dp
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logging.NewLogger(cfg.Logging.File, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Close()

	density := monitorDensity()
	log.Info("starting",
		"config_file", viper.ConfigFileUsed(),
		"density", float64(density),
		"items", len(cfg.Items),
	)

	provider, err := icons.New(afero.NewOsFs(), color.White, cfg.Icons.CacheSize, log)
	if err != nil {
		return fmt.Errorf("failed to create icon provider: %w", err)
	}
	fallback, err := icons.DefaultIcon(color.White, int(density.Px(circle.DefaultIconSizeDp)))
	if err != nil {
		return fmt.Errorf("failed to render default icon: %w", err)
	}

	player := newPlayer(cfg, log)
	if player != nil {
		defer player.Stop()
	}

	g, err := game.New(game.Options{
		Config:      cfg,
		Density:     density,
		Icons:       provider,
		DefaultIcon: fallback,
		Player:      player,
		Logger:      log,
	})
	if err != nil {
		return err
	}

	if viper.ConfigFileUsed() != "" {
		config.Watch(viper.GetViper(), g.QueueReload)
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	log.Info("stopped")
	return nil
}

// newPlayer starts the click sound player. Audio failures only disable
// the sound.
func newPlayer(cfg *config.Config, log *logging.Logger) *sound.Player {
	if !cfg.Sound.Enabled {
		return nil
	}
	p := sound.NewPlayer(cfg.Sound.Volume, log)
	if err := p.Start(); err != nil {
		log.Warn("audio unavailable, click sounds disabled", "error", err)
		return nil
	}
	if cfg.Sound.ClickFile != "" {
		clip, err := sound.LoadClip(nil, cfg.Sound.ClickFile)
		if err != nil {
			log.Warn("failed to load click sound, using the default blip", "path", cfg.Sound.ClickFile, "error", err)
		} else {
			p.SetClip(clip)
		}
	}
	return p
}

func monitorDensity() circle.Density {
	m := ebiten.Monitor()
	if m == nil {
		return 1
	}
	if f := m.DeviceScaleFactor(); f > 0 {
		return circle.Density(f)
	}
	return 1
}
