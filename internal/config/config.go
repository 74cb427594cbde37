package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// FileName is the config file looked up in the config directory.
const FileName = "cookiewarriors.json"

// Config is the resolved runtime configuration.
type Config struct {
	LogLevel string

	Port      string
	StaticDir string

	ArenaWidth  float64
	ArenaHeight float64
	Layout      string

	MoveInterval  time.Duration
	SpawnInterval time.Duration
	MonsterCap    int
	BossChance    float64

	BroadcastInterval time.Duration

	OtelEnabled        bool
	OtelExportInterval time.Duration
}

func setDefaults() {
	viper.SetDefault("logLevel", "info")

	viper.SetDefault("server.port", "8000")
	viper.SetDefault("server.staticDir", "./static")

	viper.SetDefault("arena.width", 800.0)
	viper.SetDefault("arena.height", 600.0)
	viper.SetDefault("arena.layout", "classic")

	viper.SetDefault("sim.moveInterval", "50ms")
	viper.SetDefault("sim.spawnInterval", "3s")
	viper.SetDefault("sim.monsterCap", 5)
	viper.SetDefault("sim.bossChance", 0.1)

	viper.SetDefault("broadcast.interval", "100ms")

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.exportInterval", "30s")
}

// Load sets defaults, binds environment overrides and reads the optional
// config file from configDir. A missing file is not an error.
func Load(configDir string) error {
	setDefaults()

	viper.SetEnvPrefix("COOKIE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	// hosting platforms hand out the port as plain PORT
	if err := viper.BindEnv("server.port", "COOKIE_SERVER_PORT", "PORT"); err != nil {
		return fmt.Errorf("error binding port env: %w", err)
	}

	viper.SetConfigName(FileName)
	viper.SetConfigType("json")
	viper.AddConfigPath(configDir)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

// Current snapshots the loaded values into a Config.
func Current() Config {
	return Config{
		LogLevel: viper.GetString("logLevel"),

		Port:      viper.GetString("server.port"),
		StaticDir: viper.GetString("server.staticDir"),

		ArenaWidth:  viper.GetFloat64("arena.width"),
		ArenaHeight: viper.GetFloat64("arena.height"),
		Layout:      viper.GetString("arena.layout"),

		MoveInterval:  viper.GetDuration("sim.moveInterval"),
		SpawnInterval: viper.GetDuration("sim.spawnInterval"),
		MonsterCap:    viper.GetInt("sim.monsterCap"),
		BossChance:    viper.GetFloat64("sim.bossChance"),

		BroadcastInterval: viper.GetDuration("broadcast.interval"),

		OtelEnabled:        viper.GetBool("otel.enabled"),
		OtelExportInterval: viper.GetDuration("otel.exportInterval"),
	}
}
