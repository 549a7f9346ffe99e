package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	apperrors "KFlash/internal/errors"
	"KFlash/internal/system"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	configName = "kflash"
	envPrefix  = "KFLASH"
)

// Settings mirrors the configuration file layout.
type Settings struct {
	Klipper    KlipperSettings    `mapstructure:"klipper" yaml:"klipper"`
	Devices    DeviceSettings     `mapstructure:"devices" yaml:"devices"`
	Bootloader BootloaderSettings `mapstructure:"bootloader" yaml:"bootloader"`
	Log        LogSettings        `mapstructure:"log" yaml:"log"`
}

type KlipperSettings struct {
	Dir        string `mapstructure:"dir" yaml:"dir"`
	ScriptsDir string `mapstructure:"scripts_dir" yaml:"scripts_dir"`
	Artifact   string `mapstructure:"artifact" yaml:"artifact"`
	ConfigFile string `mapstructure:"config_file" yaml:"config_file"`
}

type DeviceSettings struct {
	SerialDir string `mapstructure:"serial_dir" yaml:"serial_dir"`
	Source    string `mapstructure:"source" yaml:"source"`
}

type BootloaderSettings struct {
	Driver string        `mapstructure:"driver" yaml:"driver"`
	Python string        `mapstructure:"python" yaml:"python"`
	Settle time.Duration `mapstructure:"settle" yaml:"settle"`
	Pause  time.Duration `mapstructure:"pause" yaml:"pause"`
}

// MarshalYAML writes the delays in their string form ("2s") so the output
// can be read back.
func (b BootloaderSettings) MarshalYAML() (interface{}, error) {
	return struct {
		Driver string `yaml:"driver"`
		Python string `yaml:"python"`
		Settle string `yaml:"settle"`
		Pause  string `yaml:"pause"`
	}{b.Driver, b.Python, b.Settle.String(), b.Pause.String()}, nil
}

type LogSettings struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	File   string `mapstructure:"file" yaml:"file"`
}

// Loaded is the outcome of Load.
type Loaded struct {
	Config *system.Config
	// File is the configuration file that was read, empty when running on
	// defaults.
	File string
}

// Load resolves the effective configuration. An explicit path must exist;
// otherwise a missing kflash.yaml is not an error. Flags in flags that match
// a known key override every other source.
func Load(flags *pflag.FlagSet, explicit string) (*Loaded, error) {
	v := viper.New()
	setDefaults(v, system.DefaultConfig())

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, err
		}
	}

	if err := readFile(v, explicit); err != nil {
		return nil, err
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, apperrors.ConfigError(apperrors.CodeInvalidSetting, "could not decode configuration", err).
			WithOperation("config.Load").
			WithField("file", v.ConfigFileUsed())
	}

	return &Loaded{Config: s.System(), File: v.ConfigFileUsed()}, nil
}

func readFile(v *viper.Viper, explicit string) error {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return apperrors.ConfigError(apperrors.CodeFileNotFound, "config file specified via --config not found", err).
				WithOperation("config.Load").
				WithField("file", explicit)
		}
		v.SetConfigFile(explicit)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		for _, dir := range searchPaths() {
			v.AddConfigPath(dir)
		}
	}

	err := v.ReadInConfig()
	if err == nil {
		return nil
	}
	if errors.As(err, &viper.ConfigFileNotFoundError{}) {
		return nil
	}
	return apperrors.ConfigError(apperrors.CodeInvalidSetting, "could not read configuration file", err).
		WithOperation("config.Load").
		WithField("file", v.ConfigFileUsed())
}

func searchPaths() []string {
	var paths []string
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, configName))
	}
	return append(paths, filepath.Join("/etc", configName), ".")
}

// Derived paths default to empty so that a changed klipper.dir moves them too.
func setDefaults(v *viper.Viper, d *system.Config) {
	v.SetDefault("klipper.dir", d.KlipperDir)
	v.SetDefault("klipper.scripts_dir", "")
	v.SetDefault("klipper.artifact", "")
	v.SetDefault("klipper.config_file", "")
	v.SetDefault("devices.serial_dir", d.SerialDir)
	v.SetDefault("devices.source", d.DeviceSource)
	v.SetDefault("bootloader.driver", d.Driver)
	v.SetDefault("bootloader.python", d.Python)
	v.SetDefault("bootloader.settle", d.SettleDelay)
	v.SetDefault("bootloader.pause", d.ResultPause)
	v.SetDefault("log.level", d.LogLevel)
	v.SetDefault("log.format", d.LogFormat)
	v.SetDefault("log.file", d.LogFile)
}

// System converts s into a normalized system.Config.
func (s Settings) System() *system.Config {
	cfg := &system.Config{
		KlipperDir:   s.Klipper.Dir,
		ScriptsDir:   s.Klipper.ScriptsDir,
		ArtifactPath: s.Klipper.Artifact,
		BuildConfig:  s.Klipper.ConfigFile,
		SerialDir:    s.Devices.SerialDir,
		DeviceSource: strings.ToLower(s.Devices.Source),
		Driver:       strings.ToLower(s.Bootloader.Driver),
		Python:       s.Bootloader.Python,
		SettleDelay:  s.Bootloader.Settle,
		ResultPause:  s.Bootloader.Pause,
		LogLevel:     s.Log.Level,
		LogFormat:    s.Log.Format,
		LogFile:      s.Log.File,
	}
	return cfg.Normalize()
}

// FromSystem is the inverse of Settings.System.
func FromSystem(cfg *system.Config) Settings {
	var s Settings
	s.Klipper = KlipperSettings{
		Dir:        cfg.KlipperDir,
		ScriptsDir: cfg.ScriptsDir,
		Artifact:   cfg.ArtifactPath,
		ConfigFile: cfg.BuildConfig,
	}
	s.Devices = DeviceSettings{SerialDir: cfg.SerialDir, Source: cfg.DeviceSource}
	s.Bootloader = BootloaderSettings{
		Driver: cfg.Driver,
		Python: cfg.Python,
		Settle: cfg.SettleDelay,
		Pause:  cfg.ResultPause,
	}
	s.Log = LogSettings{Level: cfg.LogLevel, Format: cfg.LogFormat, File: cfg.LogFile}
	return s
}
