package config

import (
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ConfigFlag names the flag holding an explicit configuration file.
const ConfigFlag = "config"

var flagKeys = map[string]string{
	"klipper-dir":   "klipper.dir",
	"serial-dir":    "devices.serial_dir",
	"device-source": "devices.source",
	"driver":        "bootloader.driver",
	"log-level":     "log.level",
	"log-format":    "log.format",
	"log-file":      "log.file",
}

// RegisterFlags adds the configuration flags to flags. Defaults are left
// empty so an unset flag never hides the file or environment value.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String(ConfigFlag, "", "configuration file (default: search for kflash.yaml)")
	flags.String("klipper-dir", "", "Klipper checkout directory")
	flags.String("serial-dir", "", "directory listing serial devices by id")
	flags.String("device-source", "", "serial device source: byid or ports")
	flags.String("driver", "", "bootloader driver: script or serial")
	flags.String("log-level", "", "log level: debug, info, warn or error")
	flags.String("log-format", "", "log format: text or json")
	flags.String("log-file", "", "write logs to this file instead of stderr")
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return errors.Wrapf(err, "bind flag %s", name)
		}
	}
	return nil
}
