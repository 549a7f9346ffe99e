// Package config loads KFlash settings with Viper. Values are layered as
// defaults, then kflash.yaml, then KFLASH_* environment variables, then
// command-line flags, and converted into a system.Config.
package config
