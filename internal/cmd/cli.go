// Package cmd defines the hexagen command line interface.
package cmd

// CLI is the root command structure parsed by kong.
type CLI struct {
	Log      LogOptions    `embed:"" prefix:"log."`
	Settings string        `help:"CLI settings file (json, yaml or toml)" env:"HEXAGEN_SETTINGS"`
	Generate Generate      `cmd:"" help:"Generate project skeletons from the smithy build output"`
	Plan     Plan          `cmd:"" help:"Print the artifact plan without writing any files"`
	Config   ConfigCommand `cmd:"" help:"Configuration helpers"`
}

type LogOptions struct {
	Level string `help:"Log level (debug, info, warn, error)" enum:"debug,info,warn,error" default:"info" env:"HEXAGEN_LOG_LEVEL"`
	File  string `help:"Also write logs to this file" env:"HEXAGEN_LOG_FILE"`
}
