package main

import (
	"os"
	"strings"

	"github.com/hexagen/hexagen/internal/cmd"
	"github.com/hexagen/hexagen/internal/configpaths"
	"github.com/hexagen/hexagen/internal/log"

	"github.com/alecthomas/kong"
	kongtoml "github.com/alecthomas/kong-toml"
	kongyaml "github.com/alecthomas/kong-yaml"
)

func main() {

	userSettings := findUserSettings(os.Args[1:])
	jsonPaths, yamlPaths, tomlPaths := configpaths.ConfigCandidatePaths(userSettings)

	var cli cmd.CLI
	ctx := kong.Parse(&cli,
		kong.Name("hexagen"),
		kong.Description("Hexagonal Spring Boot project generator for smithy-built OpenAPI specs"),
		kong.UsageOnError(),
		// Load settings from JSON/YAML/TOML in priority order; flags/env override file values.
		kong.Configuration(kong.JSON, jsonPaths...),
		kong.Configuration(kongyaml.Loader, yamlPaths...),
		kong.Configuration(kongtoml.Loader, tomlPaths...),
	)

	logger, closeFiles, err := log.SetupLogger(cli.Log.Level, cli.Log.File)
	if err != nil {
		_, _ = os.Stderr.WriteString("failed to setup logger: " + err.Error() + "\n")
		os.Exit(2)
	}
	defer func() {
		for _, c := range closeFiles {
			_ = c.Close()
		}
	}()

	ctx.Bind(logger)

	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}

func findUserSettings(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if strings.HasPrefix(a, "--settings=") {
			return a[len("--settings="):]
		}
		if a == "--settings" && i+1 < len(args) {
			return args[i+1]
		}
	}
	if v := os.Getenv("HEXAGEN_SETTINGS"); v != "" {
		return v
	}
	return ""
}
