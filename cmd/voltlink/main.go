package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"

	"github.com/voltlang/voltlink/internal/cache"
	"github.com/voltlang/voltlink/internal/config"
	vlog "github.com/voltlang/voltlink/internal/logger"
	"github.com/voltlang/voltlink/pkg/linker"
)

var (
	successColorFG = pterm.FgLightGreen
	successStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	errorColorFG   = pterm.FgRed
	errorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
)

func printErrorMessage(tag string, err error) {
	errorStyleBG.Print(tag)
	errorColorFG.Println(" " + err.Error())
}

func printSuccessMessage(tag string, msg string) {
	successStyleBG.Print(tag)
	successColorFG.Println(" " + msg)
}

func main() {
	manifestPath := flag.String("manifest", config.ManifestFileName, "path to the link manifest")
	listExports := flag.Bool("exports", false, "print the resolved public surface per class")
	flag.Parse()

	if err := run(*manifestPath, *listExports); err != nil {
		printErrorMessage("Link Error", err)
		os.Exit(1)
	}
}

func run(manifestPath string, listExports bool) error {
	manifest, err := config.LoadManifest(manifestPath)
	if err != nil {
		return err
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger().Level(logLevel(manifest.LogLevel))

	input, err := readInput(manifest.Input)
	if err != nil {
		return err
	}
	defs, err := input.classDefs()
	if err != nil {
		return err
	}
	logger.Info().Int("classes", len(defs)).Str("module", manifest.Name).Msg("linking")

	options := linker.Options{
		Workers: manifest.Workers,
		Log:     vlog.NewStderrLog(vlog.StderrOptions{LogLevel: vlog.LevelWarning}),
		Caches:  cache.MakeCacheSet(),
	}
	if manifest.CachePath != "" {
		store, err := cache.OpenStore(manifest.CachePath, logger)
		if err != nil {
			return err
		}
		defer store.Close()
		options.Store = store
	}

	result := linker.Link(options, defs, input.Facts)
	options.Log.Done()

	logger.Info().
		Int("linked", result.Program.Len()).
		Int("exported", len(result.ExportNames)).
		Int("cacheHits", result.InfoCacheHits).
		Uint32("fingerprint", result.Program.Fingerprint()).
		Msg("link finished")

	if listExports {
		for _, c := range result.Program.Classes() {
			names, ok := result.ExportNames[c.EncodedName()]
			if !ok {
				continue
			}
			pterm.Printf("%s (%s)\n", c.FullName(), c.Kind())
			for _, name := range names {
				pterm.Printf("  %s\n", name)
			}
		}
	}

	printSuccessMessage("Linked", fmt.Sprintf(
		"%s: %d classes, %d exported", manifest.Name, result.Program.Len(), len(result.ExportNames)))
	return nil
}

func logLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
