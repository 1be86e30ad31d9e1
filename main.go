package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gookit/color"
	"github.com/joho/godotenv"

	"blobdungeon/pkg/engine/logging"
	"blobdungeon/pkg/engine/telemetry"
	"blobdungeon/pkg/engine/terminal"
	"blobdungeon/pkg/game/config"
	"blobdungeon/pkg/game/devtools"
	"blobdungeon/pkg/game/dungeon"
	"blobdungeon/pkg/game/generator"
	"blobdungeon/pkg/game/layout"
	"blobdungeon/pkg/game/locale"
	"blobdungeon/pkg/game/metrics"
)

type options struct {
	config   string
	seed     int64
	layout   string
	out      string
	dump     string
	logLevel string
	noColor  bool
	metrics  bool
	showcase bool
}

func parseFlags() options {
	var o options
	flag.StringVar(&o.config, "config", "", "YAML configuration file (default $"+config.EnvConfig+")")
	flag.Int64Var(&o.seed, "seed", 0, "seed of the dungeon to generate (0 uses the config, then the clock)")
	flag.StringVar(&o.layout, "layout", "", "load a layout file instead of generating one (.zst files are decompressed)")
	flag.StringVar(&o.out, "out", "", "write the layout to this file (.zst files are compressed)")
	flag.StringVar(&o.dump, "dump", "", "write a debug map dump to this file")
	flag.StringVar(&o.logLevel, "log-level", "", "debug, info, warn or error")
	flag.BoolVar(&o.noColor, "no-color", false, "never colour the map")
	flag.BoolVar(&o.metrics, "metrics", false, "print generation metrics when done")
	flag.BoolVar(&o.showcase, "showcase", false, "show every tile instead of a dungeon")
	flag.Parse()
	return o
}

func main() {
	o := parseFlags()

	if err := godotenv.Load(); err != nil {
		logging.Debug("no .env file loaded: %v", err)
	}

	if err := run(context.Background(), o); err != nil {
		fmt.Fprintln(os.Stderr, color.Style{color.FgRed, color.OpBold}.Sprint(err.Error()))
		os.Exit(1)
	}
}

// setupLogging applies the -log-level override on top of the loaded config
func setupLogging(cfg *config.Config, override string) error {
	if override != "" {
		cfg.Log.Level = override
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	logging.SetLevel(cfg.LogLevel())
	logging.Debug("log level %s", logging.Level())
	return nil
}

func run(ctx context.Context, o options) error {
	cfg, err := config.Load(o.config)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := setupLogging(cfg, o.logLevel); err != nil {
		return err
	}

	if telemetry.Enabled() {
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			logging.Warn("telemetry setup failed, continuing without tracing: %v", err)
		} else {
			logging.Info("tracing enabled")
			defer func() {
				if err := shutdown(ctx); err != nil {
					logging.Error("telemetry shutdown: %v", err)
				}
			}()
		}
	}

	m := metrics.New()
	seed := o.seed
	if seed == 0 {
		seed = cfg.Seed
	}
	path := o.layout
	if path == "" && seed == 0 {
		path = cfg.Layout
	}

	var d *dungeon.Dungeon
	switch {
	case o.showcase:
		l, err := devtools.ShowcaseLayout()
		if err != nil {
			return err
		}
		if d, err = dungeon.Build(l, cfg.Dungeon); err != nil {
			return err
		}
	case path != "":
		l, err := layout.Open(path)
		if err != nil {
			return err
		}
		if d, err = dungeon.Build(l, cfg.Dungeon); err != nil {
			return err
		}
		fmt.Println(locale.Get("CLI_LOADED", d.Name(), path, len(d.Tiles()), d.Dims().Y))
	default:
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		if d, err = dungeon.Generate(ctx, seed, cfg.Dungeon, generator.WithMetrics(m)); err != nil {
			return err
		}
		fmt.Println(locale.Get("CLI_GENERATED", d.Name(), seed, len(d.Tiles()), d.Dims().Y))
	}

	colorize := !o.noColor && terminal.ColorEnabled(os.Stdout)
	if width, _ := terminal.GetSize(os.Stdout); d.Dims().X > width {
		logging.Warn("map is %d cells wide, terminal has %d columns", d.Dims().X, width)
	}
	fmt.Println()
	if err := devtools.WriteLevels(os.Stdout, d.Layout(), colorize); err != nil {
		return err
	}
	fmt.Println()
	fmt.Println(locale.Get("SUMMARY"))
	if err := devtools.WriteSummary(os.Stdout, d.Layout()); err != nil {
		return err
	}

	if o.out != "" {
		if err := d.Layout().Save(o.out); err != nil {
			return err
		}
		fmt.Println(locale.Get("CLI_SAVED", o.out))
	}

	if o.dump != "" {
		written, err := devtools.DumpToFile(o.dump, d, seed)
		if err != nil {
			return err
		}
		fmt.Println(locale.Get("CLI_DUMPED", written))
	}

	if o.metrics {
		fmt.Println()
		if err := m.Dump(os.Stdout); err != nil {
			return err
		}
	}
	return nil
}
