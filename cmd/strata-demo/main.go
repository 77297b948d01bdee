// Command strata-demo builds an animated layer tree, composites it every
// frame and shows it in a window. With --frames it runs headless and writes
// the last frame as PNG.
package main

import (
	"errors"
	"fmt"
	"image/png"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/urfave/cli"

	"github.com/phanxgames/strata"
)

func main() {
	app := cli.NewApp()
	app.Name = "strata-demo"
	app.Description = "Compositing layer tree demo"
	app.Usage = "strata-demo [options]"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.IntFlag{
			Name:  "frames",
			Usage: "Run headless for N frames instead of opening a window",
		},
		cli.StringFlag{
			Name:  "out",
			Usage: "PNG file for the last headless frame",
			Value: "strata.png",
		},
		cli.BoolFlag{
			Name:  "dump",
			Usage: "Print the layer tree and the last frame's builder operations",
		},
		cli.BoolFlag{
			Name:  "debug",
			Usage: "Enable debug checks (overrides STRATA_DEBUG)",
		},
		cli.BoolFlag{
			Name:  "check-elevations",
			Usage: "Report physical layers painted out of elevation order (implies --debug)",
		},
		cli.IntFlag{
			Name:  "width",
			Usage: "Canvas width (overrides STRATA_WIDTH)",
		},
		cli.IntFlag{
			Name:  "height",
			Usage: "Canvas height (overrides STRATA_HEIGHT)",
		},
		cli.BoolFlag{
			Name:  "fps",
			Usage: "Show FPS and TPS in the window",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		slog.Error("Error running demo", "error", err)
		os.Exit(1)
	}
}

// applyFlags overrides cfg with the flags that were set on the command
// line.
func applyFlags(c *cli.Context, cfg *Config) {
	if c.IsSet("debug") {
		cfg.Debug = c.Bool("debug")
	}
	if c.IsSet("check-elevations") {
		cfg.CheckElevations = c.Bool("check-elevations")
	}
	if cfg.CheckElevations {
		cfg.Debug = true
	}
	if c.IsSet("width") {
		cfg.Width = c.Int("width")
	}
	if c.IsSet("height") {
		cfg.Height = c.Int("height")
	}
}

func run(c *cli.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyFlags(c, cfg)
	level, err := cfg.validate()
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	strata.SetLogger(logger)
	strata.SetDebugMode(cfg.Debug)
	strata.SetDebugOptions(strata.DebugOptions{CheckElevations: cfg.CheckElevations})

	d := newDemo(cfg.Width, cfg.Height)

	if frames := c.Int("frames"); frames > 0 {
		if err := runHeadless(d, frames, c.String("out")); err != nil {
			return err
		}
		if c.Bool("dump") {
			dump(os.Stdout, d)
		}
		return nil
	}
	if c.IsSet("frames") {
		return errors.New("--frames needs a positive value")
	}

	ebiten.SetWindowTitle("Strata Demo")
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	err = ebiten.RunGame(newGame(d, c.Bool("fps")))
	if c.Bool("dump") {
		dump(os.Stdout, d)
	}
	return err
}

// runHeadless advances the demo frames times at 60 ticks per second and
// writes the last frame to out.
func runHeadless(d *demo, frames int, out string) error {
	slog.Info("Running headless", "frames", frames, "out", out)
	for i := 0; i < frames; i++ {
		d.update(1.0 / 60)
		img, err := d.frame()
		if err != nil {
			return fmt.Errorf("render frame %d: %w", i+1, err)
		}
		if i == frames-1 {
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create %s: %w", out, err)
			}
			if err := png.Encode(f, img); err != nil {
				f.Close()
				return fmt.Errorf("encode %s: %w", out, err)
			}
			if err := f.Close(); err != nil {
				return err
			}
		}
		if i%30 == 0 {
			slog.Info("Frame progress", "completed", i+1, "total", frames)
		}
	}
	slog.Info("Headless run completed", "frames", frames, "out", out)
	return nil
}

func dump(w io.Writer, d *demo) {
	fmt.Fprintln(w, d.describe())
	fmt.Fprintln(w, "ops:", strings.Join(d.lastOps, " "))
	if d.last != nil {
		fmt.Fprint(w, d.last.String())
	}
}
