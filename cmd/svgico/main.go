package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/esimov/svgico"
	"github.com/esimov/svgico/utils"
	"golang.org/x/term"
)

const HelpBanner = `
┌─┐┬  ┬┌─┐┬┌─┐┌─┐
└─┐└┐┌┘│ ┬││  │ │
└─┘ └┘ └─┘┴└─┘└─┘

SVG to ICO icon pipeline.
    Version: %s

`

// Version indicates the current build version.
var Version string

var (
	// Flags
	configPath = flag.String("config", "", "TOML configuration file")
	source     = flag.String("in", svgico.DefaultSrc, "Source directory with SVG files")
	rasterDir  = flag.String("raster", svgico.DefaultRasterDst, "Destination directory of the raster images")
	iconDir    = flag.String("out", svgico.DefaultIconDst, "Destination directory of the icons")
	format     = flag.String("format", "png", "Raster image format: png, bmp")
	entry      = flag.String("entry", "auto", "Icon entry encoding: auto, png, bmp")
	lenient    = flag.Bool("lenient", false, "Skip unsupported SVG features instead of failing")
	verify     = flag.Bool("verify", false, "Decode every written icon and check its size")
	keepGoing  = flag.Bool("keep-going", false, "Continue after a failed file and report all failures")
	quiet      = flag.Bool("quiet", false, "Do not print progress")
)

func main() {
	log.SetFlags(0)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, HelpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	stdoutTTY := term.IsTerminal(int(os.Stdout.Fd()))
	stderrTTY := term.IsTerminal(int(os.Stderr.Fd()))
	utils.NoColor = !stdoutTTY

	cfg, err := loadConfig()
	if err != nil {
		log.Fatal(utils.DecorateText(err.Error(), utils.ErrorMessage))
	}
	proc, op, err := cfg.Build()
	if err != nil {
		log.Fatal(utils.DecorateText(err.Error(), utils.ErrorMessage))
	}
	if !cfg.Quiet {
		op.Out = os.Stdout
		if stderrTTY {
			op.Spinner = utils.NewSpinner(os.Stderr, "", time.Millisecond*80, true)
		}
	}

	// Capture CTRL-C; the current file is finished before the run stops.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	now := time.Now()
	if err := proc.Execute(ctx, op); err != nil {
		stop()
		log.Fatalf("%s %s",
			utils.DecorateText("Error converting the icons:", utils.ErrorMessage),
			utils.DecorateText(err.Error(), utils.DefaultMessage),
		)
	}
	if !cfg.Quiet {
		fmt.Fprintf(os.Stderr, "Execution time: %s\n", utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
	}
}

// loadConfig merges the optional config file with the flags given on the
// command line. Explicit flags take precedence over the file.
func loadConfig() (svgico.Config, error) {
	cfg := svgico.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = svgico.LoadConfig(*configPath); err != nil {
			return cfg, err
		}
	}

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	fromFlags := *configPath == ""

	override := func(name string, apply func()) {
		if fromFlags || set[name] {
			apply()
		}
	}
	override("in", func() { cfg.Input = *source })
	override("raster", func() { cfg.Raster = *rasterDir })
	override("out", func() { cfg.Output = *iconDir })
	override("format", func() { cfg.Format = *format })
	override("entry", func() { cfg.Entry = *entry })
	override("lenient", func() { cfg.Lenient = *lenient })
	override("verify", func() { cfg.Verify = *verify })
	override("keep-going", func() { cfg.KeepGoing = *keepGoing })
	override("quiet", func() { cfg.Quiet = *quiet })

	return cfg, nil
}
