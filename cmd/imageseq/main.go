// Package main provides the CLI entry point for imageseq.
package main

import (
	"bytes"
	"fmt"
	"image/png"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/ideamans/go-l10n"

	"github.com/user/imageseq/pkg/adapters/imagedecoder"
	"github.com/user/imageseq/pkg/adapters/logger"
	"github.com/user/imageseq/pkg/adapters/osfilesystem"
	"github.com/user/imageseq/pkg/adapters/softtexture"
	"github.com/user/imageseq/pkg/config"
	"github.com/user/imageseq/pkg/contactsheet"
	"github.com/user/imageseq/pkg/pixel"
	"github.com/user/imageseq/pkg/ports"
	"github.com/user/imageseq/pkg/sequence"
)

// CLI defines the command-line interface with subcommands.
type CLI struct {
	Inspect InspectCmd `cmd:"" help:"Load an image sequence and print its properties."`
	Sheet   SheetCmd   `cmd:"" help:"Render a contact sheet of an image sequence."`
	Version VersionCmd `cmd:"" help:"Show version information."`
}

// sequenceFlags are the loading options shared by subcommands.
type sequenceFlags struct {
	Extension string  `short:"e" help:"Only load files with this extension (e.g. png)."`
	MaxFrames int     `short:"m" help:"Limit the number of frames loaded from a folder (0 = no limit)."`
	FPS       float64 `help:"Frame rate used for duration and time addressing (default: 30)."`
	Threaded  bool    `short:"t" help:"Load frames on a background worker."`
	PixelKind string  `short:"k" help:"Pixel buffer kind (byte, short, float)."`

	Config string `short:"C" help:"Path to an imageseq.yaml configuration file."`

	LogLevel string `short:"l" help:"Log level (debug, info, warn, error)."`
	Quiet    bool   `short:"Q" help:"Suppress all log output."`
}

// InspectCmd defines the inspect subcommand.
type InspectCmd struct {
	Folder string `arg:"" help:"Folder containing the image sequence."`
	sequenceFlags
}

// SheetCmd defines the sheet subcommand.
type SheetCmd struct {
	Folder string `arg:"" help:"Folder containing the image sequence."`
	Output string `short:"o" required:"" help:"Output PNG file path."`

	Columns   int  `short:"c" help:"Number of columns in the sheet."`
	CellWidth int  `help:"Cell width in pixels."`
	NoLabels  bool `help:"Disable frame index labels."`

	sequenceFlags
}

// VersionCmd shows version information.
type VersionCmd struct{}

var version = "dev"

func main() {
	cli := CLI{}

	ctx := kong.Parse(&cli,
		kong.Name("imageseq"),
		kong.Description("Play folders of still images back like movie frames."),
		kong.UsageOnError(),
	)

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

// newLogger creates the logger for a command. The flag takes precedence
// over the configured log level.
func (f *sequenceFlags) newLogger(cfg config.Config) ports.Logger {
	if f.Quiet {
		return logger.NewNoop()
	}
	level := cfg.LogLevel
	if f.LogLevel != "" {
		level = f.LogLevel
	}
	return logger.NewConsole(ports.ParseLogLevel(level))
}

// loadConfig merges a config file, when given, with the flag values.
func (f *sequenceFlags) loadConfig() (config.Config, error) {
	cfg := config.Defaults()
	if f.Config != "" {
		loaded, err := config.LoadFromFile(f.Config)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}

	if f.Extension != "" {
		cfg.Extension = f.Extension
	}
	if f.MaxFrames > 0 {
		cfg.MaxFrames = f.MaxFrames
	}
	if f.FPS > 0 {
		cfg.FrameRate = f.FPS
	}
	if f.Threaded {
		cfg.Threaded = true
	}
	if f.PixelKind != "" {
		cfg.PixelKind = f.PixelKind
	}
	return cfg, nil
}

// parseFilter maps a config filter name to a texture filter.
func parseFilter(name string) ports.TextureFilter {
	if name == "nearest" {
		return ports.FilterNearest
	}
	return ports.FilterLinear
}

// loadSequence builds a sequence from the configuration and loads folder,
// driving a threaded load to completion when requested.
func loadSequence(folder string, cfg config.Config, log ports.Logger) (*sequence.Sequence, error) {
	kind, err := pixel.ParseKind(cfg.PixelKind)
	if err != nil {
		return nil, err
	}

	seq, err := sequence.New(kind, imagedecoder.New(), softtexture.New(), osfilesystem.New(), log)
	if err != nil {
		return nil, err
	}

	seq.SetExtension(cfg.Extension)
	seq.SetMaxFrames(cfg.MaxFrames)
	seq.SetFrameRate(cfg.FrameRate)
	seq.EnableThreadedLoad(cfg.Threaded)
	seq.SetMinMagFilter(parseFilter(cfg.MinFilter), parseFilter(cfg.MagFilter))

	// Cancel cleanly on Ctrl-C during a background load.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	if err := seq.LoadFolder(folder); err != nil {
		return nil, err
	}

	if cfg.Threaded {
		ticker := time.NewTicker(10 * time.Millisecond)
		defer ticker.Stop()
		for !seq.IsLoaded() {
			select {
			case <-sigCh:
				log.Warn(l10n.T("Interrupted, shutting down..."))
				seq.CancelLoad()
				return nil, fmt.Errorf("load interrupted")
			case <-ticker.C:
				seq.Update()
				if !seq.IsLoading() && !seq.IsLoaded() {
					if err := seq.LoadError(); err != nil {
						return nil, err
					}
					return nil, fmt.Errorf("load did not complete")
				}
			}
		}
	}

	return seq, nil
}

// Run executes the inspect command.
func (cmd *InspectCmd) Run() error {
	cfg, err := cmd.loadConfig()
	if err != nil {
		return err
	}
	log := cmd.newLogger(cfg)

	seq, err := loadSequence(cmd.Folder, cfg, log)
	if err != nil {
		return err
	}
	defer seq.Unload()

	fmt.Printf("%s: %s\n", l10n.T("Folder"), cmd.Folder)
	fmt.Printf("%s: %d\n", l10n.T("Frames"), seq.TotalFrames())
	fmt.Printf("%s: %.2fs @ %.4g fps\n", l10n.T("Duration"), seq.LengthInSeconds(), cfg.FrameRate)
	fmt.Printf("%s: %.0fx%.0f\n", l10n.T("Dimensions"), seq.Width(), seq.Height())
	fmt.Printf("%s: %s .. %s\n", l10n.T("Files"), seq.FilePath(0), seq.FilePath(seq.TotalFrames()-1))

	if failed := seq.FailedFrames(); len(failed) > 0 {
		fmt.Printf("%s: %v\n", l10n.T("Failed frames"), failed)
	}
	return nil
}

// Run executes the sheet command.
func (cmd *SheetCmd) Run() error {
	cfg, err := cmd.loadConfig()
	if err != nil {
		return err
	}
	if cmd.Columns > 0 {
		cfg.Sheet.Columns = cmd.Columns
	}
	if cmd.CellWidth > 0 {
		cfg.Sheet.CellWidth = cmd.CellWidth
	}
	if cmd.NoLabels {
		cfg.Sheet.Labels = false
	}
	log := cmd.newLogger(cfg)

	seq, err := loadSequence(cmd.Folder, cfg, log)
	if err != nil {
		return err
	}
	defer seq.Unload()

	seq.PreloadAllFrames()

	failed := map[int]bool{}
	for _, i := range seq.FailedFrames() {
		failed[i] = true
	}

	frames := make([]contactsheet.Frame, seq.TotalFrames())
	for i := range frames {
		frame := contactsheet.Frame{Label: fmt.Sprintf("%d", i)}
		if !failed[i] {
			if buf := seq.PixelsForFrame(i); buf != nil && buf.IsAllocated() {
				frame.Image = buf.Image()
			}
		}
		frames[i] = frame
	}

	sheet, err := contactsheet.Render(frames, contactsheet.Options{
		Columns:    cfg.Sheet.Columns,
		CellWidth:  cfg.Sheet.CellWidth,
		Gap:        cfg.Sheet.Gap,
		Padding:    cfg.Sheet.Padding,
		Background: config.ParseColor(cfg.Sheet.BackgroundColor),
		Labels:     cfg.Sheet.Labels,
	})
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, sheet); err != nil {
		return fmt.Errorf("encode sheet: %w", err)
	}
	if err := osfilesystem.New().WriteFile(cmd.Output, buf.Bytes()); err != nil {
		log.Error(l10n.F("Failed to write output: %s", err))
		return err
	}

	log.Info(l10n.F("Output saved to %s", cmd.Output))
	return nil
}

// Run executes the version command.
func (cmd *VersionCmd) Run() error {
	fmt.Printf(l10n.T("imageseq version %s")+"\n", version)
	return nil
}
