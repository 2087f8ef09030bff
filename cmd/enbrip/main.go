// Command enbrip decodes an Enbaya animation stream into a dense .rtrd buffer.
//
//	enbrip <input> [fps] [method] [--compress=zstd] [--verbose]
//
// The output is written next to the input with its extension replaced by .rtrd,
// followed by the codec suffix when --compress is given.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"github.com/arloliu/enbaya"
	"github.com/arloliu/enbaya/compress"
	"github.com/arloliu/enbaya/errs"
	"github.com/arloliu/enbaya/format"
	"github.com/arloliu/enbaya/internal/cli"
)

// version is set via ldflags at build time
var version = "dev"

// Exit codes. Decode failures exit with -(100 + errs.Code(err)).
const (
	exitOK          = 0
	exitUsage       = -1
	exitOpenInput   = -4
	exitReadInput   = -6
	exitCloseInput  = -7
	exitOpenOutput  = -8
	exitWriteOutput = -9
	exitCloseOutput = -10
	exitDecodeBase  = -100
)

type config struct {
	Input    string  `arg:"" name:"input" help:"Enbaya stream to decode" optional:""`
	FPS      float32 `arg:"" name:"fps" help:"Output frame rate" default:"30" optional:""`
	Method   int     `arg:"" name:"method" help:"Interpolation: 0 none, 1 lerp, 2 slerp" default:"2" optional:""`
	Compress string  `help:"Compress the output (none, zstd, s2, lz4)" default:"none" enum:"none,zstd,s2,lz4"`
	Verbose  bool    `short:"v" help:"Log progress to stderr"`
	Version  bool    `help:"Show version information"`
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var cfg config

	parser, err := kong.New(&cfg,
		kong.Name("enbrip"),
		kong.Description("Decode an Enbaya animation stream into an .rtrd buffer."),
		kong.Help(cli.StyledHelpPrinter("enbrip")),
	)
	if err != nil {
		cli.PrintError(err.Error())
		return exitUsage
	}

	if _, err := parser.Parse(args); err != nil {
		cli.PrintError(err.Error())
		return exitUsage
	}

	if cfg.Version {
		cli.PrintVersion("enbrip", version)
		return exitOK
	}

	if cfg.Input == "" {
		cli.PrintError("usage: enbrip <input> [fps] [method]")
		return exitUsage
	}

	logger := log.New(io.Discard, "enbrip: ", log.Ltime|log.Lmicroseconds)
	if cfg.Verbose {
		logger.SetOutput(os.Stderr)
	}

	return convert(cfg, logger)
}

func convert(cfg config, logger *log.Logger) int {
	codecType, _ := format.ParseCompressionType(cfg.Compress)
	method := interpMethod(cfg.Method)
	if int(method) != cfg.Method {
		cli.PrintWarning(fmt.Sprintf("unknown method %d, using %s", cfg.Method, method))
	}
	outName := outputPath(cfg.Input, codecType)

	codec, err := compress.CreateCodec(codecType, "rtrd")
	if err != nil {
		cli.PrintError(err.Error())
		return exitUsage
	}

	data, code := readInput(cfg.Input)
	if code != exitOK {
		return code
	}
	logger.Printf("read %s (%s)", cfg.Input, cli.FormatBytes(int64(len(data))))

	start := time.Now()
	res, err := enbaya.Process(data, cfg.FPS, method, method)
	if err != nil {
		cli.PrintError(fmt.Sprintf("decoding %q: %v", cfg.Input, err))
		return exitDecodeBase - errs.Code(err)
	}
	elapsed := time.Since(start)
	logger.Printf("decoded %d tracks x %d frames with %s interpolation in %s",
		res.Buffer.Header().TrackCount, res.Frames, method, cli.FormatDuration(elapsed))

	if res.FPS != cfg.FPS {
		cli.PrintWarning(fmt.Sprintf("fps %g clamped to %g", cfg.FPS, res.FPS))
	}

	out, stats, err := compress.Measure(codec, codecType, res.Buffer.Bytes())
	if err != nil {
		cli.PrintError(err.Error())
		return exitWriteOutput
	}
	if codecType != format.CompressionNone {
		logger.Printf("%s: %s -> %s (%.1f%% saved)", codecType,
			cli.FormatBytes(stats.OriginalSize), cli.FormatBytes(stats.CompressedSize), stats.SpaceSavings())
	}

	if code := writeOutput(outName, out); code != exitOK {
		return code
	}

	cli.PrintSuccess(fmt.Sprintf("Processed %q to %q", cfg.Input, outName))
	cli.PrintInfo("Duration; FPS; Frames", fmt.Sprintf("%f; %f; %d", res.Duration, res.FPS, res.Frames))
	cli.PrintSummary("Output", []cli.Field{
		{Key: "Tracks", Value: fmt.Sprint(res.Buffer.Header().TrackCount)},
		{Key: "Size", Value: cli.FormatBytes(stats.CompressedSize)},
		{Key: "Codec", Value: codecType.String()},
		{Key: "Decode time", Value: cli.FormatDuration(elapsed)},
		{Key: "Fingerprint", Value: fmt.Sprintf("%016x", res.Buffer.Fingerprint())},
	})

	return exitOK
}

// interpMethod maps the numeric method argument; unknown values fall back to slerp.
func interpMethod(m int) format.InterpMethod {
	if m < int(format.InterpNone) || m > int(format.InterpSlerp) {
		return format.InterpSlerp
	}

	return format.InterpMethod(m)
}

// outputPath replaces the extension of input with .rtrd plus the codec suffix.
func outputPath(input string, codecType format.CompressionType) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))

	return base + ".rtrd" + codecType.Extension()
}

func readInput(name string) ([]byte, int) {
	f, err := os.Open(name)
	if err != nil {
		cli.PrintError(fmt.Sprintf("can't open file %q for read: %v", name, err))
		return nil, exitOpenInput
	}

	data, err := io.ReadAll(f)
	if err != nil {
		f.Close()
		cli.PrintError(fmt.Sprintf("can't read entire file %q: %v", name, err))

		return nil, exitReadInput
	}

	if err := f.Close(); err != nil {
		cli.PrintError(fmt.Sprintf("can't close input file %q: %v", name, err))
		return nil, exitCloseInput
	}

	return data, exitOK
}

func writeOutput(name string, data []byte) int {
	f, err := os.Create(name)
	if err != nil {
		cli.PrintError(fmt.Sprintf("can't open file %q for write: %v", name, err))
		return exitOpenOutput
	}

	n, err := f.Write(data)
	if err == nil && n != len(data) {
		err = io.ErrShortWrite
	}
	if err != nil {
		f.Close()
		cli.PrintError(fmt.Sprintf("can't write entire file %q: %v", name, err))

		return exitWriteOutput
	}

	if err := f.Close(); err != nil {
		cli.PrintError(fmt.Sprintf("can't close output file %q: %v", name, err))

		return exitCloseOutput
	}

	return exitOK
}
