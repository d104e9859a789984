package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"imgresize/internal/cleanup"
	"imgresize/internal/config"
	"imgresize/internal/image"
	"imgresize/internal/logging"
	"imgresize/internal/preview"
	"imgresize/internal/storage"
)

// App runs the imgresize command against an injected environment.
type App struct {
	Cwd    string
	Config *config.Config
	Codec  image.Codec
	Stdout io.Writer
	Stderr io.Writer

	ran bool
}

// Run executes the command and returns the process exit code.
func (a *App) Run(args []string) int {
	log := logging.Get("cli")
	log.Info("starting image resize")

	code := 0
	a.ran = false
	if err := a.Command(args).Execute(); err != nil {
		fmt.Fprintf(a.Stderr, "Error: %v\n", err)
		if !a.ran {
			fmt.Fprintln(a.Stderr, `Try "imgresize --help".`)
		}
		code = 1
	}

	log.Infow("image resize end", "code", code)
	return code
}

func (a *App) Command(args []string) *cobra.Command {
	var flags Flags

	cmd := &cobra.Command{
		Use:   "imgresize --path <source> [--out <destination>]",
		Short: "Image resize client",
		Long: `Image resize client.

Writes one preview per entry of the size table to the destination
directory, plus a verbatim copy named full. The table is read from the
"imgresize" property of package.json, or the defaults are used.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.ran = true
			return a.generate(cmd.OutOrStdout(), flags)
		},
	}
	cmd.Flags().StringVar(&flags.Path, "path", "", "source image path")
	cmd.Flags().StringVar(&flags.Out, "out", DefaultOut, "destination path")
	cmd.SetArgs(args)
	cmd.SetOut(a.Stdout)
	cmd.SetErr(a.Stderr)
	return cmd
}

func (a *App) generate(out io.Writer, flags Flags) error {
	log := logging.Get("cli")

	opts, err := Resolve(a.Cwd, flags, a.Config, a.Codec)
	if err != nil {
		log.Errorw("invalid options", "code", Code(err), "error", err)
		return err
	}
	log.Infow("options",
		"source", opts.Source.Path,
		"destination", opts.Source.DestDir,
		"width", opts.Source.Width,
		"sizes", len(opts.Sizes),
	)

	if _, _, err := cleanup.Sweep(opts.Source.DestDir, cleanup.StaleAfter); err != nil {
		log.Warnw("stale temp sweep failed", "dir", opts.Source.DestDir, "error", err)
	}

	gen := preview.NewGenerator(a.Codec, preview.WithWorkers(a.Config.Concurrency))
	report := gen.Generate(opts.Source, opts.Sizes)

	for _, o := range append([]preview.Outcome{report.Copy}, report.Previews...) {
		status := "ok"
		if o.Failed() {
			status = "failed"
		}
		fmt.Fprintf(out, "%-10s %6d  %-6s %s\n", o.Name, o.Width, status, o.Path)
	}

	if fs, err := storage.NewFilesystem(opts.Source.DestDir); err == nil {
		if usage, err := fs.GetDiskUsage(); err == nil {
			log.Infow("destination usage", "dir", fs.Dir(), "bytes", usage)
		}
	}

	if !report.OK() {
		if errors.Is(report.Err(), image.ErrUnsupportedOutput) && a.Config.Codec != config.CodecVips {
			log.Warnw("output format needs libvips", "ext", opts.Source.Ext)
			fmt.Fprintf(a.Stderr, "Hint: %s previews can not be encoded by the native codec, set IMGRESIZE_CODEC=vips\n", opts.Source.Ext)
		}
		return fmt.Errorf("can not create image previews, errors: %d: %w", len(report.Failed()), report.Err())
	}
	return nil
}
