package main

import (
	"fmt"
	"os"

	"imgresize/internal/cli"
	"imgresize/internal/config"
	"imgresize/internal/image"
	"imgresize/internal/image/vips"
	"imgresize/internal/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.Load()

	if err := logging.Init(cfg.LogDir, cfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logging in %s: %v\n", cfg.LogDir, err)
	}
	defer logging.Sync()

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read working directory: %v\n", err)
		return 1
	}

	app := &cli.App{
		Cwd:    cwd,
		Config: cfg,
		Codec:  newCodec(cfg.Codec),
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
	return app.Run(os.Args[1:])
}

func newCodec(name string) image.Codec {
	if name == config.CodecVips {
		return vips.New()
	}
	return image.NewNativeCodec()
}
