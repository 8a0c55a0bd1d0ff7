package main

import (
	"os"

	"github.com/arthur-debert/resman/internal/cli"
	"github.com/arthur-debert/resman/pkg/output"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		r := output.NewRenderer(os.Stderr, output.DetectFormat(os.Stderr))
		_ = r.RenderError(err)
		os.Exit(1)
	}
}
