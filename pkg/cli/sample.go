package cli

import (
	"context"

	"github.com/mchmarny/cadrisk/pkg/risk"
	"github.com/urfave/cli/v3"
)

func newSampleCmd() *cli.Command {
	return &cli.Command{
		Name:      "sample",
		Usage:     "Print a sample input document to use with --input",
		UsageText: "cadrisk --format yaml sample > patient.yaml",
		Action: func(_ context.Context, cmd *cli.Command) error {
			return encode(cmd, risk.SampleInput())
		},
	}
}
