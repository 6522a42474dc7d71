package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/mchmarny/cadrisk/pkg/net"
	"github.com/mchmarny/cadrisk/pkg/risk"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
)

type batchResult struct {
	Index      int              `json:"index" yaml:"index"`
	Assessment *risk.Assessment `json:"assessment,omitempty" yaml:"assessment,omitempty"`
	Violations []risk.Violation `json:"violations,omitempty" yaml:"violations,omitempty"`
}

type batchSummary struct {
	Profile  string         `json:"profile" yaml:"profile"`
	Total    int            `json:"total" yaml:"total"`
	Assessed int            `json:"assessed" yaml:"assessed"`
	Rejected int            `json:"rejected" yaml:"rejected"`
	Bands    map[string]int `json:"bands" yaml:"bands"`
	Results  []*batchResult `json:"results" yaml:"results"`
}

func newBatchCmd() *cli.Command {
	return &cli.Command{
		Name:      "batch",
		Aliases:   []string{"b"},
		Usage:     "Assess a list of measurement records",
		UsageText: "cadrisk batch --input patients.yaml",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     inputFlagName,
				Usage:    "Path or URL of a JSON/YAML list of input records, '-' for stdin",
				Required: true,
			},
		},
		Action: cmdBatch,
	}
}

func cmdBatch(ctx context.Context, cmd *cli.Command) error {
	cfg := getConfig(cmd)

	var list []*risk.Input
	if err := net.GetDocument(ctx, cmd.String(inputFlagName), &list); err != nil {
		return fmt.Errorf("reading batch input: %w", err)
	}

	sum, err := assessAll(ctx, cfg.Engine, list)
	if err != nil {
		return err
	}
	slog.Debug("batch complete", "total", sum.Total, "assessed", sum.Assessed, "rejected", sum.Rejected)

	if err := encode(cmd, sum); err != nil {
		return fmt.Errorf("error encoding batch results: %w", err)
	}
	return nil
}

// assessAll scores every record concurrently. Results keep input order and
// rejected records carry their violations instead of an assessment.
func assessAll(ctx context.Context, engine *risk.Engine, list []*risk.Input) (*batchSummary, error) {
	results := make([]*batchResult, len(list))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, in := range list {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			r := &batchResult{Index: i}
			a, err := engine.Assess(in)
			if err != nil {
				var ve *risk.ValidationError
				if !errors.As(err, &ve) {
					return fmt.Errorf("assessing record %d: %w", i, err)
				}
				r.Violations = ve.Violations()
			}
			r.Assessment = a
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sum := &batchSummary{
		Profile: engine.Profile().Name(),
		Total:   len(results),
		Bands:   make(map[string]int),
		Results: results,
	}
	for _, r := range results {
		if r.Assessment == nil {
			sum.Rejected++
			continue
		}
		sum.Assessed++
		sum.Bands[r.Assessment.Band.String()]++
	}
	return sum, nil
}
