package cli

import (
	"context"
	"fmt"

	"github.com/mchmarny/cadrisk/pkg/config"
	"github.com/mchmarny/cadrisk/pkg/risk"
	"github.com/urfave/cli/v3"
)

type profileView struct {
	Name       string             `json:"name" yaml:"name"`
	Active     bool               `json:"active" yaml:"active"`
	Scaling    string             `json:"scaling" yaml:"scaling"`
	Thresholds risk.Thresholds    `json:"thresholds" yaml:"thresholds"`
	Weights    map[string]float64 `json:"weights,omitempty" yaml:"weights,omitempty"`
}

func toProfileView(p *risk.WeightProfile, active string, withWeights bool) *profileView {
	v := &profileView{
		Name:       p.Name(),
		Active:     p.Name() == active,
		Scaling:    p.Scaling().String(),
		Thresholds: p.Thresholds(),
	}
	if withWeights {
		v.Weights = make(map[string]float64, risk.NumFields)
		w := p.Weights()
		for i, f := range risk.Fields() {
			v.Weights[f.Name] = w[i]
		}
	}
	return v
}

func newProfileCmd() *cli.Command {
	return &cli.Command{
		Name:    "profile",
		Aliases: []string{"p"},
		Usage:   "Inspect weight profiles",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List built-in and configured profiles",
				Action: cmdProfileList,
			},
			{
				Name:      "show",
				Usage:     "Show weights, scaling and thresholds of a profile",
				ArgsUsage: "[name]",
				Action:    cmdProfileShow,
			},
		},
	}
}

func cmdProfileList(_ context.Context, cmd *cli.Command) error {
	cfg := getConfig(cmd)

	all, err := cfg.Config.AllProfiles()
	if err != nil {
		return fmt.Errorf("listing profiles: %w", err)
	}

	active := cfg.Engine.Profile().Name()
	list := make([]*profileView, 0, len(all))
	for _, p := range all {
		list = append(list, toProfileView(p, active, false))
	}
	return encode(cmd, list)
}

func cmdProfileShow(ctx context.Context, cmd *cli.Command) error {
	cfg := getConfig(cmd)
	active := cfg.Engine.Profile()

	p := active
	if name := cmd.Args().First(); name != "" {
		var err error
		if p, err = lookupProfile(ctx, cfg.Config, name); err != nil {
			return err
		}
	}
	return encode(cmd, toProfileView(p, active.Name(), true))
}

func lookupProfile(ctx context.Context, c *config.Config, name string) (*risk.WeightProfile, error) {
	if config.IsProfileSource(name) {
		return config.LoadProfile(ctx, name)
	}
	p, err := c.Resolve(name)
	if err != nil {
		return nil, fmt.Errorf("resolving profile: %w", err)
	}
	return p, nil
}
