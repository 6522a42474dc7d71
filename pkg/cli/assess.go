package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mchmarny/cadrisk/pkg/net"
	"github.com/mchmarny/cadrisk/pkg/risk"
	"github.com/urfave/cli/v3"
)

const (
	inputFlagName = "input"

	ageFlagName         = "age"
	bmiFlagName         = "bmi"
	systolicFlagName    = "systolic-bp"
	diastolicFlagName   = "diastolic-bp"
	totalCholFlagName   = "total-cholesterol"
	ldlFlagName         = "ldl"
	hdlFlagName         = "hdl"
	triglyceridFlagName = "triglycerides"
	heartRateFlagName   = "heart-rate"
	restingHRFlagName   = "resting-heart-rate"
	hrvFlagName         = "hrv"
	smokingFlagName     = "smoking"
	diabetesFlagName    = "diabetes"
	sexFlagName         = "sex"
	raceFlagName        = "race"
)

// intFields maps integer flags onto their Input fields.
var intFields = []struct {
	flag  string
	usage string
	field func(in *risk.Input) **int
}{
	{ageFlagName, "Age in years [20-100]", func(in *risk.Input) **int { return &in.Age }},
	{systolicFlagName, "Systolic blood pressure in mmHg [90-200]", func(in *risk.Input) **int { return &in.SystolicBP }},
	{diastolicFlagName, "Diastolic blood pressure in mmHg [60-140]", func(in *risk.Input) **int { return &in.DiastolicBP }},
	{totalCholFlagName, "Total cholesterol in mg/dL [100-320]", func(in *risk.Input) **int { return &in.TotalCholesterol }},
	{ldlFlagName, "LDL cholesterol in mg/dL [30-300]", func(in *risk.Input) **int { return &in.LDLCholesterol }},
	{hdlFlagName, "HDL cholesterol in mg/dL [20-100]", func(in *risk.Input) **int { return &in.HDLCholesterol }},
	{triglyceridFlagName, "Triglycerides in mg/dL [50-500]", func(in *risk.Input) **int { return &in.Triglycerides }},
	{heartRateFlagName, "Heart rate in BPM [40-150]", func(in *risk.Input) **int { return &in.HeartRate }},
	{restingHRFlagName, "Resting heart rate in BPM [40-100]", func(in *risk.Input) **int { return &in.RestingHeartRate }},
	{hrvFlagName, "Heart rate variability [10-100]", func(in *risk.Input) **int { return &in.HeartRateVariability }},
}

type validationResult struct {
	Violations []risk.Violation `json:"violations" yaml:"violations"`
}

func newAssessCmd() *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:  inputFlagName,
			Usage: "Path or URL of a JSON/YAML input document, '-' for stdin (flags override its values)",
		},
		&cli.FloatFlag{
			Name:  bmiFlagName,
			Usage: "Body mass index [15.0-50.0]",
		},
		&cli.BoolFlag{
			Name:  smokingFlagName,
			Usage: "Smoker (required, use --smoking=false for non-smokers)",
		},
		&cli.BoolFlag{
			Name:  diabetesFlagName,
			Usage: "Diabetic (required, use --diabetes=false otherwise)",
		},
		&cli.StringFlag{
			Name:  sexFlagName,
			Usage: "Sex [male, female]",
		},
		&cli.StringFlag{
			Name:  raceFlagName,
			Usage: "Race [white, african_american, other]",
		},
	}
	for _, f := range intFields {
		flags = append(flags, &cli.IntFlag{Name: f.flag, Usage: f.usage})
	}

	return &cli.Command{
		Name:    "assess",
		Aliases: []string{"a"},
		Usage:   "Assess a single set of measurements",
		UsageText: `cadrisk assess --age 45 --bmi 25 --systolic-bp 120 --diastolic-bp 80 \
     --total-cholesterol 180 --ldl 100 --hdl 50 --triglycerides 150 \
     --heart-rate 75 --resting-heart-rate 65 --hrv 50 \
     --smoking=false --diabetes=false --sex female --race other
   cadrisk assess --input patient.yaml
   cadrisk assess --input patient.yaml --age 60          # override one value`,
		Flags:  flags,
		Action: cmdAssess,
	}
}

func cmdAssess(ctx context.Context, cmd *cli.Command) error {
	cfg := getConfig(cmd)

	in, err := readInput(ctx, cmd)
	if err != nil {
		return err
	}

	a, err := cfg.Engine.Assess(in)
	if err != nil {
		return handleAssessError(cmd, err)
	}

	slog.Debug("assessment complete", "profile", a.Profile, "score", a.Score, "band", a.Band)
	if err := encode(cmd, a); err != nil {
		return fmt.Errorf("error encoding assessment: %w", err)
	}
	return nil
}

func handleAssessError(cmd *cli.Command, err error) error {
	var ve *risk.ValidationError
	if !errors.As(err, &ve) {
		return fmt.Errorf("assessing input: %w", err)
	}
	slog.Debug("input rejected", "violations", len(ve.Errors))
	if err := encode(cmd, &validationResult{Violations: ve.Violations()}); err != nil {
		return fmt.Errorf("error encoding violations: %w", err)
	}
	return errInvalidInput
}

func readInput(ctx context.Context, cmd *cli.Command) (*risk.Input, error) {
	in := &risk.Input{}
	if src := cmd.String(inputFlagName); src != "" {
		if err := net.GetDocument(ctx, src, in); err != nil {
			return nil, fmt.Errorf("reading input: %w", err)
		}
	}
	applyFlags(cmd, in)
	return in, nil
}

// applyFlags copies every explicitly set flag onto the input. Unset flags
// leave the field untouched so it is reported missing if nothing else set it.
func applyFlags(cmd *cli.Command, in *risk.Input) {
	for _, f := range intFields {
		if cmd.IsSet(f.flag) {
			v := cmd.Int(f.flag)
			*f.field(in) = &v
		}
	}
	if cmd.IsSet(bmiFlagName) {
		v := cmd.Float(bmiFlagName)
		in.BMI = &v
	}
	if cmd.IsSet(smokingFlagName) {
		v := cmd.Bool(smokingFlagName)
		in.Smoking = &v
	}
	if cmd.IsSet(diabetesFlagName) {
		v := cmd.Bool(diabetesFlagName)
		in.Diabetes = &v
	}
	if cmd.IsSet(sexFlagName) {
		in.Sex = cmd.String(sexFlagName)
	}
	if cmd.IsSet(raceFlagName) {
		in.Race = cmd.String(raceFlagName)
	}
}
