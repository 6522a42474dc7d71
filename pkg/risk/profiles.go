package risk

import (
	"fmt"
	"sort"
)

// DefaultProfileName is the profile used when none is configured.
const DefaultProfileName = "canonical"

var (
	standardWeights = []float64{
		0.03,   // age
		0.02,   // bmi
		0.025,  // systolic bp
		0.02,   // diastolic bp
		0.015,  // total cholesterol
		0.02,   // ldl
		-0.02,  // hdl
		0.012,  // triglycerides
		0.014,  // heart rate
		0.016,  // resting heart rate
		-0.018, // hrv
		0.05,   // smoking
		0.04,   // diabetes
	}

	percentThresholds = Thresholds{LowMax: 10, ModerateMax: 20}

	builtins = map[string]*WeightProfile{}
)

func init() {
	for _, p := range []*WeightProfile{
		MustWeightProfile(DefaultProfileName, standardWeights,
			Scaling{Strategy: ScaleDivide, Factor: 1.5}, percentThresholds),
		MustWeightProfile("multiplicative", standardWeights,
			Scaling{Strategy: ScaleMultiply, Factor: 10}, percentThresholds),
		MustWeightProfile("percentage", standardWeights,
			Scaling{Strategy: ScaleMultiply, Factor: 100}, percentThresholds),
		MustWeightProfile("fractional", standardWeights,
			Scaling{Strategy: ScaleNone}, Thresholds{LowMax: 0.3, ModerateMax: 0.7}),
	} {
		builtins[p.Name()] = p
	}
}

// Profiles returns the built-in profiles sorted by name.
func Profiles() []*WeightProfile {
	list := make([]*WeightProfile, 0, len(builtins))
	for _, p := range builtins {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name() < list[j].Name()
	})
	return list
}

// LookupProfile returns the built-in profile with the given name.
func LookupProfile(name string) (*WeightProfile, error) {
	p, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProfile, name)
	}
	return p, nil
}

// DefaultProfile returns the canonical built-in profile.
func DefaultProfile() *WeightProfile {
	return builtins[DefaultProfileName]
}
