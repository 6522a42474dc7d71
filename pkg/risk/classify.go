package risk

import (
	"fmt"
	"strings"
)

// Band is the ordinal risk category.
type Band int

const (
	BandLow Band = iota
	BandModerate
	BandHigh
)

var bandNames = map[Band]string{
	BandLow:      "low",
	BandModerate: "moderate",
	BandHigh:     "high",
}

func (b Band) String() string {
	if s, ok := bandNames[b]; ok {
		return s
	}
	return fmt.Sprintf("band(%d)", int(b))
}

// Indicator returns the display symbol for the band.
func (b Band) Indicator() string {
	switch b {
	case BandLow:
		return "🟢"
	case BandModerate:
		return "🟡"
	default:
		return "🔴"
	}
}

// Label returns the human readable band name.
func (b Band) Label() string {
	switch b {
	case BandLow:
		return "Low CAD Risk"
	case BandModerate:
		return "Moderate CAD Risk"
	default:
		return "High CAD Risk"
	}
}

func (b Band) MarshalText() ([]byte, error) {
	if _, ok := bandNames[b]; !ok {
		return nil, fmt.Errorf("invalid band: %d", int(b))
	}
	return []byte(b.String()), nil
}

func (b *Band) UnmarshalText(text []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(text)))
	for k, v := range bandNames {
		if v == s {
			*b = k
			return nil
		}
	}
	return fmt.Errorf("invalid band: %q", string(text))
}

// Classify maps a score to a band. Lower edges are inclusive, upper edges
// exclusive, and High is unbounded above.
func Classify(score float64, t Thresholds) Band {
	switch {
	case score < t.LowMax:
		return BandLow
	case score < t.ModerateMax:
		return BandModerate
	default:
		return BandHigh
	}
}
