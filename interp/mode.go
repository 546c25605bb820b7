package interp

import (
	"fmt"
	"strings"
)

// Mode selects which pair of real frames brackets a synthesized frame.
type Mode int

const (
	ModeUndefined Mode = iota

	// ModeChronos is the trailing-pair strategy: the location of a
	// synthesized frame is measured from the previous real frame (so it is in
	// [0, 1)) and only the latest real frame is retained.
	ModeChronos

	// ModeApollo is the leading-pair strategy: the location is measured from
	// the latest real frame (so it is in [-1, 0)) and the two latest real
	// frames are retained.
	ModeApollo
)

func (m Mode) String() string {
	switch m {
	case ModeUndefined:
		return "<undefined>"
	case ModeChronos:
		return "chronos"
	case ModeApollo:
		return "apollo"
	default:
		return fmt.Sprintf("<unknown:%d>", int(m))
	}
}

// AnchorsCount returns how many real frames are retained in this mode.
func (m Mode) AnchorsCount() int {
	switch m {
	case ModeChronos:
		return 1
	case ModeApollo:
		return 2
	default:
		return 0
	}
}

func ModeFromString(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "chronos":
		return ModeChronos, nil
	case "apollo":
		return ModeApollo, nil
	default:
		return ModeUndefined, fmt.Errorf("unknown mode '%s'", s)
	}
}

// ModeFromModelName derives the mode from the model family, which is the
// prefix of the model short name before the dash (e.g. "chr" in "chr-2").
func ModeFromModelName(modelName string) (Mode, error) {
	family, _, _ := strings.Cut(strings.ToLower(strings.TrimSpace(modelName)), "-")
	switch family {
	case "chr", "chf":
		return ModeChronos, nil
	case "apo", "apf", "aion":
		return ModeApollo, nil
	default:
		return ModeUndefined, fmt.Errorf("unable to determine the interpolation mode for model '%s': unknown model family '%s'", modelName, family)
	}
}
