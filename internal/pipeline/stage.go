package pipeline

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// StageKind names a phase-history correction.
type StageKind string

const (
	StageRVP      StageKind = "rvp"
	StageConstRef StageKind = "const_ref"
	StageRemoComp StageKind = "remocomp"

	stageSimulate = "simulate"
)

// ParseStageKind converts a string to a StageKind.
func ParseStageKind(s string) (StageKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rvp":
		return StageRVP, nil
	case "const_ref", "constref", "const-ref":
		return StageConstRef, nil
	case "remocomp", "remo_comp", "re-motion":
		return StageRemoComp, nil
	default:
		return "", fmt.Errorf("unsupported stage %q", s)
	}
}

// Stage is one correction in a pipeline. Upchirp only applies to
// StageConstRef and Center only to StageRemoComp.
type Stage struct {
	Kind    StageKind
	Upchirp bool
	Center  r3.Vec
}

func (s Stage) String() string {
	switch s.Kind {
	case StageConstRef:
		if s.Upchirp {
			return "const_ref(upchirp)"
		}
		return "const_ref(downchirp)"
	case StageRemoComp:
		return fmt.Sprintf("remocomp(%g, %g, %g)", s.Center.X, s.Center.Y, s.Center.Z)
	default:
		return string(s.Kind)
	}
}
