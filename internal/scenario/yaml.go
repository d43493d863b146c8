package scenario

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"
)

// Vec is a 3D point written as a [x, y, z] sequence.
type Vec [3]float64

func (v Vec) r3() r3.Vec { return r3.Vec{X: v[0], Y: v[1], Z: v[2]} }

// UnmarshalYAML requires exactly three coordinates.
func (v *Vec) UnmarshalYAML(node *yaml.Node) error {
	var xs []float64
	if err := node.Decode(&xs); err != nil {
		return fmt.Errorf("line %d: vector: %w", node.Line, err)
	}
	if len(xs) != 3 {
		return fmt.Errorf("line %d: vector needs 3 coordinates, got %d", node.Line, len(xs))
	}
	copy(v[:], xs)
	return nil
}

// Amplitude is a complex scatterer amplitude. It accepts a bare number
// (real), a [re, im] pair, or a {re, im} mapping.
type Amplitude complex128

func (a *Amplitude) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var re float64
		if err := node.Decode(&re); err != nil {
			return fmt.Errorf("line %d: amplitude: %w", node.Line, err)
		}
		*a = Amplitude(complex(re, 0))
	case yaml.SequenceNode:
		var parts []float64
		if err := node.Decode(&parts); err != nil {
			return fmt.Errorf("line %d: amplitude: %w", node.Line, err)
		}
		if len(parts) != 2 {
			return fmt.Errorf("line %d: amplitude pair needs 2 values, got %d", node.Line, len(parts))
		}
		*a = Amplitude(complex(parts[0], parts[1]))
	case yaml.MappingNode:
		var m struct {
			Re float64 `yaml:"re"`
			Im float64 `yaml:"im"`
		}
		if err := node.Decode(&m); err != nil {
			return fmt.Errorf("line %d: amplitude: %w", node.Line, err)
		}
		*a = Amplitude(complex(m.Re, m.Im))
	default:
		return fmt.Errorf("line %d: unsupported amplitude", node.Line)
	}
	return nil
}
