// Package points reads candidate (mass1, mass2, spin1z, spin2z) points from
// files and inline specs.
package points

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"tmpltbank/internal/textio"
)

// ErrBadPoint reports a malformed point row or spec.
var ErrBadPoint = errors.New("bad point")

// Point is one candidate system. Mass1 is the heavier body; Source and Line
// locate where it was read ("--points" for inline specs).
type Point struct {
	Mass1, Mass2   float64
	Spin1z, Spin2z float64
	Source         string
	Line           int
}

// canonical swaps the bodies so that Mass1 >= Mass2.
func (p Point) canonical() Point {
	if p.Mass2 > p.Mass1 {
		p.Mass1, p.Mass2 = p.Mass2, p.Mass1
		p.Spin1z, p.Spin2z = p.Spin2z, p.Spin1z
	}
	return p
}

func fromFields(f []string) (Point, error) {
	if len(f) != 2 && len(f) != 4 {
		return Point{}, fmt.Errorf("%w: want 2 or 4 values (m1 m2 [s1z s2z]), got %d", ErrBadPoint, len(f))
	}
	var v [4]float64
	for i, s := range f {
		x, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(x) || math.IsInf(x, 0) {
			return Point{}, fmt.Errorf("%w: %q is not a finite number", ErrBadPoint, s)
		}
		v[i] = x
	}
	if v[0] <= 0 || v[1] <= 0 {
		return Point{}, fmt.Errorf("%w: masses must be > 0", ErrBadPoint)
	}
	return Point{Mass1: v[0], Mass2: v[1], Spin1z: v[2], Spin2z: v[3]}.canonical(), nil
}

// ParseInline parses "m1,m2[,s1z,s2z]".
func ParseInline(spec string) (Point, error) {
	f := strings.Split(spec, ",")
	for i := range f {
		f[i] = strings.TrimSpace(f[i])
	}
	p, err := fromFields(f)
	if err != nil {
		return Point{}, fmt.Errorf("--points %q: %w", spec, err)
	}
	p.Source = "--points"
	return p, nil
}

// ReadFile reads whitespace-separated "m1 m2 [s1z s2z]" rows from path
// ("-" is stdin, .gz is decompressed).
func ReadFile(path string) ([]Point, error) {
	var out []Point
	err := textio.ReadFile(path, func(ln int, f []string) error {
		p, err := fromFields(f)
		if err != nil {
			return fmt.Errorf("line %d: %w", ln, err)
		}
		p.Source, p.Line = path, ln
		out = append(out, p)
		return nil
	})
	return out, err
}

// Collect gathers the inline specs followed by every file, in order.
func Collect(specs, files []string) ([]Point, error) {
	var out []Point
	for _, s := range specs {
		p, err := ParseInline(s)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	for _, f := range files {
		ps, err := ReadFile(f)
		if err != nil {
			return nil, err
		}
		out = append(out, ps...)
	}
	return out, nil
}
