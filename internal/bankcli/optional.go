package bankcli

import (
	"fmt"
	"strconv"
	"strings"
)

// OptionalFloat is a float flag that remembers whether it was given, so an
// explicit 0 can be told apart from "not supplied".
type OptionalFloat struct {
	v   float64
	set bool
}

func (o *OptionalFloat) String() string {
	if o == nil || !o.set {
		return ""
	}
	return strconv.FormatFloat(o.v, 'g', -1, 64)
}

func (o *OptionalFloat) Set(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("invalid number %q", s)
	}
	o.v, o.set = v, true
	return nil
}

// Get returns the value and whether it was supplied.
func (o *OptionalFloat) Get() (float64, bool) { return o.v, o.set }

func (o *OptionalFloat) IsSet() bool { return o.set }

// Value returns the value, or 0 when unset.
func (o *OptionalFloat) Value() float64 {
	if !o.set {
		return 0
	}
	return o.v
}

// Or returns the value, or def when unset.
func (o *OptionalFloat) Or(def float64) float64 {
	if !o.set {
		return def
	}
	return o.v
}

// SetValue assigns v as if it had been given on the command line.
func (o *OptionalFloat) SetValue(v float64) { o.v, o.set = v, true }

// TypeName names the value in help output.
func (o *OptionalFloat) TypeName() string { return "float" }
