//go:build go1.18
// +build go1.18

package formula_test

import (
	"errors"
	"testing"

	"github.com/zephyrtronium/formula"
)

func FuzzParse(f *testing.F) {
	f.Add("1×2")
	f.Add("|1|")
	f.Add("2(3)")
	f.Add("-2^2")
	f.Add("⌊1.5⌋⌈2.5⌉")
	f.Add("max(1, @, 3²)!")
	f.Add("ilog(8,2)<<1|3")
	f.Fuzz(func(t *testing.T, s string) {
		e, err := formula.Parse[formula.Number](formula.Dynamic{}, s)
		if err != nil {
			var ie formula.InputError
			if !errors.As(err, &ie) {
				t.Errorf("%q gave %#v, which is not an InputError", s, err)
			}
			if !errors.Is(err, formula.ErrInvalidOperator) && !errors.Is(err, formula.ErrUnableToParse) {
				t.Errorf("%q gave uncategorized error %v", s, err)
			}
			return
		}
		r, err := formula.Parse[formula.Number](formula.Dynamic{}, e.String())
		if err != nil {
			t.Fatalf("%q formatted as %q, which doesn't parse: %v", s, e.String(), err)
		}
		if e.String() != r.String() {
			t.Errorf("%q formatted as %q, which reparses as %q", s, e.String(), r.String())
		}
	})
}
