package check

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithMessage(t *testing.T) {
	t.Parallel()
	c := WithMessage(Length(2), "need two chars")

	assert.NoError(t, c.Evaluate("ab"))
	assert.Equal(t, "need two chars", MessageOf(c.Evaluate("abc")))
	assert.Equal(t, DefaultMessage, MessageOf(WithMessage(Length(2), "").Evaluate("a")))
}

func TestNot(t *testing.T) {
	t.Parallel()
	c := Not(Equals(false, "root"))

	assertVerdicts(t, c, verdicts{accept: []string{"alice", ""}, reject: []string{"root", "ROOT"}})
	assert.Equal(t, DefaultMessage, MessageOf(c.Evaluate("root")))
}

func TestAnyOf(t *testing.T) {
	t.Parallel()

	c := AnyOf(Equals(false, "y", "n"), Range[int](1, 3))
	assertVerdicts(t, c, verdicts{accept: []string{"y", "N", "1", "3"}, reject: []string{"4", "maybe", ""}})

	assertVerdicts(t, AnyOf(), verdicts{reject: []string{"", "anything"}})
}

func TestAnyOf_StopsAtFirstAcceptance(t *testing.T) {
	t.Parallel()

	var calls []string
	probe := func(name string, accept bool) Check {
		return Func(func(string) error {
			calls = append(calls, name)
			if accept {
				return nil
			}
			return Reject("")
		})
	}

	c := AnyOf(probe("first", false), probe("second", true), probe("third", true))
	assert.NoError(t, c.Evaluate("x"))
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestAll(t *testing.T) {
	t.Parallel()

	c := All(WithMessage(Length(4), "four digits"), WithMessage(Numeric[uint](), "digits only"))
	assert.NoError(t, c.Evaluate("1234"))
	assert.Equal(t, "four digits", MessageOf(c.Evaluate("12")))
	assert.Equal(t, "digits only", MessageOf(c.Evaluate("12ab")))
	assert.NoError(t, All().Evaluate("anything"))
}

func FuzzNotIsComplement(f *testing.F) {
	f.Add("abc")
	f.Add("")
	f.Add("-12")
	f.Add("3.5")
	f.Add("ÄÖ\n")

	inner := []Check{
		Length(3),
		Numeric[int](),
		Numeric[float32](),
		Charset("abc"),
		Equals(false, "abc"),
		MatchPattern(`[a-c]*`),
		Range[int16](-100, 100),
	}

	f.Fuzz(func(t *testing.T, candidate string) {
		for i, c := range inner {
			if Accepts(c, candidate) == Accepts(Not(c), candidate) {
				t.Fatalf("check %d: Not is not the complement for %q", i, candidate)
			}
		}
	})
}

func FuzzAnyOfIsDisjunction(f *testing.F) {
	f.Add("y")
	f.Add("2")
	f.Add("")

	a := Equals(false, "y", "n")
	b := Range[int](1, 3)

	f.Fuzz(func(t *testing.T, candidate string) {
		want := Accepts(a, candidate) || Accepts(b, candidate)
		if got := Accepts(AnyOf(a, b), candidate); got != want {
			t.Fatalf("AnyOf(%q) = %v, want %v", candidate, got, want)
		}
	})
}
