// pkg/check/numeric.go

package check

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	cerr "github.com/cockroachdb/errors"
)

// ErrNotNumeric is returned when a numeric check is requested for a kind
// that is not a number.
var ErrNotNumeric = cerr.New("kind is not numeric")

// Number is the set of kinds Numeric and Range accept. Requesting either for
// any other type fails to compile.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

type numberClass int

const (
	unsignedClass numberClass = iota
	signedClass
	floatClass
)

var (
	unsignedRe = regexp.MustCompile(`^[0-9]+$`)
	signedRe   = regexp.MustCompile(`^-?[0-9]+$`)
	// A decimal point and a fractional part are required.
	floatRe = regexp.MustCompile(`^-?[0-9]+\.[0-9]+$`)
)

func (c numberClass) pattern() *regexp.Regexp {
	switch c {
	case signedClass:
		return signedRe
	case floatClass:
		return floatRe
	default:
		return unsignedRe
	}
}

func classOf(kind reflect.Kind) (numberClass, bool) {
	switch kind {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return unsignedClass, true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return signedClass, true
	case reflect.Float32, reflect.Float64:
		return floatClass, true
	default:
		return 0, false
	}
}

// Numeric accepts a candidate that is a syntactically valid literal of T:
// digits for unsigned T, an optional leading minus for signed T, and
// digits '.' digits (with optional minus) for floating T.
func Numeric[T Number]() Check {
	class, _ := classOf(reflect.TypeOf((*T)(nil)).Elem().Kind())
	return anchored(class.pattern())
}

// NumericKind is Numeric for a kind chosen at run time, e.g. from a form
// file. A non-numeric kind yields ErrNotNumeric and no Check.
func NumericKind(kind reflect.Kind) (Check, error) {
	class, ok := classOf(kind)
	if !ok {
		return nil, cerr.Wrapf(ErrNotNumeric, "numeric check for %s", kind)
	}
	return anchored(class.pattern()), nil
}

// Range accepts a candidate that passes Numeric[T] and parses to a value in
// [min, max]. A literal that passes the syntax check but does not fit in T
// (overflow) is rejected. min > max is a programming error and panics.
func Range[T Number](min, max T) Check {
	if min > max {
		panic(fmt.Sprintf("check: range minimum %v exceeds maximum %v", min, max))
	}

	typ := reflect.TypeOf((*T)(nil)).Elem()
	class, _ := classOf(typ.Kind())
	bits := typ.Bits()
	numeric := anchored(class.pattern())

	return Func(func(candidate string) error {
		if err := numeric.Evaluate(candidate); err != nil {
			return err
		}
		v, ok := parseNumber[T](candidate, class, bits)
		if !ok || v < min || v > max {
			return Reject("")
		}
		return nil
	})
}

func parseNumber[T Number](s string, class numberClass, bits int) (T, bool) {
	switch class {
	case unsignedClass:
		u, err := strconv.ParseUint(s, 10, bits)
		if err != nil {
			return 0, false
		}
		return T(u), true
	case signedClass:
		i, err := strconv.ParseInt(s, 10, bits)
		if err != nil {
			return 0, false
		}
		return T(i), true
	default:
		f, err := strconv.ParseFloat(s, bits)
		if err != nil {
			return 0, false
		}
		return T(f), true
	}
}

var kindNames = map[string]reflect.Kind{
	"int":      reflect.Int,
	"int8":     reflect.Int8,
	"int16":    reflect.Int16,
	"int32":    reflect.Int32,
	"int64":    reflect.Int64,
	"uint":     reflect.Uint,
	"uint8":    reflect.Uint8,
	"uint16":   reflect.Uint16,
	"uint32":   reflect.Uint32,
	"uint64":   reflect.Uint64,
	"float32":  reflect.Float32,
	"float64":  reflect.Float64,
	"integer":  reflect.Int,
	"unsigned": reflect.Uint,
	"float":    reflect.Float64,
}

// ParseKind maps a Go numeric type name ("int", "uint16", "float64", ...) or
// one of the aliases integer, unsigned and float to its reflect.Kind.
func ParseKind(name string) (reflect.Kind, error) {
	kind, ok := kindNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return reflect.Invalid, cerr.WithHint(
			cerr.Wrapf(ErrNotNumeric, "unknown numeric type %q", name),
			"use a Go numeric type name such as int, uint8 or float64",
		)
	}
	return kind, nil
}

// RangeKind is Range for a kind chosen at run time. min and max only need
// to parse as T; "1" is an acceptable float bound.
func RangeKind(kind reflect.Kind, min, max string) (Check, error) {
	switch kind {
	case reflect.Int:
		return rangeFromText[int](min, max)
	case reflect.Int8:
		return rangeFromText[int8](min, max)
	case reflect.Int16:
		return rangeFromText[int16](min, max)
	case reflect.Int32:
		return rangeFromText[int32](min, max)
	case reflect.Int64:
		return rangeFromText[int64](min, max)
	case reflect.Uint:
		return rangeFromText[uint](min, max)
	case reflect.Uint8:
		return rangeFromText[uint8](min, max)
	case reflect.Uint16:
		return rangeFromText[uint16](min, max)
	case reflect.Uint32:
		return rangeFromText[uint32](min, max)
	case reflect.Uint64:
		return rangeFromText[uint64](min, max)
	case reflect.Float32:
		return rangeFromText[float32](min, max)
	case reflect.Float64:
		return rangeFromText[float64](min, max)
	default:
		return nil, cerr.Wrapf(ErrNotNumeric, "range check for %s", kind)
	}
}

func rangeFromText[T Number](minText, maxText string) (Check, error) {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	class, _ := classOf(typ.Kind())
	bits := typ.Bits()

	min, ok := parseNumber[T](strings.TrimSpace(minText), class, bits)
	if !ok {
		return nil, cerr.Newf("range minimum %q is not a valid %s", minText, typ)
	}
	max, ok := parseNumber[T](strings.TrimSpace(maxText), class, bits)
	if !ok {
		return nil, cerr.Newf("range maximum %q is not a valid %s", maxText, typ)
	}
	if min > max {
		return nil, cerr.Newf("range minimum %s exceeds maximum %s", minText, maxText)
	}
	return Range(min, max), nil
}
