package sandbox

import (
	"fmt"
	"math"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
)

// iterationCounter accumulates the aggregate size of every range()
// requested by a script, the proxy this package uses for the
// "loop iteration count" quota: Starlark has no public step-count hook,
// but nearly every bounded for-loop in the allowed surface is driven by
// range(), so gating range() there is a close, cheap approximation.
type iterationCounter struct {
	max      int
	total    int
	exceeded bool
}

func (c *iterationCounter) add(n int) error {
	c.total += n
	if c.total > c.max {
		c.exceeded = true
		return fmt.Errorf("aggregate loop iteration quota (%d) exceeded", c.max)
	}
	return nil
}

// predeclaredEnv builds the exact allowed script surface: the listed pure
// builtins (borrowed from Starlark's own universe where it already has
// them, since their semantics already match), a single math module, and
// nothing else. The companion static check in static.go additionally
// rejects any direct call to a name outside this set, so this dict only
// needs to supply what's legitimately reachable.
func predeclaredEnv(maxIterations int) (starlark.StringDict, *iterationCounter) {
	counter := &iterationCounter{max: maxIterations}

	rangeBuiltin := starlark.NewBuiltin("range", func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		underlying, ok := starlark.Universe["range"]
		if !ok {
			return nil, fmt.Errorf("internal: range builtin unavailable")
		}
		result, err := starlark.Call(thread, underlying, args, kwargs)
		if err != nil {
			return nil, err
		}
		if seq, ok := result.(starlark.Sequence); ok {
			if err := counter.add(seq.Len()); err != nil {
				return nil, err
			}
		}
		return result, nil
	})

	absBuiltin := starlark.NewBuiltin("abs", func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var x starlark.Value
		if err := starlark.UnpackArgs("abs", args, kwargs, "x", &x); err != nil {
			return nil, err
		}
		switch v := x.(type) {
		case starlark.Int:
			if v.Sign() < 0 {
				return v.Mul(starlark.MakeInt(-1)), nil
			}
			return v, nil
		case starlark.Float:
			return starlark.Float(math.Abs(float64(v))), nil
		default:
			return nil, fmt.Errorf("abs: unsupported type %s", x.Type())
		}
	})

	mathModule := starlarkstruct.FromStringDict(starlarkstruct.Default, starlark.StringDict{
		"sin":   builtinFloatFn("sin", math.Sin),
		"cos":   builtinFloatFn("cos", math.Cos),
		"tan":   builtinFloatFn("tan", math.Tan),
		"sqrt":  builtinFloatFn("sqrt", math.Sqrt),
		"floor": builtinFloatFn("floor", math.Floor),
		"ceil":  builtinFloatFn("ceil", math.Ceil),
		"pi":    starlark.Float(math.Pi),
		"e":     starlark.Float(math.E),
	})

	env := starlark.StringDict{
		"range":     rangeBuiltin,
		"len":       starlark.Universe["len"],
		"enumerate": starlark.Universe["enumerate"],
		"zip":       starlark.Universe["zip"],
		"abs":       absBuiltin,
		"min":       starlark.Universe["min"],
		"max":       starlark.Universe["max"],
		"int":       starlark.Universe["int"],
		"float":     starlark.Universe["float"],
		"str":       starlark.Universe["str"],
		"math":      mathModule,
	}

	return env, counter
}

func builtinFloatFn(name string, fn func(float64) float64) *starlark.Builtin {
	return starlark.NewBuiltin(name, func(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var x starlark.Value
		if err := starlark.UnpackArgs(name, args, kwargs, "x", &x); err != nil {
			return nil, err
		}
		f, ok := starlark.AsFloat(x)
		if !ok {
			return nil, fmt.Errorf("%s: unsupported type %s", name, x.Type())
		}
		return starlark.Float(fn(f)), nil
	})
}
