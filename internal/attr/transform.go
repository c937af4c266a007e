package attr

import (
	"fmt"
	"strconv"
	"strings"
)

// TransformOp is one affine operation in a `transform` list (§4.4).
type TransformOp struct {
	Kind string // translate | scale | rotate | skewX | skewY | matrix
	Args []float64
}

// Transform is the `transform` attribute grammar: a list of affine
// operations.
type Transform struct {
	Ops []TransformOp
}

func (t *Transform) Parse(raw string) error {
	raw = strings.TrimSpace(raw)
	var ops []TransformOp
	for len(raw) > 0 {
		name, rest, ok := splitFuncName(raw)
		if !ok {
			return fmt.Errorf("expected a transform function, got %q", raw)
		}
		argsStr, rest, err := splitParens(rest)
		if err != nil {
			return err
		}
		args, err := parseNumberList(argsStr)
		if err != nil {
			return err
		}
		if err := validateTransformArity(name, len(args)); err != nil {
			return err
		}
		ops = append(ops, TransformOp{Kind: name, Args: args})
		raw = strings.TrimSpace(rest)
	}
	t.Ops = ops
	return nil
}

func splitFuncName(s string) (name, rest string, ok bool) {
	i := strings.IndexByte(s, '(')
	if i < 0 {
		return "", s, false
	}
	return strings.TrimSpace(s[:i]), s[i:], true
}

func splitParens(s string) (inner, rest string, err error) {
	if len(s) == 0 || s[0] != '(' {
		return "", s, fmt.Errorf("expected '('")
	}
	depth := 0
	for i, r := range s {
		if r == '(' {
			depth++
		} else if r == ')' {
			depth--
			if depth == 0 {
				return s[1:i], s[i+1:], nil
			}
		}
	}
	return "", s, fmt.Errorf("unterminated transform function")
}

func parseNumberList(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q in transform", f)
		}
		out[i] = v
	}
	return out, nil
}

func validateTransformArity(name string, n int) error {
	switch name {
	case "translate":
		if n == 1 || n == 2 {
			return nil
		}
	case "scale":
		if n == 1 || n == 2 {
			return nil
		}
	case "rotate":
		if n == 1 || n == 3 {
			return nil
		}
	case "skewX", "skewY":
		if n == 1 {
			return nil
		}
	case "matrix":
		if n == 6 {
			return nil
		}
	default:
		return fmt.Errorf("unknown transform function %q", name)
	}
	return fmt.Errorf("%s() got %d arguments", name, n)
}

func (t *Transform) WriteAtom(sb *strings.Builder) {
	for i, op := range t.Ops {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(op.Kind)
		sb.WriteByte('(')
		for j, a := range op.Args {
			if j > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(formatNumber(a))
		}
		sb.WriteByte(')')
	}
}

// ToMatrix reduces the op list to one 2x3 affine matrix [a b c d e f],
// used by apply_transforms and convert_transform. Only translate, scale
// and matrix ops are composed; rotate, skewX and skewY contribute the
// identity.
func (t *Transform) ToMatrix() [6]float64 {
	m := [6]float64{1, 0, 0, 1, 0, 0}
	for _, op := range t.Ops {
		m = multiply(m, opMatrix(op))
	}
	return m
}

func opMatrix(op TransformOp) [6]float64 {
	switch op.Kind {
	case "translate":
		tx := op.Args[0]
		ty := 0.0
		if len(op.Args) == 2 {
			ty = op.Args[1]
		}
		return [6]float64{1, 0, 0, 1, tx, ty}
	case "scale":
		sx := op.Args[0]
		sy := sx
		if len(op.Args) == 2 {
			sy = op.Args[1]
		}
		return [6]float64{sx, 0, 0, sy, 0, 0}
	case "matrix":
		var m [6]float64
		copy(m[:], op.Args)
		return m
	default:
		return [6]float64{1, 0, 0, 1, 0, 0}
	}
}

func multiply(a, b [6]float64) [6]float64 {
	return [6]float64{
		a[0]*b[0] + a[2]*b[1],
		a[1]*b[0] + a[3]*b[1],
		a[0]*b[2] + a[2]*b[3],
		a[1]*b[2] + a[3]*b[3],
		a[0]*b[4] + a[2]*b[5] + a[4],
		a[1]*b[4] + a[3]*b[5] + a[5],
	}
}
