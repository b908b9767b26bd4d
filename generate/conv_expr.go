package generate

import (
	"fmt"

	"wrapgen/cdecl"
)

// convExpr converts an enum initializer.  Only integer literals and their
// negations and logical negations are supported.
func (g *Generator) convExpr(expr cdecl.Expr) (string, error) {
	switch v := expr.(type) {
	case *cdecl.IntegerLiteral:
		return v.Text, nil
	case *cdecl.UnaryExpr:
		var prefix string
		switch v.Op {
		case cdecl.OpNegate:
			prefix = "-"
		case cdecl.OpNot:
			prefix = "not "
		default:
			return "", fmt.Errorf("%w: unary `%s`", ErrUnsupportedExpr, v.Op)
		}

		operand, err := g.convExpr(v.Operand)
		if err != nil {
			return "", err
		}

		return prefix + operand, nil
	case nil:
		return "", fmt.Errorf("%w: missing operand", ErrUnsupportedExpr)
	}

	return "", fmt.Errorf("%w: `%s`", ErrUnsupportedExpr, expr.Repr())
}
