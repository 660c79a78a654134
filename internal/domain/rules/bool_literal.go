package rules

import (
	"go/ast"
	"go/token"

	"golang.org/x/tools/go/ast/astutil"
)

// BoolLiteralCompare rewrites comparisons against true or false.
type BoolLiteralCompare struct{}

func (*BoolLiteralCompare) Key() string  { return "bool-literal-compare" }
func (*BoolLiteralCompare) Name() string { return "Boolean literal comparison" }

func (*BoolLiteralCompare) Description() string {
	return "x == true becomes x and x == false becomes !x (likewise for !=)"
}

func (*BoolLiteralCompare) NodeTypes() []ast.Node {
	return []ast.Node{(*ast.BinaryExpr)(nil)}
}

func (*BoolLiteralCompare) Run(pass *Pass) {
	astutil.Apply(pass.File, nil, func(c *astutil.Cursor) bool {
		be, ok := c.Node().(*ast.BinaryExpr)
		if !ok || (be.Op != token.EQL && be.Op != token.NEQ) {
			return true
		}

		operand, literal, ok := splitBoolLiteral(be)
		if !ok {
			return true
		}

		if !pass.Fix(be, "redundant comparison with boolean literal") {
			return true
		}

		if (be.Op == token.EQL) != literal {
			c.Replace(negate(operand, be.Pos()))
		} else {
			c.Replace(operand)
		}

		return true
	})
}

// splitBoolLiteral returns the non-literal operand and the literal's value.
func splitBoolLiteral(be *ast.BinaryExpr) (ast.Expr, bool, bool) {
	xv, xLit := boolLiteral(be.X)
	yv, yLit := boolLiteral(be.Y)

	switch {
	case xLit && !yLit:
		return be.Y, xv, true
	case yLit && !xLit:
		return be.X, yv, true
	default:
		return nil, false, false
	}
}

func boolLiteral(e ast.Expr) (value, ok bool) {
	id, isIdent := e.(*ast.Ident)
	if !isIdent || id.Obj != nil {
		return false, false
	}

	switch id.Name {
	case "true":
		return true, true
	case "false":
		return false, true
	}

	return false, false
}

func negate(e ast.Expr, pos token.Pos) ast.Expr {
	switch x := e.(type) {
	case *ast.UnaryExpr:
		if x.Op == token.NOT {
			return x.X
		}
	case *ast.BinaryExpr:
		return &ast.UnaryExpr{OpPos: pos, Op: token.NOT, X: &ast.ParenExpr{X: x}}
	}

	return &ast.UnaryExpr{OpPos: pos, Op: token.NOT, X: e}
}
