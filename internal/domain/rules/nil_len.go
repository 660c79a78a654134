package rules

import (
	"go/ast"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/ast/astutil"
)

// RedundantNilLenCheck drops nil checks made redundant by a following len check.
type RedundantNilLenCheck struct{}

func (*RedundantNilLenCheck) Key() string  { return "redundant-nil-len-check" }
func (*RedundantNilLenCheck) Name() string { return "Redundant nil check before len" }

func (*RedundantNilLenCheck) Description() string {
	return "x != nil && len(x) > 0 becomes len(x) > 0, x == nil || len(x) == 0 becomes len(x) == 0"
}

func (*RedundantNilLenCheck) NodeTypes() []ast.Node {
	return []ast.Node{(*ast.BinaryExpr)(nil)}
}

func (*RedundantNilLenCheck) Run(pass *Pass) {
	astutil.Apply(pass.File, nil, func(c *astutil.Cursor) bool {
		be, ok := c.Node().(*ast.BinaryExpr)
		if !ok || (be.Op != token.LAND && be.Op != token.LOR) {
			return true
		}

		nilCheck, ok := ast.Unparen(be.X).(*ast.BinaryExpr)
		if !ok {
			return true
		}

		lenCheck, ok := ast.Unparen(be.Y).(*ast.BinaryExpr)
		if !ok {
			return true
		}

		var operand ast.Expr

		switch be.Op { //nolint:exhaustive
		case token.LAND:
			operand, ok = comparedWithNil(nilCheck, token.NEQ)
			ok = ok && isNonEmptyCheck(lenCheck, operand)
		case token.LOR:
			operand, ok = comparedWithNil(nilCheck, token.EQL)
			ok = ok && isEmptyCheck(lenCheck, operand)
		}

		if !ok {
			return true
		}

		if pass.Fix(be, "nil check is redundant with len check") {
			c.Replace(be.Y)
		}

		return true
	})
}

func comparedWithNil(be *ast.BinaryExpr, op token.Token) (ast.Expr, bool) {
	if be.Op != op {
		return nil, false
	}

	switch {
	case isNil(be.Y) && !isNil(be.X):
		return be.X, true
	case isNil(be.X) && !isNil(be.Y):
		return be.Y, true
	}

	return nil, false
}

// isNonEmptyCheck matches len(x) > 0, len(x) != 0, 0 < len(x) and 0 != len(x).
func isNonEmptyCheck(be *ast.BinaryExpr, operand ast.Expr) bool {
	switch be.Op { //nolint:exhaustive
	case token.GTR:
		return isLenOf(be.X, operand) && isZero(be.Y)
	case token.LSS:
		return isZero(be.X) && isLenOf(be.Y, operand)
	case token.NEQ:
		return (isLenOf(be.X, operand) && isZero(be.Y)) || (isZero(be.X) && isLenOf(be.Y, operand))
	}

	return false
}

// isEmptyCheck matches len(x) == 0, 0 == len(x) and len(x) <= 0.
func isEmptyCheck(be *ast.BinaryExpr, operand ast.Expr) bool {
	switch be.Op { //nolint:exhaustive
	case token.EQL:
		return (isLenOf(be.X, operand) && isZero(be.Y)) || (isZero(be.X) && isLenOf(be.Y, operand))
	case token.LEQ:
		return isLenOf(be.X, operand) && isZero(be.Y)
	}

	return false
}

func isLenOf(e, operand ast.Expr) bool {
	call, ok := ast.Unparen(e).(*ast.CallExpr)
	if !ok || len(call.Args) != 1 {
		return false
	}

	fn, ok := call.Fun.(*ast.Ident)
	if !ok || fn.Name != "len" || fn.Obj != nil {
		return false
	}

	return types.ExprString(call.Args[0]) == types.ExprString(operand)
}

func isNil(e ast.Expr) bool {
	id, ok := ast.Unparen(e).(*ast.Ident)
	return ok && id.Name == "nil" && id.Obj == nil
}

func isZero(e ast.Expr) bool {
	lit, ok := ast.Unparen(e).(*ast.BasicLit)
	return ok && lit.Kind == token.INT && lit.Value == "0"
}
