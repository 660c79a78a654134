package rules

import (
	"go/ast"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/ast/astutil"
)

// SelfAssignment removes statements assigning a variable to itself.
type SelfAssignment struct{}

func (*SelfAssignment) Key() string  { return "self-assignment" }
func (*SelfAssignment) Name() string { return "Self assignment" }

func (*SelfAssignment) Description() string {
	return "statements of the form x = x are removed"
}

func (*SelfAssignment) NodeTypes() []ast.Node {
	return []ast.Node{(*ast.AssignStmt)(nil)}
}

func (*SelfAssignment) Run(pass *Pass) {
	astutil.Apply(pass.File, nil, func(c *astutil.Cursor) bool {
		as, ok := c.Node().(*ast.AssignStmt)
		if !ok || as.Tok != token.ASSIGN || len(as.Lhs) != len(as.Rhs) {
			return true
		}

		for i := range as.Lhs {
			if !isPlainOperand(as.Lhs[i]) || types.ExprString(as.Lhs[i]) != types.ExprString(as.Rhs[i]) {
				return true
			}
		}

		// only statements inside a list can be dropped
		if c.Index() < 0 {
			return true
		}

		if pass.Fix(as, types.ExprString(as.Lhs[0])+" is assigned to itself") {
			c.Delete()
		}

		return true
	})
}

// isPlainOperand accepts expressions without calls or receives.
func isPlainOperand(e ast.Expr) bool {
	switch x := e.(type) {
	case *ast.Ident:
		return x.Name != "_"
	case *ast.SelectorExpr:
		return isPlainOperand(x.X)
	case *ast.IndexExpr:
		return isPlainOperand(x.X) && isIndexOperand(x.Index)
	case *ast.StarExpr:
		return isPlainOperand(x.X)
	case *ast.ParenExpr:
		return isPlainOperand(x.X)
	}

	return false
}

func isIndexOperand(e ast.Expr) bool {
	if _, ok := e.(*ast.BasicLit); ok {
		return true
	}

	return isPlainOperand(e)
}
