package sandbox

import (
	"fmt"
	"strings"

	"go.starlark.net/syntax"
)

// allowedCalls is the closed allowlist of pure builtins a script may
// call directly. Anything else reachable as a bare
// CallExpr(Ident) is rejected before execution.
var allowedCalls = map[string]bool{
	"range":     true,
	"len":       true,
	"enumerate": true,
	"zip":       true,
	"abs":       true,
	"min":       true,
	"max":       true,
	"int":       true,
	"float":     true,
	"str":       true,
}

// allowedMathAttrs is the single standard math module's surface.
var allowedMathAttrs = map[string]bool{
	"sin": true, "cos": true, "tan": true, "sqrt": true,
	"floor": true, "ceil": true, "pi": true, "e": true,
}

// checkStatic walks the parsed file and returns a non-empty reason the
// first time it finds a denied construct. An empty return means the
// script only uses the allowed script surface.
func checkStatic(file *syntax.File) string {
	for _, stmt := range file.Stmts {
		if reason := checkStmt(stmt); reason != "" {
			return reason
		}
	}
	return ""
}

func checkStmt(stmt syntax.Stmt) string {
	switch s := stmt.(type) {
	case *syntax.DefStmt:
		return "function definitions are not allowed"
	case *syntax.WhileStmt:
		return "while loops are not allowed"
	case *syntax.LoadStmt:
		return "imports are not allowed"
	case *syntax.IfStmt:
		if r := checkExpr(s.Cond); r != "" {
			return r
		}
		if r := checkStmts(s.True); r != "" {
			return r
		}
		return checkStmts(s.False)
	case *syntax.ForStmt:
		if r := checkExpr(s.X); r != "" {
			return r
		}
		if r := checkExpr(s.Vars); r != "" {
			return r
		}
		return checkStmts(s.Body)
	case *syntax.AssignStmt:
		if r := checkExpr(s.LHS); r != "" {
			return r
		}
		return checkExpr(s.RHS)
	case *syntax.ExprStmt:
		return checkExpr(s.X)
	case *syntax.ReturnStmt:
		if s.Result != nil {
			return checkExpr(s.Result)
		}
		return ""
	case *syntax.BranchStmt:
		return ""
	default:
		return ""
	}
}

func checkStmts(stmts []syntax.Stmt) string {
	for _, s := range stmts {
		if r := checkStmt(s); r != "" {
			return r
		}
	}
	return ""
}

func checkExpr(expr syntax.Expr) string {
	if expr == nil {
		return ""
	}

	switch e := expr.(type) {
	case *syntax.LambdaExpr:
		return "lambda definitions are not allowed"

	case *syntax.DotExpr:
		if strings.HasPrefix(e.Name.Name, "_") {
			return fmt.Sprintf("attribute access to %q is not allowed", e.Name.Name)
		}
		if ident, ok := e.X.(*syntax.Ident); ok && ident.Name == "math" {
			if !allowedMathAttrs[e.Name.Name] {
				return fmt.Sprintf("math.%s is not part of the allowed math module", e.Name.Name)
			}
		}
		return checkExpr(e.X)

	case *syntax.CallExpr:
		if ident, ok := e.Fn.(*syntax.Ident); ok {
			if !allowedCalls[ident.Name] {
				return fmt.Sprintf("call to %q is not allowed", ident.Name)
			}
		}
		// Method calls (x.append(...), math.sqrt(...), string formatting,
		// ...) are checked via the DotExpr branch for the callee itself.
		if r := checkExpr(e.Fn); r != "" {
			return r
		}
		for _, a := range e.Args {
			if r := checkExpr(a); r != "" {
				return r
			}
		}
		return ""

	case *syntax.BinaryExpr:
		if r := checkExpr(e.X); r != "" {
			return r
		}
		return checkExpr(e.Y)

	case *syntax.UnaryExpr:
		return checkExpr(e.X)

	case *syntax.ParenExpr:
		return checkExpr(e.X)

	case *syntax.IndexExpr:
		if r := checkExpr(e.X); r != "" {
			return r
		}
		return checkExpr(e.Y)

	case *syntax.SliceExpr:
		if r := checkExpr(e.X); r != "" {
			return r
		}
		if r := checkExpr(e.Lo); r != "" {
			return r
		}
		if r := checkExpr(e.Hi); r != "" {
			return r
		}
		return checkExpr(e.Step)

	case *syntax.CondExpr:
		if r := checkExpr(e.Cond); r != "" {
			return r
		}
		if r := checkExpr(e.True); r != "" {
			return r
		}
		return checkExpr(e.False)

	case *syntax.ListExpr:
		for _, el := range e.List {
			if r := checkExpr(el); r != "" {
				return r
			}
		}
		return ""

	case *syntax.TupleExpr:
		for _, el := range e.List {
			if r := checkExpr(el); r != "" {
				return r
			}
		}
		return ""

	case *syntax.DictExpr:
		for _, entry := range e.List {
			if de, ok := entry.(*syntax.DictEntry); ok {
				if r := checkExpr(de.Key); r != "" {
					return r
				}
				if r := checkExpr(de.Value); r != "" {
					return r
				}
			}
		}
		return ""

	case *syntax.Comprehension:
		if r := checkExpr(e.Body); r != "" {
			return r
		}
		for _, c := range e.Clauses {
			switch cl := c.(type) {
			case *syntax.ForClause:
				if r := checkExpr(cl.Vars); r != "" {
					return r
				}
				if r := checkExpr(cl.X); r != "" {
					return r
				}
			case *syntax.IfClause:
				if r := checkExpr(cl.Cond); r != "" {
					return r
				}
			}
		}
		return ""

	case *syntax.Ident, *syntax.Literal:
		return ""

	default:
		return ""
	}
}
