// Package querylanguage provides a predicate tree over entity fields and
// edges. The expression variants form a closed set; traversal code
// switches exhaustively over them, and field references resolve through
// the mapping model (see Resolve).
package querylanguage

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Op is an expression operator.
type Op uint

// Operators.
const (
	OpAnd Op = iota
	OpOr
	OpNot
	OpEQ
	OpNEQ
	OpGT
	OpGTE
	OpLT
	OpLTE
	OpIn
	OpNotIn
)

var ops = [...]string{
	OpAnd:   "&&",
	OpOr:    "||",
	OpNot:   "!",
	OpEQ:    "==",
	OpNEQ:   "!=",
	OpGT:    ">",
	OpGTE:   ">=",
	OpLT:    "<",
	OpLTE:   "<=",
	OpIn:    "in",
	OpNotIn: "not in",
}

// String returns the operator's textual form.
func (o Op) String() string {
	if int(o) < len(ops) {
		return ops[o]
	}
	return fmt.Sprintf("Op(%d)", o)
}

// Func is a function name in a call expression.
type Func string

// Builtin functions.
const (
	FuncHasEdge      Func = "has_edge"
	FuncContains     Func = "contains"
	FuncContainsFold Func = "contains_fold"
	FuncEqualFold    Func = "equal_fold"
	FuncHasPrefix    Func = "has_prefix"
	FuncHasSuffix    Func = "has_suffix"
)

// Expr is a node in the expression tree. The set of implementations is
// closed: Field, Value, UnaryExpr, BinaryExpr, NaryExpr and CallExpr.
type Expr interface {
	fmt.Stringer
	expr()
}

// P is a predicate expression.
type P interface {
	Expr
	// Negate returns the negation of the predicate.
	Negate() P
}

// Field is a reference to an entity field. Dotted paths such as
// "address.city" are allowed and resolve through the mapping model.
type Field struct {
	Name string
}

// F returns a field reference with the given name.
func F(name string) *Field {
	return &Field{Name: name}
}

func (f *Field) expr() {}

// String returns the field name.
func (f *Field) String() string { return f.Name }

// Value is a literal.
type Value struct {
	V any
}

func valueOf(v any) *Value {
	return &Value{V: v}
}

func (v *Value) expr() {}

// String returns the JSON form of the literal; nil renders as "nil".
func (v *Value) String() string {
	if v.V == nil {
		return "nil"
	}
	buf, err := json.Marshal(v.V)
	if err != nil {
		return fmt.Sprint(v.V)
	}
	return string(buf)
}

// UnaryExpr is a unary expression.
type UnaryExpr struct {
	Op Op
	X  Expr
}

func (e *UnaryExpr) expr() {}

// String returns the textual form of the expression.
func (e *UnaryExpr) String() string {
	return fmt.Sprintf("%s(%s)", e.Op, e.X)
}

// Negate implements P.
func (e *UnaryExpr) Negate() P {
	return &UnaryExpr{Op: OpNot, X: e}
}

// BinaryExpr is a binary expression.
type BinaryExpr struct {
	Op   Op
	X, Y Expr
}

func (e *BinaryExpr) expr() {}

// String returns the textual form of the expression.
func (e *BinaryExpr) String() string {
	return fmt.Sprintf("%s %s %s", e.X, e.Op, e.Y)
}

// Negate implements P.
func (e *BinaryExpr) Negate() P {
	return &UnaryExpr{Op: OpNot, X: e}
}

// NaryExpr is an n-ary conjunction or disjunction.
type NaryExpr struct {
	Op Op
	Xs []P
}

func (e *NaryExpr) expr() {}

// String returns the textual form of the expression. Two operands render
// without surrounding parentheses; more are parenthesized as a group.
func (e *NaryExpr) String() string {
	var b strings.Builder
	if len(e.Xs) != 2 {
		b.WriteByte('(')
	}
	for i, x := range e.Xs {
		if i > 0 {
			b.WriteByte(' ')
			b.WriteString(e.Op.String())
			b.WriteByte(' ')
		}
		b.WriteString(x.String())
	}
	if len(e.Xs) != 2 {
		b.WriteByte(')')
	}
	return b.String()
}

// Negate implements P.
func (e *NaryExpr) Negate() P {
	return &UnaryExpr{Op: OpNot, X: e}
}

// CallExpr is a function call expression.
type CallExpr struct {
	Func Func
	Args []Expr
}

func (e *CallExpr) expr() {}

// String returns the textual form of the expression.
func (e *CallExpr) String() string {
	var b strings.Builder
	b.WriteString(string(e.Func))
	b.WriteByte('(')
	for i, a := range e.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.String())
	}
	b.WriteByte(')')
	return b.String()
}

// Negate implements P.
func (e *CallExpr) Negate() P {
	return &UnaryExpr{Op: OpNot, X: e}
}
