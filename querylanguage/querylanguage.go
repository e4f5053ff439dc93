package querylanguage

// And returns the conjunction of the given predicates.
func And(x, y P, z ...P) P {
	return &NaryExpr{Op: OpAnd, Xs: append([]P{x, y}, z...)}
}

// Or returns the disjunction of the given predicates.
func Or(x, y P, z ...P) P {
	return &NaryExpr{Op: OpOr, Xs: append([]P{x, y}, z...)}
}

// Not negates the given predicate.
func Not(x P) P {
	return &UnaryExpr{Op: OpNot, X: x}
}

// EQ returns an expression-level equality predicate.
func EQ(x, y Expr) P { return &BinaryExpr{Op: OpEQ, X: x, Y: y} }

// NEQ returns an expression-level inequality predicate.
func NEQ(x, y Expr) P { return &BinaryExpr{Op: OpNEQ, X: x, Y: y} }

// GT returns an expression-level > predicate.
func GT(x, y Expr) P { return &BinaryExpr{Op: OpGT, X: x, Y: y} }

// GTE returns an expression-level >= predicate.
func GTE(x, y Expr) P { return &BinaryExpr{Op: OpGTE, X: x, Y: y} }

// LT returns an expression-level < predicate.
func LT(x, y Expr) P { return &BinaryExpr{Op: OpLT, X: x, Y: y} }

// LTE returns an expression-level <= predicate.
func LTE(x, y Expr) P { return &BinaryExpr{Op: OpLTE, X: x, Y: y} }

// FieldEQ returns a field == value predicate.
func FieldEQ(name string, v any) P {
	return &BinaryExpr{Op: OpEQ, X: F(name), Y: valueOf(v)}
}

// FieldNEQ returns a field != value predicate.
func FieldNEQ(name string, v any) P {
	return &BinaryExpr{Op: OpNEQ, X: F(name), Y: valueOf(v)}
}

// FieldGT returns a field > value predicate.
func FieldGT(name string, v any) P {
	return &BinaryExpr{Op: OpGT, X: F(name), Y: valueOf(v)}
}

// FieldGTE returns a field >= value predicate.
func FieldGTE(name string, v any) P {
	return &BinaryExpr{Op: OpGTE, X: F(name), Y: valueOf(v)}
}

// FieldLT returns a field < value predicate.
func FieldLT(name string, v any) P {
	return &BinaryExpr{Op: OpLT, X: F(name), Y: valueOf(v)}
}

// FieldLTE returns a field <= value predicate.
func FieldLTE(name string, v any) P {
	return &BinaryExpr{Op: OpLTE, X: F(name), Y: valueOf(v)}
}

// FieldIn returns a field-membership predicate.
func FieldIn(name string, vs ...any) P {
	return &BinaryExpr{Op: OpIn, X: F(name), Y: valueOf(vs)}
}

// FieldNotIn returns a negated field-membership predicate.
func FieldNotIn(name string, vs ...any) P {
	return &BinaryExpr{Op: OpNotIn, X: F(name), Y: valueOf(vs)}
}

// FieldNil returns a field == nil predicate.
func FieldNil(name string) P {
	return &BinaryExpr{Op: OpEQ, X: F(name), Y: valueOf(nil)}
}

// FieldNotNil returns a field != nil predicate.
func FieldNotNil(name string) P {
	return &BinaryExpr{Op: OpNEQ, X: F(name), Y: valueOf(nil)}
}

// FieldContains returns a substring-match predicate.
func FieldContains(name, substr string) P {
	return &CallExpr{Func: FuncContains, Args: []Expr{F(name), valueOf(substr)}}
}

// FieldContainsFold returns a case-insensitive substring-match predicate.
func FieldContainsFold(name, substr string) P {
	return &CallExpr{Func: FuncContainsFold, Args: []Expr{F(name), valueOf(substr)}}
}

// FieldEqualFold returns a case-insensitive equality predicate.
func FieldEqualFold(name, v string) P {
	return &CallExpr{Func: FuncEqualFold, Args: []Expr{F(name), valueOf(v)}}
}

// FieldHasPrefix returns a prefix-match predicate.
func FieldHasPrefix(name, prefix string) P {
	return &CallExpr{Func: FuncHasPrefix, Args: []Expr{F(name), valueOf(prefix)}}
}

// FieldHasSuffix returns a suffix-match predicate.
func FieldHasSuffix(name, suffix string) P {
	return &CallExpr{Func: FuncHasSuffix, Args: []Expr{F(name), valueOf(suffix)}}
}

// HasEdge returns a predicate matching entities with the named edge set.
func HasEdge(name string) P {
	return &CallExpr{Func: FuncHasEdge, Args: []Expr{F(name)}}
}

// HasEdgeWith returns a predicate matching entities whose named edge
// target satisfies all given predicates.
func HasEdgeWith(name string, ps ...P) P {
	args := make([]Expr, 0, len(ps)+1)
	args = append(args, F(name))
	for _, p := range ps {
		args = append(args, p)
	}
	return &CallExpr{Func: FuncHasEdge, Args: args}
}
