package cdecl

// Expr is a constant expression.  Expressions only occur as the explicit
// initializers of enumeration constants.
type Expr interface {
	// Repr returns the C spelling of the expression.
	Repr() string

	isExpr()
}

// UnaryOp is a unary operator.
type UnaryOp int

// Enumeration of unary operators
const (
	OpNegate     UnaryOp = iota // -x
	OpNot                       // !x
	OpComplement                // ~x
	OpPlus                      // +x
)

var unaryOpSpellings = [...]string{
	OpNegate:     "-",
	OpNot:        "!",
	OpComplement: "~",
	OpPlus:       "+",
}

// String returns the C spelling of the operator.
func (op UnaryOp) String() string {
	if int(op) < len(unaryOpSpellings) {
		return unaryOpSpellings[op]
	}

	return "?"
}

// IntegerLiteral is an integer constant as it was written in the source.
type IntegerLiteral struct {
	// Text is the literal's raw source text including any base prefix or
	// suffix.
	Text string
}

func (il *IntegerLiteral) Repr() string {
	return il.Text
}

// UnaryExpr is a unary operator applied to an operand.
type UnaryExpr struct {
	Op      UnaryOp
	Operand Expr
}

func (ue *UnaryExpr) Repr() string {
	return ue.Op.String() + ue.Operand.Repr()
}

// OpaqueExpr is any expression the front end does not model: binary
// operators, casts, calls, identifiers, etc.
type OpaqueExpr struct {
	// Desc is a short description of the expression used in diagnostics.
	Desc string
}

func (oe *OpaqueExpr) Repr() string {
	return oe.Desc
}

func (*IntegerLiteral) isExpr() {}
func (*UnaryExpr) isExpr()      {}
func (*OpaqueExpr) isExpr()     {}
