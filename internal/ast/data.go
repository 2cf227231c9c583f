package ast

// DataExpr is any data expression.
type DataExpr interface {
	Node
	dataNode()
}

// DataIdent is a variable, constant or function symbol, including true and false.
// Example: "x", "true", "head"
type DataIdent struct {
	Span
	Name string
}

// DataNumber is a natural number literal, kept as written.
// Example: "42"
type DataNumber struct {
	Span
	Value string
}

// DataApply applies a function to arguments.
// Example: "f(x, 1)"
type DataApply struct {
	Span
	Head DataExpr
	Args []DataExpr
}

// DataUnary is logical negation, arithmetic negation or size.
// Example: "!b", "-x", "#l"
type DataUnary struct {
	Span
	Op      string
	Operand DataExpr
}

// DataBinary is an infix operator application.
// Example: "x + 1", "e |> l", "n div 2"
type DataBinary struct {
	Span
	Op    string
	Left  DataExpr
	Right DataExpr
}

// DataBinder is forall, exists or lambda.
// Example: "forall n: Nat. n >= 0"
type DataBinder struct {
	Span
	Kind string
	Vars []*VarDecl
	Body DataExpr
}

// DataWhere is a where clause.
// Example: "x + y whr x = 1, y = 2 end"
type DataWhere struct {
	Span
	Body        DataExpr
	Assignments []*Assignment
}

// DataList is a list enumeration.
// Example: "[1, 2, 3]"
type DataList struct {
	Span
	Elems []DataExpr
}

// DataSet is a set enumeration.
// Example: "{1, 2}"
type DataSet struct {
	Span
	Elems []DataExpr
}

// DataBag is a bag enumeration; "{:}" is the empty bag.
// Example: "{a: 2, b: 1}"
type DataBag struct {
	Span
	Elems []*BagElem
}

type BagElem struct {
	Span
	Elem  DataExpr
	Count DataExpr
}

// DataComprehension is a set or bag comprehension.
// Example: "{ n: Nat | n < 3 }"
type DataComprehension struct {
	Span
	Var  *VarDecl
	Body DataExpr
}

func (*DataIdent) NodeType() NodeType         { return DATA_IDENT }
func (*DataNumber) NodeType() NodeType        { return DATA_NUMBER }
func (*DataApply) NodeType() NodeType         { return DATA_APPLY }
func (*DataUnary) NodeType() NodeType         { return DATA_UNARY }
func (*DataBinary) NodeType() NodeType        { return DATA_BINARY }
func (*DataBinder) NodeType() NodeType        { return DATA_BINDER }
func (*DataWhere) NodeType() NodeType         { return DATA_WHERE }
func (*DataList) NodeType() NodeType          { return DATA_LIST }
func (*DataSet) NodeType() NodeType           { return DATA_SET }
func (*DataBag) NodeType() NodeType           { return DATA_BAG }
func (*DataComprehension) NodeType() NodeType { return DATA_COMPREHENSION }

func (*DataIdent) dataNode()         {}
func (*DataNumber) dataNode()        {}
func (*DataApply) dataNode()         {}
func (*DataUnary) dataNode()         {}
func (*DataBinary) dataNode()        {}
func (*DataBinder) dataNode()        {}
func (*DataWhere) dataNode()         {}
func (*DataList) dataNode()          {}
func (*DataSet) dataNode()           {}
func (*DataBag) dataNode()           {}
func (*DataComprehension) dataNode() {}
