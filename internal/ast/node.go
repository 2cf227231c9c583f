package ast

// Position tracks location information for error reporting and tooling
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

// Span is embedded by every node and records where it starts and ends.
type Span struct {
	Pos    Position
	EndPos Position
}

func (s Span) NodePos() Position    { return s.Pos }
func (s Span) NodeEndPos() Position { return s.EndPos }

// Node is implemented by every syntax tree element.
type Node interface {
	NodePos() Position
	NodeEndPos() Position
	NodeType() NodeType
	String() string
}

// Ident represents any identifier: sort, action, process, variable names.
// Example: "Nat", "send", "Buffer", "X"
type Ident struct {
	Span
	Value string
}

// VarDecl is a single typed variable as bound by sum, forall, lambda, or a
// process parameter. Declarations such as "x, y: Nat" produce one VarDecl per
// name; the printer groups consecutive declarations of the same sort again.
type VarDecl struct {
	Span
	Name Ident
	Sort SortExpr
}

// Assignment binds a name to a value in "P(x = 1)" and "whr x = 1 end".
type Assignment struct {
	Span
	Name  Ident
	Value DataExpr
}

type NodeType int

const (
	ILLEGAL NodeType = iota
	BAD_EXPR

	// Sorts
	SORT_IDENT
	CONTAINER_SORT
	FUNCTION_SORT
	STRUCT_SORT

	// Data expressions
	DATA_IDENT
	DATA_NUMBER
	DATA_APPLY
	DATA_UNARY
	DATA_BINARY
	DATA_BINDER
	DATA_WHERE
	DATA_LIST
	DATA_SET
	DATA_BAG
	DATA_COMPREHENSION

	// Process expressions
	PROC_INSTANCE
	PROC_ASSIGNMENT
	PROC_CONST
	PROC_BINARY
	PROC_SUM
	PROC_DIST
	PROC_COND
	PROC_AT
	PROC_BLOCK
	PROC_ALLOW
	PROC_RENAME
	PROC_COMM

	// Action formulas
	ACT_CONST
	ACT_MULTI
	ACT_VAL
	ACT_NOT
	ACT_BINARY
	ACT_QUANT
	ACT_AT

	// Regular formulas
	REG_NIL
	REG_ACT
	REG_BINARY
	REG_ITER

	// State formulas
	STATE_CONST
	STATE_VAL
	STATE_NUMBER
	STATE_DELAY
	STATE_VAR
	STATE_NOT
	STATE_MINUS
	STATE_BINARY
	STATE_MODAL
	STATE_QUANT
	STATE_FIXPOINT
	STATE_CONST_MULT

	// Declarations and specifications
	SECTION
	SORT_DECL
	IDS_DECL
	ACTION_DECL
	EQN_DECL
	PROC_DECL
	INIT_DECL
	PROCESS_SPEC
	STATE_FORMULA_SPEC
)

var nodeTypeNames = [...]string{
	ILLEGAL:            "ILLEGAL",
	BAD_EXPR:           "BAD_EXPR",
	SORT_IDENT:         "SORT_IDENT",
	CONTAINER_SORT:     "CONTAINER_SORT",
	FUNCTION_SORT:      "FUNCTION_SORT",
	STRUCT_SORT:        "STRUCT_SORT",
	DATA_IDENT:         "DATA_IDENT",
	DATA_NUMBER:        "DATA_NUMBER",
	DATA_APPLY:         "DATA_APPLY",
	DATA_UNARY:         "DATA_UNARY",
	DATA_BINARY:        "DATA_BINARY",
	DATA_BINDER:        "DATA_BINDER",
	DATA_WHERE:         "DATA_WHERE",
	DATA_LIST:          "DATA_LIST",
	DATA_SET:           "DATA_SET",
	DATA_BAG:           "DATA_BAG",
	DATA_COMPREHENSION: "DATA_COMPREHENSION",
	PROC_INSTANCE:      "PROC_INSTANCE",
	PROC_ASSIGNMENT:    "PROC_ASSIGNMENT",
	PROC_CONST:         "PROC_CONST",
	PROC_BINARY:        "PROC_BINARY",
	PROC_SUM:           "PROC_SUM",
	PROC_DIST:          "PROC_DIST",
	PROC_COND:          "PROC_COND",
	PROC_AT:            "PROC_AT",
	PROC_BLOCK:         "PROC_BLOCK",
	PROC_ALLOW:         "PROC_ALLOW",
	PROC_RENAME:        "PROC_RENAME",
	PROC_COMM:          "PROC_COMM",
	ACT_CONST:          "ACT_CONST",
	ACT_MULTI:          "ACT_MULTI",
	ACT_VAL:            "ACT_VAL",
	ACT_NOT:            "ACT_NOT",
	ACT_BINARY:         "ACT_BINARY",
	ACT_QUANT:          "ACT_QUANT",
	ACT_AT:             "ACT_AT",
	REG_NIL:            "REG_NIL",
	REG_ACT:            "REG_ACT",
	REG_BINARY:         "REG_BINARY",
	REG_ITER:           "REG_ITER",
	STATE_CONST:        "STATE_CONST",
	STATE_VAL:          "STATE_VAL",
	STATE_NUMBER:       "STATE_NUMBER",
	STATE_DELAY:        "STATE_DELAY",
	STATE_VAR:          "STATE_VAR",
	STATE_NOT:          "STATE_NOT",
	STATE_MINUS:        "STATE_MINUS",
	STATE_BINARY:       "STATE_BINARY",
	STATE_MODAL:        "STATE_MODAL",
	STATE_QUANT:        "STATE_QUANT",
	STATE_FIXPOINT:     "STATE_FIXPOINT",
	STATE_CONST_MULT:   "STATE_CONST_MULT",
	SECTION:            "SECTION",
	SORT_DECL:          "SORT_DECL",
	IDS_DECL:           "IDS_DECL",
	ACTION_DECL:        "ACTION_DECL",
	EQN_DECL:           "EQN_DECL",
	PROC_DECL:          "PROC_DECL",
	INIT_DECL:          "INIT_DECL",
	PROCESS_SPEC:       "PROCESS_SPEC",
	STATE_FORMULA_SPEC: "STATE_FORMULA_SPEC",
}

func (t NodeType) String() string {
	if t >= 0 && int(t) < len(nodeTypeNames) && nodeTypeNames[t] != "" {
		return nodeTypeNames[t]
	}
	return "NodeType(?)"
}

// BadExpr stands in for an expression the parser could not read. It only
// appears in trees that come with parse errors.
type BadExpr struct {
	Span
	Message string
}

func (*BadExpr) NodeType() NodeType { return BAD_EXPR }
func (*BadExpr) sortNode()          {}
func (*BadExpr) dataNode()          {}
func (*BadExpr) procNode()          {}
func (*BadExpr) actNode()           {}
func (*BadExpr) regNode()           {}
func (*BadExpr) stateNode()         {}
