package ast

// ProcExpr is any process expression.
type ProcExpr interface {
	Node
	procNode()
}

// ProcInstance is an action or a process reference; the parser cannot tell
// them apart, the type checker can.
// Example: "send(d)", "Buffer"
type ProcInstance struct {
	Span
	Name Ident
	Args []DataExpr
}

// ProcAssignment instantiates a process by naming the changed parameters.
// Example: "P(n = n + 1)", "P()"
type ProcAssignment struct {
	Span
	Name        Ident
	Assignments []*Assignment
}

// ProcConst is delta or tau.
type ProcConst struct {
	Span
	Name string
}

// ProcBinary covers choice, merges, synchronisation, sequence and bounded init.
// Example: "a . b", "p + q", "p || q"
type ProcBinary struct {
	Span
	Op    string
	Left  ProcExpr
	Right ProcExpr
}

// ProcSum is the sum operator.
// Example: "sum d: D. read(d)"
type ProcSum struct {
	Span
	Vars []*VarDecl
	Body ProcExpr
}

// ProcDist is the distribution operator.
// Example: "dist b: Bool[1 / 2]. flip(b)"
type ProcDist struct {
	Span
	Vars []*VarDecl
	Dist DataExpr
	Body ProcExpr
}

// ProcCond is if-then and if-then-else.
// Example: "n > 0 -> dec . P <> delta"
type ProcCond struct {
	Span
	Cond DataExpr
	Then ProcExpr
	Else ProcExpr
}

// ProcAt timestamps a process.
// Example: "a @ 3"
type ProcAt struct {
	Span
	Body ProcExpr
	Time DataExpr
}

// ProcBlock is block or hide over a set of action names.
// Example: "hide({tick}, P)"
type ProcBlock struct {
	Span
	Op    string
	Names []Ident
	Body  ProcExpr
}

// ProcAllow keeps only the listed multi-actions.
// Example: "allow({a | b, c}, P)"
type ProcAllow struct {
	Span
	MultiActions [][]Ident
	Body         ProcExpr
}

// ProcRename renames actions.
// Example: "rename({a -> b}, P)"
type ProcRename struct {
	Span
	Rules []*RenameRule
	Body  ProcExpr
}

type RenameRule struct {
	Span
	From Ident
	To   Ident
}

// ProcComm replaces synchronising actions by a single action.
// Example: "comm({s | r -> c}, P)"
type ProcComm struct {
	Span
	Rules []*CommRule
	Body  ProcExpr
}

type CommRule struct {
	Span
	Lhs []Ident
	Rhs Ident
}

func (*ProcInstance) NodeType() NodeType   { return PROC_INSTANCE }
func (*ProcAssignment) NodeType() NodeType { return PROC_ASSIGNMENT }
func (*ProcConst) NodeType() NodeType      { return PROC_CONST }
func (*ProcBinary) NodeType() NodeType     { return PROC_BINARY }
func (*ProcSum) NodeType() NodeType        { return PROC_SUM }
func (*ProcDist) NodeType() NodeType       { return PROC_DIST }
func (*ProcCond) NodeType() NodeType       { return PROC_COND }
func (*ProcAt) NodeType() NodeType         { return PROC_AT }
func (*ProcBlock) NodeType() NodeType      { return PROC_BLOCK }
func (*ProcAllow) NodeType() NodeType      { return PROC_ALLOW }
func (*ProcRename) NodeType() NodeType     { return PROC_RENAME }
func (*ProcComm) NodeType() NodeType       { return PROC_COMM }

func (*ProcInstance) procNode()   {}
func (*ProcAssignment) procNode() {}
func (*ProcConst) procNode()      {}
func (*ProcBinary) procNode()     {}
func (*ProcSum) procNode()        {}
func (*ProcDist) procNode()       {}
func (*ProcCond) procNode()       {}
func (*ProcAt) procNode()         {}
func (*ProcBlock) procNode()      {}
func (*ProcAllow) procNode()      {}
func (*ProcRename) procNode()     {}
func (*ProcComm) procNode()       {}
