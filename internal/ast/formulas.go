package ast

// ActFrm is an action formula.
type ActFrm interface {
	Node
	actNode()
}

// RegFrm is a regular formula over action formulas.
type RegFrm interface {
	Node
	regNode()
}

// StateFrm is a (possibly quantitative) modal mu-calculus formula.
type StateFrm interface {
	Node
	stateNode()
}

// ActConst is true or false as an action formula.
type ActConst struct {
	Span
	Value bool
}

// ActMulti is a multi-action; no actions means tau.
// Example: "send(1) | recv(1)"
type ActMulti struct {
	Span
	Actions []*ActionInstance
}

type ActionInstance struct {
	Span
	Name Ident
	Args []DataExpr
}

// ActVal lifts a boolean data expression.
// Example: "val(n > 0)"
type ActVal struct {
	Span
	Expr DataExpr
}

type ActNot struct {
	Span
	Body ActFrm
}

// ActBinary is =>, || or &&.
type ActBinary struct {
	Span
	Op    string
	Left  ActFrm
	Right ActFrm
}

// ActQuant is forall or exists over action formulas.
// Example: "exists d: D. send(d)"
type ActQuant struct {
	Span
	Kind string
	Vars []*VarDecl
	Body ActFrm
}

type ActAt struct {
	Span
	Body ActFrm
	Time DataExpr
}

// RegNil is the empty regular formula.
type RegNil struct {
	Span
}

// RegAct is a single step matching an action formula.
type RegAct struct {
	Span
	Act ActFrm
}

// RegBinary is "." (sequence) or "+" (alternative).
type RegBinary struct {
	Span
	Op    string
	Left  RegFrm
	Right RegFrm
}

// RegIter is "*" (any number of steps) or "+" (at least one step).
// Example: "true*"
type RegIter struct {
	Span
	Op   string
	Body RegFrm
}

type StateConst struct {
	Span
	Value bool
}

// StateVal lifts a data expression.
type StateVal struct {
	Span
	Expr DataExpr
}

// StateNumber is a numeric constant of the quantitative dialect.
type StateNumber struct {
	Span
	Value string
}

// StateDelay is delay or yaled with an optional time bound.
// Example: "delay @ 5"
type StateDelay struct {
	Span
	Kind string
	Time DataExpr
}

// StateVar is an occurrence of a fixpoint variable.
// Example: "X(n + 1)"
type StateVar struct {
	Span
	Name Ident
	Args []DataExpr
}

type StateNot struct {
	Span
	Body StateFrm
}

// StateMinus is the quantitative negation "-f".
type StateMinus struct {
	Span
	Body StateFrm
}

// StateBinary is =>, ||, && or the quantitative +.
type StateBinary struct {
	Span
	Op    string
	Left  StateFrm
	Right StateFrm
}

// StateModal is box "[R]f" when Box is set, diamond "<R>f" otherwise.
type StateModal struct {
	Span
	Box  bool
	Reg  RegFrm
	Body StateFrm
}

// StateQuant is forall and exists, plus inf, sup and sum in the
// quantitative dialect.
type StateQuant struct {
	Span
	Kind string
	Vars []*VarDecl
	Body StateFrm
}

// StateFixpoint is a least (mu) or greatest (nu) fixpoint.
// Example: "nu X(n: Nat = 0). [a]X(n + 1)"
type StateFixpoint struct {
	Span
	Kind   string
	Name   Ident
	Params []*FixpointParam
	Body   StateFrm
}

type FixpointParam struct {
	Span
	Var  *VarDecl
	Init DataExpr
}

// StateConstMult scales a quantitative formula.
// Example: "2 * <a>true"
type StateConstMult struct {
	Span
	Factor DataExpr
	Body   StateFrm
}

func (*ActConst) NodeType() NodeType  { return ACT_CONST }
func (*ActMulti) NodeType() NodeType  { return ACT_MULTI }
func (*ActVal) NodeType() NodeType    { return ACT_VAL }
func (*ActNot) NodeType() NodeType    { return ACT_NOT }
func (*ActBinary) NodeType() NodeType { return ACT_BINARY }
func (*ActQuant) NodeType() NodeType  { return ACT_QUANT }
func (*ActAt) NodeType() NodeType     { return ACT_AT }

func (*RegNil) NodeType() NodeType    { return REG_NIL }
func (*RegAct) NodeType() NodeType    { return REG_ACT }
func (*RegBinary) NodeType() NodeType { return REG_BINARY }
func (*RegIter) NodeType() NodeType   { return REG_ITER }

func (*StateConst) NodeType() NodeType     { return STATE_CONST }
func (*StateVal) NodeType() NodeType       { return STATE_VAL }
func (*StateNumber) NodeType() NodeType    { return STATE_NUMBER }
func (*StateDelay) NodeType() NodeType     { return STATE_DELAY }
func (*StateVar) NodeType() NodeType       { return STATE_VAR }
func (*StateNot) NodeType() NodeType       { return STATE_NOT }
func (*StateMinus) NodeType() NodeType     { return STATE_MINUS }
func (*StateBinary) NodeType() NodeType    { return STATE_BINARY }
func (*StateModal) NodeType() NodeType     { return STATE_MODAL }
func (*StateQuant) NodeType() NodeType     { return STATE_QUANT }
func (*StateFixpoint) NodeType() NodeType  { return STATE_FIXPOINT }
func (*StateConstMult) NodeType() NodeType { return STATE_CONST_MULT }

func (*ActConst) actNode()  {}
func (*ActMulti) actNode()  {}
func (*ActVal) actNode()    {}
func (*ActNot) actNode()    {}
func (*ActBinary) actNode() {}
func (*ActQuant) actNode()  {}
func (*ActAt) actNode()     {}

func (*RegNil) regNode()    {}
func (*RegAct) regNode()    {}
func (*RegBinary) regNode() {}
func (*RegIter) regNode()   {}

func (*StateConst) stateNode()     {}
func (*StateVal) stateNode()       {}
func (*StateNumber) stateNode()    {}
func (*StateDelay) stateNode()     {}
func (*StateVar) stateNode()       {}
func (*StateNot) stateNode()       {}
func (*StateMinus) stateNode()     {}
func (*StateBinary) stateNode()    {}
func (*StateModal) stateNode()     {}
func (*StateQuant) stateNode()     {}
func (*StateFixpoint) stateNode()  {}
func (*StateConstMult) stateNode() {}
