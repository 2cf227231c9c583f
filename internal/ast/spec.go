package ast

// Decl is one declaration inside a section.
type Decl interface {
	Node
	declNode()
}

// Section groups declarations under a section keyword.
// Example: "act  send, recv: Nat;"
type Section struct {
	Span
	Keyword string
	Decls   []Decl
}

// SortDecl declares sort names, or defines one sort as an alias.
// Example: "D;", "L = List(Nat);"
type SortDecl struct {
	Span
	Names []Ident
	Def   SortExpr
}

// IdsDecl declares names of one sort in the cons, map, var and glob sections.
// Example: "zero, one: Nat;"
type IdsDecl struct {
	Span
	Names []Ident
	Sort  SortExpr
}

// ActionDecl declares action labels with an optional parameter product.
// Example: "send, recv: Nat # Bool;"
type ActionDecl struct {
	Span
	Names []Ident
	Sorts []SortExpr
}

// EqnDecl is a (conditional) rewrite equation.
// Example: "n > 0 -> f(n) = n - 1;"
type EqnDecl struct {
	Span
	Condition DataExpr
	Lhs       DataExpr
	Rhs       DataExpr
}

// ProcDecl defines a process equation.
// Example: "P(n: Nat) = a . P(n + 1);"
type ProcDecl struct {
	Span
	Name   Ident
	Params []*VarDecl
	Body   ProcExpr
}

// InitDecl is the initial process, and the single formula of a "form" section.
type InitDecl struct {
	Span
	Proc    ProcExpr
	Formula StateFrm
}

func (*Section) NodeType() NodeType    { return SECTION }
func (*SortDecl) NodeType() NodeType   { return SORT_DECL }
func (*IdsDecl) NodeType() NodeType    { return IDS_DECL }
func (*ActionDecl) NodeType() NodeType { return ACTION_DECL }
func (*EqnDecl) NodeType() NodeType    { return EQN_DECL }
func (*ProcDecl) NodeType() NodeType   { return PROC_DECL }
func (*InitDecl) NodeType() NodeType   { return INIT_DECL }

func (*SortDecl) declNode()   {}
func (*IdsDecl) declNode()    {}
func (*ActionDecl) declNode() {}
func (*EqnDecl) declNode()    {}
func (*ProcDecl) declNode()   {}
func (*InitDecl) declNode()   {}

// ProcessSpecification is a parsed mCRL2 specification. A specification
// written as a lone process expression has no sections and Bare set.
type ProcessSpecification struct {
	Span
	Sections []*Section
	Bare     ProcExpr
}

// StateFormulaSpecification is a formula with the data and action
// declarations it depends on. Bare is set when the text held only a formula.
type StateFormulaSpecification struct {
	Span
	Sections []*Section
	Formula  StateFrm
	Bare     bool
}

func (*ProcessSpecification) NodeType() NodeType      { return PROCESS_SPEC }
func (*StateFormulaSpecification) NodeType() NodeType { return STATE_FORMULA_SPEC }

// Init returns the initial process, either the bare expression or the body
// of the init section. It is nil when neither exists.
func (s *ProcessSpecification) Init() ProcExpr {
	if s.Bare != nil {
		return s.Bare
	}
	for _, sec := range s.Sections {
		if sec.Keyword != "init" {
			continue
		}
		for _, d := range sec.Decls {
			if init, ok := d.(*InitDecl); ok {
				return init.Proc
			}
		}
	}
	return nil
}

// Actions returns every action declaration of the specification.
func (s *ProcessSpecification) Actions() []*ActionDecl {
	return actionDecls(s.Sections)
}

// Processes returns every process equation of the specification.
func (s *ProcessSpecification) Processes() []*ProcDecl {
	var procs []*ProcDecl
	for _, sec := range s.Sections {
		for _, d := range sec.Decls {
			if p, ok := d.(*ProcDecl); ok {
				procs = append(procs, p)
			}
		}
	}
	return procs
}

func (s *StateFormulaSpecification) Actions() []*ActionDecl {
	return actionDecls(s.Sections)
}

// SectionDecls returns the declarations of all sections with the keyword.
func SectionDecls(sections []*Section, keyword string) []Decl {
	var decls []Decl
	for _, sec := range sections {
		if sec.Keyword == keyword {
			decls = append(decls, sec.Decls...)
		}
	}
	return decls
}

func actionDecls(sections []*Section) []*ActionDecl {
	var acts []*ActionDecl
	for _, d := range SectionDecls(sections, "act") {
		if a, ok := d.(*ActionDecl); ok {
			acts = append(acts, a)
		}
	}
	return acts
}
