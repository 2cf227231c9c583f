package ast

import (
	"fmt"
	"strings"
)

// Operator describes an infix operator: its binding strength and whether it
// groups to the right.
type Operator struct {
	Prec  int
	Right bool
}

// Binding strengths of data expressions. Binary operators sit between
// DataPrecBinder and DataPrecUnary, see DataOperators.
const (
	DataPrecWhere  = 0
	DataPrecBinder = 1
	DataPrecUnary  = 13
	DataPrecApply  = 14
	DataPrecAtom   = 15
)

var DataOperators = map[string]Operator{
	"=>":  {2, true},
	"||":  {3, true},
	"&&":  {4, true},
	"==":  {5, true},
	"!=":  {5, true},
	"<":   {6, false},
	"<=":  {6, false},
	">":   {6, false},
	">=":  {6, false},
	"in":  {6, false},
	"|>":  {7, true},
	"<|":  {8, false},
	"++":  {9, false},
	"+":   {10, false},
	"-":   {10, false},
	"*":   {11, false},
	"/":   {11, false},
	"div": {11, false},
	"mod": {11, false},
	".":   {12, false},
}

const (
	ProcPrecSum  = 2
	ProcPrecCond = 5
	ProcPrecAt   = 8
	ProcPrecAtom = 10
)

var ProcOperators = map[string]Operator{
	"+":   {1, false},
	"||":  {3, true},
	"||_": {4, true},
	"<<":  {6, false},
	".":   {7, true},
	"|":   {9, false},
}

const (
	ActPrecQuant = 1
	ActPrecAt    = 5
	ActPrecNot   = 6
	ActPrecAtom  = 7
)

var ActOperators = map[string]Operator{
	"=>": {2, true},
	"||": {3, true},
	"&&": {4, true},
}

const (
	RegPrecIter = 3
	RegPrecAtom = 4
)

var RegOperators = map[string]Operator{
	"+": {1, false},
	".": {2, true},
}

const (
	StatePrecBinder    = 1
	StatePrecConstMult = 6
	StatePrecUnary     = 7
	StatePrecAtom      = 8
)

var StateOperators = map[string]Operator{
	"=>": {2, true},
	"||": {3, true},
	"&&": {4, true},
	"+":  {5, false},
}

// Printer renders syntax trees as mCRL2 text. With FullParens unset it emits
// only the parentheses needed to parse the text back into the same tree, so
// printing is stable under a parse and print round trip.
type Printer struct {
	FullParens bool
}

// Print renders n with minimal parentheses.
func Print(n Node) string {
	return Printer{}.Print(n)
}

func (p Printer) Print(n Node) string {
	switch n := n.(type) {
	case *ProcessSpecification:
		return p.ProcessSpecification(n)
	case *StateFormulaSpecification:
		return p.StateFormulaSpecification(n)
	case *Section:
		return p.section(n)
	case Decl:
		return p.decl(n)
	case *BadExpr:
		return "<error: " + n.Message + ">"
	case SortExpr:
		return p.Sort(n)
	case DataExpr:
		return p.Data(n)
	case ProcExpr:
		return p.Proc(n)
	case ActFrm:
		return p.Act(n)
	case RegFrm:
		return p.Reg(n)
	case StateFrm:
		return p.State(n)
	}
	return fmt.Sprintf("<%s>", n.NodeType())
}

func (p Printer) wrap(s string, prec, req, atom int) string {
	if prec < req || (p.FullParens && req > 0 && prec < atom) {
		return "(" + s + ")"
	}
	return s
}

// Sorts

func (p Printer) Sort(s SortExpr) string {
	switch s := s.(type) {
	case *SortIdent:
		return s.Name
	case *ContainerSort:
		return s.Kind + "(" + p.Sort(s.Elem) + ")"
	case *FunctionSort:
		parts := make([]string, len(s.Domain))
		for i, d := range s.Domain {
			parts[i] = p.sortOperand(d)
		}
		return strings.Join(parts, " # ") + " -> " + p.Sort(s.Codomain)
	case *StructSort:
		cons := make([]string, len(s.Constructors))
		for i, c := range s.Constructors {
			cons[i] = p.structCons(c)
		}
		return "struct " + strings.Join(cons, " | ")
	case *BadExpr:
		return p.Print(s)
	}
	return ""
}

func (p Printer) sortOperand(s SortExpr) string {
	switch s.(type) {
	case *FunctionSort, *StructSort:
		return "(" + p.Sort(s) + ")"
	}
	return p.Sort(s)
}

func (p Printer) structCons(c *StructCons) string {
	var b strings.Builder
	b.WriteString(c.Name.Value)
	if len(c.Projections) > 0 {
		projs := make([]string, len(c.Projections))
		for i, pr := range c.Projections {
			if pr.Name != "" {
				projs[i] = pr.Name + ": " + p.Sort(pr.Sort)
			} else {
				projs[i] = p.Sort(pr.Sort)
			}
		}
		b.WriteString("(" + strings.Join(projs, ", ") + ")")
	}
	if c.Recognizer != "" {
		b.WriteString("?" + c.Recognizer)
	}
	return b.String()
}

// Vars prints variable declarations, merging neighbours of the same sort:
// "x, y: Nat, b: Bool".
func (p Printer) Vars(vars []*VarDecl) string {
	var groups []string
	for i := 0; i < len(vars); {
		sort := p.Sort(vars[i].Sort)
		names := []string{vars[i].Name.Value}
		j := i + 1
		for j < len(vars) && p.Sort(vars[j].Sort) == sort {
			names = append(names, vars[j].Name.Value)
			j++
		}
		groups = append(groups, strings.Join(names, ", ")+": "+sort)
		i = j
	}
	return strings.Join(groups, ", ")
}

// Data expressions

func (p Printer) Data(e DataExpr) string {
	return p.data(e, 0)
}

func (p Printer) dataList(es []DataExpr) string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = p.data(e, 0)
	}
	return strings.Join(parts, ", ")
}

func (p Printer) data(e DataExpr, req int) string {
	s, prec := p.dataString(e)
	return p.wrap(s, prec, req, DataPrecAtom)
}

func (p Printer) dataString(e DataExpr) (string, int) {
	switch e := e.(type) {
	case *DataIdent:
		return e.Name, DataPrecAtom
	case *DataNumber:
		return e.Value, DataPrecAtom
	case *DataApply:
		return p.data(e.Head, DataPrecApply) + "(" + p.dataList(e.Args) + ")", DataPrecApply
	case *DataUnary:
		return e.Op + p.data(e.Operand, DataPrecUnary), DataPrecUnary
	case *DataBinary:
		op := DataOperators[e.Op]
		left, right := op.Prec+1, op.Prec
		if !op.Right {
			left, right = op.Prec, op.Prec+1
		}
		return p.data(e.Left, left) + " " + e.Op + " " + p.data(e.Right, right), op.Prec
	case *DataBinder:
		return e.Kind + " " + p.Vars(e.Vars) + ". " + p.data(e.Body, DataPrecBinder), DataPrecBinder
	case *DataWhere:
		assigns := make([]string, len(e.Assignments))
		for i, a := range e.Assignments {
			assigns[i] = a.Name.Value + " = " + p.data(a.Value, 0)
		}
		return p.data(e.Body, DataPrecBinder) + " whr " + strings.Join(assigns, ", ") + " end", DataPrecWhere
	case *DataList:
		return "[" + p.dataList(e.Elems) + "]", DataPrecAtom
	case *DataSet:
		return "{" + p.dataList(e.Elems) + "}", DataPrecAtom
	case *DataBag:
		if len(e.Elems) == 0 {
			return "{:}", DataPrecAtom
		}
		elems := make([]string, len(e.Elems))
		for i, el := range e.Elems {
			elems[i] = p.data(el.Elem, 0) + ": " + p.data(el.Count, 0)
		}
		return "{" + strings.Join(elems, ", ") + "}", DataPrecAtom
	case *DataComprehension:
		return "{ " + p.Vars([]*VarDecl{e.Var}) + " | " + p.data(e.Body, 0) + " }", DataPrecAtom
	case *BadExpr:
		return p.Print(e), DataPrecAtom
	}
	return "", DataPrecAtom
}

// Process expressions

func (p Printer) Proc(e ProcExpr) string {
	return p.proc(e, 0)
}

func (p Printer) proc(e ProcExpr, req int) string {
	s, prec := p.procString(e)
	return p.wrap(s, prec, req, ProcPrecAtom)
}

func (p Printer) procString(e ProcExpr) (string, int) {
	switch e := e.(type) {
	case *ProcInstance:
		if len(e.Args) == 0 {
			return e.Name.Value, ProcPrecAtom
		}
		return e.Name.Value + "(" + p.dataList(e.Args) + ")", ProcPrecAtom
	case *ProcAssignment:
		assigns := make([]string, len(e.Assignments))
		for i, a := range e.Assignments {
			assigns[i] = a.Name.Value + " = " + p.data(a.Value, 0)
		}
		return e.Name.Value + "(" + strings.Join(assigns, ", ") + ")", ProcPrecAtom
	case *ProcConst:
		return e.Name, ProcPrecAtom
	case *ProcBinary:
		op := ProcOperators[e.Op]
		left, right := op.Prec+1, op.Prec
		if !op.Right {
			left, right = op.Prec, op.Prec+1
		}
		return p.proc(e.Left, left) + " " + e.Op + " " + p.proc(e.Right, right), op.Prec
	case *ProcSum:
		return "sum " + p.Vars(e.Vars) + ". " + p.proc(e.Body, ProcPrecSum), ProcPrecSum
	case *ProcDist:
		return "dist " + p.Vars(e.Vars) + "[" + p.data(e.Dist, 0) + "]. " + p.proc(e.Body, ProcPrecSum), ProcPrecSum
	case *ProcCond:
		cond := p.data(e.Cond, DataPrecUnary)
		if e.Else == nil {
			return cond + " -> " + p.proc(e.Then, ProcPrecCond), ProcPrecCond
		}
		return cond + " -> " + p.proc(e.Then, ProcPrecCond+1) + " <> " + p.proc(e.Else, ProcPrecCond), ProcPrecCond
	case *ProcAt:
		return p.proc(e.Body, ProcPrecAt) + " @ " + p.data(e.Time, DataPrecUnary), ProcPrecAt
	case *ProcBlock:
		return e.Op + "({" + joinIdents(e.Names, ", ") + "}, " + p.proc(e.Body, 0) + ")", ProcPrecAtom
	case *ProcAllow:
		multis := make([]string, len(e.MultiActions))
		for i, m := range e.MultiActions {
			multis[i] = joinIdents(m, " | ")
		}
		return "allow({" + strings.Join(multis, ", ") + "}, " + p.proc(e.Body, 0) + ")", ProcPrecAtom
	case *ProcRename:
		rules := make([]string, len(e.Rules))
		for i, r := range e.Rules {
			rules[i] = r.From.Value + " -> " + r.To.Value
		}
		return "rename({" + strings.Join(rules, ", ") + "}, " + p.proc(e.Body, 0) + ")", ProcPrecAtom
	case *ProcComm:
		rules := make([]string, len(e.Rules))
		for i, r := range e.Rules {
			rules[i] = joinIdents(r.Lhs, " | ") + " -> " + r.Rhs.Value
		}
		return "comm({" + strings.Join(rules, ", ") + "}, " + p.proc(e.Body, 0) + ")", ProcPrecAtom
	case *BadExpr:
		return p.Print(e), ProcPrecAtom
	}
	return "", ProcPrecAtom
}

func joinIdents(ids []Ident, sep string) string {
	names := make([]string, len(ids))
	for i, id := range ids {
		names[i] = id.Value
	}
	return strings.Join(names, sep)
}

// Action formulas

func (p Printer) Act(a ActFrm) string {
	return p.act(a, 0)
}

func (p Printer) act(a ActFrm, req int) string {
	s, prec := p.actString(a)
	return p.wrap(s, prec, req, ActPrecAtom)
}

func (p Printer) actString(a ActFrm) (string, int) {
	switch a := a.(type) {
	case *ActConst:
		return fmt.Sprint(a.Value), ActPrecAtom
	case *ActMulti:
		if len(a.Actions) == 0 {
			return "tau", ActPrecAtom
		}
		parts := make([]string, len(a.Actions))
		for i, ai := range a.Actions {
			parts[i] = ai.Name.Value
			if len(ai.Args) > 0 {
				parts[i] += "(" + p.dataList(ai.Args) + ")"
			}
		}
		return strings.Join(parts, "|"), ActPrecAtom
	case *ActVal:
		return "val(" + p.data(a.Expr, 0) + ")", ActPrecAtom
	case *ActNot:
		return "!" + p.act(a.Body, ActPrecNot), ActPrecNot
	case *ActBinary:
		op := ActOperators[a.Op]
		return p.act(a.Left, op.Prec+1) + " " + a.Op + " " + p.act(a.Right, op.Prec), op.Prec
	case *ActQuant:
		return a.Kind + " " + p.Vars(a.Vars) + ". " + p.act(a.Body, ActPrecQuant), ActPrecQuant
	case *ActAt:
		return p.act(a.Body, ActPrecAt) + " @ " + p.data(a.Time, DataPrecUnary), ActPrecAt
	case *BadExpr:
		return p.Print(a), ActPrecAtom
	}
	return "", ActPrecAtom
}

// Regular formulas

func (p Printer) Reg(r RegFrm) string {
	return p.reg(r, 0)
}

func (p Printer) reg(r RegFrm, req int) string {
	s, prec := p.regString(r)
	return p.wrap(s, prec, req, RegPrecAtom)
}

func (p Printer) regString(r RegFrm) (string, int) {
	switch r := r.(type) {
	case *RegNil:
		return "nil", RegPrecAtom
	case *RegAct:
		s, prec := p.actString(r.Act)
		if prec < ActPrecAtom {
			// Compound action formulas are bracketed under regular operators.
			return s, 0
		}
		return s, RegPrecAtom
	case *RegBinary:
		op := RegOperators[r.Op]
		left, right := op.Prec+1, op.Prec
		if !op.Right {
			left, right = op.Prec, op.Prec+1
		}
		return p.reg(r.Left, left) + " " + r.Op + " " + p.reg(r.Right, right), op.Prec
	case *RegIter:
		return p.reg(r.Body, RegPrecIter) + r.Op, RegPrecIter
	case *BadExpr:
		return p.Print(r), RegPrecAtom
	}
	return "", RegPrecAtom
}

// State formulas

func (p Printer) State(f StateFrm) string {
	return p.state(f, 0)
}

func (p Printer) state(f StateFrm, req int) string {
	s, prec := p.stateString(f)
	return p.wrap(s, prec, req, StatePrecAtom)
}

func (p Printer) stateString(f StateFrm) (string, int) {
	switch f := f.(type) {
	case *StateConst:
		return fmt.Sprint(f.Value), StatePrecAtom
	case *StateVal:
		return "val(" + p.data(f.Expr, 0) + ")", StatePrecAtom
	case *StateNumber:
		return f.Value, StatePrecAtom
	case *StateDelay:
		if f.Time == nil {
			return f.Kind, StatePrecAtom
		}
		return f.Kind + " @ " + p.data(f.Time, DataPrecUnary), StatePrecAtom
	case *StateVar:
		if len(f.Args) == 0 {
			return f.Name.Value, StatePrecAtom
		}
		return f.Name.Value + "(" + p.dataList(f.Args) + ")", StatePrecAtom
	case *StateNot:
		return "!" + p.state(f.Body, StatePrecUnary), StatePrecUnary
	case *StateMinus:
		return "-" + p.state(f.Body, StatePrecUnary), StatePrecUnary
	case *StateBinary:
		op := StateOperators[f.Op]
		left, right := op.Prec+1, op.Prec
		if !op.Right {
			left, right = op.Prec, op.Prec+1
		}
		return p.state(f.Left, left) + " " + f.Op + " " + p.state(f.Right, right), op.Prec
	case *StateModal:
		if f.Box {
			return "[" + p.reg(f.Reg, 0) + "]" + p.state(f.Body, StatePrecUnary), StatePrecUnary
		}
		return "<" + p.reg(f.Reg, 0) + ">" + p.state(f.Body, StatePrecUnary), StatePrecUnary
	case *StateQuant:
		return f.Kind + " " + p.Vars(f.Vars) + ". " + p.state(f.Body, StatePrecBinder), StatePrecBinder
	case *StateFixpoint:
		var b strings.Builder
		b.WriteString(f.Kind + " " + f.Name.Value)
		if len(f.Params) > 0 {
			params := make([]string, len(f.Params))
			for i, fp := range f.Params {
				params[i] = fp.Var.Name.Value + ": " + p.Sort(fp.Var.Sort) + " = " + p.data(fp.Init, 0)
			}
			b.WriteString("(" + strings.Join(params, ", ") + ")")
		}
		b.WriteString(". " + p.state(f.Body, StatePrecBinder))
		return b.String(), StatePrecBinder
	case *StateConstMult:
		return p.data(f.Factor, DataPrecUnary) + " * " + p.state(f.Body, StatePrecUnary), StatePrecConstMult
	case *BadExpr:
		return p.Print(f), StatePrecAtom
	}
	return "", StatePrecAtom
}

// Specifications

const sectionIndent = "     "

func (p Printer) ProcessSpecification(s *ProcessSpecification) string {
	if s.Bare != nil {
		return p.Proc(s.Bare)
	}
	return p.sections(s.Sections)
}

func (p Printer) StateFormulaSpecification(s *StateFormulaSpecification) string {
	if s.Bare {
		return p.State(s.Formula)
	}
	form := "form " + p.State(s.Formula) + ";"
	if len(s.Sections) == 0 {
		return form
	}
	return p.sections(s.Sections) + "\n\n" + form
}

func (p Printer) sections(sections []*Section) string {
	parts := make([]string, len(sections))
	for i, sec := range sections {
		parts[i] = p.section(sec)
	}
	return strings.Join(parts, "\n\n")
}

func (p Printer) section(sec *Section) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%-5s", sec.Keyword))
	for i, d := range sec.Decls {
		if i > 0 {
			b.WriteString("\n" + sectionIndent)
		}
		b.WriteString(p.decl(d))
	}
	return strings.TrimRight(b.String(), " ")
}

func (p Printer) decl(d Decl) string {
	switch d := d.(type) {
	case *SortDecl:
		if d.Def != nil {
			return joinIdents(d.Names, ", ") + " = " + p.Sort(d.Def) + ";"
		}
		return joinIdents(d.Names, ", ") + ";"
	case *IdsDecl:
		return joinIdents(d.Names, ", ") + ": " + p.Sort(d.Sort) + ";"
	case *ActionDecl:
		if len(d.Sorts) == 0 {
			return joinIdents(d.Names, ", ") + ";"
		}
		sorts := make([]string, len(d.Sorts))
		for i, s := range d.Sorts {
			sorts[i] = p.sortOperand(s)
		}
		return joinIdents(d.Names, ", ") + ": " + strings.Join(sorts, " # ") + ";"
	case *EqnDecl:
		eqn := p.data(d.Lhs, 0) + " = " + p.data(d.Rhs, 0) + ";"
		if d.Condition != nil {
			return p.data(d.Condition, 0) + " -> " + eqn
		}
		return eqn
	case *ProcDecl:
		if len(d.Params) == 0 {
			return d.Name.Value + " = " + p.proc(d.Body, 0) + ";"
		}
		return d.Name.Value + "(" + p.Vars(d.Params) + ") = " + p.proc(d.Body, 0) + ";"
	case *InitDecl:
		if d.Formula != nil {
			return p.state(d.Formula, 0) + ";"
		}
		return p.proc(d.Proc, 0) + ";"
	}
	return ""
}

func (n *SortIdent) String() string                 { return Print(n) }
func (n *ContainerSort) String() string             { return Print(n) }
func (n *FunctionSort) String() string              { return Print(n) }
func (n *StructSort) String() string                { return Print(n) }
func (n *DataIdent) String() string                 { return Print(n) }
func (n *DataNumber) String() string                { return Print(n) }
func (n *DataApply) String() string                 { return Print(n) }
func (n *DataUnary) String() string                 { return Print(n) }
func (n *DataBinary) String() string                { return Print(n) }
func (n *DataBinder) String() string                { return Print(n) }
func (n *DataWhere) String() string                 { return Print(n) }
func (n *DataList) String() string                  { return Print(n) }
func (n *DataSet) String() string                   { return Print(n) }
func (n *DataBag) String() string                   { return Print(n) }
func (n *DataComprehension) String() string         { return Print(n) }
func (n *ProcInstance) String() string              { return Print(n) }
func (n *ProcAssignment) String() string            { return Print(n) }
func (n *ProcConst) String() string                 { return Print(n) }
func (n *ProcBinary) String() string                { return Print(n) }
func (n *ProcSum) String() string                   { return Print(n) }
func (n *ProcDist) String() string                  { return Print(n) }
func (n *ProcCond) String() string                  { return Print(n) }
func (n *ProcAt) String() string                    { return Print(n) }
func (n *ProcBlock) String() string                 { return Print(n) }
func (n *ProcAllow) String() string                 { return Print(n) }
func (n *ProcRename) String() string                { return Print(n) }
func (n *ProcComm) String() string                  { return Print(n) }
func (n *ActConst) String() string                  { return Print(n) }
func (n *ActMulti) String() string                  { return Print(n) }
func (n *ActVal) String() string                    { return Print(n) }
func (n *ActNot) String() string                    { return Print(n) }
func (n *ActBinary) String() string                 { return Print(n) }
func (n *ActQuant) String() string                  { return Print(n) }
func (n *ActAt) String() string                     { return Print(n) }
func (n *RegNil) String() string                    { return Print(n) }
func (n *RegAct) String() string                    { return Print(n) }
func (n *RegBinary) String() string                 { return Print(n) }
func (n *RegIter) String() string                   { return Print(n) }
func (n *StateConst) String() string                { return Print(n) }
func (n *StateVal) String() string                  { return Print(n) }
func (n *StateNumber) String() string               { return Print(n) }
func (n *StateDelay) String() string                { return Print(n) }
func (n *StateVar) String() string                  { return Print(n) }
func (n *StateNot) String() string                  { return Print(n) }
func (n *StateMinus) String() string                { return Print(n) }
func (n *StateBinary) String() string               { return Print(n) }
func (n *StateModal) String() string                { return Print(n) }
func (n *StateQuant) String() string                { return Print(n) }
func (n *StateFixpoint) String() string             { return Print(n) }
func (n *StateConstMult) String() string            { return Print(n) }
func (n *Section) String() string                   { return Print(n) }
func (n *SortDecl) String() string                  { return Print(n) }
func (n *IdsDecl) String() string                   { return Print(n) }
func (n *ActionDecl) String() string                { return Print(n) }
func (n *EqnDecl) String() string                   { return Print(n) }
func (n *ProcDecl) String() string                  { return Print(n) }
func (n *InitDecl) String() string                  { return Print(n) }
func (n *ProcessSpecification) String() string      { return Print(n) }
func (n *StateFormulaSpecification) String() string { return Print(n) }
func (n *BadExpr) String() string                   { return Print(n) }
