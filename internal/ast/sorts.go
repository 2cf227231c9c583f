package ast

// SortExpr is any sort (type) expression.
type SortExpr interface {
	Node
	sortNode()
}

// SortIdent is a basic sort or a declared sort name.
// Example: "Nat", "Bool", "State"
type SortIdent struct {
	Span
	Name string
}

// ContainerSort wraps an element sort.
// Example: "List(Nat)", "FSet(D)"
type ContainerSort struct {
	Span
	Kind string
	Elem SortExpr
}

// FunctionSort is a (possibly multi-argument) function sort.
// Example: "Nat # Bool -> D"
type FunctionSort struct {
	Span
	Domain   []SortExpr
	Codomain SortExpr
}

// StructSort enumerates constructors with optional projections and recognizers.
// Example: "struct empty?isEmpty | cons(head: Nat, tail: L)"
type StructSort struct {
	Span
	Constructors []*StructCons
}

type StructCons struct {
	Span
	Name        Ident
	Projections []*StructProj
	Recognizer  string
}

// StructProj is one constructor argument; Name is empty for anonymous ones.
type StructProj struct {
	Span
	Name string
	Sort SortExpr
}

func (*SortIdent) NodeType() NodeType     { return SORT_IDENT }
func (*ContainerSort) NodeType() NodeType { return CONTAINER_SORT }
func (*FunctionSort) NodeType() NodeType  { return FUNCTION_SORT }
func (*StructSort) NodeType() NodeType    { return STRUCT_SORT }

func (*SortIdent) sortNode()     {}
func (*ContainerSort) sortNode() {}
func (*FunctionSort) sortNode()  {}
func (*StructSort) sortNode()    {}
