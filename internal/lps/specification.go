// Package lps holds the behavioural model that state formulas are checked
// against: the data declarations, action labels and global variables of a
// specification. The zero value is the empty model.
package lps

import (
	"parsecheck/internal/ast"
)

// ActionLabel is a declared action name with its parameter sorts.
type ActionLabel struct {
	Name  string
	Sorts []ast.SortExpr
}

func (a ActionLabel) Arity() int {
	return len(a.Sorts)
}

type Specification struct {
	DataSections    []*ast.Section
	ActionLabels    []ActionLabel
	GlobalVariables []*ast.VarDecl
}

var dataKeywords = map[string]bool{
	"sort": true, "cons": true, "map": true, "var": true, "eqn": true,
}

// FromProcessSpecification collects the declarations of a parsed process
// specification into a model.
func FromProcessSpecification(spec *ast.ProcessSpecification) *Specification {
	model := &Specification{}

	for _, sec := range spec.Sections {
		if dataKeywords[sec.Keyword] {
			model.DataSections = append(model.DataSections, sec)
		}
	}

	for _, decl := range spec.Actions() {
		for _, name := range decl.Names {
			model.ActionLabels = append(model.ActionLabels, ActionLabel{Name: name.Value, Sorts: decl.Sorts})
		}
	}

	for _, d := range ast.SectionDecls(spec.Sections, "glob") {
		ids, ok := d.(*ast.IdsDecl)
		if !ok {
			continue
		}
		for _, name := range ids.Names {
			model.GlobalVariables = append(model.GlobalVariables, &ast.VarDecl{Span: ids.Span, Name: name, Sort: ids.Sort})
		}
	}

	return model
}

// Actions returns the labels declared with the given name.
func (s *Specification) Actions(name string) []ActionLabel {
	if s == nil {
		return nil
	}
	var labels []ActionLabel
	for _, a := range s.ActionLabels {
		if a.Name == name {
			labels = append(labels, a)
		}
	}
	return labels
}

// IsEmpty reports whether the model declares nothing.
func (s *Specification) IsEmpty() bool {
	return s == nil || (len(s.DataSections) == 0 && len(s.ActionLabels) == 0 && len(s.GlobalVariables) == 0)
}
