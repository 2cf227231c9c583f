package bridge

import (
	"fmt"
	"strings"
)

// Mode selects one of the print paths.
type Mode int

const (
	ModeProcess Mode = iota
	ModeFormula
	ModeQuantitativeFormula
	ModeFormulaDefault
)

var modeNames = [...]string{
	ModeProcess:             "mcrl2",
	ModeFormula:             "mcf",
	ModeQuantitativeFormula: "qmcf",
	ModeFormulaDefault:      "mcf-default",
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode accepts the names printed by Mode.String.
func ParseMode(s string) (Mode, error) {
	for i, name := range modeNames {
		if strings.EqualFold(s, name) {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("unknown mode %q (want one of %s)", s, strings.Join(modeNames[:], ", "))
}

// IsFormula reports whether the mode parses state formulas.
func (m Mode) IsFormula() bool {
	return m != ModeProcess
}

// Print runs the print path selected by mode.
func (b *Bridge) Print(mode Mode, text string) (string, error) {
	switch mode {
	case ModeProcess:
		return b.PrintProcessSpecification(text)
	case ModeFormula:
		return b.PrintStateFormula(text)
	case ModeQuantitativeFormula:
		return b.PrintQuantitativeStateFormula(text)
	case ModeFormulaDefault:
		return b.PrintStateFormulaDefault(text)
	}
	return "", fmt.Errorf("unknown mode %s", mode)
}

func Print(mode Mode, text string) (string, error) {
	return Default().Print(mode, text)
}

// DivergenceError reports that the explicit-options and convenience formula
// paths printed different text for the same input.
type DivergenceError struct {
	Explicit string
	Default  string
}

func (e *DivergenceError) Error() string {
	return fmt.Sprintf("formula paths diverge: explicit options print %q, defaults print %q",
		strings.TrimSuffix(e.Explicit, "\n"), strings.TrimSuffix(e.Default, "\n"))
}

// CompareFormulaPaths prints text through PrintStateFormula and
// PrintStateFormulaDefault. A parse error from either path is returned as
// is; differing output is a *DivergenceError.
func (b *Bridge) CompareFormulaPaths(text string) error {
	explicit, err := b.PrintStateFormula(text)
	if err != nil {
		return err
	}
	def, err := b.PrintStateFormulaDefault(text)
	if err != nil {
		return err
	}
	if explicit != def {
		return &DivergenceError{Explicit: explicit, Default: def}
	}
	return nil
}

func CompareFormulaPaths(text string) error {
	return Default().CompareFormulaPaths(text)
}
