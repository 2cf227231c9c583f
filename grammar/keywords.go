package grammar

// Keywords lists the reserved words of the process and formula languages.
var Keywords = map[string]bool{
	// sections
	"sort": true, "cons": true, "map": true, "var": true, "eqn": true,
	"act": true, "glob": true, "proc": true, "init": true, "form": true,

	// sorts
	"Bool": true, "Pos": true, "Nat": true, "Int": true, "Real": true,
	"List": true, "Set": true, "Bag": true, "FSet": true, "FBag": true,
	"struct": true,

	// data
	"true": true, "false": true, "lambda": true, "forall": true, "exists": true,
	"whr": true, "end": true, "div": true, "mod": true, "in": true,

	// processes
	"delta": true, "tau": true, "sum": true, "dist": true, "block": true,
	"allow": true, "hide": true, "rename": true, "comm": true,

	// formulas
	"nu": true, "mu": true, "val": true, "delay": true, "yaled": true,
	"nil": true, "inf": true, "sup": true,
}

// SectionKeywords are the words that open a specification section.
var SectionKeywords = map[string]bool{
	"sort": true, "cons": true, "map": true, "var": true, "eqn": true,
	"act": true, "glob": true, "proc": true, "init": true, "form": true,
}

// SortKeywords name the built-in and container sorts.
var SortKeywords = map[string]bool{
	"Bool": true, "Pos": true, "Nat": true, "Int": true, "Real": true,
	"List": true, "Set": true, "Bag": true, "FSet": true, "FBag": true,
}

func IsKeyword(s string) bool {
	return Keywords[s]
}
