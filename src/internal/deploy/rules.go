package deploy

// Rule is a single rsync filter rule. Rules are order-sensitive because the
// underlying matcher evaluates them first-match-wins.
type Rule struct {
	Include bool   `json:"include"`
	Pattern string `json:"pattern"`
}

// Arg renders the rule as an rsync command-line argument.
func (r Rule) Arg() string {
	if r.Include {
		return "--include=" + r.Pattern
	}

	return "--exclude=" + r.Pattern
}

// OperationKind distinguishes the two filter strategies used for transfers.
type OperationKind int

// Operation kinds
const (
	KindContent OperationKind = iota
	KindCodebase
)

func (k OperationKind) String() string {
	switch k {
	case KindContent:
		return "content"
	case KindCodebase:
		return "codebase"
	default:
		return "unknown"
	}
}

// ContentRules returns the filter rules for content transfers. Only
// operating-system artifacts are excluded; everything else transfers.
func ContentRules() []Rule {
	return []Rule{
		{Include: false, Pattern: ".DS_Store"},
		{Include: false, Pattern: "Icon*"},
		{Include: false, Pattern: "Thumbs.db"},
		{Include: false, Pattern: "._*"},
	}
}

// CodebaseRules returns the whitelist rules for codebase transfers. Only the
// named top-level entries (and their subtrees via ***) ever transfer; the
// cache and session excludes must precede the broader site include, and the
// universal exclude must stay last or the whitelist semantics break.
func CodebaseRules() []Rule {
	return []Rule{
		{Include: true, Pattern: "index.php"},
		{Include: true, Pattern: "kirby/***"},
		{Include: true, Pattern: ".htaccess"},
		{Include: false, Pattern: "site/cache"},
		{Include: false, Pattern: "site/sessions"},
		{Include: true, Pattern: "site/***"},
		{Include: true, Pattern: "assets/***"},
		{Include: true, Pattern: "vendor/***"},
		{Include: false, Pattern: "*"},
	}
}

// RulesFor returns the rule set for the given operation kind.
func RulesFor(kind OperationKind) []Rule {
	if kind == KindCodebase {
		return CodebaseRules()
	}

	return ContentRules()
}
