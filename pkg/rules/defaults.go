package rules

import (
	"regexp"
	"strings"
)

// legacyTypes are project types whose zero initialisation does not compile
// with the legacy toolchain.
var legacyTypes = []string{
	"VoteCommitmentList",
	"IDInfoVector",
	"LookupTable",
	"TurnData",
	"PlotStatePerTurn",
}

// UnbalancedParens reports whether text closes more parentheses than it opens.
func UnbalancedParens(text string) bool {
	return strings.Count(text, ")") > strings.Count(text, "(")
}

func reject(name string, category Category, pattern, description string) Rule {
	return Rule{
		Name:        name,
		Category:    category,
		Action:      ActionReject,
		Pattern:     regexp.MustCompile(pattern),
		Description: description,
	}
}

func rejectInContext(name, pattern, context, description string) Rule {
	r := reject(name, CategoryContext, pattern, description)
	r.Context = regexp.MustCompile(context)
	return r
}

// DefaultRules returns a fresh copy of the built-in rule table.
func DefaultRules() []Rule {
	rules := []Rule{
		// dialect
		reject("null-assignment", CategoryDialect, `= NULL\s*$`,
			"right-hand NULL initialisation"),
		reject("zero-assignment", CategoryDialect, `= 0\s*$`,
			"right-hand 0 initialisation"),
		reject("false-assignment", CategoryDialect, `= false\s*$`,
			"right-hand false initialisation"),
		reject("nan-assignment", CategoryDialect, `= NAN`,
			"NAN is not available to the legacy compiler"),
		reject("math-include", CategoryDialect, `#include <math\.h>`,
			"inserted <math.h> include"),
		reject("std-to-string", CategoryDialect, `std::to_string`,
			"std::to_string is C++11"),
		reject("va-arg-assignment", CategoryDialect, `va_arg\([^,]+\s*=\s*[^,]+,`,
			"assignment inside va_arg"),
		reject("connections-zero-init", CategoryDialect, `Connections\s*=\s*0`,
			"zero initialisation of a connections container"),
	}
	for _, t := range legacyTypes {
		rules = append(rules, reject(
			strings.ToLower(t)+"-zero-init", CategoryDialect,
			regexp.QuoteMeta(t)+`\s+\w+\s*=\s*0`,
			"zero initialisation of "+t))
	}

	rules = append(rules,
		// corruption
		reject("fused-null", CategoryCorruption, `= NULL[a-z]`,
			"NULL fused into the following identifier"),
		reject("truncated-strlen", CategoryCorruption, `strle\s*=`,
			"strlen truncated into an assignment"),
		reject("truncated-processing", CategoryCorruption, `\bp\s*=\s*NULL\w+`,
			"identifier truncated to p and fused with NULL"),
		reject("truncated-argument", CategoryCorruption, `argum\s*=\s*NULL`,
			"argument truncated into a NULL assignment"),
		reject("truncated-variable", CategoryCorruption, `\bva\s*=\s*NULL\w+`,
			"identifier truncated to va and fused with NULL"),
		reject("va-arg-null", CategoryCorruption, `va_arg\([^,]+\s*=\s*NULL`,
			"NULL assignment inside va_arg"),
		Rule{
			Name:        "extra-closing-paren",
			Category:    CategoryCorruption,
			Action:      ActionReject,
			Pattern:     regexp.MustCompile(`\)\);`),
			Confirm:     UnbalancedParens,
			Description: "extra closing parenthesis after a call",
		},
	)

	vaListInit := rejectInContext("va-list-init",
		`=\s*(NULL|nullptr|\{\})$`, `va_list\s+\w+`,
		"null or brace initialisation of a va_list")
	vaListInit.Trim = true

	rules = append(rules,
		// context
		vaListInit,
		rejectInContext("va-arg-assignment-context", `va_arg\([^,]+\s*=`, `va_arg`,
			"assignment inside a va_arg call"),
		rejectInContext("truncated-strlen-context", `\bstrle\b`, `strlen\s*\(`,
			"strlen truncated to strle"),
		rejectInContext("truncated-processing-context", `\bp\s*=\s*NULL`, `processing`,
			"processing truncated to p"),
		rejectInContext("truncated-argument-context", `\bargum\s*=\s*NULL`, `argument`,
			"argument truncated to argum"),
		rejectInContext("truncated-variable-context", `\bva\s*=\s*NULL`, `variable`,
			"variable truncated to va"),

		reject("null-fused-identifier", CategoryCatchAll, `\w+\s*=\s*NULL\w+`,
			"identifier assigned a NULL-prefixed token"),

		Rule{
			Name:        "nullptr-to-null",
			Category:    CategoryConversion,
			Action:      ActionRewrite,
			Pattern:     regexp.MustCompile(`(=\s*)nullptr\b`),
			Replace:     "${1}NULL",
			Description: "nullptr is C++11",
		},
	)
	return rules
}
