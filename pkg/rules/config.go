package rules

import (
	"regexp"

	"github.com/arthur-debert/tidyforge/pkg/config"
	"github.com/arthur-debert/tidyforge/pkg/errors"
	"github.com/arthur-debert/tidyforge/pkg/logging"
)

// Compile turns configured rules into table entries.
func Compile(cfgs []config.RuleConfig) ([]Rule, error) {
	rules := make([]Rule, 0, len(cfgs))
	for _, c := range cfgs {
		pattern, err := regexp.Compile(c.Pattern)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrRuleInvalid,
				"rule %q has an invalid pattern", c.Name).
				WithDetail("pattern", c.Pattern)
		}

		r := Rule{
			Name:        c.Name,
			Category:    CategoryUser,
			Action:      ActionReject,
			Pattern:     pattern,
			Replace:     c.Replace,
			Description: c.Description,
		}
		switch c.Action {
		case "", "reject":
		case "rewrite":
			r.Action = ActionRewrite
		default:
			return nil, errors.Newf(errors.ErrRuleInvalid,
				"rule %q has unknown action %q", c.Name, c.Action)
		}

		if c.Context != "" {
			ctx, err := regexp.Compile(c.Context)
			if err != nil {
				return nil, errors.Wrapf(err, errors.ErrRuleInvalid,
					"rule %q has an invalid context pattern", c.Name).
					WithDetail("context", c.Context)
			}
			r.Context = ctx
		}
		if r.Description == "" {
			r.Description = "matched " + c.Pattern
		}
		rules = append(rules, r)
	}
	return rules, nil
}

// MergeRules puts user rules ahead of the defaults and drops disabled
// defaults. Naming a rule that does not exist is an error.
func MergeRules(defaults, user []Rule, disabled []string) ([]Rule, error) {
	known := make(map[string]bool, len(defaults))
	for _, r := range defaults {
		known[r.Name] = true
	}
	skip := make(map[string]bool, len(disabled))
	for _, name := range disabled {
		if !known[name] {
			return nil, errors.Newf(errors.ErrRuleInvalid, "cannot disable unknown rule %q", name)
		}
		skip[name] = true
	}

	merged := make([]Rule, 0, len(user)+len(defaults))
	merged = append(merged, user...)
	for _, r := range defaults {
		if !skip[r.Name] {
			merged = append(merged, r)
		}
	}
	return merged, nil
}

// Build returns the filter described by the reconcile configuration.
func Build(cfg config.ReconcileConfig) (*Filter, error) {
	logger := logging.GetLogger("rules.config")

	user, err := Compile(cfg.Rules)
	if err != nil {
		return nil, err
	}
	merged, err := MergeRules(DefaultRules(), user, cfg.DisabledRules)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Int("userRules", len(user)).
		Strs("disabled", cfg.DisabledRules).
		Int("total", len(merged)).
		Msg("Built edit filter")

	return NewFilter(merged), nil
}
