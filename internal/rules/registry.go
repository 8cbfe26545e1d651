package rules

// DefaultRules returns the built-in rules in evaluation order. The rules
// are order-insensitive among themselves; the success check lives in the
// evaluator since it inspects the accumulated report.
func DefaultRules(patterns []LinePattern) []Rule {
	return []Rule{
		SizeRule{},
		TitleRule{},
		NeedsTestsRule{},
		AddedWithoutTestsRule{},
		ExpectedTestFileRule{},
		ManifestRule{},
		PublicAPIRule{},
		NewLineScanRule(patterns),
		GeneratedRule{},
		ChangelogRule{},
	}
}

// Filter drops rules whose ID is in the disabled list.
func Filter(all []Rule, disabled []string) []Rule {
	if len(disabled) == 0 {
		return all
	}
	skip := make(map[string]bool, len(disabled))
	for _, id := range disabled {
		skip[id] = true
	}
	result := make([]Rule, 0, len(all))
	for _, r := range all {
		if skip[r.ID()] {
			continue
		}
		result = append(result, r)
	}
	return result
}
