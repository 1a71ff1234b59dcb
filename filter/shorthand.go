package filter

import (
	"fmt"
	"regexp"
	"strings"
)

type shorthandRule struct {
	pattern *regexp.Regexp
	replace func(negate bool, value string) string
}

// Shorthand terms, e.g. id:"Cthulhu", name!:"sword", sort:"く".
var shorthandRules = []shorthandRule{
	{
		pattern: regexp.MustCompile(`\bid(!?):"([^"]+)"`),
		replace: func(negate bool, value string) string {
			if negate {
				return fmt.Sprintf(`(ID != "%s")`, value)
			}
			return fmt.Sprintf(`(ID == "%s")`, value)
		},
	},
	{
		pattern: regexp.MustCompile(`\bname(!?):"([^"]+)"`),
		replace: func(negate bool, value string) string {
			if negate {
				return fmt.Sprintf(`not containsText(Name, "%s")`, value)
			}
			return fmt.Sprintf(`containsText(Name, "%s")`, value)
		},
	},
	{
		pattern: regexp.MustCompile(`\bsort(!?):"([^"]+)"`),
		replace: func(negate bool, value string) string {
			if negate {
				return fmt.Sprintf(`not startsWithText(SortKey, "%s")`, value)
			}
			return fmt.Sprintf(`startsWithText(SortKey, "%s")`, value)
		},
	},
}

var shorthandDetector = regexp.MustCompile(`\b(id|name|sort)!?:"`)

// IsShorthand checks if an expression uses shorthand terms
func IsShorthand(expression string) bool {
	return shorthandDetector.MatchString(expression)
}

// ConvertShorthand rewrites shorthand terms and upper-case logical operators
// into expr syntax
func ConvertShorthand(expression string) string {
	out := strings.ReplaceAll(expression, " AND ", " and ")
	out = strings.ReplaceAll(out, " OR ", " or ")
	out = strings.ReplaceAll(out, "NOT ", "not ")

	for _, rule := range shorthandRules {
		out = rule.pattern.ReplaceAllStringFunc(out, func(match string) string {
			groups := rule.pattern.FindStringSubmatch(match)
			return rule.replace(groups[1] == "!", groups[2])
		})
	}
	return out
}
