package pipeline

import (
	"fmt"
	"regexp"
	"strings"
)

// RegexFilters holds the -only/-skip selections from the command line. A step
// runs if it matches at least one MustMatch pattern (or none were given) and
// matches no MustNotMatch pattern.
type RegexFilters struct {
	MustMatch    PatternList
	MustNotMatch PatternList
}

func (r RegexFilters) Match(name string) bool {
	return (!r.MustMatch.IsDefined() || r.MustMatch.AnyMatch(name)) &&
		!r.MustNotMatch.AnyMatch(name)
}

type PatternList []*regexp.Regexp

func (l PatternList) String() string {
	ss := make([]string, 0, len(l))
	for _, p := range l {
		ss = append(ss, `"`+p.String()+`"`)
	}
	return strings.Join(ss, " or ")
}

// Set is called by the command line parser
func (l *PatternList) Set(value string) error {
	rx, err := regexp.Compile(value)
	if err != nil {
		return fmt.Errorf("invalid regex: %w", err)
	}
	*l = append(*l, rx)
	return nil
}

func (l PatternList) IsDefined() bool {
	return len(l) != 0
}

func (l PatternList) AnyMatch(name string) bool {
	for _, p := range l {
		if p.MatchString(name) {
			return true
		}
	}
	return false
}

func PrintFilterDescription(filters RegexFilters) {
	if filters.MustMatch.IsDefined() || filters.MustNotMatch.IsDefined() {
		fmt.Println("Some steps will be skipped based on the filter criteria for this run:")
		if filters.MustMatch.IsDefined() {
			fmt.Printf("  skip any not matching %s\n", filters.MustMatch)
		}
		if filters.MustNotMatch.IsDefined() {
			fmt.Printf("  skip any matching %s\n", filters.MustNotMatch)
		}
		fmt.Println()
	}
}
