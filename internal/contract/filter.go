package contract

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// Filter decides whether a check runs
type Filter func(CheckID) bool

// CheckSelector picks checks by name for the --run and --skip flags.
// With no Include patterns every check is included; Exclude always wins.
type CheckSelector struct {
	Include PatternList
	Exclude PatternList
}

// Selects reports whether the named check should run. It has the Filter signature.
func (s CheckSelector) Selects(id CheckID) bool {
	name := id.String()
	if s.Exclude.Matches(name) {
		return false
	}
	return s.Include.Empty() || s.Include.Matches(name)
}

// Describe summarises the selection for the console, or returns "" when every check runs
func (s CheckSelector) Describe() string {
	var b strings.Builder
	if !s.Include.Empty() {
		fmt.Fprintf(&b, "  only checks matching %s\n", s.Include)
	}
	if !s.Exclude.Empty() {
		fmt.Fprintf(&b, "  no checks matching %s\n", s.Exclude)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// PatternList is a repeatable regex flag (it implements pflag.Value)
type PatternList []*regexp.Regexp

func (l *PatternList) Set(pattern string) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("bad check pattern %q: %w", pattern, err)
	}
	*l = append(*l, re)
	return nil
}

func (l *PatternList) Type() string { return "regex" }

func (l PatternList) String() string {
	quoted := make([]string, len(l))
	for i, re := range l {
		quoted[i] = strconv.Quote(re.String())
	}
	return strings.Join(quoted, " or ")
}

func (l PatternList) Empty() bool { return len(l) == 0 }

// Matches reports whether any pattern matches name
func (l PatternList) Matches(name string) bool {
	return slices.ContainsFunc(l, func(re *regexp.Regexp) bool {
		return re.MatchString(name)
	})
}
