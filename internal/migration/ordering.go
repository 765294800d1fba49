package migration

import (
	"fmt"
	"sort"
	"strings"
)

// Ordering compares two migration names like strings.Compare.
type Ordering func(a, b string) int

// Lexical orders names by plain byte comparison, so "10_X" sorts before "2_Y".
func Lexical(a, b string) int {
	return strings.Compare(a, b)
}

// Natural compares runs of digits by numeric value, so "2_Y" sorts before
// "10_X". Names that only differ in leading zeros fall back to byte order.
func Natural(a, b string) int {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		ca, cb := a[i], b[j]
		if isDigit(ca) && isDigit(cb) {
			ea, eb := digitsEnd(a, i), digitsEnd(b, j)
			if c := compareNumeric(a[i:ea], b[j:eb]); c != 0 {
				return c
			}
			i, j = ea, eb
			continue
		}
		if ca != cb {
			if ca < cb {
				return -1
			}
			return 1
		}
		i++
		j++
	}
	switch {
	case len(a)-i < len(b)-j:
		return -1
	case len(a)-i > len(b)-j:
		return 1
	}
	return strings.Compare(a, b)
}

// ParseOrdering maps a configuration value to an Ordering.
func ParseOrdering(name string) (Ordering, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "natural":
		return Natural, nil
	case "lexical":
		return Lexical, nil
	default:
		return nil, fmt.Errorf("unknown migration ordering %q (want natural or lexical)", name)
	}
}

// Sort orders defs in place by name.
func Sort(defs []Definition, order Ordering) {
	sort.SliceStable(defs, func(i, j int) bool {
		return order(defs[i].Name, defs[j].Name) < 0
	})
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func digitsEnd(s string, start int) int {
	end := start
	for end < len(s) && isDigit(s[end]) {
		end++
	}
	return end
}

func compareNumeric(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}
