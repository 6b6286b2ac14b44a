package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ahrav/levelforge/internal/domain"
)

// Thresholds applied by the rule battery.
const (
	MinGateTypes         = 4
	MinXPositions        = 4
	MinTruthTableEntries = 4
)

// requiredElements must all occur literally in a candidate, checked in this order.
var requiredElements = [...]string{
	"import { " + domain.GateNamespace + " }",
	"export const level",
	"id:",
	"title:",
	"description:",
	"difficulty:",
	"availableGates:",
	"initialNodes:",
	"expectedTruthTable:",
}

var (
	xPositionPattern  = regexp.MustCompile(`x:\s*(\d+)`)
	truthTablePattern = regexp.MustCompile(`(?s)expectedTruthTable:\s*\[(.*?)\]`)
	// Entries are assumed flat; a nested brace ends the entry early.
	truthEntryPattern = regexp.MustCompile(`\{[^}]+\}`)
)

// RequiredElements returns the literal markers every candidate must contain.
func RequiredElements() []string {
	out := make([]string, len(requiredElements))
	copy(out, requiredElements[:])
	return out
}

type rule struct {
	name  domain.Rule
	check func(text string) (reason string, ok bool)
}

// rules is evaluated in order; the first failure decides the verdict.
var rules = [...]rule{
	{name: domain.RuleRequiredElements, check: checkRequiredElements},
	{name: domain.RuleGateDiversity, check: checkGateDiversity},
	{name: domain.RuleHorizontalSpacing, check: checkHorizontalSpacing},
	{name: domain.RuleTruthTable, check: checkTruthTable},
}

func checkRequiredElements(text string) (string, bool) {
	if missing := missingElement(text); missing != "" {
		return "missing required element: " + missing, false
	}
	return "", true
}

func checkGateDiversity(text string) (string, bool) {
	if len(gateTypesPresent(text)) < MinGateTypes {
		return fmt.Sprintf("level must use at least %d different types of gates", MinGateTypes), false
	}
	return "", true
}

func checkHorizontalSpacing(text string) (string, bool) {
	if len(distinctXPositions(text)) < MinXPositions {
		return "nodes must be spaced out horizontally", false
	}
	return "", true
}

func checkTruthTable(text string) (string, bool) {
	n, found := truthTableEntries(text)
	if found && n < MinTruthTableEntries {
		return "truth table must include all input combinations", false
	}
	return "", true
}

func missingElement(text string) string {
	for _, el := range requiredElements {
		if !strings.Contains(text, el) {
			return el
		}
	}
	return ""
}

// gateTypesPresent reports which vocabulary members occur at least once.
// Coverage is what counts; repeated use of one type counts once.
func gateTypesPresent(text string) []domain.GateType {
	var present []domain.GateType
	for _, g := range domain.GateVocabulary() {
		if strings.Contains(text, g.Qualified()) {
			present = append(present, g)
		}
	}
	return present
}

// distinctXPositions returns the distinct digit strings following "x:", in
// first-seen order. Values are compared as written, so "100" and "0100" differ.
func distinctXPositions(text string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, m := range xPositionPattern.FindAllStringSubmatch(text, -1) {
		if _, dup := seen[m[1]]; dup {
			continue
		}
		seen[m[1]] = struct{}{}
		out = append(out, m[1])
	}
	return out
}

// truthTableEntries counts brace-delimited entries in the first truth-table
// list. found is false when no bracketed list follows the marker.
func truthTableEntries(text string) (n int, found bool) {
	m := truthTablePattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	return len(truthEntryPattern.FindAllString(m[1], -1)), true
}
