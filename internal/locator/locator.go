// Package locator finds live, visible elements through ordered selector
// fallback chains. A chain encodes preference: most specific and stable
// candidate first, most generic last. Resolution is first-match-wins.
package locator

import (
	"fmt"
	"strings"
)

// Kind tags a candidate's matching strategy.
type Kind int

const (
	KindCSS Kind = iota
	KindText
	KindRole
	KindAttr
	KindTestID
)

func (k Kind) String() string {
	switch k {
	case KindCSS:
		return "css"
	case KindText:
		return "text"
	case KindRole:
		return "role"
	case KindAttr:
		return "attr"
	case KindTestID:
		return "testid"
	default:
		return "unknown"
	}
}

// Candidate is one declarative matcher in a fallback chain.
type Candidate struct {
	Kind Kind

	// CSS holds the raw selector for KindCSS.
	CSS string
	// Tag scopes text/role/attr matching to an element type; empty matches any.
	Tag string
	// Text is the visible text for KindText and KindRole.
	Text string
	// Role is the ARIA role for KindRole.
	Role string
	// Attr/Value describe the attribute for KindAttr.
	Attr  string
	Value string
	// TestID is the data-testid value for KindTestID.
	TestID string
}

// ByCSS matches a raw CSS selector (Playwright pseudo-classes allowed).
func ByCSS(selector string) Candidate {
	return Candidate{Kind: KindCSS, CSS: selector}
}

// ByText matches elements of tag containing the given text.
func ByText(tag, text string) Candidate {
	return Candidate{Kind: KindText, Tag: tag, Text: text}
}

// ByRole matches by ARIA role plus visible text. Native elements carrying
// the implicit role are matched alongside explicit role attributes.
func ByRole(role, text string) Candidate {
	return Candidate{Kind: KindRole, Role: role, Text: text}
}

// ByAttr matches tag elements with attr="value".
func ByAttr(tag, attr, value string) Candidate {
	return Candidate{Kind: KindAttr, Tag: tag, Attr: attr, Value: value}
}

// ByTestID matches [data-testid=id].
func ByTestID(id string) Candidate {
	return Candidate{Kind: KindTestID, TestID: id}
}

// roleTags maps ARIA roles to the native element carrying the implicit role.
var roleTags = map[string]string{
	"button":   "button",
	"link":     "a",
	"textbox":  "input",
	"checkbox": "input[type=\"checkbox\"]",
	"tab":      "[role=\"tab\"]",
}

// Selector renders the candidate as a Playwright selector string.
func (c Candidate) Selector() string {
	switch c.Kind {
	case KindCSS:
		return c.CSS
	case KindText:
		if c.Tag == "" {
			return fmt.Sprintf("text=%q", c.Text)
		}
		return fmt.Sprintf("%s:has-text(%q)", c.Tag, c.Text)
	case KindRole:
		native, ok := roleTags[c.Role]
		explicit := fmt.Sprintf("[role=%q]", c.Role)
		parts := []string{}
		if ok {
			parts = append(parts, native)
		}
		if native != explicit {
			parts = append(parts, explicit)
		}
		if c.Text == "" {
			return strings.Join(parts, ", ")
		}
		for i, p := range parts {
			parts[i] = fmt.Sprintf("%s:has-text(%q)", p, c.Text)
		}
		return strings.Join(parts, ", ")
	case KindAttr:
		return fmt.Sprintf("%s[%s=%q]", c.Tag, c.Attr, c.Value)
	case KindTestID:
		return fmt.Sprintf("[data-testid=%q]", c.TestID)
	default:
		return ""
	}
}

// Chain is an ordered candidate list for one user intent.
type Chain struct {
	// Name describes the intent ("join button") for logs and errors.
	Name       string
	Candidates []Candidate
}

// NewChain builds a chain from candidates in preference order.
func NewChain(name string, candidates ...Candidate) Chain {
	return Chain{Name: name, Candidates: candidates}
}

// Selectors renders every candidate, in order.
func (ch Chain) Selectors() []string {
	out := make([]string, len(ch.Candidates))
	for i, c := range ch.Candidates {
		out[i] = c.Selector()
	}
	return out
}
