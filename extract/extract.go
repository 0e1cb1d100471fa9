// Package extract holds the shared field extractors used by every source
// adapter. All functions are total: any input, including empty or garbage
// strings, yields a value or nil, never a panic.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	numberRun  = regexp.MustCompile(`([\d.,]+)`)
	yearToken  = regexp.MustCompile(`(\d{4})`)
	digitRun   = regexp.MustCompile(`(\d+)`)
	nonNumeric = regexp.MustCompile(`[^0-9.,]`)
)

// Literal price values meaning "no price", in the languages the sources
// use. They parse to zero instead of going through the number path.
var noPriceLiterals = map[string]bool{
	"vb":             true,
	"not deductible": true,
	"δε διατίθεται":  true,
	"nc":             true,
}

// ParseAmount converts a free-text currency string into a number. It
// strips everything but digits and separators, then decides which
// separator (if any) is the decimal mark: only a final '.' or ',' followed
// by one or two digits counts, everything else is grouping. That handles
// both "1.234,56" and "€ 309,900.-" (which is 309900, not 309.9). Returns
// 0 when nothing parseable remains.
func ParseAmount(s string) float64 {
	if noPriceLiterals[strings.ToLower(strings.TrimSpace(s))] {
		return 0
	}
	cleaned := nonNumeric.ReplaceAllString(s, "")
	m := numberRun.FindString(cleaned)
	if m == "" {
		return 0
	}
	m = strings.Trim(m, ".,")

	sep := strings.LastIndexAny(m, ".,")
	decimal := ""
	if sep >= 0 {
		frac := m[sep+1:]
		if len(frac) >= 1 && len(frac) <= 2 && !strings.ContainsAny(frac, ".,") {
			decimal = frac
			m = m[:sep]
		}
	}
	m = strings.ReplaceAll(m, ".", "")
	m = strings.ReplaceAll(m, ",", "")
	if decimal != "" {
		m = m + "." + decimal
	}

	v, err := strconv.ParseFloat(m, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// ParseOptionalAmount is ParseAmount for fields where "no price" means
// absent rather than zero, e.g. priceWithoutTax.
func ParseOptionalAmount(s string) *float64 {
	if strings.TrimSpace(s) == "" || noPriceLiterals[strings.ToLower(strings.TrimSpace(s))] {
		return nil
	}
	v := ParseAmount(s)
	if v == 0 {
		return nil
	}
	return &v
}

// UnitNumber extracts the first integer immediately preceding one of the
// given unit tokens (kW, PS, km, bhp, cc, ...), case-insensitively.
// Grouping separators inside the number are dropped, but only separators
// followed by exactly three digits count as grouping, so the run never
// bleeds across neighboring fields in composite lines like
// "3/2004, 214.550 χλμ, 90 bhp". Returns nil when no unit-suffixed number
// is present.
func UnitNumber(s string, units ...string) *int {
	for _, unit := range units {
		re, err := regexp.Compile(`(?i)(\d{1,3}(?:[.,\s]\d{3})*|\d+)\s*` + regexp.QuoteMeta(unit))
		if err != nil {
			continue
		}
		m := re.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		digits := strings.Map(func(r rune) rune {
			if r >= '0' && r <= '9' {
				return r
			}
			return -1
		}, m[1])
		if digits == "" {
			continue
		}
		v, err := strconv.Atoi(digits)
		if err != nil {
			continue
		}
		return &v
	}
	return nil
}

// LeadingInt pulls the first run of digits out of a string, ignoring any
// unit suffix. Used for sources that publish bare figures like "166 PS"
// where the unit is not trusted. Returns nil when the string has no digits.
func LeadingInt(s string) *int {
	m := digitRun.FindString(s)
	if m == "" {
		return nil
	}
	v, err := strconv.Atoi(m)
	if err != nil {
		return nil
	}
	return &v
}

// GroupedInt extracts the first number run from a string, dropping any
// grouping separators: "126.250 km" and "126,250" both yield 126250.
// Returns nil when the string has no digits.
func GroupedInt(s string) *int {
	m := numberRun.FindString(s)
	if m == "" {
		return nil
	}
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, m)
	if digits == "" {
		return nil
	}
	v, err := strconv.Atoi(digits)
	if err != nil {
		return nil
	}
	return &v
}

// YearOf extracts a registration/production year from the date shapes the
// sources publish: "MM/YYYY", "DD/MM/YYYY", a bare "YYYY", or free text
// containing a 4-digit year ("Juni 2004"). Returns nil when no plausible
// year is found.
func YearOf(s string) *int {
	m := yearToken.FindString(s)
	if m == "" {
		return nil
	}
	v, err := strconv.Atoi(m)
	if err != nil || v < 1000 {
		return nil
	}
	return &v
}

// MainModel reduces a multi-word model string to its first
// whitespace-delimited token. "A4 TFSI quattro" becomes "A4". The trim
// detail is deliberately discarded; the sources disagree on everything
// past the first token.
func MainModel(full string) string {
	fields := strings.Fields(full)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// SplitTitle breaks a free-text title into (brand, remainder). The brand
// is the first token; the remainder is everything after it.
func SplitTitle(title string) (brand, rest string) {
	fields := strings.Fields(title)
	if len(fields) == 0 {
		return "", ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}

// PlainText flattens a scraped free-text fragment that may carry HTML
// markup into plain text. When the fragment contains no markup (or cannot
// be parsed at all) the input comes back trimmed but otherwise unchanged.
func PlainText(s string) string {
	if !strings.ContainsAny(s, "<>") {
		return strings.TrimSpace(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(doc.Text())
}

// SplitWords tokenizes a description into tag words, dropping the given
// stop words (field labels the scrapers leak into descriptions).
func SplitWords(s string, stopWords ...string) []string {
	stops := make(map[string]bool, len(stopWords))
	for _, w := range stopWords {
		stops[w] = true
	}
	var words []string
	for _, w := range strings.Fields(PlainText(s)) {
		if stops[w] {
			continue
		}
		words = append(words, w)
	}
	return words
}

// DoorsFromTags scans tag strings for a door count ("5 doors", "3-door",
// "5 πόρτες"). Falls back to the conventional 4 when nothing matches.
func DoorsFromTags(tags []string) int {
	for _, tag := range tags {
		lower := strings.ToLower(tag)
		if !strings.Contains(lower, "door") && !strings.Contains(lower, "πόρτ") {
			continue
		}
		if n := LeadingInt(tag); n != nil {
			return *n
		}
	}
	return 4
}

// FirstURL keeps only the first whitespace-delimited token of an image
// entry; some sources pack srcset-style alternates into one string.
func FirstURL(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return s
	}
	return fields[0]
}
