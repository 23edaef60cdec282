package parse

import (
	"regexp"
	"strings"
)

// --- company ---

var (
	// ycPrefix strips cohort-program batch tokens ("YC W24 | ") that lead
	// many first lines.
	ycPrefix    = regexp.MustCompile(`^YC\s*[SW]\d+\s*\|?\s*`)
	pipeSuffix  = regexp.MustCompile(`\s*\|.*$`)
	parenSuffix = regexp.MustCompile(`\s*\(.*\)$`)

	// firstLineProse rejects first lines that read as a sentence rather than
	// a "Company | Role | Location" header; those fall through to the
	// pattern cascade, which can pull the company out of the sentence.
	firstLineProse = regexp.MustCompile(`(?i)\b(?:hiring|looking|seeking|apply)\b|https?://|\bwww\.`)

	companyPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?im)(?:\bat|@)\s+([A-Z][\w\s&,.\-]+?)(?:\s*\||$)`),
		regexp.MustCompile(`(?im)^([A-Z][\w\s&,.\-]+?)\s+(?:is|are)\s+(?:hiring|looking|seeking)`),
		regexp.MustCompile(`(?im)(?:Company|We are|About)\s*:\s*([A-Z][\w\s&,.\-]+?)(?:\s*\||$)`),
		regexp.MustCompile(`(?im)([A-Z][a-zA-Z0-9\s&,.\-]{2,30})\s*(?:-|–|is|are)\s*(?:hiring|looking|seeking)`),
		regexp.MustCompile(`(?im)^([A-Z][a-zA-Z0-9\s&,.\-]{2,50})\s*(?:\||$)`),
		regexp.MustCompile(`(?im)(?:we\s+at|team\s+at)\s+([A-Z][\w\s&,.\-]+?)(?:\s|$)`),
	}

	companyDisqualifiers = []string{"http", "www", "email", "looking", "hiring"}
)

// extractCompany tries the header-style first line, then the pattern cascade.
func extractCompany(text string) string {
	if c := companyFromFirstLine(text); c != "" {
		return c
	}

	for _, pattern := range companyPatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		company := strings.TrimSpace(m[1])
		if len(company) > 2 && !containsAny(strings.ToLower(company), companyDisqualifiers) {
			return company
		}
	}
	return ""
}

// companyFromFirstLine handles the common "Company | Role | Location" header:
// the first line, stripped of batch prefixes and pipe/parenthetical suffixes,
// is the company, unless it reads as prose.
func companyFromFirstLine(text string) string {
	line, _, _ := strings.Cut(text, "\n")
	line = strings.TrimSpace(line)
	line = ycPrefix.ReplaceAllString(line, "")
	line = pipeSuffix.ReplaceAllString(line, "")
	line = parenSuffix.ReplaceAllString(line, "")
	line = strings.TrimSpace(line)

	if len(line) <= 2 || len(line) >= 100 {
		return ""
	}
	if firstLineProse.MatchString(line) {
		return ""
	}
	return line
}

// --- role ---

var (
	rolePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:hiring|seeking|looking for|need)\s+(?:a|an)?\s*([A-Za-z\s\-/]+?)(?:\s*\||\.|\n|$)`),
		regexp.MustCompile(`(?i)(?:Position|Role|Title)\s*:\s*([A-Za-z\s\-/]+?)(?:\s*\||\n|$)`),
		regexp.MustCompile(`(?i)(?:Software|Senior|Junior|Staff|Principal)\s+([A-Za-z\s\-/]+?)(?:\s*\||\.|\n|$)`),
		regexp.MustCompile(`(?i)(?:we're|we are)\s+(?:hiring|looking for)\s+(?:a|an)?\s*([A-Za-z\s\-/]+?)(?:\s*\||\n|$)`),
		regexp.MustCompile(`(?i)(?:join us as|join our team as)\s+(?:a|an)?\s*([A-Za-z\s\-/]+?)(?:\s*\||\n|$)`),
		regexp.MustCompile(`(?i)([A-Za-z\s\-/]+?)\s+(?:position|role|opportunity)(?:\s*\||\n|$)`),
	}

	// roleStopWords disqualify captures that grabbed sentence filler.
	roleStopWords = []string{"the", "our", "we", "you", "and", "or"}

	// roleNouns drive the fallback scan when no phrase pattern matched.
	roleNouns = []string{
		"engineer", "developer", "designer", "manager", "analyst",
		"scientist", "researcher", "architect", "consultant", "specialist",
		"intern", "internship", "graduate", "junior", "senior", "lead",
	}
)

// extractRole tries the phrase cascade, then falls back to scanning for a
// known role noun and returning its local phrase context.
func extractRole(text string) string {
	for _, pattern := range rolePatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		role := strings.TrimSpace(m[1])
		if len(role) > 3 && !containsAny(strings.ToLower(role), roleStopWords) {
			return role
		}
	}

	lower := strings.ToLower(text)
	for _, noun := range roleNouns {
		if !strings.Contains(lower, noun) {
			continue
		}
		ctx := regexp.MustCompile(`(?i)([A-Za-z\s\-/]*` + noun + `[A-Za-z\s\-/]*)`)
		m := ctx.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		role := strings.TrimSpace(m[1])
		if len(role) > 3 && len(role) < 50 {
			return role
		}
	}
	return ""
}

// --- location ---

var (
	locationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:Location|Based in|Office)\s*:\s*([A-Za-z\s,\-]+?)(?:\s*\||\n|$)`),
		regexp.MustCompile(`(?i)(?:in|at)\s+(?:our)?\s*([A-Z][A-Za-z\s,]+?)\s+(?:office|location|HQ)`),
	}

	// knownCities is a fixed scan list for postings that mention a city
	// without any labeling.
	knownCities = []string{
		"San Francisco", "New York", "NYC", "London", "Berlin", "Tokyo",
		"Seattle", "Boston", "Austin", "Denver", "Toronto", "Vancouver",
		"Los Angeles", "Chicago", "Paris", "Amsterdam", "Singapore",
		"Hong Kong", "Sydney", "Melbourne", "Dublin", "Tel Aviv",
	}
)

func extractLocation(text string) string {
	for _, pattern := range locationPatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	for _, city := range knownCities {
		if strings.Contains(text, city) {
			return city
		}
	}
	return ""
}

// --- salary ---

var (
	salaryRangePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:\$|USD|€|EUR|£|GBP)\s*(\d{1,3}(?:,\d{3})*[kK]?)\s*(?:-|to|–)\s*(?:\$|USD|€|EUR|£|GBP)?\s*(\d{1,3}(?:,\d{3})*[kK]?)`),
		regexp.MustCompile(`(?i)(\d{1,3}(?:,\d{3})*[kK]?)\s*(?:-|to|–)\s*(\d{1,3}(?:,\d{3})*[kK]?)\s*(?:\$|USD|€|EUR|£|GBP)`),
	}
	salaryLabelPattern = regexp.MustCompile(`(?i)(?:salary|compensation|pay)\s*(?:range)?[:\s]+([^\n]+?)(?:\n|$)`)
)

func extractSalary(text string) string {
	for _, pattern := range salaryRangePatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			return m[1] + " - " + m[2]
		}
	}
	if m := salaryLabelPattern.FindStringSubmatch(text); m != nil {
		salary := strings.TrimSpace(m[1])
		if len(salary) < 100 {
			return salary
		}
	}
	return ""
}
