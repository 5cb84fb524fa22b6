// Package skills normalizes free-text skill and theme tags and scores the
// overlap between a user's skill set and a hackathon's derived tag set.
package skills

import (
	"math"
	"sort"
	"strings"
)

// titleKeywords maps lowercase title substrings to the canonical tag they
// imply. This table is part of the matching contract, not an exhaustive
// taxonomy.
var titleKeywords = []struct {
	keyword string
	tag     string
}{
	{"ai", "AI/ML"},
	{"ai/ml", "AI/ML"},
	{"ml", "AI/ML"},
	{"agent", "AI/ML"},
	{"agents", "AI/ML"},
	{"productivity", "Productivity"},
	{"web3", "Web3"},
	{"blockchain", "Blockchain"},
	{"frontend", "Frontend"},
	{"react", "Frontend"},
	{"ui", "Frontend"},
	{"backend", "Backend"},
	{"node", "Backend"},
	{"api", "Backend"},
	{"mobile", "Mobile"},
	{"android", "Mobile"},
	{"ios", "Mobile"},
	{"education", "Education"},
	{"healthcare", "Healthcare"},
	{"cloud", "Cloud"},
	{"devops", "Cloud"},
	{"security", "Security"},
	{"cybersecurity", "Security"},
	{"data", "Data"},
	{"analytics", "Data"},
	{"beginner", "Beginner"},
	{"design", "Design"},
}

// skillAliases folds common synonyms into a canonical tag before any
// title-casing happens.
var skillAliases = map[string]string{
	"machine learning":        "AI/ML",
	"artificial intelligence": "AI/ML",
	"ai":                      "AI/ML",
	"ml":                      "AI/ML",
	"open source":             "Open Source",
	"ux":                      "Design",
}

func titleCase(value string) string {
	parts := strings.Split(value, " ")
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, " ")
}

// NormalizeTag canonicalizes a raw tag. Blank input normalizes to the empty
// string, which callers drop. Slash-separated compounds get each side
// title-cased independently ("job/internship" -> "Job/Internship").
func NormalizeTag(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	lowered := strings.ToLower(trimmed)
	if canonical, ok := skillAliases[lowered]; ok {
		return canonical
	}
	if lowered == "ai/ml" {
		return "AI/ML"
	}

	if strings.Contains(lowered, "/") {
		sides := strings.Split(lowered, "/")
		for i, side := range sides {
			sides[i] = titleCase(side)
		}
		return strings.Join(sides, "/")
	}

	return titleCase(lowered)
}

// DedupeTags normalizes a tag list and removes case-insensitive duplicates.
// The first-seen casing wins and first-appearance order is preserved.
func DedupeTags(values []string) []string {
	deduped := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, value := range values {
		normalized := NormalizeTag(value)
		if normalized == "" {
			continue
		}
		key := strings.ToLower(normalized)
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, normalized)
	}
	return deduped
}

// ExtractTags derives a hackathon's tag set: its themes plus any tags the
// title keywords imply, deduplicated.
func ExtractTags(title string, themes []string) []string {
	tags := make([]string, 0, len(themes)+4)
	tags = append(tags, themes...)

	lowered := strings.ToLower(title)
	for _, entry := range titleKeywords {
		if strings.Contains(lowered, entry.keyword) {
			tags = append(tags, entry.tag)
		}
	}

	return DedupeTags(tags)
}

// Overlap counts how many of the user's tags appear in the hackathon tag set,
// case-insensitively after normalization.
func Overlap(userSkills, hackathonTags []string) int {
	tags := make(map[string]bool, len(hackathonTags))
	for _, tag := range DedupeTags(hackathonTags) {
		tags[strings.ToLower(tag)] = true
	}

	overlap := 0
	for _, skill := range DedupeTags(userSkills) {
		if tags[strings.ToLower(skill)] {
			overlap++
		}
	}
	return overlap
}

// Score rates the alignment between user skills and hackathon tags from 0 to
// 100. Coverage of the user's skills is weighted over density of the
// hackathon's tag set; either side being empty scores zero.
func Score(userSkills, hackathonTags []string) int {
	user := DedupeTags(userSkills)
	tags := DedupeTags(hackathonTags)
	if len(user) == 0 || len(tags) == 0 {
		return 0
	}

	overlap := float64(Overlap(user, tags))
	coverage := overlap / float64(len(user))
	density := overlap / float64(len(tags))
	return int(math.Round((0.7*coverage + 0.3*density) * 100))
}

// TagSource is anything rankable: a title plus its theme set.
type TagSource struct {
	Title  string
	Themes []string
}

// Ranked points back at the input slice by index with its match metrics.
type Ranked struct {
	Index   int `json:"index"`
	Score   int `json:"matchScore"`
	Overlap int `json:"matchOverlap"`
}

// Rank orders sources descending by skill match score. Ties keep original
// input order; the sort must stay stable for that tie-break to hold.
func Rank(userSkills []string, sources []TagSource) []Ranked {
	ranked := make([]Ranked, len(sources))
	user := DedupeTags(userSkills)

	for i, source := range sources {
		ranked[i] = Ranked{Index: i}
		if len(user) == 0 {
			continue
		}
		tags := ExtractTags(source.Title, source.Themes)
		ranked[i].Overlap = Overlap(user, tags)
		ranked[i].Score = Score(user, tags)
	}

	sort.SliceStable(ranked, func(left, right int) bool {
		return ranked[left].Score > ranked[right].Score
	})

	return ranked
}
