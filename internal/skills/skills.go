// Package skills maps user-entered skills onto the search engine's language vocabulary.
package skills

import "strings"

// Popular is the catalogue offered for selection, in display order.
var Popular = []string{
	// Languages
	"JavaScript", "TypeScript", "Python", "Java", "Go", "Rust",
	"C++", "C#", "Ruby", "PHP", "Swift", "Kotlin",
	// Frontend
	"React", "Vue", "Angular", "Svelte", "Next.js",
	// Backend
	"Node.js", "Django", "Flask", "Spring", "Express",
	// Other
	"Docker", "Kubernetes", "GraphQL", "PostgreSQL", "MongoDB",
	"Tailwind", "CSS", "HTML",
}

// languageOf maps framework and tool names (lowercase) to the language GitHub indexes them under.
var languageOf = map[string]string{
	"react":    "javascript",
	"vue":      "javascript",
	"angular":  "typescript",
	"svelte":   "javascript",
	"next.js":  "typescript",
	"node.js":  "javascript",
	"django":   "python",
	"flask":    "python",
	"spring":   "java",
	"express":  "javascript",
	"tailwind": "css",
	"graphql":  "javascript",
}

// Normalize translates skills into search tokens. Matching is case-insensitive,
// unmapped skills pass through lowercased, and duplicates are dropped keeping the
// first occurrence. An empty result means "no language filter".
func Normalize(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		token := strings.ToLower(strings.TrimSpace(s))
		if token == "" {
			continue
		}
		if lang, ok := languageOf[token]; ok {
			token = lang
		}
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		out = append(out, token)
	}
	return out
}

// Dedupe trims skills and drops blanks and case-insensitive duplicates,
// keeping the first spelling and the selection order.
func Dedupe(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]struct{}, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}
	return out
}
