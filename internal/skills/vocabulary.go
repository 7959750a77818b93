// Package skills extracts canonical technical skill names from free text.
package skills

import "strings"

// defaultSkills is the canonical list, in output order.
var defaultSkills = []string{
	"Python", "Java", "JavaScript", "TypeScript", "React", "Node.js",
	"FastAPI", "Django", "Flask", "Spring Boot",
	"Docker", "Kubernetes", "AWS", "Azure", "GCP",
	"PostgreSQL", "MySQL", "MongoDB", "Redis", "Kafka", "RabbitMQ",
	"Microservices", "REST APIs", "GraphQL", "CI/CD",
	"Terraform", "Ansible", "Linux", "Git", "Agile", "Scrum",
	"Machine Learning", "TensorFlow", "PyTorch", "Spark", "Airflow", "ETL",
	"SQL", "NoSQL", "Elasticsearch", "Prometheus", "Grafana",
	"Jenkins", "GitHub Actions",
}

// Vocabulary is an ordered, immutable set of canonical skill names.
type Vocabulary struct {
	names   []string
	lowered []string
}

// NewVocabulary builds a vocabulary. Blank and case-insensitively repeated
// names are dropped; the first spelling wins.
func NewVocabulary(names []string) Vocabulary {
	v := Vocabulary{}
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		key := strings.ToLower(name)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		v.names = append(v.names, name)
		v.lowered = append(v.lowered, key)
	}
	return v
}

var defaultVocabulary = NewVocabulary(defaultSkills)

// DefaultVocabulary returns the vocabulary shipped with the assistant.
func DefaultVocabulary() Vocabulary {
	return defaultVocabulary
}

// Names returns a copy of the vocabulary entries in order.
func (v Vocabulary) Names() []string {
	out := make([]string, len(v.names))
	copy(out, v.names)
	return out
}

// Len reports the number of entries.
func (v Vocabulary) Len() int {
	return len(v.names)
}

// Extract returns every vocabulary entry that occurs in text as a
// case-insensitive substring, in vocabulary order. Matching is deliberately
// naive: "Java" is found inside "JavaScript".
func (v Vocabulary) Extract(text string) []string {
	haystack := strings.ToLower(text)
	found := []string{}
	for i, needle := range v.lowered {
		if strings.Contains(haystack, needle) {
			found = append(found, v.names[i])
		}
	}
	return found
}

// Extract runs the default vocabulary over text.
func Extract(text string) []string {
	return defaultVocabulary.Extract(text)
}
