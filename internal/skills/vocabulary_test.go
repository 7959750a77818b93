package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultVocabulary(t *testing.T) {
	v := DefaultVocabulary()
	assert.Equal(t, 44, v.Len())

	names := v.Names()
	assert.Equal(t, "Python", names[0])
	assert.Equal(t, "GitHub Actions", names[len(names)-1])

	names[0] = "Cobol"
	assert.Equal(t, "Python", DefaultVocabulary().Names()[0], "Names must return a copy")
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "case insensitive",
			text: "Strong PYTHON and docker skills",
			want: []string{"Python", "Docker"},
		},
		{
			name: "vocabulary order, not text order",
			text: "Kubernetes, then Docker, then Python",
			want: []string{"Python", "Docker", "Kubernetes"},
		},
		{
			name: "substring matching finds Java inside JavaScript",
			text: "Senior JavaScript developer",
			want: []string{"Java", "JavaScript"},
		},
		{
			name: "repeats reported once",
			text: "aws aws AWS",
			want: []string{"AWS"},
		},
		{
			name: "multi-word and punctuated entries",
			text: "Built CI/CD with GitHub Actions on Node.js, exposed REST APIs",
			want: []string{"Node.js", "REST APIs", "CI/CD", "Git", "GitHub Actions"},
		},
		{
			name: "SQL matched inside PostgreSQL and NoSQL",
			text: "PostgreSQL and NoSQL stores",
			want: []string{"PostgreSQL", "SQL", "NoSQL"},
		},
		{
			name: "empty text",
			text: "",
			want: []string{},
		},
		{
			name: "nothing known",
			text: "Cooking, gardening and carpentry",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Extract(tt.text))
		})
	}
}

func TestExtract_Deterministic(t *testing.T) {
	text := "Python Django PostgreSQL Redis Docker Kubernetes AWS Terraform"
	first := Extract(text)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Extract(text))
	}
}

func TestNewVocabulary(t *testing.T) {
	v := NewVocabulary([]string{"Go", " go ", "", "Rust", "gRPC"})
	assert.Equal(t, []string{"Go", "Rust", "gRPC"}, v.Names())
	assert.Equal(t, []string{"Go", "gRPC"}, v.Extract("Go services over GRPC"))
}
