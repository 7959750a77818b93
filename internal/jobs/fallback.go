package jobs

import (
	"context"

	"github.com/jonathan/job-assistant/internal/types"
)

// FallbackName identifies the fixed catalog in logs and metrics.
const FallbackName = "fallback"

var fallbackCatalog = []types.JobPosting{
	{
		Title:          "Senior Python Developer",
		Company:        "Tech Innovations Inc",
		Location:       "Remote",
		Description:    "We are seeking a Senior Python Developer with expertise in FastAPI, Django, and cloud technologies. You will work on building scalable microservices and APIs. Required skills include Python, FastAPI, PostgreSQL, Docker, AWS, and experience with CI/CD pipelines.",
		URL:            "https://example.com/jobs/senior-python-dev",
		RequiredSkills: []string{"Python", "FastAPI", "PostgreSQL", "Docker", "AWS", "CI/CD", "Microservices"},
	},
	{
		Title:          "Full Stack Engineer",
		Company:        "StartupXYZ",
		Location:       "San Francisco, CA",
		Description:    "Join our fast-growing startup as a Full Stack Engineer. Work with React, Node.js, Python, and MongoDB. Build innovative products from scratch. Looking for someone with 3+ years experience in full stack development.",
		URL:            "https://example.com/jobs/fullstack-engineer",
		RequiredSkills: []string{"React", "Node.js", "Python", "MongoDB", "JavaScript", "REST APIs", "Git"},
	},
	{
		Title:          "Backend Software Engineer",
		Company:        "CloudTech Solutions",
		Location:       "New York, NY",
		Description:    "Backend engineer needed for cloud-native applications. Experience with Python, Django, Kubernetes, and AWS required. You'll design and implement RESTful APIs and work with distributed systems.",
		URL:            "https://example.com/jobs/backend-engineer",
		RequiredSkills: []string{"Python", "Django", "Kubernetes", "AWS", "REST APIs", "PostgreSQL", "Redis"},
	},
	{
		Title:          "DevOps Engineer",
		Company:        "Infrastructure Co",
		Location:       "Remote",
		Description:    "We need a DevOps engineer to manage our cloud infrastructure. Terraform, Docker, Kubernetes, AWS, and Python scripting experience required. Help us build CI/CD pipelines and improve deployment processes.",
		URL:            "https://example.com/jobs/devops-engineer",
		RequiredSkills: []string{"Docker", "Kubernetes", "Terraform", "AWS", "CI/CD", "Python", "Linux"},
	},
	{
		Title:          "Data Engineer",
		Company:        "BigData Corp",
		Location:       "Austin, TX",
		Description:    "Build data pipelines using Python, Spark, and Airflow. Work with large-scale datasets and design ETL processes. Experience with SQL, NoSQL databases, and cloud platforms required.",
		URL:            "https://example.com/jobs/data-engineer",
		RequiredSkills: []string{"Python", "Spark", "Airflow", "SQL", "AWS", "ETL", "Data Modeling"},
	},
	{
		Title:          "Machine Learning Engineer",
		Company:        "AI Startups Ltd",
		Location:       "Remote",
		Description:    "ML Engineer to build and deploy machine learning models. TensorFlow, PyTorch, Python, and cloud experience required. Work on cutting-edge AI applications.",
		URL:            "https://example.com/jobs/ml-engineer",
		RequiredSkills: []string{"Python", "TensorFlow", "PyTorch", "Machine Learning", "AWS", "Docker", "MLOps"},
	},
	{
		Title:          "Software Development Engineer",
		Company:        "Enterprise Solutions Inc",
		Location:       "Seattle, WA",
		Description:    "SDE role working on enterprise applications. Java, Spring Boot, and microservices experience preferred. Work with distributed systems and cloud technologies.",
		URL:            "https://example.com/jobs/sde",
		RequiredSkills: []string{"Java", "Spring Boot", "Microservices", "AWS", "PostgreSQL", "Kafka", "Docker"},
	},
	{
		Title:          "Cloud Solutions Architect",
		Company:        "CloudFirst Technologies",
		Location:       "Remote",
		Description:    "Design cloud infrastructure for enterprise clients. AWS, Azure, Terraform, and Python automation skills needed. 5+ years cloud architecture experience required.",
		URL:            "https://example.com/jobs/cloud-architect",
		RequiredSkills: []string{"AWS", "Azure", "Terraform", "Python", "Kubernetes", "Architecture", "Security"},
	},
	{
		Title:          "API Developer",
		Company:        "Integration Systems",
		Location:       "Boston, MA",
		Description:    "Build robust APIs using FastAPI and Python. Work with microservices architecture, PostgreSQL, and deploy to AWS. Experience with API design and documentation required.",
		URL:            "https://example.com/jobs/api-developer",
		RequiredSkills: []string{"Python", "FastAPI", "REST APIs", "PostgreSQL", "Docker", "AWS", "Swagger"},
	},
	{
		Title:          "Platform Engineer",
		Company:        "TechScale Inc",
		Location:       "Remote",
		Description:    "Platform engineering role focused on developer experience. Build internal tools and platforms using Python, Kubernetes, and cloud services. Strong automation and DevOps background needed.",
		URL:            "https://example.com/jobs/platform-engineer",
		RequiredSkills: []string{"Python", "Kubernetes", "Docker", "AWS", "Terraform", "CI/CD", "Automation"},
	},
}

// FallbackSource serves a fixed catalog of postings. It ignores the search
// terms; filtering happens in the matching pipeline.
type FallbackSource struct{}

// NewFallbackSource returns the fixed catalog source.
func NewFallbackSource() FallbackSource {
	return FallbackSource{}
}

// Name implements Source.
func (FallbackSource) Name() string { return FallbackName }

// ListPostings returns copies of the catalog, capped at maxResults when positive.
func (FallbackSource) ListPostings(_ context.Context, _, _ string, maxResults int) []types.JobPosting {
	n := len(fallbackCatalog)
	if maxResults > 0 && maxResults < n {
		n = maxResults
	}
	out := make([]types.JobPosting, n)
	for i := 0; i < n; i++ {
		out[i] = fallbackCatalog[i].Clone()
	}
	return out
}
