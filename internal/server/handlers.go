package server

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/job-assistant/internal/logger"
	"github.com/jonathan/job-assistant/internal/types"
)

// StatusResponse represents the response for /status
type StatusResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// AnswerResponse represents the response for /api/generate/answer
type AnswerResponse struct {
	Answer string `json:"answer"`
}

// JobSearchResponse represents the response for /api/jobs/search
type JobSearchResponse struct {
	Jobs  []types.ScoredJobPosting `json:"jobs"`
	Total int                      `json:"total"`
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, StatusResponse{
		Status:    "ok",
		Timestamp: s.now().Format(time.RFC3339),
	})
}

func (s *Server) handleAnalyzeResume(w http.ResponseWriter, r *http.Request) {
	var req types.ResumeAnalyzeRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	log := logger.FromContext(r.Context())
	log.Info("Analyzing resume", zap.String("jd_url", req.JDURL))

	result, err := s.analyzer.AnalyzeResume(r.Context(), req.Resume, req.JDURL)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	log.Info("Resume analysis completed", zap.Int("score", result.Score))
	s.jsonResponse(w, http.StatusOK, result)
}

func (s *Server) handleGenerateAnswer(w http.ResponseWriter, r *http.Request) {
	var req types.AnswerRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Info("Generating answer",
		zap.String("jd_url", req.JDURL),
		zap.String("question", logger.Truncate(req.Question, 50)),
	)

	answer, err := s.analyzer.GenerateAnswer(r.Context(), req.Profile, req.JDURL, req.Question)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, AnswerResponse{Answer: answer})
}

func (s *Server) handleSearchJobs(w http.ResponseWriter, r *http.Request) {
	var req types.JobSearchRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	query := req.Query()
	log := logger.FromContext(r.Context())
	log.Info("Searching jobs",
		zap.String("query", query.JobQuery),
		zap.String("location", query.Location),
		zap.Int("min_score", query.MinMatchScore),
	)

	jobs, err := s.matcher.FindMatches(r.Context(), req.Resume, query)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if jobs == nil {
		jobs = []types.ScoredJobPosting{}
	}

	log.Info("Job search completed", zap.Int("matches", len(jobs)))
	s.jsonResponse(w, http.StatusOK, JobSearchResponse{Jobs: jobs, Total: len(jobs)})
}
