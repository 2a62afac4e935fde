package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/aha-designer/backend/internal/domain"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// maxNormalizeBody bounds captured responses posted for offline normalization
const maxNormalizeBody = 10 << 20

// PartsSearcher is the parts search usecase as seen by the HTTP layer
type PartsSearcher interface {
	Search(ctx context.Context, request *domain.SearchRequest) ([]domain.PartHit, error)
	Normalize(body []byte, maxResults *int) ([]domain.PartHit, error)
}

// Handler holds dependencies for HTTP handlers. Any of them may be nil, in
// which case the matching endpoints answer 501.
type Handler struct {
	search    PartsSearcher
	workspace domain.WorkspaceRepository
	tools     domain.ToolRunner
	logger    *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(search PartsSearcher, workspace domain.WorkspaceRepository, tools domain.ToolRunner, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		search:    search,
		workspace: workspace,
		tools:     tools,
		logger:    logger,
	}
}

type saveWorkspaceRequest struct {
	Path  string          `json:"path"`
	Graph json.RawMessage `json:"graph"`
}

type thermalRequest struct {
	Graph   json.RawMessage `json:"graph"`
	Profile string          `json:"profile"`
}

type gitRequest struct {
	Args []string `json:"args"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "aha-designer-backend",
		"version": "0.1.0",
	})
}

// SearchParts handles live inventory searches
func (h *Handler) SearchParts(c *gin.Context) {
	if h.search == nil {
		notConfigured(c, "parts search")
		return
	}

	var request domain.SearchRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respondError(c, badRequest("invalid request body: "+err.Error()))
		return
	}

	hits, err := h.search.Search(c.Request.Context(), &request)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, hits)
}

// NormalizeParts runs the normalization engine over a posted response body
func (h *Handler) NormalizeParts(c *gin.Context) {
	if h.search == nil {
		notConfigured(c, "parts search")
		return
	}

	var maxResults *int
	if raw := c.Query("maxResults"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, badRequest("maxResults must be an integer"))
			return
		}
		maxResults = &n
	}

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxNormalizeBody))
	if err != nil {
		respondError(c, badRequest("failed to read request body: "+err.Error()))
		return
	}

	hits, err := h.search.Normalize(body, maxResults)
	if err != nil {
		// the caller supplied this body, so unparseable JSON is their error
		if errors.Is(err, domain.ErrMalformedResponse) {
			err = fmt.Errorf("%w: %w", domain.ErrInvalidRequest, err)
		}
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, hits)
}

// SaveWorkspace stores a design graph
func (h *Handler) SaveWorkspace(c *gin.Context) {
	if h.workspace == nil {
		notConfigured(c, "workspace storage")
		return
	}

	var request saveWorkspaceRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respondError(c, badRequest("invalid request body: "+err.Error()))
		return
	}
	if len(request.Graph) == 0 {
		respondError(c, badRequest("graph is required"))
		return
	}

	path, err := h.workspace.Save(c.Request.Context(), request.Path, request.Graph)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"path": path})
}

// LoadWorkspace returns a stored design graph as-is
func (h *Handler) LoadWorkspace(c *gin.Context) {
	if h.workspace == nil {
		notConfigured(c, "workspace storage")
		return
	}

	graph, err := h.workspace.Load(c.Request.Context(), c.Query("path"))
	if err != nil {
		h.fail(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json; charset=utf-8", graph)
}

// RunThermalSimulation runs the simulator for a graph and profile
func (h *Handler) RunThermalSimulation(c *gin.Context) {
	if h.tools == nil {
		notConfigured(c, "thermal simulation")
		return
	}

	var request thermalRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respondError(c, badRequest("invalid request body: "+err.Error()))
		return
	}
	if len(request.Graph) == 0 {
		respondError(c, badRequest("graph is required"))
		return
	}

	output, err := h.tools.RunThermalSimulation(c.Request.Context(), request.Graph, request.Profile)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"output": output})
}

// ExecuteGit runs a git command in the workspace
func (h *Handler) ExecuteGit(c *gin.Context) {
	if h.tools == nil {
		notConfigured(c, "git")
		return
	}

	var request gitRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		respondError(c, badRequest("invalid request body: "+err.Error()))
		return
	}
	if len(request.Args) == 0 {
		respondError(c, badRequest("args are required"))
		return
	}

	output, err := h.tools.ExecuteGit(c.Request.Context(), request.Args)
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"output": output})
}

func badRequest(msg string) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidRequest, msg)
}

func notConfigured(c *gin.Context, feature string) {
	c.JSON(http.StatusNotImplemented, gin.H{"error": feature + " not configured"})
}

// statusFor maps domain errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrWorkspaceNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, errOriginNotAllowed):
		return http.StatusForbidden
	case errors.Is(err, errUnsupportedMediaType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, domain.ErrTransportFailure),
		errors.Is(err, domain.ErrUpstreamFailure),
		errors.Is(err, domain.ErrMalformedResponse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// fail answers with the mapped status and logs server-side failures
func (h *Handler) fail(c *gin.Context, err error) {
	if status := statusFor(err); status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("request_id", RequestID(c)),
			zap.String("path", c.FullPath()),
			zap.Int("status", status),
			zap.Error(err))
	}
	respondError(c, err)
}

func respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(statusFor(err), gin.H{"error": err.Error()})
}
