package router

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"entitygraph/internal/app"
	"entitygraph/internal/domain"
	"entitygraph/internal/graph"
	"entitygraph/internal/topology"
	"entitygraph/pkg/util"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GraphHandler 暴露关系图的读写接口。
type GraphHandler struct {
	svc    *app.Service
	logger *zap.Logger
}

// NewGraphHandler 构建 GraphHandler。
func NewGraphHandler(svc *app.Service, logger *zap.Logger) *GraphHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GraphHandler{svc: svc, logger: logger}
}

// RegisterRoutes 注册到给定的路由组。
func (h *GraphHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/relationships", h.handleAddRelationship)
	rg.GET("/relationships", h.handleRelationships)
	rg.GET("/relationships/by-type", h.handleRelationshipsByType)
	rg.GET("/hierarchy", h.handleHierarchy)
	rg.GET("/related", h.handleRelated)
	rg.POST("/clusters/hierarchy", h.handleBuildCluster)

	g := rg.Group("/graph")
	g.GET("/validate", h.handleValidate)
	g.GET("/stats", h.handleStats)
	g.GET("/export", h.handleExport)
	g.POST("/rebuild", h.handleRebuild)
	g.POST("/publish", h.handlePublish)
	rg.DELETE("/graph", h.handleClear)
}

type addRelationshipRequest struct {
	Source   string              `json:"source_guid"`
	Target   string              `json:"target_guid"`
	Type     domain.RelationType `json:"type"`
	Metadata map[string]any      `json:"metadata"`
}

type buildClusterRequest struct {
	ClusterGUID string                   `json:"cluster_guid"`
	Entities    topology.ClusterEntities `json:"entities"`
}

func (h *GraphHandler) handleAddRelationship(c *gin.Context) {
	var req addRelationshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}
	if err := h.svc.Graph.AddRelationship(req.Source, req.Target, req.Type, req.Metadata); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, domain.Relationship{Source: req.Source, Target: req.Target, Type: req.Type, Metadata: req.Metadata})
}

func (h *GraphHandler) handleRelationships(c *gin.Context) {
	guid, ok := requireGUID(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.svc.Graph.Relationships(guid))
}

func (h *GraphHandler) handleRelationshipsByType(c *gin.Context) {
	guid, ok := requireGUID(c)
	if !ok {
		return
	}
	relType := domain.RelationType(strings.TrimSpace(c.Query("type")))
	if !h.svc.Graph.Registry().IsValid(relType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown relationship type " + strconv.Quote(string(relType))})
		return
	}
	dir := graph.Direction(c.DefaultQuery("direction", string(graph.DirectionOutgoing)))
	if dir != graph.DirectionOutgoing && dir != graph.DirectionIncoming {
		c.JSON(http.StatusBadRequest, gin.H{"error": "direction must be outgoing or incoming"})
		return
	}
	c.JSON(http.StatusOK, h.svc.Graph.RelationshipsByType(guid, relType, dir))
}

func (h *GraphHandler) handleHierarchy(c *gin.Context) {
	guid, ok := requireGUID(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, h.svc.Graph.Hierarchy(guid))
}

func (h *GraphHandler) handleRelated(c *gin.Context) {
	guid, ok := requireGUID(c)
	if !ok {
		return
	}
	depth := 1
	if raw := c.Query("depth"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "depth must be an integer"})
			return
		}
		depth = n
	}
	var filter []domain.RelationType
	for _, raw := range c.QueryArray("type") {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				filter = append(filter, domain.RelationType(t))
			}
		}
	}
	c.JSON(http.StatusOK, h.svc.Graph.RelatedEntities(guid, filter, depth))
}

func (h *GraphHandler) handleBuildCluster(c *gin.Context) {
	var req buildClusterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request payload"})
		return
	}
	res, err := h.svc.AttachTopology(req.ClusterGUID, req.Entities)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *GraphHandler) handleValidate(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Monitor(c.Request.Context()))
}

func (h *GraphHandler) handleStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Graph.Stats())
}

func (h *GraphHandler) handleExport(c *gin.Context) {
	export := h.svc.Graph.ExportForVisualization()
	etag, err := util.Fingerprint(export)
	if err != nil {
		h.writeError(c, err)
		return
	}
	etag = strconv.Quote(etag)
	if c.GetHeader("If-None-Match") == etag {
		c.Status(http.StatusNotModified)
		return
	}
	c.Header("ETag", etag)
	c.JSON(http.StatusOK, export)
}

func (h *GraphHandler) handleRebuild(c *gin.Context) {
	report, err := h.svc.Rebuild(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *GraphHandler) handlePublish(c *gin.Context) {
	res, err := h.svc.Publish(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *GraphHandler) handleClear(c *gin.Context) {
	h.svc.Graph.Clear()
	c.Status(http.StatusNoContent)
}

func (h *GraphHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidRelationshipType), errors.Is(err, domain.ErrMissingIdentifier):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, app.ErrPublishDisabled):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func requireGUID(c *gin.Context) (string, bool) {
	guid := strings.TrimSpace(c.Query("guid"))
	if guid == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "guid is required"})
		return "", false
	}
	return guid, true
}
