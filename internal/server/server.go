package server

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/promptner/promptner/internal/config"
	"github.com/promptner/promptner/internal/model"
	"github.com/promptner/promptner/internal/pipeline"
	"github.com/promptner/promptner/internal/store"
)

type Server struct {
	Pipeline *pipeline.Pipeline
	Store    *store.Store
	batch    int
}

// NewServer loads configuration, assembles the pipeline and connects the
// optional annotation store. Any assembly violation is fatal here; once
// the server is up, per-document problems only ever surface as warnings.
func NewServer() *Server {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	applyEnvOverrides(cfg)

	p, err := pipeline.Assemble(context.Background(), cfg, pipeline.DefaultRegistry())
	if err != nil {
		log.Fatalf("Failed to assemble pipeline: %v", err)
	}

	var st *store.Store
	if cfg.Store != nil && cfg.Store.URI != "" {
		st, err = store.New(cfg.Store.URI, cfg.Store.User, cfg.Store.Password)
		if err != nil {
			log.Fatalf("Failed to connect to annotation store: %v", err)
		}
		if err := st.BuildIndices(context.Background()); err != nil {
			log.Printf("Warning: failed to build store indices: %v", err)
		}
	}

	batch := cfg.Concurrency.Batch
	if batch < 1 {
		batch = 1
	}

	return &Server{
		Pipeline: p,
		Store:    st,
		batch:    batch,
	}
}

// applyEnvOverrides lets deployment env vars override the model binding of
// every configured component.
func applyEnvOverrides(cfg *config.Config) {
	provider := os.Getenv("LLM_PROVIDER")
	modelName := os.Getenv("LLM_MODEL")
	apiKey := os.Getenv("LLM_API_KEY")
	baseURL := os.Getenv("LLM_BASE_URL")

	for name, cc := range cfg.Components {
		if provider != "" {
			cc.Model.Provider = provider
		}
		if modelName != "" {
			cc.Model.Model = modelName
		}
		if apiKey != "" {
			cc.Model.APIKey = apiKey
		}
		if baseURL != "" {
			cc.Model.BaseURL = baseURL
		}
		cfg.Components[name] = cc
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", s.Health)
	r.POST("/annotate", s.Annotate)
	r.POST("/annotate/batch", s.AnnotateBatch)

	return r
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"lang":       s.Pipeline.Lang().String(),
		"components": s.Pipeline.Components(),
	})
}

type AnnotateRequest struct {
	Text string `json:"text" binding:"required"`
}

func (s *Server) Annotate(c *gin.Context) {
	var req AnnotateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	doc, err := s.Pipeline.ProcessText(c.Request.Context(), req.Text)
	if err != nil {
		log.Printf("Failed to process document: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process document"})
		return
	}

	s.persist(c.Request.Context(), doc)
	c.JSON(http.StatusOK, doc)
}

type AnnotateBatchRequest struct {
	Texts []string `json:"texts" binding:"required"`
}

func (s *Server) AnnotateBatch(c *gin.Context) {
	var req AnnotateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	docs := make([]*model.Document, len(req.Texts))
	for i, text := range req.Texts {
		docs[i] = model.NewDocument(text)
	}

	results, err := s.Pipeline.ProcessBatch(c.Request.Context(), docs, s.batch)
	if err != nil {
		log.Printf("Failed to process batch: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process batch"})
		return
	}

	for _, doc := range results {
		s.persist(c.Request.Context(), doc)
	}
	c.JSON(http.StatusOK, gin.H{"documents": results})
}

func (s *Server) persist(ctx context.Context, doc *model.Document) {
	if s.Store == nil {
		return
	}
	if err := s.Store.SaveDocument(ctx, doc); err != nil {
		log.Printf("Failed to persist document %s: %v", doc.ID, err)
	}
}
