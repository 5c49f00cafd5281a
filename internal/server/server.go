// Package server exposes datasets and their filtered curb regulations over
// HTTP.
package server

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mesh-intelligence/curbmap/internal/cache"
	"github.com/mesh-intelligence/curbmap/internal/dataset"
	"github.com/mesh-intelligence/curbmap/internal/engine"
	"github.com/mesh-intelligence/curbmap/internal/metrics"
	"github.com/mesh-intelligence/curbmap/pkg/types"
)

// Server holds the HTTP handlers and their dependencies.
type Server struct {
	catalog     *dataset.Catalog
	cache       cache.Cache
	filter      *engine.Filter
	logger      *slog.Logger
	defaultDay  string
	defaultTime string
	router      *gin.Engine
}

// Options are the dependencies of a Server. Cache may be nil.
type Options struct {
	Catalog     *dataset.Catalog
	Cache       cache.Cache
	Filter      *engine.Filter
	Logger      *slog.Logger
	DefaultDay  string
	DefaultTime string
}

// New builds a Server and its routes.
func New(opts Options) *Server {
	s := &Server{
		catalog:     opts.Catalog,
		cache:       opts.Cache,
		filter:      opts.Filter,
		logger:      opts.Logger,
		defaultDay:  opts.DefaultDay,
		defaultTime: opts.DefaultTime,
	}
	if s.cache == nil {
		s.cache = cache.Noop{}
	}
	if s.filter == nil {
		s.filter = engine.New()
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.defaultDay == "" {
		s.defaultDay = types.DefaultDay
	}
	if s.defaultTime == "" {
		s.defaultTime = types.DefaultTime
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestID(), accessLog(s.logger))
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api")
	{
		api.GET("/datasets", s.listDatasets)
		api.GET("/datasets/:name", s.getDataset)
		api.GET("/datasets/:name/curblr", s.filterDataset)
	}
	s.router = r
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// datasetInfo is the JSON view of a dataset.
type datasetInfo struct {
	Name     string    `json:"name"`
	Label    string    `json:"label"`
	Features int       `json:"features,omitempty"`
	BBox     []float64 `json:"bbox,omitempty"`
}

func (s *Server) listDatasets(c *gin.Context) {
	entries, err := s.catalog.List()
	if err != nil {
		s.fail(c, err)
		return
	}
	out := make([]datasetInfo, 0, len(entries))
	for _, e := range entries {
		out = append(out, datasetInfo{Name: e.Name, Label: e.Label})
	}
	c.JSON(http.StatusOK, gin.H{"datasets": out})
}

func (s *Server) getDataset(c *gin.Context) {
	ds, err := s.catalog.Load(c.Param("name"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, datasetInfo{
		Name:     ds.Name,
		Label:    ds.Label,
		Features: len(ds.Collection.Features),
		BBox:     ds.Bounds.BBox(),
	})
}

// filterDataset serves GET /api/datasets/:name/curblr?day=mo&time=08:00.
// Missing parameters use the configured defaults. Unknown tokens are not an
// error: every feature then carries the default regulation.
func (s *Server) filterDataset(c *gin.Context) {
	name := c.Param("name")
	ds, err := s.catalog.Load(name)
	if err != nil {
		s.fail(c, err)
		return
	}
	q := types.NewQuery(c.DefaultQuery("day", s.defaultDay), c.DefaultQuery("time", s.defaultTime))
	if !q.Valid() {
		s.logger.Info("query matches no regulation",
			"dataset", name, "day", c.Query("day"), "time", c.Query("time"))
	}

	ctx := c.Request.Context()
	key := cache.Key(name, ds.Version, q)
	if body, ok, err := s.cache.Get(ctx, key); err != nil {
		s.logger.Warn("cache get failed", "key", key, "err", err)
	} else if ok {
		metrics.CacheHitsTotal.Inc()
		c.Header("X-Cache", "hit")
		c.Data(http.StatusOK, "application/geo+json", body)
		return
	}
	metrics.CacheMissesTotal.Inc()

	start := time.Now()
	out, stats, err := s.filter.Run(ds.Collection, q)
	if err != nil {
		s.fail(c, err)
		return
	}
	metrics.ObserveFilter(name, stats, float64(time.Since(start).Microseconds())/1000)

	var buf bytes.Buffer
	if err := types.EncodeCollection(&buf, out, ""); err != nil {
		s.fail(c, err)
		return
	}
	body := buf.Bytes()
	if err := s.cache.Set(ctx, key, body); err != nil {
		s.logger.Warn("cache set failed", "key", key, "err", err)
	}
	c.Header("X-Cache", "miss")
	c.Data(http.StatusOK, "application/geo+json", body)
}

// fail maps an error to a status code and a JSON error body.
func (s *Server) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, types.ErrDatasetNotFound):
		status = http.StatusNotFound
	case errors.Is(err, types.ErrInvalidCollection),
		errors.Is(err, types.ErrMissingLocation),
		errors.Is(err, types.ErrMissingOffsets),
		errors.Is(err, types.ErrMissingRegulations):
		status = http.StatusUnprocessableEntity
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", c.Request.URL.Path, "err", err)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
