// Package server is the HTTP front end: it accepts a resume upload and a job
// description and returns the optimized resume.
package server

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/diyaj1210/AI-Resume-Optimiser/internal/service"
)

// Runner is the part of service.Service the handlers need.
type Runner interface {
	Run(ctx context.Context, upload service.Upload, jobDescription string) (*service.Outcome, error)
}

type Options struct {
	Version        string
	MaxUploadBytes int64
	AllowedOrigins []string
}

// NewRouter builds the gin engine with all routes registered.
func NewRouter(runner Runner, opts Options) *gin.Engine {
	h := &Handler{runner: runner, maxUpload: opts.MaxUploadBytes, version: opts.Version}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	if opts.MaxUploadBytes > 0 {
		router.MaxMultipartMemory = opts.MaxUploadBytes
	}

	if len(opts.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     opts.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
			ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/health", h.HealthCheck)

	api := router.Group("/api")
	{
		api.GET("/sample-job-description", h.SampleJobDescription)
		api.POST("/optimize", h.Optimize)
	}
	return router
}
