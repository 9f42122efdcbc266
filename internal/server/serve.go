// Package restapi exposes upload, preview and process endpoints over HTTP.
package restapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/regexify/regexify/internal/core"
	debuglog "github.com/regexify/regexify/internal/log"
	"github.com/regexify/regexify/internal/plugins/db/sqlite"
	"github.com/regexify/regexify/internal/storage"
)

const shutdownTimeout = 10 * time.Second

// NewEngine wires every route onto a fresh gin engine.
func NewEngine(processor *core.Processor, files *sqlite.FileRepository, uploads *storage.Uploads) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), newCORS())
	if debuglog.GetLevel() >= debuglog.Detailed {
		r.Use(gin.Logger())
	}
	r.MaxMultipartMemory = storage.MaxFileSize

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	NewFilesHandler(r, processor, files, uploads)
	return r
}

// newCORS allows any origin, as the browser frontend is served separately.
func newCORS() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:    []string{"Content-Type", "Authorization"},
		MaxAge:          12 * time.Hour,
	})
}

// Serve runs handler on address until ctx is done, then shuts down gracefully.
func Serve(ctx context.Context, address string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              address,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		debuglog.Log("listening on %s\n", address)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
