package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/Depado/ginprom"
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/rm-hull/screenshot-redactor/internal"
	"github.com/rm-hull/screenshot-redactor/internal/imaging"
	healthcheck "github.com/tavsec/gin-healthcheck"
	"github.com/tavsec/gin-healthcheck/checks"
	hc_config "github.com/tavsec/gin-healthcheck/config"
)

func ApiServer(configPath string, port int, debug bool) {
	internal.ShowVersion()
	internal.UserInfo()
	internal.EnvironmentVars()

	cfg, err := internal.LoadConfig(configPath)
	if err != nil {
		log.Fatal(err)
	}

	redactor, err := internal.NewRedactor(cfg)
	if err != nil {
		log.Fatal(err)
	}

	r := gin.New()

	prometheus := ginprom.New(
		ginprom.Engine(r),
		ginprom.Path("/metrics"),
		ginprom.Ignore("/healthz"),
	)

	r.Use(
		gin.Recovery(),
		gin.LoggerWithWriter(gin.DefaultWriter, "/healthz", "/metrics"),
		prometheus.Instrument(),
	)

	if debug {
		log.Println("WARNING: pprof endpoints are enabled and exposed. Do not run with this flag in production.")
		pprof.Register(r)
	}

	if err := healthcheck.New(r, hc_config.DefaultConfig(), []checks.Check{}); err != nil {
		log.Fatalf("failed to initialize healthcheck: %v", err)
	}

	r.POST("/v1/redact", redactHandler(redactor))

	addr := fmt.Sprintf(":%d", port)
	log.Printf("Starting HTTP API Server on port %d...", port)
	if err := r.Run(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("HTTP API Server failed to start on port %d: %v", port, err)
	}
}

// redactHandler accepts a multipart "image" upload, applies the configured
// region redactions, and responds with the redacted image. The regions are
// absolute pixel coordinates, so uploads smaller than the configured layout
// are rejected as unprocessable rather than clamped.
func redactHandler(redactor *internal.Redactor) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing 'image' form field"})
			return
		}

		f, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		defer func() {
			_ = f.Close()
		}()

		format := imaging.FormatForPath(fileHeader.Filename, "jpeg")

		var buf bytes.Buffer
		if err := redactor.Process(f, &buf, format); err != nil {
			status := http.StatusInternalServerError
			if errors.Is(err, imaging.ErrDecode) || errors.Is(err, imaging.ErrInvalidRegion) {
				status = http.StatusUnprocessableEntity
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		c.Data(http.StatusOK, "image/"+format, buf.Bytes())
	}
}
