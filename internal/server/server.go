package server

import (
	_ "embed"
	"errors"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/skatari172/CV-FinalProject/internal/config"
	"github.com/skatari172/CV-FinalProject/internal/preprocess"
	"github.com/skatari172/CV-FinalProject/internal/recognize"
)

// maxUploadBytes caps the request body for /process.
const maxUploadBytes = 16 << 20 // 16 MiB

//go:embed static/index.html
var indexHTML []byte

// allowedExtensions maps acceptable upload file extensions (lowercase,
// with dot) to true.
var allowedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
}

// Server wires the preprocessing pipeline and a recognition backend into
// a gin router.
type Server struct {
	cfg config.Config
	rec recognize.Recognizer
	log *logrus.Logger
}

// New creates a Server. A nil logger falls back to the logrus standard
// logger.
func New(cfg config.Config, rec recognize.Recognizer, log *logrus.Logger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Server{cfg: cfg, rec: rec, log: log}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.MaxMultipartMemory = maxUploadBytes

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST"},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))

	r.GET("/", s.index)
	r.POST("/process", s.process)
	return r
}

// index serves the embedded browser client.
func (s *Server) index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
}

// process handles one upload-and-recognize request end to end.
func (s *Server) process(c *gin.Context) {
	start := time.Now()
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			s.fail(c, http.StatusRequestEntityTooLarge, "File too large. Maximum size is 16MB")
			return
		}
		s.fail(c, http.StatusBadRequest, "No image file provided")
		return
	}
	defer file.Close()

	if header.Filename == "" {
		s.fail(c, http.StatusBadRequest, "No file selected")
		return
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		s.fail(c, http.StatusBadRequest, "Invalid file type. Allowed: PNG, JPG, JPEG, GIF, BMP")
		return
	}

	img, format, err := preprocess.Decode(file)
	if err != nil {
		s.fail(c, http.StatusBadRequest, "Could not decode image")
		return
	}

	opts := s.cfg.OptionsFor(img)
	normalized := preprocess.Preprocess(img, opts)

	latex, err := s.rec.Recognize(c.Request.Context(), normalized)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"format": format,
			"size":   header.Size,
		}).WithError(err).Error("recognition failed")
		s.fail(c, http.StatusInternalServerError, "Recognition failed")
		return
	}

	s.log.WithFields(logrus.Fields{
		"format":   format,
		"size":     header.Size,
		"mode":     string(opts.Mode),
		"width":    normalized.Bounds().Dx(),
		"height":   normalized.Bounds().Dy(),
		"duration": time.Since(start).Round(time.Millisecond).String(),
	}).Info("processed upload")

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"latex":   latex,
	})
}

// fail writes the error response shape shared by all failure paths.
func (s *Server) fail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   msg,
	})
}
