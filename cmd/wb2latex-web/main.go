package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/skatari172/CV-FinalProject/internal/config"
	"github.com/skatari172/CV-FinalProject/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("wb2latex-web %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("wb2latex-web - web front end for equation-to-LaTeX conversion")
			fmt.Println()
			fmt.Println("Usage: wb2latex-web")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  WB2LATEX_ADDR          listen address (default :5001)")
			fmt.Println("  WB2LATEX_RECOGNIZER    pix2tex | tesseract | vision (default pix2tex)")
			fmt.Println("  WB2LATEX_MODE          clahe | adaptive | auto (default clahe)")
			fmt.Println("  WB2LATEX_TARGET_WIDTH  override output width in pixels")
			fmt.Println("  PIX2TEX_URL            pix2tex server base URL (default http://localhost:8502)")
			fmt.Println("  TESSERACT_LANG         tesseract language code (default eng)")
			fmt.Println("  OPENAI_API_KEY         API key for the vision backend")
			fmt.Println("  OPENAI_MODEL           vision model name (default gpt-4o-mini)")
			return
		}
	}

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if os.Getenv("WB2LATEX_LOG_LEVEL") == "debug" {
		logger.SetLevel(logrus.DebugLevel)
	}

	cfg := config.Load()
	rec, err := cfg.Recognizer()
	if err != nil {
		logger.WithError(err).Fatal("recognizer configuration invalid")
	}

	if os.Getenv("APP_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := server.New(cfg, rec, logger)
	logger.WithFields(logrus.Fields{
		"addr":    cfg.Addr,
		"backend": cfg.Backend,
		"mode":    cfg.Mode,
	}).Info("starting wb2latex-web")

	if err := srv.Router().Run(cfg.Addr); err != nil {
		logger.WithError(err).Fatal("server error")
	}
}
