package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/skatari172/CV-FinalProject/internal/config"
	"github.com/skatari172/CV-FinalProject/internal/preprocess"
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
			fmt.Printf("wb2latex %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		}
	}

	fs := flag.NewFlagSet("wb2latex", flag.ExitOnError)
	mode := fs.String("mode", "", "preprocessing mode: clahe, adaptive or auto (default from WB2LATEX_MODE)")
	backend := fs.String("recognizer", "", "recognition backend: pix2tex, tesseract or vision (default from WB2LATEX_RECOGNIZER)")
	width := fs.Int("width", 0, "target output width in pixels (default per mode)")
	output := fs.String("o", "output.tex", "file to write the LaTeX result to")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "wb2latex - convert a photo of an equation to LaTeX")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Usage: wb2latex [options] <image_path>")
		fmt.Fprintln(os.Stderr, "Example: wb2latex samples/example.jpg")
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Options:")
		fs.PrintDefaults()
	}
	_ = fs.Parse(os.Args[1:])

	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(1)
	}
	inputPath := fs.Arg(0)

	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime)

	cfg := config.Load()
	if *mode != "" {
		cfg.Mode = *mode
	}
	if *backend != "" {
		cfg.Backend = *backend
	}
	if *width > 0 {
		cfg.TargetWidth = *width
	}

	img, format, err := preprocess.LoadFile(inputPath)
	if err != nil {
		log.Fatalf("Error reading image: %v", err)
	}
	log.Printf("Preprocessing %s image: %s", format, inputPath)

	normalized := preprocess.Preprocess(img, cfg.OptionsFor(img))

	rec, err := cfg.Recognizer()
	if err != nil {
		log.Fatalf("Error configuring recognizer: %v", err)
	}

	log.Printf("Running LaTeX recognition (%s)...", cfg.Backend)
	latex, err := rec.Recognize(context.Background(), normalized)
	if err != nil {
		log.Fatalf("Error during recognition: %v", err)
	}

	banner := strings.Repeat("=", 50)
	fmt.Println(banner)
	fmt.Println("LaTeX Output:")
	fmt.Println(banner)
	fmt.Println(latex)
	fmt.Println(banner)

	if err := os.WriteFile(*output, []byte(latex+"\n"), 0o644); err != nil {
		log.Fatalf("Error saving output: %v", err)
	}
	log.Printf("LaTeX saved to %s", *output)
}
