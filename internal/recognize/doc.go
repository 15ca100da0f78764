// Package recognize defines the boundary to the pretrained OCR-to-LaTeX
// model and ships three interchangeable implementations.
//
// The model is an external capability, not a component of this repository:
// everything behind the Recognizer interface is a black box that turns a
// normalized image into a LaTeX string or fails opaquely. Callers must not
// retry or reinterpret recognition errors; they propagate upward as a
// generic failure for the request.
//
// # Implementations
//
//   - Pix2Tex: HTTP client for a pix2tex inference server. The primary
//     backend; matches the model the pipeline was tuned against.
//   - Tesseract: local OCR via the Tesseract engine (gosseract bindings).
//     Useful for printed equations when no model server is available;
//     requires the tesseract shared library and language data installed.
//   - VisionLLM: a vision-capable chat model asked to transcribe the
//     equation, via the OpenAI-compatible completions API.
//
// All three accept a context for cancellation and are safe for concurrent
// use by multiple goroutines.
package recognize
