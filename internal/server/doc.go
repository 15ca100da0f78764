// Package server exposes the preprocessing and recognition pipeline over
// HTTP.
//
// Two routes exist: GET / serves the embedded single-page browser client,
// and POST /process accepts a multipart upload in the "image" field and
// answers with JSON.
//
// # Response Shape
//
// On success:
//
//	{"success": true, "latex": "x^{2}+y^{2}=z^{2}"}
//
// On failure:
//
//	{"success": false, "error": "Invalid file type. Allowed: PNG, JPG, JPEG, GIF, BMP"}
//
// Invalid input (missing file, bad type, oversized payload, undecodable
// image) produces a 4xx status with a descriptive message. Recognition
// failures are opaque and surface as 500 with a generic message. There is
// no retry, queueing or session state: every request is handled
// synchronously and every failure is terminal for that request.
//
// # Limits
//
// Uploads are capped at 16 MiB. Accepted formats: PNG, JPEG, GIF, BMP.
package server
