package recognize

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPix2Tex_BareStringResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/predict/" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			t.Errorf("missing file field: %v", err)
		} else {
			file.Close()
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`"\\frac{a}{b}"`))
	}))
	defer srv.Close()

	latex, err := NewPix2Tex(srv.URL).Recognize(context.Background(), createTestImage(10, 10))
	if err != nil {
		t.Fatalf("Recognize: %v", err)
	}
	if latex != `\frac{a}{b}` {
		t.Errorf("latex = %q", latex)
	}
}

func TestPix2Tex_ObjectResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"latex": "$x^2$"}`))
	}))
	defer srv.Close()

	latex, err := NewPix2Tex(srv.URL).Recognize(context.Background(), createTestImage(10, 10))
	if err != nil {
		t.Fatalf("Recognize: %v", err)
	}
	if latex != "x^2" {
		t.Errorf("latex = %q, want delimiters stripped", latex)
	}
}

func TestPix2Tex_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, err := NewPix2Tex(srv.URL).Recognize(context.Background(), createTestImage(10, 10)); err == nil {
		t.Error("expected error for 500 response")
	}
}

func TestPix2Tex_EmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`"  "`))
	}))
	defer srv.Close()

	if _, err := NewPix2Tex(srv.URL).Recognize(context.Background(), createTestImage(10, 10)); err == nil {
		t.Error("expected error for blank prediction")
	}
}

func TestPix2Tex_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer srv.Close()

	if _, err := NewPix2Tex(srv.URL).Recognize(context.Background(), createTestImage(10, 10)); err == nil {
		t.Error("expected error for non-JSON response")
	}
}

func TestPix2Tex_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	if _, err := NewPix2Tex(srv.URL).Recognize(context.Background(), createTestImage(10, 10)); err == nil {
		t.Error("expected error for closed server")
	}
}

func TestPix2Tex_ContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewPix2Tex(srv.URL).Recognize(ctx, createTestImage(10, 10)); err == nil {
		t.Error("expected error for canceled context")
	}
}
