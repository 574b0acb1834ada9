package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newCodeMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{code}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusFound)
	})
	return mux
}

func TestMetricsMiddleware_UsesRoutePattern(t *testing.T) {
	h := MetricsMiddleware(newCodeMux())

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "GET /{code}", "302"))

	for _, code := range []string{"/aaa", "/bbb", "/ccc"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, code, nil))
	}

	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "GET /{code}", "302"))
	if after-before != 3 {
		t.Errorf("counter grew by %v, want 3", after-before)
	}
}

func TestMetricsMiddleware_UnmatchedRoute(t *testing.T) {
	h := MetricsMiddleware(newCodeMux())

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, unmatchedRoute, "404"))

	for _, path := range []string{"/a/b", "/wp-admin/setup.php"} {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, unmatchedRoute, "404"))
	if after-before != 2 {
		t.Errorf("counter grew by %v, want 2", after-before)
	}
	if got := testutil.ToFloat64(httpRequestsInFlight); got != 0 {
		t.Errorf("in-flight gauge = %v after requests finished", got)
	}
}

func TestStatusRecorder_DefaultsToOK(t *testing.T) {
	rec := newStatusRecorder(httptest.NewRecorder())
	_, _ = rec.Write([]byte("hi"))
	if rec.status != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.status)
	}
	rec.WriteHeader(http.StatusTeapot)
	if rec.status != http.StatusTeapot {
		t.Errorf("status = %d, want 418", rec.status)
	}
}
