package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_CountsRequestsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Metrics())
	r.GET("/api/chat/messages/:roomId", func(c *gin.Context) { c.Status(http.StatusOK) })

	before := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/api/chat/messages/:roomId", "200"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/chat/messages/abc123", nil))

	after := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/api/chat/messages/:roomId", "200"))
	if after != before+1 {
		t.Fatalf("counter did not increment: before=%v after=%v", before, after)
	}
}

func TestMetrics_UnmatchedRouteUsesRawPath(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Metrics())

	before := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/nope", "404"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	after := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/nope", "404"))
	if after != before+1 {
		t.Fatalf("fallback path counter did not increment: before=%v after=%v", before, after)
	}
}

func TestCountQueryTurn(t *testing.T) {
	before := testutil.ToFloat64(queryTurns.WithLabelValues("generation_failed"))
	CountQueryTurn("generation_failed")
	after := testutil.ToFloat64(queryTurns.WithLabelValues("generation_failed"))
	if after != before+1 {
		t.Fatalf("turn counter did not increment: before=%v after=%v", before, after)
	}
}
