package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"toolhub/internal/tools"

	"github.com/gin-gonic/gin"
)

type echoTool struct{}

func (echoTool) Name() string        { return "echo" }
func (echoTool) Description() string { return "回显 msg 参数" }
func (echoTool) Parameters() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []string{"msg"},
	}
}
func (echoTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	return fmt.Sprintf("%v", params["msg"]), nil
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	registry := tools.NewRegistry()
	if err := registry.Register(echoTool{}); err != nil {
		t.Fatalf("register tool: %v", err)
	}
	metrics := tools.NewMetrics(nil)
	return setupRouterWith(tools.NewManager(registry, metrics), metrics)
}

func get(router *gin.Engine, path string) (*httptest.ResponseRecorder, map[string]any) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)

	var body map[string]any
	json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestRootEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w, body := get(router, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if body["name"] == nil || body["endpoints"] == nil {
		t.Fatalf("unexpected root payload: %v", body)
	}
}

func TestEndToEndExecute(t *testing.T) {
	router := newTestRouter(t)

	// 成功
	w, body := get(router, "/api/execute?tool=echo&msg=hi")
	if w.Code != http.StatusOK || body["status"] != "success" || body["data"] != "hi" || body["tool"] != "echo" {
		t.Fatalf("unexpected success envelope: code=%d body=%v", w.Code, body)
	}

	// 缺少必填参数
	w, body = get(router, "/api/execute?tool=echo")
	if w.Code != http.StatusBadRequest || body["code"] != tools.CodeInvalidParameters {
		t.Fatalf("unexpected invalid-params envelope: code=%d body=%v", w.Code, body)
	}

	// 工具不存在
	w, body = get(router, "/api/execute?tool=missing")
	if w.Code != http.StatusNotFound || body["code"] != tools.CodeToolNotFound {
		t.Fatalf("unexpected not-found envelope: code=%d body=%v", w.Code, body)
	}
}

func TestNoRouteReturnsEnvelope(t *testing.T) {
	router := newTestRouter(t)

	w, body := get(router, "/api/unknown")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
	if body["status"] != "error" || body["code"] != "NOT_FOUND" {
		t.Fatalf("unexpected fallback envelope: %v", body)
	}
}

func TestRequestIDHeader(t *testing.T) {
	router := newTestRouter(t)

	w, _ := get(router, "/api/health")
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected X-Request-ID header to be set")
	}
}

func TestCORSPreflights(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/tools", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected status 204, got %d", w.Code)
	}
	if w.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("expected CORS headers on preflight")
	}
}
