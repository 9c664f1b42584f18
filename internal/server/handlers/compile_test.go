package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/domeafavour/hello-ast/internal/cache"
	"github.com/domeafavour/hello-ast/internal/errors"
	"github.com/domeafavour/hello-ast/internal/render"
	"github.com/domeafavour/hello-ast/internal/server/responses"
)

func post(t *testing.T, h http.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodPost, target, strings.NewReader(body)))
	return rec
}

func TestHandleCompile_JSON(t *testing.T) {
	h := NewCompileHandlers(CompileOptions{})
	rec := post(t, h.HandleCompile, "/v1/compile", "# Hello World\n- item")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.NotEmpty(t, rec.Header().Get(HeaderFingerprint))
	require.JSONEq(t, `[
		{"type":"heading","level":1,"children":[{"type":"text","content":"Hello World"}]},
		{"type":"list-item","children":[{"type":"text","content":"item"}]}
	]`, rec.Body.String())
}

func TestHandleCompile_Formats(t *testing.T) {
	h := NewCompileHandlers(CompileOptions{DefaultFormat: render.FormatHTML})

	rec := post(t, h.HandleCompile, "/v1/compile", "> hi")
	require.Equal(t, "<blockquote>\n<p>hi</p>\n</blockquote>\n", rec.Body.String())
	require.Equal(t, render.FormatHTML.ContentType(), rec.Header().Get("Content-Type"))

	rec = post(t, h.HandleCompile, "/v1/compile?format=text", "# a `b`")
	require.Equal(t, "a b\n", rec.Body.String())

	rec = post(t, h.HandleCompile, "/v1/compile?format=pdf", "x")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	var body errors.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, errors.CategoryValidation, body.Category)
	require.Equal(t, "pdf", body.Context["format"])
}

func TestHandleCompile_NormalizeFlag(t *testing.T) {
	h := NewCompileHandlers(CompileOptions{})

	rec := post(t, h.HandleCompile, "/v1/compile?normalize=false", "a b")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[{"type":"paragraph","children":[
		{"type":"text","content":"a"},{"type":"text","content":" "},{"type":"text","content":"b"}
	]}]`, rec.Body.String())

	rec = post(t, h.HandleCompile, "/v1/compile?normalize=maybe", "a b")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleCompile_Cache(t *testing.T) {
	store, err := cache.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	defer store.Close()

	h := NewCompileHandlers(CompileOptions{Cache: store})
	first := post(t, h.HandleCompile, "/v1/compile", "# cached")
	require.Equal(t, "miss", first.Header().Get(HeaderCache))

	second := post(t, h.HandleCompile, "/v1/compile", "# cached")
	require.Equal(t, "hit", second.Header().Get(HeaderCache))
	require.Equal(t, first.Body.String(), second.Body.String())

	raw := post(t, h.HandleCompile, "/v1/compile?normalize=false", "# cached")
	require.Equal(t, "miss", raw.Header().Get(HeaderCache))
}

func TestHandleCompile_BodyTooLarge(t *testing.T) {
	h := NewCompileHandlers(CompileOptions{MaxBodyBytes: 8})
	rec := post(t, h.HandleCompile, "/v1/compile", strings.Repeat("x", 64))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleCompile_BadFrontmatter(t *testing.T) {
	h := NewCompileHandlers(CompileOptions{})
	rec := post(t, h.HandleCompile, "/v1/compile", "---\nunclosed\n")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleTokens(t *testing.T) {
	h := NewCompileHandlers(CompileOptions{})

	rec := post(t, h.HandleTokens, "/v1/tokens", "# a")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"count":3,"tokens":[
		{"type":"sharps","count":1},{"type":"spaces","count":1},{"type":"text","value":"a"}
	]}`, rec.Body.String())

	rec = post(t, h.HandleTokens, "/v1/tokens", "")
	var resp responses.TokensResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Zero(t, resp.Count)
}

func TestHandleHealthCheck(t *testing.T) {
	h := NewMonitoringHandlers(time.Now().Add(-time.Minute), nil)
	rec := httptest.NewRecorder()
	h.HandleHealthCheck(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp responses.HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Equal(t, "healthy", resp.Status)
	require.GreaterOrEqual(t, resp.Uptime, 60.0)
}
