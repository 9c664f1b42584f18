package handlers

import (
	"bytes"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/domeafavour/hello-ast/internal/cache"
	"github.com/domeafavour/hello-ast/internal/config"
	"github.com/domeafavour/hello-ast/internal/docmodel"
	"github.com/domeafavour/hello-ast/internal/errors"
	"github.com/domeafavour/hello-ast/internal/logfields"
	"github.com/domeafavour/hello-ast/internal/markdown"
	"github.com/domeafavour/hello-ast/internal/metrics"
	"github.com/domeafavour/hello-ast/internal/render"
	"github.com/domeafavour/hello-ast/internal/server/middleware"
	"github.com/domeafavour/hello-ast/internal/server/responses"
)

// DefaultMaxBodyBytes bounds request bodies when CompileOptions leaves it unset.
const DefaultMaxBodyBytes = 1 << 20

// Response headers set by HandleCompile.
const (
	HeaderFingerprint = "X-Content-Fingerprint"
	HeaderCache       = "X-Cache"
)

// CompileOptions configures CompileHandlers.
type CompileOptions struct {
	DefaultFormat render.Format
	// Raw disables normalization unless a request asks for it.
	Raw          bool
	Unicode      config.UnicodeForm
	MaxBodyBytes int64
	Cache        cache.Store
	Recorder     metrics.Recorder
	Logger       *slog.Logger
}

// CompileHandlers serves the compile and tokens endpoints.
type CompileHandlers struct {
	opts         CompileOptions
	errorAdapter *errors.HTTPErrorAdapter
}

// NewCompileHandlers applies defaults to opts.
func NewCompileHandlers(opts CompileOptions) *CompileHandlers {
	if opts.DefaultFormat == "" {
		opts.DefaultFormat = render.FormatJSON
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if opts.Cache == nil {
		opts.Cache = cache.NoopStore{}
	}
	if opts.Recorder == nil {
		opts.Recorder = metrics.NoopRecorder{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &CompileHandlers{opts: opts, errorAdapter: errors.NewHTTPErrorAdapter(opts.Logger)}
}

// HandleCompile compiles the markdown request body and returns it in the
// format named by ?format=. ?normalize=false returns the unmerged tree.
func (h *CompileHandlers) HandleCompile(w http.ResponseWriter, r *http.Request) {
	format := h.opts.DefaultFormat
	if q := r.URL.Query().Get("format"); q != "" {
		f, err := render.ParseFormat(q)
		if err != nil {
			h.errorAdapter.WriteErrorResponse(w, err)
			return
		}
		format = f
	}

	raw := h.opts.Raw
	if q := r.URL.Query().Get("normalize"); q != "" {
		normalize, err := strconv.ParseBool(q)
		if err != nil {
			h.errorAdapter.WriteErrorResponse(w, errors.ValidationFailed("normalize", "must be a boolean"))
			return
		}
		raw = !normalize
	}

	body, err := readBody(w, r, h.opts.MaxBodyBytes)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, err)
		return
	}

	logger := h.opts.Logger.With(logfields.RequestID(middleware.RequestIDFromContext(r.Context())))
	opts := docmodel.Options{
		Unicode: h.opts.Unicode,
		Compile: markdown.Options{Raw: raw, Logger: logger, Recorder: h.opts.Recorder},
	}

	doc, err := docmodel.Prepare(body, opts)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, err)
		return
	}

	key := cache.Key(string(format), raw)
	data, hit, err := h.opts.Cache.Get(r.Context(), doc.Fingerprint, key)
	if err != nil {
		logger.Warn("Cache lookup failed", logfields.Error(err))
	}
	h.opts.Recorder.IncCacheResult(hit)

	if hit {
		h.opts.Recorder.IncCompileOutcome(metrics.OutcomeCached)
	} else {
		if err := doc.Compile(opts.Compile); err != nil {
			h.errorAdapter.WriteErrorResponse(w, err)
			return
		}
		var buf bytes.Buffer
		if err := render.Write(&buf, format, doc.Document); err != nil {
			h.errorAdapter.WriteErrorResponse(w, err)
			return
		}
		data = buf.Bytes()
		if err := h.opts.Cache.Put(r.Context(), doc.Fingerprint, key, data); err != nil {
			logger.Warn("Cache store failed", logfields.Error(err))
		}
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set(HeaderFingerprint, doc.Fingerprint)
	if hit {
		w.Header().Set(HeaderCache, "hit")
	} else {
		w.Header().Set(HeaderCache, "miss")
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		logger.Warn("Failed writing compile response", logfields.Error(err))
	}
}

// HandleTokens returns the lexer output for the request body.
func (h *CompileHandlers) HandleTokens(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r, h.opts.MaxBodyBytes)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, err)
		return
	}

	tokens := markdown.Tokenize(string(body))
	if tokens == nil {
		tokens = []markdown.Token{}
	}
	resp := responses.TokensResponse{Count: len(tokens), Tokens: tokens}
	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		h.errorAdapter.WriteErrorResponse(w, errors.InternalError("failed to write tokens response", err))
	}
}
