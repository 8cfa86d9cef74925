package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/docuchat/docuchat/internal/adapter/utils"
	"github.com/docuchat/docuchat/internal/config"
	"github.com/docuchat/docuchat/internal/handlers"
	"github.com/docuchat/docuchat/internal/metrics"
	"github.com/docuchat/docuchat/pkg/applog"
)

var logger = applog.NewLogger("middleware")

var GetHandler = Wrap(handlers.GetHandler)
var UploadHandler = Wrap(handlers.UploadHandler)
var AskHandler = Wrap(handlers.AskHandler)
var GetDocumentHandler = Wrap(handlers.GetDocumentHandler)

// Wrap injects a trace ID and records request metrics around a handler.
func Wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &metrics.HttpStatusRecorder{ResponseWriter: w, Status: 200}
		r = injectTrace(r)

		next(rec, r)

		metrics.HttpRequestsTotal.WithLabelValues(r.URL.Path, strconv.Itoa(rec.Status)).Inc()
	}
}

func injectTrace(req *http.Request) *http.Request {
	trace := req.Header.Get("X-Trace-Id")
	if trace == "" {
		trace = utils.GetNewUUID()
	}
	logger.Debug("New request received", "traceId", trace, "path", req.URL.Path)

	ctx := context.WithValue(req.Context(), config.TRACE_ID_KEY, trace)
	req.Header.Set(`X-Trace-Id`, trace)
	return req.WithContext(ctx)
}
