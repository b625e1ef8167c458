package http

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/caseflow-lab/doctrack/pkg/utils/logging"
)

type ctxOwnerKey struct{}

const ownerHeader = "X-Owner-ID"

// requestID assigns a UUIDv7 to each request and binds it to the context
// logger.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.NewV7()
		if err != nil {
			id = uuid.New()
		}

		logger := logging.From(r.Context()).With("request_id", id.String())
		ctx := logging.With(r.Context(), logger)
		w.Header().Set("X-Request-ID", id.String())

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ownerMiddleware resolves the owner identity of the request. The identity is
// an opaque pass-through attribute; requests without one are rejected unless a
// default owner is configured.
func ownerMiddleware(defaultOwner string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ownerID := r.Header.Get(ownerHeader)
			if ownerID == "" {
				ownerID = defaultOwner
			}
			if ownerID == "" {
				http.Error(w, "missing "+ownerHeader+" header", http.StatusBadRequest)
				return
			}

			ctx := context.WithValue(r.Context(), ctxOwnerKey{}, ownerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func ownerFrom(ctx context.Context) string {
	if ownerID, ok := ctx.Value(ctxOwnerKey{}).(string); ok {
		return ownerID
	}
	return ""
}
