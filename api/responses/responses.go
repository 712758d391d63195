// Package responses writes the JSON envelopes every handler shares.
package responses

import (
	"encoding/json"
	"net/http"

	"github.com/rakibulhaque/trendibay-backend/pkg/errors"
	"github.com/rakibulhaque/trendibay-backend/pkg/logger"
	"github.com/rakibulhaque/trendibay-backend/pkg/types"
)

func WriteSuccess(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(types.SuccessEnvelope{Data: data}); err != nil {
		logger.FromContext(r.Context()).Error("encode success response", err)
	}
}

// WriteError maps a domain error onto the public envelope. Unknown
// errors collapse to INTERNAL_ERROR; details only leak for codes that
// allow them.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	logg := logger.FromContext(r.Context())

	code := errors.CodeInternal
	var details any
	if typed := errors.As(err); typed != nil {
		code = typed.Code()
		details = typed.Details()
	}

	meta := errors.MetadataFor(code)
	if meta.HTTPStatus >= http.StatusInternalServerError {
		logg.WithField("error_dump", errors.Dump(err)).Error("request failed", err)
	} else {
		logg.Warn("request rejected", err)
	}

	body := types.ErrorEnvelope{
		Error: types.APIError{
			Code:    string(code),
			Message: meta.PublicMessage,
		},
	}
	if meta.DetailsAllowed {
		body.Error.Details = details
	}
	if meta.Retryable {
		w.Header().Set("Retry-After", "1")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(meta.HTTPStatus)
	if encErr := json.NewEncoder(w).Encode(body); encErr != nil {
		logg.Error("encode error response", encErr)
	}
}
