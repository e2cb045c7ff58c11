package handler

import (
	"context"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"
	"github.com/ogen-go/ogen/ogenerrors"
	"github.com/ogen-go/ogen/validate"
	"go.uber.org/zap"

	"github.com/xenking/storefront-checkout/gen/oas"
	"github.com/xenking/storefront-checkout/internal/apperr"
	"github.com/xenking/storefront-checkout/internal/domain/auth"
)

var errInvalidBody = apperr.New(apperr.KindValidation, "invalid_body", "request body is malformed")

// NewError implements oas.Handler. Every error a handler or the security
// handler returns is answered here.
func (h *Handler) NewError(ctx context.Context, err error) *oas.ErrorStatusCode {
	return errorResponse(ctx, err)
}

// HandleError answers requests ogen rejects before a handler runs, such as
// bodies and parameters that fail to decode.
func HandleError(ctx context.Context, w http.ResponseWriter, _ *http.Request, err error) {
	resp := errorResponse(ctx, err)
	var e jx.Encoder
	resp.Response.Encode(&e)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	_, _ = w.Write(e.Bytes())
}

// errorResponse maps err to {code, message, details}. Unclassified errors
// are logged and answered with a generic message; decoder errors never
// reach the client verbatim.
func errorResponse(ctx context.Context, err error) *oas.ErrorStatusCode {
	status := statusOf(err)
	code, message := "internal", "internal server error"
	var details map[string]string

	switch {
	case isDecodeError(err):
		code, message = errInvalidBody.Code, errInvalidBody.Message
		details = invalidFields(err)
	case status == http.StatusUnauthorized && !errors.Is(err, auth.ErrUnauthorized):
		code, message = auth.ErrUnauthorized.Code, auth.ErrUnauthorized.Message
	default:
		if e, ok := apperr.As(err); ok && e.Kind != apperr.KindInternal {
			code, message = e.Code, e.Message
			// A typed domain error describes the failure better than its sentinel.
			var d apperr.Detailer
			if errors.As(err, &d) {
				details = d.Details()
				if de, ok := d.(error); ok {
					message = de.Error()
				}
			}
		}
	}

	lg := zctx.From(ctx)
	if status >= http.StatusInternalServerError {
		lg.Error("Request failed", zap.Error(err), zap.Int("status", status))
	} else {
		lg.Debug("Request rejected", zap.Error(err), zap.String("code", code))
	}

	resp := oas.Error{Code: code, Message: message}
	if len(details) > 0 {
		resp.Details = oas.NewOptErrorDetails(oas.ErrorDetails(details))
	}
	return &oas.ErrorStatusCode{StatusCode: status, Response: resp}
}

// statusOf maps an error to its HTTP status.
func statusOf(err error) int {
	var secErr *ogenerrors.SecurityError
	switch {
	case errors.Is(err, auth.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, auth.ErrUnauthorized):
		return http.StatusUnauthorized
	case isDecodeError(err):
		return http.StatusBadRequest
	case errors.As(err, &secErr) && apperr.KindOf(err) != apperr.KindDependency:
		return http.StatusUnauthorized
	}
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		return http.StatusUnprocessableEntity
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict, apperr.KindState:
		return http.StatusConflict
	case apperr.KindDependency:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func isDecodeError(err error) bool {
	var (
		reqErr    *ogenerrors.DecodeRequestError
		paramsErr *ogenerrors.DecodeParamsError
	)
	return errors.As(err, &reqErr) || errors.As(err, &paramsErr)
}

// invalidFields names the fields a request failed validation on.
func invalidFields(err error) map[string]string {
	var vErr *validate.Error
	if !errors.As(err, &vErr) || len(vErr.Fields) == 0 {
		return nil
	}
	out := make(map[string]string, len(vErr.Fields))
	for _, f := range vErr.Fields {
		out["field."+f.Name] = "invalid"
	}
	return out
}
