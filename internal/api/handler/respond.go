package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"marketplace/internal/common"
)

const msgInvalidPayload = "Invalid request payload"

// decodeJSON reads the request body into dst. The returned error is ready to
// be sent to the client.
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		// Field types with their own parsing (prices) report validation errors.
		if errors.Is(err, common.ErrValidation) {
			return err
		}
		return common.New(common.ErrValidation, msgInvalidPayload)
	}
	return nil
}

// respondError writes err to the client and logs it when it is an internal failure.
func respondError(w http.ResponseWriter, r *http.Request, logger *zap.Logger, err error) {
	code := common.HTTPStatusFromError(err)
	if code == http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("request_id", chiMiddleware.GetReqID(r.Context())),
			zap.String("path", r.URL.Path),
			zap.Error(err))
	}
	common.RespondWithAppError(w, err)
}

func respondOK(w http.ResponseWriter, data interface{}, message string) {
	common.RespondWithJSON(w, http.StatusOK, data, message)
}
