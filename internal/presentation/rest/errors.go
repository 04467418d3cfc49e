package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dhxnujaK/Fraud-Alert-LK/internal/application/usecase"
	"github.com/dhxnujaK/Fraud-Alert-LK/internal/presentation/rest/middleware"
)

type errorMapping struct {
	target error
	status int
	code   string
}

var errorMappings = []errorMapping{
	{usecase.ErrMissingText, http.StatusBadRequest, "MISSING_TEXT"},
	{usecase.ErrTextTooLarge, http.StatusBadRequest, "TEXT_TOO_LARGE"},
	{usecase.ErrInvalidRequest, http.StatusBadRequest, "INVALID_REQUEST"},
	{usecase.ErrMissingFile, http.StatusBadRequest, "MISSING_FILE"},
	{usecase.ErrFileTooLarge, http.StatusBadRequest, "FILE_TOO_LARGE"},
	{usecase.ErrInvalidFileType, http.StatusBadRequest, "INVALID_FILE_TYPE"},
	{usecase.ErrOCRFailed, http.StatusUnprocessableEntity, "OCR_FAILED"},
	{usecase.ErrOCRUnavailable, http.StatusServiceUnavailable, "OCR_UNAVAILABLE"},
	{usecase.ErrAssessmentNotFound, http.StatusNotFound, "NOT_FOUND"},
}

// writeUseCaseError maps a use case error to its HTTP status and error code.
// Unknown errors are logged and reported as INTERNAL_ERROR.
func writeUseCaseError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			middleware.WriteError(w, m.status, m.code, err.Error())
			return
		}
	}
	logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	middleware.WriteError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}
