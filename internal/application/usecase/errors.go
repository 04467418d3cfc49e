package usecase

import (
	"errors"

	"github.com/dhxnujaK/Fraud-Alert-LK/internal/domain/port"
)

// Errors returned by the use cases. Transports map them to error codes with errors.Is.
var (
	ErrMissingText     = errors.New("no text provided for analysis")
	ErrTextTooLarge    = errors.New("text exceeds the maximum allowed size")
	ErrInvalidRequest  = errors.New("invalid request")
	ErrMissingFile     = errors.New("no image file provided")
	ErrFileTooLarge    = errors.New("image exceeds the maximum allowed size")
	ErrInvalidFileType = errors.New("only image files are allowed")
	ErrOCRUnavailable  = errors.New("text extraction is not configured")

	ErrOCRFailed          = port.ErrOCRFailed
	ErrAssessmentNotFound = port.ErrAssessmentNotFound
)
