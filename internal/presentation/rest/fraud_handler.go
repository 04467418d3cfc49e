package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/dhxnujaK/Fraud-Alert-LK/internal/application/dto"
	"github.com/dhxnujaK/Fraud-Alert-LK/internal/application/usecase"
	"github.com/dhxnujaK/Fraud-Alert-LK/internal/presentation/rest/middleware"
)

// multipartOverhead is allowed on top of the image limit for boundaries and
// the other form fields.
const multipartOverhead = 1 << 20

// AnalyzeTextResponse is the body of POST /fraud-detection/analyze-text.
type AnalyzeTextResponse struct {
	IsFraudulent       bool                   `json:"isFraudulent"`
	FraudScore         int                    `json:"fraudScore"`
	SuspiciousKeywords []string               `json:"suspiciousKeywords"`
	RiskLevel          string                 `json:"riskLevel"`
	Reasoning          string                 `json:"reasoning"`
	Assessment         dto.AssessmentResponse `json:"assessment"`
}

// AnalyzeImageResponse is the body of POST /fraud-detection/analyze.
type AnalyzeImageResponse struct {
	Message string                 `json:"message"`
	JobPost dto.AssessmentResponse `json:"jobPost"`
	Error   bool                   `json:"error"`
}

// FraudHandler serves the /fraud-detection endpoints.
type FraudHandler struct {
	analyzeText    *usecase.AnalyzeText
	analyzeImage   *usecase.AnalyzeImage
	getAssessment  *usecase.GetAssessment
	maxUploadBytes int64
	logger         *slog.Logger
}

// NewFraudHandler creates a new REST handler.
func NewFraudHandler(
	analyzeText *usecase.AnalyzeText,
	analyzeImage *usecase.AnalyzeImage,
	getAssessment *usecase.GetAssessment,
	maxUploadBytes int64,
	logger *slog.Logger,
) *FraudHandler {
	return &FraudHandler{
		analyzeText:    analyzeText,
		analyzeImage:   analyzeImage,
		getAssessment:  getAssessment,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// AnalyzeText handles POST /fraud-detection/analyze-text.
func (h *FraudHandler) AnalyzeText(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	var req dto.AnalyzeTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			err = usecase.ErrMissingText
		case errors.As(err, &maxErr):
			err = fmt.Errorf("%w: limit %d bytes", usecase.ErrTextTooLarge, maxErr.Limit)
		default:
			err = fmt.Errorf("%w: malformed JSON body: %v", usecase.ErrInvalidRequest, err)
		}
		writeUseCaseError(w, r, h.logger, err)
		return
	}

	resp, err := h.analyzeText.Execute(r.Context(), req)
	if err != nil {
		writeUseCaseError(w, r, h.logger, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, AnalyzeTextResponse{
		IsFraudulent:       resp.IsFraudulent,
		FraudScore:         resp.FraudScore,
		SuspiciousKeywords: resp.SuspiciousKeywords,
		RiskLevel:          resp.RiskLevel,
		Reasoning:          "Analysis complete. Risk level: " + resp.RiskLevel,
		Assessment:         resp,
	})
}

// AnalyzeImage handles POST /fraud-detection/analyze with a multipart "image" field.
func (h *FraudHandler) AnalyzeImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+multipartOverhead)

	req, err := h.readImage(r)
	if err != nil {
		writeUseCaseError(w, r, h.logger, err)
		return
	}

	resp, err := h.analyzeImage.Execute(r.Context(), req)
	if err != nil {
		writeUseCaseError(w, r, h.logger, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, AnalyzeImageResponse{
		Message: "Image analyzed successfully",
		JobPost: resp,
		Error:   false,
	})
}

func (h *FraudHandler) readImage(r *http.Request) (dto.AnalyzeImageRequest, error) {
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return dto.AnalyzeImageRequest{}, fmt.Errorf("%w: limit %d bytes", usecase.ErrFileTooLarge, h.maxUploadBytes)
		}
		return dto.AnalyzeImageRequest{}, usecase.ErrMissingFile
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("image")
	if err != nil {
		return dto.AnalyzeImageRequest{}, usecase.ErrMissingFile
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return dto.AnalyzeImageRequest{}, fmt.Errorf("failed to read upload: %w", err)
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}

	return dto.AnalyzeImageRequest{
		Image:       data,
		ContentType: contentType,
		Filename:    header.Filename,
		PostID:      r.FormValue("postId"),
	}, nil
}

// GetAssessment handles GET /fraud-detection/assessments/{id}.
func (h *FraudHandler) GetAssessment(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeUseCaseError(w, r, h.logger, fmt.Errorf("%w: assessment id must be a UUID", usecase.ErrInvalidRequest))
		return
	}

	resp, err := h.getAssessment.Execute(r.Context(), dto.GetAssessmentRequest{AssessmentID: id})
	if err != nil {
		writeUseCaseError(w, r, h.logger, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, resp)
}

// NotFound answers every unrouted request.
func NotFound(w http.ResponseWriter, r *http.Request) {
	middleware.WriteError(w, http.StatusNotFound, "NOT_FOUND", fmt.Sprintf("route %s %s not found", r.Method, r.URL.Path))
}
