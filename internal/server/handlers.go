package server

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/harishm17/smart-email/internal/pii"
	"github.com/harishm17/smart-email/internal/websocket"
)

// contentRequest is the body of /v1/validate and /v1/sanitize.
type contentRequest struct {
	Content string `json:"content"`
}

// sanitizeResponse is the body returned by /v1/sanitize.
type sanitizeResponse struct {
	Content string `json:"content"`
}

// handleValidate classifies the submitted content and returns the full
// detection result. Results may be served from the response cache when it
// is configured.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	requestID := getRequestID(r.Context())
	log := s.logger.WithRequestID(requestID)

	var req contentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	start := time.Now()

	var result pii.DetectionResult
	cached := false
	if s.cache != nil {
		if hit, ok := s.cache.Get(r.Context(), req.Content); ok {
			result = *hit
			cached = true
		}
	}
	if !cached {
		result = s.engine.Validate(req.Content)
		if s.cache != nil {
			if err := s.cache.Set(r.Context(), req.Content, result); err != nil {
				log.Warn("Failed to cache validation result", zap.Error(err))
			}
		}
	}

	duration := time.Since(start)

	if result.HasPII {
		log.Info("PII detected in content",
			zap.Strings("pii_types", result.PIITypes),
			zap.Int("findings", len(result.Details)),
			zap.Bool("safe_to_send", result.SafeToSend),
		)

		s.wsHub.BroadcastEvent(websocket.Event{
			Type:      websocket.EventTypePIIDetection,
			Timestamp: time.Now(),
			RequestID: requestID,
			Data: websocket.PIIDetectionEvent{
				RequestID:  requestID,
				Path:       r.URL.Path,
				ClientIP:   getClientIP(r),
				PIITypes:   result.PIITypes,
				Details:    result.Details,
				SafeToSend: result.SafeToSend,
				Cached:     cached,
				DurationMS: float64(duration.Nanoseconds()) / 1e6,
			},
		})
	}

	writeJSON(w, http.StatusOK, result)
}

// handleSanitize rewrites the submitted content with every redaction rule
// and returns the sanitized text.
func (s *Server) handleSanitize(w http.ResponseWriter, r *http.Request) {
	var req contentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, sanitizeResponse{Content: s.engine.Sanitize(req.Content)})
}

// writeJSON writes v as a JSON response
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
