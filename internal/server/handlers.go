package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"loria/internal/service/companion"
	"net/http"
)

// Префиксы текста ошибки в поле reply, их показывает фронтенд.
const (
	chatErrorPrefix  = "Error: "
	imageErrorPrefix = "Error analyzing image: "
)

// multipartOverhead — запас на заголовки и границы multipart поверх лимита файла.
const multipartOverhead = 1 << 20

type chatRequest struct {
	Message string  `json:"message"`
	Lang    *string `json:"lang"`
}

type replyResponse struct {
	Reply string     `json:"reply"`
	Error *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Kind    companion.Kind `json:"kind"`
	Message string         `json:"message"`
}

type healthResponse struct {
	OK   bool   `json:"ok"`
	Name string `json:"name"`
	Mode string `json:"mode"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, s.cfg.IndexPath)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{OK: true, Name: "Loria", Mode: "web+vision"})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// Тело не разобрано — до логики чата запрос не доходит, поэтому 400 в любом режиме.
		s.writeFailureCode(w, r, chatErrorPrefix, &companion.Error{
			Kind: companion.KindInvalidRequest,
			Err:  fmt.Errorf("invalid JSON body: %w", err),
		}, http.StatusBadRequest)
		return
	}
	lang := "en"
	if req.Lang != nil {
		lang = *req.Lang
	}

	reply, err := s.svc.Chat(r.Context(), req.Message, lang)
	if err != nil {
		s.writeFailure(w, r, chatErrorPrefix, err)
		return
	}
	writeJSON(w, http.StatusOK, replyResponse{Reply: reply})
}

func (s *Server) handleAnalyzeImage(w http.ResponseWriter, r *http.Request) {
	lang := "en"
	if q := r.URL.Query(); q.Has("lang") {
		lang = q.Get("lang")
	}

	img, err := s.readUpload(w, r)
	if err != nil {
		s.writeFailure(w, r, imageErrorPrefix, &companion.Error{Kind: companion.KindInvalidRequest, Err: err})
		return
	}

	reply, err := s.svc.AnalyzeImage(r.Context(), lang, img)
	if err != nil {
		s.writeFailure(w, r, imageErrorPrefix, err)
		return
	}
	writeJSON(w, http.StatusOK, replyResponse{Reply: reply})
}

// readUpload читает поле file целиком в память, байты не трогает.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (companion.Image, error) {
	limit := s.cfg.MaxUploadBytes
	r.Body = http.MaxBytesReader(w, r.Body, limit+multipartOverhead)

	file, header, err := r.FormFile("file")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return companion.Image{}, fmt.Errorf("file too large (max %d bytes)", limit)
		}
		return companion.Image{}, fmt.Errorf("read upload: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, limit+1))
	if err != nil {
		return companion.Image{}, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > limit {
		return companion.Image{}, fmt.Errorf("file too large (max %d bytes)", limit)
	}

	return companion.Image{
		Data:        data,
		ContentType: header.Header.Get("Content-Type"),
		Filename:    header.Filename,
	}, nil
}

// writeFailure отдаёт ошибку так, чтобы старый фронтенд увидел её в reply, а
// программный клиент — в error.kind.
func (s *Server) writeFailure(w http.ResponseWriter, r *http.Request, prefix string, err error) {
	s.writeFailureCode(w, r, prefix, err, s.statusFor(companion.KindOf(err)))
}

func (s *Server) writeFailureCode(w http.ResponseWriter, r *http.Request, prefix string, err error, code int) {
	kind := companion.KindOf(err)

	s.logger.Warnw("Запрос завершился ошибкой",
		"request_id", RequestIDFromContext(r.Context()),
		"path", r.URL.Path,
		"kind", kind,
		"status", code,
		"error", err,
	)

	writeJSON(w, code, replyResponse{
		Reply: prefix + err.Error(),
		Error: &errorBody{Kind: kind, Message: err.Error()},
	})
}

// statusFor: без STRICT_ERRORS любой пойманный сбой отдаётся с 200.
func (s *Server) statusFor(kind companion.Kind) int {
	if !s.cfg.StrictErrors {
		return http.StatusOK
	}
	switch kind {
	case companion.KindInvalidRequest:
		return http.StatusBadRequest
	case companion.KindTimeout:
		return http.StatusGatewayTimeout
	case companion.KindUpstreamRateLimited:
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}
