package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"ai-calling-agent/internal/delivery/dto"
	"ai-calling-agent/internal/usecase"
	"ai-calling-agent/pkg/response"
	"ai-calling-agent/pkg/validator"
)

const maxAudioBytes = 25 << 20

type SpeechHandler struct {
	speechUsecase usecase.SpeechUsecase
	validator     *validator.CustomValidator
}

func NewSpeechHandler(speechUsecase usecase.SpeechUsecase, validator *validator.CustomValidator) *SpeechHandler {
	return &SpeechHandler{
		speechUsecase: speechUsecase,
		validator:     validator,
	}
}

// Transcribe handles speech to text
// @Summary Transcribe audio
// @Description Accepts a multipart "audio" file or a raw audio body
// @Tags Speech
// @Accept multipart/form-data
// @Produce json
// @Param language query string false "Language code"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 502 {object} response.Response
// @Failure 503 {object} response.Response
// @Router /speech/transcribe [post]
func (h *SpeechHandler) Transcribe(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxAudioBytes)

	audio, contentType, err := readAudio(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	transcript, err := h.speechUsecase.Transcribe(r.Context(), audio, contentType, r.URL.Query().Get("language"))
	if err != nil {
		writeError(w, err, "Failed to transcribe audio")
		return
	}

	response.Success(w, http.StatusOK, "Audio transcribed successfully", transcript)
}

// Synthesize handles text to speech
// @Summary Synthesize speech
// @Description Returns audio bytes in the company's voice persona
// @Tags Speech
// @Accept json
// @Produce octet-stream
// @Param request body dto.SynthesizeRequest true "Synthesize Request"
// @Success 200 {file} file
// @Failure 400 {object} response.Response
// @Failure 502 {object} response.Response
// @Failure 503 {object} response.Response
// @Router /speech/synthesize [post]
func (h *SpeechHandler) Synthesize(w http.ResponseWriter, r *http.Request) {
	var req dto.SynthesizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	audio, err := h.speechUsecase.Synthesize(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to synthesize speech")
		return
	}

	w.Header().Set("Content-Type", audio.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(audio.Data)))
	w.WriteHeader(http.StatusOK)
	w.Write(audio.Data)
}

func readAudio(r *http.Request) ([]byte, string, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, header, err := r.FormFile("audio")
		if err != nil {
			return nil, "", errors.New("audio file is required")
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			return nil, "", errors.New("failed to read audio file")
		}
		contentType := header.Header.Get("Content-Type")
		if contentType == "" {
			contentType = http.DetectContentType(data)
		}
		return data, contentType, nil
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, "", errors.New("failed to read audio body")
	}
	if len(data) == 0 {
		return nil, "", errors.New("audio body is empty")
	}
	contentType := r.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return data, contentType, nil
}
