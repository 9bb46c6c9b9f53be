package usecase

import (
	"context"
	"strings"

	"ai-calling-agent/internal/delivery/dto"
	"ai-calling-agent/internal/domain/entity"
	"ai-calling-agent/internal/domain/repository"
	"ai-calling-agent/internal/infrastructure/speech"

	"github.com/sirupsen/logrus"
)

type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, contentType, language string) (*speech.Transcript, error)
}

type Synthesizer interface {
	Synthesize(ctx context.Context, text, voice string) ([]byte, error)
	Format() string
}

// Audio is synthesized speech with its MIME type.
type Audio struct {
	Data        []byte
	ContentType string
}

type SpeechUsecase interface {
	Transcribe(ctx context.Context, audio []byte, contentType, language string) (*dto.TranscriptResponse, error)
	// Synthesize speaks text in the voice of the request, else the company's
	// voice persona.
	Synthesize(ctx context.Context, req *dto.SynthesizeRequest) (*Audio, error)
}

type speechUsecase struct {
	log         *logrus.Logger
	companyRepo repository.CompanyRepository
	stt         Transcriber
	tts         Synthesizer
}

// NewSpeechUsecase accepts nil clients; their operations then fail with
// speech.ErrNotConfigured.
func NewSpeechUsecase(log *logrus.Logger, companyRepo repository.CompanyRepository, stt Transcriber, tts Synthesizer) SpeechUsecase {
	return &speechUsecase{
		log:         log,
		companyRepo: companyRepo,
		stt:         stt,
		tts:         tts,
	}
}

func (u *speechUsecase) Transcribe(ctx context.Context, audio []byte, contentType, language string) (*dto.TranscriptResponse, error) {
	if u.stt == nil {
		return nil, speech.ErrNotConfigured
	}

	transcript, err := u.stt.Transcribe(ctx, audio, contentType, language)
	if err != nil {
		u.log.Warnf("Failed to transcribe audio: %+v", err)
		return nil, err
	}
	return &dto.TranscriptResponse{Text: transcript.Text, Confidence: transcript.Confidence}, nil
}

func (u *speechUsecase) Synthesize(ctx context.Context, req *dto.SynthesizeRequest) (*Audio, error) {
	if u.tts == nil {
		return nil, speech.ErrNotConfigured
	}

	voice := req.Voice
	if voice == "" {
		voice = speech.VoiceFemale
		if req.CompanyID != "" {
			company, err := u.companyRepo.FindByID(ctx, entity.CompanyID(req.CompanyID))
			if err != nil {
				return nil, err
			}
			voice = speech.VoiceFor(company.Gender)
		}
	}

	data, err := u.tts.Synthesize(ctx, req.Text, voice)
	if err != nil {
		u.log.Warnf("Failed to synthesize speech: %+v", err)
		return nil, err
	}
	return &Audio{Data: data, ContentType: audioContentType(u.tts.Format())}, nil
}

func audioContentType(format string) string {
	f := strings.ToLower(format)
	switch {
	case strings.Contains(f, "mp3"):
		return "audio/mpeg"
	case strings.Contains(f, "riff"), strings.Contains(f, "wav"):
		return "audio/wav"
	case strings.Contains(f, "ogg"):
		return "audio/ogg"
	case strings.Contains(f, "webm"):
		return "audio/webm"
	}
	return "application/octet-stream"
}
