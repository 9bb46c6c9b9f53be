package speech

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"ai-calling-agent/config"
	"ai-calling-agent/internal/domain/apperr"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestDeepgramClient_Transcribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/listen", r.URL.Path)
		assert.Equal(t, "nova-2", r.URL.Query().Get("model"))
		assert.Equal(t, "hi", r.URL.Query().Get("language"))
		assert.Equal(t, "Token dg-key", r.Header.Get("Authorization"))
		assert.Equal(t, "audio/webm", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, []byte("RIFF...."), body)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":{"channels":[{"alternatives":[{"transcript":" book a table for two ","confidence":0.93}]}]}}`))
	}))
	defer srv.Close()

	client, err := NewDeepgramClient(config.SpeechConfig{
		DeepgramAPIKey: "dg-key", DeepgramBaseURL: srv.URL, DeepgramModel: "nova-2", DeepgramLanguage: "en",
	}, quietLogger())
	require.NoError(t, err)

	transcript, err := client.Transcribe(context.Background(), []byte("RIFF...."), "audio/webm", "hi")
	require.NoError(t, err)
	assert.Equal(t, "book a table for two", transcript.Text)
	assert.InDelta(t, 0.93, transcript.Confidence, 0.001)
}

func TestDeepgramClient_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"err_msg":"insufficient credits"}`))
	}))
	defer srv.Close()

	_, err := NewDeepgramClient(config.SpeechConfig{}, quietLogger())
	assert.ErrorIs(t, err, ErrNotConfigured)

	client, err := NewDeepgramClient(config.SpeechConfig{DeepgramAPIKey: "k", DeepgramBaseURL: srv.URL}, quietLogger())
	require.NoError(t, err)

	_, err = client.Transcribe(context.Background(), nil, "", "")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = client.Transcribe(context.Background(), []byte("x"), "", "")
	var remote *apperr.RemoteServiceError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, http.StatusPaymentRequired, remote.StatusCode)
}

func TestAzureTTSClient_Synthesize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cognitiveservices/v1", r.URL.Path)
		assert.Equal(t, "az-key", r.Header.Get("Ocp-Apim-Subscription-Key"))
		assert.Equal(t, "audio-16khz-32kbitrate-mono-mp3", r.Header.Get("X-Microsoft-OutputFormat"))
		body, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(body), "name='en-US-GuyNeural'")
		assert.Contains(t, string(body), "Fish &amp; chips")

		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte{0xFF, 0xFB, 0x90})
	}))
	defer srv.Close()

	client, err := NewAzureTTSClient(config.SpeechConfig{
		AzureKey: "az-key", AzureBaseURL: srv.URL, AzureFormat: "audio-16khz-32kbitrate-mono-mp3",
	}, quietLogger())
	require.NoError(t, err)

	audio, err := client.Synthesize(context.Background(), "Fish & chips are ready", VoiceFor("male"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFF, 0xFB, 0x90}, audio)
}

func TestAzureTTSClient_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client, err := NewAzureTTSClient(config.SpeechConfig{AzureKey: "bad", AzureBaseURL: srv.URL}, quietLogger())
	require.NoError(t, err)

	_, err = client.Synthesize(context.Background(), "hello", "")
	var remote *apperr.RemoteServiceError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, http.StatusUnauthorized, remote.StatusCode)
}

func TestNewAzureTTSClient_NeedsRegionOrURL(t *testing.T) {
	_, err := NewAzureTTSClient(config.SpeechConfig{AzureKey: "k"}, quietLogger())
	assert.ErrorIs(t, err, apperr.ErrValidation)

	client, err := NewAzureTTSClient(config.SpeechConfig{AzureKey: "k", AzureRegion: "eastus"}, quietLogger())
	require.NoError(t, err)
	assert.Equal(t, "https://eastus.tts.speech.microsoft.com", client.httpClient.BaseURL)
}

func TestVoiceFor(t *testing.T) {
	assert.Equal(t, VoiceFemale, VoiceFor("female"))
	assert.Equal(t, VoiceMale, VoiceFor("Male"))
	assert.Equal(t, VoiceFemale, VoiceFor(""))
}

func TestBuildSSML(t *testing.T) {
	ssml, err := BuildSSML("<hi>", "hi-IN-SwaraNeural")
	require.NoError(t, err)
	assert.Equal(t, "<speak version='1.0' xml:lang='hi-IN'><voice xml:lang='hi-IN' name='hi-IN-SwaraNeural'>&lt;hi&gt;</voice></speak>", ssml)
}
