package transcribe

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTranscribe_Success(t *testing.T) {
	var gotAuth, gotModel, gotFileName string
	var gotAudio []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")

		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart: %v", err)
		}
		gotModel = r.FormValue("model")

		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("form file: %v", err)
		} else {
			gotFileName = header.Filename
			gotAudio, _ = io.ReadAll(file)
			file.Close()
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"text": "the landlord is John Smith"}`))
	}))
	defer srv.Close()

	client := NewWhisperClient(srv.URL, "test-key")
	text, err := client.Transcribe(context.Background(), []byte("fake-audio"), "audio/mpeg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if text != "the landlord is John Smith" {
		t.Errorf("unexpected transcript: %q", text)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("unexpected auth header: %q", gotAuth)
	}
	if gotModel != "whisper-1" {
		t.Errorf("unexpected model: %q", gotModel)
	}
	if gotFileName != "recording.mp3" {
		t.Errorf("unexpected file name: %q", gotFileName)
	}
	if string(gotAudio) != "fake-audio" {
		t.Errorf("unexpected audio payload: %q", gotAudio)
	}
}

func TestTranscribe_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "rate limited"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewWhisperClient(srv.URL, "test-key")
	_, err := client.Transcribe(context.Background(), []byte("audio"), "audio/wav")
	if !errors.Is(err, ErrProvider) {
		t.Fatalf("expected ErrProvider, got %v", err)
	}
}

func TestTranscribe_MalformedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	client := NewWhisperClient(srv.URL, "test-key")
	_, err := client.Transcribe(context.Background(), []byte("audio"), "audio/wav")
	if !errors.Is(err, ErrProvider) {
		t.Fatalf("expected ErrProvider, got %v", err)
	}
}

func TestTranscribe_EmptyAudio(t *testing.T) {
	client := NewWhisperClient("", "test-key")
	if _, err := client.Transcribe(context.Background(), nil, "audio/wav"); !errors.Is(err, ErrProvider) {
		t.Fatalf("expected ErrProvider, got %v", err)
	}
}

func TestAudioExt(t *testing.T) {
	cases := map[string]string{
		"audio/mpeg": ".mp3",
		"audio/wav":  ".wav",
		"audio/m4a":  ".m4a",
		"audio/webm": ".webm",
		"video/mp4":  ".bin",
	}
	for contentType, want := range cases {
		if got := audioExt(contentType); got != want {
			t.Errorf("audioExt(%q) = %q, want %q", contentType, got, want)
		}
	}
}
