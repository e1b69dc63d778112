package services

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSTTClient_Transcribe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/stt" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("reading form file: %v", err)
		}
		defer file.Close()

		if header.Filename != "recording.m4a" {
			t.Errorf("expected filename recording.m4a, got %s", header.Filename)
		}
		data, _ := io.ReadAll(file)
		if string(data) != "fake audio bytes" {
			t.Errorf("unexpected audio payload: %q", data)
		}

		w.Write([]byte(`{"text":" add 2 eggs and 500 ml milk "}`))
	}))
	defer server.Close()

	client := NewSTTClient(server.URL)
	text, err := client.Transcribe(context.Background(), strings.NewReader("fake audio bytes"), "recording.m4a")
	if err != nil {
		t.Fatalf("transcribe: %v", err)
	}
	if text != "add 2 eggs and 500 ml milk" {
		t.Errorf("expected trimmed transcript, got %q", text)
	}
}

func TestSTTClient_DefaultFilename(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("reading form file: %v", err)
		}
		if header.Filename != "voice.m4a" {
			t.Errorf("expected default filename voice.m4a, got %s", header.Filename)
		}
		w.Write([]byte(`{"text":"ok"}`))
	}))
	defer server.Close()

	if _, err := NewSTTClient(server.URL).Transcribe(context.Background(), strings.NewReader("x"), ""); err != nil {
		t.Fatalf("transcribe: %v", err)
	}
}

func TestSTTClient_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no api key", http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := NewSTTClient(server.URL).Transcribe(context.Background(), strings.NewReader("x"), "a.m4a")
	if err == nil {
		t.Fatal("expected an error for non-200 response")
	}
}
