package suno

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vibematch/backend/internal/core/ports"
)

func TestClient_Submit(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		responseBody string
		wantErr      bool
		want         ports.GenerationResponse
	}{
		{
			name:         "Pending",
			status:       http.StatusOK,
			responseBody: `{"status":"pending","request_id":"req-1"}`,
			want:         ports.GenerationResponse{Status: "pending", RequestID: "req-1"},
		},
		{
			name:   "Complete with nested stream url",
			status: http.StatusOK,
			responseBody: `{"status":"complete","request_id":"req-2",
				"data":{"data":[{"stream_audio_url":"https://cdn.example/a.mp3"},{"stream_audio_url":"https://cdn.example/b.mp3"}]}}`,
			want: ports.GenerationResponse{Status: "complete", RequestID: "req-2", AudioURL: "https://cdn.example/a.mp3"},
		},
		{
			name:         "Failed with details",
			status:       http.StatusOK,
			responseBody: `{"status":"failed","request_id":"req-3","details":"no credits"}`,
			want:         ports.GenerationResponse{Status: "failed", RequestID: "req-3", Details: "no credits"},
		},
		{
			name:         "HTTP error",
			status:       http.StatusBadGateway,
			responseBody: `oops`,
			wantErr:      true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			var gotBody map[string]any
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/generate" {
					w.WriteHeader(http.StatusNotFound)
					return
				}
				_ = json.NewDecoder(r.Body).Decode(&gotBody)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.responseBody))
			}))
			defer srv.Close()

			client := NewClient(srv.URL, "api-key")
			resp, err := client.Submit(context.Background(), "lofi beat, 90bpm")

			if (err != nil) != tt.wantErr {
				t.Fatalf("expected err=%v, got %v", tt.wantErr, err)
			}
			if tt.wantErr {
				if !errors.Is(err, ports.ErrUpstream) {
					t.Fatalf("expected upstream error, got %v", err)
				}
				return
			}
			if resp != tt.want {
				t.Fatalf("response = %+v, want %+v", resp, tt.want)
			}
			if gotBody["prompt"] != "lofi beat, 90bpm" {
				t.Fatalf("request body = %v", gotBody)
			}
		})
	}
}

func TestClient_Poll(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/status" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"status":"pending","request_id":"req-9"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "")
	resp, err := client.Poll(context.Background(), "req-9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Status != "pending" || resp.RequestID != "req-9" {
		t.Fatalf("response = %+v", resp)
	}
	if gotBody["request_id"] != "req-9" {
		t.Fatalf("request body = %v", gotBody)
	}
}

func TestDownloader_Fetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/gone" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte("beat-bytes"))
	}))
	defer srv.Close()

	d := NewDownloader()

	data, err := d.Fetch(context.Background(), srv.URL+"/ok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "beat-bytes" {
		t.Fatalf("data = %q", data)
	}

	if _, err := d.Fetch(context.Background(), srv.URL+"/gone"); err == nil {
		t.Fatal("expected error for 404")
	}
}
