package main

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
)

func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("failed to read stdout: %v", err)
	}
	return buf.String()
}

func TestPrintJSON(t *testing.T) {
	out := captureOutput(t, func() {
		printJSON(struct {
			A int `json:"a"`
		}{A: 1})
	})

	expected := "{\n  \"a\": 1\n}\n"
	if out != expected {
		t.Fatalf("unexpected json output:\n%s", out)
	}
}

func TestSend_SetsIdentityHeaders(t *testing.T) {
	var gotUser, gotActor string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = r.Header.Get("X-User-ID")
		gotActor = r.Header.Get("X-Actor-ID")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	origURL, origUser, origActor := baseURL, userID, actorID
	defer func() { baseURL, userID, actorID = origURL, origUser, origActor }()

	baseURL = server.URL
	userID = "user-1"
	actorID = "operator-9"

	status, body := send(http.MethodGet, "/api/v1/balance/", nil)

	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if string(body) != `{}` {
		t.Fatalf("unexpected body %q", body)
	}
	if gotUser != "user-1" || gotActor != "operator-9" {
		t.Fatalf("identity headers not set: user=%q actor=%q", gotUser, gotActor)
	}
}

func TestSend_EncodesBody(t *testing.T) {
	var got []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	origURL := baseURL
	defer func() { baseURL = origURL }()
	baseURL = server.URL

	send(http.MethodPost, "/api/v1/entries/", map[string]any{"text": "12 first 50"})

	if string(got) != `{"text":"12 first 50"}` {
		t.Fatalf("unexpected request body %q", got)
	}
}
