package telegram

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testClient(srvURL string) *Client {
	c := New("TOKEN", "42")
	c.baseURL = srvURL
	return c
}

func TestSendMessage(t *testing.T) {
	var gotPath string
	var gotForm map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := r.ParseForm(); err != nil {
			t.Errorf("ParseForm: %v", err)
		}
		gotForm = map[string]string{
			"chat_id":    r.FormValue("chat_id"),
			"text":       r.FormValue("text"),
			"parse_mode": r.FormValue("parse_mode"),
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	if err := testClient(srv.URL).SendMessage("<b>hi</b>"); err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}
	if gotPath != "/botTOKEN/sendMessage" {
		t.Errorf("path = %q", gotPath)
	}
	if gotForm["chat_id"] != "42" || gotForm["text"] != "<b>hi</b>" || gotForm["parse_mode"] != "HTML" {
		t.Errorf("form = %v", gotForm)
	}
}

func TestSendMessage_ErrorCarriesStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"ok":false,"description":"Bad Request: chat not found"}`)
	}))
	defer srv.Close()

	err := testClient(srv.URL).SendMessage("hi")
	if err == nil {
		t.Fatal("SendMessage() error = nil, want non-nil")
	}
	if !strings.Contains(err.Error(), "400") || !strings.Contains(err.Error(), "chat not found") {
		t.Errorf("error = %v, want status and body", err)
	}
}

func TestSendDocument(t *testing.T) {
	payload := []byte("%PDF-1.4 data")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/botTOKEN/sendDocument" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("ParseMultipartForm: %v", err)
			return
		}
		if got := r.FormValue("chat_id"); got != "42" {
			t.Errorf("chat_id = %q", got)
		}

		files := r.MultipartForm.File["document"]
		if len(files) != 1 {
			t.Errorf("got %d document parts, want 1", len(files))
			return
		}
		fh := files[0]
		if fh.Filename != "report.pdf" {
			t.Errorf("filename = %q", fh.Filename)
		}
		if got := fh.Header.Get("Content-Type"); got != "application/pdf" {
			t.Errorf("part content type = %q", got)
		}
		f, err := fh.Open()
		if err != nil {
			t.Errorf("open part: %v", err)
			return
		}
		defer f.Close()
		data, _ := io.ReadAll(f)
		if !bytes.Equal(data, payload) {
			t.Errorf("data = %q, want %q", data, payload)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	if err := testClient(srv.URL).SendDocument("report.pdf", "application/pdf", payload); err != nil {
		t.Fatalf("SendDocument() error = %v", err)
	}
}

func TestSendDocument_ErrorCarriesStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "file too large", http.StatusRequestEntityTooLarge)
	}))
	defer srv.Close()

	err := testClient(srv.URL).SendDocument("big.bin", "application/octet-stream", []byte("x"))
	if err == nil {
		t.Fatal("SendDocument() error = nil, want non-nil")
	}
	if !strings.Contains(err.Error(), "413") {
		t.Errorf("error = %v, want status 413", err)
	}
}
