package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/flashinvoice/flashinvoice/internal/storage"

	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	store, err := storage.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return New(store, zap.NewNop())
}

func TestHealthz(t *testing.T) {
	h := newTestHandler(t)
	r := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
}

func TestDraftSaveThenLoad(t *testing.T) {
	h := newTestHandler(t)

	body := `{"from":"Me","to":"Acme\nParis","invoiceNumber":"INV-9","currency":"EUR","taxRate":20,"items":[{"description":"Design","quantity":1,"unitPrice":900}]}`
	put := httptest.NewRequest(http.MethodPut, "/draft", strings.NewReader(body))
	putW := httptest.NewRecorder()
	h.ServeHTTP(putW, put)
	if putW.Code != http.StatusOK {
		t.Fatalf("put draft: expected 200 got %d body=%s", putW.Code, putW.Body.String())
	}

	get := httptest.NewRequest(http.MethodGet, "/draft", nil)
	getW := httptest.NewRecorder()
	h.ServeHTTP(getW, get)
	if getW.Code != http.StatusOK {
		t.Fatalf("get draft: expected 200 got %d", getW.Code)
	}
	var res struct {
		Draft struct {
			InvoiceNumber string `json:"invoiceNumber"`
		} `json:"draft"`
		Totals struct {
			Total float64 `json:"total"`
		} `json:"totals"`
	}
	if err := json.Unmarshal(getW.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Draft.InvoiceNumber != "INV-9" {
		t.Fatalf("expected autosaved draft back, got %s", getW.Body.String())
	}
	if res.Totals.Total != 1080 {
		t.Fatalf("total = %v, want 1080", res.Totals.Total)
	}
}

func TestHistorySaveListDelete(t *testing.T) {
	h := newTestHandler(t)

	// seed the live draft
	body := `{"to":"Acme","invoiceNumber":"INV-1","currency":"EUR","taxRate":0,"items":[{"description":"x","quantity":2,"unitPrice":10}]}`
	put := httptest.NewRequest(http.MethodPut, "/draft", strings.NewReader(body))
	h.ServeHTTP(httptest.NewRecorder(), put)

	save := httptest.NewRequest(http.MethodPost, "/history", nil)
	saveW := httptest.NewRecorder()
	h.ServeHTTP(saveW, save)
	if saveW.Code != http.StatusCreated {
		t.Fatalf("save: expected 201 got %d body=%s", saveW.Code, saveW.Body.String())
	}
	var meta struct {
		ID    string  `json:"id"`
		Total float64 `json:"total"`
	}
	if err := json.Unmarshal(saveW.Body.Bytes(), &meta); err != nil {
		t.Fatalf("decode meta: %v", err)
	}
	if meta.ID == "" || meta.Total != 20 {
		t.Fatalf("unexpected meta: %+v", meta)
	}

	list := httptest.NewRequest(http.MethodGet, "/history", nil)
	listW := httptest.NewRecorder()
	h.ServeHTTP(listW, list)
	var listed struct {
		Items []json.RawMessage `json:"items"`
		Total int               `json:"total"`
	}
	if err := json.Unmarshal(listW.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if listed.Total != 1 {
		t.Fatalf("expected 1 record, got %d", listed.Total)
	}

	del := httptest.NewRequest(http.MethodPost, "/history/delete?id="+meta.ID, nil)
	delW := httptest.NewRecorder()
	h.ServeHTTP(delW, del)
	if delW.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204 got %d", delW.Code)
	}

	listW2 := httptest.NewRecorder()
	h.ServeHTTP(listW2, httptest.NewRequest(http.MethodGet, "/history", nil))
	if err := json.Unmarshal(listW2.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if listed.Total != 0 {
		t.Fatalf("expected empty history after delete, got %d", listed.Total)
	}
}

func TestDuplicateMissingIDNoContent(t *testing.T) {
	h := newTestHandler(t)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/history/duplicate?id=missing", nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for missing id, got %d", w.Code)
	}
}

func TestPrefsToggle(t *testing.T) {
	h := newTestHandler(t)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/prefs", nil))
	if !strings.Contains(w.Body.String(), `"language":"en"`) || !strings.Contains(w.Body.String(), `"theme":"dark"`) {
		t.Fatalf("unexpected defaults: %s", w.Body.String())
	}

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/prefs/language", nil))
	if !strings.Contains(w.Body.String(), `"language":"fr"`) {
		t.Fatalf("toggle language: %s", w.Body.String())
	}

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/prefs/theme", nil))
	if !strings.Contains(w.Body.String(), `"theme":"light"`) {
		t.Fatalf("toggle theme: %s", w.Body.String())
	}
}

func TestDraftPDFDownload(t *testing.T) {
	h := newTestHandler(t)
	body := `{"invoiceNumber":"INV-42","currency":"EUR","taxRate":20,"items":[{"description":"d","quantity":1,"unitPrice":100}]}`
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPut, "/draft", strings.NewReader(body)))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/draft/pdf", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("pdf: expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("content type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "INV-42.pdf") {
		t.Fatalf("content disposition = %q", cd)
	}
	if !strings.HasPrefix(w.Body.String(), "%PDF") {
		t.Fatalf("expected PDF payload")
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h := newTestHandler(t)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/draft", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 got %d", w.Code)
	}
	if allow := w.Header().Get("Allow"); allow != "GET,PUT" {
		t.Fatalf("allow header = %q", allow)
	}
}
