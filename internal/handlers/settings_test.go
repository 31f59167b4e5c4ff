package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/flashinvoice/flashinvoice/internal/models"
	"github.com/flashinvoice/flashinvoice/internal/services"
	"github.com/flashinvoice/flashinvoice/internal/storage"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func newSettingsHandler(t *testing.T) *SettingsHandler {
	t.Helper()
	store, err := storage.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return NewSettingsHandler(services.NewSettingsService(store))
}

func multipartLogo(t *testing.T, field, name string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, name)
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func TestUploadLogoStoresDataURL(t *testing.T) {
	h := newSettingsHandler(t)
	body, ct := multipartLogo(t, "logo", "logo.png", pngMagic)
	req := httptest.NewRequest(http.MethodPost, "/settings/logo", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	h.UploadLogo(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body=%s", w.Code, w.Body.String())
	}
	var out models.Settings
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !strings.HasPrefix(out.LogoDataURL, "data:image/png;base64,") {
		t.Fatalf("logo data url = %q", out.LogoDataURL)
	}
}

func TestUploadLogoRejectsNonImage(t *testing.T) {
	h := newSettingsHandler(t)
	body, ct := multipartLogo(t, "logo", "notes.txt", []byte("plain text, not an image"))
	req := httptest.NewRequest(http.MethodPost, "/settings/logo", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	h.UploadLogo(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
}

func TestUploadLogoMissingFile(t *testing.T) {
	h := newSettingsHandler(t)
	body, ct := multipartLogo(t, "other", "x.png", pngMagic)
	req := httptest.NewRequest(http.MethodPost, "/settings/logo", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	h.UploadLogo(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
}

func TestDeleteLogo(t *testing.T) {
	h := newSettingsHandler(t)
	h.Settings.SetLogo("data:image/png;base64,aGVsbG8=")
	req := httptest.NewRequest(http.MethodPost, "/settings/logo/delete", nil)
	w := httptest.NewRecorder()
	h.DeleteLogo(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", w.Code)
	}
	if h.Settings.Get().LogoDataURL != "" {
		t.Fatalf("logo not cleared")
	}
}
