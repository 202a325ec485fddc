package services

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func makeFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatal(err)
	}
	if err := writer.Close(); err != nil {
		t.Fatal(err)
	}

	form, err := multipart.NewReader(&buf, writer.Boundary()).ReadForm(32 << 20)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File["image"][0]
}

func newTestMediaService(t *testing.T) *MediaService {
	return &MediaService{uploadDir: t.TempDir(), backend: mediaBackendLocal}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"photo.png", "photo.png"},
		{"my photo.png", "my-photo.png"},
		{"../../etc/passwd", "passwd"},
		{"weird$chars!.jpg", "weirdchars.jpg"},
		{"UPPER_case-ok.webp", "UPPER_case-ok.webp"},
	}

	for _, tt := range tests {
		if got := sanitizeFilename(tt.in); got != tt.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMediaUploadToDisk(t *testing.T) {
	svc := newTestMediaService(t)

	resp, err := svc.Upload(makeFileHeader(t, "hero image.png", []byte("fake-png-bytes")))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if !strings.HasSuffix(resp.FileName, "-hero-image.png") {
		t.Errorf("file name = %q, want timestamp prefix + sanitized original", resp.FileName)
	}
	if resp.URL != "/uploads/"+resp.FileName {
		t.Errorf("url = %q", resp.URL)
	}
	if resp.MimeType != "image/png" {
		t.Errorf("mime = %q", resp.MimeType)
	}

	stored, err := os.ReadFile(filepath.Join(svc.uploadDir, resp.FileName))
	if err != nil {
		t.Fatalf("stored file: %v", err)
	}
	if string(stored) != "fake-png-bytes" {
		t.Errorf("stored bytes = %q", stored)
	}
}

func TestMediaUploadRejectsExtension(t *testing.T) {
	svc := newTestMediaService(t)

	for _, name := range []string{"script.exe", "notes.txt", "archive.zip", "noext"} {
		if _, err := svc.Upload(makeFileHeader(t, name, []byte("x"))); err == nil {
			t.Errorf("Upload(%q) accepted a non-image", name)
		}
	}
}

func TestMediaUploadRejectsOversize(t *testing.T) {
	svc := newTestMediaService(t)

	header := makeFileHeader(t, "big.png", []byte("x"))
	header.Size = maxUploadBytes + 1

	if _, err := svc.Upload(header); err == nil {
		t.Error("oversized upload accepted")
	}
}

func TestMediaDelete(t *testing.T) {
	svc := newTestMediaService(t)

	resp, err := svc.Upload(makeFileHeader(t, "gone.png", []byte("x")))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	if err := svc.Delete(resp.FileName); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := os.Stat(filepath.Join(svc.uploadDir, resp.FileName)); !os.IsNotExist(err) {
		t.Error("file still present after delete")
	}

	if err := svc.Delete(resp.FileName); err == nil {
		t.Error("second delete should be not-found")
	}
}

func TestMediaDeleteRejectsTraversal(t *testing.T) {
	svc := newTestMediaService(t)

	for _, name := range []string{"", "../secret.png", "a/b.png", "..", "nested/../x.png"} {
		if err := svc.Delete(name); err == nil {
			t.Errorf("Delete(%q) accepted an unsafe name", name)
		}
	}
}
