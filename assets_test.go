package inkwell

import (
	"bytes"
	"errors"
	"testing"
)

func TestAssetRoundTrip(t *testing.T) {
	s := setupTestStore(t)

	payload := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0xff}
	if err := s.StoreAsset("images/logo.png", "image/png", bytes.NewReader(payload)); err != nil {
		t.Fatalf("StoreAsset failed: %v", err)
	}

	a, err := s.GetAsset("images/logo.png")
	if err != nil {
		t.Fatalf("GetAsset failed: %v", err)
	}
	if !bytes.Equal(a.Data, payload) {
		t.Error("asset payload is not byte-identical after round trip")
	}
	if a.MimeType != "image/png" {
		t.Errorf("MimeType = %q, want %q", a.MimeType, "image/png")
	}
	if a.Size != int64(len(payload)) {
		t.Errorf("Size = %d, want %d", a.Size, len(payload))
	}
	if a.Filename != "logo.png" {
		t.Errorf("Filename = %q, want %q", a.Filename, "logo.png")
	}
	if a.LastModified.IsZero() {
		t.Error("LastModified should be set")
	}
}

func TestAssetUpsertReplaces(t *testing.T) {
	s := setupTestStore(t)

	if err := s.StoreAsset("doc", "text/plain", bytes.NewReader([]byte("version one"))); err != nil {
		t.Fatalf("StoreAsset failed: %v", err)
	}
	if err := s.StoreAsset("doc", "text/markdown", bytes.NewReader([]byte("v2"))); err != nil {
		t.Fatalf("StoreAsset failed: %v", err)
	}

	a, err := s.GetAsset("doc")
	if err != nil {
		t.Fatalf("GetAsset failed: %v", err)
	}
	if string(a.Data) != "v2" {
		t.Errorf("Data = %q, want %q", a.Data, "v2")
	}
	if a.MimeType != "text/markdown" {
		t.Errorf("MimeType = %q, want %q", a.MimeType, "text/markdown")
	}
	if a.Size != 2 {
		t.Errorf("Size = %d, want 2", a.Size)
	}

	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM assets WHERE asset_id = 'doc'`).Scan(&count); err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if count != 1 {
		t.Errorf("asset rows = %d, want 1", count)
	}
}

func TestAssetEmptyPayload(t *testing.T) {
	s := setupTestStore(t)

	if err := s.StoreAsset("empty", "application/octet-stream", bytes.NewReader(nil)); err != nil {
		t.Fatalf("StoreAsset failed: %v", err)
	}
	a, err := s.GetAsset("empty")
	if err != nil {
		t.Fatalf("GetAsset failed: %v", err)
	}
	if a.Size != 0 || len(a.Data) != 0 {
		t.Errorf("empty asset came back with Size=%d len=%d", a.Size, len(a.Data))
	}
}

func TestGetAssetNotFound(t *testing.T) {
	s := setupTestStore(t)

	if _, err := s.GetAsset("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
