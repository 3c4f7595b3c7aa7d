package inkwell

import (
	"io"
)

// StoreAsset reads the full payload from r into memory and stores it under
// the given id in a single atomic upsert that replaces every column together.
// There is no streaming or chunking; assets must fit comfortably in memory.
func (s *Store) StoreAsset(assetID, mimeType string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`INSERT INTO assets (asset_id, mime_type, updated_at, size, data) VALUES (?, ?, ?, ?, ?)
ON CONFLICT(asset_id) DO UPDATE SET
    mime_type = excluded.mime_type,
    updated_at = excluded.updated_at,
    size = excluded.size,
    data = excluded.data`,
		assetID, mimeType, fmtTime(nowUTC()), int64(len(data)), data)
	return err
}

// GetAsset returns the stored asset with its binary payload, or ErrNotFound.
// The filename is the last path segment of the asset id.
func (s *Store) GetAsset(assetID string) (Asset, error) {
	var a Asset
	var updatedAt string
	err := s.db.QueryRow(`SELECT mime_type, updated_at, size, data FROM assets WHERE asset_id = ?`, assetID).
		Scan(&a.MimeType, &updatedAt, &a.Size, &a.Data)
	if err != nil {
		return Asset{}, err
	}
	a.Filename = AssetFilename(assetID)
	a.LastModified = parseTime(updatedAt)
	return a, nil
}
