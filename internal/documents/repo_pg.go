package documents

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

// PGRepo implements DocumentsRepo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

var _ DocumentsRepo = (*PGRepo)(nil)

// Create inserts a new document.
func (r *PGRepo) Create(ctx context.Context, doc Document) error {
	const query = `
INSERT INTO documents (
    id, user_id, file_name, mime_type, size_bytes,
    storage_provider, storage_key, extracted_text_key,
    parse_method, page_count, word_count,
    is_valid, validation_confidence, validation_reasons,
    created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	storageProvider := doc.StorageProvider
	if storageProvider == "" {
		storageProvider = "local"
	}
	reasons, err := json.Marshal(doc.ValidationReasons)
	if err != nil {
		return err
	}

	_, err = r.DB.ExecContext(ctx, query,
		doc.ID,
		doc.UserID,
		doc.FileName,
		doc.MimeType,
		doc.SizeBytes,
		storageProvider,
		doc.StorageKey,
		doc.ExtractedTextKey,
		doc.ParseMethod,
		doc.PageCount,
		doc.WordCount,
		doc.IsValid,
		doc.ValidationConfidence,
		reasons,
		doc.CreatedAt,
	)
	return err
}

// GetByID returns a user's document by ID.
func (r *PGRepo) GetByID(ctx context.Context, userID, documentID string) (Document, error) {
	const query = `
SELECT id, user_id, file_name, mime_type, size_bytes,
       storage_provider, storage_key, extracted_text_key,
       parse_method, page_count, word_count,
       is_valid, validation_confidence, validation_reasons,
       created_at
FROM documents
WHERE id = $1 AND user_id = $2
LIMIT 1`
	doc, err := scanDocument(r.DB.QueryRowContext(ctx, query, documentID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return doc, nil
}

// ListByUser returns a user's documents, newest first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Document, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT id, user_id, file_name, mime_type, size_bytes,
       storage_provider, storage_key, extracted_text_key,
       parse_method, page_count, word_count,
       is_valid, validation_confidence, validation_reasons,
       created_at
FROM documents
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (Document, error) {
	var doc Document
	var extractedKey, parseMethod, reasons sql.NullString
	if err := row.Scan(
		&doc.ID,
		&doc.UserID,
		&doc.FileName,
		&doc.MimeType,
		&doc.SizeBytes,
		&doc.StorageProvider,
		&doc.StorageKey,
		&extractedKey,
		&parseMethod,
		&doc.PageCount,
		&doc.WordCount,
		&doc.IsValid,
		&doc.ValidationConfidence,
		&reasons,
		&doc.CreatedAt,
	); err != nil {
		return Document{}, err
	}
	if extractedKey.Valid {
		doc.ExtractedTextKey = extractedKey.String
	}
	if parseMethod.Valid {
		doc.ParseMethod = parseMethod.String
	}
	if reasons.Valid {
		_ = json.Unmarshal([]byte(reasons.String), &doc.ValidationReasons)
	}
	return doc, nil
}
