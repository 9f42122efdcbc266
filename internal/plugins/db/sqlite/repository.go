// Package sqlite keeps upload metadata in a SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
)

// ErrNotFound is returned by Get for an unknown id.
var ErrNotFound = errors.New("uploaded file not found")

const schema = `
CREATE TABLE IF NOT EXISTS uploaded_files (
	id TEXT PRIMARY KEY,
	filename TEXT NOT NULL,
	file_path TEXT NOT NULL,
	uploaded_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_uploaded_files_uploaded_at ON uploaded_files(uploaded_at);
`

type FileRepository struct {
	db *sql.DB
}

// Open creates or opens the database at path and ensures the schema exists.
func Open(path string) (*FileRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "failed to create database directory")
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to initialize schema")
	}
	return &FileRepository{db: db}, nil
}

func (r *FileRepository) Close() error {
	return r.db.Close()
}

// Create records a new upload and returns it with a fresh id.
func (r *FileRepository) Create(ctx context.Context, filename, filePath string) (*UploadedFile, error) {
	file := &UploadedFile{
		ID:         uuid.New(),
		Filename:   filename,
		FilePath:   filePath,
		UploadedAt: time.Now().UTC(),
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO uploaded_files (id, filename, file_path, uploaded_at) VALUES (?, ?, ?, ?)`,
		file.ID.String(), file.Filename, file.FilePath, file.UploadedAt)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to insert %s", filename)
	}
	return file, nil
}

func (r *FileRepository) Get(ctx context.Context, id uuid.UUID) (*UploadedFile, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, filename, file_path, uploaded_at FROM uploaded_files WHERE id = ?`, id.String())
	file, err := scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.Wrapf(ErrNotFound, "id %s", id)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", id)
	}
	return file, nil
}

// List returns the most recent uploads first. limit <= 0 means no limit.
func (r *FileRepository) List(ctx context.Context, limit int) ([]UploadedFile, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, filename, file_path, uploaded_at FROM uploaded_files ORDER BY uploaded_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list uploads")
	}
	defer rows.Close()

	files := []UploadedFile{}
	for rows.Next() {
		file, err := scan(rows)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan upload")
		}
		files = append(files, *file)
	}
	return files, errors.Wrap(rows.Err(), "failed to list uploads")
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(s scanner) (*UploadedFile, error) {
	var (
		file UploadedFile
		id   string
	)
	if err := s.Scan(&id, &file.Filename, &file.FilePath, &file.UploadedAt); err != nil {
		return nil, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	file.ID = parsed
	return &file, nil
}
