package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const (
	// schema
	createChildrenTableSQL = `
  CREATE TABLE IF NOT EXISTS children (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  document TEXT NOT NULL,
  created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
  updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
  )`

	// one JSON document per child
	upsertChildSQL = `
  INSERT INTO children (id, name, document, updated_at) VALUES (?, ?, ?, ?)
  ON CONFLICT(id) DO UPDATE SET name = excluded.name, document = excluded.document, updated_at = excluded.updated_at`
	getChildDocumentSQL = `SELECT document FROM children WHERE id = ?`
	getAllDocumentsSQL  = `SELECT id, document FROM children ORDER BY name, id`
	deleteChildSQL      = `DELETE FROM children WHERE id = ?`
)

// SQLiteStore keeps the same per-child JSON document as FileStore, one row
// per child.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens the database at dbPath, creating its directory and
// the children table when they are missing.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dbPath, err)
	}

	store := &SQLiteStore{db: db}
	if err := store.prepare(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// prepare checks the connection and brings the schema up to date.
func (s *SQLiteStore) prepare() error {
	if err := s.db.Ping(); err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	for _, stmt := range []string{createChildrenTableSQL} {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) Save(child *Child) error {
	data, err := encodeChild(child)
	if err != nil {
		return fmt.Errorf("encode child %s: %w", child.ID, err)
	}

	_, err = s.db.Exec(upsertChildSQL, child.ID, child.Name, string(data), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("error saving child %s: %w", child.ID, err)
	}
	return nil
}

func (s *SQLiteStore) Load(id string) (*Child, error) {
	var document string
	err := s.db.QueryRow(getChildDocumentSQL, id).Scan(&document)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error loading child %s: %w", id, err)
	}

	child, err := decodeChild([]byte(document))
	if err != nil {
		return nil, fmt.Errorf("decode child %s: %w", id, err)
	}
	return child, nil
}

func (s *SQLiteStore) LoadAll() ([]*Child, error) {
	rows, err := s.db.Query(getAllDocumentsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var children []*Child
	for rows.Next() {
		var id, document string
		if err := rows.Scan(&id, &document); err != nil {
			return nil, err
		}

		child, err := decodeChild([]byte(document))
		if err != nil {
			log.Printf("Warning: skipping child %s: %v", id, err)
			continue
		}
		children = append(children, child)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	sortChildren(children)
	return children, nil
}

func (s *SQLiteStore) Delete(id string) (bool, error) {
	res, err := s.db.Exec(deleteChildSQL, id)
	if err != nil {
		return false, fmt.Errorf("error deleting child %s: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
