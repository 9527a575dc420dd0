package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned when no assignment matches the given id.
var ErrNotFound = errors.New("assignment not found")

type DB struct {
	*sqlx.DB
}

func Open(dsn string, maxOpenConns int) (*DB, error) {
	xdb, err := sqlx.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	xdb.SetMaxOpenConns(maxOpenConns)
	xdb.SetMaxIdleConns(maxOpenConns / 10)
	xdb.SetConnMaxLifetime(5 * time.Minute)
	if err := xdb.Ping(); err != nil {
		return nil, err
	}
	return &DB{DB: xdb}, nil
}

func (d *DB) Close() error { return d.DB.Close() }

// Assignment is one tracked task. duedate is stored exactly as the client
// provided it; the column is text so no datetime coercion happens.
type Assignment struct {
	ID             int64  `db:"id" json:"id"`
	AssignmentName string `db:"assignmentname" json:"assignmentname"`
	DueDate        string `db:"duedate" json:"duedate"`
	Status         string `db:"status" json:"status"`
}

// Dev-time schema (inline DDL)

func EnsureSchema(d *DB) error {
	return d.ensureSchema(context.Background())
}

func (d *DB) ensureSchema(ctx context.Context) error {
	stmt := `CREATE TABLE IF NOT EXISTS assignments (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		assignmentname VARCHAR(255) NOT NULL,
		duedate VARCHAR(64) NOT NULL,
		status VARCHAR(64) NOT NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci`

	if _, err := d.DB.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("schema: %w", err)
	}
	return nil
}

// ListAssignments returns every assignment ordered by id.
func (d *DB) ListAssignments(ctx context.Context) ([]Assignment, error) {
	var as []Assignment
	if err := d.SelectContext(ctx, &as, "SELECT * FROM assignments ORDER BY id ASC"); err != nil {
		return nil, err
	}
	return as, nil
}

// CreateAssignment inserts a new row and returns the generated id.
func (d *DB) CreateAssignment(ctx context.Context, a Assignment) (int64, error) {
	res, err := d.ExecContext(ctx,
		"INSERT INTO assignments (assignmentname, duedate, status) VALUES (?,?,?)",
		a.AssignmentName, a.DueDate, a.Status)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// UpdateAssignment overwrites all three fields of the row with the given id
// in a single statement. Returns the number of matched rows (always 1 on
// success) or ErrNotFound when the id matches nothing.
func (d *DB) UpdateAssignment(ctx context.Context, id int64, a Assignment) (int64, error) {
	res, err := d.ExecContext(ctx,
		"UPDATE assignments SET assignmentname=?, duedate=?, status=? WHERE id=?",
		a.AssignmentName, a.DueDate, a.Status, id)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	switch {
	case n == 0:
		return 0, ErrNotFound
	case n > 1:
		// id is the primary key; more than one match means the table is corrupt.
		return n, fmt.Errorf("update matched %d rows for id %d", n, id)
	}
	return n, nil
}

// DeleteAssignment removes the row with the given id.
func (d *DB) DeleteAssignment(ctx context.Context, id int64) error {
	res, err := d.ExecContext(ctx, "DELETE FROM assignments WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
