package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/chehxing/docx-to-excel/constants"
	"github.com/chehxing/docx-to-excel/internal/common"
	"github.com/chehxing/docx-to-excel/internal/entity"
)

// Fixed-width UTC layout so inspected_at sorts lexically.
const timestampLayout = "2006-01-02T15:04:05.000000000Z"

type InspectionRepository interface {
	GetByHash(ctx context.Context, hash string) (*entity.Inspection, error)
	Create(ctx context.Context, in entity.Inspection) (*entity.Inspection, error)
	UpsertByHash(ctx context.Context, in entity.Inspection) (*entity.Inspection, bool, error)
	List(ctx context.Context, since *time.Time, limit int) ([]entity.Inspection, error)
}

type inspectionRepo struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewInspectionRepository(db *sql.DB, logger *slog.Logger) InspectionRepository {
	return &inspectionRepo{
		db:     db,
		logger: logger,
	}
}

const inspectionColumns = `id, content_hash, source_path, filename, file_size, paragraphs, tables, images, status, error_message, inspected_at`

// GetByHash returns common.ErrNotFound when no row has the hash.
func (r *inspectionRepo) GetByHash(ctx context.Context, hash string) (*entity.Inspection, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+inspectionColumns+` FROM inspections WHERE content_hash = ?`, hash)
	in, err := scanInspection(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to get inspection by hash", "hash", hash, "error", err)
		return nil, err
	}
	return in, nil
}

func (r *inspectionRepo) Create(ctx context.Context, in entity.Inspection) (*entity.Inspection, error) {
	if in.ID == uuid.Nil {
		in.ID = uuid.New()
	}
	if in.InspectedAt.IsZero() {
		in.InspectedAt = time.Now()
	}
	in.InspectedAt = in.InspectedAt.UTC()
	if in.Status == "" {
		in.Status = constants.InspectStatusOK
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO inspections (`+inspectionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.ID.String(), in.ContentHash, in.SourcePath, in.Filename, in.FileSize,
		in.Paragraphs, in.Tables, in.Images, string(in.Status), in.ErrorMessage,
		in.InspectedAt.Format(timestampLayout),
	)
	if err != nil {
		r.logger.Error("failed to create inspection", "source_path", in.SourcePath, "hash", in.ContentHash, "error", err)
		return nil, err
	}
	return &in, nil
}

// UpsertByHash returns the existing row (and true) when the content was
// already catalogued, otherwise inserts in.
func (r *inspectionRepo) UpsertByHash(ctx context.Context, in entity.Inspection) (*entity.Inspection, bool, error) {
	if existing, err := r.GetByHash(ctx, in.ContentHash); err == nil {
		return existing, true, nil
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, false, err
	}
	row, err := r.Create(ctx, in)
	if err != nil {
		r.logger.Error("failed to upsert inspection by hash", "source_path", in.SourcePath, "error", err)
		return nil, false, err
	}
	return row, false, nil
}

// List returns inspections newest first. A nil since means no lower bound;
// limit <= 0 means no limit.
func (r *inspectionRepo) List(ctx context.Context, since *time.Time, limit int) ([]entity.Inspection, error) {
	query := `SELECT ` + inspectionColumns + ` FROM inspections`
	var args []any
	if since != nil {
		query += ` WHERE inspected_at >= ?`
		args = append(args, since.UTC().Format(timestampLayout))
	}
	query += ` ORDER BY inspected_at DESC, id`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("failed to list inspections", "error", err)
		return nil, err
	}
	defer rows.Close()

	var out []entity.Inspection
	for rows.Next() {
		in, err := scanInspection(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *in)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanInspection(s scanner) (*entity.Inspection, error) {
	var (
		in          entity.Inspection
		id, status  string
		errMsg      sql.NullString
		inspectedAt string
	)
	if err := s.Scan(&id, &in.ContentHash, &in.SourcePath, &in.Filename, &in.FileSize,
		&in.Paragraphs, &in.Tables, &in.Images, &status, &errMsg, &inspectedAt); err != nil {
		return nil, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("inspection id %q: %w", id, err)
	}
	in.ID = parsed
	in.Status = constants.InspectStatus(status)
	if errMsg.Valid {
		in.ErrorMessage = &errMsg.String
	}
	if in.InspectedAt, err = time.Parse(timestampLayout, inspectedAt); err != nil {
		return nil, fmt.Errorf("inspection %s inspected_at: %w", id, err)
	}
	return &in, nil
}
