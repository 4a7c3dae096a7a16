package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/stockflow/backend/internal/domain/shared"
)

// DocumentSequence is the per-type, per-year counter row backing
// gap-free document numbers
type DocumentSequence struct {
	DocType   string `gorm:"type:varchar(10);primaryKey"`
	Year      int    `gorm:"primaryKey"`
	NextValue int64  `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (DocumentSequence) TableName() string {
	return "document_sequences"
}

// GormDocumentSequenceRepository implements
// shared.DocumentSequenceRepository with an atomic upsert-and-increment.
// Safe under concurrent callers: the row lock taken by the UPDATE
// serializes concurrent increments of the same counter.
type GormDocumentSequenceRepository struct {
	db *gorm.DB
}

// NewGormDocumentSequenceRepository creates a new GormDocumentSequenceRepository
func NewGormDocumentSequenceRepository(db *gorm.DB) *GormDocumentSequenceRepository {
	return &GormDocumentSequenceRepository{db: db}
}

// Next returns the next sequence value for a document type and year
func (r *GormDocumentSequenceRepository) Next(ctx context.Context, docType string, year int) (int64, error) {
	var next int64
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO document_sequences (doc_type, year, next_value)
		VALUES (?, ?, 1)
		ON CONFLICT (doc_type, year)
		DO UPDATE SET next_value = document_sequences.next_value + 1
		RETURNING next_value`,
		docType, year,
	).Scan(&next).Error
	if err != nil {
		return 0, err
	}
	return next, nil
}

var _ shared.DocumentSequenceRepository = (*GormDocumentSequenceRepository)(nil)
