package shared

import (
	"context"
	"fmt"
)

// Document number prefixes, one per document type
const (
	DocTypeAdjustment    = "ADJ"
	DocTypeRequisition   = "REQ"
	DocTypePurchaseOrder = "PO"
	DocTypeGoodsReceived = "GRN"
	DocTypeSalesOrder    = "SO"
	DocTypeShipment      = "SHP"
)

// DocumentSequenceRepository hands out gap-free per-type sequence numbers.
// Next must be safe under concurrent callers (atomic upsert-and-increment).
type DocumentSequenceRepository interface {
	// Next returns the next sequence value for a document type and year
	Next(ctx context.Context, docType string, year int) (int64, error)
}

// FormatDocumentNumber renders a document number as PREFIX-YYYY-NNNNN
func FormatDocumentNumber(docType string, year int, seq int64) string {
	return fmt.Sprintf("%s-%d-%05d", docType, year, seq)
}
