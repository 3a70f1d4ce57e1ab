package models

import (
	"errors"

	"apparel-editpages/presets"
)

// Error taxonomy shared by the synthesizer, the patcher and the batch report
var (
	ErrInvalidRecord    = errors.New("invalid record")
	ErrAnchorNotFound   = errors.New("anchor not found")
	ErrDuplicateSection = errors.New("duplicate section")
	ErrPersistence      = errors.New("persistence error")
	ErrUnknownFeature   = errors.New("unknown feature flag")
	ErrPayloadNotFound  = errors.New("payload not found")

	ErrUnknownGarmentType = presets.ErrUnknownGarmentType
	ErrUnknownSize        = presets.ErrUnknownSize
)

// Error kinds as they appear in batch reports
const (
	KindInvalidRecord    = "InvalidRecord"
	KindAnchorNotFound   = "AnchorNotFound"
	KindDuplicateSection = "DuplicateSection"
	KindPersistence      = "PersistenceError"
	KindPayloadNotFound  = "PayloadNotFound"
	KindUnknown          = "Error"
)

// ErrorKind classifies err into one of the report kinds.
// InvalidRecord wins over its more specific causes (unknown feature, size, garment type).
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidRecord):
		return KindInvalidRecord
	case errors.Is(err, ErrAnchorNotFound):
		return KindAnchorNotFound
	case errors.Is(err, ErrDuplicateSection):
		return KindDuplicateSection
	case errors.Is(err, ErrPersistence):
		return KindPersistence
	case errors.Is(err, ErrPayloadNotFound):
		return KindPayloadNotFound
	default:
		return KindUnknown
	}
}
