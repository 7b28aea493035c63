package dto

import (
	"bazaar/shared/constant"
	"bazaar/shared/model"
	"bazaar/shared/timezone"
)

// Metadata is the audit block rendered in the application time zone.
type Metadata struct {
	CreatedAt  string `json:"created_at"`
	ModifiedAt string `json:"modified_at"`
	CreatedBy  string `json:"created_by"`
	ModifiedBy string `json:"modified_by"`
}

func (m *Metadata) FromModel(metadata model.Metadata) {
	*m = Metadata{
		CreatedAt:  timezone.Format(metadata.CreatedAt, constant.DateFormat),
		ModifiedAt: timezone.Format(metadata.ModifiedAt, constant.DateFormat),
		CreatedBy:  metadata.CreatedBy,
		ModifiedBy: metadata.ModifiedBy,
	}
}
