package model

const (
	TableName  = "listings"
	EntityName = "listing"

	FieldID         = "id"
	FieldVendorID   = "vendor_id"
	FieldBusinessID = "business_id"
	FieldCategoryID = "category_id"
)

const (
	BusinessTableName      = "businesses"
	BusinessStaffTableName = "business_staff"
)

// Listing is the catalog view the booking core needs; the catalog service owns the row.
type Listing struct {
	ID         string  `db:"id"`
	VendorID   string  `db:"vendor_id"`
	BusinessID *string `db:"business_id"`
	CategoryID string  `db:"category_id"`
	Title      string  `db:"title"`
	Price      float64 `db:"price"`
	Currency   string  `db:"currency"`
}

func (l Listing) BusinessIDValue() string {
	if l.BusinessID == nil {
		return ""
	}

	return *l.BusinessID
}
