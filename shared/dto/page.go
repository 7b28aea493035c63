package dto

// Page is embedded in list responses.
type Page struct {
	TotalPage int `json:"total_page"`
	TotalData int `json:"total_data"`
}

// NewPage reports at least one page so empty lists still render page 1 of 1.
func NewPage(totalData, limit int) Page {
	page := Page{TotalData: totalData, TotalPage: 1}

	if totalData > 0 && limit > 0 {
		page.TotalPage = (totalData + limit - 1) / limit
	}

	return page
}
