package model

import "bazaar/shared/constant"

// Principal is the authenticated caller resolved from the bearer token.
type Principal struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

func (p Principal) IsCustomer() bool {
	return p.Role == constant.RoleCustomer
}

func (p Principal) IsVendor() bool {
	return p.Role == constant.RoleVendor
}

func (p Principal) IsAdmin() bool {
	return p.Role == constant.RoleAdmin
}
