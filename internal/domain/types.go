package domain

import "strings"

// ID is used across domain entities.
type ID int64

// RequestContext carries the authenticated caller. Every core operation
// receives it explicitly instead of reading ambient session state.
type RequestContext struct {
	UserID ID     `json:"userId"`
	Role   string `json:"role"`
}

func (r RequestContext) IsAdmin() bool {
	return strings.EqualFold(strings.TrimSpace(r.Role), "admin")
}
