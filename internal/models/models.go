package models

import "time"

// Profile is the loosely-typed member profile cached per session. Empty
// strings and a nil IsActive mean "unknown".
type Profile struct {
	NationalID     string `json:"national_id,omitempty"`
	FullName       string `json:"full_name,omitempty"`
	PlanName       string `json:"plan_name,omitempty"`
	ContractNumber string `json:"contract_number,omitempty"`
	IsActive       *bool  `json:"is_active,omitempty"`
}

func (p Profile) Empty() bool {
	return p.NationalID == "" && p.FullName == "" && p.PlanName == "" && p.ContractNumber == "" && p.IsActive == nil
}

const (
	RoleUser = "user"
	RoleBot  = "bot"
)

// Turn is one transcript line.
type Turn struct {
	SessionID string    `json:"session_id"`
	Seq       uint64    `json:"seq"`
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	Intent    string    `json:"intent,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func Bool(v bool) *bool {
	return &v
}
