package types

type UserResponse struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	TeamID   *uint  `json:"team_id"`
}
