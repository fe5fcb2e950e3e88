package types

type UpdateUserRequest struct {
	Username           string  `json:"username,omitempty"`
	Email              string  `json:"email,omitempty"`
	Avatar             *string `json:"avatar,omitempty"`
	NewPassword        string  `json:"newPassword,omitempty"`
	ConfirmNewPassword string  `json:"confirmNewPassword,omitempty"`
}
