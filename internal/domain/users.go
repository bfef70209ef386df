package domain

// UserAccount is one row of the credential store: a user, their PIN and the
// devices they may target.
type UserAccount struct {
	UserID      string   `json:"user_id"`
	PIN         string   `json:"pin"`
	Permissions []string `json:"device_permissions"`
}

// MayAccess reports whether the account's permissions cover the device.
// An empty device name is always allowed; it means no device was targeted.
func (u UserAccount) MayAccess(device string) bool {
	if device == "" {
		return true
	}
	for _, d := range u.Permissions {
		if d == device {
			return true
		}
	}
	return false
}
