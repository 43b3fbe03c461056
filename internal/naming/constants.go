package naming

// Error context messages for wrapped errors during registration
const (
	ErrMsgEmptyName     = "name is empty"
	ErrMsgDuplicateName = "duplicate name %q (conflicts with %q)"
)
