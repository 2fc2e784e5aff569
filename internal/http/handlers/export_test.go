package handlers

// SetPasswordCheck swaps the bcrypt comparison so tests can observe it.
func SetPasswordCheck(h *AuthHandler, fn func(hash, plain string) error) {
	h.checkPassword = fn
}
