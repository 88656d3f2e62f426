package params

// ByNextTokenSuffix is appended to a paginated action to name its
// continuation operation.
const ByNextTokenSuffix = "ByNextToken"

// ByNextToken returns the continuation request for a paginated action:
// only the continuation action name and the token are sent.
func ByNextToken(action, token string) Values {
	return Values{
		ActionKey:    action + ByNextTokenSuffix,
		NextTokenKey: token,
	}
}

// Paginated selects between the base request and its continuation. When
// token is empty build is called for the full parameter shape; otherwise
// the ByNextToken variant of action is returned and build is not called.
func Paginated(action, token string, build func() (Values, error)) (Values, error) {
	if token != "" {
		return ByNextToken(action, token), nil
	}
	return build()
}
