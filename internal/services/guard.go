package services

// RequireRole is the per-request authorization decision: exact match of the
// token-carried role against the allowed set. Storage is deliberately not
// consulted; a demoted user's outstanding access token authorizes until it
// expires, which the short access TTL bounds.
func RequireRole(claims *Claims, allowed ...string) error {
	for _, role := range allowed {
		if claims.Role == role {
			return nil
		}
	}
	return ErrForbidden
}
