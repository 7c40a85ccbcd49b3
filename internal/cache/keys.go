package cache

// Link Keys
func KeyLink(token string) string {
	return Key("links", token)
}

// User Keys
func KeyUser(userID int64) string {
	return Key("users", userID)
}
