package fetch

// Config holds the portal auth settings read from config.json5. Flags
// override whatever the file provides.
type Config struct {
	AuthCookie string `json:"auth_cookie"`
	UserAgent  string `json:"user_agent"`
}
