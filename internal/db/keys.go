package db

// Storage keys. The names match the keys the browser version of the app used,
// so exported local storage can be imported unchanged.
const (
	KeyUsers       = "cga_users"
	KeyCurrentUser = "cga_current_user"
	KeyAppTheme    = "cga_app_theme"
	KeyLanguage    = "cga_language"

	profileKeyPrefix = "cga_profile_"
	chatKeyPrefix    = "cga_chat_history"
)

// ProfileKey returns the key of the serialized profile for identity.
func ProfileKey(identity string) string {
	return profileKeyPrefix + identity
}

// ChatHistoryKey returns the key of the chat transcript for identity.
// An empty identity maps to the shared device transcript.
func ChatHistoryKey(identity string) string {
	if identity == "" {
		return chatKeyPrefix
	}
	return chatKeyPrefix + "_" + identity
}
