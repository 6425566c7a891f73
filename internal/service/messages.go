package service

// Messages shown to callers when a dependency fails. Details go to the log.
const (
	msgFetchGames      = "Failed to fetch game data"
	msgSearchPlayers   = "Failed to search players"
	msgSaveRoster      = "Failed to save player. Please try again."
	msgLoadRoster      = "Failed to load roster"
	msgRemoveRoster    = "Failed to remove player. Please try again."
	msgChatUnavailable = "AI service is not configured"
	msgChatFailed      = "Failed to get a response from the AI service"
	msgInvalidLogin    = "Invalid email or password."
	msgAccountFailure  = "Something went wrong. Please try again."
	msgEmailTaken      = "An account with this email already exists."
	msgWeakPassword    = "Password must contain at least one letter and one number."
	msgAlreadyOnRoster = "%s is already on your roster."
)
