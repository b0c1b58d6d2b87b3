package user

// Principal is the verified caller identity forwarded by the gateway.
type Principal struct {
	UserID       string
	TournamentID string
}
