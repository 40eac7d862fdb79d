package auth

// LandingData is the view model for the landing page. Email and DisplayName
// prefill the forms after a failed submission.
type LandingData struct {
	SignedIn    bool
	UserEmail   string
	Email       string
	DisplayName string
}
