/*
Package errs provides custom error types and application-level error code constants.

These error codes identify failures reported by this server to browsers and scripted
clients. Codes coming back from the Thinkle backend are carried separately by APIError.
*/
package errs

// 1xxx: General Request Handling Errors
const (
	// ErrInvalidParams indicates that request parameter validation failed.
	ErrInvalidParams = 1001

	// ErrUnsupportedMediaType indicates that the request header Content-Type is not supported.
	ErrUnsupportedMediaType = 1002

	// ErrInvalidJSONFormat indicates that the request body JSON format is incorrect.
	ErrInvalidJSONFormat = 1003

	// ErrExtraContentInBody indicates that the request body contained extra content after valid JSON data.
	ErrExtraContentInBody = 1004

	// ErrFormParseFailed indicates failure to parse URL-encoded form data.
	ErrFormParseFailed = 1005

	// ErrRateLimitExceeded indicates that the request rate has exceeded the set limit.
	ErrRateLimitExceeded = 1007
)

// 2xxx: Game Session Errors
const (
	// ErrNoActiveSession indicates that the tab has no game session loaded.
	ErrNoActiveSession = 2101

	// ErrGameOver indicates a guess or hint was requested after the game reached WON or LOST.
	ErrGameOver = 2102

	// ErrGuessPending indicates a guess was submitted while another one is still in flight.
	ErrGuessPending = 2103

	// ErrInvalidGuess indicates the guess is not a word of five letters.
	ErrInvalidGuess = 2104

	// ErrUnknownHintType indicates the requested hint type is missing from the session catalog.
	ErrUnknownHintType = 2105

	// ErrGameRequestFailed wraps a failed backend game call; the message is replaced per request.
	ErrGameRequestFailed = 2201
)

// 3xxx: User and Session Security Errors
const (
	// ErrUnauthorized indicates that the tab has no authenticated user.
	ErrUnauthorized = 3001

	// ErrAlreadyLoggedIn indicates a login or registration attempt by an authenticated user.
	ErrAlreadyLoggedIn = 3002

	// ErrValidationFailed indicates that form fields were rejected before reaching the backend.
	ErrValidationFailed = 3003
)

// 5xxx: Internal System Errors
const (
	// ErrUnknown represents an unclassified, general server internal error.
	ErrUnknown = 5000
)
