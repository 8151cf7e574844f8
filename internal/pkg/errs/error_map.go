/*
Package errs provides custom error types and application-level error code constants.

This file maps each error code to its CustomError template.
*/
package errs

import "net/http"

var errorMap = map[int]CustomError{
	// 1xxx: General Request Handling Errors
	ErrInvalidParams:        {Code: ErrInvalidParams, Message: "Invalid request parameters."},
	ErrUnsupportedMediaType: {Code: ErrUnsupportedMediaType, Message: "Unsupported request format.", Status: http.StatusUnsupportedMediaType},
	ErrInvalidJSONFormat:    {Code: ErrInvalidJSONFormat, Message: "Unsupported request format."},
	ErrExtraContentInBody:   {Code: ErrExtraContentInBody, Message: "Request contains unexpected data."},
	ErrFormParseFailed:      {Code: ErrFormParseFailed, Message: "Failed to process submitted data."},
	ErrRateLimitExceeded:    {Code: ErrRateLimitExceeded, Message: "Too many requests. Please try again later.", Status: http.StatusTooManyRequests},

	// 2xxx: Game Session Errors
	ErrNoActiveSession:   {Code: ErrNoActiveSession, Message: "No game in progress. Start a new game from the home page."},
	ErrGameOver:          {Code: ErrGameOver, Message: "This game is over."},
	ErrGuessPending:      {Code: ErrGuessPending, Message: "Your previous guess is still being checked."},
	ErrInvalidGuess:      {Code: ErrInvalidGuess, Message: "Your guess must be exactly %d letters."},
	ErrUnknownHintType:   {Code: ErrUnknownHintType, Message: "Unknown hint type %q."},
	ErrGameRequestFailed: {Code: ErrGameRequestFailed, Message: "%s"},

	// 3xxx: User and Session Security Errors
	ErrUnauthorized:     {Code: ErrUnauthorized, Message: "Please sign in to continue.", Status: http.StatusUnauthorized},
	ErrAlreadyLoggedIn:  {Code: ErrAlreadyLoggedIn, Message: "You are already signed in."},
	ErrValidationFailed: {Code: ErrValidationFailed, Message: "Please correct the highlighted fields."},

	// 5xxx: Internal System Errors
	ErrUnknown: {Code: ErrUnknown, Message: "Something went wrong. Please try again.", Status: http.StatusInternalServerError},
}
