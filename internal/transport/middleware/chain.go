package middleware

import (
	"net/http"
	"slices"
)

// Middleware is a function that wraps an http.Handler. A nil Middleware is a
// disabled stage.
type Middleware func(http.Handler) http.Handler

// Chain combines middleware into one, outermost first:
// Chain(mw1, mw2)(h) is mw1(mw2(h)). Nil entries are skipped.
func Chain(mws ...Middleware) Middleware {
	return func(final http.Handler) http.Handler {
		for _, mw := range slices.Backward(mws) {
			if mw != nil {
				final = mw(final)
			}
		}
		return final
	}
}
