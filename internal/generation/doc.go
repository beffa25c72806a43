// Package generation routes text generation requests across AI providers.
//
// A Router walks an ordered list of attempt strategies: the fast provider
// with a subject-selected model, the fast provider's stable default model,
// and finally the robust provider once per credential in its rotating pool.
// The first successful attempt wins. When every attempt fails the router
// returns ErrAllAttemptsFailed wrapping the last failure.
//
// Providers are adapters defined elsewhere (platform/groq, platform/gemini)
// and plug in through the Provider interface, so the chain can be exercised
// in tests without any network access.
package generation
