// Package gemini implements the robust generation provider on Google's Gemini
// API.
//
// The provider is the last stage of the fallback chain. It receives a
// credential on every call and keeps one genai client per credential, so key
// rotation happens in the router while connection setup is paid once per key.
//
// Key components:
//
// 1. Provider:
//   - Implements generation.Provider
//   - Sends the prompt plus an optional inline attachment (images, PDFs)
//   - Concatenates the text parts of the first candidate
//
// 2. Error Handling:
//   - Safety blocks become generation.ErrContentBlocked
//   - API errors become generation.ProviderError with the upstream status code
//   - No retries are made here; the router moves on to the next credential
package gemini
