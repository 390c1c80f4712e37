// Package provider implements the chat backend against the Gemini API.
//
// The Provider interface and StreamCallback live in the model package
// (model/provider.go) to avoid import cycles; this package implements
// model.Provider and owns all conversions between the application's
// types and the genai wire types. Streamed parts are classified into
// reasoning, reply prose and tool calls before they reach the caller,
// so nothing above this layer knows about genai.
package provider
