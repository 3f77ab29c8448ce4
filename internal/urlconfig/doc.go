// Package urlconfig serializes settings into compact URL-safe tokens so a
// configuration can be shared as a link, and validates tokens back into
// settings.
//
// The wire format is a base64-encoded JSON object with single and
// double-letter keys; fields equal to their defaults are omitted. Two token
// generations are understood on decode: the old full-key single-provider
// format and the current compressed dual-provider format. Decoding is a
// single deterministic pass with hard size guards at every stage; a token
// either yields at least one complete provider configuration or is rejected
// entirely.
//
// Tokens carry the same secrets as the settings object. Treat a generated
// link exactly like the credentials inside it.
package urlconfig
