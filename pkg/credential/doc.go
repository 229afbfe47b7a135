// Package credential provides an application-facing fluent API over the
// miacl protocol: named string attributes instead of raw Fq scalars, a
// Builder that runs registration and signing behind a single Issue call,
// and a Presentation/Verifier pair for the show phase.
//
// Attribute values are hashed into Fq via SHA-256 before being committed,
// so callers work with ordinary string values instead of raw field
// elements.
//
// Example usage:
//
//	cred, err := credential.NewBuilder("https://example.com/schemas/identity", "issuer-1").
//		AddAttribute("name", "John Doe").
//		AddAttribute("email", "john@example.com").
//		WithRegistries(registries).
//		Issue(rand.Reader, params, pks, signers, "session-message")
//
//	presentation, err := cred.CreatePresentation(rand.Reader, []string{"name"})
//
//	err = credential.NewVerifier(params, pks, cred.Message(), cred.SignatureValue()).
//		SetPresentation(presentation).
//		ExpectIssuer("issuer-1").
//		Verify()
package credential

// DefaultSchemaVersion is an exported schema version label. Nothing in this
// package reads it, and Credential carries no schema-version field.
const DefaultSchemaVersion = "1.0"
