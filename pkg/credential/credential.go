package credential

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"
	"time"

	"github.com/omarrenawi/miacl-go/curve"
	"github.com/omarrenawi/miacl-go/internal/common"
	"github.com/omarrenawi/miacl-go/miacl"
)

// Credential is a MIACL joint signature over a named attribute vector,
// together with the user-side secrets (its registration opening and the
// sign session's show parameters) needed to later produce Show proofs.
type Credential struct {
	Schema         string
	Issuer         string
	IssuanceDate   time.Time
	ExpirationDate *time.Time
	Attributes     map[string]string

	attrNames []string
	params    *miacl.Params
	pks       []curve.Point
	message   curve.Scalar
	signature *miacl.Signature
	secret    *miacl.ShowSecret
	opening   []curve.Scalar
}

// Message returns the Fq-reduced message the credential's signature was
// issued over.
func (c *Credential) Message() curve.Scalar { return c.message }

// SignatureValue returns the joint signature itself.
func (c *Credential) SignatureValue() *miacl.Signature { return c.signature }

// Builder provides a fluent interface for driving a credential through
// registration and issuance.
type Builder struct {
	credential Credential
	registries []*miacl.SignerRegistry
}

// NewBuilder starts a new credential under the given schema and issuer
// label.
func NewBuilder(schema, issuer string) *Builder {
	return &Builder{
		credential: Credential{
			Schema:     schema,
			Issuer:     issuer,
			Attributes: make(map[string]string),
		},
	}
}

// SetExpirationDate sets when the credential expires.
func (b *Builder) SetExpirationDate(expiration time.Time) *Builder {
	b.credential.ExpirationDate = &expiration
	return b
}

// AddAttribute adds a named attribute to the credential being built.
func (b *Builder) AddAttribute(name, value string) *Builder {
	if _, exists := b.credential.Attributes[name]; !exists {
		b.credential.attrNames = append(b.credential.attrNames, name)
	}
	b.credential.Attributes[name] = value
	return b
}

// WithRegistries sets the N signer registries that registration will be
// broadcast to.
func (b *Builder) WithRegistries(registries []*miacl.SignerRegistry) *Builder {
	b.registries = registries
	return b
}

// attributeScalar reduces an attribute's string value into Fq via SHA-256
// so named string attributes can be committed and signed as scalars.
func attributeScalar(value string) curve.Scalar {
	digest := sha256.Sum256([]byte(value))
	return curve.ScalarFromBytes(digest[:])
}

// Issue runs registration against b's registries and then the four-round
// signing protocol against signers, returning the completed credential.
func (b *Builder) Issue(reader io.Reader, params *miacl.Params, pks []curve.Point, signers []*miacl.Signer, message string) (*Credential, error) {
	if reader == nil {
		reader = rand.Reader
	}
	if len(b.credential.attrNames) != params.A {
		return nil, fmt.Errorf("credential: params supports %d attributes, %d provided: %w", params.A, len(b.credential.attrNames), common.ErrMismatchedLengths)
	}

	attrs := make([]curve.Scalar, len(b.credential.attrNames))
	for i, name := range b.credential.attrNames {
		attrs[i] = attributeScalar(b.credential.Attributes[name])
	}

	reg, err := miacl.Register(params, reader, attrs, b.registries)
	if err != nil {
		return nil, fmt.Errorf("credential: registration failed: %w", err)
	}

	m := attributeScalar(message)
	sig, rnd, gamma, err := miacl.Sign(params, reader, pks, signers, m, reg.Commitment, reg.Opening)
	if err != nil {
		return nil, fmt.Errorf("credential: signing failed: %w", err)
	}

	cred := b.credential
	cred.IssuanceDate = time.Now()
	cred.params = params
	cred.pks = pks
	cred.message = m
	cred.signature = sig
	cred.opening = attrs
	cred.secret = &miacl.ShowSecret{L0: reg.Opening.L0, Rnd: rnd, Gamma: gamma}

	return &cred, nil
}

// Verify checks the credential's joint signature and, if set, that it has
// not expired.
func (c *Credential) Verify() error {
	if !miacl.Verify(c.params, c.pks, c.message, c.signature) {
		return fmt.Errorf("credential: invalid signature")
	}
	if c.ExpirationDate != nil && time.Now().After(*c.ExpirationDate) {
		return fmt.Errorf("credential: expired")
	}
	return nil
}

// CreatePresentation produces a Show proof binding the credential's
// signature to its full attribute opening, and carries the named
// disclosedAttrs' values along in the presentation payload for the
// verifying party's application logic to read. The underlying Show proof
// always reveals the complete opening to the verifier: disclosedAttrs only
// controls what the presentation's JSON surfaces to a reader, not what the
// proof itself conceals.
func (c *Credential) CreatePresentation(reader io.Reader, disclosedAttrs []string) (*Presentation, error) {
	if reader == nil {
		reader = rand.Reader
	}

	l := make([]curve.Scalar, len(c.opening))
	copy(l, c.opening)

	proof, err := miacl.Show(c.params, reader, c.pks, c.message, c.signature, l, c.secret)
	if err != nil {
		return nil, fmt.Errorf("credential: show failed: %w", err)
	}

	attrs := make(map[string]string, len(disclosedAttrs))
	for _, name := range disclosedAttrs {
		if v, ok := c.Attributes[name]; ok {
			attrs[name] = v
		}
	}

	return &Presentation{
		Schema:     c.Schema,
		Issuer:     c.Issuer,
		Created:    time.Now(),
		Attributes: attrs,
		L0:         c.secret.L0,
		L:          l,
		Proof:      proof,
	}, nil
}
