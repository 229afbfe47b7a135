package credential

import (
	"fmt"
	"time"

	"github.com/omarrenawi/miacl-go/curve"
	"github.com/omarrenawi/miacl-go/miacl"
)

// Presentation is a Show proof plus the application-level metadata a
// verifier's business logic cares about: which schema and issuer it claims,
// and which named attribute values the presenter chose to carry along.
type Presentation struct {
	Schema     string            `json:"schema"`
	Issuer     string            `json:"issuer"`
	Created    time.Time         `json:"created"`
	Attributes map[string]string `json:"attributes"`
	L0         curve.Scalar      `json:"l0"`
	L          []curve.Scalar    `json:"l"`
	Proof      *miacl.ShowProof  `json:"proof"`
}

// Verifier provides a fluent interface for checking a presentation against
// a signature's public context plus any application-level expectations.
type Verifier struct {
	params    *miacl.Params
	pks       []curve.Point
	message   curve.Scalar
	signature *miacl.Signature

	presentation   *Presentation
	expectedIssuer string
	expectedSchema string
}

// NewVerifier constructs a Verifier bound to the signing context the
// presentation must check against: the issuer set, the signed message, and
// the signature itself.
func NewVerifier(params *miacl.Params, pks []curve.Point, message curve.Scalar, signature *miacl.Signature) *Verifier {
	return &Verifier{params: params, pks: pks, message: message, signature: signature}
}

// SetPresentation sets the presentation to verify.
func (v *Verifier) SetPresentation(p *Presentation) *Verifier {
	v.presentation = p
	return v
}

// ExpectIssuer requires the presentation to claim a specific issuer.
func (v *Verifier) ExpectIssuer(issuer string) *Verifier {
	v.expectedIssuer = issuer
	return v
}

// ExpectSchema requires the presentation to claim a specific schema.
func (v *Verifier) ExpectSchema(schema string) *Verifier {
	v.expectedSchema = schema
	return v
}

// Verify checks the presentation's metadata expectations and its
// underlying Show proof.
func (v *Verifier) Verify() error {
	if v.presentation == nil {
		return fmt.Errorf("credential: no presentation provided")
	}
	p := v.presentation
	if v.expectedIssuer != "" && p.Issuer != v.expectedIssuer {
		return fmt.Errorf("credential: unexpected issuer: expected %s, got %s", v.expectedIssuer, p.Issuer)
	}
	if v.expectedSchema != "" && p.Schema != v.expectedSchema {
		return fmt.Errorf("credential: unexpected schema: expected %s, got %s", v.expectedSchema, p.Schema)
	}
	if !miacl.ShowVerify(v.params, v.pks, v.message, v.signature, p.L, p.L0, p.Proof) {
		return fmt.Errorf("credential: show proof verification failed")
	}
	return nil
}
