package miacl

import (
	"encoding/json"
	"io"
	"math/big"

	"github.com/omarrenawi/miacl-go/curve"
)

// Fixture is a downstream interop artifact distinct from Signature: the
// single-issuer base-signature schema the original benchmark harness's
// fixture writer emits (input.json: R_bar, m, pks, y_bar, z_bar), over the
// degenerate N=1 per-signer relation R̄ = g·z + pk·(c+ȳ³) rather than this
// package's eight-tuple joint signature. The writer that produced it has
// nothing to do with Sign's output shape; it predates the multi-issuer
// extension and is kept here only because downstream verifiers still
// consume files in this shape.
type Fixture struct {
	RBar curve.Point   `json:"R_bar"`
	M    *big.Int      `json:"m"`
	PKs  []curve.Point `json:"pks"`
	YBar *big.Int      `json:"y_bar"`
	ZBar *big.Int      `json:"z_bar"`
}

// NewFixture derives the base per-signer fixture from a single signer's
// Schnorr response z, the challenge c it answered, its public key pk, and
// the session's unblinded nonce yBar.
func NewFixture(g, pk curve.Point, m, c, z, yBar curve.Scalar) *Fixture {
	exp := c.Add(yBar.Cube())
	rBar := g.ScalarMul(z).Add(pk.ScalarMul(exp))
	return &Fixture{
		RBar: rBar,
		M:    m.BigInt(),
		PKs:  []curve.Point{pk},
		YBar: yBar.BigInt(),
		ZBar: z.BigInt(),
	}
}

// WriteJSON writes the fixture in the schema generate-fixtures.py's
// input.json used, indented for readability.
func (f *Fixture) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(f)
}

// ReadFixture parses a fixture previously written by WriteJSON.
func ReadFixture(r io.Reader) (*Fixture, error) {
	var f Fixture
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, err
	}
	return &f, nil
}
