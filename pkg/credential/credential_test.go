package credential

import (
	"crypto/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/omarrenawi/miacl-go/curve"
	"github.com/omarrenawi/miacl-go/miacl"
)

func setUp(t *testing.T, n, a int) (*miacl.Params, []curve.Point, []*miacl.SignerRegistry, []*miacl.Signer) {
	t.Helper()
	params, err := miacl.NewParams(rand.Reader, n, a)
	require.NoError(t, err)
	sks, pks, err := miacl.KeyGen(params, rand.Reader)
	require.NoError(t, err)

	registries := make([]*miacl.SignerRegistry, n)
	signers := make([]*miacl.Signer, n)
	for i := 0; i < n; i++ {
		registries[i] = miacl.NewSignerRegistry()
		signers[i] = miacl.NewSigner(params, i, sks[i], pks[i], registries[i])
	}
	return params, pks, registries, signers
}

func TestBuilderIssueVerifyPresent(t *testing.T) {
	params, pks, registries, signers := setUp(t, 2, 2)

	cred, err := NewBuilder("https://example.com/schemas/identity", "issuer-1").
		AddAttribute("name", "Ada Lovelace").
		AddAttribute("email", "ada@example.com").
		WithRegistries(registries).
		Issue(rand.Reader, params, pks, signers, "session-1")
	require.NoError(t, err)
	require.NoError(t, cred.Verify())

	presentation, err := cred.CreatePresentation(rand.Reader, []string{"name"})
	require.NoError(t, err)
	require.Equal(t, "Ada Lovelace", presentation.Attributes["name"])
	require.NotContains(t, presentation.Attributes, "email")

	err = NewVerifier(params, pks, cred.Message(), cred.SignatureValue()).
		SetPresentation(presentation).
		ExpectIssuer("issuer-1").
		ExpectSchema("https://example.com/schemas/identity").
		Verify()
	require.NoError(t, err)
}

func TestVerifierRejectsWrongIssuer(t *testing.T) {
	params, pks, registries, signers := setUp(t, 1, 1)

	cred, err := NewBuilder("schema", "issuer-a").
		AddAttribute("role", "admin").
		WithRegistries(registries).
		Issue(rand.Reader, params, pks, signers, "m")
	require.NoError(t, err)

	presentation, err := cred.CreatePresentation(rand.Reader, nil)
	require.NoError(t, err)

	err = NewVerifier(params, pks, cred.Message(), cred.SignatureValue()).
		SetPresentation(presentation).
		ExpectIssuer("issuer-b").
		Verify()
	require.Error(t, err)
}

func TestCredentialVerifyRejectsExpired(t *testing.T) {
	params, pks, registries, signers := setUp(t, 1, 1)

	past := time.Now().Add(-time.Hour)
	cred, err := NewBuilder("schema", "issuer-1").
		AddAttribute("tier", "gold").
		SetExpirationDate(past).
		WithRegistries(registries).
		Issue(rand.Reader, params, pks, signers, "m")
	require.NoError(t, err)

	err = cred.Verify()
	require.Error(t, err)
}

func TestBuilderIssueRejectsAttributeCountMismatch(t *testing.T) {
	params, pks, registries, signers := setUp(t, 1, 2)

	_, err := NewBuilder("schema", "issuer-1").
		AddAttribute("only-one", "x").
		WithRegistries(registries).
		Issue(rand.Reader, params, pks, signers, "m")
	require.Error(t, err)
}
