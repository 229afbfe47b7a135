/*
Package miacl implements Multi-Issuer Anonymous Credentials with
Limited-linkability: a three-phase protocol between a user and N
independent signers that jointly issues a blind credential over a vector
of attributes.

The three phases are:

 1. Registration — the user commits to an attribute vector under a
    multi-base Pedersen commitment and proves knowledge of its opening via
    a PoK-DL proof; every signer independently verifies and stores the
    commitment.

 2. Signing — a four-round blind protocol in which the N signers jointly
    produce a single signature over the user's committed attributes
    without ever learning them, each contributing a share that is
    blinded, aggregated, and consistency-checked before the user unblinds
    the result.

 3. Show — the user derives a one-time, unlinkable proof of possession
    binding the signature to its full attribute opening, without
    revealing which signers were involved beyond what the signature
    already reveals. Selective disclosure of individual attribute values
    to a verifier's application logic is a layer above this package; see
    pkg/credential.

Usage:

	params, _ := miacl.NewParams(rand.Reader, numSigners, numAttrs)
	sks, pks, _ := miacl.KeyGen(params, rand.Reader)
	registries := make([]*miacl.SignerRegistry, numSigners)
	signers := make([]*miacl.Signer, numSigners)
	for i := range signers {
		registries[i] = miacl.NewSignerRegistry()
		signers[i] = miacl.NewSigner(params, i, sks[i], pks[i], registries[i])
	}

	reg, _ := miacl.Register(params, rand.Reader, attrs, registries)
	sig, rnd, gamma, _ := miacl.Sign(params, rand.Reader, pks, signers, m, reg.Commitment, reg.Opening)
	ok := miacl.Verify(params, pks, m, sig)

	secret := &miacl.ShowSecret{L0: reg.Opening.L0, Rnd: rnd, Gamma: gamma}
	proof, _ := miacl.Show(params, rand.Reader, pks, m, sig, attrs, secret)
	ok = miacl.ShowVerify(params, pks, m, sig, attrs, reg.Opening.L0, proof)
*/
package miacl
