package miacl

import (
	"bytes"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/omarrenawi/miacl-go/curve"
	"github.com/omarrenawi/miacl-go/internal/common"
	"github.com/omarrenawi/miacl-go/internal/pool"
	"github.com/omarrenawi/miacl-go/pkg/crypto"
	"github.com/omarrenawi/miacl-go/pkg/utils"
)

// SignerState is one signer's position in the four-round signing state
// machine. The explicit states make each Signer method's precondition
// self-documenting instead of relying on which zero-valued fields happen
// to be set.
type SignerState int

const (
	StateAwaitNonce SignerState = iota
	StateAwaitCommit
	StateAwaitChallenge
	StateAwaitOpenings
	StateDone
)

// Signature is the joint output of Sign: σ = (μ, ζ, ζ₁, b̄, π, R̄, ȳ, z̄).
type Signature struct {
	Mu    curve.Scalar
	Zeta  curve.Point
	Zeta1 curve.Point
	BBar  curve.Scalar
	Pi    *PoKDLProof
	RBar  curve.Point
	YBar  curve.Scalar
	ZBar  curve.Scalar
}

// Signer is one signer's state across a single four-round signing session.
// Its nonce a never leaves the struct; callers receive the public points
// derived from its secrets, the opening (b, y) of its round-2 commitment
// via Opening, and, at the very end, the Schnorr response z.
type Signer struct {
	idx      int
	sk       curve.Scalar
	pk       curve.Point
	params   *Params
	registry *SignerRegistry
	state    SignerState

	rnd curve.Scalar

	a, b, y curve.Scalar
	t1, t2  curve.Point
	aPoint  curve.Point
	bPoint  curve.Point
	com     []byte

	cji  curve.Scalar
	coms [][]byte
	bs   []*curve.Point
}

// NewSigner constructs a fresh per-session state machine for signer idx.
// sk/pk must be the keypair produced for that index by KeyGen.
func NewSigner(params *Params, idx int, sk curve.Scalar, pk curve.Point, registry *SignerRegistry) *Signer {
	return &Signer{
		idx:      idx,
		sk:       sk,
		pk:       pk,
		params:   params,
		registry: registry,
		state:    StateAwaitNonce,
	}
}

// Nonce is round 1: the signer samples and returns its share of the shared
// session nonce rnd.
func (s *Signer) Nonce(reader io.Reader) (curve.Scalar, error) {
	if s.state != StateAwaitNonce {
		return curve.Scalar{}, fmt.Errorf("miacl: signer %d: Nonce called out of order", s.idx)
	}
	r, err := curve.RandomScalar(reader)
	if err != nil {
		return curve.Scalar{}, err
	}
	s.rnd = r
	s.state = StateAwaitCommit
	return r, nil
}

// Round2Msg is a signer's round-2 broadcast: its commitment to a, its
// blinded opening point, and a digest binding it to (b_i, y_i) it will
// later reveal.
type Round2Msg struct {
	A   curve.Point
	B   curve.Point
	Com []byte
}

// Commit is round 2: the signer checks that c is a commitment it accepted
// during registration, then samples its contribution and returns (A_i, B_i,
// com_i).
func (s *Signer) Commit(reader io.Reader, c curve.Point, rnd curve.Scalar) (*Round2Msg, error) {
	if s.state != StateAwaitCommit {
		return nil, fmt.Errorf("miacl: signer %d: Commit called out of order", s.idx)
	}
	if !s.registry.Has(c) {
		return nil, abort(UnknownCommitment, fmt.Sprintf("signer %d: commitment not found in registration set", s.idx))
	}

	a, err := curve.RandomScalar(reader)
	if err != nil {
		return nil, err
	}
	b, err := curve.RandomScalar(reader)
	if err != nil {
		return nil, err
	}
	y, err := curve.RandomScalar(reader)
	if err != nil {
		return nil, err
	}

	t1 := s.params.G.ScalarMul(rnd).Add(c)
	t2 := s.params.T.Sub(t1)
	aPoint := s.params.G.ScalarMul(a)
	bPoint := t2.ScalarMul(b).Add(s.params.H.ScalarMul(y))
	com := hCom(s.idx, b, y)

	s.a, s.b, s.y = a, b, y
	s.t1, s.t2 = t1, t2
	s.aPoint, s.bPoint, s.com = aPoint, bPoint, com
	s.state = StateAwaitChallenge

	return &Round2Msg{A: aPoint, B: bPoint, Com: com}, nil
}

// Challenge is round 3a: the signer records its per-signer challenge
// scalar and the blanked com/B vectors (nil at its own index), filling its
// own slots from what it already knows locally.
func (s *Signer) Challenge(cji curve.Scalar, comsMinusSelf [][]byte, bsMinusSelf []*curve.Point) {
	coms := make([][]byte, len(comsMinusSelf))
	copy(coms, comsMinusSelf)
	coms[s.idx] = s.com

	bs := make([]*curve.Point, len(bsMinusSelf))
	copy(bs, bsMinusSelf)
	bp := s.bPoint
	bs[s.idx] = &bp

	s.cji = cji
	s.coms = coms
	s.bs = bs
	s.state = StateAwaitOpenings
}

// Opening is round 3b: the signer reveals the opening of its own
// round-2 commitment to the user.
func (s *Signer) Opening() (curve.Scalar, curve.Scalar) {
	return s.b, s.y
}

// Respond is round 4: given the full b/y vectors (blanked at its own
// index, which it fills in from what it already knows), the signer checks
// every commitment opening and every B-point relation, then returns its
// Schnorr response z_i.
func (s *Signer) Respond(bsMinusSelf, ysMinusSelf []*curve.Scalar) (curve.Scalar, error) {
	if s.state != StateAwaitOpenings {
		return curve.Scalar{}, fmt.Errorf("miacl: signer %d: Respond called out of order", s.idx)
	}
	n := len(bsMinusSelf)
	bVals := make([]curve.Scalar, n)
	yVals := make([]curve.Scalar, n)
	for j := range bVals {
		if j == s.idx {
			bVals[j], yVals[j] = s.b, s.y
			continue
		}
		if bsMinusSelf[j] == nil || ysMinusSelf[j] == nil {
			return curve.Scalar{}, fmt.Errorf("miacl: signer %d: missing opening for signer %d", s.idx, j)
		}
		bVals[j], yVals[j] = *bsMinusSelf[j], *ysMinusSelf[j]
	}

	for j := range s.coms {
		if !bytes.Equal(s.coms[j], hCom(j, bVals[j], yVals[j])) {
			return curve.Scalar{}, abort(CommitmentOpeningMismatch, fmt.Sprintf("signer %d: commitment %d does not open to revealed (b,y)", s.idx, j))
		}
	}
	for j := range s.bs {
		if s.bs[j] == nil {
			return curve.Scalar{}, fmt.Errorf("miacl: signer %d: missing B point for signer %d", s.idx, j)
		}
		want := s.params.H.ScalarMul(yVals[j]).Add(s.t2.ScalarMul(bVals[j]))
		if !s.bs[j].Equal(want) {
			return curve.Scalar{}, abort(PointConsistencyFail, fmt.Sprintf("signer %d: B_%d inconsistent with revealed (b,y)", s.idx, j))
		}
	}

	ySum := curve.SumScalars(yVals)
	z := s.a.Add(s.cji.Add(ySum.Cube()).Mul(s.sk))
	s.state = StateDone
	return z, nil
}

// Sign orchestrates the four-round blind joint signature between
// the user and every signer in signers, for signer i at index i matching
// pks[i]. c and opening must be the commitment and opening produced by a
// Register call every one of signers's registries has already accepted.
//
// On success, Sign always self-verifies its output and aborts with
// SelfVerifyFail rather than returning a signature that would not itself
// pass Verify.
func Sign(params *Params, reader io.Reader, pks []curve.Point, signers []*Signer, m curve.Scalar, c curve.Point, opening *Opening) (*Signature, curve.Scalar, curve.Scalar, error) {
	n := len(signers)
	if n != params.N || len(pks) != params.N {
		return nil, curve.Scalar{}, curve.Scalar{}, fmt.Errorf("miacl: sign: expected %d signers, got %d signers and %d keys: %w", params.N, n, len(pks), common.ErrMismatchedLengths)
	}
	if len(opening.L) != params.A {
		return nil, curve.Scalar{}, curve.Scalar{}, fmt.Errorf("miacl: sign: opening has %d attributes, params want %d: %w", len(opening.L), params.A, common.ErrMismatchedLengths)
	}

	session := NewSignSession(n)

	// Round 1: nonce exchange.
	rndShares := make([]curve.Scalar, n)
	if err := forEachSigner(session, signers, func(i int, sgn *Signer) error {
		r, err := sgn.Nonce(reader)
		if err != nil {
			return err
		}
		rndShares[i] = r
		return nil
	}); err != nil {
		return nil, curve.Scalar{}, curve.Scalar{}, err
	}
	rnd := hRnd(rndShares)

	// Round 2: per-signer commitments.
	round2 := make([]*Round2Msg, n)
	if err := forEachSigner(session, signers, func(i int, sgn *Signer) error {
		msg, err := sgn.Commit(reader, c, rnd)
		if err != nil {
			return err
		}
		round2[i] = msg
		return nil
	}); err != nil {
		return nil, curve.Scalar{}, curve.Scalar{}, err
	}

	aPoints := make([]curve.Point, n)
	bPoints := make([]curve.Point, n)
	coms := make([][]byte, n)
	for i, msg := range round2 {
		aPoints[i], bPoints[i], coms[i] = msg.A, msg.B, msg.Com
	}
	aSum := curve.SumPoints(aPoints)
	bSum := curve.SumPoints(bPoints)

	t1 := params.G.ScalarMul(rnd).Add(c)
	t2 := params.T.Sub(t1)

	// Round 3: the user derives its blinding factors and per-signer
	// challenges.
	alpha, err := curve.NonZeroRandomScalar(reader)
	if err != nil {
		return nil, curve.Scalar{}, curve.Scalar{}, err
	}
	r, err := curve.RandomScalar(reader)
	if err != nil {
		return nil, curve.Scalar{}, curve.Scalar{}, err
	}
	gamma, err := curve.NonZeroRandomScalar(reader)
	if err != nil {
		return nil, curve.Scalar{}, curve.Scalar{}, err
	}
	tau, err := curve.RandomScalar(reader)
	if err != nil {
		return nil, curve.Scalar{}, curve.Scalar{}, err
	}
	eta, err := curve.RandomScalar(reader)
	if err != nil {
		return nil, curve.Scalar{}, curve.Scalar{}, err
	}
	betas, err := utils.RandomScalars(reader, n)
	if err != nil {
		return nil, curve.Scalar{}, curve.Scalar{}, err
	}

	zeta := params.T.ScalarMul(gamma)
	zeta1 := t1.ScalarMul(gamma)
	zeta2 := zeta.Sub(zeta1)
	theta := params.T.ScalarMul(tau)

	bBar := bSum.ScalarMul(gamma.Mul(alpha)).Add(zeta2.ScalarMul(eta))

	alphaCube := alpha.Cube()
	gammaCube := gamma.Cube()
	alphaGammaCube := alphaCube.Mul(gammaCube)

	pkBetaScalars := pool.GetScalars(n)
	defer pool.PutScalars(pkBetaScalars)
	for i, beta := range betas {
		pkBetaScalars[i] = alphaGammaCube.Mul(beta)
	}
	pkBetaSum, err := crypto.MultiScalarMul(pks, pkBetaScalars)
	if err != nil {
		return nil, curve.Scalar{}, curve.Scalar{}, err
	}

	rBar := params.G.ScalarMul(r).Add(pkBetaSum).Add(aSum.ScalarMul(alphaGammaCube)).Add(bBar)

	alphaCubeInv, err := alphaCube.Inverse()
	if err != nil {
		return nil, curve.Scalar{}, curve.Scalar{}, err
	}
	gammaCubeInv, err := gammaCube.Inverse()
	if err != nil {
		return nil, curve.Scalar{}, curve.Scalar{}, err
	}
	invProd := alphaCubeInv.Mul(gammaCubeInv)

	cjis := make([]curve.Scalar, n)
	for i, pk := range pks {
		cjis[i] = hSig(pks, pk, zeta, zeta1, rBar, bBar, theta, m).Mul(invProd).Add(betas[i])
	}

	// Round 3: deliver the challenge and blanked vectors to every signer,
	// collect each signer's (b_i, y_i) reply.
	bVals := make([]curve.Scalar, n)
	yVals := make([]curve.Scalar, n)
	for i, sgn := range signers {
		comsMinusSelf := make([][]byte, n)
		copy(comsMinusSelf, coms)
		comsMinusSelf[i] = nil

		bsMinusSelf := make([]*curve.Point, n)
		for j := range bPoints {
			if j == i {
				continue
			}
			bp := bPoints[j]
			bsMinusSelf[j] = &bp
		}

		sgn.Challenge(cjis[i], comsMinusSelf, bsMinusSelf)
		bVals[i], yVals[i] = sgn.Opening()
	}

	bSumFull := curve.SumScalars(bVals)
	ySumFull := curve.SumScalars(yVals)

	// Round 4: hand back the blanked (b,y) vectors, collect each signer's
	// Schnorr response z_i.
	zs := make([]curve.Scalar, n)
	if err := forEachSigner(session, signers, func(i int, sgn *Signer) error {
		bsMinusSelf := make([]*curve.Scalar, n)
		ysMinusSelf := make([]*curve.Scalar, n)
		for j := range bVals {
			if j == i {
				continue
			}
			bv, yv := bVals[j], yVals[j]
			bsMinusSelf[j], ysMinusSelf[j] = &bv, &yv
		}
		z, err := sgn.Respond(bsMinusSelf, ysMinusSelf)
		if err != nil {
			return err
		}
		zs[i] = z
		return nil
	}); err != nil {
		return nil, curve.Scalar{}, curve.Scalar{}, err
	}
	zSum := curve.SumScalars(zs)

	// User-side consistency checks.
	wantBSum := t2.ScalarMul(bSumFull).Add(params.H.ScalarMul(ySumFull))
	if !bSum.Equal(wantBSum) {
		return nil, curve.Scalar{}, curve.Scalar{}, abort(UserConsistencyFail, "B_sum does not match t2*b_sum + h*y_sum")
	}

	exps := pool.GetScalars(n)
	defer pool.PutScalars(exps)
	ySumCube := ySumFull.Cube()
	for i := range cjis {
		exps[i] = cjis[i].Add(ySumCube)
	}
	pkSum, err := crypto.MultiScalarMul(pks, exps)
	if err != nil {
		return nil, curve.Scalar{}, curve.Scalar{}, err
	}
	if !params.G.ScalarMul(zSum).Equal(aSum.Add(pkSum)) {
		return nil, curve.Scalar{}, curve.Scalar{}, abort(UserConsistencyFail, "g*z_sum does not match A_sum + sum(pk_i*(c_i+y_sum^3))")
	}

	// Unblind.
	zBar := r.Add(gammaCube.Mul(alphaCube).Mul(zSum))
	yBar := alpha.Mul(ySumFull).Mul(gamma)
	bBarFinal := alpha.Mul(bSumFull).Add(eta)
	mu := tau.Sub(gamma.Mul(yBar))

	if yBar.IsZero() {
		return nil, curve.Scalar{}, curve.Scalar{}, ErrNonceDegenerate
	}

	op := make([]curve.Scalar, 0, params.A+2)
	op = append(op, gamma.Mul(opening.L0))
	for _, l := range opening.L {
		op = append(op, gamma.Mul(l))
	}
	op = append(op, gamma.Mul(rnd))

	basis := pool.GetPoints(len(params.Hs) + 1)
	defer pool.PutPoints(basis)
	copy(basis, params.Hs)
	basis[len(params.Hs)] = params.G

	pi, err := ProvePoKDL(reader, zeta1, op, basis)
	if err != nil {
		return nil, curve.Scalar{}, curve.Scalar{}, err
	}

	sig := &Signature{
		Mu:    mu,
		Zeta:  zeta,
		Zeta1: zeta1,
		BBar:  bBarFinal,
		Pi:    pi,
		RBar:  rBar,
		YBar:  yBar,
		ZBar:  zBar,
	}

	if !Verify(params, pks, m, sig) {
		return nil, curve.Scalar{}, curve.Scalar{}, abort(SelfVerifyFail, "assembled signature did not pass self-verification")
	}

	return sig, rnd, gamma, nil
}

// forEachSigner runs fn for every signer concurrently against session,
// marking each signer responded as soon as its fn call returns
// successfully. Round-2 and round-4 work is independent across signers
// within a round, so it can run this way safely.
//
// The group has no cancellation, so every fn call runs to completion before
// forEachSigner returns. If the round does not finish cleanly, the returned
// error names the signers session.Pending() still lists as unanswered,
// which are exactly the signers whose fn call failed.
func forEachSigner(session *SignSession, signers []*Signer, fn func(i int, sgn *Signer) error) error {
	var g errgroup.Group
	for i, sgn := range signers {
		i, sgn := i, sgn
		g.Go(func() error {
			if err := fn(i, sgn); err != nil {
				return err
			}
			session.MarkResponded(i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if pending := session.Pending(); len(pending) > 0 {
			return fmt.Errorf("miacl: sign: session %s: signers %v still pending: %w", session.ID, pending, err)
		}
		return err
	}
	if !session.AllResponded() {
		return fmt.Errorf("miacl: sign: session %s: round finished but signers %v never responded", session.ID, session.Pending())
	}
	session.ResetRound()
	return nil
}
