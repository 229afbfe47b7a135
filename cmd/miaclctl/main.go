// Command miaclctl drives the MIACL protocol end to end from the command
// line: generating parameters and keys, running a full registration/sign/
// show pipeline in-process, and emitting the single-issuer interop fixture
// downstream verifiers consume.
package main

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/omarrenawi/miacl-go/curve"
	"github.com/omarrenawi/miacl-go/miacl"
)

var (
	numSigners int
	numAttrs   int
	outputFile string
	message    string
)

var rootCmd = &cobra.Command{
	Use:   "miaclctl",
	Short: "Drive the MIACL multi-issuer anonymous credential protocol",
}

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate signer parameters and keys",
	RunE:  runKeygen,
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run registration, signing, verification, and show end to end",
	RunE:  runDemo,
}

var fixtureCmd = &cobra.Command{
	Use:   "fixture",
	Short: "Emit the single-issuer interop fixture (input.json schema)",
	RunE:  runFixture,
}

func init() {
	rootCmd.PersistentFlags().IntVarP(&numSigners, "signers", "N", 3, "number of signers")
	rootCmd.PersistentFlags().IntVarP(&numAttrs, "attrs", "A", 3, "number of attributes")
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "output file (default stdout)")

	demoCmd.Flags().StringVarP(&message, "message", "m", "hello-miacl", "message to sign")
	fixtureCmd.Flags().StringVarP(&message, "message", "m", "hello-miacl", "message to sign")

	rootCmd.AddCommand(keygenCmd, demoCmd, fixtureCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "miaclctl: %v\n", err)
		os.Exit(1)
	}
}

type keyOutput struct {
	SKs []curve.Scalar `json:"sks"`
	PKs []curve.Point  `json:"pks"`
}

func runKeygen(cmd *cobra.Command, args []string) error {
	params, err := miacl.NewParams(rand.Reader, numSigners, numAttrs)
	if err != nil {
		return err
	}
	sks, pks, err := miacl.KeyGen(params, rand.Reader)
	if err != nil {
		return err
	}
	return writeJSON(keyOutput{SKs: sks, PKs: pks})
}

func setUp(n, a int) (*miacl.Params, []curve.Scalar, []curve.Point, []*miacl.SignerRegistry, []*miacl.Signer, error) {
	params, err := miacl.NewParams(rand.Reader, n, a)
	if err != nil {
		return nil, nil, nil, nil, nil, err
	}
	sks, pks, err := miacl.KeyGen(params, rand.Reader)
	if err != nil {
		return nil, nil, nil, nil, nil, err
	}
	registries := make([]*miacl.SignerRegistry, n)
	signers := make([]*miacl.Signer, n)
	for i := 0; i < n; i++ {
		registries[i] = miacl.NewSignerRegistry()
		signers[i] = miacl.NewSigner(params, i, sks[i], pks[i], registries[i])
	}
	return params, sks, pks, registries, signers, nil
}

func runDemo(cmd *cobra.Command, args []string) error {
	params, _, pks, registries, signers, err := setUp(numSigners, numAttrs)
	if err != nil {
		return err
	}

	attrs, err := randomAttrs(params.A)
	if err != nil {
		return err
	}
	reg, err := miacl.Register(params, rand.Reader, attrs, registries)
	if err != nil {
		return fmt.Errorf("registration: %w", err)
	}

	m := curve.ScalarFromBytes([]byte(message))
	sig, rnd, gamma, err := miacl.Sign(params, rand.Reader, pks, signers, m, reg.Commitment, reg.Opening)
	if err != nil {
		return fmt.Errorf("sign: %w", err)
	}

	if !miacl.Verify(params, pks, m, sig) {
		return fmt.Errorf("demo: signature did not verify")
	}

	secret := &miacl.ShowSecret{L0: reg.Opening.L0, Rnd: rnd, Gamma: gamma}
	proof, err := miacl.Show(params, rand.Reader, pks, m, sig, attrs, secret)
	if err != nil {
		return fmt.Errorf("show: %w", err)
	}
	if !miacl.ShowVerify(params, pks, m, sig, attrs, reg.Opening.L0, proof) {
		return fmt.Errorf("demo: show proof did not verify")
	}

	fmt.Println("registration, signing, verification, and show all succeeded")
	return nil
}

// runFixture emits the single-issuer interop schema directly over the base
// per-signer relation R_bar = g*z + pk*(c+y_bar^3), rather than deriving it
// from a full joint-signature run: the fixture schema predates the
// multi-issuer extension and is unrelated to Signature's eight-tuple shape
// (see miacl.Fixture's doc comment).
func runFixture(cmd *cobra.Command, args []string) error {
	params, err := miacl.NewParams(rand.Reader, 1, numAttrs)
	if err != nil {
		return err
	}
	sk, err := curve.RandomScalar(rand.Reader)
	if err != nil {
		return err
	}
	pk := params.G.ScalarMul(sk)

	m := curve.ScalarFromBytes([]byte(message))
	c, err := curve.RandomScalar(rand.Reader)
	if err != nil {
		return err
	}
	yBar, err := curve.NonZeroRandomScalar(rand.Reader)
	if err != nil {
		return err
	}
	a, err := curve.RandomScalar(rand.Reader)
	if err != nil {
		return err
	}
	z := a.Add(c.Add(yBar.Cube()).Mul(sk))

	fixture := miacl.NewFixture(params.G, pk, m, c, z, yBar)
	return writeJSON(fixture)
}

func randomAttrs(a int) ([]curve.Scalar, error) {
	out := make([]curve.Scalar, a)
	for i := range out {
		s, err := curve.RandomScalar(rand.Reader)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

func writeJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if outputFile == "" {
		fmt.Println(string(b))
		return nil
	}
	return os.WriteFile(outputFile, b, 0o600)
}
