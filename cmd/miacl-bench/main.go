// Command miacl-bench sweeps the protocol's phases over signer count and
// writes a CSV of every phase's timings plus one chart each for
// registration, signing, verification, and show (show verification is in
// the CSV only), replacing the original
// Python benchmark harness's matplotlib-based plot.py with go-chart/v2.
package main

import (
	"crypto/rand"
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/omarrenawi/miacl-go/curve"
	"github.com/omarrenawi/miacl-go/miacl"
)

func main() {
	minSigners := flag.Int("min-signers", 1, "smallest signer count to sweep")
	maxSigners := flag.Int("max-signers", 8, "largest signer count to sweep")
	attrs := flag.Int("attrs", 4, "number of attributes")
	iterations := flag.Int("iterations", 5, "sessions averaged per signer count")
	outDir := flag.String("out", ".", "directory to write bench.csv and the phase charts into")
	flag.Parse()

	if *minSigners < 1 || *maxSigners < *minSigners {
		fmt.Fprintln(os.Stderr, "miacl-bench: invalid --min-signers/--max-signers")
		os.Exit(1)
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "miacl-bench: %v\n", err)
		os.Exit(1)
	}

	var rows []row
	for n := *minSigners; n <= *maxSigners; n++ {
		r, err := benchOnce(n, *attrs, *iterations)
		if err != nil {
			fmt.Fprintf(os.Stderr, "miacl-bench: n=%d: %v\n", n, err)
			os.Exit(1)
		}
		rows = append(rows, r)
		fmt.Printf("N=%-3d register=%-10s sign=%-10s verify=%-10s show=%-10s show_verify=%-10s\n",
			n, r.register, r.sign, r.verify, r.show, r.showVerify)
	}

	if err := writeCSV(*outDir, rows); err != nil {
		fmt.Fprintf(os.Stderr, "miacl-bench: %v\n", err)
		os.Exit(1)
	}
	if err := writeCharts(*outDir, rows); err != nil {
		fmt.Fprintf(os.Stderr, "miacl-bench: %v\n", err)
		os.Exit(1)
	}
}

type row struct {
	n                                         int
	register, sign, verify, show, showVerify time.Duration
}

func benchOnce(n, a, iterations int) (row, error) {
	var r row
	r.n = n
	for iter := 0; iter < iterations; iter++ {
		params, err := miacl.NewParams(rand.Reader, n, a)
		if err != nil {
			return row{}, err
		}
		sks, pks, err := miacl.KeyGen(params, rand.Reader)
		if err != nil {
			return row{}, err
		}
		registries := make([]*miacl.SignerRegistry, n)
		signers := make([]*miacl.Signer, n)
		for i := 0; i < n; i++ {
			registries[i] = miacl.NewSignerRegistry()
			signers[i] = miacl.NewSigner(params, i, sks[i], pks[i], registries[i])
		}

		attrs := make([]curve.Scalar, a)
		for i := range attrs {
			attrs[i], err = curve.RandomScalar(rand.Reader)
			if err != nil {
				return row{}, err
			}
		}

		start := time.Now()
		reg, err := miacl.Register(params, rand.Reader, attrs, registries)
		if err != nil {
			return row{}, err
		}
		r.register += time.Since(start)

		m, err := curve.RandomScalar(rand.Reader)
		if err != nil {
			return row{}, err
		}

		start = time.Now()
		sig, rnd, gamma, err := miacl.Sign(params, rand.Reader, pks, signers, m, reg.Commitment, reg.Opening)
		if err != nil {
			return row{}, err
		}
		r.sign += time.Since(start)

		start = time.Now()
		miacl.Verify(params, pks, m, sig)
		r.verify += time.Since(start)

		secret := &miacl.ShowSecret{L0: reg.Opening.L0, Rnd: rnd, Gamma: gamma}
		start = time.Now()
		proof, err := miacl.Show(params, rand.Reader, pks, m, sig, attrs, secret)
		if err != nil {
			return row{}, err
		}
		r.show += time.Since(start)

		start = time.Now()
		miacl.ShowVerify(params, pks, m, sig, attrs, reg.Opening.L0, proof)
		r.showVerify += time.Since(start)
	}

	div := time.Duration(iterations)
	r.register /= div
	r.sign /= div
	r.verify /= div
	r.show /= div
	r.showVerify /= div
	return r, nil
}

func writeCSV(dir string, rows []row) error {
	f, err := os.Create(dir + "/bench.csv")
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"signers", "register_ns", "sign_ns", "verify_ns", "show_ns", "show_verify_ns"}); err != nil {
		return err
	}
	for _, r := range rows {
		record := []string{
			strconv.Itoa(r.n),
			strconv.FormatInt(r.register.Nanoseconds(), 10),
			strconv.FormatInt(r.sign.Nanoseconds(), 10),
			strconv.FormatInt(r.verify.Nanoseconds(), 10),
			strconv.FormatInt(r.show.Nanoseconds(), 10),
			strconv.FormatInt(r.showVerify.Nanoseconds(), 10),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return w.Error()
}

func writeCharts(dir string, rows []row) error {
	phases := []struct {
		name string
		at   func(row) float64
	}{
		{"registration", func(r row) float64 { return float64(r.register.Microseconds()) }},
		{"signing", func(r row) float64 { return float64(r.sign.Microseconds()) }},
		{"verification", func(r row) float64 { return float64(r.verify.Microseconds()) }},
		{"show", func(r row) float64 { return float64(r.show.Microseconds()) }},
	}

	xs := make([]float64, len(rows))
	for i, r := range rows {
		xs[i] = float64(r.n)
	}

	for _, phase := range phases {
		ys := make([]float64, len(rows))
		for i, r := range rows {
			ys[i] = phase.at(r)
		}

		graph := chart.Chart{
			Title: fmt.Sprintf("MIACL %s time vs. signer count", phase.name),
			XAxis: chart.XAxis{Name: "signers"},
			YAxis: chart.YAxis{Name: "microseconds"},
			Series: []chart.Series{
				chart.ContinuousSeries{
					Name:    phase.name,
					XValues: xs,
					YValues: ys,
				},
			},
		}

		f, err := os.Create(fmt.Sprintf("%s/%s.png", dir, phase.name))
		if err != nil {
			return err
		}
		err = graph.Render(chart.PNG, f)
		f.Close()
		if err != nil {
			return err
		}
	}
	return nil
}
