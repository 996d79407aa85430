package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/ledgerwatch/log/v3"

	"github.com/viniciusth/strindex"
)

// searcher answers occurrence queries over the text it was built from.
type searcher interface {
	Count(pattern []byte) int
}

type variant struct {
	name  string
	build func(text []byte) (searcher, error)
}

func indexVariant(config func(*strindex.IndexBuilder[byte]) *strindex.IndexBuilder[byte]) func([]byte) (searcher, error) {
	return func(text []byte) (searcher, error) {
		return config(strindex.NewIndexBuilder(text)).Build()
	}
}

// scanner rescans the text on every query.
type scanner struct {
	text []byte
	find func(text, pattern []byte) ([]int, error)
}

func (s scanner) Count(pattern []byte) int {
	offsets, err := s.find(s.text, pattern)
	if err != nil {
		panic(err)
	}
	return len(offsets)
}

// automatonSearcher only answers membership, so Count is 0 or 1.
type automatonSearcher struct {
	a *strindex.Automaton[byte]
}

func (s automatonSearcher) Count(pattern []byte) int {
	if s.a.Contains(pattern) {
		return 1
	}
	return 0
}

var variants = map[string]variant{
	"full":   {name: "full", build: indexVariant(func(b *strindex.IndexBuilder[byte]) *strindex.IndexBuilder[byte] { return b })},
	"no_lcp": {name: "no_lcp", build: indexVariant(func(b *strindex.IndexBuilder[byte]) *strindex.IndexBuilder[byte] { return b.SkipLCP() })},
	"kmp": {name: "kmp", build: func(text []byte) (searcher, error) {
		return scanner{text: text, find: strindex.FindOccurrences[byte]}, nil
	}},
	"z": {name: "z", build: func(text []byte) (searcher, error) {
		return scanner{text: text, find: strindex.FindOccurrencesZ[byte]}, nil
	}},
	"automaton": {name: "automaton", build: func(text []byte) (searcher, error) {
		a, err := strindex.NewAutomatonWithAlphabet[byte](strindex.LowercaseLatin)
		if err != nil {
			return nil, err
		}
		for _, c := range text {
			if err := a.Extend(c); err != nil {
				return nil, err
			}
		}
		return automatonSearcher{a: a}, nil
	}},
}

type densityType string

const (
	densityLow  densityType = "low"
	densityHigh densityType = "high"
)

type memMonitor struct {
	maxAlloc uint64
	stop     chan struct{}
	done     chan struct{}
}

func newMemMonitor() *memMonitor {
	mm := &memMonitor{stop: make(chan struct{}), done: make(chan struct{})}
	go func() {
		defer close(mm.done)
		for {
			var m runtime.MemStats
			runtime.ReadMemStats(&m)
			if m.Alloc > mm.maxAlloc {
				mm.maxAlloc = m.Alloc
			}
			select {
			case <-mm.stop:
				return
			default:
				time.Sleep(10 * time.Millisecond)
			}
		}
	}()
	return mm
}

func (mm *memMonitor) Stop() uint64 {
	close(mm.stop)
	<-mm.done
	return mm.maxAlloc
}

func getCurrentAlloc() uint64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.Alloc
}

func measureBuild(text []byte, build func([]byte) (searcher, error)) (time.Duration, uint64, uint64, searcher) {
	runtime.GC()
	mm := newMemMonitor()
	start := time.Now()
	s, err := build(text)
	if err != nil {
		panic(err)
	}
	dur := time.Since(start)
	peak := mm.Stop()
	runtime.GC()
	alloc := getCurrentAlloc()
	return dur, peak, alloc, s
}

func measureQuery(s searcher, patterns [][]byte) (time.Duration, uint64, uint64, int) {
	runtime.GC()
	mm := newMemMonitor()
	start := time.Now()
	matches := 0
	for _, p := range patterns {
		matches += s.Count(p)
	}
	dur := time.Since(start)
	peak := mm.Stop()
	runtime.GC()
	alloc := getCurrentAlloc()
	return dur, peak, alloc, matches
}

// generateText returns random lowercase text. With high density it is a
// random unit of length P repeated, so every query matches about N/P times.
func generateText(r *rand.Rand, N, P int, density densityType) []byte {
	text := make([]byte, N)
	if density == densityHigh {
		unit := make([]byte, P)
		for j := range unit {
			unit[j] = byte(r.Intn(26) + 'a')
		}
		for i := range text {
			text[i] = unit[i%P]
		}
		return text
	}
	for i := range text {
		text[i] = byte(r.Intn(26) + 'a')
	}
	return text
}

func runBenchmark(v variant, N, P, Q, runs int, density densityType) {
	for run := 0; run < runs; run++ {
		r := rand.New(rand.NewSource(int64(run)))
		text := generateText(r, N, P, density)

		bt, bp, ba, s := measureBuild(text, v.build)
		patterns := make([][]byte, Q)
		for i := range patterns {
			start := r.Intn(N - P + 1)
			patterns[i] = text[start : start+P]
		}
		qt, qp, qa, matches := measureQuery(s, patterns)
		log.Info("run finished", "variant", v.name, "run", run, "build", bt, "build_peak", humanize.Bytes(bp),
			"retained", humanize.Bytes(ba), "queries", qt, "query_peak", humanize.Bytes(qp), "matches", matches)

		fmt.Printf("%s,%d,%d,%d,%s,%.0f,%d,%d,%.0f,%d,%d\n",
			v.name, N, P, Q, density,
			float64(bt.Nanoseconds()), bp, ba,
			float64(qt.Nanoseconds()), qp, qa)
	}
}

func main() {
	variantName := flag.String("variant", "", "Variant to benchmark")
	n := flag.Int("n", 0, "Text length N")
	p := flag.Int("p", 0, "Pattern length P")
	q := flag.Int("q", 0, "Number of queries Q")
	runs := flag.Int("runs", 3, "Number of runs for averaging")
	d := flag.String("d", "low", "Density: low or high")
	verbosity := flag.String("verbosity", "warn", "Log level")
	cpuprofile := flag.String("cpuprofile", "", "Write CPU profile to file")
	flag.Parse()

	lvl, err := log.LvlFromString(*verbosity)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid verbosity: %v\n", err)
		os.Exit(1)
	}
	log.Root().SetHandler(log.LvlFilterHandler(lvl, log.StderrHandler))

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "could not create CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "could not start CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	if *variantName == "" || *n <= 0 || *p <= 0 || *q <= 0 || *p > *n {
		fmt.Println("Usage: go run main.go -variant=<variant> -n=<N> -p=<P> -q=<Q> -d=<density> [-runs=<runs>]")
		fmt.Println("Available variants: full, no_lcp, kmp, z, automaton")
		os.Exit(1)
	}

	v, ok := variants[*variantName]
	if !ok {
		fmt.Println("Invalid variant:", *variantName)
		os.Exit(1)
	}

	runBenchmark(v, *n, *p, *q, *runs, densityType(*d))
}
