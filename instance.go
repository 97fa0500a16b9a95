/*
 *  instance.go
 *  acosbh
 *
 *  Created by Haibao Tang on 10/19/26
 *  Copyright © 2026 Haibao Tang. All rights reserved.
 */

package acosbh

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"math/rand"
	"strings"

	"github.com/shenwei356/bio/seq"
	"github.com/shenwei356/bio/seqio/fastx"
	"github.com/shenwei356/xopen"
)

// Instance is one reconstruction problem: a spectrum, the oligomer length and
// optionally the DNA it came from
type Instance struct {
	Reference    string // empty when unknown, which disables fitness
	Spectrum     []string
	K            int
	TargetLength int
	Start        string // leading fragment of the DNA
}

// NewInstance makes an instance with a known reference. Duplicate oligomers
// are dropped and the leading k-mer of the reference is put in front of the
// spectrum when it is missing.
func NewInstance(reference string, spectrum []string, k int) (*Instance, error) {
	if k < 1 || len(reference) < k {
		return nil, fmt.Errorf("%w: need 1 <= k <= %d, got k = %d",
			ErrConfiguration, len(reference), k)
	}
	start := reference[:k]
	spectrum = dedupSpectrum(spectrum)
	found := false
	for _, oligo := range spectrum {
		if oligo == start {
			found = true
			break
		}
	}
	if !found {
		log.Noticef("Start fragment %s not in spectrum, adding it", start)
		spectrum = append([]string{start}, spectrum...)
	}
	return &Instance{
		Reference:    reference,
		Spectrum:     spectrum,
		K:            k,
		TargetLength: len(reference),
		Start:        start,
	}, nil
}

// NewBlindInstance makes an instance without a reference. The start fragment
// has to be supplied and must be found in the spectrum at search time.
func NewBlindInstance(spectrum []string, k, targetLength int, start string) (*Instance, error) {
	if k < 1 || targetLength < k || start == "" {
		return nil, fmt.Errorf("%w: need k >= 1, target length >= k and a start fragment",
			ErrConfiguration)
	}
	return &Instance{
		Spectrum:     dedupSpectrum(spectrum),
		K:            k,
		TargetLength: targetLength,
		Start:        start,
	}, nil
}

// MaxUsable is the number of oligomers a perfect walk of TargetLength consumes
func (r *Instance) MaxUsable() int {
	return r.TargetLength - r.K + 1
}

// Graph builds the overlap graph of the spectrum
func (r *Instance) Graph() *OverlapGraph {
	return NewOverlapGraph(r.Spectrum, r.K)
}

// String outputs the string representation of Instance
func (r *Instance) String() string {
	return fmt.Sprintf("Instance:\n\tDNA: %s\n\tk: %d\n\tTarget length: %d\n\tSpectrum: %d oligomers",
		r.Reference, r.K, r.TargetLength, len(r.Spectrum))
}

func dedupSpectrum(spectrum []string) []string {
	deduped := unique(spectrum)
	if n := len(spectrum) - len(deduped); n > 0 {
		log.Warningf("Dropped %d duplicate oligomers", n)
	}
	return deduped
}

// Generator makes a random instance with negative (missing) and positive
// (spurious) errors in the spectrum
type Generator struct {
	Length    int
	K         int
	Negatives float64 // fraction of the spectrum to remove
	Positives float64 // fraction of the spectrum to add as random oligomers
	Alphabet  string
	Seed      int64
}

// Run kicks off the Generator
func (r *Generator) Run() (*Instance, error) {
	if r.K < 1 || r.Length < r.K {
		return nil, fmt.Errorf("%w: need 1 <= k <= length, got k = %d, length = %d",
			ErrConfiguration, r.K, r.Length)
	}
	if r.Negatives < 0 || r.Negatives > 1 || r.Positives < 0 || r.Positives > 1 {
		return nil, fmt.Errorf("%w: error rates must be in [0, 1]", ErrConfiguration)
	}
	alphabet := r.Alphabet
	if alphabet == "" {
		alphabet = Nucleotides
	}
	rng := rand.New(rand.NewSource(r.Seed))

	dna := r.randomOligo(rng, alphabet, r.Length)
	spectrum := unique(kmers(dna, r.K))
	rng.Shuffle(len(spectrum), func(i, j int) {
		spectrum[i], spectrum[j] = spectrum[j], spectrum[i]
	})
	n := len(spectrum)
	nNeg := int(math.Ceil(float64(n) * r.Negatives))
	nPos := int(math.Ceil(float64(n) * r.Positives))

	// Pick the negatives
	toPop := map[int]bool{}
	for i := 0; i < nNeg; i++ {
		for attempt := 0; attempt < MaxDrawAttempts; attempt++ {
			pop := rng.Intn(n)
			if !toPop[pop] {
				toPop[pop] = true
				break
			}
		}
	}

	// Pick the positives
	present := map[string]bool{}
	for _, oligo := range spectrum {
		present[oligo] = true
	}
	var toAdd []string
	for i := 0; i < nPos; i++ {
		for attempt := 0; attempt < MaxDrawAttempts; attempt++ {
			oligo := r.randomOligo(rng, alphabet, r.K)
			if !present[oligo] {
				present[oligo] = true
				toAdd = append(toAdd, oligo)
				break
			}
		}
	}

	withErrors := make([]string, 0, n-len(toPop)+len(toAdd)+1)
	for i, oligo := range spectrum {
		if !toPop[i] {
			withErrors = append(withErrors, oligo)
		}
	}
	for _, oligo := range toAdd {
		withErrors = insertAt(withErrors, rng, oligo)
	}
	start := dna[:r.K]
	if toPop[indexOf(spectrum, start)] {
		withErrors = insertAt(withErrors, rng, start)
	}
	log.Noticef("Generated DNA of length %d, spectrum %d oligomers (-%d, +%d)",
		r.Length, len(withErrors), len(toPop), len(toAdd))

	return NewInstance(dna, withErrors, r.K)
}

// randomOligo draws a random string over the alphabet
func (r *Generator) randomOligo(rng *rand.Rand, alphabet string, length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = alphabet[rng.Intn(len(alphabet))]
	}
	return string(b)
}

// kmers lists every length-k substring of s from left to right
func kmers(s string, k int) []string {
	var words []string
	for i := 0; i+k <= len(s); i++ {
		words = append(words, s[i:i+k])
	}
	return words
}

// insertAt puts s at a random position of a
func insertAt(a []string, rng *rand.Rand, s string) []string {
	if len(a) == 0 {
		return append(a, s)
	}
	pos := rng.Intn(len(a))
	a = append(a, "")
	copy(a[pos+1:], a[pos:])
	a[pos] = s
	return a
}

func indexOf(a []string, s string) int {
	for i, x := range a {
		if x == s {
			return i
		}
	}
	return -1
}

// ReadReference parses the first record of a FASTA file, gzipped or not
func ReadReference(fastafile string) (string, error) {
	log.Noticef("Parse FASTA file `%s`", fastafile)
	reader, err := fastx.NewDefaultReader(fastafile)
	if err != nil {
		return "", err
	}
	seq.ValidateSeq = false

	rec, err := reader.Read()
	if err == io.EOF {
		return "", fmt.Errorf("%w: no record in `%s`", ErrConfiguration, fastafile)
	}
	if err != nil {
		return "", err
	}
	return string(bytes.ToUpper(rec.Seq.Seq)), nil
}

// ReadSpectrum parses a spectrum file with one oligomer per line. Blank lines
// and lines starting with '#' or '>' are skipped.
func ReadSpectrum(filename string) ([]string, error) {
	log.Noticef("Parse spectrum file `%s`", filename)
	fh, err := xopen.Ropen(filename)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	var spectrum []string
	for {
		row, err := fh.ReadString('\n')
		row = strings.TrimSpace(row)
		if row != "" && row[0] != '#' && row[0] != '>' {
			spectrum = append(spectrum, strings.ToUpper(row))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	return spectrum, nil
}

// LoadInstance reads the reference and the spectrum from disk. When k is 0
// it is taken from the first oligomer of the spectrum.
func LoadInstance(fastafile, spectrumfile string, k int) (*Instance, error) {
	reference, err := ReadReference(fastafile)
	if err != nil {
		return nil, err
	}
	spectrum, err := ReadSpectrum(spectrumfile)
	if err != nil {
		return nil, err
	}
	if k == 0 {
		if len(spectrum) == 0 {
			return nil, fmt.Errorf("%w: empty spectrum `%s`", ErrConfiguration, spectrumfile)
		}
		k = len(spectrum[0])
	}
	return NewInstance(reference, spectrum, k)
}
