/*
 *  output.go
 *  acosbh
 *
 *  Created by Haibao Tang on 10/19/26
 *  Copyright © 2026 Haibao Tang. All rights reserved.
 */

package acosbh

import (
	"fmt"

	"github.com/kshedden/gonpy"
	"github.com/shenwei356/bio/seq"
	"github.com/shenwei356/xopen"
)

// FastaLineWidth is the line width of the FASTA files we write
const FastaLineWidth = 60

// TraceWriter streams the run trace to disk. The file has one line per cycle
//
// cycle	best_quality	best_fitness
//
// followed by the best sequence, its quality and its fitness.
type TraceWriter struct {
	Filename string
	w        *xopen.Writer
	lines    int
	err      error
}

// NewTraceWriter creates the trace file, gzipped if the name ends in .gz
func NewTraceWriter(filename string) (*TraceWriter, error) {
	w, err := xopen.Wopen(filename)
	if err != nil {
		return nil, err
	}
	return &TraceWriter{Filename: filename, w: w}, nil
}

// Add writes one cycle, it fits Searcher.OnCycle
func (r *TraceWriter) Add(stat CycleStat) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintf(r.w, "%d\t%.5f\t%.3f\n", stat.Cycle, stat.Quality, stat.Fitness)
	r.lines++
}

// Close writes the best solution and closes the file
func (r *TraceWriter) Close(best *Solution) error {
	if r.err == nil && best != nil {
		_, r.err = fmt.Fprintf(r.w, "%s\n%.5f\n%.3f\n", best.Sequence, best.Quality, best.Fitness)
	}
	if err := r.w.Close(); r.err == nil {
		r.err = err
	}
	if r.err == nil {
		log.Noticef("A total of %d cycles written to `%s`", r.lines, r.Filename)
	}
	return r.err
}

// WriteFasta writes a single sequence as a FASTA file
func WriteFasta(filename, name, sequence string) error {
	s, err := seq.NewSeqWithoutValidation(seq.Unlimit, []byte(sequence))
	if err != nil {
		return err
	}
	w, err := xopen.Wopen(filename)
	if err != nil {
		return err
	}
	if _, err = fmt.Fprintf(w, ">%s\n%s\n", name, s.FormatSeq(FastaLineWidth)); err != nil {
		w.Close()
		return err
	}
	log.Noticef("Sequence `%s` (%d bp) written to `%s`", name, len(sequence), filename)
	return w.Close()
}

// WriteSpectrum writes one oligomer per line
func WriteSpectrum(filename string, spectrum []string) error {
	w, err := xopen.Wopen(filename)
	if err != nil {
		return err
	}
	for _, oligo := range spectrum {
		if _, err = fmt.Fprintln(w, oligo); err != nil {
			w.Close()
			return err
		}
	}
	log.Noticef("A total of %d oligomers written to `%s`", len(spectrum), filename)
	return w.Close()
}

// WritePheromoneNpy dumps the vertex x vertex pheromone matrix in NumPy format
func WritePheromoneNpy(filename string, g *OverlapGraph) error {
	n := g.NumVertices()
	if n == 0 {
		return fmt.Errorf("%w: empty graph", ErrConfiguration)
	}
	m := g.PheromoneMatrix()
	w, err := gonpy.NewFileWriter(filename)
	if err != nil {
		return err
	}
	w.Shape = []int{n, n}
	if err := w.WriteFloat64(m.RawMatrix().Data); err != nil {
		return err
	}
	log.Noticef("Pheromone matrix (%d x %d) written to `%s`", n, n, filename)
	return nil
}
