/*
 *  base.go
 *  acosbh
 *
 *  Created by Haibao Tang on 10/19/26
 *  Copyright © 2026 Haibao Tang. All rights reserved.
 */

package acosbh

import (
	"fmt"
	"os"
	"path"
	"strings"

	logging "github.com/op/go-logging"
)

const (
	// Version is the current version of ACOSBH
	Version = "0.1.0"
	// Nucleotides is the default alphabet for generated DNA
	Nucleotides = "ACGT"
	// FloorPheromone replaces a zero pheromone so unexplored arcs stay selectable
	FloorPheromone = 0.5
	// MaxDrawAttempts is how many times the generator retries a random pick
	MaxDrawAttempts = 5
	// TraceExt is the extension of the per-cycle trace file
	TraceExt = ".trace"
	// FastaExt is the extension of the reconstructed sequence file
	FastaExt = ".fasta"
	// NpyExt is the extension of the pheromone matrix dump
	NpyExt = ".pheromone.npy"
)

var log = logging.MustGetLogger("acosbh")
var format = logging.MustStringFormatter(
	`%{color}%{time:15:04:05} %{shortfunc} | %{level:.6s} %{color:reset} %{message}`,
)

// Backend is the default stderr output
var Backend = logging.NewLogBackend(os.Stderr, "", 0)

// BackendFormatter contains the fancy debug formatter
var BackendFormatter = logging.NewBackendFormatter(Backend, format)

// RemoveExt returns the substring minus the extension
func RemoveExt(filename string) string {
	return strings.TrimSuffix(filename, path.Ext(filename))
}

// Percentage prints a human readable message of the percentage
func Percentage(a, b int) string {
	return fmt.Sprintf("%d of %d (%.1f %%)", a, b, float64(a)*100./float64(b))
}

// Concat glues b onto a, dropping the first `overlap` characters of b
func Concat(a, b string, overlap int) string {
	return a + b[overlap:]
}

// HammingWithPadding counts position-wise differences, padding the shorter
// string so a position present in only one of them is a mismatch
func HammingWithPadding(ref, s string) int {
	mismatches := 0
	for i := 0; i < maxInt(len(ref), len(s)); i++ {
		if i >= len(s) || i >= len(ref) || s[i] != ref[i] {
			mismatches++
		}
	}
	return mismatches
}

// unique drops repeated strings, keeping the first occurrence
func unique(a []string) []string {
	seen := make(map[string]bool, len(a))
	list := make([]string, 0, len(a))
	for _, entry := range a {
		if seen[entry] {
			continue
		}
		seen[entry] = true
		list = append(list, entry)
	}
	return list
}

// minInt gets the minimum for two ints
func minInt(x, y int) int {
	if x < y {
		return x
	}
	return y
}

// maxInt gets the maximum for two ints
func maxInt(x, y int) int {
	if x > y {
		return x
	}
	return y
}
