// Copyright 2026 The pdrtpa Authors. All rights reserved.
// Use of this source code is governed by a license that can
// be found in the License file.

// Command pdrtpa checks whether an AIG's error property is reachable
// from its initial states, per spec.md §6.
package main

import (
	"crypto/rand"
	"encoding/binary"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-air/gini/logic/aiger"

	"github.com/go-air/pdrtpa/aigbuild"
	"github.com/go-air/pdrtpa/internal/pdr"
	"github.com/go-air/pdrtpa/simplify"
	"github.com/go-air/pdrtpa/vars"
	"github.com/go-air/pdrtpa/witness"
)

func main() {
	fs := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	fs.Usage = func() {
		p := os.Args[0]
		_, p = filepath.Split(p)
		fmt.Fprintf(os.Stderr, usage, p, p, p, p)
		fs.PrintDefaults()
		fmt.Fprintln(os.Stderr)
	}

	var verbose, debug, preferLeft, preferRight bool
	var seed int64
	var haveSeed bool
	fs.BoolVar(&verbose, "v", false, "enable informational logging to stderr")
	fs.BoolVar(&verbose, "verbose", false, "enable informational logging to stderr")
	fs.BoolVar(&debug, "d", false, "enable detailed logging to stderr (implies -v)")
	fs.BoolVar(&debug, "debug", false, "enable detailed logging to stderr (implies -v)")
	fs.Func("s", "seed for the generalization RNG (default: system entropy)", func(v string) error {
		var n int64
		if _, err := fmt.Sscanf(v, "%d", &n); err != nil {
			return err
		}
		seed, haveSeed = n, true
		return nil
	})
	fs.BoolVar(&preferLeft, "left", false, "always send a conflict literal to the left half of a split")
	fs.BoolVar(&preferRight, "right", false, "always send a conflict literal to the right half of a split")

	err := fs.Parse(os.Args[1:])
	if err == flag.ErrHelp {
		os.Exit(0)
	}
	if err != nil {
		os.Exit(1)
	}
	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(1)
	}

	verbose = verbose || debug
	logger := log.New(os.Stderr, "", log.LstdFlags)
	if !verbose {
		logger.SetOutput(io.Discard)
	}
	if debug {
		logger.SetFlags(log.LstdFlags | log.Lshortfile)
	}

	pref := pdr.PreferRandom
	switch {
	case preferLeft && preferRight:
		fmt.Fprintln(os.Stderr, "pdrtpa: --left and --right are mutually exclusive")
		os.Exit(1)
	case preferLeft:
		pref = pdr.PreferLeft
	case preferRight:
		pref = pdr.PreferRight
	}
	if !haveSeed {
		seed = entropySeed()
	}

	if err := run(fs.Arg(0), pdr.Config{Seed: seed, Preference: pref, Logger: logger}); err != nil {
		fmt.Fprintln(os.Stderr, "pdrtpa:", err)
		os.Exit(1)
	}
}

func run(path string, cfg pdr.Config) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	a, err := readAig(path, f)
	if err != nil {
		return err
	}

	store := vars.NewStore()
	sys, err := aigbuild.Build(a, store)
	if err != nil {
		return err
	}
	sys = simplify.System(sys)

	v := pdr.New(sys, store, cfg)
	res := v.Run()
	return witness.Write(os.Stdout, a, sys, res)
}

// readAig dispatches to gini's ASCII or binary AIGER reader: by the
// ".aag"/".aig" suffix when the path has one, otherwise by sniffing
// the file's first three bytes for the "aag" magic header, since
// AIGER files in the wild are not always named by format.
func readAig(path string, f *os.File) (*aiger.T, error) {
	if strings.HasSuffix(path, ".aag") {
		return aiger.ReadAscii(f)
	}
	if strings.HasSuffix(path, ".aig") {
		return aiger.ReadBinary(f)
	}
	head := make([]byte, 3)
	n, _ := f.Read(head)
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}
	if n == 3 && string(head) == "aag" {
		return aiger.ReadAscii(f)
	}
	return aiger.ReadBinary(f)
}

func entropySeed() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 1
	}
	return int64(binary.LittleEndian.Uint64(buf[:]))
}
