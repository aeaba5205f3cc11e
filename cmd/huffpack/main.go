// Command huffpack compresses or decompresses a file with a static Huffman
// code.
//
// Usage:
//
//     huffpack [-stats] [-compare] INPUT OUTPUT
//     huffpack -d INPUT OUTPUT
//     huffpack -stats INPUT
//
// The last form prints the code statistics without writing a stream.  It
// reads INPUT incrementally instead of loading it into memory.
//
package main

import (
	"bufio"
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/chronos-tachyon/huffpack"
	"github.com/chronos-tachyon/huffpack/internal/baseline"
	"github.com/chronos-tachyon/huffpack/pack"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("huffpack: ")

	decompress := flag.Bool("d", false, "Decompress INPUT instead of compressing it")
	stats := flag.Bool("stats", false, "Print the code length of every symbol")
	compare := flag.Bool("compare", false, "Compare the output size with general-purpose codecs")
	flag.Usage = func() {
		out := flag.CommandLine.Output()
		fmt.Fprintf(out, "usage: %s [-d] [-stats] [-compare] INPUT OUTPUT\n", os.Args[0])
		fmt.Fprintf(out, "       %s -stats INPUT\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	statsOnly := *stats && !*decompress && !*compare && flag.NArg() == 1
	if !statsOnly && flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}

	var err error
	switch {
	case statsOnly:
		err = runStats(os.Stdout, flag.Arg(0))
	case *decompress:
		err = runDecompress(flag.Arg(0), flag.Arg(1))
	default:
		err = runCompress(flag.Arg(0), flag.Arg(1), *stats, *compare)
	}
	if err != nil {
		log.Fatal(err)
	}
}

func runCompress(inPath, outPath string, stats, compare bool) error {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	res, err := pack.Compress(&buf, data)
	if err != nil {
		return fmt.Errorf("%s: %w", inPath, err)
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return err
	}

	if stats {
		if err := writeStats(os.Stdout, res.Tree); err != nil {
			return err
		}
		if err := writeSizes(os.Stdout, res); err != nil {
			return err
		}
	}
	if compare {
		sizes, err := baseline.Sizes(data)
		if err != nil {
			return err
		}
		if err := writeComparison(os.Stdout, res, sizes); err != nil {
			return err
		}
	}
	return nil
}

// runStats builds the code for inPath and prints its statistics to w.
func runStats(w io.Writer, inPath string) error {
	in, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()

	counts, err := huffpack.ReadFrequencies(in)
	if err != nil {
		return fmt.Errorf("%s: %w", inPath, err)
	}
	tree, err := huffpack.BuildTree(counts)
	if err != nil {
		return fmt.Errorf("%s: %w", inPath, err)
	}
	return writeStats(w, tree)
}

func runDecompress(inPath, outPath string) (err error) {
	in, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()

	bw := bufio.NewWriter(out)
	if _, err := pack.Decompress(bw, bufio.NewReader(in)); err != nil {
		return fmt.Errorf("%s: %w", inPath, err)
	}
	return bw.Flush()
}

// writeStats prints one line per coded symbol, then the payload total.
func writeStats(w io.Writer, tree *huffpack.Tree) error {
	bw := bufio.NewWriter(w)
	for _, st := range tree.Stats() {
		fmt.Fprintf(bw, "%s: %d x %d bits = %d bits\n", symbolName(int(st.Symbol)), st.Freq, st.CodeLength, st.Bits)
	}
	total := tree.Cost()
	fmt.Fprintf(bw, "payload: %d bits (%s)\n", total, humanize.IBytes((total+7)/8))
	return bw.Flush()
}

func writeSizes(w io.Writer, res pack.Result) error {
	_, err := fmt.Fprintf(w, "input: %s, output: %s\n",
		humanize.IBytes(uint64(res.InputBytes)),
		humanize.IBytes(uint64(res.OutputBytes)))
	return err
}

func writeComparison(w io.Writer, res pack.Result, sizes []baseline.Size) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%-16s %12d bytes %s\n", "huffpack", res.OutputBytes, ratio(res.OutputBytes, res.InputBytes))
	for _, s := range sizes {
		fmt.Fprintf(bw, "%-16s %12d bytes %s\n", s.Codec, s.Bytes, ratio(s.Bytes, res.InputBytes))
	}
	return bw.Flush()
}

func ratio(n, of int64) string {
	if of == 0 {
		return "(n/a)"
	}
	return fmt.Sprintf("(%.1f%%)", 100*float64(n)/float64(of))
}

// symbolName renders printable ASCII as a quoted character and everything
// else, including the sentinel, as three octal digits.
func symbolName(symbol int) string {
	if symbol >= 0x20 && symbol < 0x7f {
		return fmt.Sprintf("'%c'", symbol)
	}
	return fmt.Sprintf("%03o", symbol)
}
