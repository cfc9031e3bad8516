// Command arabizi converts Arabizi to Arabic script offline.
//
// Text is taken from the arguments or, when there are none, line by line
// from stdin. Each result is printed as "raw<TAB>corrected".
//
// Usage:
//
//	arabizi [--raw | --corrected] [text ...]
//
// Exit codes: 0 = success, 1 = error, 2 = bad usage.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/heartmarshall/arabizi-backend/internal/translit"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "arabizi:", err)
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

var errUsage = errors.New("usage: arabizi [--raw | --corrected] [text ...]")

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("arabizi", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	rawOnly := fs.Bool("raw", false, "print only the raw transliteration")
	correctedOnly := fs.Bool("corrected", false, "print only the corrected transliteration")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if *rawOnly && *correctedOnly {
		return errUsage
	}

	w := bufio.NewWriter(stdout)
	emit := func(text string) error {
		res := translit.Convert(text)
		var line string
		switch {
		case *rawOnly:
			line = res.Raw
		case *correctedOnly:
			line = res.Corrected
		default:
			line = res.Raw + "\t" + res.Corrected
		}
		_, err := fmt.Fprintln(w, line)
		return err
	}

	if fs.NArg() > 0 {
		if err := emit(strings.Join(fs.Args(), " ")); err != nil {
			return err
		}
		return w.Flush()
	}

	// Lines may exceed bufio.Scanner's token limit.
	r := bufio.NewReader(stdin)
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
			if emitErr := emit(line); emitErr != nil {
				return emitErr
			}
		}
		if errors.Is(err, io.EOF) {
			return w.Flush()
		}
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
	}
}
