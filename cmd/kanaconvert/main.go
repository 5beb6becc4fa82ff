// Command kanaconvert is a thin CLI over the kana package's Convert
// function (§6.2, §8.2): pick a source and target script, optional
// conversion flags, and convert either the trailing arguments or stdin.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"kanjitools/kana"
	"kanjitools/kerrors"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("kanaconvert", flag.ContinueOnError)

	var toHiragana, toKatakana, toRomaji bool
	var fromHiragana, fromKatakana, fromRomaji bool
	var flagLetters string
	var noNewline bool
	var interactive, markdownChart, terminalChart bool

	fs.BoolVar(&toHiragana, "h", false, "convert to Hiragana")
	fs.BoolVar(&toKatakana, "k", false, "convert to Katakana")
	fs.BoolVar(&toRomaji, "r", false, "convert to Romaji")
	fs.BoolVar(&fromHiragana, "H", false, "convert from Hiragana")
	fs.BoolVar(&fromKatakana, "K", false, "convert from Katakana")
	fs.BoolVar(&fromRomaji, "R", false, "convert from Romaji")
	fs.StringVar(&flagLetters, "f", "", "conversion flags: any of h(epburn) k(unrei) n(oProlongMark) r(emoveSpaces)")
	fs.BoolVar(&noNewline, "n", false, "suppress trailing newline")
	fs.BoolVar(&interactive, "i", false, "interactive mode (not supported)")
	fs.BoolVar(&markdownChart, "m", false, "markdown chart (not supported)")
	fs.BoolVar(&terminalChart, "p", false, "terminal chart (not supported)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if interactive || markdownChart || terminalChart {
		return kerrors.NewConverterError("interactive mode and chart printing are not supported by this build")
	}

	source, err := pickOne("source", fromHiragana, fromKatakana, fromRomaji, kana.Hiragana, kana.Katakana, kana.Romaji)
	if err != nil {
		return err
	}
	target, err := pickOne("target", toHiragana, toKatakana, toRomaji, kana.Hiragana, kana.Katakana, kana.Romaji)
	if err != nil {
		return err
	}

	convFlags, err := parseFlagLetters(flagLetters)
	if err != nil {
		return err
	}

	input, err := readInput(fs.Args(), stdin)
	if err != nil {
		return err
	}

	result := kana.Convert(input, source, target, convFlags)
	fmt.Fprint(stdout, result)
	if !noNewline {
		fmt.Fprintln(stdout)
	}
	return nil
}

func pickOne(label string, a, b, c bool, va, vb, vc kana.CharType) (kana.CharType, error) {
	n := 0
	var result kana.CharType
	if a {
		n++
		result = va
	}
	if b {
		n++
		result = vb
	}
	if c {
		n++
		result = vc
	}
	if n != 1 {
		return 0, kerrors.NewConverterError(fmt.Sprintf("exactly one %s flag must be given", label))
	}
	return result, nil
}

func parseFlagLetters(s string) (kana.Flag, error) {
	var f kana.Flag
	for _, r := range s {
		switch r {
		case 'h':
			f |= kana.Hepburn
		case 'k':
			f |= kana.Kunrei
		case 'n':
			f |= kana.NoProlongMark
		case 'r':
			f |= kana.RemoveSpaces
		default:
			return 0, kerrors.NewConverterError(fmt.Sprintf("unrecognized conversion flag letter %q", r))
		}
	}
	return f, nil
}

func readInput(args []string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		s := args[0]
		for _, a := range args[1:] {
			s += " " + a
		}
		return s, nil
	}
	data, err := io.ReadAll(bufio.NewReader(stdin))
	if err != nil {
		return "", kerrors.NewConverterError("failed reading stdin: " + err.Error())
	}
	return string(data), nil
}
