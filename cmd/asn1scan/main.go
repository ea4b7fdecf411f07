// Command asn1scan decodes a BER or DER encoded ASN.1 structure and prints
// it as an indented tree, one line per element. Input may be raw binary,
// ASCII hex, or PEM-armored; indefinite-length BER is resolved before
// decoding.
package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/mvanek/asn1scan"
	"github.com/mvanek/asn1scan/armor"
	"github.com/mvanek/asn1scan/ber"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "asn1scan",
		Usage:     "decode BER/DER ASN.1 structures into a readable tree",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "hex",
				Usage: "input is ASCII hex rather than raw binary",
			},
			&cli.StringFlag{
				Name:  "format",
				Value: "text",
				Usage: "output format: text or json",
			},
			&cli.BoolFlag{
				Name:  "latin1",
				Usage: "emit string values as Latin-1 instead of UTF-8",
			},
			&cli.IntFlag{
				Name:  "max-depth",
				Value: asn1scan.DefaultMaxDepth,
				Usage: "maximum nesting depth before decoding aborts",
			},
			&cli.IntFlag{
				Name:  "initial-depth",
				Usage: "depth reported for top-level elements",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "suppress warnings about undecodable elements",
			},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("asn1scan: expected exactly one input file (use - for stdin)", 1)
	}

	data, err := readInput(c.Args().First())
	if err != nil {
		return cli.Exit("asn1scan: "+err.Error(), 1)
	}

	if c.Bool("hex") {
		data, err = decodeHex(data)
		if err != nil {
			return cli.Exit("asn1scan: "+err.Error(), 1)
		}
	}

	if armor.Matches(data) {
		data, err = armor.Decode(data)
		if err != nil {
			return cli.Exit("asn1scan: "+err.Error(), 1)
		}
	}

	norm, err := ber.Normalize(bytes.NewReader(data))
	if err != nil {
		return cli.Exit("asn1scan: "+err.Error(), 1)
	}

	opts := []asn1scan.Option{
		asn1scan.WithMaxDepth(c.Int("max-depth")),
		asn1scan.WithInitialDepth(c.Int("initial-depth")),
	}
	if c.Bool("latin1") {
		opts = append(opts, asn1scan.WithLatin1Output())
	}
	if c.Bool("quiet") {
		diag := logrus.New()
		diag.SetOutput(os.Stderr)
		diag.SetLevel(logrus.ErrorLevel)
		opts = append(opts, asn1scan.WithDiagnostics(diag))
	}

	switch c.String("format") {
	case "text":
		err = asn1scan.Dump(c.App.Writer, norm, opts...)
	case "json":
		err = dumpJSON(c.App.Writer, norm, opts)
	default:
		return cli.Exit(fmt.Sprintf("asn1scan: unknown format %q", c.String("format")), 1)
	}
	if err != nil {
		return cli.Exit("asn1scan: "+err.Error(), 1)
	}
	return nil
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// decodeHex strips whitespace and decodes the remaining ASCII hex digits,
// accepting the layouts tools commonly produce: continuous, spaced pairs,
// or multi-line.
func decodeHex(data []byte) ([]byte, error) {
	compact := strings.Join(strings.Fields(string(data)), "")
	raw, err := hex.DecodeString(compact)
	if err != nil {
		return nil, fmt.Errorf("invalid hex input: %w", err)
	}
	return raw, nil
}

func dumpJSON(w io.Writer, der []byte, opts []asn1scan.Option) error {
	elems, err := asn1scan.Parse(der, opts...)
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(elems, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", out)
	return err
}
