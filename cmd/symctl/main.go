package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/danmuck/amqpsym/internal/amqp/buffer"
	"github.com/danmuck/amqpsym/internal/amqp/encoding"
	"github.com/danmuck/amqpsym/internal/logging"
	"github.com/rs/zerolog/log"
)

const usage = `usage:
  symctl encode [-array] [-strict] [-null] SYMBOL...
  symctl decode [-strict] HEX...`

func main() {
	logging.ConfigureRuntime("symctl")
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintln(stderr, usage)
		return 2
	}
	var err error
	switch args[0] {
	case "encode":
		err = runEncode(args[1:], stdout, stderr)
	case "decode":
		err = runDecode(args[1:], stdout, stderr)
	default:
		fmt.Fprintln(stderr, usage)
		return 2
	}
	if err != nil {
		log.Error().Err(err).Str("cmd", args[0]).Msg("symctl failed")
		fmt.Fprintln(stderr, err)
		return 1
	}
	return 0
}

func policyFor(strict bool) encoding.ASCIIPolicy {
	if strict {
		return encoding.ASCIIStrict
	}
	return encoding.ASCIILegacy
}

func runEncode(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("encode", flag.ContinueOnError)
	fs.SetOutput(stderr)
	array := fs.Bool("array", false, "encode the symbols as one array")
	strict := fs.Bool("strict", false, "reject non-ascii content")
	null := fs.Bool("null", false, "append a null symbol")
	if err := fs.Parse(args); err != nil {
		return err
	}

	syms := encoding.Symbols(fs.Args()...)
	if *null {
		syms = append(syms, encoding.NullSymbol())
	}
	codec := encoding.SymbolCodec{Policy: policyFor(*strict)}
	buf := buffer.New(0)
	if *array {
		if err := encoding.WriteArray(buf, codec, syms, len(syms)); err != nil {
			return err
		}
	} else {
		for _, sym := range syms {
			if err := codec.Encode(sym, buf); err != nil {
				return err
			}
		}
	}
	log.Debug().Int("symbols", len(syms)).Int("bytes", buf.Len()).Msg("encoded")
	fmt.Fprintln(stdout, hex.EncodeToString(buf.Bytes()))
	return nil
}

func runDecode(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("decode", flag.ContinueOnError)
	fs.SetOutput(stderr)
	strict := fs.Bool("strict", false, "reject non-ascii content")
	if err := fs.Parse(args); err != nil {
		return err
	}

	data, err := hex.DecodeString(strings.Join(fs.Args(), ""))
	if err != nil {
		return fmt.Errorf("invalid hex: %w", err)
	}
	buf := buffer.Wrap(data)
	values, err := encoding.DecodeValues(buf, encoding.RegistryWithPolicy(policyFor(*strict)))
	if err != nil {
		return fmt.Errorf("decode at offset %d: %w", buf.Offset(), err)
	}
	for _, v := range values {
		switch t := v.(type) {
		case nil:
			fmt.Fprintln(stdout, "null")
		case encoding.Symbol:
			fmt.Fprintf(stdout, "symbol %q\n", t.String())
		case []encoding.Symbol:
			parts := make([]string, len(t))
			for i, sym := range t {
				parts[i] = fmt.Sprintf("%q", sym.String())
			}
			fmt.Fprintf(stdout, "array [%s]\n", strings.Join(parts, " "))
		default:
			fmt.Fprintf(stdout, "%v\n", t)
		}
	}
	return nil
}
