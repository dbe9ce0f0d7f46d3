package main

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/beam-runtime/beamfile"
	"github.com/wippyai/beam-runtime/errors"
	"github.com/wippyai/beam-runtime/op"
)

func main() {
	var (
		configPath  = flag.String("config", "", "Path to beamdump.toml (default ./beamdump.toml if present)")
		hexCode     = flag.String("hex", "", "Decode hex bytecode instead of files")
		raw         = flag.Bool("raw", false, "Treat files as bare bytecode, not BEAM containers")
		functions   = flag.Bool("functions", false, "Group the listing by function")
		catalog     = flag.Bool("catalog", false, "List supported instructions and exit")
		workers     = flag.Int("workers", 0, "Files decoded in parallel (0 = one per file)")
		strict      = flag.Bool("strict", false, "Require code to end with int_code_end")
		color       = flag.String("color", "", "Color output: auto, always or never")
		verbose     = flag.Bool("v", false, "Debug logging to stderr")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *catalog {
		catalogListing(os.Stdout)
		return
	}

	if *hexCode == "" && flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Usage: beamdump [flags] <file.beam>...")
		fmt.Fprintln(os.Stderr, "       beamdump -hex 0110021222000120")
		fmt.Fprintln(os.Stderr, "       beamdump -i <file.beam>  (interactive mode)")
		fmt.Fprintln(os.Stderr, "       beamdump -catalog")
		os.Exit(1)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "workers":
			cfg.Decode.Workers = *workers
		case "strict":
			cfg.Decode.StrictEnd = *strict
		case "color":
			cfg.Output.Color = *color
		case "functions":
			cfg.Output.Functions = *functions
		}
	})
	if err := cfg.validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log := zap.NewNop()
	if *verbose {
		if log, err = zap.NewDevelopment(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	defer log.Sync()
	op.SetLogger(log.Named("op"))
	beamfile.SetLogger(log.Named("beamfile"))

	if *interactive {
		if flag.NArg() != 1 {
			fmt.Fprintln(os.Stderr, "Error: interactive mode takes exactly one file")
			os.Exit(1)
		}
		if err := runInteractive(flag.Arg(0), cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	var sources []source
	if *hexCode != "" {
		sources, err = hexSource(*hexCode)
	} else {
		sources, err = fileSources(flag.Args(), *raw)
	}
	if err == nil {
		err = run(context.Background(), os.Stdout, sources, cfg, cfg.useColor(os.Stdout.Fd()), log)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// source is one bytecode stream with whatever tables its container had.
type source struct {
	name     string
	bytecode []byte
	atoms    beamfile.AtomTable
	imports  []beamfile.Import
}

func hexSource(s string) ([]source, error) {
	s = strings.Join(strings.Fields(s), "")
	code, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseLoad, errors.KindInvalidData, err, "hex bytecode")
	}
	return []source{{name: "hex", bytecode: code}}, nil
}

func fileSources(paths []string, raw bool) ([]source, error) {
	sources := make([]source, 0, len(paths))
	for _, path := range paths {
		var (
			src source
			err error
		)
		if raw {
			src, err = rawSource(path)
		} else {
			src, err = containerSource(path)
		}
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return sources, nil
}

func rawSource(path string) (source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return source{}, errors.Load("read "+path, err)
	}
	return source{name: path, bytecode: data}, nil
}

func containerSource(path string) (source, error) {
	f, err := beamfile.Load(path)
	if err != nil {
		return source{}, err
	}
	code, err := f.Code()
	if err != nil {
		return source{}, fmt.Errorf("%s: %w", path, err)
	}
	if code.OpcodeMax > uint32(op.MaxOpcode()) {
		beamfile.Logger().Warn("module uses opcodes past the catalog",
			zap.String("file", path),
			zap.Uint32("opcode_max", code.OpcodeMax),
			zap.Stringer("catalog_max", op.MaxOpcode()))
	}

	src := source{name: path, bytecode: code.Bytecode}
	// the tables only improve the listing
	if src.atoms, err = f.Atoms(); err != nil && !errors.HasKind(err, errors.KindNotFound) {
		return source{}, fmt.Errorf("%s: %w", path, err)
	}
	if src.imports, err = f.Imports(); err != nil && !errors.HasKind(err, errors.KindNotFound) {
		return source{}, fmt.Errorf("%s: %w", path, err)
	}
	return src, nil
}

// run lists sources to w. color is resolved by the caller against the
// descriptor behind w.
func run(ctx context.Context, w io.Writer, sources []source, cfg Config, color bool, log *zap.Logger) error {
	streams := make([][]byte, len(sources))
	for i, src := range sources {
		streams[i] = src.bytecode
	}
	programs, err := op.DecodeAll(ctx, streams, cfg.Decode.Workers)
	if err != nil {
		return err
	}

	for i, src := range sources {
		ops := programs[i]
		if cfg.Decode.StrictEnd {
			if err := op.CheckEnd(ops); err != nil {
				return fmt.Errorf("%s: %w", src.name, err)
			}
		}
		log.Debug("listing", zap.String("source", src.name), zap.Int("instructions", len(ops)))

		f := &formatter{imports: src.imports, color: color}
		if cfg.Output.ResolveAtoms {
			f.atoms = src.atoms
		}
		if len(sources) > 1 {
			fmt.Fprintf(w, "%s:\n", src.name)
		}
		if cfg.Output.Functions {
			f.functions(w, ops)
		} else {
			f.listing(w, ops)
		}
	}
	return nil
}
