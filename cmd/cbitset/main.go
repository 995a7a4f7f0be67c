package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/deepakm/cbitset-go/lib/bitset"
	"github.com/deepakm/cbitset-go/lib/bitsetlist"
	"github.com/deepakm/cbitset-go/lib/planner"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cfg, err := loadCLIConfig("cbitset.toml")
	if err != nil {
		fmt.Println("Error: ", err)
		os.Exit(1)
	}

	var cmdErr error
	switch os.Args[1] {
	case "get":
		cmdErr = runGet(cfg, os.Args[2:])
	case "set":
		cmdErr = runSet(cfg, os.Args[2:])
	case "count":
		cmdErr = runCount(cfg, os.Args[2:])
	case "op":
		cmdErr = runOp(cfg, os.Args[2:])
	case "list":
		cmdErr = runList(cfg, os.Args[2:])
	case "verify":
		cmdErr = runVerify(cfg, os.Args[2:])
	case "session":
		cmdErr = runSession(cfg, os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
	if cmdErr != nil {
		fmt.Println("Error: ", cmdErr)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("Usage: cbitset <get|set|count|op|list|verify|session> [flags]")
}

func runGet(cfg *cliConfig, args []string) error {
	fs := flag.NewFlagSet("get", flag.ExitOnError)
	file := fs.String("file", "", "bitset buffer file")
	offset := fs.Uint64("offset", 0, "bit offset to read")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return fmt.Errorf("get: -file required")
	}
	b, err := loadBitset(*file, cfg)
	if err != nil {
		return err
	}
	fmt.Println(b.Get(bitset.Offset(*offset)))
	return nil
}

func runSet(cfg *cliConfig, args []string) error {
	fs := flag.NewFlagSet("set", flag.ExitOnError)
	file := fs.String("file", "", "bitset buffer file")
	offset := fs.Uint64("offset", 0, "bit offset to write")
	value := fs.Bool("value", true, "value to write")
	out := fs.String("out", "", "output file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" || *out == "" {
		return fmt.Errorf("set: -file and -out required")
	}
	b, err := loadBitset(*file, cfg)
	if err != nil {
		return err
	}
	if _, err := b.Set(bitset.Offset(*offset), *value); err != nil {
		return err
	}
	return os.WriteFile(*out, b.Bytes(), 0o644)
}

func runCount(cfg *cliConfig, args []string) error {
	fs := flag.NewFlagSet("count", flag.ExitOnError)
	file := fs.String("file", "", "bitset buffer file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return fmt.Errorf("count: -file required")
	}
	b, err := loadBitset(*file, cfg)
	if err != nil {
		return err
	}
	fmt.Printf("count=%d min=%d max=%d\n", b.Count(), b.Min(), b.Max())
	return nil
}

func runOp(cfg *cliConfig, args []string) error {
	fs := flag.NewFlagSet("op", flag.ExitOnError)
	fileA := fs.String("a", "", "first operand buffer file")
	fileB := fs.String("b", "", "second operand buffer file")
	opName := fs.String("op", "OR", "AND|OR|XOR|ANDNOT")
	out := fs.String("out", "", "output file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *fileA == "" || *fileB == "" || *out == "" {
		return fmt.Errorf("op: -a, -b, and -out required")
	}
	op, err := parseOp(*opName)
	if err != nil {
		return err
	}
	a, err := loadBitset(*fileA, cfg)
	if err != nil {
		return err
	}
	b, err := loadBitset(*fileB, cfg)
	if err != nil {
		return err
	}
	p := planner.New(a, cfg.bitsetConfig())
	p.AddBitset(op, b)
	result, err := p.Exec()
	if err != nil {
		return err
	}
	return os.WriteFile(*out, result.Bytes(), 0o644)
}

func parseOp(name string) (planner.Op, error) {
	switch name {
	case "AND":
		return planner.AND, nil
	case "OR":
		return planner.OR, nil
	case "XOR":
		return planner.XOR, nil
	case "ANDNOT":
		return planner.ANDNOT, nil
	default:
		return 0, fmt.Errorf("op: unknown operator %q", name)
	}
}

func runList(cfg *cliConfig, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("list: subcommand required (dump|export)")
	}
	switch args[0] {
	case "dump":
		return runListDump(cfg, args[1:])
	case "export":
		return runListExport(cfg, args[1:])
	default:
		return fmt.Errorf("list: unknown subcommand %q", args[0])
	}
}

func runListDump(cfg *cliConfig, args []string) error {
	fs := flag.NewFlagSet("list dump", flag.ExitOnError)
	file := fs.String("file", "", "list buffer file")
	start := fs.Uint64("start", 0, "window start offset")
	end := fs.Uint64("end", 0, "window end offset (0 means unbounded)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return fmt.Errorf("list dump: -file required")
	}
	l, err := loadList(*file, cfg)
	if err != nil {
		return err
	}
	lower := bitsetlist.NegInf
	if *start != 0 {
		lower = bitsetlist.At(bitset.Offset(*start))
	}
	upper := bitsetlist.PosInf
	if *end != 0 {
		upper = bitsetlist.At(bitset.Offset(*end))
	}
	it := bitsetlist.NewIterator(l, lower, upper)
	return it.Foreach(func(offset bitset.Offset, b *bitset.Bitset) bool {
		fmt.Printf("offset=%d count=%d\n", offset, b.Count())
		return true
	})
}

func runListExport(cfg *cliConfig, args []string) error {
	fs := flag.NewFlagSet("list export", flag.ExitOnError)
	file := fs.String("file", "", "list buffer file")
	out := fs.String("out", "", "output file")
	compress := fs.Bool("compress", false, "zstd-compress the exported buffer")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" || *out == "" {
		return fmt.Errorf("list export: -file and -out required")
	}
	l, err := loadList(*file, cfg)
	if err != nil {
		return err
	}
	data := l.Bytes()
	if *compress {
		data, err = l.CompressBuffer()
		if err != nil {
			return err
		}
	}
	return os.WriteFile(*out, data, 0o644)
}

func runVerify(cfg *cliConfig, args []string) error {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	file := fs.String("file", "", "bitset buffer file")
	listFile := fs.String("list", "", "list buffer file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file != "" {
		b, err := loadBitset(*file, cfg)
		if err != nil {
			return err
		}
		fmt.Printf("checksum=%x\n", b.Checksum())
	}
	if *listFile != "" {
		l, err := loadList(*listFile, cfg)
		if err != nil {
			return err
		}
		fmt.Printf("checksum=%x\n", l.Checksum())
	}
	if *file == "" && *listFile == "" {
		return fmt.Errorf("verify: -file or -list required")
	}
	return nil
}

func loadBitset(filename string, cfg *cliConfig) (*bitset.Bitset, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return bitset.NewBuffer(data, cfg.bitsetConfig())
}

func loadList(filename string, cfg *cliConfig) (*bitsetlist.List, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return bitsetlist.NewBuffer(data, cfg.bitsetConfig())
}
