package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/deepakm/cbitset-go/lib/registry"
)

// runSession launches an interactive REPL over a lib/registry
// catalog, letting one process hold several named lists in memory and
// refer to them by name instead of re-resolving a file path on every
// command. Grounded on lookbusy1344-arm_emulator/debugger's
// RunCLI: a bufio.Scanner prompt loop dispatching one command per
// line.
func runSession(cfg *cliConfig, args []string) error {
	reg := registry.New()
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Println("cbitset registry session (register|lookup|rename|forget|list|save|quit)")
	for {
		fmt.Print("(cbitset) ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd := fields[0]
		rest := fields[1:]

		if cmd == "quit" || cmd == "q" || cmd == "exit" {
			break
		}

		if err := dispatchSessionCommand(reg, cfg, cmd, rest); err != nil {
			fmt.Println("Error: ", err)
		}
	}
	return scanner.Err()
}

func dispatchSessionCommand(reg *registry.Registry, cfg *cliConfig, cmd string, args []string) error {
	switch cmd {
	case "register":
		if len(args) != 2 {
			return fmt.Errorf("usage: register <name> <file>")
		}
		l, err := loadList(args[1], cfg)
		if err != nil {
			return err
		}
		entry, err := reg.Register(args[0], l)
		if err != nil {
			return err
		}
		fmt.Printf("registered %q as %s\n", entry.Name, entry.ID)
		return nil

	case "lookup":
		if len(args) != 1 {
			return fmt.Errorf("usage: lookup <name>")
		}
		entry, err := reg.Lookup(args[0])
		if err != nil {
			return err
		}
		raw, unique, err := entry.List.CountAll()
		if err != nil {
			return err
		}
		fmt.Printf("%s  id=%s entries=%d raw=%d unique=%d\n", entry.Name, entry.ID, entry.List.Count(), raw, unique)
		return nil

	case "rename":
		if len(args) != 2 {
			return fmt.Errorf("usage: rename <old> <new>")
		}
		return reg.Rename(args[0], args[1])

	case "forget":
		if len(args) != 1 {
			return fmt.Errorf("usage: forget <name>")
		}
		return reg.Forget(args[0])

	case "list":
		for _, entry := range reg.All() {
			fmt.Printf("%s  id=%s entries=%d\n", entry.Name, entry.ID, entry.List.Count())
		}
		return nil

	case "save":
		if len(args) != 2 {
			return fmt.Errorf("usage: save <name> <outfile>")
		}
		entry, err := reg.Lookup(args[0])
		if err != nil {
			return err
		}
		return os.WriteFile(args[1], entry.List.Bytes(), 0o644)

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}
