package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/deepakm/cbitset-go/lib/bitset"
	"github.com/deepakm/cbitset-go/lib/bitsetlist"
)

func main() {
	var (
		bitsetFile = flag.String("bitset", "", "bitset buffer file to inspect")
		listFile   = flag.String("list", "", "bitset list buffer file to inspect")
	)
	flag.Parse()

	if *bitsetFile == "" && *listFile == "" {
		fmt.Println("Error: ", "-bitset or -list required")
		os.Exit(1)
	}

	cfg := bitset.DefaultConfig()

	var b *bitset.Bitset
	if *bitsetFile != "" {
		data, err := os.ReadFile(*bitsetFile)
		if err != nil {
			fmt.Println("Error: ", err)
			os.Exit(1)
		}
		b, err = bitset.NewBuffer(data, cfg)
		if err != nil {
			fmt.Println("Error: ", err)
			os.Exit(1)
		}
	}

	var l *bitsetlist.List
	if *listFile != "" {
		data, err := os.ReadFile(*listFile)
		if err != nil {
			fmt.Println("Error: ", err)
			os.Exit(1)
		}
		l, err = bitsetlist.NewBuffer(data, cfg)
		if err != nil {
			fmt.Println("Error: ", err)
			os.Exit(1)
		}
	}

	if err := NewTUI(b, l).Run(); err != nil {
		fmt.Println("Error: ", err)
		os.Exit(1)
	}
}
