package main

import (
	"fmt"
	"os"

	"github.com/akamensky/argparse"
)

func main() {
	parser := argparse.NewParser("cachectl", "a tool for inspecting game cache directories")

	infoCmd := parser.NewCommand("info", "prints index tables of a cache")
	infoPath := infoCmd.String("p", "path",
		&argparse.Options{Required: true, Help: "cache directory holding the data and index files"})

	checksumCmd := parser.NewCommand("checksum", "prints the checksum table of a cache")
	checksumPath := checksumCmd.String("p", "path",
		&argparse.Options{Required: true, Help: "cache directory holding the data and index files"})
	checksumOut := checksumCmd.String("o", "out",
		&argparse.Options{Help: "write the encoded table to a file instead of printing entries"})

	dumpCmd := parser.NewCommand("dump", "dumps a decompressed archive to a file")
	dumpPath := dumpCmd.String("p", "path",
		&argparse.Options{Required: true, Help: "cache directory holding the data and index files"})
	dumpIndex := dumpCmd.Int("i", "index",
		&argparse.Options{Required: true, Help: "index id the archive belongs to"})
	dumpArchive := dumpCmd.Int("a", "archive",
		&argparse.Options{Required: true, Help: "archive id to dump"})
	dumpOut := dumpCmd.String("o", "out",
		&argparse.Options{Required: true, Help: "output filename"})

	err := parser.Parse(os.Args)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	switch {
	case infoCmd.Happened():
		err = runInfo(*infoPath)
	case checksumCmd.Happened():
		err = runChecksum(*checksumPath, *checksumOut)
	case dumpCmd.Happened():
		err = runDump(*dumpPath, *dumpIndex, *dumpArchive, *dumpOut)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
