package main

import (
	"fmt"
	"os"

	"github.com/rg-atte/rs-cache/cache"
)

func runChecksum(path, out string) error {
	c, err := cache.Open(path)
	if err != nil {
		return fmt.Errorf("error opening cache: %s", err)
	}
	defer c.Close()

	table, err := c.Checksum()
	if err != nil {
		return fmt.Errorf("error building checksum table: %s", err)
	}

	if out == "" {
		fmt.Printf("%d entries\n", table.Len())
		for i, entry := range table.Entries() {
			fmt.Printf("  idx%-3d crc=%-11d revision=%d\n", i, entry.CRC, entry.Revision)
		}
		return nil
	}

	encoded, err := table.Encode()
	if err != nil {
		return fmt.Errorf("error encoding checksum table: %s", err)
	}
	if err = os.WriteFile(out, encoded, 0644); err != nil {
		return fmt.Errorf("error writing %s: %s", out, err)
	}
	fmt.Printf("wrote %d bytes to %s\n", len(encoded), out)
	return nil
}
