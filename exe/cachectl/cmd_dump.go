package main

import (
	"fmt"
	"os"

	"github.com/rg-atte/rs-cache/cache"
)

func runDump(path string, indexID, archiveID int, out string) error {
	if indexID < 0 || indexID > cache.ReferenceIndex {
		return fmt.Errorf("index id must be within 0..%d", cache.ReferenceIndex)
	}
	if archiveID < 0 {
		return fmt.Errorf("archive id can not be negative")
	}

	c, err := cache.Open(path)
	if err != nil {
		return fmt.Errorf("error opening cache: %s", err)
	}
	defer c.Close()

	data, err := c.ReadArchive(uint8(indexID), uint32(archiveID))
	if err != nil {
		return fmt.Errorf("error reading archive %d/%d: %s", indexID, archiveID, err)
	}

	if err = os.WriteFile(out, data, 0644); err != nil {
		return fmt.Errorf("error writing %s: %s", out, err)
	}
	fmt.Printf("wrote %d bytes to %s\n", len(data), out)
	return nil
}
