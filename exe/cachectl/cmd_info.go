package main

import (
	"fmt"

	"github.com/rg-atte/rs-cache/cache"
)

func runInfo(path string) error {
	c, err := cache.Open(path)
	if err != nil {
		return fmt.Errorf("error opening cache: %s", err)
	}
	defer c.Close()

	fmt.Printf("Cache at %s: %d indices\n", path, c.IndexCount())
	for id := 0; id <= cache.ReferenceIndex; id++ {
		idx, err := c.Index(uint8(id))
		if err != nil {
			continue
		}
		fmt.Printf("  idx%-3d %d archive slot(s)\n", id, idx.ArchiveCount())
	}
	return nil
}
