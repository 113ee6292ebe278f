package scanner

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Volume describes the filesystem hosting a scanned path.
type Volume struct {
	TotalBytes uint64
	FreeBytes  uint64
}

// VolumeInfo reports total and free space for the filesystem containing path.
func VolumeInfo(path string) (Volume, error) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return Volume{}, fmt.Errorf("statfs %s: %w", path, err)
	}
	blockSize := uint64(stat.Bsize)
	return Volume{
		TotalBytes: stat.Blocks * blockSize,
		FreeBytes:  stat.Bavail * blockSize,
	}, nil
}
