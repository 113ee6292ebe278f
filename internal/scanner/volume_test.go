package scanner

import "testing"

func TestVolumeInfo(t *testing.T) {
	volume, err := VolumeInfo(t.TempDir())
	if err != nil {
		t.Fatalf("volume info: %v", err)
	}
	if volume.TotalBytes == 0 {
		t.Fatal("expected a non-zero filesystem size")
	}
	if volume.FreeBytes > volume.TotalBytes {
		t.Fatalf("free %d exceeds total %d", volume.FreeBytes, volume.TotalBytes)
	}
}

func TestVolumeInfoMissingPath(t *testing.T) {
	if _, err := VolumeInfo("/definitely/not/a/path"); err == nil {
		t.Fatal("expected an error for a missing path")
	}
}
