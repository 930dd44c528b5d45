package discovery

import (
	"fmt"
	"os"
	"testing"

	"hosas/internal/sysfs"
)

type fakeFS struct {
	files map[string][]byte
	globs map[string][]string
}

func (f fakeFS) ReadFile(path string) ([]byte, error) {
	if b, ok := f.files[path]; ok {
		return b, nil
	}
	return nil, fmt.Errorf("not found: %s", path)
}
func (f fakeFS) Glob(pattern string) ([]string, error) { return f.globs[pattern], nil }
func (f fakeFS) Stat(_ string) (os.FileInfo, error)    { return nil, fmt.Errorf("not implemented") }

func TestFindAll(t *testing.T) {
	old := sysfs.FS
	fake := fakeFS{
		files: map[string][]byte{},
		globs: map[string][]string{},
	}

	fake.globs["/dev/hidraw*"] = []string{"/dev/hidraw0", "/dev/hidraw1", "/dev/hidraw2"}
	fake.files["/sys/class/hidraw/hidraw0/device/uevent"] = []byte(
		"DRIVER=hid-generic\nHID_NAME=Thrustmaster T.16000M\nHID_UNIQ=T16KM-0001\nMODALIAS=hid:b0003\n")
	fake.files["/sys/class/hidraw/hidraw1/device/uevent"] = []byte(
		"DRIVER=hid-generic\nHID_NAME=Thrustmaster T.16000M\nHID_UNIQ=\n")
	// hidraw2 has no readable uevent and is skipped.

	sysfs.FS = fake
	defer func() { sysfs.FS = old }()

	found, err := FindAll()
	if err != nil {
		t.Fatalf("FindAll error: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("expected 2 sticks, got %d: %v", len(found), found)
	}

	if found[0].Name != "Thrustmaster T.16000M" || found[0].Serial != "T16KM-0001" {
		t.Fatalf("unexpected first stick: %+v", found[0])
	}
	if found[0].Key() != "T16KM-0001" {
		t.Fatalf("expected serial as key, got %q", found[0].Key())
	}

	// No serial: fall back to the node path as identity.
	if found[1].Key() != "/dev/hidraw1" {
		t.Fatalf("expected path fallback key, got %q", found[1].Key())
	}
}
