// Package discovery enumerates candidate flight sticks on the hidraw bus.
package discovery

import (
	"fmt"
	"path/filepath"
	"strings"

	"hosas/internal/sysfs"
)

// Stick identifies one connected device node.
type Stick struct {
	// Path is the /dev/hidraw node, valid only while connected.
	Path string
	// Name is the HID product name, the dispatch key.
	Name string
	// Serial is the HID unique id, empty when the unit reports none.
	Serial string
}

// Key returns the identity the side store is keyed by. The serial is
// preferred because it survives reconnection; the node path does not.
func (s Stick) Key() string {
	if s.Serial != "" {
		return s.Serial
	}
	return s.Path
}

// FindAll lists every hidraw node with its HID name and serial. Filtering
// to supported models happens at dispatch time, not here: most connected
// HID devices are keyboards and mice we know nothing about.
func FindAll() ([]Stick, error) {
	var found []Stick
	matches, err := sysfs.FS.Glob("/dev/hidraw*")
	if err != nil {
		return found, err
	}
	for _, path := range matches {
		ueventPath := fmt.Sprintf("/sys/class/hidraw/%s/device/uevent", filepath.Base(path))
		data, err := sysfs.FS.ReadFile(ueventPath)
		if err != nil {
			continue
		}
		name, serial := parseUevent(string(data))
		if name == "" {
			continue
		}
		found = append(found, Stick{Path: path, Name: name, Serial: serial})
	}
	return found, nil
}

func parseUevent(data string) (name, serial string) {
	for _, line := range strings.Split(data, "\n") {
		if v, ok := strings.CutPrefix(line, "HID_NAME="); ok {
			name = strings.TrimSpace(v)
		}
		if v, ok := strings.CutPrefix(line, "HID_UNIQ="); ok {
			serial = strings.TrimSpace(v)
		}
	}
	return name, serial
}
