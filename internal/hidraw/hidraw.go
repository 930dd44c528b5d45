// Package hidraw reads fixed-size input reports from /dev/hidraw nodes.
package hidraw

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// ReportSize is the input report length of the supported sticks.
const ReportSize = 4

// Report is one raw input report snapshot, immutable once captured.
type Report [ReportSize]byte

// ErrNoReport is returned by CopyState when the device has no report
// pending within the poll window.
var ErrNoReport = fmt.Errorf("no report pending")

// Open opens a hidraw node for reading. Tests may replace it.
// The node is opened non-blocking so reads go through the runtime
// poller and unblock on Close.
var Open = func(path string) (io.ReadCloser, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return os.NewFile(uintptr(fd), path), nil
}

// ReadReport reads exactly one report frame. The kernel may split a
// delivery, so the read is completed with io.ReadFull; a truncated frame
// surfaces as io.ErrUnexpectedEOF.
func ReadReport(r io.Reader) (Report, error) {
	var rep Report
	if _, err := io.ReadFull(r, rep[:]); err != nil {
		return rep, err
	}
	return rep, nil
}

// PollRead waits at most timeoutMs for the node to deliver a report and
// reads it into buf, returning the byte count; 0 means the poll window
// elapsed with nothing pending. Tests may replace it.
var PollRead = func(path string, buf []byte, timeoutMs int) (int, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", path, err)
	}
	defer unix.Close(fd)

	pfd := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
	n, err := unix.Poll(pfd, timeoutMs)
	if err != nil {
		return 0, fmt.Errorf("poll %s: %w", path, err)
	}
	if n == 0 {
		return 0, nil
	}

	nr, err := unix.Read(fd, buf)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", path, err)
	}
	return nr, nil
}

// CopyState performs a one-shot read of the device's current report.
// Used at hot-plug time; a quiet device yields ErrNoReport and the
// caller just waits for the next frame.
func CopyState(path string, timeoutMs int) (Report, error) {
	var rep Report

	n, err := PollRead(path, rep[:], timeoutMs)
	if err != nil {
		return rep, err
	}
	if n == 0 {
		return rep, ErrNoReport
	}
	if n != ReportSize {
		return rep, fmt.Errorf("short report: got %d bytes, want %d", n, ReportSize)
	}
	return rep, nil
}
