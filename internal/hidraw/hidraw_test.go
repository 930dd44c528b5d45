package hidraw

import (
	"bytes"
	"errors"
	"io"
	"testing"
)

func TestReadReport(t *testing.T) {
	r := bytes.NewReader([]byte{0x00, 0x80, 0x80, 0x1F})

	rep, err := ReadReport(r)
	if err != nil {
		t.Fatalf("ReadReport error: %v", err)
	}
	if rep != (Report{0x00, 0x80, 0x80, 0x1F}) {
		t.Fatalf("unexpected report: %v", rep)
	}
}

// chunkedReader delivers its payload two bytes per Read call.
type chunkedReader struct {
	data []byte
}

func (c *chunkedReader) Read(p []byte) (int, error) {
	if len(c.data) == 0 {
		return 0, io.EOF
	}
	n := 2
	if n > len(c.data) {
		n = len(c.data)
	}
	if n > len(p) {
		n = len(p)
	}
	copy(p, c.data[:n])
	c.data = c.data[n:]
	return n, nil
}

func TestReadReportSplitDelivery(t *testing.T) {
	r := &chunkedReader{data: []byte{0x00, 0x80, 0x80, 0x3F}}

	rep, err := ReadReport(r)
	if err != nil {
		t.Fatalf("ReadReport error on split delivery: %v", err)
	}
	if rep != (Report{0x00, 0x80, 0x80, 0x3F}) {
		t.Fatalf("unexpected report: %v", rep)
	}
}

func TestReadReportTruncatedFrame(t *testing.T) {
	r := bytes.NewReader([]byte{0x00, 0x80})

	_, err := ReadReport(r)
	if err != io.ErrUnexpectedEOF {
		t.Fatalf("expected io.ErrUnexpectedEOF, got %v", err)
	}
}

func TestReadReportEOF(t *testing.T) {
	_, err := ReadReport(bytes.NewReader(nil))
	if err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}

func TestCopyState(t *testing.T) {
	orig := PollRead
	defer func() { PollRead = orig }()

	PollRead = func(_ string, buf []byte, _ int) (int, error) {
		return copy(buf, []byte{0x00, 0x80, 0x80, 0x3F}), nil
	}

	rep, err := CopyState("/dev/fakehidraw0", 250)
	if err != nil {
		t.Fatalf("CopyState error: %v", err)
	}
	if rep != (Report{0x00, 0x80, 0x80, 0x3F}) {
		t.Fatalf("unexpected report: %v", rep)
	}
}

func TestCopyStateNoReport(t *testing.T) {
	orig := PollRead
	defer func() { PollRead = orig }()

	// Poll window elapsed with nothing pending.
	PollRead = func(_ string, _ []byte, _ int) (int, error) {
		return 0, nil
	}

	_, err := CopyState("/dev/fakehidraw0", 250)
	if !errors.Is(err, ErrNoReport) {
		t.Fatalf("expected ErrNoReport, got %v", err)
	}
}

func TestCopyStateShortReport(t *testing.T) {
	orig := PollRead
	defer func() { PollRead = orig }()

	PollRead = func(_ string, buf []byte, _ int) (int, error) {
		return copy(buf, []byte{0x00, 0x80}), nil
	}

	_, err := CopyState("/dev/fakehidraw0", 250)
	if err == nil || errors.Is(err, ErrNoReport) {
		t.Fatalf("expected short-report error, got %v", err)
	}
}
