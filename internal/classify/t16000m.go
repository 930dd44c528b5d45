package classify

import (
	"log"

	"hosas/internal/hidraw"
	"hosas/internal/side"
)

// Product names the T.16000M reports, depending on the HID layer.
const (
	T16000MProduct   = "T.16000M"
	T16000MLinuxName = "Thrustmaster T.16000M"
)

// Byte 3 of the T.16000M report carries the hand switch in bit 5 and the
// hat direction in the low bits. While the hat is pressed the top nibble
// reads zero and the switch bit cannot be trusted.
const (
	t16kSwitchByte      = 3
	t16kHandSwitchBit   = 0b0010_0000
	t16kHatActivityMask = 0b1111_0000
)

// RegisterT16000M installs the T.16000M handler under both product
// spellings.
func RegisterT16000M(r *Registry) {
	r.Register(T16000MProduct, T16000M)
	r.Register(T16000MLinuxName, T16000M)
}

// T16000M classifies one report.
//
// The hat check comes first: the hat shares the switch byte and forces
// spurious zero readings that must never be read as a handedness change.
// A stick never classified before gets Left as the safe default during
// hat activity; a right-hand stick will correct itself on the first idle
// frame, since its idle switch bit reads 1.
func T16000M(st *side.Store, id string, rep hidraw.Report) {
	b := rep[t16kSwitchByte]
	decodedRight := b&t16kHandSwitchBit != 0
	hatInUse := b&t16kHatActivityMask == 0

	current, assigned := st.Side(id)

	if hatInUse {
		if !assigned {
			if Debug {
				log.Default().Printf("classify: %s unreadable during hat press, defaulting to left\n", id)
			}
			st.SetSide(id, side.Left)
		}
		return
	}

	decoded := side.Left
	if decodedRight {
		decoded = side.Right
	}

	if assigned && decoded == current {
		return
	}

	if Debug {
		log.Default().Printf("classify: %s switch byte %#02x -> %s\n", id, b, decoded)
	}
	st.SetSide(id, decoded)
}
