package sensor

import (
	"encoding/binary"
	"fmt"
)

// Location and Speed characteristic flag bits (Bluetooth LNS, 0x2A67).
const (
	lnsFlagSpeed    = 1 << 0
	lnsFlagDistance = 1 << 1
	lnsFlagLocation = 1 << 2
	lnsFlagElev     = 1 << 3
	lnsFlagHeading  = 1 << 4
	lnsFlagRolling  = 1 << 5
	lnsFlagUTC      = 1 << 6
)

// Reading is one decoded Location and Speed notification.
type Reading struct {
	HasLocation bool
	Latitude    float64 // decimal degrees
	Longitude   float64
	HasHeading  bool
	Heading     float64 // degrees clockwise from north
}

// decodeLocationAndSpeed parses a Location and Speed characteristic value.
// Fields are little-endian and appear in flag order: speed (u16, 1/100 m/s),
// total distance (u24, 1/10 m), location (2x s32, 1e-7 deg), elevation
// (s24, 1/100 m), heading (u16, 1/100 deg), rolling time (u8), UTC (7 bytes).
func decodeLocationAndSpeed(buf []byte) (Reading, error) {
	var r Reading
	if len(buf) < 2 {
		return r, fmt.Errorf("location and speed packet too short: %d bytes", len(buf))
	}
	flags := binary.LittleEndian.Uint16(buf[:2])
	off := 2

	need := func(n int, field string) error {
		if off+n > len(buf) {
			return fmt.Errorf("truncated %s field at offset %d", field, off)
		}
		return nil
	}

	if flags&lnsFlagSpeed != 0 {
		if err := need(2, "speed"); err != nil {
			return r, err
		}
		off += 2
	}
	if flags&lnsFlagDistance != 0 {
		if err := need(3, "distance"); err != nil {
			return r, err
		}
		off += 3
	}
	if flags&lnsFlagLocation != 0 {
		if err := need(8, "location"); err != nil {
			return r, err
		}
		lat := int32(binary.LittleEndian.Uint32(buf[off : off+4]))
		lon := int32(binary.LittleEndian.Uint32(buf[off+4 : off+8]))
		r.HasLocation = true
		r.Latitude = float64(lat) * 1e-7
		r.Longitude = float64(lon) * 1e-7
		off += 8
	}
	if flags&lnsFlagElev != 0 {
		if err := need(3, "elevation"); err != nil {
			return r, err
		}
		off += 3
	}
	if flags&lnsFlagHeading != 0 {
		if err := need(2, "heading"); err != nil {
			return r, err
		}
		r.HasHeading = true
		r.Heading = float64(binary.LittleEndian.Uint16(buf[off:off+2])) / 100.0
		off += 2
	}

	return r, nil
}
