// internal/frame/crc.go
package frame

// crc8 computes the CRSF CRC-8 (poly 0xD5, init 0, no reflection).
func crc8(data []byte) byte {
	var crc byte
	for _, b := range data {
		crc ^= b
		for i := 0; i < 8; i++ {
			if crc&0x80 != 0 {
				crc = crc<<1 ^ 0xD5
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

// crcX25Byte folds one byte into an X.25 CRC-16 (reflected poly 0x8408).
func crcX25Byte(crc uint16, b byte) uint16 {
	crc ^= uint16(b)
	for i := 0; i < 8; i++ {
		if crc&1 != 0 {
			crc = crc>>1 ^ 0x8408
		} else {
			crc >>= 1
		}
	}
	return crc
}

// crcX25 computes the X.25 CRC-16 over data (init 0xFFFF, no xorout).
func crcX25(data []byte) uint16 {
	crc := uint16(0xFFFF)
	for _, b := range data {
		crc = crcX25Byte(crc, b)
	}
	return crc
}
