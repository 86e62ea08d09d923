// internal/rc/postprocess.go
package rc

// Remap reorders source slots into output slots and applies inversion.
// A map entry outside [0,15] falls back to the slot's own index.
// Inversion reflects the scaled value only; the raw value passes through.
func Remap(ch ChannelVector, raw RawVector, mapping [16]int, invert [16]bool) (ChannelVector, RawVector) {
	var chOut ChannelVector
	var rawOut RawVector
	for i := 0; i < 16; i++ {
		src := mapping[i]
		if src < 0 || src >= 16 {
			src = i
		}
		v := ch[src]
		if invert[i] {
			v = Invert(v)
		}
		chOut[i] = v
		rawOut[i] = raw[src]
	}
	return chOut, rawOut
}
