package conv

// Fixed writes v with the given number of decimals (0..6), rounding half away
// from zero. Values whose integer part overflows int64 are not supported.
func Fixed(buf []byte, v float32, decimals int) []byte {
	if decimals < 0 {
		decimals = 0
	}
	if decimals > 6 {
		decimals = 6
	}
	scale := int64(1)
	for i := 0; i < decimals; i++ {
		scale *= 10
	}
	neg := v < 0
	if neg {
		v = -v
	}
	scaled := int64(float64(v)*float64(scale) + 0.5)
	ip, fp := scaled/scale, scaled%scale

	var tmp [24]byte
	out := buf[:0]
	if neg && scaled != 0 {
		out = append(out, '-')
	}
	out = append(out, Itoa(tmp[:], ip)...)
	if decimals == 0 {
		return out
	}
	out = append(out, '.')
	frac := Utoa(tmp[:], uint64(fp))
	for pad := decimals - len(frac); pad > 0; pad-- {
		out = append(out, '0')
	}
	return append(out, frac...)
}
