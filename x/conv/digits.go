package conv

// Utoa writes n in base 10 at the end of buf and returns that tail. A buf too
// short for n keeps only the low digits; 20 bytes fit any uint64.
func Utoa(buf []byte, n uint64) []byte {
	i := len(buf)
	for i > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
		if n == 0 {
			break
		}
	}
	return buf[i:]
}

// Itoa is Utoa with a sign; 20 bytes fit any int64.
func Itoa(buf []byte, n int64) []byte {
	if n >= 0 {
		return Utoa(buf, uint64(n))
	}
	d := Utoa(buf, uint64(-n))
	i := len(buf) - len(d)
	if i == 0 {
		return d
	}
	buf[i-1] = '-'
	return buf[i-1:]
}
