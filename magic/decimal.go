package magic

import (
	"strings"

	"github.com/pkg/errors"
)

// bigDecimal is a non-negative decimal number kept as its digit sequence.
// It is a scratch value: parsed from a seed, doubled in place and discarded
// once its integer part has been read out.
type bigDecimal struct {
	digits []byte // digit values 0-9, most significant first
	point  int    // number of digits before the decimal point
}

func parseDecimal(s string) (*bigDecimal, error) {
	intPart, fracPart := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
		if strings.IndexByte(fracPart, '.') >= 0 {
			return nil, errors.Errorf("more than one decimal point in %q", s)
		}
	}
	if intPart == "" {
		intPart = "0"
	}
	d := &bigDecimal{
		digits: make([]byte, 0, len(intPart)+len(fracPart)),
		point:  len(intPart),
	}
	for _, part := range []string{intPart, fracPart} {
		for i := 0; i < len(part); i++ {
			c := part[i]
			if c < '0' || c > '9' {
				return nil, errors.Errorf("invalid digit %q in %q", c, s)
			}
			d.digits = append(d.digits, c-'0')
		}
	}
	d.trimLeadingZeros()
	return d, nil
}

// mulSmall multiplies d by m in place, by long multiplication from the
// least significant digit. The fraction keeps its length.
func (d *bigDecimal) mulSmall(m uint) {
	var carry uint
	for i := len(d.digits) - 1; i >= 0; i-- {
		v := uint(d.digits[i])*m + carry
		d.digits[i] = byte(v % 10)
		carry = v / 10
	}
	var head []byte
	for carry > 0 {
		head = append(head, byte(carry%10))
		carry /= 10
	}
	if len(head) > 0 {
		for i, j := 0, len(head)-1; i < j; i, j = i+1, j-1 {
			head[i], head[j] = head[j], head[i]
		}
		d.digits = append(head, d.digits...)
		d.point += len(head)
	}
	d.trimLeadingZeros()
}

// integerDigits returns the digits of the integer part, without leading
// zeros and at least one digit long.
func (d *bigDecimal) integerDigits() []byte {
	out := make([]byte, d.point)
	copy(out, d.digits[:d.point])
	return out
}

func (d *bigDecimal) trimLeadingZeros() {
	n := 0
	for n < d.point-1 && d.digits[n] == 0 {
		n++
	}
	d.digits = d.digits[n:]
	d.point -= n
}

func (d *bigDecimal) String() string {
	var sb strings.Builder
	for i, v := range d.digits {
		if i == d.point {
			sb.WriteByte('.')
		}
		sb.WriteByte('0' + v)
	}
	return sb.String()
}

// halve divides the decimal integer in digits by two, carrying each
// digit's remainder into the next less significant digit. It reports the
// remainder of the whole division.
func halve(digits []byte) ([]byte, byte) {
	out := make([]byte, 0, len(digits))
	var rem byte
	for _, v := range digits {
		cur := rem*10 + v
		q := cur / 2
		rem = cur % 2
		if len(out) == 0 && q == 0 {
			continue
		}
		out = append(out, q)
	}
	if len(out) == 0 {
		out = append(out, 0)
	}
	return out, rem
}

func isZero(digits []byte) bool {
	return len(digits) == 1 && digits[0] == 0
}

// decimalToBinary converts decimal digits into binary digits, most
// significant first, by repeated halving.
func decimalToBinary(digits []byte) []byte {
	if isZero(digits) {
		return []byte{0}
	}
	var bitsLSBFirst []byte
	for !isZero(digits) {
		var bit byte
		digits, bit = halve(digits)
		bitsLSBFirst = append(bitsLSBFirst, bit)
	}
	out := make([]byte, len(bitsLSBFirst))
	for i, b := range bitsLSBFirst {
		out[len(out)-1-i] = b
	}
	return out
}

// forceOdd sets the least significant binary digit.
func forceOdd(binary []byte) {
	if len(binary) > 0 {
		binary[len(binary)-1] = 1
	}
}

const hexDigits = "0123456789ABCDEF"

// binaryToHex groups binary digits into nibbles from the most significant
// end. len(binary) must be a multiple of 4.
func binaryToHex(binary []byte) (string, error) {
	if len(binary)%4 != 0 {
		return "", errors.Errorf("binary string of %d digits is not a whole number of nibbles", len(binary))
	}
	var sb strings.Builder
	for i := 0; i < len(binary); i += 4 {
		nibble := binary[i]<<3 | binary[i+1]<<2 | binary[i+2]<<1 | binary[i+3]
		sb.WriteByte(hexDigits[nibble])
	}
	return sb.String(), nil
}

// padBinary left pads binary with zeros to width digits.
func padBinary(binary []byte, width int) []byte {
	if len(binary) >= width {
		return binary
	}
	out := make([]byte, width)
	copy(out[width-len(binary):], binary)
	return out
}
