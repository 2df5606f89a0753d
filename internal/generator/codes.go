package generator

import (
	"strings"

	"github.com/tools4freee/t4f/internal/checksum"
	"github.com/tools4freee/t4f/internal/entropy"
	"github.com/tools4freee/t4f/internal/refdata"
)

// ChecksummedCode fills alg's payload with random digits and appends the
// check character. ISBN-13 payloads start with the Bookland prefix and EAN-13
// payloads with a GS1 country prefix. Codes are cosmetic and drawn from the
// source handed in, normally the pseudo source.
func ChecksummedCode(src entropy.Source, alg checksum.Algorithm) (string, error) {
	prefix := alg.Prefix
	if alg.Name == checksum.EAN13.Name {
		p, err := entropy.Pick(src, refdata.Default().EANPrefixCodes())
		if err != nil {
			return "", err
		}
		prefix = p
	}

	var b strings.Builder
	b.Grow(alg.Length())
	b.WriteString(prefix)
	for b.Len() < alg.Payload {
		d, err := entropy.IntN(src, 10)
		if err != nil {
			return "", err
		}
		b.WriteByte(byte('0' + d))
	}
	return alg.Complete(b.String())
}
