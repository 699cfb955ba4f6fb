package helpers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

func StringToInt(s string) (int, error) {
	return strconv.Atoi(s)
}

// NewPaymentReference builds a reference unique enough for the gateway's
// namespace: unix timestamp plus the first uuid block.
func NewPaymentReference(prefix string) string {
	suffix := strings.Split(uuid.New().String(), "-")[0]
	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().Unix(), suffix)
}

// FormatNaira renders an integer naira amount with thousand separators.
// The PDF fonts have no glyph for the naira sign, so "NGN" is used.
func FormatNaira(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	str := strconv.FormatInt(amount, 10)
	var out strings.Builder
	for i, c := range str {
		if i != 0 && (len(str)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(c)
	}
	return fmt.Sprintf("%sNGN %s", sign, out.String())
}
