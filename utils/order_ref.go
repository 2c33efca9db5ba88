package utils

import (
	"crypto/rand"
	"fmt"
	"strconv"
	"time"
)

// Order reference charset drops I, O, 0 and 1 to avoid confusion when the
// reference is read back over the phone.
const orderRefCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateOrderRef returns a public order reference like "DKO-7HXM2QKF".
func GenerateOrderRef() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "DKO-" + strconv.FormatInt(time.Now().UnixNano(), 36)
	}
	for i := range b {
		b[i] = orderRefCharset[int(b[i])%len(orderRefCharset)]
	}
	return fmt.Sprintf("DKO-%s", string(b))
}
