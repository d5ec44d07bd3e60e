package order

import (
	"math/rand"
	"strconv"
	"time"
)

// NewOrderCode generates a human-facing order code: prefix, millisecond
// timestamp, random suffix in [0,1000). Uniqueness is backed by the UNIQUE
// constraint on orders.order_code; the service retries once on collision.
func NewOrderCode(prefix string) string {
	millis := time.Now().UnixMilli()

	return prefix + strconv.FormatInt(millis, 10) + strconv.Itoa(rand.Intn(1000))
}
