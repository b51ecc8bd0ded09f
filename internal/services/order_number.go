package services

import (
	"crypto/rand"
	"math/big"
	"strconv"
	"time"
)

// OrderNumberPrefix starts every human-facing order number.
const OrderNumberPrefix = "NS"

const orderNumberRandRange = 1000

// NewOrderNumber returns "NS" followed by the current unix time in
// milliseconds and a random tie-breaker in [0, 1000).
func NewOrderNumber() string {
	return orderNumberAt(time.Now())
}

func orderNumberAt(now time.Time) string {
	n, err := rand.Int(rand.Reader, big.NewInt(orderNumberRandRange))
	if err != nil {
		n = big.NewInt(now.UnixNano() % orderNumberRandRange)
	}
	return OrderNumberPrefix + strconv.FormatInt(now.UnixMilli(), 10) + strconv.FormatInt(n.Int64(), 10)
}
