package services

import "time"

// SetOrderNumberFunc replaces the order number generator of s.
func SetOrderNumberFunc(s *OrderService, f func() string) {
	s.newOrderNumber = f
}

// SetGateClock replaces the clock of g.
func SetGateClock(g *AdminGate, now func() time.Time) {
	g.now = now
}
