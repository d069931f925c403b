package services

import (
	"fmt"
	"strconv"
	"strings"
)

const orderNumberPrefix = "IMP"

// FormatOrderNumber renders IMP-<year>-<sequence>, the sequence zero-padded to 3 digits
func FormatOrderNumber(year int, sequence int64) string {
	return fmt.Sprintf("%s-%d-%03d", orderNumberPrefix, year, sequence)
}

// ParseOrderSequence extracts the sequence from an order number.
// ok is false when the number does not follow the IMP-<year>-<sequence> format.
func ParseOrderSequence(orderNumber string) (sequence int64, ok bool) {
	parts := strings.Split(orderNumber, "-")
	if len(parts) != 3 || parts[0] != orderNumberPrefix {
		return 0, false
	}
	if _, err := strconv.Atoi(parts[1]); err != nil {
		return 0, false
	}
	seq, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil || seq < 1 {
		return 0, false
	}
	return seq, true
}

// OrderSequence hands out strictly increasing order sequence numbers.
// It never reuses a value, even if orders are later removed.
type OrderSequence struct {
	last int64
}

// NewOrderSequence resumes a sequence after the last issued value
func NewOrderSequence(last int64) *OrderSequence {
	if last < 0 {
		last = 0
	}
	return &OrderSequence{last: last}
}

// Peek returns the value Next would issue without consuming it
func (s *OrderSequence) Peek() int64 {
	return s.last + 1
}

// Next issues the next sequence value
func (s *OrderSequence) Next() int64 {
	s.last++
	return s.last
}

// Last returns the most recently issued value
func (s *OrderSequence) Last() int64 {
	return s.last
}

// Rewind restores the sequence to a previously observed Last value
func (s *OrderSequence) Rewind(last int64) {
	s.last = last
}
