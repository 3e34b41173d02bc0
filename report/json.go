package report

import (
	"fmt"

	"github.com/sugawarayuuta/sonnet"
)

// Encode renders r as JSON.
func Encode(r *Report) ([]byte, error) {
	b, err := sonnet.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("report: encode: %w", err)
	}
	return b, nil
}

// Decode parses a report produced by Encode.
func Decode(b []byte) (*Report, error) {
	var r Report
	if err := sonnet.Unmarshal(b, &r); err != nil {
		return nil, fmt.Errorf("report: decode: %w", err)
	}
	return &r, nil
}
