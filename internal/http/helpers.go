package http

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"spaarpot/internal/core"
)

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// generateRequestID creates a unique request ID for tracing
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to timestamp if random fails
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

// summaryLines renders a contract summary as user-facing Dutch lines
// with euro amounts, one per active bucket.
func summaryLines(s core.ContractSummary) []string {
	var lines []string
	for _, ft := range s.Recurring {
		lines = append(lines, "Doorlopend: € "+ft.Total.Format()+" "+ft.Frequency.DutchLabel())
	}
	if !s.Unknown.IsZero() {
		lines = append(lines, "€ "+s.Unknown.Format()+" frequentie onbekend")
	}
	if s.InstallmentsCount > 0 {
		lines = append(lines, fmt.Sprintf("%d termijnen, totaal € %s", s.InstallmentsCount, s.InstallmentsTotal.Format()))
	}
	return lines
}
