package services

import (
	"fmt"
	"sync/atomic"
	"time"

	"hospitalserver/normalization"
)

// codeSeq disambiguates codes generated within the same millisecond. Rows
// process far faster than the clock ticks, so the timestamp alone would
// collide for distinct names sharing a prefix ("Paracetamol 500mg" and
// "Paracetamol 650mg" both start "PARACETA").
var codeSeq atomic.Int64

// generateEntityCode builds a business code for a newly created entity:
// an uppercase alphanumeric prefix of the name, a millisecond timestamp and
// a per-process sequence number.
func generateEntityCode(name string) string {
	return fmt.Sprintf("%s-%d-%d", normalization.CodePrefix(name, 8), time.Now().UnixMilli(), codeSeq.Add(1))
}
