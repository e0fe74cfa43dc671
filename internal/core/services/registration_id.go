package services

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"
)

// Registration IDs look like UFA/007/2026: a sequence number scoped to
// the calendar year, zero-padded to three digits (wider values simply
// grow), prefixed with the organization code.
const registrationPrefix = "UFA"

// formatRegistrationID renders a sequence number for a given year
func formatRegistrationID(seq int64, year int) string {
	return fmt.Sprintf("%s/%03d/%d", registrationPrefix, seq, year)
}

// fallbackRegistrationID derives a registration id from the clock when
// the remote store cannot be consulted: the last six digits of the
// unix-millisecond timestamp replace the sequential component. Two
// creations within the same millisecond could collide; availability is
// preferred over that theoretical risk.
func fallbackRegistrationID(now time.Time) string {
	suffix := now.UnixMilli() % 1_000_000
	return fmt.Sprintf("%s/%06d/%d", registrationPrefix, suffix, now.Year())
}

// nextRegistrationID produces the registration id for a new membership.
// It never fails: a record is never created without one. When the
// remote store is reachable the sequence advances past the highest id
// ever issued this year, so deleted records leave gaps instead of
// freeing their id for reuse. Otherwise the timestamp fallback is used.
func (s *MembershipService) nextRegistrationID(ctx context.Context) string {
	now := time.Now()

	if s.remoteAvailable() {
		pattern := fmt.Sprintf("%s/%%/%d", registrationPrefix, now.Year())
		ids, err := s.remote.ListRegistrationIDs(ctx, pattern)
		if err == nil {
			return formatRegistrationID(maxRegistrationSeq(ids)+1, now.Year())
		}
		log.Printf("⚠️ Registration sequence query failed, using timestamp fallback: %v", err)
	}

	return fallbackRegistrationID(now)
}

// maxRegistrationSeq returns the highest sequence number among issued
// registration ids, 0 when none parse
func maxRegistrationSeq(ids []string) int64 {
	var max int64
	for _, id := range ids {
		parts := strings.Split(id, "/")
		if len(parts) != 3 {
			continue
		}
		seq, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			continue
		}
		if seq > max {
			max = seq
		}
	}
	return max
}
