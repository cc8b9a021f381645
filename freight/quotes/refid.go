package quotes

import (
	"fmt"
	"time"
)

// refIssuer generates quote reference numbers of the form
// Q<yyyymmddHHMMSS>-<seq>, UTC, with a four-digit sequence that breaks ties
// inside one second. The issued timestamp never moves backwards even if the
// wall clock does, so references are strictly increasing in save order both
// chronologically and lexicographically. Callers must hold the store lock.
type refIssuer struct {
	lastStamp string
	lastSeq   int
}

func (r *refIssuer) next(now time.Time) string {
	stamp := now.UTC().Format("20060102150405")
	if stamp <= r.lastStamp {
		stamp = r.lastStamp
		r.lastSeq++
	} else {
		r.lastStamp = stamp
		r.lastSeq = 1
	}
	return fmt.Sprintf("Q%s-%04d", stamp, r.lastSeq)
}
