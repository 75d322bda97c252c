package respond

import (
	"strconv"
	"strings"
)

// mediaRange is one entry of an Accept header.
type mediaRange struct {
	typ     string
	subtype string
	q       float64
}

// parseAccept splits an Accept header into media ranges. Invalid or
// out-of-range q values count as 1.0; a bare type without subtype is treated as type/*.
func parseAccept(header string) []mediaRange {
	var ranges []mediaRange
	for part := range strings.SplitSeq(header, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		params := strings.Split(part, ";")
		media := strings.ToLower(strings.TrimSpace(params[0]))
		if media == "" {
			continue
		}

		mr := mediaRange{q: 1.0}
		if typ, sub, ok := strings.Cut(media, "/"); ok {
			mr.typ, mr.subtype = strings.TrimSpace(typ), strings.TrimSpace(sub)
		} else {
			mr.typ, mr.subtype = media, "*"
		}

		for _, p := range params[1:] {
			key, val, ok := strings.Cut(strings.TrimSpace(p), "=")
			if !ok || !strings.EqualFold(strings.TrimSpace(key), "q") {
				continue
			}
			q, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
			if err != nil || q < 0 || q > 1 {
				q = 1.0
			}
			mr.q = q
		}
		ranges = append(ranges, mr)
	}
	return ranges
}

// specificity ranks how precisely a range names the target subtype; -1 means no match.
func (mr mediaRange) specificity(typ, subtype string) int {
	switch {
	case mr.typ == "*" && mr.subtype == "*":
		return 0
	case mr.typ != typ:
		return -1
	case mr.subtype == "*":
		return 1
	case strings.HasPrefix(mr.subtype, "*+"):
		if strings.HasSuffix(subtype, mr.subtype[1:]) {
			return 2
		}
		return -1
	case mr.subtype == subtype:
		if strings.Contains(subtype, "+") {
			return 4
		}
		return 3
	default:
		return -1
	}
}

type preference struct {
	q           float64
	specificity int
}

func (p preference) acceptable() bool { return p.q > 0 }

func (p preference) beats(o preference) bool {
	if p.q != o.q {
		return p.q > o.q
	}
	return p.specificity > o.specificity
}

// preferenceFor returns the best acceptable preference among the subtypes of
// one format. For each subtype the most specific matching range decides its q.
func preferenceFor(ranges []mediaRange, subtypes ...string) preference {
	best := preference{specificity: -1}
	for _, sub := range subtypes {
		match := preference{specificity: -1}
		for _, mr := range ranges {
			s := mr.specificity("application", sub)
			if s < 0 {
				continue
			}
			if s > match.specificity || (s == match.specificity && mr.q > match.q) {
				match = preference{q: mr.q, specificity: s}
			}
		}
		if match.acceptable() && (!best.acceptable() || match.beats(best)) {
			best = match
		}
	}
	return best
}

// selectFormat reports whether CBOR should be used for a problem response.
// Ranking follows RFC 9110: q-value first, specificity as tie-breaker, and
// JSON whenever the outcome is a tie or nothing matches.
func selectFormat(accept string) bool {
	ranges := parseAccept(accept)
	if len(ranges) == 0 {
		return false
	}
	cborPref := preferenceFor(ranges, "problem+cbor", "cbor")
	if !cborPref.acceptable() {
		return false
	}
	jsonPref := preferenceFor(ranges, "problem+json", "json")
	if !jsonPref.acceptable() {
		return true
	}
	return cborPref.beats(jsonPref)
}
