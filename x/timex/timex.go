package timex

import "time"

// NowMs returns Unix milliseconds as int64.
func NowMs() int64 { return time.Now().UnixMilli() }

// PeriodFromHz returns a nanosecond period for a requested frequency.
// freqHz==0 is coerced to 1 to avoid division by zero.
func PeriodFromHz(freqHz uint32) uint64 {
	if freqHz == 0 {
		freqHz = 1
	}
	return uint64(1_000_000_000 / uint64(freqHz))
}

// PeriodMsFromHz is PeriodFromHz in whole milliseconds, minimum 1.
func PeriodMsFromHz(freqHz uint32) int64 {
	ms := int64(PeriodFromHz(freqHz) / 1_000_000)
	if ms < 1 {
		ms = 1
	}
	return ms
}
