package clock

import "time"

// Clock abstracts time so export metadata is reproducible in tests.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

type Fixed time.Time

func (f Fixed) Now() time.Time {
	return time.Time(f)
}
