package main

import (
	"syscall"
	"time"

	"github.com/felixge/mt940-bench/internal"
	"github.com/pkg/errors"
)

func toDuration(t syscall.Timeval) time.Duration {
	return time.Second*time.Duration(t.Sec) + time.Microsecond*time.Duration(t.Usec)
}

func getrusage() (syscall.Rusage, error) {
	var ru syscall.Rusage
	err := syscall.Getrusage(syscall.RUSAGE_SELF, &ru)
	return ru, errors.Wrap(err, "getrusage")
}

// rusageDelta returns the CPU time spent between before and after.
func rusageDelta(before, after syscall.Rusage) internal.Rusage {
	return internal.Rusage{
		User:   toDuration(after.Utime) - toDuration(before.Utime),
		System: toDuration(after.Stime) - toDuration(before.Stime),
	}
}
