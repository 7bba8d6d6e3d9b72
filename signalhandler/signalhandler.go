package signalhandler

import (
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"skydb/logging"
)

// exitInterrupted is the conventional status for a process stopped by SIGINT
const exitInterrupted = 130

// SetupHandler exits the process on SIGINT or SIGTERM after running
// cleanup. OpenCV decoding runs in C and cannot be interrupted mid-call,
// so the process exits rather than unwinding the scan.
func SetupHandler(cleanup func()) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		logging.LogInfo("Received %v, shutting down", sig)
		if cleanup != nil {
			cleanup()
		}
		os.Exit(exitInterrupted)
	}()
}

// GetOptimalProcs returns the number of decode workers to use by default
func GetOptimalProcs() int {
	numCPU := runtime.NumCPU()

	// OpenCV runs its own threads, so leave some headroom
	maxProcs := (numCPU * 3) / 4
	if maxProcs < 1 {
		maxProcs = 1
	}

	return maxProcs
}
