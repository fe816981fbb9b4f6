package quizshow

import "log"

// Global verbose flag
var verboseMode bool

// SetVerbose turns chatty engine and pipeline logging on or off
func SetVerbose(verbose bool) {
	verboseMode = verbose
}

// VerboseLog logs only when verbose mode is enabled
func VerboseLog(format string, v ...interface{}) {
	if verboseMode {
		log.Printf(format, v...)
	}
}
