package coordinator

import "os"

func currentPID() int {
	return os.Getpid()
}
