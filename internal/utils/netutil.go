package utils

import (
	"fmt"
	"net"
	"time"
)

// CheckPortConnectable reports whether something is listening on the local
// port. Used by tcp readiness probes.
func CheckPortConnectable(port int) bool {
	timeout := time.Second
	conn, err := net.DialTimeout("tcp", net.JoinHostPort("localhost", fmt.Sprintf("%d", port)), timeout)
	if err != nil {
		return false
	}
	if conn != nil {
		conn.Close()
		return true
	}
	return false
}
