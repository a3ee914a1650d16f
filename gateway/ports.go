package gateway

import (
	"net"
	"strconv"
	"time"
)

const portDialTimeout = 300 * time.Millisecond

// PortsInUse returns the ports on localhost that already accept connections.
func (g *Gateway) PortsInUse(ports []int) []int {
	busy := []int{}
	for _, port := range ports {
		conn, err := net.DialTimeout("tcp", net.JoinHostPort("127.0.0.1", strconv.Itoa(port)), portDialTimeout)
		if err != nil {
			continue
		}
		conn.Close()
		busy = append(busy, port)
	}
	return busy
}
