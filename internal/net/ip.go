package net

import (
	"fmt"
	"log"
	"net"
)

// GetOutgoingIP finds the address other machines on the LAN can reach this
// host at.
func GetOutgoingIP() (string, error) {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		// No route to the internet; look at the local interfaces instead.
		return getLocalIPFallback()
	}
	defer conn.Close()

	localAddr := conn.LocalAddr().(*net.UDPAddr)
	return localAddr.IP.String(), nil
}

// getLocalIPFallback is used on networks without internet access.
func getLocalIPFallback() (string, error) {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "", err
	}
	for _, address := range addrs {
		if ipnet, ok := address.(*net.IPNet); ok && !ipnet.IP.IsLoopback() {
			if ipnet.IP.To4() != nil {
				return ipnet.IP.String(), nil
			}
		}
	}
	log.Println("No suitable local IP found, share link will use loopback.")
	return "127.0.0.1", nil
}

// ShareURL is the address of the browser host served on port.
func ShareURL(port int) string {
	ip, err := GetOutgoingIP()
	if err != nil {
		ip = "127.0.0.1"
	}
	return fmt.Sprintf("http://%s/", net.JoinHostPort(ip, fmt.Sprint(port)))
}

// Listen binds the browser host's TCP listener on addr, such as ":8888",
// and reports the port it got.
func Listen(addr string) (net.Listener, int, error) {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to start browser host on %q: %w", addr, err)
	}
	return l, l.Addr().(*net.TCPAddr).Port, nil
}
