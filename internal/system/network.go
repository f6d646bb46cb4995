package system

import (
	"errors"
	"fmt"
	"net"
	"strings"
)

// ErrNoAddress is returned when no interface has a usable IPv4 address.
var ErrNoAddress = errors.New("no non-loopback IPv4 address")

// LocalIPv4 returns the first IPv4 address of an interface that is up and not
// a loopback.
func LocalIPv4() (string, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return "", err
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			ipNet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}
			if ip4 := ipNet.IP.To4(); ip4 != nil && !ip4.IsLinkLocalUnicast() {
				return ip4.String(), nil
			}
		}
	}
	return "", ErrNoAddress
}

// WebURL returns the address a phone on the same network should open for a
// server listening on listenAddr.
func WebURL(listenAddr string) (string, error) {
	return webURL(listenAddr, LocalIPv4)
}

func webURL(listenAddr string, lookup func() (string, error)) (string, error) {
	host, port, err := net.SplitHostPort(strings.TrimSpace(listenAddr))
	if err != nil {
		return "", fmt.Errorf("parse listen address %q: %w", listenAddr, err)
	}
	if port == "" || port == "0" {
		return "", fmt.Errorf("listen address %q has no fixed port", listenAddr)
	}
	if ip := net.ParseIP(host); host == "" || (ip != nil && ip.IsUnspecified()) {
		host, err = lookup()
		if err != nil {
			return "", err
		}
	}
	u := "http://" + net.JoinHostPort(host, port)
	if port == "80" {
		u = "http://" + host
	}
	return u + "/", nil
}
