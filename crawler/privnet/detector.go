// privnet package guards the crawler against fetching hosts that resolve
// into private or link-local address space.
package privnet

import (
	"fmt"
	"net"
)

var defaultPrivateCIDRs = []string{
	"127.0.0.0/8",
	"::1/128",
	"10.0.0.0/8",
	"172.16.0.0/12",
	"192.168.0.0/16",
	"169.254.0.0/16",
	"fe80::/10",
	"0.0.0.0/8",
	"255.255.255.255/32",
	"fc00::/7",
}

// Detector reports whether a host name resolves to a private network
// address.
type Detector struct {
	blocks []*net.IPNet
}

// NewDetector returns a Detector covering the RFC1918 ranges plus
// loopback, link-local and unique-local blocks.
func NewDetector() (*Detector, error) {
	return NewDetectorFromCIDRs(defaultPrivateCIDRs...)
}

// NewDetectorFromCIDRs returns a Detector covering a caller-specified set
// of CIDR blocks.
func NewDetectorFromCIDRs(cidrs ...string) (*Detector, error) {
	blocks := make([]*net.IPNet, len(cidrs))
	for i, cidr := range cidrs {
		var err error
		if _, blocks[i], err = net.ParseCIDR(cidr); err != nil {
			return nil, fmt.Errorf("parse CIDR %q: %w", cidr, err)
		}
	}

	return &Detector{blocks: blocks}, nil
}

// IsPrivate resolves the address and checks it against the configured
// blocks.
func (d *Detector) IsPrivate(address string) (bool, error) {
	ipAddr, err := net.ResolveIPAddr("ip", address)
	if err != nil {
		return false, err
	}

	for _, block := range d.blocks {
		if block.Contains(ipAddr.IP) {
			return true, nil
		}
	}

	return false, nil
}
