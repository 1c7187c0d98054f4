package zeroconf

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// ServiceType is the DNS-SD type every machinekit service is announced under.
	ServiceType = "_machinekit._tcp"

	TXTKeyDSN        = "dsn"
	TXTKeyUUID       = "uuid"
	TXTKeyInstance   = "instance"
	TXTKeyService    = "service"
	maxDNSLabelBytes = 63
)

var ErrMissingTXT = errors.New("missing txt record")

// Protocol selects the address family a record is announced on.
type Protocol string

const (
	ProtocolIPv4 Protocol = "ipv4"
	ProtocolIPv6 Protocol = "ipv6"
	ProtocolAny  Protocol = "any"
)

func ParseProtocol(s string) (Protocol, error) {
	switch p := Protocol(strings.ToLower(s)); p {
	case "":
		return ProtocolIPv4, nil
	case ProtocolIPv4, ProtocolIPv6, ProtocolAny:
		return p, nil
	default:
		return "", fmt.Errorf("unknown protocol: %s", s)
	}
}

// ServiceRecord is a fully rendered announcement.
type ServiceRecord struct {
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Subtype  string   `json:"subtype"`
	Domain   string   `json:"domain"`
	Host     string   `json:"host"`
	Port     int      `json:"port"`
	Text     []string `json:"text"`
	Loopback bool     `json:"loopback"`
	Protocol Protocol `json:"protocol"`
}

// Subtype returns the DNS-SD subtype scoping serviceType under ServiceType.
func Subtype(serviceType string) string {
	return "_" + serviceType + "._sub." + ServiceType
}

// subtypeLabel extracts the leading label of a subtype, "_demo" for
// "_demo._sub._machinekit._tcp".
func subtypeLabel(subtype string) string {
	label, _, _ := strings.Cut(subtype, "._sub.")
	return label
}

// BuildTXT returns the text records of a service, always in the same order.
func BuildTXT(dsn, serviceUUID, instanceID, serviceType string) []string {
	return []string{
		TXTKeyDSN + "=" + dsn,
		TXTKeyUUID + "=" + serviceUUID,
		TXTKeyInstance + "=" + instanceID,
		TXTKeyService + "=" + serviceType,
	}
}

// ServiceInfo is a machinekit service found on the network.
type ServiceInfo struct {
	Instance string   `json:"instance"`
	HostName string   `json:"host_name"`
	Port     int      `json:"port"`
	Addrs    []string `json:"addrs"`

	DSN         string `json:"dsn"`
	ServiceUUID string `json:"uuid"`
	InstanceID  string `json:"instance_id"`
	Service     string `json:"service"`
}

// ParseTXT decodes the text records produced by BuildTXT into info.
// Unknown keys are ignored.
func ParseTXT(txt []string, info *ServiceInfo) error {
	fields := make(map[string]string, len(txt))
	for _, t := range txt {
		key, value, ok := strings.Cut(t, "=")
		if !ok {
			continue
		}
		fields[strings.ToLower(key)] = value
	}

	for _, key := range []string{TXTKeyDSN, TXTKeyUUID, TXTKeyInstance, TXTKeyService} {
		if _, ok := fields[key]; !ok {
			return fmt.Errorf("%w: %s", ErrMissingTXT, key)
		}
	}

	info.DSN = fields[TXTKeyDSN]
	info.ServiceUUID = fields[TXTKeyUUID]
	info.InstanceID = fields[TXTKeyInstance]
	info.Service = fields[TXTKeyService]
	return nil
}
