// Package artnet pushes DMX universes to an Art-Net node over UDP.
package artnet

import "encoding/binary"

const (
	// Port is the fixed Art-Net UDP port.
	Port = 6454
	// UniverseSize is the DMX payload length carried per packet.
	UniverseSize = 512

	opDmx     = 0x5000
	protoVer  = 14
	headerLen = 18
)

// Build encodes one ArtDmx packet: the "Art-Net" signature, little-endian
// opcode, big-endian protocol version, sequence and physical bytes, the
// little-endian universe and big-endian payload length, then the DMX data.
func Build(universe uint16, data []byte) []byte {
	packet := make([]byte, headerLen+len(data))
	copy(packet, "Art-Net\x00")
	binary.LittleEndian.PutUint16(packet[8:], opDmx)
	binary.BigEndian.PutUint16(packet[10:], protoVer)
	packet[12] = 0 // sequence disabled
	packet[13] = 0 // physical port
	binary.LittleEndian.PutUint16(packet[14:], universe)
	binary.BigEndian.PutUint16(packet[16:], uint16(len(data)))
	copy(packet[headerLen:], data)
	return packet
}
