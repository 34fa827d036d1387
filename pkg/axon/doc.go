// Package axon provides the device side of the Axon link protocol.
package axon

// Axon protocol is communicated between a device (e.g. a microcontroller
// or a single board computer) and a host over a point-to-point line
// oriented channel (e.g. serial port).
//
// Every message is a single line: one tag character identifying the
// message family followed by a compact JSON body.
//
//   H  handshake request/response
//   C  command
//   R  record (device -> host)
//   S  state snapshot (device -> host)
//   I  init request marker (device -> host), no body
//
// A connection is a two-way rendezvous: the initiator sends a connect
// request, the peer replies with an accept response. There is no
// sequence number and no checksum; a malformed line is simply dropped.
//
// Producer: device
// Consumer: host
