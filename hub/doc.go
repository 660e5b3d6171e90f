// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package hub pushes state updates to WebSocket clients.

One Hub serves one poll session. It implements poll.Broadcaster: after
every state-changing command the manager hands it the PublicState
projection, and the run loop fans the encoded JSON out to every connected
client. Clients never send commands over the socket - the command surface
is HTTP - so the read side only watches for disconnects.

# Wiring

The hub and the poll manager reference each other, so assembly is
two-step:

	h := hub.New()
	mgr := poll.NewManager(st, h, nil)
	h.SetDisconnectHandler(mgr.Disconnect)
	go h.Run()

A dropped connection reports its participant token through the disconnect
handler, which unregisters the student (or teacher) from the session as an
ordinary atomic command.

# Backpressure

Each client has a small buffered send channel. A client that cannot keep
up with broadcasts is dropped rather than allowed to stall the classroom.
*/
package hub
