// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

import "time"

// AnyList realtime listener protocol
const (
	// ListenerHeartbeatMessage is sent by the client to keep the socket alive
	ListenerHeartbeatMessage = "--heartbeat--"

	// ListenerHeartbeatInterval is how often the heartbeat is sent
	ListenerHeartbeatInterval = 5 * time.Second

	// ListsChangedMessage is pushed by AnyList when shopping lists change
	ListsChangedMessage = "refresh-shopping-lists"
)

// Listener reconnect configuration
const (
	ListenerReconnectBaseDelay = 1 * time.Second
	ListenerReconnectMaxDelay  = 30 * time.Second
)
