// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth generates participant identities.

# Tokens

Every participant gets a secret token when they join:

	token, err := auth.GenerateParticipantToken()

The token travels in the X-Participant-Token header and is the only
credential in the system: teacher-only commands succeed when the supplied
token equals the registered teacher's token, nothing more. Tokens are
24 bytes of crypto/rand entropy, URL-safe base64 without padding.

# IDs

GenerateID produces random hex identifiers of a given byte length:

	id, err := auth.GenerateID(16)

Used where a short non-secret identifier is enough.
*/
package auth
