// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth derives and checks admin keys.

Admin keys are HMAC-SHA256 of a scope name keyed by the server salt:

	key := auth.GenerateAdminKey(auth.AdminScope, salt)
	err := auth.ValidateAdminKey(auth.AdminScope, key, salt)

Keys are URL-safe base64 without padding. Run the server with
--print-admin-key to print the key for the configured salt.
*/
package auth
