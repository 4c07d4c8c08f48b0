// Package common contains shared constants and sentinel errors used across
// PlantGuard components.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// MinPasswordLength is the shortest password accepted on sign-up, both by the
// client-side form check and by the backend.
const MinPasswordLength = 6
