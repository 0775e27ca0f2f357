// Package domain contains the pure reporting core: territory resolution,
// interaction aggregation, and pagination. Every function here is a total,
// side-effect-free computation over immutable snapshots of the upstream
// collections; missing foreign keys and empty selections resolve to
// sentinels, never errors.
package domain
