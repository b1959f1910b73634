/*
Package ports defines the driven ports (interfaces) of the assessment
engine.

These interfaces decouple the core from external implementations,
allowing sessions and completed profiles to live in memory, on the
filesystem, in Redis, or in SQLite without the core knowing.

# Key Interfaces

  - SessionStore: persists in-flight SessionState ("stop & resume").
  - ProfileStore: archives completed assessment bundles.
  - DistributedLocker: coordinates session access across replicas.
*/
package ports
