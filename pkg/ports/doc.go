/*
Package ports defines the driven ports (interfaces) of the assistant's flow layer.

These interfaces decouple the invoker and the call sites from external
implementations, so the same flows run against Gemini or a local
OpenAI-compatible model, and profiles live in memory, on disk, in Redis or in
Postgres.

# Key Interfaces

  - ReasoningService: turns a rendered prompt into text (the only network dependency of a flow).
  - FlowInvoker / FlowCatalog: what transports need from the invoker and the registry.
  - FlowSource: loads flow definitions from an external medium (e.g. Loam documents).
  - ProfileStore: persists user profiles.
  - DistributedLocker: serializes profile updates across replicas.
*/
package ports
