/*
Package domain contains the core models of the assistant's flow layer.

It defines what a flow is, what an invocation produces, how failures are
classified, and the user profile that callers project into flow inputs. The
package is kept pure and free of I/O, following Hexagonal Architecture
principles; adapters live under pkg/adapters and internal/adapters.

# Key Entities

  - Flow: a named prompt template guarded by input and output schemas.
  - Result: the validated output of one invocation.
  - FlowError: a classified failure (unknown flow, invalid input, generation failed, invalid output).
  - Outcome: the transport form of a Result or FlowError.
  - UserProfile: the personalization record callers pass to flows.
*/
package domain
