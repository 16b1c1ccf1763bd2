/*
Package ports defines the driven ports (interfaces) for the tracetm simulator.

These interfaces decouple the core logic from external implementations, allowing
the engine to work with various machine sources and result backends.

# Key Interfaces

  - MachineLoader: Responsible for loading machine definitions (e.g., from files or memory).
  - RunStore: Responsible for persisting and loading simulation runs.
  - Simulator: The engine surface consumed by the runner and the HTTP/MCP adapters.
*/
package ports
