// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the primary execution lifecycle: load and
// validate the aspect plan, weave it into the demo scene, run the scenario
// and unweave everything again. It is decoupled from any specific
// entrypoint like a CLI or server.
package app
