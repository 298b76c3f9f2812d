// Package wan finds the interface that carries default internet egress,
// checks that external targets are reachable through it, and cycles it when
// they are not.
//
// One call to Controller.Run walks a fixed state machine:
//
//	START -> RESOLVING -> CHECKING -> HEALTHY
//	                               -> CYCLING -> VERIFYING -> RECOVERED | DEGRADED
//	         RESOLVING -> RESOLUTION_FAILED
//
// Discovery runs once per run. Nothing is carried between runs: every call
// builds a fresh Run and Identity.
//
// All system access goes through the capability interfaces in
// grimm.is/wanwatch/internal/network and grimm.is/wanwatch/internal/probe,
// so the whole machine runs against fakes in tests.
package wan
