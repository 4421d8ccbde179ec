// Package aspect defines aspect kinds: a set of advice hooks, a fixed list
// of target call-sites, and one of five activation policies that decide
// when the hooks fire.
//
//   - Execution fires around every call.
//   - Call does the same and also tells advice who made the call.
//   - Depth fires around every call and tracks how deeply calls of the
//     kind are nested.
//   - CFlow fires only around the outermost call; calls made as a
//     consequence of it pass straight through.
//   - Coverage fires around every call and records which targets have
//     never been invoked.
//
// Policy state (the depth counter, the cflow flag, the uncovered set) is
// owned by the Kind and shared by all of its instances across targets.
//
// Advice may observe a target's error but never suppress or replace it:
// whatever error the chain returns is returned unchanged after AfterError
// has run.
package aspect
