// Package harness runs demo scenarios and checks their transcripts.
//
// A scenario is a YAML file naming a demo plus a list of assertions over
// the transcript the demo produces. Scenarios always execute on a fresh
// loop with a virtual clock, so the transcript is a pure function of the
// demo and the run token. Golden snapshots of whole transcripts live in
// testdata/golden and are compared with goldie after NFC normalization.
package harness
