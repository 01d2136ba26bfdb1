// Package password defines the seam an embedding CLI uses to turn a
// requested word count into a human-memorable passphrase. Dexios itself
// ships no wordlist; generating one is out of scope here.
package password

// PassphraseGenerator produces a passphrase of the given number of words.
// A CLI wires a real wordlist (e.g. EFF's) behind this; tests can stub it
// with a fixed-output func.
type PassphraseGenerator func(words int) (string, error)
