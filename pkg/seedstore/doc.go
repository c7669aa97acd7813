/*
Package seedstore keeps named seed vocabularies in a SQLite database so that
pseudoword models can be rebuilt from them on demand. Only the input word
lists are stored; trained models are never persisted.

Each seed is fingerprinted with a BLAKE3 digest of its words, which lets
callers detect an identical vocabulary stored under another name.
*/
package seedstore
