// Package tts synthesizes speech for vocabulary words and stories. The
// primary path speaks the websocket protocol of the speech provider and
// streams MPEG audio frames; any failure there degrades to a plain HTTP
// provider that synthesizes the text chunk by chunk. Synthesized audio is
// cached in Redis keyed by voice and text digest.
package tts
