// Command sonicindex scans an audio library, enriches it with fingerprints,
// spectral features, online metadata, and neural genre labels, and serves
// the result over HTTP.
package main

func main() {
	Execute()
}
