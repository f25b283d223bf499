// Command depthsync writes dive-computer depth and temperature into photo
// metadata.
//
//	depthsync sync ./photos --track dive.fit --timezone -08:00
//
// Other commands summarize track files (track), check for the exiv2 tool
// (check) and manage the configuration file (config init, config validate).
package main
