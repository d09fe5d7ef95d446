// Command punchchat chats with a single peer over UDP.
//
// Usage:
//
//	punchchat [options] <remote host:port>
//
// Start one side with the other's reachable address and a fixed port,
// then the other side the same way:
//
//	alice$ punchchat -port 5000 192.0.2.20:5001
//	bob$   punchchat -port 5001 192.0.2.10:5000
//
// Each side announces itself to the peer on startup. Typed lines are sent
// as single datagrams of at most 255 bytes and echoed with ">> "; lines
// from the peer are printed with "<< ". Longer lines are refused with a
// "!! " warning.
//
// The program exits when standard input ends, on interrupt, or on any
// transport or decoding failure.
package main
