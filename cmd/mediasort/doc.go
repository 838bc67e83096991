// Command mediasort is the CLI companion to mediasortd. It talks to the
// daemon over the IPC socket to trigger organize passes, inspect status, and
// browse run history, and ships configuration utilities that work without a
// running daemon.
package main
